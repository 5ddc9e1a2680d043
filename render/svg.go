package render

import (
	"strconv"
	"strings"

	"edgeroute/core"
)

// SVGPath formats drawing commands as an SVG path "d" attribute.
func SVGPath(cmds []core.PathCommand) string {
	var b strings.Builder
	for i, c := range cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.Kind.String())
		switch c.Kind {
		case core.QuadTo:
			writePoint(&b, c.Ctrl1)
		case core.CubicTo:
			writePoint(&b, c.Ctrl1)
			writePoint(&b, c.Ctrl2)
		}
		writePoint(&b, c.To)
	}
	return b.String()
}

func writePoint(b *strings.Builder, p core.Point) {
	b.WriteByte(' ')
	b.WriteString(formatFloat(p.X))
	b.WriteByte(' ')
	b.WriteString(formatFloat(p.Y))
}

func formatFloat(v float64) string {
	// Avoid "-0" in the output.
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

