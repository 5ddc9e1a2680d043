package render

import (
	"github.com/jbeda/geom"

	"edgeroute/core"
	"edgeroute/geometry"
)

// DefaultCurveSteps is the number of line pieces each curve is split into.
const DefaultCurveSteps = 16

// Flatten approximates the commands with a polyline. Curves are sampled at
// steps evenly spaced parameter values.
func Flatten(cmds []core.PathCommand, steps int) []core.Point {
	if steps < 1 {
		steps = DefaultCurveSteps
	}

	var out []core.Point
	var pen geom.Coord
	for _, c := range cmds {
		to := coord(c.To)
		switch c.Kind {
		case core.MoveTo, core.LineTo:
			out = append(out, c.To)
		case core.QuadTo:
			ctrl := coord(c.Ctrl1)
			for i := 1; i <= steps; i++ {
				out = append(out, point(quadAt(pen, ctrl, to, float64(i)/float64(steps))))
			}
		case core.CubicTo:
			c1, c2 := coord(c.Ctrl1), coord(c.Ctrl2)
			for i := 1; i <= steps; i++ {
				out = append(out, point(cubicAt(pen, c1, c2, to, float64(i)/float64(steps))))
			}
		}
		pen = to
	}
	return out
}

// LabelPosition returns the point halfway along the polyline by arc length.
func LabelPosition(points []core.Point) core.Point {
	if len(points) == 0 {
		return core.Point{}
	}

	total := 0.0
	for i := 1; i < len(points); i++ {
		total += geometry.EuclideanDistance(points[i-1], points[i])
	}

	half := total / 2
	for i := 1; i < len(points); i++ {
		a, b := coord(points[i-1]), coord(points[i])
		seg := b.Minus(a).Magnitude()
		if seg >= half && seg > 0 {
			return point(a.Plus(b.Minus(a).Times(half / seg)))
		}
		half -= seg
	}
	return points[len(points)-1]
}

func quadAt(p0, c, p1 geom.Coord, t float64) geom.Coord {
	mt := 1 - t
	return p0.Times(mt * mt).Plus(c.Times(2 * mt * t)).Plus(p1.Times(t * t))
}

func cubicAt(p0, c1, c2, p1 geom.Coord, t float64) geom.Coord {
	mt := 1 - t
	return p0.Times(mt * mt * mt).
		Plus(c1.Times(3 * mt * mt * t)).
		Plus(c2.Times(3 * mt * t * t)).
		Plus(p1.Times(t * t * t))
}

func coord(p core.Point) geom.Coord {
	return geom.Coord{X: p.X, Y: p.Y}
}

func point(c geom.Coord) core.Point {
	return core.Point{X: c.X, Y: c.Y}
}
