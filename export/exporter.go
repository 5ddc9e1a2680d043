// Package export writes routed diagrams to SVG, PNG or plain path listings.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jbeda/geom"

	"edgeroute/core"
	"edgeroute/geometry"
	"edgeroute/render"
)

// Format represents an export format
type Format string

const (
	// FormatPaths lists one SVG path string per edge
	FormatPaths Format = "paths"
	// FormatSVG writes a standalone SVG document
	FormatSVG Format = "svg"
	// FormatPNG rasterises the diagram
	FormatPNG Format = "png"
)

// RoutedEdge is an edge with its drawing commands.
type RoutedEdge struct {
	ID       string
	Label    string
	Commands []core.PathCommand
	Fallback bool
}

// Drawing is everything an exporter needs.
type Drawing struct {
	Nodes []core.Node
	Edges []RoutedEdge
}

// Exporter interface for different export formats
type Exporter interface {
	// Export writes the drawing in the target format
	Export(d *Drawing, w io.Writer) error
	// FileExtension returns the recommended file extension for this format
	FileExtension() string
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatPaths:
		return &PathsExporter{}, nil
	case FormatSVG:
		return NewSVGExporter(), nil
	case FormatPNG:
		return NewPNGExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "paths", "text", "txt", "":
		return FormatPaths, nil
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// PathsExporter writes "id<TAB>d" lines.
type PathsExporter struct{}

// Export writes one line per edge.
func (e *PathsExporter) Export(d *Drawing, w io.Writer) error {
	for _, edge := range d.Edges {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", edge.ID, render.SVGPath(edge.Commands)); err != nil {
			return err
		}
	}
	return nil
}

// FileExtension returns ".txt".
func (e *PathsExporter) FileExtension() string {
	return ".txt"
}

// Bounds returns the smallest rectangle covering every node and every point
// an edge visits, control points included.
func Bounds(d *Drawing) geometry.Rect {
	var b geom.Rect
	first := true
	add := func(p core.Point) {
		c := geom.Coord{X: p.X, Y: p.Y}
		if first {
			b = geom.Rect{Min: c, Max: c}
			first = false
			return
		}
		b.ExpandToContainCoord(c)
	}

	for _, n := range d.Nodes {
		r := geometry.RectOf(n)
		add(core.Point{X: r.Left, Y: r.Top})
		add(core.Point{X: r.Right, Y: r.Bottom})
	}
	for _, e := range d.Edges {
		for _, c := range e.Commands {
			add(c.To)
			switch c.Kind {
			case core.QuadTo:
				add(c.Ctrl1)
			case core.CubicTo:
				add(c.Ctrl1)
				add(c.Ctrl2)
			}
		}
	}

	return geometry.Rect{Left: b.Min.X, Top: b.Min.Y, Right: b.Max.X, Bottom: b.Max.Y}
}
