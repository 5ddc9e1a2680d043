package export

import (
	"fmt"
	"html"
	"io"

	"edgeroute/geometry"
	"edgeroute/render"
)

// SVGExporter writes a standalone SVG document.
type SVGExporter struct {
	Padding     float64
	NodeStyle   string
	EdgeStyle   string
	LabelStyle  string
	ShowLabels  bool
	FallbackCSS string
}

// NewSVGExporter creates an SVG exporter with default styling.
func NewSVGExporter() *SVGExporter {
	return &SVGExporter{
		Padding:     20,
		NodeStyle:   "fill: #f4f4f4; stroke: #333; stroke-width: 1",
		EdgeStyle:   "fill: none; stroke: #1f6feb; stroke-width: 2",
		LabelStyle:  "font: 12px sans-serif; fill: #333",
		ShowLabels:  true,
		FallbackCSS: "stroke-dasharray: 4 3",
	}
}

// Export writes the document.
func (e *SVGExporter) Export(d *Drawing, w io.Writer) error {
	b := Bounds(d).Inflate(e.Padding)
	p := &printer{w: w}

	p.printf(`<?xml version="1.0"?>`+"\n")
	p.printf(`<svg xmlns="http://www.w3.org/2000/svg" version="1.1" viewBox="%g %g %g %g">`+"\n",
		b.Left, b.Top, b.Width(), b.Height())

	for _, n := range d.Nodes {
		r := geometry.RectOf(n)
		p.printf(`  <rect id="%s" x="%g" y="%g" width="%g" height="%g" style="%s"/>`+"\n",
			html.EscapeString(n.ID), r.Left, r.Top, r.Width(), r.Height(), e.NodeStyle)
	}

	for _, edge := range d.Edges {
		style := e.EdgeStyle
		if edge.Fallback {
			style += "; " + e.FallbackCSS
		}
		p.printf(`  <path id="%s" d="%s" style="%s"/>`+"\n",
			html.EscapeString(edge.ID), render.SVGPath(edge.Commands), style)

		if e.ShowLabels && edge.Label != "" {
			at := render.LabelPosition(render.Flatten(edge.Commands, render.DefaultCurveSteps))
			p.printf(`  <text x="%g" y="%g" text-anchor="middle" style="%s">%s</text>`+"\n",
				at.X, at.Y, e.LabelStyle, html.EscapeString(edge.Label))
		}
	}

	p.printf("</svg>\n")
	return p.err
}

// FileExtension returns ".svg".
func (e *SVGExporter) FileExtension() string {
	return ".svg"
}

// printer remembers the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, a ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, a...)
}
