package export

import (
	"image/color"
	"image/png"
	"io"

	"edgeroute/canvas"
	"edgeroute/geometry"
	"edgeroute/render"
)

// PNGExporter rasterises the drawing.
type PNGExporter struct {
	Scale      float64
	Padding    float64
	LineWidth  float64
	Background color.Color
	NodeFill   color.Color
	NodeStroke color.Color
	EdgeColor  color.Color
	Fallback   color.Color
}

// NewPNGExporter creates a PNG exporter with default colours.
func NewPNGExporter() *PNGExporter {
	return &PNGExporter{
		Scale:      1,
		Padding:    20,
		LineWidth:  2,
		Background: color.White,
		NodeFill:   color.RGBA{R: 0xf4, G: 0xf4, B: 0xf4, A: 0xff},
		NodeStroke: color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff},
		EdgeColor:  color.RGBA{R: 0x1f, G: 0x6f, B: 0xeb, A: 0xff},
		Fallback:   color.RGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xff},
	}
}

// Rasterize draws the drawing into a new raster.
func (e *PNGExporter) Rasterize(d *Drawing) (*canvas.Raster, error) {
	r, err := canvas.NewRaster(Bounds(d), e.Padding, e.Scale, e.Background)
	if err != nil {
		return nil, err
	}

	for _, n := range d.Nodes {
		rect := geometry.RectOf(n)
		r.FillRect(rect, e.NodeFill)
		r.StrokeRect(rect, 1, e.NodeStroke)
	}
	for _, edge := range d.Edges {
		c := e.EdgeColor
		if edge.Fallback {
			c = e.Fallback
		}
		r.StrokePolyline(render.Flatten(edge.Commands, render.DefaultCurveSteps), e.LineWidth, c)
	}
	return r, nil
}

// Export encodes the raster as PNG.
func (e *PNGExporter) Export(d *Drawing, w io.Writer) error {
	r, err := e.Rasterize(d)
	if err != nil {
		return err
	}
	return png.Encode(w, r.Image())
}

// FileExtension returns ".png".
func (e *PNGExporter) FileExtension() string {
	return ".png"
}
