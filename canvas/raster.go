// Package canvas rasterises nodes and routed edges into images.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"edgeroute/core"
	"edgeroute/geometry"
)

// MaxDimension bounds the width and height of a raster in pixels.
const MaxDimension = 16384

// ErrTooLarge is returned when a raster would exceed MaxDimension.
var ErrTooLarge = errors.New("raster too large")

// Raster maps canvas coordinates onto an RGBA image.
type Raster struct {
	img    *image.RGBA
	origin core.Point
	scale  float64
}

// NewRaster creates an image covering bounds plus padding on every side,
// with scale pixels per canvas unit.
func NewRaster(bounds geometry.Rect, padding, scale float64, background color.Color) (*Raster, error) {
	if scale <= 0 {
		scale = 1
	}
	area := bounds.Inflate(padding)
	fw := math.Ceil(area.Width() * scale)
	fh := math.Ceil(area.Height() * scale)
	if !(fw <= MaxDimension && fh <= MaxDimension) {
		return nil, fmt.Errorf("%w: %gx%g pixels, limit %d", ErrTooLarge, fw, fh, MaxDimension)
	}
	w, h := int(fw), int(fh)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	return &Raster{
		img:    img,
		origin: core.Point{X: area.Left, Y: area.Top},
		scale:  scale,
	}, nil
}

// Image returns the underlying image.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Pixel converts a canvas point to image coordinates.
func (r *Raster) Pixel(p core.Point) (float32, float32) {
	return float32((p.X - r.origin.X) * r.scale), float32((p.Y - r.origin.Y) * r.scale)
}

// FillRect fills a canvas rectangle.
func (r *Raster) FillRect(rect geometry.Rect, c color.Color) {
	z := r.rasterizer()
	x0, y0 := r.Pixel(core.Point{X: rect.Left, Y: rect.Top})
	x1, y1 := r.Pixel(core.Point{X: rect.Right, Y: rect.Bottom})
	z.MoveTo(x0, y0)
	z.LineTo(x1, y0)
	z.LineTo(x1, y1)
	z.LineTo(x0, y1)
	z.ClosePath()
	r.paint(z, c)
}

// StrokeRect outlines a canvas rectangle.
func (r *Raster) StrokeRect(rect geometry.Rect, width float64, c color.Color) {
	corners := []core.Point{
		{X: rect.Left, Y: rect.Top},
		{X: rect.Right, Y: rect.Top},
		{X: rect.Right, Y: rect.Bottom},
		{X: rect.Left, Y: rect.Bottom},
		{X: rect.Left, Y: rect.Top},
	}
	r.StrokePolyline(corners, width, c)
}

// StrokePolyline draws each segment as a filled quad of the given canvas width,
// with square caps at the joints.
func (r *Raster) StrokePolyline(points []core.Point, width float64, c color.Color) {
	if len(points) < 2 {
		return
	}
	half := float32(width * r.scale / 2)
	if half < 0.5 {
		half = 0.5
	}

	z := r.rasterizer()
	for i := 1; i < len(points); i++ {
		ax, ay := r.Pixel(points[i-1])
		bx, by := r.Pixel(points[i])
		dx, dy := bx-ax, by-ay
		length := float32(math.Hypot(float64(dx), float64(dy)))
		if length == 0 {
			continue
		}
		nx, ny := -dy/length*half, dx/length*half
		ex, ey := dx/length*half, dy/length*half

		z.MoveTo(ax+nx-ex, ay+ny-ey)
		z.LineTo(bx+nx+ex, by+ny+ey)
		z.LineTo(bx-nx+ex, by-ny+ey)
		z.LineTo(ax-nx-ex, ay-ny-ey)
		z.ClosePath()
	}
	r.paint(z, c)
}

func (r *Raster) rasterizer() *vector.Rasterizer {
	b := r.img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	return z
}

func (r *Raster) paint(z *vector.Rasterizer, c color.Color) {
	z.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
}
