// Package render turns routed point sequences into drawing commands.
package render

import (
	"math"

	"edgeroute/core"
	"edgeroute/geometry"
)

// DefaultCornerRadius is the radius used for rounded corners.
const DefaultCornerRadius = 10.0

// Options controls how a point sequence is rendered.
type Options struct {
	Rounded bool
	Radius  float64
}

// Commands renders points as either sharp or rounded corners.
func Commands(points []core.Point, opts Options) []core.PathCommand {
	if opts.Rounded {
		radius := opts.Radius
		if radius <= 0 {
			radius = DefaultCornerRadius
		}
		return Rounded(points, radius)
	}
	return Sharp(points)
}

// Sharp joins consecutive points with straight lines.
func Sharp(points []core.Point) []core.PathCommand {
	if len(points) == 0 {
		return nil
	}
	cmds := make([]core.PathCommand, 0, len(points))
	cmds = append(cmds, core.PathCommand{Kind: core.MoveTo, To: points[0]})
	for _, p := range points[1:] {
		cmds = append(cmds, core.PathCommand{Kind: core.LineTo, To: p})
	}
	return cmds
}

// Rounded replaces every interior corner with a quadratic curve whose control
// point is the corner and whose ends sit CornerRadius back along each segment.
func Rounded(points []core.Point, radius float64) []core.PathCommand {
	if len(points) < 3 {
		return Sharp(points)
	}

	cmds := make([]core.PathCommand, 0, 2*len(points))
	cmds = append(cmds, core.PathCommand{Kind: core.MoveTo, To: points[0]})

	for i := 1; i < len(points)-1; i++ {
		prev, corner, next := points[i-1], points[i], points[i+1]
		r := CornerRadius(prev, corner, next, radius)
		inX, inY := unit(prev, corner)
		outX, outY := unit(corner, next)

		// Straight-through points and degenerate segments stay sharp.
		if r <= 0 || (geometry.AlmostEqual(inX, outX) && geometry.AlmostEqual(inY, outY)) {
			cmds = append(cmds, core.PathCommand{Kind: core.LineTo, To: corner})
			continue
		}

		cmds = append(cmds,
			core.PathCommand{Kind: core.LineTo, To: corner.Add(-inX*r, -inY*r)},
			core.PathCommand{Kind: core.QuadTo, Ctrl1: corner, To: corner.Add(outX*r, outY*r)},
		)
	}

	cmds = append(cmds, core.PathCommand{Kind: core.LineTo, To: points[len(points)-1]})
	return cmds
}

// CornerRadius clamps radius to half the shorter of the two segments meeting at corner.
func CornerRadius(prev, corner, next core.Point, radius float64) float64 {
	in := geometry.EuclideanDistance(prev, corner)
	out := geometry.EuclideanDistance(corner, next)
	return math.Max(0, math.Min(radius, math.Min(in/2, out/2)))
}

func unit(a, b core.Point) (float64, float64) {
	d := geometry.EuclideanDistance(a, b)
	if d == 0 {
		return 0, 0
	}
	return (b.X - a.X) / d, (b.Y - a.Y) / d
}
