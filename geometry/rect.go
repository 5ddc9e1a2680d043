// Package geometry provides the rectangle and point helpers used by the router.
package geometry

import (
	"math"

	"edgeroute/core"
)

// Rect is an axis-aligned rectangle. Left <= Right and Top <= Bottom.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectOf returns the bounding rectangle of a node. Negative sizes are
// normalised so the invariant holds.
func RectOf(n core.Node) Rect {
	return Rect{
		Left:   math.Min(n.X, n.X+n.Width),
		Top:    math.Min(n.Y, n.Y+n.Height),
		Right:  math.Max(n.X, n.X+n.Width),
		Bottom: math.Max(n.Y, n.Y+n.Height),
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Inflate grows every side by margin.
func (r Rect) Inflate(margin float64) Rect {
	return Rect{
		Left:   r.Left - margin,
		Top:    r.Top - margin,
		Right:  r.Right + margin,
		Bottom: r.Bottom + margin,
	}
}

// Contains is a strict interior test: points on the boundary are outside.
func (r Rect) Contains(p core.Point) bool {
	return p.X > r.Left && p.X < r.Right &&
		p.Y > r.Top && p.Y < r.Bottom
}

// SegmentCrosses reports whether the axis-aligned segment a-b passes through
// the interior of r. Running flush along an edge does not count. Diagonal
// segments are never reported.
func (r Rect) SegmentCrosses(a, b core.Point) bool {
	switch {
	case IsHorizontal(a, b):
		if a.Y <= r.Top || a.Y >= r.Bottom {
			return false
		}
		return math.Min(a.X, b.X) < r.Right && math.Max(a.X, b.X) > r.Left
	case IsVertical(a, b):
		if a.X <= r.Left || a.X >= r.Right {
			return false
		}
		return math.Min(a.Y, b.Y) < r.Bottom && math.Max(a.Y, b.Y) > r.Top
	default:
		return false
	}
}
