package connections

import (
	"edgeroute/core"
	"edgeroute/geometry"
)

// DirectRoute connects start and end without looking at obstacles: a single
// line, or a cubic bezier when curved is set.
func DirectRoute(start, end core.Point, source, target core.Handle, curved bool) []core.PathCommand {
	move := core.PathCommand{Kind: core.MoveTo, To: start}
	if !curved {
		return []core.PathCommand{move, {Kind: core.LineTo, To: end}}
	}

	c1, c2 := ControlPoints(start, end, source, target)
	return []core.PathCommand{move, {Kind: core.CubicTo, Ctrl1: c1, Ctrl2: c2, To: end}}
}

// ControlPoints returns the bezier control points for a curved edge. Each
// point is pushed half the start-end distance out along its handle. Without
// a source handle the first point sits at the horizontal midpoint; without a
// target handle the second point is the end itself.
func ControlPoints(start, end core.Point, source, target core.Handle) (c1, c2 core.Point) {
	offset := geometry.EuclideanDistance(start, end) / 2

	if source == core.HandleNone {
		c1 = core.Point{X: (start.X + end.X) / 2, Y: start.Y}
	} else {
		dx, dy := source.Vector()
		c1 = start.Add(dx*offset, dy*offset)
	}

	dx, dy := target.Vector()
	c2 = end.Add(dx*offset, dy*offset)
	return c1, c2
}

// ChooseHandles picks the sides of from and to that face each other,
// preferring horizontal connections when the offsets are equal.
func ChooseHandles(from, to core.Node) (source, target core.Handle) {
	fc, tc := from.Center(), to.Center()
	dx := tc.X - fc.X
	dy := tc.Y - fc.Y

	if abs(dx) >= abs(dy) {
		if dx >= 0 {
			return core.HandleRight, core.HandleLeft
		}
		return core.HandleLeft, core.HandleRight
	}
	if dy > 0 {
		return core.HandleBottom, core.HandleTop
	}
	return core.HandleTop, core.HandleBottom
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
