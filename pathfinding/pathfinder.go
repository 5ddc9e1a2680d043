// Package pathfinding finds orthogonal routes between points on a sparse grid of candidate lines.
package pathfinding

import (
	"errors"
	"fmt"
	"strings"

	"edgeroute/core"
	"edgeroute/geometry"
)

var (
	// ErrNoPath is returned when the open set empties before the goal is reached.
	ErrNoPath = errors.New("no path found")
	// ErrIterationLimit is returned when the search exhausts its expansion budget.
	ErrIterationLimit = errors.New("pathfinding exceeded iteration limit")
	// ErrOffGrid is returned when the start point is not a grid intersection.
	ErrOffGrid = errors.New("start point is not on the grid")
)

// IsAligned checks if three points lie on one horizontal or vertical line.
func IsAligned(p1, p2, p3 core.Point) bool {
	if geometry.AlmostEqual(p1.Y, p2.Y) && geometry.AlmostEqual(p2.Y, p3.Y) {
		return true
	}
	return geometry.AlmostEqual(p1.X, p2.X) && geometry.AlmostEqual(p2.X, p3.X)
}

// SimplifyPath removes repeated points and unnecessary waypoints on straight runs.
func SimplifyPath(path core.Path) core.Path {
	out := make([]core.Point, 0, len(path.Points))
	for _, p := range path.Points {
		n := len(out)
		if n > 0 && geometry.SamePoint(out[n-1], p) {
			continue
		}
		if n >= 2 && IsAligned(out[n-2], out[n-1], p) {
			out = out[:n-1]
			if geometry.SamePoint(out[n-2], p) {
				continue
			}
		}
		out = append(out, p)
	}
	return core.Path{Points: out, Cost: path.Cost}
}

// IsOrthogonal reports whether every consecutive pair of points differs in exactly one axis.
func IsOrthogonal(points []core.Point) bool {
	for i := 1; i < len(points); i++ {
		sameX := geometry.AlmostEqual(points[i-1].X, points[i].X)
		sameY := geometry.AlmostEqual(points[i-1].Y, points[i].Y)
		if sameX == sameY {
			return false
		}
	}
	return true
}

// PathToString converts a path to a string representation for debugging.
func PathToString(path core.Path) string {
	if path.IsEmpty() {
		return "empty path"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Path (cost=%g): ", path.Cost)
	for i, p := range path.Points {
		if i > 0 {
			b.WriteString(" → ")
		}
		fmt.Fprintf(&b, "(%g,%g)", p.X, p.Y)
	}
	return b.String()
}
