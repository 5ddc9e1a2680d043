package pathfinding

import (
	"slices"

	"edgeroute/core"
	"edgeroute/geometry"
)

// Grid holds the only x and y coordinates the search may visit. Both slices are
// sorted ascending without duplicates and are not modified once built.
type Grid struct {
	XLines []float64
	YLines []float64
}

// BuildGrid collects the coordinates of start and end plus the sides of every
// rectangle inflated by margin.
func BuildGrid(start, end core.Point, rects []geometry.Rect, margin float64) Grid {
	xs := make([]float64, 0, 2+2*len(rects))
	ys := make([]float64, 0, 2+2*len(rects))
	xs = append(xs, start.X, end.X)
	ys = append(ys, start.Y, end.Y)

	for _, r := range rects {
		inflated := r.Inflate(margin)
		xs = append(xs, inflated.Left, inflated.Right)
		ys = append(ys, inflated.Top, inflated.Bottom)
	}

	return Grid{XLines: sortedUnique(xs), YLines: sortedUnique(ys)}
}

// Index returns the grid indices of p, if p is an intersection.
func (g Grid) Index(p core.Point) (xi, yi int, ok bool) {
	xi, okX := slices.BinarySearch(g.XLines, p.X)
	yi, okY := slices.BinarySearch(g.YLines, p.Y)
	return xi, yi, okX && okY
}

// Point returns the intersection at the given indices.
func (g Grid) Point(xi, yi int) core.Point {
	return core.Point{X: g.XLines[xi], Y: g.YLines[yi]}
}

func sortedUnique(v []float64) []float64 {
	slices.Sort(v)
	return slices.Compact(v)
}
