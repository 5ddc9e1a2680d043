package pathfinding

import (
	"container/heap"
	"context"
	"fmt"
	"math"

	"edgeroute/core"
	"edgeroute/geometry"
)

const (
	// DefaultMaxIterations bounds the number of node expansions per search.
	DefaultMaxIterations = 3000
	// DefaultGoalTolerance is how close on each axis a node must be to the goal.
	DefaultGoalTolerance = 5.0
)

type moveAxis int8

const (
	axisNone moveAxis = iota
	axisX
	axisY
)

// searchNode is a state in the A* search. parent is an index into the arena,
// -1 for the start node.
type searchNode struct {
	xi, yi int
	gCost  float64
	hCost  float64
	bends  int
	axis   moveAxis
	parent int
}

func (n *searchNode) fCost() float64 {
	return n.gCost + n.hCost
}

type queueItem struct {
	node  int
	fCost float64
	bends int
	seq   int
}

// nodeQueue is a min-heap of arena indices ordered by fCost, then fewer
// bends, then insertion order.
type nodeQueue []queueItem

func (q nodeQueue) Len() int { return len(q) }
func (q nodeQueue) Less(i, j int) bool {
	if q[i].fCost != q[j].fCost {
		return q[i].fCost < q[j].fCost
	}
	if q[i].bends != q[j].bends {
		return q[i].bends < q[j].bends
	}
	return q[i].seq < q[j].seq
}
func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x any) { *q = append(*q, x.(queueItem)) }

func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

type gridKey struct {
	xi, yi int
}

// GridAStar implements A* over the intersections of a Grid. Every move goes to
// the adjacent line on one axis, so consecutive path points differ in exactly
// one coordinate.
type GridAStar struct {
	maxIterations int
	tolerance     float64
}

// NewGridAStar creates a search with the default iteration cap and goal tolerance.
func NewGridAStar() *GridAStar {
	return &GridAStar{
		maxIterations: DefaultMaxIterations,
		tolerance:     DefaultGoalTolerance,
	}
}

// SetMaxIterations sets the maximum number of expansions. Values below 1 restore the default.
func (a *GridAStar) SetMaxIterations(max int) {
	if max < 1 {
		max = DefaultMaxIterations
	}
	a.maxIterations = max
}

// SetGoalTolerance sets the per-axis distance at which a node counts as the goal.
func (a *GridAStar) SetGoalTolerance(tol float64) {
	if tol < 0 {
		tol = 0
	}
	a.tolerance = tol
}

// FindPath searches from start to end. start must be a grid intersection.
// blocked is consulted for every proposed move; nil means nothing blocks.
func (a *GridAStar) FindPath(ctx context.Context, start, end core.Point, grid Grid, blocked SegmentChecker) (core.Path, error) {
	sx, sy, ok := grid.Index(start)
	if !ok {
		return core.Path{}, fmt.Errorf("%w: (%g,%g)", ErrOffGrid, start.X, start.Y)
	}

	arena := make([]searchNode, 0, 64)
	best := make(map[gridKey]int)
	closed := make(map[gridKey]bool)
	open := &nodeQueue{}
	seq := 0

	push := func(idx int) {
		n := &arena[idx]
		heap.Push(open, queueItem{node: idx, fCost: n.fCost(), bends: n.bends, seq: seq})
		seq++
	}

	arena = append(arena, searchNode{
		xi:     sx,
		yi:     sy,
		hCost:  geometry.ManhattanDistance(start, end),
		parent: -1,
	})
	best[gridKey{sx, sy}] = 0
	push(0)

	expansions := 0
	for open.Len() > 0 {
		item := heap.Pop(open).(queueItem)
		current := arena[item.node]
		key := gridKey{current.xi, current.yi}
		if closed[key] {
			continue
		}

		p := grid.Point(current.xi, current.yi)
		if math.Abs(p.X-end.X) <= a.tolerance && math.Abs(p.Y-end.Y) <= a.tolerance {
			return a.reconstructPath(arena, item.node, grid), nil
		}

		if expansions >= a.maxIterations {
			return core.Path{}, fmt.Errorf("%w after %d expansions", ErrIterationLimit, expansions)
		}
		if err := ctx.Err(); err != nil {
			return core.Path{}, fmt.Errorf("pathfinding cancelled: %w", err)
		}
		expansions++
		closed[key] = true

		for _, nb := range neighbours(current, grid) {
			nk := gridKey{nb.xi, nb.yi}
			if closed[nk] {
				continue
			}
			np := grid.Point(nb.xi, nb.yi)
			if blocked != nil && blocked(p, np) {
				continue
			}

			g := current.gCost + geometry.ManhattanDistance(p, np)
			bends := current.bends
			if current.axis != axisNone && current.axis != nb.axis {
				bends++
			}

			if idx, seen := best[nk]; seen {
				existing := &arena[idx]
				if g > existing.gCost || (g == existing.gCost && bends >= existing.bends) {
					continue
				}
				existing.gCost = g
				existing.bends = bends
				existing.axis = nb.axis
				existing.parent = item.node
				push(idx)
				continue
			}

			arena = append(arena, searchNode{
				xi:     nb.xi,
				yi:     nb.yi,
				gCost:  g,
				hCost:  geometry.ManhattanDistance(np, end),
				bends:  bends,
				axis:   nb.axis,
				parent: item.node,
			})
			idx := len(arena) - 1
			best[nk] = idx
			push(idx)
		}
	}

	return core.Path{}, ErrNoPath
}

type neighbour struct {
	xi, yi int
	axis   moveAxis
}

// neighbours yields x-1, x+1, y-1, y+1 in that order, skipping out-of-range indices.
func neighbours(n searchNode, grid Grid) []neighbour {
	out := make([]neighbour, 0, 4)
	if n.xi > 0 {
		out = append(out, neighbour{n.xi - 1, n.yi, axisX})
	}
	if n.xi < len(grid.XLines)-1 {
		out = append(out, neighbour{n.xi + 1, n.yi, axisX})
	}
	if n.yi > 0 {
		out = append(out, neighbour{n.xi, n.yi - 1, axisY})
	}
	if n.yi < len(grid.YLines)-1 {
		out = append(out, neighbour{n.xi, n.yi + 1, axisY})
	}
	return out
}

// reconstructPath walks parent indices back from the goal.
func (a *GridAStar) reconstructPath(arena []searchNode, goal int, grid Grid) core.Path {
	var points []core.Point
	for idx := goal; idx >= 0; idx = arena[idx].parent {
		n := arena[idx]
		points = append(points, grid.Point(n.xi, n.yi))
	}
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return core.Path{Points: points, Cost: arena[goal].gCost}
}
