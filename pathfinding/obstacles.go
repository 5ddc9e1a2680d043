package pathfinding

import (
	"edgeroute/core"
	"edgeroute/geometry"
)

// SegmentChecker returns true if a move from a to b is blocked.
type SegmentChecker func(a, b core.Point) bool

// Obstacle is an inflated node rectangle tagged with the node's ID.
type Obstacle struct {
	ID     string
	Bounds geometry.Rect
}

// ObstacleSet answers collision queries against a snapshot of nodes.
type ObstacleSet struct {
	obstacles []Obstacle
}

// NewObstacleSet inflates every node by margin, skipping the excluded IDs.
// The nodes slice is copied and never retained.
func NewObstacleSet(nodes []core.Node, margin float64, exclude ...string) *ObstacleSet {
	skip := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}

	set := &ObstacleSet{obstacles: make([]Obstacle, 0, len(nodes))}
	for _, n := range nodes {
		if _, ok := skip[n.ID]; ok {
			continue
		}
		set.obstacles = append(set.obstacles, Obstacle{
			ID:     n.ID,
			Bounds: geometry.RectOf(n).Inflate(margin),
		})
	}
	return set
}

// IsBlocked reports whether p lies strictly inside any active obstacle.
func (s *ObstacleSet) IsBlocked(p core.Point) bool {
	for _, o := range s.obstacles {
		if o.Bounds.Contains(p) {
			return true
		}
	}
	return false
}

// SegmentBlocked reports whether the axis-aligned segment a-b crosses the
// interior of any active obstacle.
func (s *ObstacleSet) SegmentBlocked(a, b core.Point) bool {
	for _, o := range s.obstacles {
		if o.Bounds.SegmentCrosses(a, b) {
			return true
		}
	}
	return false
}

// MidpointChecker probes only the midpoint of each move. Obstacles thinner
// than a grid step can be tunnelled through.
func (s *ObstacleSet) MidpointChecker() SegmentChecker {
	return func(a, b core.Point) bool {
		return s.IsBlocked(geometry.Midpoint(a, b))
	}
}

// StrictChecker tests the full segment against every obstacle.
func (s *ObstacleSet) StrictChecker() SegmentChecker {
	return s.SegmentBlocked
}

// CombineCheckers combines multiple segment checkers with OR logic.
func CombineCheckers(checkers ...SegmentChecker) SegmentChecker {
	return func(a, b core.Point) bool {
		for _, c := range checkers {
			if c != nil && c(a, b) {
				return true
			}
		}
		return false
	}
}
