// Package connections routes edges between diagram nodes.
package connections

import (
	"context"
	"io"
	"log/slog"

	"edgeroute/core"
	"edgeroute/geometry"
	"edgeroute/pathfinding"
	"edgeroute/render"
)

const (
	// DefaultGridMargin keeps grid lines this far from node sides.
	DefaultGridMargin = 20.0
	// DefaultCollisionMargin is the inflation used when testing moves against nodes.
	// It is smaller than the grid margin so lines just outside a node stay usable.
	DefaultCollisionMargin = 10.0
	// ExactGoal as Options.GoalTolerance makes the search land exactly on the goal.
	ExactGoal = -1.0
)

// Options configures a Router. Zero values select the defaults.
type Options struct {
	GridMargin      float64
	CollisionMargin float64
	CornerRadius    float64
	MaxIterations   int
	// GoalTolerance is the per-axis distance at which the search may stop.
	// Negative values, such as ExactGoal, mean zero.
	GoalTolerance float64
	// StrictSegments tests whole moves against obstacles instead of only their midpoints.
	StrictSegments bool
	Logger         *slog.Logger
}

// DefaultOptions returns the standard routing configuration.
func DefaultOptions() Options {
	return Options{
		GridMargin:      DefaultGridMargin,
		CollisionMargin: DefaultCollisionMargin,
		CornerRadius:    render.DefaultCornerRadius,
		MaxIterations:   pathfinding.DefaultMaxIterations,
		GoalTolerance:   pathfinding.DefaultGoalTolerance,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.GridMargin <= 0 {
		o.GridMargin = d.GridMargin
	}
	if o.CollisionMargin <= 0 {
		o.CollisionMargin = d.CollisionMargin
	}
	if o.CornerRadius <= 0 {
		o.CornerRadius = d.CornerRadius
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = d.MaxIterations
	}
	if o.GoalTolerance == 0 {
		o.GoalTolerance = d.GoalTolerance
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// EdgeRequest describes one edge to route. Nodes is every node in the
// diagram; Source and Target are never treated as obstacles.
type EdgeRequest struct {
	Start        core.Point
	End          core.Point
	Source       core.Node
	Target       core.Node
	SourceHandle core.Handle
	TargetHandle core.Handle
	Nodes        []core.Node
	Mode         core.RouteMode
	Smooth       bool
}

// Result is a routed edge.
type Result struct {
	// Points are the corner points before rounding. In default mode they are
	// just the two endpoints.
	Points   []core.Point
	Commands []core.PathCommand
	// Fallback is set when orthogonal routing failed and a straight line was used.
	Fallback bool
	// Err is the reason for a fallback.
	Err error
}

// Router computes edge paths. It holds no per-diagram state and is safe for
// concurrent use.
type Router struct {
	opts   Options
	logger *slog.Logger
}

// NewRouter creates a router with the given options.
func NewRouter(opts Options) *Router {
	opts = opts.withDefaults()
	return &Router{opts: opts, logger: opts.Logger}
}

// Options returns the resolved options.
func (r *Router) Options() Options {
	return r.opts
}

// ComputeEdgePath routes a single edge and returns its drawing commands.
func (r *Router) ComputeEdgePath(req EdgeRequest) []core.PathCommand {
	return r.Route(context.Background(), req).Commands
}

// Route routes a single edge. It never fails: if the orthogonal search gives
// up, or ctx is done, the result is a straight line between the endpoints.
func (r *Router) Route(ctx context.Context, req EdgeRequest) Result {
	if req.Mode != core.ModeOrthogonal {
		return Result{
			Points:   []core.Point{req.Start, req.End},
			Commands: DirectRoute(req.Start, req.End, req.SourceHandle, req.TargetHandle, req.Smooth),
		}
	}

	points, err := r.OrthogonalPoints(ctx, req)
	if err != nil {
		r.logger.Debug("orthogonal routing fell back to a straight line",
			slog.String("source", req.Source.ID),
			slog.String("target", req.Target.ID),
			slog.Any("start", req.Start),
			slog.Any("end", req.End),
			slog.String("reason", err.Error()))
	}

	return Result{
		Points:   points,
		Commands: render.Commands(points, render.Options{Rounded: req.Smooth, Radius: r.opts.CornerRadius}),
		Fallback: err != nil,
		Err:      err,
	}
}

// OrthogonalPoints returns the corner points of an orthogonal route. On
// failure it returns the straight line [Start, End] together with the reason.
func (r *Router) OrthogonalPoints(ctx context.Context, req EdgeRequest) ([]core.Point, error) {
	straight := []core.Point{req.Start, req.End}
	if geometry.SamePoint(req.Start, req.End) {
		return straight, nil
	}

	searchStart := r.exitPoint(req.Start, req.SourceHandle)
	searchEnd := r.exitPoint(req.End, req.TargetHandle)

	// An endpoint node with a handle adds grid lines around itself and must
	// not be re-entered. Without a handle the route starts inside it.
	var own []core.Node
	if req.SourceHandle != core.HandleNone {
		own = append(own, req.Source)
	}
	if req.TargetHandle != core.HandleNone {
		own = append(own, req.Target)
	}

	rects := make([]geometry.Rect, 0, len(req.Nodes)+len(own))
	for _, n := range req.Nodes {
		if n.ID == req.Source.ID || n.ID == req.Target.ID {
			continue
		}
		rects = append(rects, geometry.RectOf(n))
	}
	for _, n := range own {
		rects = append(rects, geometry.RectOf(n))
	}
	grid := pathfinding.BuildGrid(searchStart, searchEnd, rects, r.opts.GridMargin)

	checker := r.checker(pathfinding.NewObstacleSet(req.Nodes, r.opts.CollisionMargin, req.Source.ID, req.Target.ID))
	if len(own) > 0 {
		checker = pathfinding.CombineCheckers(checker, r.checker(pathfinding.NewObstacleSet(own, 0)))
	}

	finder := pathfinding.NewGridAStar()
	finder.SetMaxIterations(r.opts.MaxIterations)
	finder.SetGoalTolerance(r.opts.GoalTolerance)

	path, err := finder.FindPath(ctx, searchStart, searchEnd, grid, checker)
	if err != nil {
		return straight, err
	}

	points := make([]core.Point, 0, len(path.Points)+4)
	points = append(points, req.Start)
	points = append(points, path.Points...)
	// The search may stop within tolerance of searchEnd; square off the gap.
	if last := points[len(points)-1]; !geometry.AlmostEqual(last.X, searchEnd.X) && !geometry.AlmostEqual(last.Y, searchEnd.Y) {
		points = append(points, core.Point{X: searchEnd.X, Y: last.Y})
	}
	points = append(points, searchEnd, req.End)

	return pathfinding.SimplifyPath(core.Path{Points: points}).Points, nil
}

func (r *Router) checker(set *pathfinding.ObstacleSet) pathfinding.SegmentChecker {
	if r.opts.StrictSegments {
		return set.StrictChecker()
	}
	return set.MidpointChecker()
}

// exitPoint pushes an anchor out along its handle so the route leaves the node
// before turning.
func (r *Router) exitPoint(anchor core.Point, h core.Handle) core.Point {
	dx, dy := h.Vector()
	return anchor.Add(dx*r.opts.GridMargin, dy*r.opts.GridMargin)
}

var defaultRouter = NewRouter(DefaultOptions())

// ComputeEdgePath routes one edge with the default options.
func ComputeEdgePath(start, end core.Point, source, target core.Node, sourceHandle, targetHandle core.Handle,
	nodes []core.Node, mode core.RouteMode, smooth bool) []core.PathCommand {
	return defaultRouter.ComputeEdgePath(EdgeRequest{
		Start:        start,
		End:          end,
		Source:       source,
		Target:       target,
		SourceHandle: sourceHandle,
		TargetHandle: targetHandle,
		Nodes:        nodes,
		Mode:         mode,
		Smooth:       smooth,
	})
}
