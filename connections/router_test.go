package connections

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"strings"
	"testing"

	"edgeroute/core"
	"edgeroute/geometry"
	"edgeroute/pathfinding"
)

// exampleDiagram is two nodes with a wall between them.
func exampleDiagram() (source, target, wall core.Node) {
	source = core.Node{ID: "s", X: -40, Y: 30, Width: 40, Height: 40}
	target = core.Node{ID: "t", X: 200, Y: 30, Width: 40, Height: 40}
	wall = core.Node{ID: "wall", X: 80, Y: 0, Width: 40, Height: 100}
	return source, target, wall
}

func exampleRequest(mode core.RouteMode, smooth bool) EdgeRequest {
	source, target, wall := exampleDiagram()
	return EdgeRequest{
		Start:  core.Point{X: 0, Y: 50},
		End:    core.Point{X: 200, Y: 50},
		Source: source,
		Target: target,
		Nodes:  []core.Node{source, target, wall},
		Mode:   mode,
		Smooth: smooth,
	}
}

func TestRoute_NoObstaclesIsTrivial(t *testing.T) {
	router := NewRouter(DefaultOptions())

	tests := []struct {
		name       string
		start, end core.Point
	}{
		{"horizontal", core.Point{X: 0, Y: 0}, core.Point{X: 300, Y: 0}},
		{"vertical", core.Point{X: 10, Y: 10}, core.Point{X: 10, Y: -200}},
		{"down right", core.Point{X: 0, Y: 0}, core.Point{X: 120, Y: 80}},
		{"up left", core.Point{X: 55.5, Y: 20}, core.Point{X: -70, Y: -33.25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := router.Route(context.Background(), EdgeRequest{
				Start: tt.start,
				End:   tt.end,
				Mode:  core.ModeOrthogonal,
			})

			if res.Fallback {
				t.Fatalf("unexpected fallback: %v", res.Err)
			}
			if len(res.Points) > 3 {
				t.Errorf("expected at most one bend, got %v", res.Points)
			}
			if res.Points[0] != tt.start || res.Points[len(res.Points)-1] != tt.end {
				t.Errorf("endpoints changed: %v", res.Points)
			}
			if !pathfinding.IsOrthogonal(res.Points) {
				t.Errorf("path is not orthogonal: %v", res.Points)
			}
		})
	}
}

func TestRoute_EndpointFidelity(t *testing.T) {
	tests := []struct {
		name   string
		mode   core.RouteMode
		smooth bool
		opts   Options
	}{
		{"default straight", core.ModeDefault, false, DefaultOptions()},
		{"default curved", core.ModeDefault, true, DefaultOptions()},
		{"orthogonal sharp", core.ModeOrthogonal, false, DefaultOptions()},
		{"orthogonal rounded", core.ModeOrthogonal, true, DefaultOptions()},
		{"orthogonal fallback", core.ModeOrthogonal, true, Options{MaxIterations: 1}},
		{"invalid mode", core.RouteMode(42), false, DefaultOptions()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := exampleRequest(tt.mode, tt.smooth)
			req.SourceHandle = core.HandleRight
			req.TargetHandle = core.HandleLeft
			cmds := NewRouter(tt.opts).ComputeEdgePath(req)

			if len(cmds) < 2 {
				t.Fatalf("got %d commands", len(cmds))
			}
			if cmds[0].Kind != core.MoveTo || !geometry.SamePoint(cmds[0].To, req.Start) {
				t.Errorf("first command %+v does not start at %v", cmds[0], req.Start)
			}
			if last := cmds[len(cmds)-1]; !geometry.SamePoint(last.To, req.End) {
				t.Errorf("last command %+v does not end at %v", last, req.End)
			}
		})
	}
}

func TestRoute_DetoursAroundObstacle(t *testing.T) {
	for _, strict := range []bool{false, true} {
		opts := DefaultOptions()
		opts.StrictSegments = strict
		res := NewRouter(opts).Route(context.Background(), exampleRequest(core.ModeOrthogonal, false))

		if res.Fallback {
			t.Fatalf("unexpected fallback: %v", res.Err)
		}

		detoured := false
		for _, p := range res.Points {
			if p.Y <= -20 || p.Y >= 120 {
				detoured = true
			}
		}
		if !detoured {
			t.Errorf("strict=%v: expected a detour above or below the wall, got %v", strict, res.Points)
		}
	}
}

func TestRoute_RespectsCollisionBounds(t *testing.T) {
	req := exampleRequest(core.ModeOrthogonal, false)
	req.SourceHandle = core.HandleRight
	req.TargetHandle = core.HandleLeft
	res := NewRouter(DefaultOptions()).Route(context.Background(), req)
	if res.Fallback {
		t.Fatalf("unexpected fallback: %v", res.Err)
	}

	_, _, wall := exampleDiagram()
	bounds := geometry.RectOf(wall).Inflate(DefaultCollisionMargin)
	const samples = 20
	for i := 1; i < len(res.Points); i++ {
		a, b := res.Points[i-1], res.Points[i]
		for s := 0; s <= samples; s++ {
			f := float64(s) / samples
			p := core.Point{X: a.X + (b.X-a.X)*f, Y: a.Y + (b.Y-a.Y)*f}
			if bounds.Contains(p) {
				t.Fatalf("segment %v-%v enters the wall at %v", a, b, p)
			}
		}
	}
}

func TestRoute_AxisPurity(t *testing.T) {
	handles := []core.Handle{core.HandleNone, core.HandleTop, core.HandleRight, core.HandleBottom, core.HandleLeft}
	router := NewRouter(DefaultOptions())

	for _, sh := range handles {
		for _, th := range handles {
			req := exampleRequest(core.ModeOrthogonal, false)
			req.SourceHandle = sh
			req.TargetHandle = th
			req.Start = req.Source.Anchor(sh)
			req.End = req.Target.Anchor(th)

			res := router.Route(context.Background(), req)
			if res.Fallback {
				t.Errorf("%v->%v: unexpected fallback: %v", sh, th, res.Err)
				continue
			}
			if !pathfinding.IsOrthogonal(res.Points) {
				t.Errorf("%v->%v: path is not orthogonal: %v", sh, th, res.Points)
			}
		}
	}
}

func TestRoute_HandleExitsOutward(t *testing.T) {
	req := exampleRequest(core.ModeOrthogonal, false)
	req.Start = req.Source.Anchor(core.HandleTop)
	req.SourceHandle = core.HandleTop
	res := NewRouter(DefaultOptions()).Route(context.Background(), req)

	if res.Fallback {
		t.Fatalf("unexpected fallback: %v", res.Err)
	}
	first, second := res.Points[0], res.Points[1]
	if first.X != second.X || second.Y >= first.Y {
		t.Errorf("route should leave a top handle upward, got %v -> %v", first, second)
	}
}

func TestRoute_FallbackGuarantee(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	router := NewRouter(Options{MaxIterations: 1, Logger: logger})

	req := exampleRequest(core.ModeOrthogonal, true)
	res := router.Route(context.Background(), req)

	if !res.Fallback {
		t.Fatal("expected a fallback with an iteration cap of 1")
	}
	if !errors.Is(res.Err, pathfinding.ErrIterationLimit) {
		t.Errorf("Err = %v, want ErrIterationLimit", res.Err)
	}
	if len(res.Points) != 2 || res.Points[0] != req.Start || res.Points[1] != req.End {
		t.Errorf("fallback should be [start end], got %v", res.Points)
	}
	if len(res.Commands) != 2 {
		t.Errorf("fallback should render as one line, got %+v", res.Commands)
	}
	if !strings.Contains(buf.String(), "fell back") {
		t.Errorf("expected a debug log entry, got %q", buf.String())
	}
}

func TestRoute_CancelledContextFallsBack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewRouter(DefaultOptions()).Route(ctx, exampleRequest(core.ModeOrthogonal, false))
	if !res.Fallback || !errors.Is(res.Err, context.Canceled) {
		t.Errorf("expected cancellation fallback, got fallback=%v err=%v", res.Fallback, res.Err)
	}
}

func TestRoute_CoincidentEndpoints(t *testing.T) {
	p := core.Point{X: 10, Y: 10}
	res := NewRouter(DefaultOptions()).Route(context.Background(), EdgeRequest{
		Start: p, End: p, Mode: core.ModeOrthogonal, Smooth: true,
	})
	if res.Fallback {
		t.Errorf("coincident endpoints are not a failure: %v", res.Err)
	}
	for _, c := range res.Commands {
		if c.Kind == core.QuadTo {
			t.Errorf("no curve expected for a zero-length edge: %+v", c)
		}
	}
}

func TestRoute_RoundedUsesQuadratics(t *testing.T) {
	res := NewRouter(DefaultOptions()).Route(context.Background(), exampleRequest(core.ModeOrthogonal, true))
	quads := 0
	for _, c := range res.Commands {
		if c.Kind == core.QuadTo {
			quads++
		}
	}
	if quads != len(res.Points)-2 {
		t.Errorf("expected one curve per corner: %d curves for %d points", quads, len(res.Points))
	}
}

func TestRoute_DoesNotMutateNodes(t *testing.T) {
	req := exampleRequest(core.ModeOrthogonal, false)
	before := append([]core.Node(nil), req.Nodes...)
	NewRouter(DefaultOptions()).Route(context.Background(), req)

	for i := range before {
		if req.Nodes[i] != before[i] {
			t.Errorf("node %d changed: %+v -> %+v", i, before[i], req.Nodes[i])
		}
	}
}

func TestComputeEdgePathPackageFunc(t *testing.T) {
	source, target, wall := exampleDiagram()
	cmds := ComputeEdgePath(core.Point{X: 0, Y: 50}, core.Point{X: 200, Y: 50}, source, target,
		core.HandleRight, core.HandleLeft, []core.Node{source, target, wall}, core.ModeOrthogonal, false)

	if len(cmds) <= 2 {
		t.Errorf("expected a detour, got %+v", cmds)
	}
}

func TestRoute_EndpointNodesOnlyIsTrivial(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	router := NewRouter(DefaultOptions())

	for i := 0; i < 500; i++ {
		source := core.Node{ID: "s", X: rng.Float64() * 400, Y: rng.Float64() * 400, Width: 10 + rng.Float64()*80, Height: 10 + rng.Float64()*80}
		target := core.Node{ID: "t", X: rng.Float64() * 400, Y: rng.Float64() * 400, Width: 10 + rng.Float64()*80, Height: 10 + rng.Float64()*80}
		req := EdgeRequest{
			Start:  source.Center(),
			End:    target.Center(),
			Source: source,
			Target: target,
			Nodes:  []core.Node{source, target},
			Mode:   core.ModeOrthogonal,
		}

		res := router.Route(context.Background(), req)
		if res.Fallback {
			t.Fatalf("scene %d: unexpected fallback: %v", i, res.Err)
		}
		if len(res.Points) > 3 {
			t.Fatalf("scene %d: expected at most one bend, got %v", i, res.Points)
		}
		if res.Points[0] != req.Start || res.Points[len(res.Points)-1] != req.End {
			t.Fatalf("scene %d: endpoints changed: %v", i, res.Points)
		}
	}
}

func TestRoute_DoesNotCrossOwnNodes(t *testing.T) {
	source := core.Node{ID: "s", X: 0, Y: 0, Width: 40, Height: 40}
	target := core.Node{ID: "t", X: -200, Y: 0, Width: 40, Height: 40}

	for _, strict := range []bool{false, true} {
		opts := DefaultOptions()
		opts.StrictSegments = strict
		req := EdgeRequest{
			Start:        source.Anchor(core.HandleRight),
			End:          target.Anchor(core.HandleLeft),
			Source:       source,
			Target:       target,
			SourceHandle: core.HandleRight,
			TargetHandle: core.HandleLeft,
			Nodes:        []core.Node{source, target},
			Mode:         core.ModeOrthogonal,
		}

		res := NewRouter(opts).Route(context.Background(), req)
		if res.Fallback {
			t.Fatalf("strict=%v: unexpected fallback: %v", strict, res.Err)
		}
		for i := 1; i < len(res.Points); i++ {
			a, b := res.Points[i-1], res.Points[i]
			for _, n := range []core.Node{source, target} {
				if geometry.RectOf(n).SegmentCrosses(a, b) {
					t.Errorf("strict=%v: segment %v-%v crosses node %s", strict, a, b, n.ID)
				}
			}
		}
	}
}

func TestOptions_GoalTolerance(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero selects default", 0, pathfinding.DefaultGoalTolerance},
		{"exact goal kept", ExactGoal, ExactGoal},
		{"explicit value kept", 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewRouter(Options{GoalTolerance: tt.in}).Options().GoalTolerance
			if got != tt.want {
				t.Errorf("GoalTolerance = %v, want %v", got, tt.want)
			}
		})
	}
}
