package render

import (
	"math"
	"testing"

	"edgeroute/core"
)

func TestSharp(t *testing.T) {
	points := []core.Point{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}}
	cmds := Sharp(points)

	if len(cmds) != 3 {
		t.Fatalf("got %d commands, want 3", len(cmds))
	}
	if cmds[0].Kind != core.MoveTo {
		t.Errorf("first command should be MoveTo, got %v", cmds[0].Kind)
	}
	for i, c := range cmds[1:] {
		if c.Kind != core.LineTo || c.To != points[i+1] {
			t.Errorf("command %d = %+v", i+1, c)
		}
	}
	if Sharp(nil) != nil {
		t.Error("no points should produce no commands")
	}
}

func TestRoundedCorner(t *testing.T) {
	points := []core.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}}
	cmds := Rounded(points, 10)

	want := []core.PathCommand{
		{Kind: core.MoveTo, To: core.Point{X: 0, Y: 0}},
		{Kind: core.LineTo, To: core.Point{X: 90, Y: 0}},
		{Kind: core.QuadTo, Ctrl1: core.Point{X: 100, Y: 0}, To: core.Point{X: 100, Y: 10}},
		{Kind: core.LineTo, To: core.Point{X: 100, Y: 100}},
	}
	if len(cmds) != len(want) {
		t.Fatalf("got %d commands, want %d: %+v", len(cmds), len(want), cmds)
	}
	for i := range want {
		if cmds[i] != want[i] {
			t.Errorf("command %d = %+v, want %+v", i, cmds[i], want[i])
		}
	}
}

func TestCornerRadiusBound(t *testing.T) {
	tests := []struct {
		name             string
		prev, corner, nx core.Point
		radius           float64
		want             float64
	}{
		{"long segments", core.Point{X: 0, Y: 0}, core.Point{X: 100, Y: 0}, core.Point{X: 100, Y: 100}, 10, 10},
		{"short incoming", core.Point{X: 94, Y: 0}, core.Point{X: 100, Y: 0}, core.Point{X: 100, Y: 100}, 10, 3},
		{"both short", core.Point{X: 92, Y: 0}, core.Point{X: 100, Y: 0}, core.Point{X: 100, Y: 4}, 10, 2},
		{"zero length", core.Point{X: 100, Y: 0}, core.Point{X: 100, Y: 0}, core.Point{X: 100, Y: 100}, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CornerRadius(tt.prev, tt.corner, tt.nx, tt.radius)
			if got != tt.want {
				t.Errorf("CornerRadius = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoundedShortSegmentsDoNotOverlap(t *testing.T) {
	// A zigzag with 6-unit steps: each curve may only eat 3 units of a segment.
	points := []core.Point{{X: 0, Y: 0}, {X: 6, Y: 0}, {X: 6, Y: 6}, {X: 12, Y: 6}}
	cmds := Rounded(points, 10)

	for _, c := range cmds {
		if c.Kind != core.QuadTo {
			continue
		}
		d := math.Hypot(c.To.X-c.Ctrl1.X, c.To.Y-c.Ctrl1.Y)
		if d > 3+1e-9 {
			t.Errorf("curve end %v is %v from its corner, want <= 3", c.To, d)
		}
	}
}

func TestRoundedDegenerateGeometry(t *testing.T) {
	points := []core.Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 50}}
	cmds := Rounded(points, 10)

	for _, c := range cmds {
		if c.Kind == core.QuadTo {
			t.Errorf("zero-length segment should not produce a curve: %+v", c)
		}
		if math.IsNaN(c.To.X) || math.IsNaN(c.To.Y) {
			t.Errorf("command has NaN coordinates: %+v", c)
		}
	}
	if first, last := cmds[0].To, cmds[len(cmds)-1].To; first != points[0] || last != points[2] {
		t.Errorf("endpoints changed: %v %v", first, last)
	}
}

func TestCommandsDefaultsRadius(t *testing.T) {
	points := []core.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}}
	cmds := Commands(points, Options{Rounded: true})
	if cmds[1].To != (core.Point{X: 100 - DefaultCornerRadius, Y: 0}) {
		t.Errorf("expected default radius, got %+v", cmds[1])
	}
	if len(Commands(points, Options{})) != 3 {
		t.Error("sharp rendering expected when Rounded is false")
	}
}
