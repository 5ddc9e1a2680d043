// Package terminal previews routed diagrams in a terminal.
package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/gdamore/tcell/v2"

	"edgeroute/connections"
	"edgeroute/core"
	"edgeroute/export"
	"edgeroute/geometry"
	"edgeroute/render"
	"edgeroute/scene"
)

var (
	nodeStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	edgeStyle     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	fallbackStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
	statusStyle   = tcell.StyleDefault.Reverse(true)
)

// Viewer draws a scene onto a tcell screen and re-routes it when routing
// settings are toggled.
type Viewer struct {
	screen tcell.Screen
	scene  *scene.Scene
	logger *slog.Logger

	mode   core.RouteMode
	smooth bool
	strict bool

	drawing export.Drawing
}

// NewViewer creates a viewer for s. The screen must already be initialised.
func NewViewer(screen tcell.Screen, s *scene.Scene, logger *slog.Logger) *Viewer {
	return &Viewer{
		screen: screen,
		scene:  s,
		logger: logger,
		mode:   s.Mode(),
		smooth: s.Settings.Smooth,
		strict: s.Settings.StrictSegments,
	}
}

// Reroute recomputes every edge with the current settings.
func (v *Viewer) Reroute(ctx context.Context) {
	opts := v.scene.RouterOptions(v.logger)
	opts.StrictSegments = v.strict
	router := connections.NewRouter(opts)

	results := router.RouteEdges(ctx, v.scene.Nodes, v.scene.CoreEdges(), v.mode, v.smooth)
	v.drawing = export.Drawing{Nodes: v.scene.Nodes, Edges: make([]export.RoutedEdge, 0, len(results))}
	for i, res := range results {
		if res.Commands == nil {
			continue
		}
		v.drawing.Edges = append(v.drawing.Edges, export.RoutedEdge{
			ID:       res.Edge.ID,
			Label:    v.scene.Label(i),
			Commands: res.Commands,
			Fallback: res.Fallback,
		})
	}
}

// Status describes the current routing settings.
func (v *Viewer) Status() string {
	return fmt.Sprintf(" mode=%s smooth=%s strict=%s  [o]rthogonal [s]mooth [x]strict [q]uit",
		v.mode, onOff(v.smooth), onOff(v.strict))
}

// HandleKey applies a key press and reports whether the viewer should exit.
func (v *Viewer) HandleKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 'o':
		if v.mode == core.ModeOrthogonal {
			v.mode = core.ModeDefault
		} else {
			v.mode = core.ModeOrthogonal
		}
	case 's':
		v.smooth = !v.smooth
	case 'x':
		v.strict = !v.strict
	default:
		return false
	}
	v.Reroute(ctx)
	return false
}

// Run routes the scene and processes events until the user quits or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	v.Reroute(ctx)
	v.Draw()

	// Wake PollEvent when ctx is done.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			v.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			continue
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.HandleKey(ctx, ev) {
				return nil
			}
		}
		v.Draw()
	}
}

// Draw renders the current drawing scaled to fit the screen.
func (v *Viewer) Draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	if w < 3 || h < 3 {
		v.screen.Show()
		return
	}

	vp := newViewport(export.Bounds(&v.drawing).Inflate(10), w, h-1)

	for _, n := range v.drawing.Nodes {
		v.drawBox(vp, geometry.RectOf(n))
	}
	for _, e := range v.drawing.Edges {
		style := edgeStyle
		if e.Fallback {
			style = fallbackStyle
		}
		v.drawPolyline(vp, render.Flatten(e.Commands, render.DefaultCurveSteps), style)
	}

	status := []rune(v.Status())
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(status) {
			r = status[x]
		}
		v.screen.SetContent(x, h-1, r, nil, statusStyle)
	}
	v.screen.Show()
}

func (v *Viewer) drawBox(vp viewport, r geometry.Rect) {
	x0, y0 := vp.cell(core.Point{X: r.Left, Y: r.Top})
	x1, y1 := vp.cell(core.Point{X: r.Right, Y: r.Bottom})
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	for x := x0 + 1; x < x1; x++ {
		v.screen.SetContent(x, y0, '─', nil, nodeStyle)
		v.screen.SetContent(x, y1, '─', nil, nodeStyle)
	}
	for y := y0 + 1; y < y1; y++ {
		v.screen.SetContent(x0, y, '│', nil, nodeStyle)
		v.screen.SetContent(x1, y, '│', nil, nodeStyle)
	}
	v.screen.SetContent(x0, y0, '┌', nil, nodeStyle)
	v.screen.SetContent(x1, y0, '┐', nil, nodeStyle)
	v.screen.SetContent(x0, y1, '└', nil, nodeStyle)
	v.screen.SetContent(x1, y1, '┘', nil, nodeStyle)
}

// drawPolyline steps through each segment one cell at a time.
func (v *Viewer) drawPolyline(vp viewport, points []core.Point, style tcell.Style) {
	for i := 1; i < len(points); i++ {
		ax, ay := vp.cell(points[i-1])
		bx, by := vp.cell(points[i])
		ch := '•'
		switch {
		case ay == by && ax != bx:
			ch = '─'
		case ax == bx && ay != by:
			ch = '│'
		}

		steps := max(abs(bx-ax), abs(by-ay))
		for s := 0; s <= steps; s++ {
			x, y := ax, ay
			if steps > 0 {
				x = ax + int(math.Round(float64((bx-ax)*s)/float64(steps)))
				y = ay + int(math.Round(float64((by-ay)*s)/float64(steps)))
			}
			v.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

// viewport maps canvas coordinates to screen cells.
type viewport struct {
	origin core.Point
	sx, sy float64
}

func newViewport(bounds geometry.Rect, cols, rows int) viewport {
	sx := bounds.Width() / float64(cols-1)
	sy := bounds.Height() / float64(rows-1)
	if sx <= 0 {
		sx = 1
	}
	if sy <= 0 {
		sy = 1
	}
	return viewport{origin: core.Point{X: bounds.Left, Y: bounds.Top}, sx: sx, sy: sy}
}

func (vp viewport) cell(p core.Point) (int, int) {
	return int(math.Round((p.X - vp.origin.X) / vp.sx)), int(math.Round((p.Y - vp.origin.Y) / vp.sy))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
