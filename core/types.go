// Package core contains the fundamental types shared by the edge router and its renderers.
package core

import "strings"

// Point represents a 2D coordinate in canvas space.
type Point struct {
	X, Y float64
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Handle is the side of a node an edge attaches to.
type Handle int

const (
	HandleNone Handle = iota
	HandleTop
	HandleRight
	HandleBottom
	HandleLeft
)

// String returns the string representation of a Handle.
func (h Handle) String() string {
	switch h {
	case HandleTop:
		return "top"
	case HandleRight:
		return "right"
	case HandleBottom:
		return "bottom"
	case HandleLeft:
		return "left"
	default:
		return ""
	}
}

// ParseHandle maps a handle name to a Handle. Unknown names yield HandleNone.
func ParseHandle(s string) Handle {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return HandleTop
	case "right":
		return HandleRight
	case "bottom":
		return HandleBottom
	case "left":
		return HandleLeft
	default:
		return HandleNone
	}
}

// Vector returns the outward unit vector of the handle. Y grows downward,
// so HandleTop points to negative Y.
func (h Handle) Vector() (dx, dy float64) {
	switch h {
	case HandleTop:
		return 0, -1
	case HandleRight:
		return 1, 0
	case HandleBottom:
		return 0, 1
	case HandleLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// RouteMode selects the routing algorithm.
type RouteMode int

const (
	ModeDefault RouteMode = iota
	ModeOrthogonal
)

// String returns the string representation of a RouteMode.
func (m RouteMode) String() string {
	if m == ModeOrthogonal {
		return "orthogonal"
	}
	return "default"
}

// ParseMode maps a mode name to a RouteMode. Anything but "orthogonal" is ModeDefault.
func ParseMode(s string) RouteMode {
	if strings.EqualFold(strings.TrimSpace(s), "orthogonal") {
		return ModeOrthogonal
	}
	return ModeDefault
}

// Node is the geometry of a box in the diagram.
type Node struct {
	ID     string  `json:"id" yaml:"id"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Center returns the center point of the node.
func (n Node) Center() Point {
	return Point{X: n.X + n.Width/2, Y: n.Y + n.Height/2}
}

// Anchor returns the midpoint of the side named by h, or the center for HandleNone.
func (n Node) Anchor(h Handle) Point {
	c := n.Center()
	switch h {
	case HandleTop:
		return Point{X: c.X, Y: n.Y}
	case HandleRight:
		return Point{X: n.X + n.Width, Y: c.Y}
	case HandleBottom:
		return Point{X: c.X, Y: n.Y + n.Height}
	case HandleLeft:
		return Point{X: n.X, Y: c.Y}
	default:
		return c
	}
}

// Edge connects two nodes by ID.
type Edge struct {
	ID           string
	Source       string
	Target       string
	SourceHandle Handle
	TargetHandle Handle
}

// Path represents a route through the canvas.
type Path struct {
	Points []Point
	Cost   float64 // Used by pathfinding algorithms
}

// Length returns the number of points in the path.
func (p Path) Length() int {
	return len(p.Points)
}

// IsEmpty returns true if the path has no points.
func (p Path) IsEmpty() bool {
	return len(p.Points) == 0
}

// CommandKind identifies a drawing command.
type CommandKind int

const (
	MoveTo CommandKind = iota
	LineTo
	QuadTo
	CubicTo
)

// String returns the SVG letter for the command.
func (k CommandKind) String() string {
	switch k {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case QuadTo:
		return "Q"
	case CubicTo:
		return "C"
	default:
		return "?"
	}
}

// PathCommand is one drawing instruction. Ctrl1 is used by QuadTo and CubicTo,
// Ctrl2 only by CubicTo.
type PathCommand struct {
	Kind  CommandKind
	Ctrl1 Point
	Ctrl2 Point
	To    Point
}
