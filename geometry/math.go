package geometry

import (
	"math"

	"edgeroute/core"
)

// Epsilon is the tolerance used when comparing canvas coordinates.
const Epsilon = 1e-6

// AlmostEqual reports whether a and b differ by no more than Epsilon.
func AlmostEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// SamePoint reports whether two points coincide within Epsilon.
func SamePoint(a, b core.Point) bool {
	return AlmostEqual(a.X, b.X) && AlmostEqual(a.Y, b.Y)
}

// ManhattanDistance calculates the Manhattan distance between two points.
func ManhattanDistance(a, b core.Point) float64 {
	return math.Abs(b.X-a.X) + math.Abs(b.Y-a.Y)
}

// EuclideanDistance calculates the straight-line distance between two points.
func EuclideanDistance(a, b core.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b core.Point) core.Point {
	return core.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// IsHorizontal returns true if the segment from a to b keeps a constant Y.
func IsHorizontal(a, b core.Point) bool {
	return AlmostEqual(a.Y, b.Y)
}

// IsVertical returns true if the segment from a to b keeps a constant X.
func IsVertical(a, b core.Point) bool {
	return AlmostEqual(a.X, b.X)
}
