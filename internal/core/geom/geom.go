// Package geom holds the small set of 2D value types shared by the game core.
// World coordinates are orthographic with the y-axis pointing up.
package geom

import "math"

// Point represents a 2D point in world space
type Point struct {
	X, Y float64
}

// Add returns p translated by (dx, dy)
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// DistanceTo calculates the Euclidean distance between two points
func (p Point) DistanceTo(q Point) float64 {
	return Distance(p, q)
}

// IsFinite reports whether both coordinates are finite numbers
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Size is a width/height pair
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle anchored at its bottom-left corner
type Rect struct {
	X, Y float64 // Bottom-left corner
	W, H float64
}

// CenteredAt returns a rectangle of the given size centered on c
func CenteredAt(c Point, s Size) Rect {
	return Rect{X: c.X - s.W/2, Y: c.Y - s.H/2, W: s.W, H: s.H}
}

// Left returns the minimum x
func (r Rect) Left() float64 { return r.X }

// Right returns the maximum x
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the minimum y
func (r Rect) Bottom() float64 { return r.Y }

// Top returns the maximum y
func (r Rect) Top() float64 { return r.Y + r.H }

// Center returns the midpoint of the rectangle
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Intersects reports whether two rectangles overlap. Touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	return o.Right() > r.Left() && o.Left() < r.Right() &&
		o.Bottom() < r.Top() && o.Top() > r.Bottom()
}

// Contains reports whether p lies inside r (edges inclusive)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Bottom() && p.Y <= r.Top()
}

// Inflate grows the rectangle by m on every side. Negative m shrinks it.
func (r Rect) Inflate(m float64) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, W: r.W + 2*m, H: r.H + 2*m}
}

// DistanceTo returns the distance from p to the closest point of r, zero when inside
func (r Rect) DistanceTo(p Point) float64 {
	cx := math.Max(r.Left(), math.Min(p.X, r.Right()))
	cy := math.Max(r.Bottom(), math.Min(p.Y, r.Top()))
	return Distance(p, Point{X: cx, Y: cy})
}

// Distance calculates the Euclidean distance between two points
func Distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}
