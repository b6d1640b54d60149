package game

import (
	"math"

	"chosenoffset.com/thornvale/internal/core/geom"
)

// KinematicBody is the player's physical state in the world. Position is the
// bottom-left corner of the sprite in y-up world units; the body never leaves
// its bounds.
type KinematicBody struct {
	Pos    geom.Point
	Size   geom.Size
	Bounds geom.Rect
}

// Move integrates a velocity over dt and clamps the result to Bounds
func (b *KinematicBody) Move(vx, vy, dt float64) {
	b.Pos = b.clamp(b.Pos.Add(vx*dt, vy*dt))
}

// Place teleports the body, clamped to Bounds
func (b *KinematicBody) Place(p geom.Point) {
	b.Pos = b.clamp(p)
}

func (b *KinematicBody) clamp(p geom.Point) geom.Point {
	if b.Bounds.W <= 0 || b.Bounds.H <= 0 {
		return p
	}
	p.X = clamp(p.X, b.Bounds.Left(), b.Bounds.Right()-b.Size.W)
	p.Y = clamp(p.Y, b.Bounds.Bottom(), b.Bounds.Top()-b.Size.H)
	return p
}

// Center returns the middle of the sprite
func (b *KinematicBody) Center() geom.Point {
	return b.Pos.Add(b.Size.W/2, b.Size.H/2)
}

// Rect returns the sprite's world rectangle
func (b *KinematicBody) Rect() geom.Rect {
	return geom.Rect{X: b.Pos.X, Y: b.Pos.Y, W: b.Size.W, H: b.Size.H}
}

// Camera tracks the viewport for scrolling large maps. Center is in world
// units; the screen is y-down.
type Camera struct {
	Center   geom.Point
	Viewport geom.Size
}

// Follow centers the camera on target. With clampTo set, the view is kept
// inside the map; an axis where the map is smaller than the view is centered.
func (c *Camera) Follow(target geom.Point, bounds geom.Rect, clampTo bool) {
	c.Center = target
	if !clampTo {
		return
	}
	c.Center.X = clampAxis(c.Center.X, bounds.Left(), bounds.Right(), c.Viewport.W)
	c.Center.Y = clampAxis(c.Center.Y, bounds.Bottom(), bounds.Top(), c.Viewport.H)
}

// ToScreen converts a world point to screen pixels
func (c *Camera) ToScreen(p geom.Point) (x, y float64) {
	x = p.X - (c.Center.X - c.Viewport.W/2)
	y = (c.Center.Y + c.Viewport.H/2) - p.Y
	return x, y
}

// RectToScreen returns the top-left screen corner of a world rectangle
func (c *Camera) RectToScreen(r geom.Rect) (x, y float64) {
	return c.ToScreen(geom.Point{X: r.Left(), Y: r.Top()})
}

// View returns the world rectangle the camera shows
func (c *Camera) View() geom.Rect {
	return geom.CenteredAt(c.Center, c.Viewport)
}

func clampAxis(v, lo, hi, view float64) float64 {
	if hi-lo <= view {
		return (lo + hi) / 2
	}
	return clamp(v, lo+view/2, hi-view/2)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}
