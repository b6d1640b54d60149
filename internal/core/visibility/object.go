package visibility

import "chosenoffset.com/thornvale/internal/core/geom"

// PlacedObject is a static decoration or obstacle sprite placed in the world.
// Identity is the pointer; two objects are never equal by value.
type PlacedObject struct {
	Name        string  // Map name, used for logs and debugging
	Tile        string  // Renderer lookup key
	X, Y        float64 // Bottom-left corner in world units
	W, H        float64
	DepthOffset float64 // Shifts the sort origin, e.g. for tall sprites
	Background  bool    // Drawn beneath everything, never depth-sorted
}

// DepthKey returns the painter's sort key. Larger keys draw earlier.
func (o *PlacedObject) DepthKey() float64 {
	return o.Y + o.DepthOffset
}

// Bounds returns the axis-aligned bounding box
func (o *PlacedObject) Bounds() geom.Rect {
	return geom.Rect{X: o.X, Y: o.Y, W: o.W, H: o.H}
}
