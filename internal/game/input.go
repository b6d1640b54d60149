package game

import (
	"math"

	"chosenoffset.com/thornvale/internal/render"
)

// walkScale is the stick magnitude used for keyboard movement with Shift held.
// It sits at the default run threshold, which still counts as walking.
const walkScale = 0.5

// Intent is one tick of player input
type Intent struct {
	DX, DY    float64 // Stick vector, y up, length at most 1
	Attack    bool    // Attack pressed this tick
	BlockHeld bool    // Guard button held
}

// ReadIntent samples the keyboard first and falls back to the gamepad stick
func ReadIntent(in render.InputManager) Intent {
	var it Intent

	if in.IsKeyPressed(render.KeyD) || in.IsKeyPressed(render.KeyRight) {
		it.DX++
	}
	if in.IsKeyPressed(render.KeyA) || in.IsKeyPressed(render.KeyLeft) {
		it.DX--
	}
	if in.IsKeyPressed(render.KeyW) || in.IsKeyPressed(render.KeyUp) {
		it.DY++
	}
	if in.IsKeyPressed(render.KeyS) || in.IsKeyPressed(render.KeyDown) {
		it.DY--
	}

	if it.DX != 0 || it.DY != 0 {
		scale := 1 / math.Hypot(it.DX, it.DY)
		if in.IsKeyPressed(render.KeyShift) {
			scale *= walkScale
		}
		it.DX *= scale
		it.DY *= scale
	} else {
		it.DX, it.DY = in.Axes()
		if l := math.Hypot(it.DX, it.DY); l > 1 {
			it.DX /= l
			it.DY /= l
		}
	}

	it.Attack = in.IsKeyJustPressed(render.KeyJ) || in.IsKeyJustPressed(render.KeySpace) ||
		in.IsButtonJustPressed(render.ButtonAttack)
	it.BlockHeld = in.IsKeyPressed(render.KeyK) || in.IsButtonPressed(render.ButtonBlock)
	return it
}
