// Package render is the seam between game logic and the graphics backend.
// Game code draws through these interfaces so it can be tested with fakes
// and run headless.
package render

import (
	"image"
	"image/color"
)

// Renderer draws primitives and text onto images.
type Renderer interface {
	FillRect(dst Image, x, y, width, height float32, clr color.Color)
	StrokeRect(dst Image, x, y, width, height, strokeWidth float32, clr color.Color)

	// DrawText draws str with its top-left corner at (x, y), scaled from
	// the backend's base font.
	DrawText(dst Image, str string, x, y int, clr color.Color, scale float64)
}

// Image is a drawable surface. Sub-images share pixels with their parent.
type Image interface {
	Bounds() image.Rectangle
	Size() (width, height int)
	SubImage(r image.Rectangle) Image
	Fill(clr color.Color)
	DrawImage(src Image, opts *DrawImageOptions)
}

// DrawImageOptions positions a source image on its destination.
type DrawImageOptions struct {
	GeoM GeoM
}

// GeoM is an affine transform applied to a source image.
type GeoM interface {
	Translate(tx, ty float64)
	Scale(sx, sy float64)
}

// NewGeoM creates an identity transform. Set by the backend.
var NewGeoM func() GeoM

// InputManager reports keyboard and gamepad state for the current tick.
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool

	// Axes returns the left stick of the first connected gamepad, x right and
	// y up, each in [-1, 1]. Zero when no gamepad is connected.
	Axes() (dx, dy float64)

	IsButtonPressed(button Button) bool
	IsButtonJustPressed(button Button) bool
}

// Key is a keyboard key the game binds.
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyJ // Attack
	KeyK // Block
	KeyM // Music toggle
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEnter
	KeyShift
	KeyEscape
	KeyF3 // Debug overlay
)

// Button is a gamepad button in the standard layout.
type Button int

const (
	ButtonAttack Button = iota // Bottom face button
	ButtonBlock                // Right face button
	ButtonStart
)

// ResourceLoader loads images from disk.
type ResourceLoader interface {
	LoadImage(path string) (Image, error)
}

// Game is driven by an Engine once per tick and once per frame.
type Game interface {
	Update() error
	Draw(screen Image)
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine owns the window and the main loop.
type Engine interface {
	SetWindowSize(width, height int)
	SetWindowTitle(title string)
	SetWindowResizable(resizable bool)

	// RunGame blocks until the game returns an error from Update or the
	// window is closed.
	RunGame(game Game) error
}
