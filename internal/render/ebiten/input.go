package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"chosenoffset.com/thornvale/internal/render"
)

var keys = map[render.Key]ebiten.Key{
	render.KeyW:      ebiten.KeyW,
	render.KeyA:      ebiten.KeyA,
	render.KeyS:      ebiten.KeyS,
	render.KeyD:      ebiten.KeyD,
	render.KeyJ:      ebiten.KeyJ,
	render.KeyK:      ebiten.KeyK,
	render.KeyM:      ebiten.KeyM,
	render.KeyUp:     ebiten.KeyArrowUp,
	render.KeyDown:   ebiten.KeyArrowDown,
	render.KeyLeft:   ebiten.KeyArrowLeft,
	render.KeyRight:  ebiten.KeyArrowRight,
	render.KeySpace:  ebiten.KeySpace,
	render.KeyEnter:  ebiten.KeyEnter,
	render.KeyShift:  ebiten.KeyShift,
	render.KeyEscape: ebiten.KeyEscape,
	render.KeyF3:     ebiten.KeyF3,
}

var buttons = map[render.Button]ebiten.StandardGamepadButton{
	render.ButtonAttack: ebiten.StandardGamepadButtonRightBottom,
	render.ButtonBlock:  ebiten.StandardGamepadButtonRightRight,
	render.ButtonStart:  ebiten.StandardGamepadButtonCenterRight,
}

// Input reads the keyboard and the first gamepad with a standard layout.
type Input struct {
	ids []ebiten.GamepadID
}

// NewInputManager creates an ebiten input manager.
func NewInputManager() render.InputManager {
	return &Input{}
}

func (in *Input) IsKeyPressed(key render.Key) bool {
	k, ok := keys[key]
	return ok && ebiten.IsKeyPressed(k)
}

func (in *Input) IsKeyJustPressed(key render.Key) bool {
	k, ok := keys[key]
	return ok && inpututil.IsKeyJustPressed(k)
}

func (in *Input) Axes() (dx, dy float64) {
	id, ok := in.gamepad()
	if !ok {
		return 0, 0
	}
	dx = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	// Standard layout reports up as negative
	dy = -ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	return dx, dy
}

func (in *Input) IsButtonPressed(button render.Button) bool {
	b, bok := buttons[button]
	id, ok := in.gamepad()
	return bok && ok && ebiten.IsStandardGamepadButtonPressed(id, b)
}

func (in *Input) IsButtonJustPressed(button render.Button) bool {
	b, bok := buttons[button]
	id, ok := in.gamepad()
	return bok && ok && inpututil.IsStandardGamepadButtonJustPressed(id, b)
}

func (in *Input) gamepad() (ebiten.GamepadID, bool) {
	in.ids = ebiten.AppendGamepadIDs(in.ids[:0])
	for _, id := range in.ids {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			return id, true
		}
	}
	return 0, false
}
