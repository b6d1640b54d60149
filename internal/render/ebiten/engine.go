package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"chosenoffset.com/thornvale/internal/render"
)

// Loader decodes images from disk into GPU images.
type Loader struct{}

// NewResourceLoader creates an ebiten image loader.
func NewResourceLoader() render.ResourceLoader {
	return Loader{}
}

func (Loader) LoadImage(path string) (render.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, err
	}
	return &Image{img: img}, nil
}

// Engine runs a render.Game in an ebiten window.
type Engine struct{}

// NewEngine creates an ebiten engine.
func NewEngine() render.Engine {
	return Engine{}
}

func (Engine) SetWindowSize(width, height int) { ebiten.SetWindowSize(width, height) }
func (Engine) SetWindowTitle(title string)     { ebiten.SetWindowTitle(title) }

func (Engine) SetWindowResizable(resizable bool) {
	mode := ebiten.WindowResizingModeDisabled
	if resizable {
		mode = ebiten.WindowResizingModeEnabled
	}
	ebiten.SetWindowResizingMode(mode)
}

func (Engine) RunGame(game render.Game) error {
	return ebiten.RunGame(adapter{game})
}

// adapter satisfies ebiten.Game, wrapping the screen on every frame.
type adapter struct {
	game render.Game
}

func (a adapter) Update() error        { return a.game.Update() }
func (a adapter) Draw(s *ebiten.Image) { a.game.Draw(&Image{img: s}) }

func (a adapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
