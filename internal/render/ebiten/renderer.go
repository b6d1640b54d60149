// Package ebiten implements the render interfaces on Ebitengine.
package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/thornvale/internal/render"
)

// Debug font cell size
const (
	glyphWidth  = 6
	glyphHeight = 16
)

func init() {
	render.NewGeoM = NewGeoM
}

// Renderer draws with ebiten's vector package. Text is rasterised once per
// string with the debug font, then tinted and scaled on draw.
type Renderer struct {
	text map[string]*ebiten.Image
}

// NewRenderer creates an ebiten renderer.
func NewRenderer() render.Renderer {
	return &Renderer{text: make(map[string]*ebiten.Image)}
}

func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	vector.DrawFilledRect(unwrap(dst), x, y, width, height, clr, false)
}

func (r *Renderer) StrokeRect(dst render.Image, x, y, width, height, strokeWidth float32, clr color.Color) {
	vector.StrokeRect(unwrap(dst), x, y, width, height, strokeWidth, clr, false)
}

func (r *Renderer) DrawText(dst render.Image, str string, x, y int, clr color.Color, scale float64) {
	if str == "" {
		return
	}
	if scale <= 0 {
		scale = 1
	}

	src, ok := r.text[str]
	if !ok {
		src = ebiten.NewImage(len(str)*glyphWidth, glyphHeight)
		ebitenutil.DebugPrint(src, str)
		r.text[str] = src
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(scale, scale)
	opts.GeoM.Translate(float64(x), float64(y))
	opts.ColorScale.ScaleWithColor(clr)
	opts.Filter = ebiten.FilterNearest
	unwrap(dst).DrawImage(src, opts)
}
