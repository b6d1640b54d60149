package ebiten

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"chosenoffset.com/thornvale/internal/render"
)

// Image wraps an *ebiten.Image as a render.Image.
type Image struct {
	img *ebiten.Image
}

func unwrap(i render.Image) *ebiten.Image {
	return i.(*Image).img
}

func (i *Image) Bounds() image.Rectangle { return i.img.Bounds() }

func (i *Image) Size() (width, height int) {
	b := i.img.Bounds()
	return b.Dx(), b.Dy()
}

func (i *Image) SubImage(r image.Rectangle) render.Image {
	return &Image{img: i.img.SubImage(r).(*ebiten.Image)}
}

func (i *Image) Fill(clr color.Color) { i.img.Fill(clr) }

func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	var eopts ebiten.DrawImageOptions
	if opts != nil && opts.GeoM != nil {
		eopts.GeoM = opts.GeoM.(*GeoM).m
	}
	i.img.DrawImage(unwrap(src), &eopts)
}

// GeoM wraps ebiten.GeoM as a render.GeoM.
type GeoM struct {
	m ebiten.GeoM
}

// NewGeoM returns an identity transform.
func NewGeoM() render.GeoM {
	return &GeoM{}
}

func (g *GeoM) Translate(tx, ty float64) { g.m.Translate(tx, ty) }
func (g *GeoM) Scale(sx, sy float64)     { g.m.Scale(sx, sy) }
