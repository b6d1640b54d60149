// Package placeholders draws stand-in art and sounds and writes a playable
// sample world so the game runs without any authored assets.
package placeholders

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
)

// TileSize is the standard size for placeholder tiles
const TileSize = 32

// Hero frame size in pixels
const (
	HeroWidth  = 32
	HeroHeight = 48
)

// ColorPalette defines colors for the forest theme
var ColorPalette = struct {
	// Ground
	Grass    color.RGBA
	GrassAlt color.RGBA
	Dirt     color.RGBA

	// Objects
	Bark    color.RGBA
	Leaves  color.RGBA
	Pine    color.RGBA
	Stone   color.RGBA
	Bush    color.RGBA
	Flowers color.RGBA

	// Hero
	Skin   color.RGBA
	Tunic  color.RGBA
	Boots  color.RGBA
	Steel  color.RGBA
	Shield color.RGBA

	Outline color.RGBA
}{
	Grass:    color.RGBA{74, 120, 58, 255},
	GrassAlt: color.RGBA{66, 110, 52, 255},
	Dirt:     color.RGBA{120, 96, 64, 255},

	Bark:    color.RGBA{96, 66, 40, 255},
	Leaves:  color.RGBA{46, 100, 46, 255},
	Pine:    color.RGBA{30, 80, 56, 255},
	Stone:   color.RGBA{128, 126, 120, 255},
	Bush:    color.RGBA{60, 120, 60, 255},
	Flowers: color.RGBA{230, 200, 80, 255},

	Skin:   color.RGBA{236, 196, 160, 255},
	Tunic:  color.RGBA{40, 90, 170, 255},
	Boots:  color.RGBA{70, 50, 40, 255},
	Steel:  color.RGBA{210, 210, 220, 255},
	Shield: color.RGBA{150, 40, 40, 255},

	Outline: color.RGBA{20, 20, 20, 255},
}

var transparent = color.RGBA{}

// CreateSolidTile creates a simple solid-colored tile
func CreateSolidTile(col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// CreatePatternedTile creates a tile with a simple pattern
func CreatePatternedTile(baseColor, patternColor color.RGBA, pattern string) *image.RGBA {
	img := CreateSolidTile(baseColor)

	switch pattern {
	case "tufts":
		// Short vertical blades scattered on a fixed lattice
		for _, p := range []image.Point{{4, 6}, {20, 3}, {12, 15}, {27, 18}, {6, 25}, {18, 28}} {
			for dy := 0; dy < 3; dy++ {
				img.Set(p.X, p.Y+dy, patternColor)
			}
		}
	case "pebbles":
		for _, p := range []image.Point{{5, 5}, {22, 8}, {14, 19}, {27, 27}, {4, 24}} {
			fillRect(img, image.Rect(p.X, p.Y, p.X+2, p.Y+2), patternColor)
		}
	case "diagonal":
		for i := 0; i < TileSize; i += 2 {
			img.Set(i, i, patternColor)
		}
	}

	return img
}

// newSprite returns a transparent canvas
func newSprite(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{transparent}, image.Point{}, draw.Src)
	return img
}

func fillRect(img *image.RGBA, r image.Rectangle, col color.RGBA) {
	draw.Draw(img, r.Intersect(img.Bounds()), &image.Uniform{col}, image.Point{}, draw.Src)
}

// fillEllipse fills the ellipse inscribed in r and outlines it
func fillEllipse(img *image.RGBA, r image.Rectangle, fill, outline color.RGBA) {
	cx := float64(r.Min.X+r.Max.X) / 2
	cy := float64(r.Min.Y+r.Max.Y) / 2
	rx := float64(r.Dx()) / 2
	ry := float64(r.Dy()) / 2
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			d := dx*dx + dy*dy
			switch {
			case d <= 0.8:
				img.Set(x, y, fill)
			case d <= 1:
				img.Set(x, y, outline)
			}
		}
	}
}

// PlaceTile copies tile into atlas at the given tile cell
func PlaceTile(atlas *image.RGBA, tile image.Image, col, row int) {
	at := image.Pt(col*TileSize, row*TileSize)
	draw.Draw(atlas, tile.Bounds().Sub(tile.Bounds().Min).Add(at), tile, tile.Bounds().Min, draw.Src)
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of a color
func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
		A: c.A,
	}
}
