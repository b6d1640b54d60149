package placeholders

import (
	"image"
	"image/color"
	"math"

	"chosenoffset.com/thornvale/internal/core/actor"
)

// CreateOak draws a 2x3 tile broadleaf tree
func CreateOak() *image.RGBA {
	img := newSprite(2*TileSize, 3*TileSize)
	fillRect(img, image.Rect(26, 56, 38, 96), ColorPalette.Bark)
	fillRect(img, image.Rect(26, 56, 28, 96), Darken(ColorPalette.Bark, 0.7))
	fillEllipse(img, image.Rect(2, 2, 62, 66), ColorPalette.Leaves, Darken(ColorPalette.Leaves, 0.6))
	fillEllipse(img, image.Rect(14, 10, 34, 28), Lighten(ColorPalette.Leaves, 0.15), Lighten(ColorPalette.Leaves, 0.15))
	return img
}

// CreatePine draws a 2x3 tile conifer
func CreatePine() *image.RGBA {
	img := newSprite(2*TileSize, 3*TileSize)
	fillRect(img, image.Rect(28, 78, 36, 96), ColorPalette.Bark)
	for y := 4; y < 80; y++ {
		half := (y - 4) * 30 / 76
		// Three stacked tiers
		if (y-4)%26 < 4 {
			half -= 4
		}
		for x := 32 - half; x < 32+half; x++ {
			if x == 32-half || x == 32+half-1 {
				img.Set(x, y, Darken(ColorPalette.Pine, 0.6))
			} else {
				img.Set(x, y, ColorPalette.Pine)
			}
		}
	}
	return img
}

// CreateRock draws a boulder
func CreateRock() *image.RGBA {
	img := newSprite(TileSize, TileSize)
	fillEllipse(img, image.Rect(2, 10, 30, 32), ColorPalette.Stone, Darken(ColorPalette.Stone, 0.5))
	fillRect(img, image.Rect(9, 15, 14, 17), Lighten(ColorPalette.Stone, 0.3))
	return img
}

// CreateBush draws a round shrub
func CreateBush() *image.RGBA {
	img := newSprite(TileSize, TileSize)
	fillEllipse(img, image.Rect(1, 8, 31, 32), ColorPalette.Bush, Darken(ColorPalette.Bush, 0.6))
	for _, p := range []image.Point{{9, 14}, {19, 18}, {13, 24}} {
		img.Set(p.X, p.Y, color.RGBA{200, 40, 60, 255})
	}
	return img
}

// CreateStump draws a cut trunk
func CreateStump() *image.RGBA {
	img := newSprite(TileSize, TileSize)
	fillRect(img, image.Rect(8, 16, 24, 31), ColorPalette.Bark)
	fillEllipse(img, image.Rect(8, 10, 24, 20), Lighten(ColorPalette.Bark, 0.4), Darken(ColorPalette.Bark, 0.6))
	return img
}

// CreateFlowers draws a flat flower patch meant for the background
func CreateFlowers() *image.RGBA {
	img := newSprite(TileSize, TileSize)
	for _, p := range []image.Point{{6, 8}, {16, 4}, {25, 12}, {10, 20}, {22, 25}, {4, 28}} {
		fillRect(img, image.Rect(p.X-1, p.Y-1, p.X+2, p.Y+2), ColorPalette.Flowers)
		img.Set(p.X, p.Y, color.RGBA{180, 90, 30, 255})
	}
	return img
}

// CreateMushroom draws a small toadstool
func CreateMushroom() *image.RGBA {
	img := newSprite(TileSize, TileSize)
	fillRect(img, image.Rect(14, 20, 18, 30), color.RGBA{235, 225, 200, 255})
	fillEllipse(img, image.Rect(7, 10, 25, 24), color.RGBA{190, 40, 40, 255}, color.RGBA{110, 20, 20, 255})
	img.Set(12, 15, color.White)
	img.Set(19, 14, color.White)
	return img
}

// dirVector is the unit facing vector of d with y up
func dirVector(d actor.Direction) (float64, float64) {
	const s = math.Sqrt2 / 2
	switch d {
	case actor.Up:
		return 0, 1
	case actor.Left:
		return -1, 0
	case actor.Right:
		return 1, 0
	case actor.DownLeft:
		return -s, -s
	case actor.DownRight:
		return s, -s
	case actor.UpLeft:
		return -s, s
	case actor.UpRight:
		return s, s
	default:
		return 0, -1
	}
}

// CreateHeroFrame draws frame i of n for the hero performing kind while
// facing dir
func CreateHeroFrame(kind actor.ActionKind, dir actor.Direction, i, n int) *image.RGBA {
	img := newSprite(HeroWidth, HeroHeight)
	fx, fy := dirVector(dir)
	phase := 2 * math.Pi * float64(i) / float64(max(n, 1))

	stride := 0
	switch kind {
	case actor.Walk:
		stride = int(math.Round(2 * math.Sin(phase)))
	case actor.Run:
		stride = int(math.Round(4 * math.Sin(phase)))
	}
	bob := 0
	if kind == actor.Idle && i%2 == 1 {
		bob = 1
	}

	// Legs
	fillRect(img, image.Rect(11, 36+stride, 15, 48), ColorPalette.Boots)
	fillRect(img, image.Rect(17, 36-stride, 21, 48), ColorPalette.Boots)
	// Body and head
	fillRect(img, image.Rect(9, 18+bob, 23, 38), ColorPalette.Tunic)
	fillEllipse(img, image.Rect(9, 3+bob, 23, 19+bob), ColorPalette.Skin, Darken(ColorPalette.Skin, 0.6))

	// Eyes only show when the hero faces the viewer
	if fy <= 0 {
		ex := 16 + int(math.Round(fx*3))
		img.Set(ex-2, 11+bob, ColorPalette.Outline)
		img.Set(ex+2, 11+bob, ColorPalette.Outline)
	} else {
		fillRect(img, image.Rect(10, 4+bob, 22, 10+bob), Darken(ColorPalette.Boots, 0.8))
	}

	cx, cy := 16.0, 27.0
	switch kind {
	case actor.Attack:
		reach := 6 + 5*float64(i)
		for t := 4.0; t < 4+reach; t++ {
			img.Set(int(cx+fx*t), int(cy-fy*t), ColorPalette.Steel)
		}
	case actor.Block:
		sx := int(cx + fx*8)
		sy := int(cy - fy*8)
		fillEllipse(img, image.Rect(sx-6, sy-8, sx+6, sy+8), ColorPalette.Shield, Darken(ColorPalette.Shield, 0.5))
	}
	return img
}
