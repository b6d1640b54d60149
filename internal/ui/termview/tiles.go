package termview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/thornvale/internal/core/actor"
	"chosenoffset.com/thornvale/internal/world/atlas"
)

// configTiles answers tile lookups from atlas descriptions alone, without
// loading their images
type configTiles map[string]*atlas.AtlasConfig

// newConfigTiles indexes configs by layer
func newConfigTiles(configs ...atlas.AtlasConfig) configTiles {
	t := make(configTiles)
	for i := range configs {
		t[configs[i].Layer] = &configs[i]
	}
	return t
}

func (t configTiles) GetTile(layer, tileName string) (*atlas.TileDefinition, error) {
	cfg, ok := t[layer]
	if !ok {
		return nil, fmt.Errorf("no atlas for layer: %s", layer)
	}
	for i := range cfg.Tiles {
		if cfg.Tiles[i].Name == tileName {
			return &cfg.Tiles[i], nil
		}
	}
	return nil, fmt.Errorf("tile not found: %s", tileName)
}

func (t configTiles) TileSize(layer, tileName string) (int, int, bool) {
	tile, err := t.GetTile(layer, tileName)
	if err != nil {
		return 0, 0, false
	}
	cfg := t[layer]
	return max(tile.SpanX, 1) * cfg.TileWidth, max(tile.SpanY, 1) * cfg.TileHeight, true
}

// glyph is how a tile shows in the terminal
type glyph struct {
	r     rune
	style tcell.Style
}

var tileGlyphs = map[string]glyph{
	"ground/grass":     {' ', tcell.StyleDefault.Background(tcell.NewRGBColor(40, 70, 34))},
	"ground/grass_alt": {' ', tcell.StyleDefault.Background(tcell.NewRGBColor(36, 64, 30))},
	"ground/dirt":      {'.', tcell.StyleDefault.Background(tcell.NewRGBColor(80, 64, 42)).Foreground(tcell.ColorTan)},
	"objects/oak":      {'♣', tcell.StyleDefault.Foreground(tcell.ColorGreen)},
	"objects/pine":     {'▲', tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)},
	"objects/rock":     {'o', tcell.StyleDefault.Foreground(tcell.ColorGray)},
	"objects/bush":     {'*', tcell.StyleDefault.Foreground(tcell.ColorLime)},
	"objects/stump":    {'u', tcell.StyleDefault.Foreground(tcell.ColorOlive)},
	"objects/flowers":  {'"', tcell.StyleDefault.Foreground(tcell.ColorYellow)},
	"objects/mushroom": {'♠', tcell.StyleDefault.Foreground(tcell.ColorRed)},
}

var unknownGlyph = glyph{'?', tcell.StyleDefault.Foreground(tcell.ColorFuchsia)}

var playerStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)

var arrows = map[actor.Direction]rune{
	actor.Down:      '↓',
	actor.Up:        '↑',
	actor.Left:      '←',
	actor.Right:     '→',
	actor.DownLeft:  '↙',
	actor.DownRight: '↘',
	actor.UpLeft:    '↖',
	actor.UpRight:   '↗',
}

// glyphAnimations gives the player a rune per frame. Cue IDs match the
// synth's stock cues.
func glyphAnimations() actor.AnimationSet[rune] {
	set := actor.NewAnimationSet[rune]()
	for _, dir := range actor.Directions {
		a := arrows[dir]
		set.Put(actor.Idle, dir, &actor.AnimationSpec[rune]{Frames: []rune{a}, FrameDuration: 0.5, Loop: true})
		set.Put(actor.Walk, dir, &actor.AnimationSpec[rune]{Frames: []rune{a, 'o'}, FrameDuration: 0.2, Loop: true,
			Sound: actor.SoundCue{ID: "walk", Volume: 0.3, Loop: true}})
		set.Put(actor.Run, dir, &actor.AnimationSpec[rune]{Frames: []rune{a, 'O'}, FrameDuration: 0.12, Loop: true,
			Sound: actor.SoundCue{ID: "run", Volume: 0.3, Loop: true}})
		set.Put(actor.Attack, dir, &actor.AnimationSpec[rune]{Frames: []rune{'/', '-', '\\'}, FrameDuration: 0.1,
			Sound: actor.SoundCue{ID: "swing", Volume: 0.5}})
		set.Put(actor.Block, dir, &actor.AnimationSpec[rune]{Frames: []rune{'#'}, FrameDuration: 0.1,
			Sound: actor.SoundCue{ID: "block", Volume: 0.5}})
	}
	return set
}
