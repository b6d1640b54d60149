package placeholders

import (
	"encoding/json"
	"fmt"
	"image"
	"image/draw"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/thornvale/internal/audio"
	"chosenoffset.com/thornvale/internal/core/actor"
	"chosenoffset.com/thornvale/internal/gamescanner"
	"chosenoffset.com/thornvale/internal/logging"
	"chosenoffset.com/thornvale/internal/simulation"
	"chosenoffset.com/thornvale/internal/world/atlas"
	"chosenoffset.com/thornvale/internal/world/maploader"
)

// Options controls the generated sample world
type Options struct {
	Name       string
	Width      int // Map pixels
	Height     int // Map pixels
	Objects    int // Scattered foreground objects
	Seed       uint64
	Sounds     bool // Render WAV cues and music
	SampleRate int
}

// DefaultOptions returns the stock sample world
func DefaultOptions() Options {
	return Options{
		Name:       "Thornvale",
		Width:      3200,
		Height:     3200,
		Objects:    260,
		Seed:       9,
		Sounds:     true,
		SampleRate: 48000,
	}
}

// groundPatch is the size of one ground object in map pixels
const groundPatch = 256

// heroAction describes one generated sheet of the hero
type heroAction struct {
	kind     actor.ActionKind
	frames   int
	duration float64
	sound    string
	volume   float64
}

var heroActions = []heroAction{
	{kind: actor.Idle, frames: 2, duration: 0.5},
	{kind: actor.Walk, frames: 4, duration: 0.2, sound: "walk", volume: 0.05},
	{kind: actor.Run, frames: 4, duration: 0.12, sound: "run", volume: 0.05},
	{kind: actor.Attack, frames: 3, duration: 0.1, sound: "swing", volume: 0.2},
	{kind: actor.Block, frames: 2, duration: 0.1, sound: "block", volume: 0.2},
}

// GenerateHeroSheet lays out one action: a row per direction in
// actor.Directions order, a column per frame
func GenerateHeroSheet(kind actor.ActionKind, frames int) *image.RGBA {
	sheet := newSprite(frames*HeroWidth, len(actor.Directions)*HeroHeight)
	for row, dir := range actor.Directions {
		for col := 0; col < frames; col++ {
			frame := CreateHeroFrame(kind, dir, col, frames)
			at := image.Pt(col*HeroWidth, row*HeroHeight)
			draw.Draw(sheet, frame.Bounds().Add(at), frame, image.Point{}, draw.Src)
		}
	}
	return sheet
}

// HeroDefinition describes the generated hero sheets
func HeroDefinition(withSounds bool) atlas.ActorDefinition {
	def := atlas.ActorDefinition{Name: "hero", Width: HeroWidth, Height: HeroHeight}
	for _, a := range heroActions {
		d := atlas.ActionDefinition{
			Action:        a.kind.String(),
			Sheet:         "assets/hero_" + a.kind.String() + ".png",
			Cols:          a.frames,
			Rows:          len(actor.Directions),
			FrameDuration: a.duration,
			Loop:          !a.kind.Locking(),
		}
		for row := range actor.Directions {
			for col := 0; col < a.frames; col++ {
				d.Frames[row] = append(d.Frames[row], row*a.frames+col)
			}
		}
		if withSounds && a.sound != "" {
			d.Sound = &atlas.SoundDefinition{
				ID:     a.sound,
				Path:   "sounds/" + a.sound + ".wav",
				Volume: a.volume,
				Loop:   a.kind == actor.Walk || a.kind == actor.Run,
			}
		}
		def.Actions = append(def.Actions, d)
	}
	return def
}

// GenerateGroundAtlas creates the ground atlas image
func GenerateGroundAtlas() *image.RGBA {
	img := newSprite(3*TileSize, TileSize)
	PlaceTile(img, CreatePatternedTile(ColorPalette.Grass, Lighten(ColorPalette.Grass, 0.2), "tufts"), 0, 0)
	PlaceTile(img, CreatePatternedTile(ColorPalette.GrassAlt, Darken(ColorPalette.GrassAlt, 0.8), "diagonal"), 1, 0)
	PlaceTile(img, CreatePatternedTile(ColorPalette.Dirt, Darken(ColorPalette.Dirt, 0.7), "pebbles"), 2, 0)
	return img
}

// GroundAtlasConfig matches GenerateGroundAtlas
func GroundAtlasConfig() atlas.AtlasConfig {
	bg := map[string]interface{}{"background": true}
	return atlas.AtlasConfig{
		Name:       "ground",
		Layer:      "ground",
		ImagePath:  "assets/ground.png",
		TileWidth:  TileSize,
		TileHeight: TileSize,
		Tiles: []atlas.TileDefinition{
			{Name: "grass", AtlasX: 0, AtlasY: 0, Properties: bg},
			{Name: "grass_alt", AtlasX: 1, AtlasY: 0, Properties: bg},
			{Name: "dirt", AtlasX: 2, AtlasY: 0, Properties: bg},
		},
	}
}

// GenerateObjectAtlas creates the objects atlas image, 6x3 tiles
func GenerateObjectAtlas() *image.RGBA {
	img := newSprite(6*TileSize, 3*TileSize)
	PlaceTile(img, CreateOak(), 0, 0)
	PlaceTile(img, CreatePine(), 2, 0)
	PlaceTile(img, CreateRock(), 4, 0)
	PlaceTile(img, CreateBush(), 4, 1)
	PlaceTile(img, CreateStump(), 4, 2)
	PlaceTile(img, CreateFlowers(), 5, 0)
	PlaceTile(img, CreateMushroom(), 5, 1)
	return img
}

// ObjectAtlasConfig matches GenerateObjectAtlas
func ObjectAtlasConfig() atlas.AtlasConfig {
	return atlas.AtlasConfig{
		Name:       "forest_objects",
		Layer:      maploader.DefaultLayer,
		ImagePath:  "assets/objects.png",
		TileWidth:  TileSize,
		TileHeight: TileSize,
		Tiles: []atlas.TileDefinition{
			{Name: "oak", AtlasX: 0, AtlasY: 0, SpanX: 2, SpanY: 3},
			{Name: "pine", AtlasX: 2, AtlasY: 0, SpanX: 2, SpanY: 3},
			{Name: "rock", AtlasX: 4, AtlasY: 0},
			{Name: "bush", AtlasX: 4, AtlasY: 1},
			{Name: "stump", AtlasX: 4, AtlasY: 2},
			{Name: "flowers", AtlasX: 5, AtlasY: 0, Properties: map[string]interface{}{"background": true}},
			{Name: "mushroom", AtlasX: 5, AtlasY: 1},
		},
	}
}

// scatterWeights picks object tiles, trees most often
var scatterWeights = []struct {
	tile   string
	weight int
}{
	{"oak", 5}, {"pine", 5}, {"rock", 3}, {"bush", 4}, {"stump", 1}, {"mushroom", 1}, {"flowers", 3},
}

// SampleMap lays ground patches over the whole map and scatters objects,
// keeping the spawn point clear. The same options always give the same map.
func SampleMap(opts Options) maploader.MapData {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	m := maploader.MapData{
		Name:        opts.Name,
		Width:       opts.Width,
		Height:      opts.Height,
		Scale:       1,
		Atlases:     []string{"ground_atlas.json", "objects_atlas.json"},
		PlayerSpawn: maploader.SpawnPoint{X: float64(opts.Width) / 2, Y: float64(opts.Height) / 2},
	}
	if opts.Sounds {
		m.Music = "music/theme.wav"
	}

	ground := []string{"grass", "grass", "grass_alt", "dirt"}
	for y := 0; y < opts.Height; y += groundPatch {
		for x := 0; x < opts.Width; x += groundPatch {
			m.Objects = append(m.Objects, maploader.ObjectData{
				Tile:   ground[rng.IntN(len(ground))],
				Layer:  "ground",
				X:      float64(x),
				Y:      float64(y),
				Width:  float64(min(groundPatch, opts.Width-x)),
				Height: float64(min(groundPatch, opts.Height-y)),
			})
		}
	}

	total := 0
	for _, w := range scatterWeights {
		total += w.weight
	}
	spawn := m.PlayerSpawn
	for placed := 0; placed < opts.Objects; {
		pick := rng.IntN(total)
		tile := scatterWeights[0].tile
		for _, w := range scatterWeights {
			if pick < w.weight {
				tile = w.tile
				break
			}
			pick -= w.weight
		}

		w, h := TileSize, TileSize
		if tile == "oak" || tile == "pine" {
			w, h = 2*TileSize, 3*TileSize
		}
		if opts.Width <= w || opts.Height <= h {
			break
		}
		x := float64(rng.IntN(opts.Width - w))
		y := float64(rng.IntN(opts.Height - h))
		if x < spawn.X+HeroWidth+16 && x+float64(w) > spawn.X-16 &&
			y < spawn.Y+HeroHeight+16 && y+float64(h) > spawn.Y-16 {
			continue
		}

		m.Objects = append(m.Objects, maploader.ObjectData{
			Name: fmt.Sprintf("%s-%d", tile, placed),
			Tile: tile,
			X:    x,
			Y:    y,
		})
		placed++
	}
	return m
}

// SampleConfig is the simulation tuning written next to the sample world
func SampleConfig() *simulation.Config {
	cfg := simulation.DefaultConfig()
	// Objects within one recompute step of the screen are already visible
	cfg.Visibility.ViewportMargin = cfg.Visibility.RecomputeThreshold
	cfg.Visibility.CellSize = groundPatch
	return cfg
}

// GenerateAndSave writes a complete world into worldDir: art, sounds, atlas
// and actor descriptions, the map, and simulation tuning
func GenerateAndSave(worldDir string, opts Options) error {
	log := logging.For("placeholders").WithField("dir", worldDir)
	log.Info("generating sample world")

	for _, sub := range []string{"assets", "sounds", "music"} {
		if sub != "assets" && !opts.Sounds {
			continue
		}
		if err := os.MkdirAll(filepath.Join(worldDir, sub), 0755); err != nil {
			return fmt.Errorf("failed to create %s directory: %w", sub, err)
		}
	}

	images := map[string]image.Image{
		"assets/ground.png":  GenerateGroundAtlas(),
		"assets/objects.png": GenerateObjectAtlas(),
	}
	for _, a := range heroActions {
		images["assets/hero_"+a.kind.String()+".png"] = GenerateHeroSheet(a.kind, a.frames)
	}
	for name, img := range images {
		if err := SavePNG(img, filepath.Join(worldDir, name)); err != nil {
			return fmt.Errorf("failed to save %s: %w", name, err)
		}
		b := img.Bounds()
		log.WithFields(logrus.Fields{"file": name, "width": b.Dx(), "height": b.Dy()}).Debug("image written")
	}

	if opts.Sounds {
		if err := writeSounds(worldDir, opts.SampleRate); err != nil {
			return err
		}
	}

	docs := map[string]interface{}{
		"ground_atlas.json":        GroundAtlasConfig(),
		"objects_atlas.json":       ObjectAtlasConfig(),
		gamescanner.ActorFile:      HeroDefinition(opts.Sounds),
		gamescanner.MapFile:        SampleMap(opts),
		gamescanner.SimulationFile: SampleConfig(),
	}
	for name, doc := range docs {
		if err := writeJSON(filepath.Join(worldDir, name), doc); err != nil {
			return err
		}
	}

	log.WithField("objects", opts.Objects).Info("sample world generated")
	return nil
}

func writeSounds(worldDir string, sampleRate int) error {
	synth := audio.NewSynth(sampleRate)
	files := map[string]audio.Generator{
		"music/theme.wav": audio.Drone(16 * time.Second),
	}
	for _, a := range heroActions {
		if a.sound == "" {
			continue
		}
		gen, ok := synth.Cue(a.sound)
		if !ok {
			return fmt.Errorf("no synth cue for %s", a.sound)
		}
		files["sounds/"+a.sound+".wav"] = gen
	}

	for name, gen := range files {
		f, err := os.Create(filepath.Join(worldDir, name))
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", name, err)
		}
		err = audio.WriteWAV(f, gen, sampleRate)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
