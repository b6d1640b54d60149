package maploader

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chosenoffset.com/thornvale/internal/render"
	"chosenoffset.com/thornvale/internal/world/atlas"
)

type fakeImage struct{ bounds image.Rectangle }

func (f *fakeImage) Bounds() image.Rectangle { return f.bounds }
func (f *fakeImage) Size() (int, int)        { return f.bounds.Dx(), f.bounds.Dy() }
func (f *fakeImage) SubImage(r image.Rectangle) render.Image {
	return &fakeImage{bounds: r}
}
func (f *fakeImage) Fill(color.Color)                                 {}
func (f *fakeImage) DrawImage(render.Image, *render.DrawImageOptions) {}

type fakeLoader struct{}

func (fakeLoader) LoadImage(string) (render.Image, error) {
	return &fakeImage{bounds: image.Rect(0, 0, 256, 256)}, nil
}

const objectsAtlas = `{
	"name": "forest", "layer": "objects", "image_path": "objects.png",
	"tile_width": 32, "tile_height": 32,
	"tiles": [
		{"name": "rock"},
		{"name": "oak", "atlas_x": 1, "span_x": 2, "span_y": 3, "properties": {"depth_offset": 10}}
	]
}`

const groundAtlas = `{
	"name": "ground", "layer": "ground", "image_path": "ground.png",
	"tile_width": 64, "tile_height": 64,
	"tiles": [{"name": "grass", "properties": {"background": true}}]
}`

const sampleMap = `{
	"name": "Thornvale",
	"width": 1000, "height": 800, "scale": 2,
	"atlases": ["ground_atlas.json", "objects_atlas.json"],
	"music": "music/theme.ogg",
	"player_spawn": {"x": 100, "y": 50},
	"objects": [
		{"name": "meadow", "tile": "grass", "layer": "ground", "x": 0, "y": 0, "width": 500, "height": 400},
		{"name": "big oak", "tile": "oak", "x": 10, "y": 20},
		{"tile": "rock", "x": 300, "y": 40, "depth_offset": -4, "background": true}
	]
}`

func writeWorld(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"map.json":           sampleMap,
		"objects_atlas.json": objectsAtlas,
		"ground_atlas.json":  groundAtlas,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return filepath.Join(dir, "map.json")
}

func TestLoadMap(t *testing.T) {
	path := writeWorld(t)
	m, err := LoadMap(path, fakeLoader{})
	if err != nil {
		t.Fatalf("LoadMap failed: %v", err)
	}

	if m.Data.Name != "Thornvale" {
		t.Errorf("Expected name Thornvale, got %s", m.Data.Name)
	}
	if b := m.Data.Bounds(); b.W != 2000 || b.H != 1600 {
		t.Errorf("Expected bounds 2000x1600, got %vx%v", b.W, b.H)
	}
	if s := m.Data.Spawn(); s.X != 200 || s.Y != 100 {
		t.Errorf("Expected spawn (200, 100), got %v", s)
	}
	if got := m.MusicPath(); got != filepath.Join(filepath.Dir(path), "music/theme.ogg") {
		t.Errorf("Expected resolved music path, got %s", got)
	}
}

func TestPlacedObjects(t *testing.T) {
	m, err := LoadMap(writeWorld(t), fakeLoader{})
	if err != nil {
		t.Fatalf("LoadMap failed: %v", err)
	}

	objects, err := m.PlacedObjects()
	if err != nil {
		t.Fatalf("PlacedObjects failed: %v", err)
	}
	if len(objects) != 3 {
		t.Fatalf("Expected 3 objects, got %d", len(objects))
	}

	meadow := objects[0]
	if !meadow.Background || meadow.W != 1000 || meadow.H != 800 {
		t.Errorf("Expected background meadow 1000x800, got %+v", meadow)
	}

	oak := objects[1]
	if oak.X != 20 || oak.Y != 40 {
		t.Errorf("Expected oak at (20, 40), got (%v, %v)", oak.X, oak.Y)
	}
	if oak.W != 128 || oak.H != 192 {
		t.Errorf("Expected oak sized from its tile 128x192, got %vx%v", oak.W, oak.H)
	}
	if oak.DepthOffset != 20 {
		t.Errorf("Expected scaled depth offset 20, got %v", oak.DepthOffset)
	}
	if oak.Background {
		t.Error("Expected oak in the foreground")
	}

	rock := objects[2]
	if !strings.HasPrefix(rock.Name, "rock#") {
		t.Errorf("Expected generated name, got %s", rock.Name)
	}
	if !rock.Background || rock.DepthOffset != -8 {
		t.Errorf("Expected object overrides applied, got %+v", rock)
	}

	img, err := m.TileImage(oak.Tile)
	if err != nil {
		t.Fatalf("TileImage failed: %v", err)
	}
	if img.Bounds() != image.Rect(32, 0, 96, 96) {
		t.Errorf("Expected oak image bounds, got %v", img.Bounds())
	}
}

func TestPlacedObjectsUnknownTile(t *testing.T) {
	data, err := ParseMap([]byte(`{"width": 10, "height": 10, "atlases": ["a.json"],
		"objects": [{"tile": "castle", "x": 1, "y": 1}]}`))
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}
	if _, err := data.PlacedObjects(atlas.NewManager()); err == nil {
		t.Error("Expected error for unknown tile")
	}
}

func TestParseMapDefaultsScale(t *testing.T) {
	data, err := ParseMap([]byte(`{"width": 10, "height": 10, "atlases": ["a.json"]}`))
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}
	if data.Scale != 1 {
		t.Errorf("Expected default scale 1, got %v", data.Scale)
	}
}

func TestValidateMapData(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"zero size", `{"width": 0, "height": 10, "atlases": ["a.json"]}`},
		{"negative scale", `{"width": 10, "height": 10, "scale": -1, "atlases": ["a.json"]}`},
		{"no atlas", `{"width": 10, "height": 10}`},
		{"spawn outside", `{"width": 10, "height": 10, "atlases": ["a.json"], "player_spawn": {"x": 11, "y": 0}}`},
		{"object without tile", `{"width": 10, "height": 10, "atlases": ["a.json"], "objects": [{"x": 1}]}`},
		{"negative object size", `{"width": 10, "height": 10, "atlases": ["a.json"], "objects": [{"tile": "a", "width": -1}]}`},
	}
	for _, tt := range tests {
		if _, err := ParseMap([]byte(tt.json)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestSplitTileKey(t *testing.T) {
	layer, tile, ok := SplitTileKey("objects/oak")
	if !ok || layer != "objects" || tile != "oak" {
		t.Errorf("Expected objects/oak, got %s %s %v", layer, tile, ok)
	}
	if _, _, ok := SplitTileKey("oak"); ok {
		t.Error("Expected failure without a layer")
	}
}
