package atlas

import (
	"encoding/json"
	"image"
	"testing"
)

const objectsAtlas = `{
	"name": "forest_objects",
	"layer": "objects",
	"image_path": "objects.png",
	"tile_width": 32,
	"tile_height": 32,
	"tiles": [
		{"name": "rock", "atlas_x": 0, "atlas_y": 0},
		{"name": "oak", "atlas_x": 1, "atlas_y": 0, "span_x": 2, "span_y": 3,
		 "properties": {"depth_offset": 12, "background": false}},
		{"name": "grass", "atlas_x": 3, "atlas_y": 0, "properties": {"background": true}}
	]
}`

func TestAtlasConfigParsing(t *testing.T) {
	config, err := ParseAtlasConfig([]byte(objectsAtlas))
	if err != nil {
		t.Fatalf("Failed to parse config: %v", err)
	}

	if config.Name != "forest_objects" {
		t.Errorf("Expected name 'forest_objects', got '%s'", config.Name)
	}
	if config.Layer != "objects" {
		t.Errorf("Expected layer 'objects', got '%s'", config.Layer)
	}
	if len(config.Tiles) != 3 {
		t.Fatalf("Expected 3 tiles, got %d", len(config.Tiles))
	}

	oak := config.Tiles[1]
	if got := oak.DepthOffset(); got != 12 {
		t.Errorf("Expected depth_offset 12, got %v", got)
	}
	if oak.Background() {
		t.Error("Expected oak not to be background")
	}
	if !config.Tiles[2].Background() {
		t.Error("Expected grass to be background")
	}
	if got := Property(&config.Tiles[0], "depth_offset", 3.0); got != 3 {
		t.Errorf("Expected default depth_offset 3, got %v", got)
	}
	if got := Property(&oak, "depth_offset", "none"); got != "none" {
		t.Errorf("Expected mistyped property to fall back, got %q", got)
	}
}

func TestAtlasConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"zero tile size", `{"image_path": "a.png", "tile_width": 0, "tile_height": 32}`},
		{"missing image", `{"tile_width": 32, "tile_height": 32}`},
		{"negative position", `{"image_path": "a.png", "tile_width": 32, "tile_height": 32, "tiles": [{"name": "x", "atlas_x": -1}]}`},
		{"malformed", `{"tile_width": `},
	}
	for _, tt := range tests {
		if _, err := ParseAtlasConfig([]byte(tt.json)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestNewAtlasSubImages(t *testing.T) {
	config, _ := ParseAtlasConfig([]byte(objectsAtlas))
	a, err := NewAtlas(config, newFakeImage(128, 96))
	if err != nil {
		t.Fatalf("NewAtlas failed: %v", err)
	}

	img, err := a.GetTileSubImageByName("oak")
	if err != nil {
		t.Fatalf("GetTileSubImageByName failed: %v", err)
	}
	if want := image.Rect(32, 0, 96, 96); img.Bounds() != want {
		t.Errorf("Expected bounds %v, got %v", want, img.Bounds())
	}

	w, h, ok := a.TileSize("oak")
	if !ok || w != 64 || h != 96 {
		t.Errorf("Expected oak 64x96, got %dx%d (%v)", w, h, ok)
	}

	if _, err := a.GetTileSubImageByName("pine"); err == nil {
		t.Error("Expected error for unknown tile")
	}
}

func TestNewAtlasRejectsTileOutsideImage(t *testing.T) {
	config, _ := ParseAtlasConfig([]byte(objectsAtlas))
	if _, err := NewAtlas(config, newFakeImage(64, 32)); err == nil {
		t.Error("Expected error for tile outside the image")
	}
}

func TestNewAtlasRejectsDuplicateNames(t *testing.T) {
	config := &AtlasConfig{
		ImagePath: "a.png", TileWidth: 8, TileHeight: 8,
		Tiles: []TileDefinition{{Name: "a"}, {Name: "a", AtlasX: 1}},
	}
	if _, err := NewAtlas(config, newFakeImage(16, 8)); err == nil {
		t.Error("Expected error for duplicate tile names")
	}
}

func TestLoadAtlasResolvesImagePath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "objects_atlas.json", objectsAtlas)
	loader := &fakeLoader{sizes: map[string]image.Point{"objects.png": {128, 96}}}

	a, err := LoadAtlas(path, loader)
	if err != nil {
		t.Fatalf("LoadAtlas failed: %v", err)
	}
	if len(loader.loaded) != 1 || loader.loaded[0] != dir+"/objects.png" {
		t.Errorf("Expected image loaded next to the config, got %v", loader.loaded)
	}
	if _, ok := a.GetTile("rock"); !ok {
		t.Error("Expected rock tile")
	}
}

func TestManagerLayers(t *testing.T) {
	m := NewManager()
	objects, _ := ParseAtlasConfig([]byte(objectsAtlas))
	a, _ := NewAtlas(objects, newFakeImage(128, 96))
	if err := m.RegisterAtlas(a); err != nil {
		t.Fatalf("RegisterAtlas failed: %v", err)
	}

	var ground AtlasConfig
	json.Unmarshal([]byte(`{"name": "ground", "layer": "ground", "image_path": "g.png", "tile_width": 64, "tile_height": 64,
		"tiles": [{"name": "dirt"}]}`), &ground)
	g, _ := NewAtlas(&ground, newFakeImage(64, 64))
	if err := m.RegisterAtlas(g); err != nil {
		t.Fatalf("RegisterAtlas failed: %v", err)
	}

	if err := m.RegisterAtlas(a); err == nil {
		t.Error("Expected error registering a second atlas for a layer")
	}
	if layers := m.Layers(); len(layers) != 2 || layers[0] != "ground" || layers[1] != "objects" {
		t.Errorf("Expected [ground objects], got %v", layers)
	}
	if _, err := m.GetTile("ground", "dirt"); err != nil {
		t.Errorf("Expected dirt tile, got %v", err)
	}
	if _, err := m.TileImage("roof", "dirt"); err == nil {
		t.Error("Expected error for unknown layer")
	}
	first, err := m.TileImage("objects", "oak")
	if err != nil {
		t.Fatalf("TileImage failed: %v", err)
	}
	if again, _ := m.TileImage("objects", "oak"); again != first {
		t.Error("Expected the sliced tile to be reused")
	}
	if first.Bounds() != image.Rect(32, 0, 96, 96) {
		t.Errorf("Expected oak at (32,0)-(96,96), got %v", first.Bounds())
	}

	renamed := *a.Config
	renamed.Layer = "decals"
	if err := m.RegisterAtlas(&Atlas{Config: &renamed, Image: a.Image}); err == nil {
		t.Error("Expected error registering a duplicate atlas name")
	}
	if w, h, ok := m.TileSize("objects", "rock"); !ok || w != 32 || h != 32 {
		t.Errorf("Expected rock 32x32, got %dx%d", w, h)
	}
}
