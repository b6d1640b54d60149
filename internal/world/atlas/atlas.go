// Package atlas loads sprite atlases and actor sprite sheets described by
// JSON files and slices them into renderer images.
package atlas

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"chosenoffset.com/thornvale/internal/render"
)

// TileDefinition defines a single tile within an atlas
type TileDefinition struct {
	Name       string         `json:"name"`       // Semantic name (e.g., "oak_tree")
	AtlasX     int            `json:"atlas_x"`    // X position in atlas (in tiles)
	AtlasY     int            `json:"atlas_y"`    // Y position in atlas (in tiles)
	SpanX      int            `json:"span_x"`     // Width in tiles, 0 means 1
	SpanY      int            `json:"span_y"`     // Height in tiles, 0 means 1
	Properties map[string]any `json:"properties"` // Custom properties (depth_offset, background, etc.)
}

// AtlasConfig defines the JSON configuration for a sprite atlas
type AtlasConfig struct {
	Name       string           `json:"name"`        // Atlas name
	Layer      string           `json:"layer"`       // Layer this atlas belongs to (e.g., "ground", "objects")
	ImagePath  string           `json:"image_path"`  // Atlas image, relative to the config file
	TileWidth  int              `json:"tile_width"`  // Width of each tile in pixels
	TileHeight int              `json:"tile_height"` // Height of each tile in pixels
	Tiles      []TileDefinition `json:"tiles"`       // Array of tile definitions
}

// Atlas represents a loaded sprite atlas
type Atlas struct {
	Config      *AtlasConfig
	Image       render.Image
	TilesByName map[string]*TileDefinition
}

// ParseAtlasConfig decodes and validates an atlas configuration
func ParseAtlasConfig(data []byte) (*AtlasConfig, error) {
	var config AtlasConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if config.TileWidth <= 0 || config.TileHeight <= 0 {
		return nil, fmt.Errorf("invalid tile dimensions: %dx%d", config.TileWidth, config.TileHeight)
	}
	if config.ImagePath == "" {
		return nil, fmt.Errorf("image_path is required in atlas config")
	}
	for i, tile := range config.Tiles {
		if tile.AtlasX < 0 || tile.AtlasY < 0 || tile.SpanX < 0 || tile.SpanY < 0 {
			return nil, fmt.Errorf("tile %d (%s) has a negative position or span", i, tile.Name)
		}
	}
	return &config, nil
}

// LoadAtlas loads a sprite atlas from a JSON configuration file
func LoadAtlas(configPath string, loader render.ResourceLoader) (*Atlas, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read atlas config %s: %w", configPath, err)
	}

	config, err := ParseAtlasConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse atlas config %s: %w", configPath, err)
	}

	imagePath := resolve(configPath, config.ImagePath)
	img, err := loader.LoadImage(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load atlas image %s: %w", imagePath, err)
	}

	return NewAtlas(config, img)
}

// NewAtlas indexes the tiles of config over img
func NewAtlas(config *AtlasConfig, img render.Image) (*Atlas, error) {
	tilesByName := make(map[string]*TileDefinition)
	bounds := img.Bounds()
	for i := range config.Tiles {
		tile := &config.Tiles[i]
		if tile.Name == "" {
			continue
		}
		if _, dup := tilesByName[tile.Name]; dup {
			return nil, fmt.Errorf("duplicate tile name: %s", tile.Name)
		}
		if r := tileRect(config, tile).Add(bounds.Min); !r.In(bounds) {
			return nil, fmt.Errorf("tile %s at %v lies outside the atlas image %v", tile.Name, r, bounds)
		}
		tilesByName[tile.Name] = tile
	}

	return &Atlas{
		Config:      config,
		Image:       img,
		TilesByName: tilesByName,
	}, nil
}

// resolve makes rel relative to the directory holding configPath
func resolve(configPath, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(filepath.Dir(configPath), rel)
}

func tileRect(config *AtlasConfig, tile *TileDefinition) image.Rectangle {
	x := tile.AtlasX * config.TileWidth
	y := tile.AtlasY * config.TileHeight
	return image.Rect(x, y, x+max(tile.SpanX, 1)*config.TileWidth, y+max(tile.SpanY, 1)*config.TileHeight)
}

// GetTile returns a tile definition by name
func (a *Atlas) GetTile(name string) (*TileDefinition, bool) {
	tile, ok := a.TilesByName[name]
	return tile, ok
}

// GetTileSubImage returns the sub-image for a specific tile
func (a *Atlas) GetTileSubImage(tile *TileDefinition) render.Image {
	return a.Image.SubImage(tileRect(a.Config, tile).Add(a.Image.Bounds().Min))
}

// GetTileSubImageByName returns the sub-image for a tile by name
func (a *Atlas) GetTileSubImageByName(name string) (render.Image, error) {
	tile, ok := a.GetTile(name)
	if !ok {
		return nil, fmt.Errorf("tile not found: %s", name)
	}
	return a.GetTileSubImage(tile), nil
}

// TileSize returns the pixel size of a tile by name
func (a *Atlas) TileSize(name string) (width, height int, ok bool) {
	tile, ok := a.GetTile(name)
	if !ok {
		return 0, 0, false
	}
	r := tileRect(a.Config, tile)
	return r.Dx(), r.Dy(), true
}

// Property reads a tile property as T, falling back to def when the
// property is absent or holds another type. JSON numbers decode as float64.
func Property[T any](td *TileDefinition, key string, def T) T {
	if v, ok := td.Properties[key].(T); ok {
		return v
	}
	return def
}

// Background reports whether the tile is drawn beneath every actor
func (td *TileDefinition) Background() bool {
	return Property(td, "background", false)
}

// DepthOffset returns the tile's painter's-order offset in world units
func (td *TileDefinition) DepthOffset() float64 {
	return Property(td, "depth_offset", 0.0)
}
