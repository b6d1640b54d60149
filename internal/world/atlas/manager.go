package atlas

import (
	"fmt"
	"maps"
	"slices"

	"chosenoffset.com/thornvale/internal/render"
)

// Manager resolves tiles across a world's atlases, one atlas per layer.
// Tile images are sliced on first use and kept.
type Manager struct {
	layers map[string]*Atlas
	names  map[string]string       // Atlas name to layer
	images map[string]render.Image // "layer/tile" to sliced image
}

// NewManager creates an empty manager
func NewManager() *Manager {
	return &Manager{
		layers: make(map[string]*Atlas),
		names:  make(map[string]string),
		images: make(map[string]render.Image),
	}
}

// LoadAtlasConfig loads an atlas from a config file and registers it
func (m *Manager) LoadAtlasConfig(configPath string, loader render.ResourceLoader) error {
	atlas, err := LoadAtlas(configPath, loader)
	if err != nil {
		return err
	}
	return m.RegisterAtlas(atlas)
}

// RegisterAtlas adds an atlas under its layer. Layers and atlas names must
// both be unique.
func (m *Manager) RegisterAtlas(atlas *Atlas) error {
	layer, name := atlas.Config.Layer, atlas.Config.Name
	switch {
	case layer == "":
		return fmt.Errorf("atlas layer cannot be empty")
	case name == "":
		return fmt.Errorf("atlas name cannot be empty")
	}

	if existing, ok := m.layers[layer]; ok {
		return fmt.Errorf("layer %s already has an atlas registered: %s", layer, existing.Config.Name)
	}
	if other, ok := m.names[name]; ok {
		return fmt.Errorf("atlas name %s already used by layer %s", name, other)
	}

	m.layers[layer] = atlas
	m.names[name] = layer
	return nil
}

// Atlas returns the atlas registered for layer
func (m *Manager) Atlas(layer string) (*Atlas, bool) {
	atlas, ok := m.layers[layer]
	return atlas, ok
}

// GetTile retrieves a tile definition from a specific layer
func (m *Manager) GetTile(layer, tileName string) (*TileDefinition, error) {
	atlas, ok := m.layers[layer]
	if !ok {
		return nil, fmt.Errorf("no atlas found for layer: %s", layer)
	}
	tile, ok := atlas.GetTile(tileName)
	if !ok {
		return nil, fmt.Errorf("tile %s not found in layer %s", tileName, layer)
	}
	return tile, nil
}

// TileImage returns the image of a tile, slicing it on first request
func (m *Manager) TileImage(layer, tileName string) (render.Image, error) {
	key := layer + "/" + tileName
	if img, ok := m.images[key]; ok {
		return img, nil
	}

	atlas, ok := m.layers[layer]
	if !ok {
		return nil, fmt.Errorf("no atlas found for layer: %s", layer)
	}
	img, err := atlas.GetTileSubImageByName(tileName)
	if err != nil {
		return nil, err
	}
	m.images[key] = img
	return img, nil
}

// TileSize returns the pixel size of a tile from a specific layer
func (m *Manager) TileSize(layer, tileName string) (width, height int, ok bool) {
	atlas, ok := m.layers[layer]
	if !ok {
		return 0, 0, false
	}
	return atlas.TileSize(tileName)
}

// Layers returns all registered layer names, sorted
func (m *Manager) Layers() []string {
	return slices.Sorted(maps.Keys(m.layers))
}
