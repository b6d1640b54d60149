// Package maploader reads world maps: the sprite atlases a world uses and the
// static objects placed in it.
package maploader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"chosenoffset.com/thornvale/internal/core/geom"
	"chosenoffset.com/thornvale/internal/core/visibility"
	"chosenoffset.com/thornvale/internal/render"
	"chosenoffset.com/thornvale/internal/world/atlas"
)

// DefaultLayer is the atlas layer objects use when they name none
const DefaultLayer = "objects"

// SpawnPoint defines a player or entity spawn location
type SpawnPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ObjectData is one placed object. Positions are map pixels with y up,
// anchored at the object's bottom-left corner.
type ObjectData struct {
	Name        string   `json:"name"`
	Tile        string   `json:"tile"`
	Layer       string   `json:"layer"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Width       float64  `json:"width"`  // 0 takes the tile's pixel width
	Height      float64  `json:"height"` // 0 takes the tile's pixel height
	Background  *bool    `json:"background,omitempty"`
	DepthOffset *float64 `json:"depth_offset,omitempty"`
}

// MapData represents the loaded map configuration
type MapData struct {
	Name        string       `json:"name"`
	Width       int          `json:"width"`  // Pixels
	Height      int          `json:"height"` // Pixels
	Scale       float64      `json:"scale"`  // World units per map pixel
	Atlases     []string     `json:"atlases"`
	Music       string       `json:"music"`
	PlayerSpawn SpawnPoint   `json:"player_spawn"`
	Objects     []ObjectData `json:"objects"`
}

// Map represents a loaded map with its atlases
type Map struct {
	Data    *MapData
	Atlases *atlas.Manager
	Dir     string // Directory holding the map file
}

// TileSource answers tile lookups for placed objects
type TileSource interface {
	GetTile(layer, tileName string) (*atlas.TileDefinition, error)
	TileSize(layer, tileName string) (width, height int, ok bool)
}

// ParseMap decodes and validates map JSON
func ParseMap(data []byte) (*MapData, error) {
	var mapData MapData
	if err := json.Unmarshal(data, &mapData); err != nil {
		return nil, err
	}
	if mapData.Scale == 0 {
		mapData.Scale = 1
	}
	if err := validateMapData(&mapData); err != nil {
		return nil, err
	}
	return &mapData, nil
}

// LoadMap loads a map from a JSON file and its associated atlases
func LoadMap(mapPath string, loader render.ResourceLoader) (*Map, error) {
	// Read the map JSON file
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", mapPath, err)
	}

	mapData, err := ParseMap(data)
	if err != nil {
		return nil, fmt.Errorf("invalid map data in %s: %w", mapPath, err)
	}

	dir := filepath.Dir(mapPath)
	manager := atlas.NewManager()
	for _, p := range mapData.Atlases {
		atlasPath := p
		if !filepath.IsAbs(p) {
			atlasPath = filepath.Join(dir, p)
		}
		if err := manager.LoadAtlasConfig(atlasPath, loader); err != nil {
			return nil, fmt.Errorf("failed to load atlas %s: %w", p, err)
		}
	}

	gameMap := &Map{
		Data:    mapData,
		Atlases: manager,
		Dir:     dir,
	}

	return gameMap, nil
}

// validateMapData checks if the map data is valid
func validateMapData(data *MapData) error {
	if data.Width <= 0 || data.Height <= 0 {
		return fmt.Errorf("invalid map dimensions: %dx%d", data.Width, data.Height)
	}

	if !(data.Scale > 0) {
		return fmt.Errorf("invalid scale: %v", data.Scale)
	}

	if len(data.Atlases) == 0 {
		return fmt.Errorf("at least one atlas is required")
	}

	spawn := data.PlayerSpawn
	if spawn.X < 0 || spawn.Y < 0 || spawn.X > float64(data.Width) || spawn.Y > float64(data.Height) {
		return fmt.Errorf("player spawn (%v, %v) outside the map", spawn.X, spawn.Y)
	}

	for i, o := range data.Objects {
		if o.Tile == "" {
			return fmt.Errorf("object %d (%s) has no tile", i, o.Name)
		}
		if o.Width < 0 || o.Height < 0 {
			return fmt.Errorf("object %d (%s) has a negative size", i, o.Name)
		}
	}

	return nil
}

// Bounds returns the map's extent in world units
func (d *MapData) Bounds() geom.Rect {
	return geom.Rect{W: float64(d.Width) * d.Scale, H: float64(d.Height) * d.Scale}
}

// Spawn returns the player spawn in world units
func (d *MapData) Spawn() geom.Point {
	return geom.Point{X: d.PlayerSpawn.X * d.Scale, Y: d.PlayerSpawn.Y * d.Scale}
}

// PlacedObjects converts the map's objects into world units. Sizes, the
// background flag and the depth offset fall back to the tile's definition.
func (d *MapData) PlacedObjects(tiles TileSource) ([]*visibility.PlacedObject, error) {
	objects := make([]*visibility.PlacedObject, 0, len(d.Objects))
	for i, o := range d.Objects {
		layer := o.Layer
		if layer == "" {
			layer = DefaultLayer
		}
		tile, err := tiles.GetTile(layer, o.Tile)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, o.Name, err)
		}

		w, h := o.Width, o.Height
		if w == 0 || h == 0 {
			tw, th, _ := tiles.TileSize(layer, o.Tile)
			if w == 0 {
				w = float64(tw)
			}
			if h == 0 {
				h = float64(th)
			}
		}

		background := tile.Background()
		if o.Background != nil {
			background = *o.Background
		}
		depthOffset := tile.DepthOffset()
		if o.DepthOffset != nil {
			depthOffset = *o.DepthOffset
		}

		name := o.Name
		if name == "" {
			name = fmt.Sprintf("%s#%d", o.Tile, i)
		}

		objects = append(objects, &visibility.PlacedObject{
			Name:        name,
			Tile:        layer + "/" + o.Tile,
			X:           o.X * d.Scale,
			Y:           o.Y * d.Scale,
			W:           w * d.Scale,
			H:           h * d.Scale,
			DepthOffset: depthOffset * d.Scale,
			Background:  background,
		})
	}
	return objects, nil
}

// PlacedObjects converts the map's objects using its own atlases
func (m *Map) PlacedObjects() ([]*visibility.PlacedObject, error) {
	return m.Data.PlacedObjects(m.Atlases)
}

// TileImage resolves a PlacedObject's Tile key to its image
func (m *Map) TileImage(key string) (render.Image, error) {
	layer, name, ok := SplitTileKey(key)
	if !ok {
		return nil, fmt.Errorf("malformed tile key: %s", key)
	}
	return m.Atlases.TileImage(layer, name)
}

// SplitTileKey splits a "layer/tile" key
func SplitTileKey(key string) (layer, tile string, ok bool) {
	return strings.Cut(key, "/")
}

// MusicPath returns the resolved background music path, empty for none
func (m *Map) MusicPath() string {
	if m.Data.Music == "" || filepath.IsAbs(m.Data.Music) {
		return m.Data.Music
	}
	return filepath.Join(m.Dir, m.Data.Music)
}
