// Package gamescanner discovers playable worlds under the data directory.
package gamescanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// MapFile is the map every world directory must contain
	MapFile = "map.json"
	// ActorFile is the player description every world directory must contain
	ActorFile = "actor.json"
	// SimulationFile is the optional tuning override
	SimulationFile = "simulation.json"
)

// WorldEntry represents a discoverable world in the data directory
type WorldEntry struct {
	Name string // Display name (directory name)
	Dir  string // Directory path, joined onto the scanned data path
}

// MapPath returns the world's map file
func (w WorldEntry) MapPath() string { return filepath.Join(w.Dir, MapFile) }

// ActorPath returns the world's player actor file
func (w WorldEntry) ActorPath() string { return filepath.Join(w.Dir, ActorFile) }

// SimulationPath returns the world's tuning file, which may not exist
func (w WorldEntry) SimulationPath() string { return filepath.Join(w.Dir, SimulationFile) }

// ScanDataDirectory scans the data directory for available worlds.
// Returns a list of WorldEntry objects, one for each valid world directory,
// sorted by name.
func ScanDataDirectory(dataPath string) ([]WorldEntry, error) {
	entries, err := os.ReadDir(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var worlds []WorldEntry

	for _, entry := range entries {
		// Skip non-directories
		if !entry.IsDir() {
			continue
		}

		// Skip special directories
		dirName := entry.Name()
		if dirName == "shared" || strings.HasPrefix(dirName, ".") {
			continue
		}

		worldPath := filepath.Join(dataPath, dirName)
		if !isFile(filepath.Join(worldPath, MapFile)) || !isFile(filepath.Join(worldPath, ActorFile)) {
			continue
		}

		worlds = append(worlds, WorldEntry{
			Name: dirName,
			Dir:  worldPath,
		})
	}

	return worlds, nil
}

// Find returns the world named name
func Find(worlds []WorldEntry, name string) (WorldEntry, bool) {
	for _, w := range worlds {
		if w.Name == name {
			return w, true
		}
	}
	return WorldEntry{}, false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
