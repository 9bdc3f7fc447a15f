package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a tile grid plus the prefab instances placed on it. Layers are
// row-major, Width*Height cells each; a non-zero cell is solid when the
// layer's meta marks it as physics.
type Level struct {
	Name      string      `json:"name"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	TileSize  int         `json:"tile_size"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	// Bounds is the boundary behavior for the grid's extent; empty disables
	// world bounds.
	Bounds   string   `json:"bounds,omitempty"`
	Entities []Entity `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool `json:"physics"`
}

// Entity places a prefab. Parent refers to another instance's ID.
type Entity struct {
	Type     string         `json:"type"`
	ID       string         `json:"id,omitempty"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	Rotation float64        `json:"rotation,omitempty"`
	Parent   string         `json:"parent,omitempty"`
	Groups   []string       `json:"groups,omitempty"`
	Props    map[string]any `json:"props,omitempty"`
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, cleanLevelPath(name))
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return decodeLevel(data)
}

// LoadLevel prefers levels/<name> on disk over the embedded copy.
func LoadLevel(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean)))
	if err != nil {
		return LoadLevelFromFS(clean)
	}
	return decodeLevel(data)
}

func decodeLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.validate(); err != nil {
		return nil, fmt.Errorf("invalid level %q: %w", lvl.Name, err)
	}
	return &lvl, nil
}

func (l *Level) validate() error {
	if l.Width < 0 || l.Height < 0 || l.TileSize < 0 {
		return fmt.Errorf("negative dimensions")
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("layer %d has %d cells, want %d", i, len(layer), l.Width*l.Height)
		}
	}
	if len(l.Layers) > 0 && l.TileSize == 0 {
		return fmt.Errorf("tile layers need a tile_size")
	}
	return nil
}

// Physics reports whether layer i produces colliders. Layers without meta
// are solid.
func (l *Level) Physics(i int) bool {
	if i < 0 || i >= len(l.LayerMeta) {
		return true
	}
	return l.LayerMeta[i].Physics
}

func cleanLevelPath(p string) string {
	s := filepath.ToSlash(p)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	if path.Ext(s) == "" {
		s += ".json"
	}
	return s
}
