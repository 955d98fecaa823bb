package geo

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// MapFile is the YAML layout of a map file.
type MapFile struct {
	Name     string   `yaml:"name"`
	TileSize float64  `yaml:"tile_size"`
	Rows     []string `yaml:"rows"`
}

// ParseGrid decodes a YAML map document.
func ParseGrid(data []byte) (*Grid, error) {
	var mf MapFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parsing map: %w", err)
	}
	if mf.TileSize == 0 {
		mf.TileSize = 1
	}
	g, err := NewGrid(mf.Rows, mf.TileSize)
	if err != nil {
		return nil, fmt.Errorf("map %q: %w", mf.Name, err)
	}
	return g, nil
}

// LoadGrid reads a YAML map file.
func LoadGrid(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file %s: %w", path, err)
	}

	g, err := ParseGrid(data)
	if err != nil {
		return nil, fmt.Errorf("loading map %s: %w", path, err)
	}

	slog.Info("map loaded",
		"path", path,
		"width", g.width,
		"height", g.height,
		"tile_size", g.tileSize)
	return g, nil
}
