// Package config loads run settings from YAML.
package config

import (
	"io"
	"math"
	"os"
	"strings"

	"voxmesh/internal/atlas"
	"voxmesh/internal/storage"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of a run. Zero-valued fields in a YAML file keep
// their defaults only if the key is absent.
type Config struct {
	ChunkSize int `yaml:"chunk_size"`

	TileSize    float32 `yaml:"tile_size"`
	AtlasWidth  float32 `yaml:"atlas_width"`
	AtlasHeight float32 `yaml:"atlas_height"`

	WorldGen `yaml:",inline"`

	StreamRadius int    `yaml:"stream_radius"`
	CacheDir     string `yaml:"cache_dir"`
	CacheLevel   string `yaml:"cache_level"`
}

// Default returns the built-in settings: 16-voxel chunks and a 256x64 atlas
// of 16-pixel tiles.
func Default() Config {
	return Config{
		ChunkSize:    16,
		TileSize:     16,
		AtlasWidth:   256,
		AtlasHeight:  64,
		WorldGen:     defaultWorldGen(),
		StreamRadius: 2,
		CacheLevel:   "default",
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, errors.Wrap(err, "open config")
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, errors.Wrapf(err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

// Validate reports the first setting that would make a component panic or
// misbehave.
func (c *Config) Validate() error {
	switch {
	case c.ChunkSize <= 0:
		return errors.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	case c.TileSize <= 0:
		return errors.Errorf("tile_size must be positive, got %v", c.TileSize)
	case c.AtlasWidth < c.TileSize || c.AtlasHeight < c.TileSize:
		return errors.Errorf("atlas %vx%v smaller than one %v tile", c.AtlasWidth, c.AtlasHeight, c.TileSize)
	case c.AtlasHeight < 3*c.TileSize:
		return errors.Errorf("atlas_height %v cannot hold side, bottom and top rows", c.AtlasHeight)
	case math.Mod(float64(c.AtlasWidth), float64(c.TileSize)) != 0 || math.Mod(float64(c.AtlasHeight), float64(c.TileSize)) != 0:
		return errors.Errorf("atlas %vx%v is not a whole number of %v tiles", c.AtlasWidth, c.AtlasHeight, c.TileSize)
	case c.StreamRadius < 0:
		return errors.Errorf("stream_radius must not be negative, got %d", c.StreamRadius)
	}
	if _, err := storage.ParseLevel(c.CacheLevel); err != nil {
		return err
	}
	return nil
}

// Layout returns the atlas layout described by the config.
func (c *Config) Layout() atlas.Layout {
	return atlas.NewLayout(c.TileSize, c.AtlasWidth, c.AtlasHeight)
}
