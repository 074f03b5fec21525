package config

import "voxmesh/internal/terrain"

// WorldGen holds terrain generation settings.
type WorldGen struct {
	Seed       int64 `yaml:"seed"`
	WaterLevel int   `yaml:"water_level"`
	Caves      bool  `yaml:"caves"`
	// FlatHeight, when non-nil, swaps the noise terrain for a flat world.
	FlatHeight *int `yaml:"flat_height,omitempty"`
}

func defaultWorldGen() WorldGen {
	return WorldGen{
		Seed:       1,
		WaterLevel: 4,
		Caves:      false,
	}
}

// Generator builds the terrain generator for chunks of chunkSize.
func (w WorldGen) Generator(chunkSize int) terrain.Generator {
	if w.FlatHeight != nil {
		return terrain.FlatGenerator{Height: *w.FlatHeight}
	}
	return terrain.NewHeightmapGenerator(w.Seed, chunkSize, w.WaterLevel, w.Caves)
}
