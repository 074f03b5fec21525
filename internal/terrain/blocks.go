package terrain

import "voxmesh/internal/world"

// Block kinds produced by the generators. Each value is also the atlas column
// (value-1) its texture lives in.
const (
	Dirt  world.BlockType = 1
	Sand  world.BlockType = 2
	Snow  world.BlockType = 3
	Rock  world.BlockType = 4
	Grass world.BlockType = 5
	Stone world.BlockType = 6
	Water world.BlockType = 7
)

var blockNames = map[world.BlockType]string{
	world.BlockTypeAir: "air",
	Dirt:               "dirt",
	Sand:               "sand",
	Snow:               "snow",
	Rock:               "rock",
	Grass:              "grass",
	Stone:              "stone",
	Water:              "water",
}

// BlockName returns a readable name for t, or "unknown".
func BlockName(t world.BlockType) string {
	if n, ok := blockNames[t]; ok {
		return n
	}
	return "unknown"
}
