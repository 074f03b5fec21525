// Package terrain decides which voxel type sits at each world position and
// fills chunks of a world.ChunkStore from that decision.
package terrain

import (
	"math"

	"voxmesh/internal/world"
)

// Generator yields the voxel type at a world position. Implementations must be
// deterministic so regenerated chunks match cached ones.
type Generator interface {
	VoxelAt(x, y, z int) world.BlockType
}

// HeightmapGenerator derives a surface height per column from 2D noise and
// layers materials below it.
type HeightmapGenerator struct {
	chunkSize  int
	waterLevel int
	caves      bool

	scale   float64
	surface fractal

	caveScale     float64
	caveThreshold float64
	cave          fractal
}

// NewHeightmapGenerator creates a generator whose terrain band is tuned to
// chunkSize. Columns at or below waterLevel that lie above the surface are
// flooded.
func NewHeightmapGenerator(seed int64, chunkSize, waterLevel int, caves bool) *HeightmapGenerator {
	return &HeightmapGenerator{
		chunkSize:     chunkSize,
		waterLevel:    waterLevel,
		caves:         caves,
		scale:         0.01,
		surface:       newFractal(seed, octaves{count: 4, persistence: 0.5, lacunarity: 2}),
		caveScale:     0.05,
		caveThreshold: 0.7,
		cave:          newFractal(seed, octaves{count: 1, persistence: 0.5, lacunarity: 2}),
	}
}

// SurfaceHeight returns the world Y of the topmost solid voxel in column (x, z).
// For 16-voxel chunks the surface ranges over y 1..31.
func (g *HeightmapGenerator) SurfaceHeight(x, z int) int {
	n := g.surface.sum2D(float64(x)*g.scale, float64(z)*g.scale)
	return int(math.Floor((n+1)*0.5*float64(g.chunkSize))) + g.chunkSize/2
}

// VoxelAt implements Generator.
func (g *HeightmapGenerator) VoxelAt(x, y, z int) world.BlockType {
	t := g.classify(y, g.SurfaceHeight(x, z))
	if g.caves && t != world.BlockTypeAir && t != Water && g.inCavity(x, y, z) {
		return world.BlockTypeAir
	}
	return t
}

func (g *HeightmapGenerator) classify(y, surface int) world.BlockType {
	size := float64(g.chunkSize)
	switch {
	case y > surface:
		if y <= g.waterLevel {
			return Water
		}
		return world.BlockTypeAir
	case y == surface:
		switch h := float64(surface); {
		case y <= g.waterLevel+1:
			return Sand
		case h > size*1.8:
			return Snow
		case h > size*1.5:
			return Rock
		default:
			return Grass
		}
	case y < surface-3:
		return Stone
	default:
		return Dirt
	}
}

func (g *HeightmapGenerator) inCavity(x, y, z int) bool {
	n := g.cave.sum3D(float64(x)*g.caveScale, float64(y)*g.caveScale, float64(z)*g.caveScale)
	return n > g.caveThreshold
}

// FlatGenerator produces a flat world: stone, three layers of dirt, then grass
// at Height.
type FlatGenerator struct {
	Height int
}

// VoxelAt implements Generator.
func (g FlatGenerator) VoxelAt(x, y, z int) world.BlockType {
	switch {
	case y > g.Height:
		return world.BlockTypeAir
	case y == g.Height:
		return Grass
	case y < g.Height-3:
		return Stone
	default:
		return Dirt
	}
}

// Fill returns a fresh Y-major buffer for the chunk at coord.
func Fill(gen Generator, coord world.ChunkCoord, chunkSize int) []byte {
	blocks := make([]byte, chunkSize*chunkSize*chunkSize)
	bx, by, bz := coord.Base(chunkSize)
	for i := range blocks {
		lx, ly, lz := world.LocalOf(i, chunkSize)
		blocks[i] = byte(gen.VoxelAt(bx+lx, by+ly, bz+lz))
	}
	return blocks
}

// Populate ensures the chunk at coord exists in store and writes every
// non-air voxel gen yields for it. Existing voxels where gen yields air are
// left untouched.
func Populate(store *world.ChunkStore, gen Generator, coord world.ChunkCoord) {
	size := store.ChunkSize()
	store.EnsureChunk(coord)
	bx, by, bz := coord.Base(size)
	for ly := 0; ly < size; ly++ {
		for lz := 0; lz < size; lz++ {
			for lx := 0; lx < size; lx++ {
				x, y, z := bx+lx, by+ly, bz+lz
				if t := gen.VoxelAt(x, y, z); t != world.BlockTypeAir {
					store.SetVoxel(x, y, z, t)
				}
			}
		}
	}
}
