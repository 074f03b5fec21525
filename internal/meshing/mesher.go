package meshing

import (
	"fmt"

	"voxmesh/internal/atlas"
	"voxmesh/internal/world"
)

// VoxelSource answers block queries in world coordinates. *world.ChunkStore
// satisfies it; positions with no data must read as air.
type VoxelSource interface {
	GetVoxel(x, y, z int) world.BlockType
}

// Mesher turns chunk voxels into face-culled triangle meshes. It holds only
// configuration and is safe to share between goroutines as long as each call
// reads from a source nobody is writing to.
type Mesher struct {
	chunkSize int
	layout    atlas.Layout
}

// NewMesher returns a mesher for chunks of the given edge length. It panics if
// chunkSize is not positive.
func NewMesher(chunkSize int, layout atlas.Layout) *Mesher {
	if chunkSize <= 0 {
		panic(fmt.Sprintf("meshing: chunk size must be positive, got %d", chunkSize))
	}
	return &Mesher{chunkSize: chunkSize, layout: layout}
}

// ChunkSize returns the chunk edge length the mesher iterates.
func (m *Mesher) ChunkSize() int {
	return m.chunkSize
}

// Layout returns the atlas layout used for UVs.
func (m *Mesher) Layout() atlas.Layout {
	return m.layout
}

// GenerateMesh builds the mesh for the chunk at coord. Every face of a solid
// voxel whose neighbour reads as air is emitted; neighbours are looked up
// through src so faces against adjacent chunks are culled too. Chunks that do
// not exist read as air, so a chunk meshed before its neighbours are populated
// keeps its border faces until it is meshed again.
func (m *Mesher) GenerateMesh(src VoxelSource, coord world.ChunkCoord) *MeshBuffer {
	baseX, baseY, baseZ := coord.Base(m.chunkSize)
	return m.build(src, baseX, baseY, baseZ)
}

// GenerateMeshForBlocks meshes a standalone Y-major chunk buffer. Everything
// outside the buffer is air. It panics if len(blocks) != chunkSize^3.
func (m *Mesher) GenerateMeshForBlocks(blocks []byte) *MeshBuffer {
	s := m.chunkSize
	if len(blocks) != s*s*s {
		panic(fmt.Sprintf("meshing: got %d blocks, want %d", len(blocks), s*s*s))
	}
	return m.build(blockSource{blocks: blocks, size: s}, 0, 0, 0)
}

func (m *Mesher) build(src VoxelSource, baseX, baseY, baseZ int) *MeshBuffer {
	s := m.chunkSize
	mb := &MeshBuffer{}
	for y := 0; y < s; y++ {
		wy := baseY + y
		for z := 0; z < s; z++ {
			wz := baseZ + z
			for x := 0; x < s; x++ {
				wx := baseX + x
				t := src.GetVoxel(wx, wy, wz)
				if t == world.BlockTypeAir {
					continue
				}
				for i := range faces {
					f := &faces[i]
					if src.GetVoxel(wx+f.Dir[0], wy+f.Dir[1], wz+f.Dir[2]) != world.BlockTypeAir {
						continue
					}
					mb.appendFace(f, x, y, z, uint8(t), m.layout)
				}
			}
		}
	}
	return mb
}

// blockSource reads a single chunk buffer placed at the origin.
type blockSource struct {
	blocks []byte
	size   int
}

func (b blockSource) GetVoxel(x, y, z int) world.BlockType {
	if x < 0 || x >= b.size || y < 0 || y >= b.size || z < 0 || z >= b.size {
		return world.BlockTypeAir
	}
	return world.BlockType(b.blocks[world.Index(x, y, z, b.size)])
}
