package world

// BlockType is the one-byte voxel type code. Zero is air; every other value is
// an application-defined solid kind.
type BlockType uint8

const BlockTypeAir BlockType = 0

// Chunk is a cube of chunkSize^3 voxels stored in a flat Y-major buffer.
type Chunk struct {
	X, Y, Z int
	size    int
	blocks  []byte
	dirty   bool
}

// NewChunk creates an all-air chunk at the given chunk coordinates.
func NewChunk(x, y, z, size int) *Chunk {
	if size <= 0 {
		panic("world: chunk size must be positive")
	}
	return &Chunk{
		X:      x,
		Y:      y,
		Z:      z,
		size:   size,
		blocks: make([]byte, size*size*size),
		dirty:  true,
	}
}

// Coord returns the chunk coordinate.
func (c *Chunk) Coord() ChunkCoord {
	return ChunkCoord{X: c.X, Y: c.Y, Z: c.Z}
}

// Size returns the chunk edge length.
func (c *Chunk) Size() int {
	return c.size
}

func (c *Chunk) contains(x, y, z int) bool {
	return x >= 0 && x < c.size && y >= 0 && y < c.size && z >= 0 && z < c.size
}

// GetBlock returns the block at local coordinates, or air outside the chunk.
func (c *Chunk) GetBlock(x, y, z int) BlockType {
	if !c.contains(x, y, z) {
		return BlockTypeAir
	}
	return BlockType(c.blocks[Index(x, y, z, c.size)])
}

// setBlock writes t at local coordinates and reports whether the voxel changed.
// Writes outside the chunk are ignored. Only the store calls it.
func (c *Chunk) setBlock(x, y, z int, t BlockType) bool {
	if !c.contains(x, y, z) {
		return false
	}
	idx := Index(x, y, z, c.size)
	if c.blocks[idx] == byte(t) {
		return false
	}
	c.blocks[idx] = byte(t)
	c.dirty = true
	return true
}

// Blocks exposes the raw Y-major buffer. Callers that persist chunks treat it as an
// opaque blob; mutating it bypasses dirty tracking.
func (c *Chunk) Blocks() []byte {
	return c.blocks
}

// IsEmpty reports whether every voxel is air.
func (c *Chunk) IsEmpty() bool {
	for _, b := range c.blocks {
		if b != 0 {
			return false
		}
	}
	return true
}

// SolidCount returns the number of non-air voxels.
func (c *Chunk) SolidCount() int {
	n := 0
	for _, b := range c.blocks {
		if b != 0 {
			n++
		}
	}
	return n
}

// IsDirty returns whether the chunk has been modified since it was last marked clean.
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// SetClean marks the chunk as clean, typically after meshing.
func (c *Chunk) SetClean() {
	c.dirty = false
}

// MarkDirty flags the chunk for re-meshing.
func (c *Chunk) MarkDirty() {
	c.dirty = true
}
