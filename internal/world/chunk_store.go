package world

import (
	"fmt"
	"sort"
)

// ChunkStore is a sparse voxel volume: a map of lazily allocated chunks keyed by
// chunk coordinate. It is not safe for concurrent use; callers that share a
// store between goroutines must serialize access themselves.
type ChunkStore struct {
	chunks    map[ChunkCoord]*Chunk
	chunkSize int
}

// NewChunkStore creates an empty store with the given chunk edge length.
// It panics if chunkSize is not positive.
func NewChunkStore(chunkSize int) *ChunkStore {
	if chunkSize <= 0 {
		panic(fmt.Sprintf("world: chunk size must be positive, got %d", chunkSize))
	}
	return &ChunkStore{
		chunks:    make(map[ChunkCoord]*Chunk),
		chunkSize: chunkSize,
	}
}

// ChunkSize returns the chunk edge length.
func (cs *ChunkStore) ChunkSize() int {
	return cs.chunkSize
}

// Len returns the number of allocated chunks.
func (cs *ChunkStore) Len() int {
	return len(cs.chunks)
}

// Chunk returns the chunk at coord, or nil if it has not been allocated.
func (cs *ChunkStore) Chunk(coord ChunkCoord) *Chunk {
	return cs.chunks[coord]
}

// ChunkExists reports whether the chunk at (cx, cy, cz) has been allocated.
func (cs *ChunkStore) ChunkExists(cx, cy, cz int) bool {
	_, ok := cs.chunks[ChunkCoord{X: cx, Y: cy, Z: cz}]
	return ok
}

// EnsureChunk returns the chunk at coord, allocating an all-air chunk if needed.
func (cs *ChunkStore) EnsureChunk(coord ChunkCoord) *Chunk {
	if c, ok := cs.chunks[coord]; ok {
		return c
	}
	c := NewChunk(coord.X, coord.Y, coord.Z, cs.chunkSize)
	cs.chunks[coord] = c
	return c
}

// AddChunk installs a pre-built Y-major buffer at coord, replacing any chunk
// already there. The store takes ownership of blocks.
func (cs *ChunkStore) AddChunk(coord ChunkCoord, blocks []byte) error {
	want := cs.chunkSize * cs.chunkSize * cs.chunkSize
	if len(blocks) != want {
		return fmt.Errorf("chunk %v: got %d blocks, want %d", coord, len(blocks), want)
	}
	cs.chunks[coord] = &Chunk{
		X:      coord.X,
		Y:      coord.Y,
		Z:      coord.Z,
		size:   cs.chunkSize,
		blocks: blocks,
		dirty:  true,
	}
	return nil
}

// RemoveChunk evicts the chunk at coord. It reports whether a chunk was removed.
func (cs *ChunkStore) RemoveChunk(coord ChunkCoord) bool {
	if _, ok := cs.chunks[coord]; !ok {
		return false
	}
	delete(cs.chunks, coord)
	return true
}

// Chunks returns all allocated chunks ordered by Y, then Z, then X.
func (cs *ChunkStore) Chunks() []ChunkWithCoord {
	out := make([]ChunkWithCoord, 0, len(cs.chunks))
	for coord, c := range cs.chunks {
		out = append(out, ChunkWithCoord{Chunk: c, Coord: coord})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Coord, out[j].Coord
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.X < b.X
	})
	return out
}

// chunkForBlock returns the chunk holding world block (x, y, z), creating it when create is set.
func (cs *ChunkStore) chunkForBlock(x, y, z int, create bool) *Chunk {
	coord := ChunkCoordOfBlock(x, y, z, cs.chunkSize)
	if c, ok := cs.chunks[coord]; ok {
		return c
	}
	if !create {
		return nil
	}
	c := NewChunk(coord.X, coord.Y, coord.Z, cs.chunkSize)
	cs.chunks[coord] = c
	return c
}

// GetVoxel returns the block at world coordinates, or air if its chunk does not exist.
func (cs *ChunkStore) GetVoxel(x, y, z int) BlockType {
	c := cs.chunkForBlock(x, y, z, false)
	if c == nil {
		return BlockTypeAir
	}
	s := cs.chunkSize
	return c.GetBlock(mod(x, s), mod(y, s), mod(z, s))
}

// IsAir checks if the block at world coordinates is air.
func (cs *ChunkStore) IsAir(x, y, z int) bool {
	return cs.GetVoxel(x, y, z) == BlockTypeAir
}

// SetVoxel writes t at world coordinates, allocating the owning chunk if needed.
func (cs *ChunkStore) SetVoxel(x, y, z int, t BlockType) {
	cs.set(x, y, z, t, true)
}

// SetVoxelIfExists writes t only when the owning chunk already exists; otherwise
// the write is dropped.
func (cs *ChunkStore) SetVoxelIfExists(x, y, z int, t BlockType) {
	cs.set(x, y, z, t, false)
}

func (cs *ChunkStore) set(x, y, z int, t BlockType, create bool) {
	c := cs.chunkForBlock(x, y, z, create)
	if c == nil {
		return
	}
	s := cs.chunkSize
	lx, ly, lz := mod(x, s), mod(y, s), mod(z, s)
	if !c.setBlock(lx, ly, lz, t) {
		return
	}

	// Border writes change the neighbour's visible faces too.
	if lx == 0 {
		cs.markDirty(x-1, y, z)
	}
	if lx == s-1 {
		cs.markDirty(x+1, y, z)
	}
	if ly == 0 {
		cs.markDirty(x, y-1, z)
	}
	if ly == s-1 {
		cs.markDirty(x, y+1, z)
	}
	if lz == 0 {
		cs.markDirty(x, y, z-1)
	}
	if lz == s-1 {
		cs.markDirty(x, y, z+1)
	}
}

func (cs *ChunkStore) markDirty(x, y, z int) {
	if nb := cs.chunkForBlock(x, y, z, false); nb != nil {
		nb.dirty = true
	}
}
