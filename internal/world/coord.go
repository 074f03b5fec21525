package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ChunkCoord identifies a cubic chunk of the world.
type ChunkCoord struct {
	X, Y, Z int
}

// ChunkWithCoord pairs a chunk with its coordinate.
type ChunkWithCoord struct {
	Chunk *Chunk
	Coord ChunkCoord
}

// Add returns the coordinate offset by (dx, dy, dz) chunks.
func (c ChunkCoord) Add(dx, dy, dz int) ChunkCoord {
	return ChunkCoord{X: c.X + dx, Y: c.Y + dy, Z: c.Z + dz}
}

// Base returns the world-space integer coordinate of the chunk's minimum corner.
func (c ChunkCoord) Base(chunkSize int) (int, int, int) {
	return c.X * chunkSize, c.Y * chunkSize, c.Z * chunkSize
}

// Origin returns the chunk's minimum corner as a vector, for placing local geometry.
func (c ChunkCoord) Origin(chunkSize int) mgl32.Vec3 {
	x, y, z := c.Base(chunkSize)
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}

// floorDiv divides rounding toward negative infinity. b must be positive.
func floorDiv(a, b int) int {
	q := a / b
	if a%b < 0 {
		q--
	}
	return q
}

// mod returns a modulo b in [0, b). b must be positive.
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// ChunkCoordOf maps a world coordinate on one axis to its chunk coordinate.
func ChunkCoordOf(w, chunkSize int) int {
	return floorDiv(w, chunkSize)
}

// LocalOffsetOf maps a world coordinate on one axis to its offset inside the chunk.
// ChunkCoordOf(w, s)*s + LocalOffsetOf(w, s) == w for every integer w.
func LocalOffsetOf(w, chunkSize int) int {
	return mod(w, chunkSize)
}

// ChunkCoordOfBlock returns the chunk containing world block (x, y, z).
func ChunkCoordOfBlock(x, y, z, chunkSize int) ChunkCoord {
	return ChunkCoord{
		X: floorDiv(x, chunkSize),
		Y: floorDiv(y, chunkSize),
		Z: floorDiv(z, chunkSize),
	}
}

// Index converts local chunk coordinates into the Y-major flat index
// used by chunk buffers: ly*size*size + lz*size + lx.
func Index(lx, ly, lz, chunkSize int) int {
	return ly*chunkSize*chunkSize + lz*chunkSize + lx
}

// LocalOf is the inverse of Index.
func LocalOf(index, chunkSize int) (lx, ly, lz int) {
	slice := chunkSize * chunkSize
	ly = index / slice
	rem := index % slice
	lz = rem / chunkSize
	lx = rem % chunkSize
	return
}
