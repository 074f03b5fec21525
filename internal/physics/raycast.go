// Package physics answers spatial queries against voxel data: ray picking and
// ground probing.
package physics

import (
	"math"

	"voxmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// VoxelSource is the read side of world.ChunkStore.
type VoxelSource interface {
	GetVoxel(x, y, z int) world.BlockType
}

// RaycastResult stores the result of a raycast operation.
type RaycastResult struct {
	HitPosition      [3]int
	AdjacentPosition [3]int // last empty voxel before the hit
	Normal           [3]int // outward normal of the face entered, zero if the ray started inside
	Distance         float32
	Type             world.BlockType
	Hit              bool
}

// Raycast walks the voxel grid from start along direction and reports the
// first solid voxel within maxDist. Voxel (x, y, z) occupies [x, x+1) on each
// axis. The walk visits every voxel the ray touches, so thin diagonal gaps are
// never skipped.
func Raycast(src VoxelSource, start, direction mgl32.Vec3, maxDist float32) RaycastResult {
	var result RaycastResult
	if direction.Len() == 0 || maxDist < 0 {
		return result
	}
	d := direction.Normalize()

	var cell, step [3]int
	var tMax, tDelta [3]float32
	for a := 0; a < 3; a++ {
		cell[a] = int(math.Floor(float64(start[a])))
		switch {
		case d[a] > 0:
			step[a] = 1
			tDelta[a] = 1 / d[a]
			tMax[a] = (float32(cell[a]+1) - start[a]) * tDelta[a]
		case d[a] < 0:
			step[a] = -1
			tDelta[a] = -1 / d[a]
			tMax[a] = (start[a] - float32(cell[a])) * tDelta[a]
		default:
			tDelta[a] = float32(math.Inf(1))
			tMax[a] = float32(math.Inf(1))
		}
	}

	if t := src.GetVoxel(cell[0], cell[1], cell[2]); t != world.BlockTypeAir {
		result.HitPosition = cell
		result.AdjacentPosition = cell
		result.Type = t
		result.Hit = true
		return result
	}

	for {
		a := 0
		if tMax[1] < tMax[a] {
			a = 1
		}
		if tMax[2] < tMax[a] {
			a = 2
		}
		dist := tMax[a]
		if dist > maxDist {
			return result
		}
		prev := cell
		cell[a] += step[a]
		tMax[a] += tDelta[a]

		if t := src.GetVoxel(cell[0], cell[1], cell[2]); t != world.BlockTypeAir {
			result.HitPosition = cell
			result.AdjacentPosition = prev
			result.Normal[a] = -step[a]
			result.Distance = dist
			result.Type = t
			result.Hit = true
			return result
		}
	}
}
