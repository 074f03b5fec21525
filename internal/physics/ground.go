package physics

import "voxmesh/internal/world"

// GroundLevel scans column (x, z) downward from fromY to minY and returns the
// Y just above the first solid voxel, i.e. where something standing on it
// would rest.
func GroundLevel(src VoxelSource, x, z, fromY, minY int) (int, bool) {
	for y := fromY; y >= minY; y-- {
		if src.GetVoxel(x, y, z) != world.BlockTypeAir {
			return y + 1, true
		}
	}
	return 0, false
}
