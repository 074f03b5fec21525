package physics_test

import (
	"testing"

	"voxmesh/internal/physics"
	"voxmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRaycast(t *testing.T) {
	store := world.NewChunkStore(16)
	store.SetVoxel(5, 0, 0, 6)

	start := mgl32.Vec3{0.5, 0.5, 0.5}
	dir := mgl32.Vec3{1, 0, 0}

	result := physics.Raycast(store, start, dir, 10)
	if !result.Hit {
		t.Fatalf("Expected hit, got miss")
	}
	if result.HitPosition != [3]int{5, 0, 0} {
		t.Errorf("Expected hit at {5,0,0}, got %v", result.HitPosition)
	}
	if result.AdjacentPosition != [3]int{4, 0, 0} {
		t.Errorf("Expected adjacent at {4,0,0}, got %v", result.AdjacentPosition)
	}
	if result.Normal != [3]int{-1, 0, 0} {
		t.Errorf("Expected normal {-1,0,0}, got %v", result.Normal)
	}
	if result.Type != 6 {
		t.Errorf("Expected type 6, got %d", result.Type)
	}
	// Ray starts at X=0.5 and enters the block at X=5.
	if result.Distance < 4.49 || result.Distance > 4.51 {
		t.Errorf("Expected distance 4.5, got %f", result.Distance)
	}

	if r := physics.Raycast(store, start, dir, 4); r.Hit {
		t.Errorf("Expected miss due to maxDist, got hit at %v", r.HitPosition)
	}
	if r := physics.Raycast(store, start, mgl32.Vec3{0, 1, 0}, 10); r.Hit {
		t.Errorf("Expected miss looking up, got hit at %v", r.HitPosition)
	}
	if r := physics.Raycast(store, start, mgl32.Vec3{}, 10); r.Hit {
		t.Error("Zero direction should never hit")
	}
}

func TestRaycastNegativeCoordinates(t *testing.T) {
	store := world.NewChunkStore(4)
	store.SetVoxel(-3, -2, -1, 1)

	// Look straight down onto the block from above.
	r := physics.Raycast(store, mgl32.Vec3{-2.5, 3, -0.5}, mgl32.Vec3{0, -1, 0}, 10)
	if !r.Hit || r.HitPosition != [3]int{-3, -2, -1} {
		t.Fatalf("Expected hit at {-3,-2,-1}, got %+v", r)
	}
	if r.AdjacentPosition != [3]int{-3, -1, -1} || r.Normal != [3]int{0, 1, 0} {
		t.Errorf("Adjacent %v normal %v", r.AdjacentPosition, r.Normal)
	}
	if r.Distance < 3.99 || r.Distance > 4.01 {
		t.Errorf("Expected distance 4, got %f", r.Distance)
	}
}

func TestRaycastDiagonal(t *testing.T) {
	store := world.NewChunkStore(16)
	store.SetVoxel(3, 3, 0, 2)

	r := physics.Raycast(store, mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 1, 0}, 10)
	if !r.Hit || r.HitPosition != [3]int{3, 3, 0} {
		t.Fatalf("Expected diagonal hit at {3,3,0}, got %+v", r)
	}
}

func TestRaycastStartInsideBlock(t *testing.T) {
	store := world.NewChunkStore(16)
	store.SetVoxel(0, 0, 0, 1)
	r := physics.Raycast(store, mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 5)
	if !r.Hit || r.Distance != 0 || r.Normal != [3]int{} {
		t.Errorf("Expected immediate hit, got %+v", r)
	}
}

func TestGroundLevel(t *testing.T) {
	store := world.NewChunkStore(16)
	for y := -4; y <= 2; y++ {
		store.SetVoxel(7, y, -3, 1)
	}
	if y, ok := physics.GroundLevel(store, 7, -3, 40, -40); !ok || y != 3 {
		t.Errorf("GroundLevel = %d, %v; want 3, true", y, ok)
	}
	if _, ok := physics.GroundLevel(store, 8, -3, 40, -40); ok {
		t.Error("empty column should report no ground")
	}
}

func BenchmarkRaycast(b *testing.B) {
	store := world.NewChunkStore(16)
	store.SetVoxel(40, 5, 20, 1)
	start := mgl32.Vec3{0.5, 5.5, 0.5}
	dir := mgl32.Vec3{2, 0, 1}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = physics.Raycast(store, start, dir, 100)
	}
}
