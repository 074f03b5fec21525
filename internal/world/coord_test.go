package world

import "testing"

func TestChunkCoordRoundTrip(t *testing.T) {
	sizes := []int{1, 3, 16, 32}
	for _, s := range sizes {
		for w := -100; w <= 100; w++ {
			c := ChunkCoordOf(w, s)
			l := LocalOffsetOf(w, s)
			if c*s+l != w {
				t.Fatalf("size %d: chunk %d * %d + local %d != %d", s, c, s, l, w)
			}
			if l < 0 || l >= s {
				t.Fatalf("size %d: local offset %d of %d out of range", s, l, w)
			}
		}
	}
}

func TestChunkCoordOfNegative(t *testing.T) {
	tests := []struct {
		w         int
		wantChunk int
		wantLocal int
	}{
		{0, 0, 0},
		{15, 0, 15},
		{16, 1, 0},
		{-1, -1, 15},
		{-16, -1, 0},
		{-17, -2, 15},
	}
	for _, tt := range tests {
		if got := ChunkCoordOf(tt.w, 16); got != tt.wantChunk {
			t.Errorf("ChunkCoordOf(%d, 16) = %d, want %d", tt.w, got, tt.wantChunk)
		}
		if got := LocalOffsetOf(tt.w, 16); got != tt.wantLocal {
			t.Errorf("LocalOffsetOf(%d, 16) = %d, want %d", tt.w, got, tt.wantLocal)
		}
	}
}

func TestIndexIsYMajor(t *testing.T) {
	const s = 16
	if got := Index(1, 0, 0, s); got != 1 {
		t.Errorf("x stride: got %d, want 1", got)
	}
	if got := Index(0, 0, 1, s); got != s {
		t.Errorf("z stride: got %d, want %d", got, s)
	}
	if got := Index(0, 1, 0, s); got != s*s {
		t.Errorf("y stride: got %d, want %d", got, s*s)
	}

	// Iterating y, z, x must walk the buffer sequentially.
	next := 0
	for y := 0; y < s; y++ {
		for z := 0; z < s; z++ {
			for x := 0; x < s; x++ {
				idx := Index(x, y, z, s)
				if idx != next {
					t.Fatalf("Index(%d,%d,%d) = %d, want %d", x, y, z, idx, next)
				}
				lx, ly, lz := LocalOf(idx, s)
				if lx != x || ly != y || lz != z {
					t.Fatalf("LocalOf(%d) = (%d,%d,%d), want (%d,%d,%d)", idx, lx, ly, lz, x, y, z)
				}
				next++
			}
		}
	}
}

func TestChunkCoordOrigin(t *testing.T) {
	c := ChunkCoord{X: -1, Y: 2, Z: 0}
	x, y, z := c.Base(16)
	if x != -16 || y != 32 || z != 0 {
		t.Errorf("Base = (%d,%d,%d), want (-16,32,0)", x, y, z)
	}
	o := c.Origin(16)
	if o.X() != -16 || o.Y() != 32 || o.Z() != 0 {
		t.Errorf("Origin = %v, want (-16,32,0)", o)
	}
	if got := c.Add(1, -2, 3); got != (ChunkCoord{X: 0, Y: 0, Z: 3}) {
		t.Errorf("Add = %v", got)
	}
}
