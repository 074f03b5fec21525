package world

import "testing"

func BenchmarkSetVoxel(b *testing.B) {
	cs := NewChunkStore(16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cs.SetVoxel(i%64-32, (i/64)%64-32, (i/4096)%64-32, BlockType(i%255+1))
	}
}

func BenchmarkGetVoxel(b *testing.B) {
	cs := NewChunkStore(16)
	for x := -16; x < 16; x++ {
		for z := -16; z < 16; z++ {
			cs.SetVoxel(x, 0, z, 1)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cs.GetVoxel(i%32-16, 0, (i/32)%32-16)
	}
}
