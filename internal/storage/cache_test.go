package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"voxmesh/internal/world"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

func testBlocks(size int) []byte {
	blocks := make([]byte, size*size*size)
	for i := range blocks {
		if i%3 == 0 {
			blocks[i] = byte(1 + i%7)
		}
	}
	return blocks
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := NewCache(t.TempDir(), zstd.SpeedFastest, nil)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	return c
}

func TestKey(t *testing.T) {
	if got := Key(world.ChunkCoord{X: -1, Y: 0, Z: 2}); got != "chunk_-1,0,2" {
		t.Errorf("Key = %q", got)
	}
}

func TestCacheSaveLoad(t *testing.T) {
	c := newTestCache(t)
	coord := world.ChunkCoord{X: 3, Y: -2, Z: 7}
	blocks := testBlocks(8)

	if err := c.Save(coord, 8, blocks); err != nil {
		t.Fatalf("Save: %v", err)
	}
	rec, err := c.Load(coord)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.Coord() != coord || rec.Size != 8 {
		t.Errorf("record header = %v size %d", rec.Coord(), rec.Size)
	}
	if !bytes.Equal(rec.Blocks, blocks) {
		t.Error("blocks differ after reload")
	}

	entries, err := os.ReadDir(c.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != Key(coord)+fileExt {
		t.Errorf("cache dir holds %v, want only the chunk file", entries)
	}
}

func TestCacheOverwrite(t *testing.T) {
	c := newTestCache(t)
	coord := world.ChunkCoord{}
	if err := c.Save(coord, 2, make([]byte, 8)); err != nil {
		t.Fatal(err)
	}
	next := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if err := c.Save(coord, 2, next); err != nil {
		t.Fatal(err)
	}
	rec, err := c.Load(coord)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(rec.Blocks, next) {
		t.Errorf("blocks = %v, want %v", rec.Blocks, next)
	}
}

func TestCacheNotFound(t *testing.T) {
	c := newTestCache(t)
	_, err := c.Load(world.ChunkCoord{X: 1})
	if errors.Cause(err) != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCacheCorrupt(t *testing.T) {
	c := newTestCache(t)
	coord := world.ChunkCoord{Z: -4}
	if err := os.WriteFile(c.path(coord), []byte("definitely not zstd"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := c.Load(coord)
	if errors.Cause(err) != ErrCorrupt {
		t.Errorf("err = %v, want ErrCorrupt", err)
	}
}

func TestCacheCoordinateMismatch(t *testing.T) {
	c := newTestCache(t)
	a, b := world.ChunkCoord{X: 1}, world.ChunkCoord{X: 2}
	if err := c.Save(a, 2, make([]byte, 8)); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(c.path(a))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(c.Dir(), Key(b)+fileExt), data, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Load(b); errors.Cause(err) != ErrCorrupt {
		t.Errorf("err = %v, want ErrCorrupt", err)
	}
}

func TestCacheDelete(t *testing.T) {
	c := newTestCache(t)
	coord := world.ChunkCoord{Y: 1}
	if err := c.Save(coord, 2, make([]byte, 8)); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(coord); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Load(coord); errors.Cause(err) != ErrNotFound {
		t.Errorf("after delete err = %v, want ErrNotFound", err)
	}
	if err := c.Delete(coord); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestEncodeRejectsBadLength(t *testing.T) {
	_, err := EncodeChunk(world.ChunkCoord{}, 4, make([]byte, 10), zstd.SpeedDefault)
	if errors.Cause(err) != ErrCorrupt {
		t.Errorf("err = %v, want ErrCorrupt", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	data, err := EncodeChunk(world.ChunkCoord{}, 4, testBlocks(4), zstd.SpeedDefault)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeChunk(data[:len(data)/2]); errors.Cause(err) != ErrCorrupt {
		t.Errorf("err = %v, want ErrCorrupt", err)
	}
}

func TestCompressionShrinksAirChunks(t *testing.T) {
	data, err := EncodeChunk(world.ChunkCoord{}, 16, make([]byte, 16*16*16), zstd.SpeedDefault)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) >= 16*16*16/4 {
		t.Errorf("all-air chunk encoded to %d bytes", len(data))
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zstd.EncoderLevel
		wantErr bool
	}{
		{"", zstd.SpeedDefault, false},
		{"fastest", zstd.SpeedFastest, false},
		{"best", zstd.SpeedBestCompression, false},
		{"ludicrous", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) err = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewCacheEmptyDir(t *testing.T) {
	if _, err := NewCache("", zstd.SpeedDefault, nil); err == nil {
		t.Error("expected error for empty dir")
	}
}
