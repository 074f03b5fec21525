// Package storage persists chunk buffers as zstd-compressed NBT blobs.
package storage

import (
	"bytes"
	"fmt"

	"voxmesh/internal/world"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// FormatVersion is written into every record.
const FormatVersion = 1

var (
	// ErrNotFound is returned when no record exists for a chunk.
	ErrNotFound = errors.New("storage: chunk not found")
	// ErrCorrupt is returned when a record cannot be decoded or fails validation.
	ErrCorrupt = errors.New("storage: corrupt chunk record")
)

// ChunkRecord is the on-disk form of one chunk.
type ChunkRecord struct {
	Version int32  `nbt:"Version"`
	X       int32  `nbt:"X"`
	Y       int32  `nbt:"Y"`
	Z       int32  `nbt:"Z"`
	Size    int32  `nbt:"Size"`
	Blocks  []byte `nbt:"Blocks"`
}

// Coord returns the chunk coordinate stored in the record.
func (r ChunkRecord) Coord() world.ChunkCoord {
	return world.ChunkCoord{X: int(r.X), Y: int(r.Y), Z: int(r.Z)}
}

// Validate checks the record's buffer length against its declared size.
func (r ChunkRecord) Validate() error {
	if r.Version != FormatVersion {
		return errors.Wrapf(ErrCorrupt, "unsupported version %d", r.Version)
	}
	if r.Size <= 0 {
		return errors.Wrapf(ErrCorrupt, "chunk size %d", r.Size)
	}
	s := int(r.Size)
	if len(r.Blocks) != s*s*s {
		return errors.Wrapf(ErrCorrupt, "got %d blocks for size %d", len(r.Blocks), s)
	}
	return nil
}

// Key names a chunk in the cache, e.g. "chunk_-1,0,2".
func Key(coord world.ChunkCoord) string {
	return fmt.Sprintf("chunk_%d,%d,%d", coord.X, coord.Y, coord.Z)
}

// EncodeChunk serializes a Y-major chunk buffer.
func EncodeChunk(coord world.ChunkCoord, size int, blocks []byte, level zstd.EncoderLevel) ([]byte, error) {
	rec := ChunkRecord{
		Version: FormatVersion,
		X:       int32(coord.X),
		Y:       int32(coord.Y),
		Z:       int32(coord.Z),
		Size:    int32(size),
		Blocks:  blocks,
	}
	if err := rec.Validate(); err != nil {
		return nil, errors.Wrapf(err, "encode %s", Key(coord))
	}

	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, errors.Wrap(err, "create zstd writer")
	}
	if err := nbt.NewEncoder(enc).Encode(rec, ""); err != nil {
		enc.Close()
		return nil, errors.Wrapf(err, "encode nbt %s", Key(coord))
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrapf(err, "flush zstd %s", Key(coord))
	}
	return buf.Bytes(), nil
}

// DecodeChunk parses a blob produced by EncodeChunk. Any decoding or
// validation failure is reported as ErrCorrupt.
func DecodeChunk(data []byte) (ChunkRecord, error) {
	var rec ChunkRecord
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return rec, errors.Wrap(err, "create zstd reader")
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return rec, errors.Wrapf(ErrCorrupt, "decompress: %v", err)
	}
	if _, err := nbt.NewDecoder(bytes.NewReader(raw)).Decode(&rec); err != nil {
		return rec, errors.Wrapf(ErrCorrupt, "decode: %v", err)
	}
	if err := rec.Validate(); err != nil {
		return rec, err
	}
	return rec, nil
}

// ParseLevel maps a config name ("fastest", "default", "better", "best") to
// a zstd level.
func ParseLevel(name string) (zstd.EncoderLevel, error) {
	if name == "" {
		return zstd.SpeedDefault, nil
	}
	ok, level := zstd.EncoderLevelFromString(name)
	if !ok {
		return 0, errors.Errorf("storage: unknown compression level %q", name)
	}
	return level, nil
}
