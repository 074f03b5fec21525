package storage

import (
	"log/slog"
	"os"
	"path/filepath"

	"voxmesh/internal/world"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

const fileExt = ".nbt.zst"

// Cache is a directory of encoded chunks, one file per chunk.
type Cache struct {
	dir   string
	level zstd.EncoderLevel
	log   *slog.Logger
}

// NewCache opens (creating if needed) a cache rooted at dir. A nil logger
// falls back to slog.Default().
func NewCache(dir string, level zstd.EncoderLevel, logger *slog.Logger) (*Cache, error) {
	if dir == "" {
		return nil, errors.New("storage: empty cache directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create cache dir %s", dir)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{dir: dir, level: level, log: logger.With("component", "chunk-cache")}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	return c.dir
}

func (c *Cache) path(coord world.ChunkCoord) string {
	return filepath.Join(c.dir, Key(coord)+fileExt)
}

// Save writes the chunk atomically: the blob goes to a temp file that is then
// renamed over the final path.
func (c *Cache) Save(coord world.ChunkCoord, size int, blocks []byte) error {
	data, err := EncodeChunk(coord, size, blocks, c.level)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(c.dir, Key(coord)+"-*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "close %s", tmpName)
	}
	if err := os.Rename(tmpName, c.path(coord)); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "rename %s", tmpName)
	}
	c.log.Debug("chunk saved", "key", Key(coord), "bytes", len(data))
	return nil
}

// Load reads the chunk at coord. It returns ErrNotFound when nothing is
// cached and ErrCorrupt when the file does not decode or belongs to another
// chunk; check with errors.Cause.
func (c *Cache) Load(coord world.ChunkCoord) (ChunkRecord, error) {
	data, err := os.ReadFile(c.path(coord))
	if err != nil {
		if os.IsNotExist(err) {
			return ChunkRecord{}, errors.WithStack(ErrNotFound)
		}
		return ChunkRecord{}, errors.Wrapf(err, "read %s", Key(coord))
	}
	rec, err := DecodeChunk(data)
	if err != nil {
		c.log.Warn("corrupt chunk record", "key", Key(coord), "error", err)
		return ChunkRecord{}, err
	}
	if rec.Coord() != coord {
		c.log.Warn("chunk record coordinate mismatch", "key", Key(coord), "got", Key(rec.Coord()))
		return ChunkRecord{}, errors.Wrapf(ErrCorrupt, "record holds %s", Key(rec.Coord()))
	}
	return rec, nil
}

// Delete removes the chunk at coord. Deleting a missing chunk is not an error.
func (c *Cache) Delete(coord world.ChunkCoord) error {
	if err := os.Remove(c.path(coord)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "delete %s", Key(coord))
	}
	return nil
}
