// Package streaming keeps a cube of chunks around a point resident in a
// world.ChunkStore, loading them from a cache or generating them on demand.
package streaming

import (
	"log/slog"
	"math"

	"voxmesh/internal/profiling"
	"voxmesh/internal/storage"
	"voxmesh/internal/terrain"
	"voxmesh/internal/world"

	"github.com/pkg/errors"
)

// Options configures optional collaborators. All fields may be nil.
type Options struct {
	Cache    *storage.Cache
	Logger   *slog.Logger
	Recorder *profiling.Recorder
}

// Streamer installs and evicts chunks synchronously. Like the store it
// drives, it is not safe for concurrent use.
type Streamer struct {
	store *world.ChunkStore
	gen   terrain.Generator
	cache *storage.Cache
	log   *slog.Logger
	prof  *profiling.Recorder
}

// New creates a streamer over store using gen for chunks the cache lacks.
func New(store *world.ChunkStore, gen terrain.Generator, opts Options) *Streamer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Streamer{
		store: store,
		gen:   gen,
		cache: opts.Cache,
		log:   logger.With("component", "streamer"),
		prof:  opts.Recorder,
	}
}

// ChunkOfPosition maps a continuous world position to its chunk.
func (s *Streamer) ChunkOfPosition(x, y, z float64) world.ChunkCoord {
	return world.ChunkCoordOfBlock(
		int(math.Floor(x)),
		int(math.Floor(y)),
		int(math.Floor(z)),
		s.store.ChunkSize(),
	)
}

// EnsureAround makes every chunk in the cube [center-radius, center+radius]
// resident and returns the coordinates it installed, ordered by Y, Z, X.
// Chunks already in the store are left alone. Existing neighbours of each
// installed chunk are marked dirty as soon as it lands, so chunks installed
// before a failure are still accounted for.
func (s *Streamer) EnsureAround(center world.ChunkCoord, radius int) ([]world.ChunkCoord, error) {
	defer s.prof.Track("streaming.EnsureAround")()
	if radius < 0 {
		return nil, errors.Errorf("streaming: negative radius %d", radius)
	}

	var installed []world.ChunkCoord
	for dy := -radius; dy <= radius; dy++ {
		for dz := -radius; dz <= radius; dz++ {
			for dx := -radius; dx <= radius; dx++ {
				coord := center.Add(dx, dy, dz)
				if s.store.Chunk(coord) != nil {
					continue
				}
				if err := s.install(coord); err != nil {
					return installed, err
				}
				s.markNeighboursDirty(coord)
				installed = append(installed, coord)
			}
		}
	}
	if len(installed) > 0 {
		s.log.Debug("chunks installed", "center", center, "radius", radius, "count", len(installed))
	}
	return installed, nil
}

func (s *Streamer) install(coord world.ChunkCoord) error {
	size := s.store.ChunkSize()
	if blocks, ok := s.loadCached(coord, size); ok {
		return s.store.AddChunk(coord, blocks)
	}

	stop := s.prof.Track("terrain.Fill")
	blocks := terrain.Fill(s.gen, coord, size)
	stop()

	if s.cache != nil {
		if err := s.cache.Save(coord, size, blocks); err != nil {
			return errors.Wrapf(err, "cache %s", storage.Key(coord))
		}
	}
	return s.store.AddChunk(coord, blocks)
}

// loadCached returns the cached buffer for coord when one exists and matches
// the store's chunk size. Unreadable records are dropped so they get
// regenerated.
func (s *Streamer) loadCached(coord world.ChunkCoord, size int) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	rec, err := s.cache.Load(coord)
	switch {
	case err == nil:
		if int(rec.Size) == size {
			return rec.Blocks, true
		}
		s.log.Info("cached chunk has different size, regenerating", "key", storage.Key(coord), "size", rec.Size)
	case errors.Cause(err) == storage.ErrNotFound:
		return nil, false
	case errors.Cause(err) == storage.ErrCorrupt:
		s.log.Warn("dropping corrupt cached chunk", "key", storage.Key(coord), "error", err)
	default:
		s.log.Error("chunk cache read failed", "key", storage.Key(coord), "error", err)
		return nil, false
	}
	if err := s.cache.Delete(coord); err != nil {
		s.log.Error("chunk cache delete failed", "key", storage.Key(coord), "error", err)
	}
	return nil, false
}

var neighbourOffsets = [6][3]int{
	{-1, 0, 0}, {1, 0, 0},
	{0, -1, 0}, {0, 1, 0},
	{0, 0, -1}, {0, 0, 1},
}

func (s *Streamer) markNeighboursDirty(coord world.ChunkCoord) {
	for _, o := range neighbourOffsets {
		if c := s.store.Chunk(coord.Add(o[0], o[1], o[2])); c != nil {
			c.MarkDirty()
		}
	}
}

// EvictOutside removes every chunk farther than radius from center on any
// axis and returns the removed coordinates.
func (s *Streamer) EvictOutside(center world.ChunkCoord, radius int) []world.ChunkCoord {
	defer s.prof.Track("streaming.EvictOutside")()
	var removed []world.ChunkCoord
	for _, cw := range s.store.Chunks() {
		if chebyshev(cw.Coord, center) <= radius {
			continue
		}
		s.store.RemoveChunk(cw.Coord)
		removed = append(removed, cw.Coord)
	}
	if len(removed) > 0 {
		s.log.Debug("chunks evicted", "center", center, "radius", radius, "count", len(removed))
	}
	return removed
}

func chebyshev(a, b world.ChunkCoord) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y), abs(a.Z-b.Z))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
