package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"voxmesh/internal/config"
	"voxmesh/internal/export"
	"voxmesh/internal/meshing"
	"voxmesh/internal/physics"
	"voxmesh/internal/profiling"
	"voxmesh/internal/storage"
	"voxmesh/internal/streaming"
	"voxmesh/internal/world"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

func run(ctx context.Context, cfg config.Config, opts options, log *slog.Logger) error {
	rec := profiling.New()
	store := world.NewChunkStore(cfg.ChunkSize)
	gen := cfg.Generator(cfg.ChunkSize)

	var cache *storage.Cache
	if cfg.CacheDir != "" {
		level, err := storage.ParseLevel(cfg.CacheLevel)
		if err != nil {
			return err
		}
		cache, err = storage.NewCache(cfg.CacheDir, level, log)
		if err != nil {
			return err
		}
	}

	streamer := streaming.New(store, gen, streaming.Options{Cache: cache, Logger: log, Recorder: rec})
	center := world.ChunkCoord{X: opts.cx, Y: opts.cy, Z: opts.cz}
	installed, err := streamer.EnsureAround(center, cfg.StreamRadius)
	if err != nil {
		return errors.Wrap(err, "stream chunks")
	}
	log.Info("chunks ready", "center", center, "radius", cfg.StreamRadius, "installed", len(installed), "resident", store.Len())
	logGround(store, center, cfg.StreamRadius, log)

	meshes, err := meshAll(ctx, store, meshing.NewMesher(cfg.ChunkSize, cfg.Layout()), rec)
	if err != nil {
		return err
	}

	var exportOpts export.Options
	if opts.atlasOut != "" {
		if err := writeAtlas(opts.atlasOut, cfg.Layout(), opts.tilesDir, log); err != nil {
			return err
		}
		rel, err := filepath.Rel(filepath.Dir(opts.out), opts.atlasOut)
		if err != nil {
			rel = opts.atlasOut
		}
		exportOpts.AtlasURI = filepath.ToSlash(rel)
	}

	stop := rec.Track("export.Write")
	err = writeModel(opts.out, export.Document(meshes, exportOpts), opts.glb)
	stop()
	if err != nil {
		return err
	}

	var faces, vertices int
	for _, cm := range meshes {
		faces += cm.Mesh.FaceCount()
		vertices += cm.Mesh.VertexCount()
	}
	attrs := []any{"out", opts.out, "meshes", len(meshes), "faces", faces, "vertices", vertices}
	if lo, hi, ok := export.Bounds(meshes); ok {
		attrs = append(attrs, "min", lo, "max", hi)
	}
	log.Info("model written", attrs...)
	log.Info("timing", "top", rec.TopN(5))
	return nil
}

// logGround reports where the center column's surface lies inside the
// streamed cube.
func logGround(store *world.ChunkStore, center world.ChunkCoord, radius int, log *slog.Logger) {
	size := store.ChunkSize()
	bx, by, bz := center.Base(size)
	x, z := bx+size/2, bz+size/2
	top := by + (radius+1)*size - 1
	bottom := by - radius*size
	if y, ok := physics.GroundLevel(store, x, z, top, bottom); ok {
		log.Info("ground found", "x", x, "z", z, "y", y)
		return
	}
	log.Info("no ground in streamed column", "x", x, "z", z)
}

// meshAll meshes every resident chunk in store order and marks it clean.
func meshAll(ctx context.Context, store *world.ChunkStore, m *meshing.Mesher, rec *profiling.Recorder) ([]export.ChunkMesh, error) {
	var out []export.ChunkMesh
	for _, cw := range store.Chunks() {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "meshing interrupted")
		}
		if cw.Chunk.IsEmpty() {
			cw.Chunk.SetClean()
			continue
		}
		stop := rec.Track("meshing.GenerateMesh")
		mb := m.GenerateMesh(store, cw.Coord)
		stop()
		cw.Chunk.SetClean()
		out = append(out, export.ChunkMesh{
			Coord:  cw.Coord,
			Origin: cw.Coord.Origin(store.ChunkSize()),
			Mesh:   mb,
		})
	}
	return out, nil
}

func writeModel(path string, doc *gltf.Document, binary bool) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	if err := export.Write(f, doc, binary); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "create %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", path)
	}
	return f, nil
}
