package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"voxmesh/internal/config"

	"golang.org/x/term"
)

type options struct {
	configPath string
	radius     int
	out        string
	glb        bool
	cx, cy, cz int
	atlasOut   string
	tilesDir   string
	verbose    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML config file (defaults apply when empty)")
	flag.IntVar(&opts.radius, "radius", -1, "chunk radius to stream around the center (overrides stream_radius)")
	flag.StringVar(&opts.out, "out", "chunks.gltf", "output glTF path")
	flag.BoolVar(&opts.glb, "glb", false, "write binary GLB instead of JSON glTF")
	flag.IntVar(&opts.cx, "cx", 0, "center chunk X")
	flag.IntVar(&opts.cy, "cy", 0, "center chunk Y")
	flag.IntVar(&opts.cz, "cz", 0, "center chunk Z")
	flag.StringVar(&opts.atlasOut, "atlas", "", "also write a texture atlas PNG here and reference it from the model")
	flag.StringVar(&opts.tilesDir, "tiles", "", "directory of <type>_<side|bottom|top>.png tiles for -atlas")
	flag.BoolVar(&opts.verbose, "v", false, "debug logging")
	flag.Parse()

	log := newLogger(opts.verbose)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}
	if opts.radius >= 0 {
		cfg.StreamRadius = opts.radius
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, opts, log); err != nil {
		log.Error("voxmesh failed", "error", err)
		os.Exit(1)
	}
}

// newLogger writes human-readable text to a terminal and JSON otherwise.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	ho := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stderr, ho))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, ho))
}
