package main

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"voxmesh/internal/atlas"
	"voxmesh/internal/terrain"
	"voxmesh/internal/world"

	"github.com/pkg/errors"
)

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

var (
	dirt  = rgb(134, 96, 67)
	sand  = rgb(219, 207, 163)
	rock  = rgb(116, 116, 116)
	stone = rgb(90, 90, 96)
	water = color.RGBA{R: 47, G: 67, B: 244, A: 180}
)

// palette gives each block kind a flat colour per atlas row (side, bottom,
// top), used when no tile image is available.
var palette = map[world.BlockType][3]color.RGBA{
	terrain.Dirt:  {dirt, dirt, dirt},
	terrain.Sand:  {sand, sand, sand},
	terrain.Snow:  {rgb(240, 251, 251), dirt, rgb(255, 255, 255)},
	terrain.Rock:  {rock, rock, rgb(128, 128, 128)},
	terrain.Grass: {rgb(110, 128, 60), dirt, rgb(95, 159, 53)},
	terrain.Stone: {stone, stone, stone},
	terrain.Water: {water, water, water},
}

// buildTiles fills a grid matching layout with one tile per block kind and
// face row. Files named "<kind>_<row>.png" in dir win over the palette.
func buildTiles(layout atlas.Layout, dir string, log *slog.Logger) ([][]image.Image, error) {
	tileSize := int(layout.TileSize)
	tiles := make([][]image.Image, layout.Rows())
	for row := range tiles {
		tiles[row] = make([]image.Image, layout.Columns())
		if row >= len(atlas.RowNames) {
			continue
		}
		rowName := atlas.RowNames[row]
		for col := range tiles[row] {
			t := world.BlockType(col + 1)
			colors, known := palette[t]
			if !known {
				continue
			}
			if dir != "" {
				path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", terrain.BlockName(t), rowName))
				img, err := atlas.LoadImage(path)
				if err == nil {
					tiles[row][col] = img
					continue
				}
				if _, statErr := os.Stat(path); statErr == nil {
					return nil, err
				}
				log.Debug("tile missing, using palette", "path", path)
			}
			tiles[row][col] = atlas.Solid(tileSize, colors[row])
		}
	}
	return tiles, nil
}

// writeAtlas composes an atlas with exactly the dimensions the mesher's UVs
// assume and saves it as PNG.
func writeAtlas(path string, layout atlas.Layout, tilesDir string, log *slog.Logger) error {
	tiles, err := buildTiles(layout, tilesDir, log)
	if err != nil {
		return err
	}
	img, err := atlas.Compose(tiles, int(layout.TileSize))
	if err != nil {
		return err
	}
	if got := atlas.LayoutFor(img, int(layout.TileSize)); got != layout {
		return errors.Errorf("atlas image is %vx%v, layout expects %vx%v", got.Width, got.Height, layout.Width, layout.Height)
	}
	f, err := createFile(path)
	if err != nil {
		return err
	}
	if err := atlas.WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	b := img.Bounds()
	log.Info("atlas written", "path", path, "width", b.Dx(), "height", b.Dy())
	return errors.Wrapf(f.Close(), "close %s", path)
}
