package atlas

import (
	"image"
	"image/png"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Compose assembles an atlas image from per-face tiles. tiles[row][col] is the
// tile for face row `row` of block type col+1; nil entries stay transparent.
// Tiles of any size are scaled to tileSize with nearest-neighbour sampling so
// pixel art keeps hard edges.
func Compose(tiles [][]image.Image, tileSize int) (*image.RGBA, error) {
	if tileSize <= 0 {
		return nil, errors.Errorf("atlas: tile size must be positive, got %d", tileSize)
	}
	rows := len(tiles)
	cols := 0
	for _, row := range tiles {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if rows == 0 || cols == 0 {
		return nil, errors.New("atlas: no tiles")
	}

	dst := image.NewRGBA(image.Rect(0, 0, cols*tileSize, rows*tileSize))
	for r, row := range tiles {
		for c, tile := range row {
			if tile == nil {
				continue
			}
			if tile.Bounds().Empty() {
				return nil, errors.Errorf("atlas: tile row %d col %d is empty", r, c)
			}
			cell := image.Rect(c*tileSize, r*tileSize, (c+1)*tileSize, (r+1)*tileSize)
			draw.NearestNeighbor.Scale(dst, cell, tile, tile.Bounds(), draw.Src, nil)
		}
	}
	return dst, nil
}

// LayoutFor returns the UV layout matching an atlas image built by Compose.
func LayoutFor(img image.Image, tileSize int) Layout {
	b := img.Bounds()
	return NewLayout(float32(tileSize), float32(b.Dx()), float32(b.Dy()))
}

// WritePNG encodes the atlas as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return errors.Wrap(err, "atlas: encode png")
	}
	return nil
}
