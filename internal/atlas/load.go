package atlas

import (
	"image"
	"image/color"
	_ "image/png"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// RowNames maps atlas rows to the file suffixes used for tile images.
var RowNames = [3]string{RowSide: "side", RowBottom: "bottom", RowTop: "top"}

// LoadImage decodes an image file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "atlas: open tile")
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "atlas: decode tile %s", path)
	}
	return img, nil
}

// Solid returns a size x size tile of a single colour.
func Solid(size int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}
