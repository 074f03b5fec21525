// Package atlas describes how block textures are laid out in a single atlas
// image: one column per block type (type-1) and one row per face kind.
package atlas

import "fmt"

// Atlas rows sampled by the face table.
const (
	RowSide   = 0
	RowBottom = 1
	RowTop    = 2
)

// Layout holds the pixel dimensions governing UV scaling.
type Layout struct {
	TileSize float32
	Width    float32
	Height   float32
}

// NewLayout validates and returns a layout. It panics on non-positive values;
// a bad atlas is a configuration error, not a per-call one.
func NewLayout(tileSize, width, height float32) Layout {
	if tileSize <= 0 || width <= 0 || height <= 0 {
		panic(fmt.Sprintf("atlas: dimensions must be positive (tile %v, atlas %vx%v)", tileSize, width, height))
	}
	return Layout{TileSize: tileSize, Width: width, Height: height}
}

// Columns returns how many tile columns fit the atlas width.
func (l Layout) Columns() int {
	return int(l.Width / l.TileSize)
}

// Rows returns how many tile rows fit the atlas height.
func (l Layout) Rows() int {
	return int(l.Height / l.TileSize)
}

// UV maps a face corner of block type t to texture coordinates. Columns are
// indexed by t-1; V is flipped because atlases are stored top-down while the UV
// origin is bottom-left.
func (l Layout) UV(t uint8, uvRow int, cornerU, cornerV float32) (u, v float32) {
	u = (float32(t) - 1 + cornerU) * l.TileSize / l.Width
	v = 1 - (float32(uvRow)+1-cornerV)*l.TileSize/l.Height
	return u, v
}
