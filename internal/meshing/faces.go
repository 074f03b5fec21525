package meshing

import (
	"voxmesh/internal/atlas"

	"github.com/go-gl/mathgl/mgl32"
)

// Corner is one vertex of a unit face: a 0/1 offset from the voxel's minimum
// corner and the matching tile-local UV corner.
type Corner struct {
	Pos [3]int
	UV  [2]float32
}

// FaceDescriptor describes one axis-aligned face of a unit cube.
type FaceDescriptor struct {
	Name    string
	Dir     [3]int
	Normal  mgl32.Vec3
	Corners [4]Corner
	UVRow   int
}

// faces lists the six cube faces in emission order: -X, +X, -Y, +Y, -Z, +Z.
// Corners are ordered so that triangles (0,1,2) and (2,1,3) wind outward.
var faces = [6]FaceDescriptor{
	{
		Name:   "left",
		Dir:    [3]int{-1, 0, 0},
		Normal: mgl32.Vec3{-1, 0, 0},
		UVRow:  atlas.RowSide,
		Corners: [4]Corner{
			{Pos: [3]int{0, 1, 0}, UV: [2]float32{0, 1}},
			{Pos: [3]int{0, 0, 0}, UV: [2]float32{0, 0}},
			{Pos: [3]int{0, 1, 1}, UV: [2]float32{1, 1}},
			{Pos: [3]int{0, 0, 1}, UV: [2]float32{1, 0}},
		},
	},
	{
		Name:   "right",
		Dir:    [3]int{1, 0, 0},
		Normal: mgl32.Vec3{1, 0, 0},
		UVRow:  atlas.RowSide,
		Corners: [4]Corner{
			{Pos: [3]int{1, 1, 1}, UV: [2]float32{0, 1}},
			{Pos: [3]int{1, 0, 1}, UV: [2]float32{0, 0}},
			{Pos: [3]int{1, 1, 0}, UV: [2]float32{1, 1}},
			{Pos: [3]int{1, 0, 0}, UV: [2]float32{1, 0}},
		},
	},
	{
		Name:   "bottom",
		Dir:    [3]int{0, -1, 0},
		Normal: mgl32.Vec3{0, -1, 0},
		UVRow:  atlas.RowBottom,
		Corners: [4]Corner{
			{Pos: [3]int{1, 0, 1}, UV: [2]float32{1, 0}},
			{Pos: [3]int{0, 0, 1}, UV: [2]float32{0, 0}},
			{Pos: [3]int{1, 0, 0}, UV: [2]float32{1, 1}},
			{Pos: [3]int{0, 0, 0}, UV: [2]float32{0, 1}},
		},
	},
	{
		Name:   "top",
		Dir:    [3]int{0, 1, 0},
		Normal: mgl32.Vec3{0, 1, 0},
		UVRow:  atlas.RowTop,
		Corners: [4]Corner{
			{Pos: [3]int{0, 1, 1}, UV: [2]float32{1, 1}},
			{Pos: [3]int{1, 1, 1}, UV: [2]float32{0, 1}},
			{Pos: [3]int{0, 1, 0}, UV: [2]float32{1, 0}},
			{Pos: [3]int{1, 1, 0}, UV: [2]float32{0, 0}},
		},
	},
	{
		Name:   "back",
		Dir:    [3]int{0, 0, -1},
		Normal: mgl32.Vec3{0, 0, -1},
		UVRow:  atlas.RowSide,
		Corners: [4]Corner{
			{Pos: [3]int{1, 0, 0}, UV: [2]float32{0, 0}},
			{Pos: [3]int{0, 0, 0}, UV: [2]float32{1, 0}},
			{Pos: [3]int{1, 1, 0}, UV: [2]float32{0, 1}},
			{Pos: [3]int{0, 1, 0}, UV: [2]float32{1, 1}},
		},
	},
	{
		Name:   "front",
		Dir:    [3]int{0, 0, 1},
		Normal: mgl32.Vec3{0, 0, 1},
		UVRow:  atlas.RowSide,
		Corners: [4]Corner{
			{Pos: [3]int{0, 0, 1}, UV: [2]float32{0, 0}},
			{Pos: [3]int{1, 0, 1}, UV: [2]float32{1, 0}},
			{Pos: [3]int{0, 1, 1}, UV: [2]float32{0, 1}},
			{Pos: [3]int{1, 1, 1}, UV: [2]float32{1, 1}},
		},
	},
}

// Face indices into the table.
const (
	FaceLeft = iota
	FaceRight
	FaceBottom
	FaceTop
	FaceBack
	FaceFront
)

// Faces returns a copy of the face table.
func Faces() [6]FaceDescriptor {
	return faces
}
