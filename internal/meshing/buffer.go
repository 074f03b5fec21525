package meshing

import "voxmesh/internal/atlas"

// MeshBuffer holds indexed triangle geometry for one chunk. Positions are local
// to the chunk origin. All four slices are parallel per vertex except Indices,
// which holds six entries (two triangles) per face.
type MeshBuffer struct {
	Positions []float32 // xyz per vertex
	Normals   []float32 // xyz per vertex
	UVs       []float32 // uv per vertex
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m *MeshBuffer) VertexCount() int {
	return len(m.Positions) / 3
}

// FaceCount returns the number of emitted quads.
func (m *MeshBuffer) FaceCount() int {
	return len(m.Indices) / 6
}

// TriangleCount returns the number of triangles.
func (m *MeshBuffer) TriangleCount() int {
	return len(m.Indices) / 3
}

// Empty reports whether the buffer has no geometry.
func (m *MeshBuffer) Empty() bool {
	return len(m.Indices) == 0
}

// appendFace pushes one quad: four corners at local voxel (x, y, z), the face
// normal once per corner, per-corner UVs for block type t, and two triangles
// (0,1,2) and (2,1,3).
func (m *MeshBuffer) appendFace(f *FaceDescriptor, x, y, z int, t uint8, layout atlas.Layout) {
	ndx := uint32(len(m.Positions) / 3)
	for i := range f.Corners {
		c := &f.Corners[i]
		m.Positions = append(m.Positions,
			float32(c.Pos[0]+x),
			float32(c.Pos[1]+y),
			float32(c.Pos[2]+z),
		)
		m.Normals = append(m.Normals, f.Normal[0], f.Normal[1], f.Normal[2])
		u, v := layout.UV(t, f.UVRow, c.UV[0], c.UV[1])
		m.UVs = append(m.UVs, u, v)
	}
	m.Indices = append(m.Indices,
		ndx, ndx+1, ndx+2,
		ndx+2, ndx+1, ndx+3,
	)
}
