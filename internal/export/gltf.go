// Package export writes chunk meshes as a glTF 2.0 scene.
package export

import (
	"io"

	"voxmesh/internal/meshing"
	"voxmesh/internal/storage"
	"voxmesh/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ChunkMesh is one chunk's geometry and where it sits in the world.
type ChunkMesh struct {
	Coord  world.ChunkCoord
	Origin mgl32.Vec3
	Mesh   *meshing.MeshBuffer
}

// Options controls document assembly.
type Options struct {
	// AtlasURI, when set, references the atlas image from a material shared
	// by every primitive.
	AtlasURI string
}

// Document builds a glTF document with one mesh and one node per non-empty
// chunk mesh. Vertex data stays chunk-local; each node is translated to its
// chunk origin.
func Document(meshes []ChunkMesh, opts Options) *gltf.Document {
	doc := gltf.NewDocument()
	material := addAtlasMaterial(doc, opts.AtlasURI)

	for _, cm := range meshes {
		if cm.Mesh == nil || cm.Mesh.Empty() {
			continue
		}
		mb := cm.Mesh
		prim := &gltf.Primitive{
			Mode:    gltf.PrimitiveTriangles,
			Indices: gltf.Index(modeler.WriteIndices(doc, mb.Indices)),
			Attributes: map[string]uint32{
				gltf.POSITION:   modeler.WritePosition(doc, vec3s(mb.Positions)),
				gltf.NORMAL:     modeler.WriteNormal(doc, vec3s(mb.Normals)),
				gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, vec2s(mb.UVs)),
			},
			Material: material,
		}
		name := storage.Key(cm.Coord)
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:        name,
			Mesh:        gltf.Index(uint32(len(doc.Meshes) - 1)),
			Translation: [3]float32(cm.Origin),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	}
	return doc
}

func addAtlasMaterial(doc *gltf.Document, uri string) *uint32 {
	if uri == "" {
		return nil
	}
	doc.Images = append(doc.Images, &gltf.Image{Name: "atlas", URI: uri})
	doc.Samplers = append(doc.Samplers, &gltf.Sampler{
		MagFilter: gltf.MagNearest,
		MinFilter: gltf.MinNearest,
	})
	doc.Textures = append(doc.Textures, &gltf.Texture{
		Sampler: gltf.Index(uint32(len(doc.Samplers) - 1)),
		Source:  gltf.Index(uint32(len(doc.Images) - 1)),
	})
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name: "atlas",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorTexture: &gltf.TextureInfo{Index: uint32(len(doc.Textures) - 1)},
		},
	})
	return gltf.Index(uint32(len(doc.Materials) - 1))
}

// Write encodes doc as GLB when binary is set, otherwise as JSON glTF with
// buffers embedded as data URIs.
func Write(w io.Writer, doc *gltf.Document, binary bool) error {
	if !binary {
		for _, b := range doc.Buffers {
			if b.URI == "" {
				b.EmbeddedResource()
			}
		}
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = binary
	if !binary {
		enc.SetJSONIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "export: encode gltf")
	}
	return nil
}

// Read decodes a document written by Write.
func Read(r io.Reader) (*gltf.Document, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrap(err, "export: decode gltf")
	}
	return doc, nil
}

// ReadMesh rebuilds the buffer of the first primitive of mesh index i.
func ReadMesh(doc *gltf.Document, i int) (*meshing.MeshBuffer, error) {
	if i < 0 || i >= len(doc.Meshes) || len(doc.Meshes[i].Primitives) == 0 {
		return nil, errors.Errorf("export: no mesh %d", i)
	}
	prim := doc.Meshes[i].Primitives[0]
	if prim.Indices == nil {
		return nil, errors.Errorf("export: mesh %d has no indices", i)
	}
	accessor := func(attr string) (*gltf.Accessor, error) {
		idx, ok := prim.Attributes[attr]
		if !ok {
			return nil, errors.Errorf("export: mesh %d lacks %s", i, attr)
		}
		return doc.Accessors[idx], nil
	}

	posAcr, err := accessor(gltf.POSITION)
	if err != nil {
		return nil, err
	}
	normAcr, err := accessor(gltf.NORMAL)
	if err != nil {
		return nil, err
	}
	uvAcr, err := accessor(gltf.TEXCOORD_0)
	if err != nil {
		return nil, err
	}

	positions, err := modeler.ReadPosition(doc, posAcr, nil)
	if err != nil {
		return nil, errors.Wrap(err, "export: read positions")
	}
	normals, err := modeler.ReadNormal(doc, normAcr, nil)
	if err != nil {
		return nil, errors.Wrap(err, "export: read normals")
	}
	uvs, err := modeler.ReadTextureCoord(doc, uvAcr, nil)
	if err != nil {
		return nil, errors.Wrap(err, "export: read uvs")
	}
	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return nil, errors.Wrap(err, "export: read indices")
	}

	mb := &meshing.MeshBuffer{Indices: indices}
	for _, p := range positions {
		mb.Positions = append(mb.Positions, p[:]...)
	}
	for _, n := range normals {
		mb.Normals = append(mb.Normals, n[:]...)
	}
	for _, uv := range uvs {
		mb.UVs = append(mb.UVs, uv[:]...)
	}
	return mb, nil
}

// Bounds returns the world-space box covering every vertex of meshes.
func Bounds(meshes []ChunkMesh) (lo, hi mgl32.Vec3, ok bool) {
	for _, cm := range meshes {
		if cm.Mesh == nil {
			continue
		}
		for i := 0; i+2 < len(cm.Mesh.Positions); i += 3 {
			p := cm.Origin.Add(mgl32.Vec3{cm.Mesh.Positions[i], cm.Mesh.Positions[i+1], cm.Mesh.Positions[i+2]})
			if !ok {
				lo, hi, ok = p, p, true
				continue
			}
			for a := 0; a < 3; a++ {
				lo[a] = min(lo[a], p[a])
				hi[a] = max(hi[a], p[a])
			}
		}
	}
	return lo, hi, ok
}

func vec3s(flat []float32) [][3]float32 {
	out := make([][3]float32, len(flat)/3)
	for i := range out {
		out[i] = [3]float32{flat[3*i], flat[3*i+1], flat[3*i+2]}
	}
	return out
}

func vec2s(flat []float32) [][2]float32 {
	out := make([][2]float32, len(flat)/2)
	for i := range out {
		out[i] = [2]float32{flat[2*i], flat[2*i+1]}
	}
	return out
}
