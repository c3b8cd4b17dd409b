// Package lnas encodes indexed meshes in the LNAS (Lagrangian Nassu) format.
//
// An LNAS file is a YAML document:
//
//	version: "v0.5.0"
//	name: <optional>
//	normalization: {size, direction}   # optional
//	geometry:
//	  vertices:  base64(little-endian float32 x, y, z per vertex)
//	  triangles: base64(little-endian uint32 i0, i1, i2 per triangle)
//	surfaces:
//	  <name>: base64(little-endian uint32 triangle indices)
package lnas

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	stdmath "math"

	"github.com/Faultbox/stl2lnas/pkg/math"
	"github.com/Faultbox/stl2lnas/pkg/mesh"
)

// Version is the format version written by this package.
const Version = "v0.5.0"

// LNAS errors.
var (
	ErrInvalidBuffer = errors.New("invalid LNAS buffer")
	ErrMissingField  = errors.New("missing LNAS field")
)

// Geometry holds the encoded vertex and triangle buffers.
type Geometry struct {
	Vertices  string `yaml:"vertices"`
	Triangles string `yaml:"triangles"`
}

// Normalization records how the mesh was rescaled.
type Normalization struct {
	Size      float32 `yaml:"size"`
	Direction string  `yaml:"direction"`
}

// Document is one LNAS file.
type Document struct {
	Version       string            `yaml:"version"`
	Name          string            `yaml:"name,omitempty"`
	Normalization *Normalization    `yaml:"normalization,omitempty"`
	Geometry      Geometry          `yaml:"geometry"`
	Surfaces      map[string]string `yaml:"surfaces"`
}

// Encode builds a document from joined mesh buffers.
func Encode(vertices []math.Vec3, triangles []mesh.IndexedTriangle, surfaces map[string][]uint32, version string) *Document {
	doc := &Document{
		Version: version,
		Geometry: Geometry{
			Vertices:  EncodeVertices(vertices),
			Triangles: EncodeTriangles(triangles),
		},
		Surfaces: make(map[string]string, len(surfaces)),
	}
	for name, idx := range surfaces {
		doc.Surfaces[name] = EncodeIndices(idx)
	}
	return doc
}

// EncodeMesh is Encode over a built mesh with the current Version.
func EncodeMesh(m *mesh.Mesh) *Document {
	return Encode(m.Vertices, m.Triangles, m.Surfaces, Version)
}

// EncodeVertices packs float32 triples and returns them base64-encoded.
func EncodeVertices(vertices []math.Vec3) string {
	buf := make([]byte, 12*len(vertices))
	for i, v := range vertices {
		b := buf[12*i:]
		binary.LittleEndian.PutUint32(b[0:], stdmath.Float32bits(v.X))
		binary.LittleEndian.PutUint32(b[4:], stdmath.Float32bits(v.Y))
		binary.LittleEndian.PutUint32(b[8:], stdmath.Float32bits(v.Z))
	}
	return base64.StdEncoding.EncodeToString(buf)
}

// EncodeTriangles packs uint32 triples and returns them base64-encoded.
func EncodeTriangles(triangles []mesh.IndexedTriangle) string {
	buf := make([]byte, 12*len(triangles))
	for i, t := range triangles {
		b := buf[12*i:]
		binary.LittleEndian.PutUint32(b[0:], t[0])
		binary.LittleEndian.PutUint32(b[4:], t[1])
		binary.LittleEndian.PutUint32(b[8:], t[2])
	}
	return base64.StdEncoding.EncodeToString(buf)
}

// EncodeIndices packs uint32 values and returns them base64-encoded.
func EncodeIndices(indices []uint32) string {
	buf := make([]byte, 4*len(indices))
	for i, v := range indices {
		binary.LittleEndian.PutUint32(buf[4*i:], v)
	}
	return base64.StdEncoding.EncodeToString(buf)
}

func decodeBuffer(s string, stride int) ([]byte, error) {
	buf, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBuffer, err)
	}
	if len(buf)%stride != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrInvalidBuffer, len(buf), stride)
	}
	return buf, nil
}

// DecodeVertices reverses EncodeVertices.
func DecodeVertices(s string) ([]math.Vec3, error) {
	buf, err := decodeBuffer(s, 12)
	if err != nil {
		return nil, err
	}
	out := make([]math.Vec3, len(buf)/12)
	for i := range out {
		b := buf[12*i:]
		out[i] = math.Vec3{
			X: stdmath.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
			Y: stdmath.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
			Z: stdmath.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
		}
	}
	return out, nil
}

// DecodeTriangles reverses EncodeTriangles.
func DecodeTriangles(s string) ([]mesh.IndexedTriangle, error) {
	buf, err := decodeBuffer(s, 12)
	if err != nil {
		return nil, err
	}
	out := make([]mesh.IndexedTriangle, len(buf)/12)
	for i := range out {
		b := buf[12*i:]
		out[i] = mesh.IndexedTriangle{
			binary.LittleEndian.Uint32(b[0:]),
			binary.LittleEndian.Uint32(b[4:]),
			binary.LittleEndian.Uint32(b[8:]),
		}
	}
	return out, nil
}

// DecodeIndices reverses EncodeIndices.
func DecodeIndices(s string) ([]uint32, error) {
	buf, err := decodeBuffer(s, 4)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, len(buf)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(buf[4*i:])
	}
	return out, nil
}

// Decode unpacks every buffer of doc into a mesh.
func Decode(doc *Document) (*mesh.Mesh, error) {
	if doc.Version == "" {
		return nil, fmt.Errorf("%w: version", ErrMissingField)
	}

	vertices, err := DecodeVertices(doc.Geometry.Vertices)
	if err != nil {
		return nil, fmt.Errorf("vertices: %w", err)
	}
	triangles, err := DecodeTriangles(doc.Geometry.Triangles)
	if err != nil {
		return nil, fmt.Errorf("triangles: %w", err)
	}

	m := &mesh.Mesh{
		Vertices:  vertices,
		Triangles: triangles,
		Surfaces:  make(map[string][]uint32, len(doc.Surfaces)),
	}
	for name, s := range doc.Surfaces {
		idx, err := DecodeIndices(s)
		if err != nil {
			return nil, fmt.Errorf("surface %q: %w", name, err)
		}
		m.Surfaces[name] = idx
	}
	return m, nil
}
