// Package mesh turns named STL surfaces into a deduplicated indexed mesh.
//
// The pipeline runs strictly forward:
//
//	Aggregate -> Normalize -> Dedup -> IndexTriangles -> Join
package mesh

import (
	"context"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/Faultbox/stl2lnas/pkg/math"
)

// Mesh is the joined output of one conversion.
type Mesh struct {
	Vertices  []math.Vec3
	Triangles []IndexedTriangle
	// Surfaces maps each surface name to indices into Triangles.
	Surfaces map[string][]uint32
	// Dropped counts degenerate triangles skipped per surface.
	Dropped map[string]int
}

// TotalDropped sums degenerate triangles over all surfaces.
func (m *Mesh) TotalDropped() int {
	n := 0
	for _, d := range m.Dropped {
		n += d
	}
	return n
}

// Fingerprint hashes the quantized vertex keys, the triangle indices and the
// surface index lists. Meshes that decode to the same keys and indices share
// a fingerprint regardless of float noise below the quantization step.
func (m *Mesh) Fingerprint() uint64 {
	d := xxhash.New()
	var b [8]byte
	for _, v := range m.Vertices {
		binary.LittleEndian.PutUint64(b[:], v.Key().Hash())
		_, _ = d.Write(b[:])
	}
	for _, t := range m.Triangles {
		for _, idx := range t {
			binary.LittleEndian.PutUint32(b[:4], idx)
			_, _ = d.Write(b[:4])
		}
	}

	names := make([]string, 0, len(m.Surfaces))
	for name := range m.Surfaces {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		_, _ = d.WriteString(name)
		_, _ = d.Write([]byte{0})
		for _, idx := range m.Surfaces[name] {
			binary.LittleEndian.PutUint32(b[:4], idx)
			_, _ = d.Write(b[:4])
		}
	}
	return d.Sum64()
}

// Build runs the whole pipeline over sources.
func Build(ctx context.Context, sources []Source, norm Normalization) (*Mesh, error) {
	soup, err := Aggregate(ctx, sources)
	if err != nil {
		return nil, err
	}

	triangles, err := Normalize(soup.Triangles, norm)
	if err != nil {
		return nil, fmt.Errorf("normalizing: %w", err)
	}

	set := Dedup(triangles)
	indexed, err := IndexTriangles(ctx, triangles, set)
	if err != nil {
		return nil, fmt.Errorf("indexing: %w", err)
	}

	vertices, joined := Join(set, indexed)
	return &Mesh{
		Vertices:  vertices,
		Triangles: joined,
		Surfaces:  soup.Surfaces,
		Dropped:   soup.Dropped,
	}, nil
}
