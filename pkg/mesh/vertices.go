package mesh

import (
	"slices"

	"github.com/Faultbox/stl2lnas/pkg/math"
	"github.com/Faultbox/stl2lnas/pkg/stl"
)

// VertexBuilder collects distinct vertex positions for one conversion.
// Dense indices are only assigned by Build, in sorted key order, so they do
// not depend on the order positions were added.
type VertexBuilder struct {
	positions map[math.Key]math.Vec3
}

// NewVertexBuilder returns an empty builder.
func NewVertexBuilder() *VertexBuilder {
	return &VertexBuilder{positions: make(map[math.Key]math.Vec3)}
}

// Intern records v if no quantized-equal position is known yet and returns
// its canonical key. The first position seen for a key is kept.
func (b *VertexBuilder) Intern(v math.Vec3) math.Key {
	k := v.Key()
	if _, ok := b.positions[k]; !ok {
		b.positions[k] = v
	}
	return k
}

// Len returns the number of distinct positions.
func (b *VertexBuilder) Len() int {
	return len(b.positions)
}

// Build sorts the distinct positions and assigns index i to the i-th one.
func (b *VertexBuilder) Build() *VertexSet {
	keys := make([]math.Key, 0, len(b.positions))
	for k := range b.positions {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, math.Key.Compare)

	set := &VertexSet{
		index:     make(map[math.Key]uint32, len(keys)),
		positions: make(map[math.Key]math.Vec3, len(keys)),
	}
	for i, k := range keys {
		set.index[k] = uint32(i)
		set.positions[k] = b.positions[k]
	}
	return set
}

// VertexSet maps canonical vertex keys to dense indices in [0, Len).
type VertexSet struct {
	index     map[math.Key]uint32
	positions map[math.Key]math.Vec3
}

// Len returns the number of canonical vertices.
func (s *VertexSet) Len() int {
	return len(s.index)
}

// Index returns the canonical index of v.
func (s *VertexSet) Index(v math.Vec3) (uint32, bool) {
	i, ok := s.index[v.Key()]
	return i, ok
}

// Dedup builds the canonical vertex set of all triangle vertices.
func Dedup(triangles []stl.Triangle) *VertexSet {
	b := NewVertexBuilder()
	for _, t := range triangles {
		for _, p := range t.Points() {
			b.Intern(p)
		}
	}
	return b.Build()
}
