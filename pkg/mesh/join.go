package mesh

import "github.com/Faultbox/stl2lnas/pkg/math"

// Join inverts the canonical mapping into a vertex array where element i is
// the vertex with index i, and returns the triangles in their given order.
func Join(set *VertexSet, triangles []IndexedTriangle) ([]math.Vec3, []IndexedTriangle) {
	vertices := make([]math.Vec3, set.Len())
	for k, i := range set.index {
		vertices[i] = set.positions[k]
	}

	joined := make([]IndexedTriangle, len(triangles))
	copy(joined, triangles)
	return vertices, joined
}
