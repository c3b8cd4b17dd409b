package mesh

import (
	"context"
	"fmt"

	"github.com/Faultbox/stl2lnas/pkg/math"
	"github.com/Faultbox/stl2lnas/pkg/stl"
)

// IndexedTriangle holds three canonical vertex indices, wound so that the
// right-hand normal agrees with the source triangle's stored normal.
type IndexedTriangle [3]uint32

// windings are the point orderings tried, in priority order.
var windings = [...][3]int{
	{0, 1, 2},
	{0, 2, 1},
}

// Wind returns the triangle's points in the first ordering whose computed
// normal has a positive dot product with the stored normal.
func Wind(t stl.Triangle) ([3]math.Vec3, bool) {
	pts := t.Points()
	for _, w := range windings {
		p0, p1, p2 := pts[w[0]], pts[w[1]], pts[w[2]]
		n := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
		if n.Dot(t.Normal) > 0 {
			return [3]math.Vec3{p0, p1, p2}, true
		}
	}
	return pts, false
}

// IndexTriangles fixes the winding of every triangle and resolves its points
// against set. Output order matches input order.
func IndexTriangles(ctx context.Context, triangles []stl.Triangle, set *VertexSet) ([]IndexedTriangle, error) {
	out := make([]IndexedTriangle, len(triangles))
	for i, t := range triangles {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		pts, ok := Wind(t)
		if !ok {
			return nil, &WindingError{Index: i, Triangle: t}
		}
		for j, p := range pts {
			idx, found := set.Index(p)
			if !found {
				return nil, fmt.Errorf("triangle %d point %v: %w", i, p, ErrUnknownVertex)
			}
			out[i][j] = idx
		}
	}
	return out, nil
}
