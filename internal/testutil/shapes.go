// Package testutil builds small triangle meshes for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/stl2lnas/pkg/math"
	"github.com/Faultbox/stl2lnas/pkg/stl"
)

type face struct {
	normal  math.Vec3
	corners [4]math.Vec3
}

// unit cube corners listed counter-clockwise seen from outside
var cubeFaces = []face{
	{math.Vec3{X: 0, Y: 0, Z: -1}, [4]math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 1, Y: 0, Z: 0}}},
	{math.Vec3{X: 0, Y: 0, Z: 1}, [4]math.Vec3{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1}}},
	{math.Vec3{X: 0, Y: -1, Z: 0}, [4]math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}}},
	{math.Vec3{X: 0, Y: 1, Z: 0}, [4]math.Vec3{{X: 0, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 0}}},
	{math.Vec3{X: -1, Y: 0, Z: 0}, [4]math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 0}}},
	{math.Vec3{X: 1, Y: 0, Z: 0}, [4]math.Vec3{{X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 0, Z: 1}}},
}

func quad(f face, offset math.Vec3, size float32) []stl.Triangle {
	var c [4]math.Vec3
	for i, p := range f.corners {
		c[i] = p.Scale(size).Add(offset)
	}
	return []stl.Triangle{
		{P0: c[0], P1: c[1], P2: c[2], Normal: f.normal},
		{P0: c[0], P1: c[2], P2: c[3], Normal: f.normal},
	}
}

// Cube returns the 12 triangles of an axis-aligned cube with outward normals.
func Cube(offset math.Vec3, size float32) []stl.Triangle {
	var tris []stl.Triangle
	for _, f := range cubeFaces {
		tris = append(tris, quad(f, offset, size)...)
	}
	return tris
}

// Plane returns a unit square at height z facing +Z, as 2 triangles.
func Plane(z float32) []stl.Triangle {
	return quad(cubeFaces[1], math.Vec3{Z: z - 1}, 1)
}

// Flip reverses the winding of every triangle while keeping its normal.
func Flip(tris []stl.Triangle) []stl.Triangle {
	out := make([]stl.Triangle, len(tris))
	for i, t := range tris {
		out[i] = stl.Triangle{P0: t.P0, P1: t.P2, P2: t.P1, Normal: t.Normal}
	}
	return out
}

// WriteSTL encodes tris into dir/name and returns the path.
func WriteSTL(t testing.TB, dir, name string, tris []stl.Triangle) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, stl.Marshal(tris), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
