package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/stl2lnas/pkg/lnas"
	"github.com/Faultbox/stl2lnas/pkg/math"
	"github.com/Faultbox/stl2lnas/pkg/mesh"
)

func squareMesh() *mesh.Mesh {
	return &mesh.Mesh{
		Vertices:  []math.Vec3{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}},
		Triangles: []mesh.IndexedTriangle{{0, 1, 2}, {0, 2, 3}},
		Surfaces:  map[string][]uint32{"floor": {0, 1}},
	}
}

func TestValidateMesh(t *testing.T) {
	assert.NoError(t, validateMesh(squareMesh()))

	tests := []struct {
		name    string
		corrupt func(*mesh.Mesh)
	}{
		{"triangle vertex", func(m *mesh.Mesh) { m.Triangles[1][2] = 4 }},
		{"surface triangle", func(m *mesh.Mesh) { m.Surfaces["floor"] = []uint32{0, 2} }},
		{"second surface", func(m *mesh.Mesh) { m.Surfaces["wall"] = []uint32{99} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := squareMesh()
			tc.corrupt(m)
			assert.ErrorIs(t, validateMesh(m), errBadIndex)
		})
	}
}

func TestCmdInfo(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.lnas")
	require.NoError(t, lnas.Write(good, lnas.EncodeMesh(squareMesh())))
	assert.NoError(t, cmdInfo([]string{good}))

	bad := squareMesh()
	bad.Surfaces["floor"] = []uint32{0, 5}
	badPath := filepath.Join(dir, "bad.lnas")
	require.NoError(t, lnas.Write(badPath, lnas.EncodeMesh(bad)))
	assert.ErrorIs(t, cmdInfo([]string{badPath}), errBadIndex)

	assert.Error(t, cmdInfo(nil))
}

func TestCmdInfo_ConvertedFingerprint(t *testing.T) {
	j := testJob(t)
	require.NoError(t, run(context.Background(), j))

	built, err := mesh.Build(context.Background(), mesh.SourcesFromPaths(j.files), j.norm)
	require.NoError(t, err)

	doc, err := lnas.Read(j.output)
	require.NoError(t, err)
	decoded, err := lnas.Decode(doc)
	require.NoError(t, err)

	assert.Equal(t, built.Fingerprint(), decoded.Fingerprint())
	assert.NoError(t, cmdInfo([]string{j.output}))
}
