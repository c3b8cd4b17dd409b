package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/stl2lnas/internal/config"
	"github.com/Faultbox/stl2lnas/internal/testutil"
	"github.com/Faultbox/stl2lnas/pkg/lnas"
	"github.com/Faultbox/stl2lnas/pkg/math"
	"github.com/Faultbox/stl2lnas/pkg/mesh"
	"github.com/Faultbox/stl2lnas/pkg/stl"
)

func testJob(t *testing.T) job {
	t.Helper()
	dir := t.TempDir()
	return job{
		name: "assembly",
		files: map[string]string{
			"cube":  testutil.WriteSTL(t, dir, "cube.stl", testutil.Cube(math.Vec3{}, 1)),
			"plane": testutil.WriteSTL(t, dir, "plane.stl", testutil.Plane(2)),
		},
		norm:    mesh.Normalization{Enabled: true, Size: 10, Axis: mesh.AxisX},
		output:  filepath.Join(dir, "out", "assembly.lnas"),
		copyDir: filepath.Join(dir, "out", "assembly.lnas.stls"),
	}
}

func TestRun_WritesDocument(t *testing.T) {
	j := testJob(t)
	require.NoError(t, run(context.Background(), j))

	doc, err := lnas.Read(j.output)
	require.NoError(t, err)
	assert.Equal(t, "assembly", doc.Name)
	require.NotNil(t, doc.Normalization)
	assert.Equal(t, "x", doc.Normalization.Direction)

	m, err := lnas.Decode(doc)
	require.NoError(t, err)
	assert.Len(t, m.Triangles, 14)
	assert.Len(t, m.Surfaces["plane"], 2)

	assert.FileExists(t, filepath.Join(j.copyDir, "cube.stl"))
	assert.FileExists(t, filepath.Join(j.copyDir, "plane.stl"))
}

func TestRun_Deterministic(t *testing.T) {
	j := testJob(t)
	require.NoError(t, run(context.Background(), j))
	first, err := os.ReadFile(j.output)
	require.NoError(t, err)

	require.NoError(t, run(context.Background(), j))
	second, err := os.ReadFile(j.output)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCheckOutput(t *testing.T) {
	j := testJob(t)
	assert.NoError(t, checkOutput(j))

	require.NoError(t, run(context.Background(), j))
	assert.ErrorIs(t, checkOutput(j), errOutputExists)

	j.overwrite = true
	assert.NoError(t, checkOutput(j))
}

func TestRun_SavesConfigAfterWrite(t *testing.T) {
	j := testJob(t)
	j.cfg = config.Default()
	j.cfg.Name = j.name
	j.cfg.Output.Folder = filepath.Dir(j.output)

	require.NoError(t, run(context.Background(), j))
	assert.FileExists(t, filepath.Join(filepath.Dir(j.output), "assembly.yaml"))
}

func TestRun_FailedBuildLeavesNoArtifacts(t *testing.T) {
	j := testJob(t)
	broken := stl.Marshal(testutil.Plane(0))
	require.NoError(t, os.WriteFile(j.files["plane"], broken[:len(broken)-7], 0644))

	j.cfg = config.Default()
	j.cfg.Name = j.name
	j.cfg.Output.Folder = filepath.Dir(j.output)

	err := run(context.Background(), j)
	require.ErrorIs(t, err, stl.ErrTruncated)

	assert.NoFileExists(t, j.output)
	assert.NoDirExists(t, j.copyDir)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(j.output), "assembly.yaml"))
}
