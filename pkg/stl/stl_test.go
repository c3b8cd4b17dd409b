package stl_test

import (
	"bytes"
	"encoding/binary"
	stdmath "math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/stl2lnas/internal/testutil"
	"github.com/Faultbox/stl2lnas/pkg/math"
	"github.com/Faultbox/stl2lnas/pkg/stl"
)

func TestParse_Cube(t *testing.T) {
	cube := testutil.Cube(math.Vec3{}, 1)

	res, err := stl.Parse(stl.Marshal(cube))
	require.NoError(t, err)

	// 2 triangles per face
	assert.Len(t, res.Triangles, 6*2)
	assert.Zero(t, res.Dropped)
	assert.Equal(t, cube, res.Triangles)
}

func TestParse_LittleEndianLayout(t *testing.T) {
	buf := new(bytes.Buffer)
	buf.Write(make([]byte, stl.HeaderSize))
	binary.Write(buf, binary.LittleEndian, uint32(1))
	for _, f := range []float32{0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0} {
		binary.Write(buf, binary.LittleEndian, f)
	}
	binary.Write(buf, binary.LittleEndian, uint16(0))

	res, err := stl.Parse(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, res.Triangles, 1)

	tri := res.Triangles[0]
	assert.Equal(t, math.Vec3{Z: 1}, tri.Normal)
	assert.Equal(t, math.Vec3{}, tri.P0)
	assert.Equal(t, math.Vec3{X: 1}, tri.P1)
	assert.Equal(t, math.Vec3{Y: 1}, tri.P2)
}

func TestParse_DropsDegenerate(t *testing.T) {
	tris := testutil.Plane(0)
	tris = append(tris, stl.Triangle{
		P0:     math.Vec3{X: 0},
		P1:     math.Vec3{X: 1},
		P2:     math.Vec3{X: 2},
		Normal: math.Vec3{}, // collinear points carry no valid normal either
	})

	res, err := stl.Parse(stl.Marshal(tris))
	require.NoError(t, err)
	assert.Len(t, res.Triangles, 2)
	assert.Equal(t, 1, res.Dropped)
}

func TestParse_TruncatedData(t *testing.T) {
	data := stl.Marshal(testutil.Cube(math.Vec3{}, 1))

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"header only", data[:stl.HeaderSize]},
		{"partial record", data[:len(data)-10]},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := stl.Parse(tc.data)
			assert.ErrorIs(t, err, stl.ErrTruncated)
		})
	}
}

func TestParse_TrailingBytes(t *testing.T) {
	data := append(stl.Marshal(testutil.Plane(0)), 0, 0, 0)
	_, err := stl.Parse(data)
	assert.ErrorIs(t, err, stl.ErrCountMismatch)
}

func TestParse_InvalidNormal(t *testing.T) {
	tris := testutil.Plane(0)
	tris[1].Normal = math.Vec3{Z: 2}

	_, err := stl.Parse(stl.Marshal(tris))
	assert.ErrorIs(t, err, stl.ErrInvalidNormal)
}

func TestParse_NonFinite(t *testing.T) {
	inf := float32(stdmath.Inf(1))
	nan := float32(stdmath.NaN())

	tests := []struct {
		name   string
		mutate func(*stl.Triangle)
	}{
		{"inf vertex", func(tri *stl.Triangle) { tri.P0.X = inf }},
		{"negative inf vertex", func(tri *stl.Triangle) { tri.P2.Y = -inf }},
		{"nan vertex", func(tri *stl.Triangle) { tri.P1.Z = nan }},
		{"nan normal", func(tri *stl.Triangle) { tri.Normal.Z = nan }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tris := testutil.Plane(0)
			tc.mutate(&tris[0])

			_, err := stl.Parse(stl.Marshal(tris))
			assert.ErrorIs(t, err, stl.ErrNonFinite)
		})
	}
}

func TestParse_OutOfRange(t *testing.T) {
	tris := testutil.Plane(0)
	tris[1].P1.X = 1e15

	_, err := stl.Parse(stl.Marshal(tris))
	assert.ErrorIs(t, err, stl.ErrOutOfRange)
}

func TestTriangle_LargeScale(t *testing.T) {
	const s = 1e12
	tri, err := stl.NewTriangle(math.Vec3{}, math.Vec3{X: s}, math.Vec3{Y: s}, math.Vec3{Z: 1})
	require.NoError(t, err)

	area := tri.Area()
	assert.False(t, stdmath.IsInf(float64(area), 0))
	assert.InDelta(t, 0.5, float64(area)/(s*s), 1e-3)
	assert.False(t, tri.IsDegenerate())
}

func TestNewTriangle(t *testing.T) {
	p := [3]math.Vec3{{}, {X: 1}, {Y: 1}}

	tri, err := stl.NewTriangle(p[0], p[1], p[2], math.Vec3{Z: 1})
	require.NoError(t, err)
	assert.Equal(t, p, tri.Points())
	assert.InDelta(t, 0.5, tri.Area(), 1e-6)
	assert.False(t, tri.IsDegenerate())

	_, err = stl.NewTriangle(p[0], p[1], p[2], math.Vec3{Z: 0.9})
	assert.ErrorIs(t, err, stl.ErrInvalidNormal)

	_, err = stl.NewTriangle(p[0], p[1], p[2], math.Vec3{Z: float32(stdmath.NaN())})
	assert.ErrorIs(t, err, stl.ErrNonFinite)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cube.stl")
	require.NoError(t, stl.WriteFile(path, testutil.Cube(math.Vec3{}, 2)))

	res, err := stl.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, res.Triangles, 12)

	_, err = stl.ReadFile(filepath.Join(dir, "missing.stl"))
	assert.Error(t, err)
}
