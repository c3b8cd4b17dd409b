// Package stl decodes and encodes binary STL files.
//
// Binary layout (little-endian):
//
//	header:   80 bytes (ignored)
//	count:    uint32
//	triangle: normal, point0, point1, point2 (3 x float32 each) + uint16 attribute
package stl

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	stdmath "math"
	"os"

	"github.com/chewxy/math32"
	"go.uber.org/multierr"

	"github.com/Faultbox/stl2lnas/pkg/math"
)

// Layout sizes in bytes.
const (
	HeaderSize = 80
	countSize  = 4
	RecordSize = 50
)

// Geometric tolerances.
const (
	// AreaEpsilon is the area below which a triangle is degenerate.
	AreaEpsilon = 1e-5
	// NormalTolerance is the allowed deviation of a normal's length from 1.
	NormalTolerance = 1e-5
)

// STL errors.
var (
	ErrTruncated     = errors.New("truncated STL data")
	ErrCountMismatch = errors.New("STL size does not match triangle count")
	ErrInvalidNormal = errors.New("triangle normal is not unit length")
	ErrNonFinite     = errors.New("STL value is NaN or infinite")
	ErrOutOfRange    = errors.New("STL coordinate exceeds supported magnitude")
)

// Triangle is one STL facet.
type Triangle struct {
	P0, P1, P2 math.Vec3
	Normal     math.Vec3
}

// CheckVec3 rejects NaN or infinite components and coordinates beyond
// math.MaxCoordinate.
func CheckVec3(v math.Vec3) error {
	if !v.IsFinite() {
		return fmt.Errorf("%w: %v", ErrNonFinite, v)
	}
	if !v.InRange() {
		return fmt.Errorf("%w: %v", ErrOutOfRange, v)
	}
	return nil
}

// check validates all four vectors of t.
func (t Triangle) check() error {
	for _, v := range [4]math.Vec3{t.P0, t.P1, t.P2, t.Normal} {
		if err := CheckVec3(v); err != nil {
			return err
		}
	}
	return nil
}

// NewTriangle builds a triangle, rejecting non-finite or out of range values
// and normals that are not unit length.
func NewTriangle(p0, p1, p2, normal math.Vec3) (Triangle, error) {
	t := Triangle{P0: p0, P1: p1, P2: p2, Normal: normal}
	if err := t.check(); err != nil {
		return Triangle{}, err
	}
	if l := normal.Length(); !(math32.Abs(l-1) <= NormalTolerance) {
		return Triangle{}, fmt.Errorf("%w: |%v| = %g", ErrInvalidNormal, normal, l)
	}
	return t, nil
}

// Points returns the three vertices in stored order.
func (t Triangle) Points() [3]math.Vec3 {
	return [3]math.Vec3{t.P0, t.P1, t.P2}
}

// Area returns the triangle's surface area.
func (t Triangle) Area() float32 {
	u := t.P0.Sub(t.P1)
	v := t.P0.Sub(t.P2)
	return u.Cross(v).Length() / 2
}

// IsDegenerate reports whether the area is below AreaEpsilon.
func (t Triangle) IsDegenerate() bool {
	return t.Area() < AreaEpsilon
}

// String formats the triangle for error messages.
func (t Triangle) String() string {
	return fmt.Sprintf("(p0: %v, p1: %v, p2: %v, normal: %v)", t.P0, t.P1, t.P2, t.Normal)
}

// Result is a decoded STL file.
type Result struct {
	Header    [HeaderSize]byte
	Triangles []Triangle
	// Dropped counts degenerate triangles that were skipped.
	Dropped int
}

// Parse decodes a binary STL from raw bytes.
// Degenerate triangles are skipped and counted in Result.Dropped.
func Parse(data []byte) (*Result, error) {
	if len(data) < HeaderSize+countSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrTruncated, len(data), HeaderSize+countSize)
	}

	res := &Result{}
	copy(res.Header[:], data[:HeaderSize])
	count := binary.LittleEndian.Uint32(data[HeaderSize:])

	want := HeaderSize + countSize + int(count)*RecordSize
	if len(data) < want {
		return nil, fmt.Errorf("%w: %d triangles need %d bytes, got %d", ErrTruncated, count, want, len(data))
	}
	if len(data) > want {
		return nil, fmt.Errorf("%w: %d triangles need %d bytes, got %d", ErrCountMismatch, count, want, len(data))
	}

	res.Triangles = make([]Triangle, 0, count)
	offset := HeaderSize + countSize
	for i := 0; i < int(count); i++ {
		rec := data[offset : offset+RecordSize]
		offset += RecordSize

		normal := readVec3(rec[0:12])
		raw := Triangle{
			P0:     readVec3(rec[12:24]),
			P1:     readVec3(rec[24:36]),
			P2:     readVec3(rec[36:48]),
			Normal: normal,
		}
		// rec[48:50] is the attribute byte count

		if err := raw.check(); err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i, err)
		}
		if raw.IsDegenerate() {
			res.Dropped++
			continue
		}
		tri, err := NewTriangle(raw.P0, raw.P1, raw.P2, raw.Normal)
		if err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i, err)
		}
		res.Triangles = append(res.Triangles, tri)
	}

	return res, nil
}

// ReadFile reads and decodes a binary STL file.
func ReadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading STL: %w", err)
	}
	res, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return res, nil
}

func readVec3(b []byte) math.Vec3 {
	_ = b[11] // early bounds check
	return math.Vec3{
		X: stdmath.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
		Y: stdmath.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		Z: stdmath.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
	}
}

func putVec3(b []byte, v math.Vec3) {
	_ = b[11]
	binary.LittleEndian.PutUint32(b[0:], stdmath.Float32bits(v.X))
	binary.LittleEndian.PutUint32(b[4:], stdmath.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(b[8:], stdmath.Float32bits(v.Z))
}

// Encode writes triangles in binary STL layout with an empty header.
func Encode(w io.Writer, triangles []Triangle) error {
	var head [HeaderSize + countSize]byte
	binary.LittleEndian.PutUint32(head[HeaderSize:], uint32(len(triangles)))
	if _, err := w.Write(head[:]); err != nil {
		return err
	}

	var rec [RecordSize]byte
	for _, t := range triangles {
		putVec3(rec[0:], t.Normal)
		putVec3(rec[12:], t.P0)
		putVec3(rec[24:], t.P1)
		putVec3(rec[36:], t.P2)
		if _, err := w.Write(rec[:]); err != nil {
			return err
		}
	}
	return nil
}

// Marshal returns the binary STL encoding of triangles.
func Marshal(triangles []Triangle) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize+countSize+len(triangles)*RecordSize))
	_ = Encode(buf, triangles) // bytes.Buffer writes never fail
	return buf.Bytes()
}

// WriteFile writes triangles to path as binary STL.
func WriteFile(path string, triangles []Triangle) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return Encode(f, triangles)
}
