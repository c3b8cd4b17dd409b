package mesh

import (
	"fmt"
	stdmath "math"
	"strings"

	"github.com/Faultbox/stl2lnas/pkg/math"
	"github.com/Faultbox/stl2lnas/pkg/stl"
)

// Axis selects the coordinate used to derive the normalization factor.
type Axis int

// Axis constants.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns "x", "y" or "z".
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ParseAxis parses "x", "y" or "z" (case-insensitive).
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidAxis, s)
	}
}

// Normalization rescales a mesh so that Axis spans [0, Size].
type Normalization struct {
	Enabled bool
	Size    float32
	Axis    Axis
}

// Bounds returns the componentwise min and max over all triangle vertices.
func Bounds(triangles []stl.Triangle) (lower, upper math.Vec3) {
	lower = math.Vec3{X: stdmath.MaxFloat32, Y: stdmath.MaxFloat32, Z: stdmath.MaxFloat32}
	upper = math.Vec3{X: -stdmath.MaxFloat32, Y: -stdmath.MaxFloat32, Z: -stdmath.MaxFloat32}
	for _, t := range triangles {
		for _, p := range t.Points() {
			lower = lower.Min(p)
			upper = upper.Max(p)
		}
	}
	return lower, upper
}

// Normalize translates every vertex by the minimum corner and scales it by
// Size / extent along Axis. The same factor is applied to all three axes.
// When n is disabled the input is returned unchanged.
func Normalize(triangles []stl.Triangle, n Normalization) ([]stl.Triangle, error) {
	if !n.Enabled || len(triangles) == 0 {
		return triangles, nil
	}
	if n.Axis < AxisX || n.Axis > AxisZ {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAxis, n.Axis)
	}
	if n.Size <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSize, n.Size)
	}

	lower, upper := Bounds(triangles)
	extent := upper.Component(int(n.Axis)) - lower.Component(int(n.Axis))
	if extent <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateExtent, n.Axis)
	}
	factor := n.Size / extent

	out := make([]stl.Triangle, len(triangles))
	for i, t := range triangles {
		out[i] = stl.Triangle{
			P0:     t.P0.Sub(lower).Scale(factor),
			P1:     t.P1.Sub(lower).Scale(factor),
			P2:     t.P2.Sub(lower).Scale(factor),
			Normal: t.Normal,
		}
		for _, p := range out[i].Points() {
			if err := stl.CheckVec3(p); err != nil {
				return nil, fmt.Errorf("triangle %d: %w", i, err)
			}
		}
	}
	return out, nil
}
