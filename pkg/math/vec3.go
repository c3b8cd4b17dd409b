// Package math provides the vector primitive used by the mesh pipeline.
package math

import (
	"fmt"
	stdmath "math"

	"github.com/chewxy/math32"
)

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Mul returns the componentwise product.
func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Div returns the componentwise quotient.
func (v Vec3) Div(other Vec3) Vec3 {
	return Vec3{v.X / other.X, v.Y / other.Y, v.Z / other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Shrink returns v / scalar.
func (v Vec3) Shrink(s float32) Vec3 {
	return Vec3{v.X / s, v.Y / s, v.Z / s}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude. The squares are summed in float64 so large
// components do not overflow float32.
func (v Vec3) Length() float32 {
	x, y, z := float64(v.X), float64(v.Y), float64(v.Z)
	return float32(stdmath.Sqrt(x*x + y*y + z*z))
}

// Normalize returns a unit vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Shrink(l)
}

// Abs returns the elementwise absolute value.
func (v Vec3) Abs() Vec3 {
	return Vec3{math32.Abs(v.X), math32.Abs(v.Y), math32.Abs(v.Z)}
}

// Transform returns (v - offset) / factor.
func (v Vec3) Transform(offset Vec3, factor float32) Vec3 {
	return v.Sub(offset).Shrink(factor)
}

// Min returns the componentwise minimum.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{math32.Min(v.X, other.X), math32.Min(v.Y, other.Y), math32.Min(v.Z, other.Z)}
}

// Max returns the componentwise maximum.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{math32.Max(v.X, other.X), math32.Max(v.Y, other.Y), math32.Max(v.Z, other.Z)}
}

// Component returns the coordinate on axis 0 (X), 1 (Y) or 2 (Z).
func (v Vec3) Component(axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	default:
		panic(fmt.Sprintf("math: invalid axis %d", axis))
	}
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	for _, c := range [3]float32{v.X, v.Y, v.Z} {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// InRange reports whether every component magnitude is at most MaxCoordinate,
// the largest value Quantize maps to a distinct key.
func (v Vec3) InRange() bool {
	return math32.Abs(v.X) <= MaxCoordinate && math32.Abs(v.Y) <= MaxCoordinate && math32.Abs(v.Z) <= MaxCoordinate
}

// Key returns the quantized form of v used for equality, ordering and hashing.
func (v Vec3) Key() Key {
	return Key{
		X: Quantize(v.X, PrecisionDigits),
		Y: Quantize(v.Y, PrecisionDigits),
		Z: Quantize(v.Z, PrecisionDigits),
	}
}

// Equal reports whether v and other are equal up to PrecisionDigits.
func (v Vec3) Equal(other Vec3) bool {
	return v.Key() == other.Key()
}

// String formats v with two decimals.
func (v Vec3) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}
