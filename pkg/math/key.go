package math

import (
	"encoding/binary"
	"fmt"
	stdmath "math"

	"github.com/cespare/xxhash/v2"
)

// PrecisionDigits is the number of decimal digits kept when quantizing.
const PrecisionDigits = 5

// MaxCoordinate bounds the coordinates that quantize without saturating.
const MaxCoordinate = 1e13

// Quantize multiplies f by 10^digits and rounds to the nearest integer.
// Results outside the int64 range saturate at math.MinInt64 / math.MaxInt64;
// callers must keep inputs within MaxCoordinate for keys to stay distinct.
func Quantize(f float32, digits int) int64 {
	q := stdmath.Round(float64(f) * stdmath.Pow10(digits))
	switch {
	case stdmath.IsNaN(q):
		return 0
	case q >= stdmath.MaxInt64:
		return stdmath.MaxInt64
	case q <= stdmath.MinInt64:
		return stdmath.MinInt64
	}
	return int64(q)
}

// Key is the canonical quantized form of a Vec3.
// Two vectors are equal exactly when their keys are equal.
type Key struct {
	X, Y, Z int64
}

// Hash returns a stable 64-bit hash of the quantized coordinates.
func (k Key) Hash() uint64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(k.X))
	binary.LittleEndian.PutUint64(buf[8:], uint64(k.Y))
	binary.LittleEndian.PutUint64(buf[16:], uint64(k.Z))
	return xxhash.Sum64(buf[:])
}

// Compare orders keys lexicographically over (X, Y, Z).
// It returns -1, 0 or +1.
func (k Key) Compare(other Key) int {
	if k == other {
		return 0
	}
	pairs := [3][2]int64{{k.X, other.X}, {k.Y, other.Y}, {k.Z, other.Z}}
	for _, p := range pairs {
		if p[0] < p[1] {
			return -1
		}
		if p[0] > p[1] {
			return 1
		}
	}
	panic(fmt.Sprintf("math: keys %v and %v differ but no axis orders them", k, other))
}

// Compare orders two vectors by their quantized keys.
func Compare(a, b Vec3) int {
	return a.Key().Compare(b.Key())
}
