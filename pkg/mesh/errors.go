package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/stl2lnas/pkg/stl"
)

// Mesh errors.
var (
	ErrDuplicateSurface = errors.New("duplicate surface name")
	ErrEmptySource      = errors.New("surface source has neither path nor data")
	ErrInvalidAxis      = errors.New("invalid normalization axis")
	ErrInvalidSize      = errors.New("normalization size must be positive")
	ErrDegenerateExtent = errors.New("mesh has zero extent along normalization axis")
	ErrWinding          = errors.New("triangle normal cannot be reconciled with its winding")
	ErrTooManyTriangles = errors.New("triangle count exceeds uint32 range")
	ErrUnknownVertex    = errors.New("vertex not in canonical set")
)

// WindingError identifies a triangle whose stored normal disagrees with
// both candidate point orderings.
type WindingError struct {
	Index    int
	Triangle stl.Triangle
}

func (e *WindingError) Error() string {
	return fmt.Sprintf("triangle %d %v: %v", e.Index, e.Triangle, ErrWinding)
}

func (e *WindingError) Unwrap() error { return ErrWinding }
