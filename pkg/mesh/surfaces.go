package mesh

import (
	"context"
	"fmt"
	stdmath "math"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/Faultbox/stl2lnas/pkg/stl"
)

// Source is one named STL input. Data takes precedence over Path when set.
type Source struct {
	Name string
	Path string
	Data []byte
}

// SourcesFromPaths turns a surface name to file path mapping into sources.
func SourcesFromPaths(paths map[string]string) []Source {
	return lo.MapToSlice(paths, func(name, path string) Source {
		return Source{Name: name, Path: path}
	})
}

// Soup is the concatenated triangle list of all surfaces.
type Soup struct {
	Triangles []stl.Triangle
	// Surfaces maps each surface name to its indices into Triangles.
	Surfaces map[string][]uint32
	// Dropped counts degenerate triangles skipped per surface.
	Dropped map[string]int
}

func (s Source) decode() (*stl.Result, error) {
	switch {
	case s.Data != nil:
		return stl.Parse(s.Data)
	case s.Path != "":
		return stl.ReadFile(s.Path)
	default:
		return nil, ErrEmptySource
	}
}

// Aggregate decodes every source in lexicographic name order and concatenates
// their triangles. Duplicate names are rejected before anything is read.
func Aggregate(ctx context.Context, sources []Source) (*Soup, error) {
	if dups := lo.FindDuplicates(lo.Map(sources, func(s Source, _ int) string { return s.Name })); len(dups) > 0 {
		slices.Sort(dups)
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSurface, strings.Join(dups, ", "))
	}

	sorted := slices.Clone(sources)
	slices.SortFunc(sorted, func(a, b Source) int { return strings.Compare(a.Name, b.Name) })

	soup := &Soup{
		Surfaces: make(map[string][]uint32, len(sorted)),
		Dropped:  make(map[string]int, len(sorted)),
	}
	for _, src := range sorted {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := src.decode()
		if err != nil {
			return nil, fmt.Errorf("surface %q: %w", src.Name, err)
		}

		start := len(soup.Triangles)
		if uint64(start+len(res.Triangles)) > stdmath.MaxUint32 {
			return nil, fmt.Errorf("surface %q: %w", src.Name, ErrTooManyTriangles)
		}
		idx := make([]uint32, len(res.Triangles))
		for i := range idx {
			idx[i] = uint32(start + i)
		}

		soup.Triangles = append(soup.Triangles, res.Triangles...)
		soup.Surfaces[src.Name] = idx
		soup.Dropped[src.Name] = res.Dropped
	}
	return soup, nil
}
