package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/Faultbox/stl2lnas/internal/sources"
	"github.com/Faultbox/stl2lnas/pkg/lnas"
	"github.com/Faultbox/stl2lnas/pkg/mesh"
)

func cmdInfo(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: stl2lnas info <file.lnas>")
	}

	doc, err := lnas.Read(args[0])
	if err != nil {
		return err
	}
	m, err := lnas.Decode(doc)
	if err != nil {
		return err
	}
	if err := validateMesh(m); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	fmt.Printf("File:      %s\n", args[0])
	fmt.Printf("Version:   %s\n", doc.Version)
	if doc.Name != "" {
		fmt.Printf("Name:      %s\n", doc.Name)
	}
	if doc.Normalization != nil {
		fmt.Printf("Normalize: %g along %s\n", doc.Normalization.Size, doc.Normalization.Direction)
	}
	fmt.Printf("Vertices:  %d\n", len(m.Vertices))
	fmt.Printf("Triangles: %d\n", len(m.Triangles))
	fmt.Printf("Hash:      %016x\n", m.Fingerprint())

	if len(m.Vertices) > 0 {
		lower, upper := m.Vertices[0], m.Vertices[0]
		for _, v := range m.Vertices[1:] {
			lower = lower.Min(v)
			upper = upper.Max(v)
		}
		fmt.Printf("Bounds:    %v - %v\n", lower, upper)
	}

	names := sources.Names(doc.Surfaces)
	fmt.Println()
	fmt.Printf("Surfaces (%d):\n", len(names))
	for _, name := range names {
		fmt.Printf("  %-20s %d triangles\n", name, len(m.Surfaces[name]))
	}
	return nil
}

var errBadIndex = errors.New("index out of range")

// validateMesh checks that every triangle references a decoded vertex and
// every surface references a decoded triangle.
func validateMesh(m *mesh.Mesh) error {
	for i, t := range m.Triangles {
		for _, idx := range t {
			if int(idx) >= len(m.Vertices) {
				return fmt.Errorf("triangle %d references vertex %d of %d: %w", i, idx, len(m.Vertices), errBadIndex)
			}
		}
	}
	names := lo.Keys(m.Surfaces)
	slices.Sort(names)
	for _, name := range names {
		for _, idx := range m.Surfaces[name] {
			if int(idx) >= len(m.Triangles) {
				return fmt.Errorf("surface %q references triangle %d of %d: %w", name, idx, len(m.Triangles), errBadIndex)
			}
		}
	}
	return nil
}
