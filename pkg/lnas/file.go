package lnas

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/stl2lnas/pkg/math"
	"github.com/Faultbox/stl2lnas/pkg/mesh"
)

// Marshal renders doc as YAML. Map keys are emitted sorted, so equal
// documents produce identical bytes.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses a YAML LNAS document.
func Unmarshal(data []byte) (*Document, error) {
	doc := &Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing LNAS: %w", err)
	}
	return doc, nil
}

// Write stores doc at path, creating parent directories as needed.
// An existing file is overwritten.
func Write(path string, doc *Document) (err error) {
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding LNAS: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Read loads a document from path.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading LNAS: %w", err)
	}
	return Unmarshal(data)
}

// EncodeAndWrite encodes the joined buffers and writes them to path.
func EncodeAndWrite(vertices []math.Vec3, triangles []mesh.IndexedTriangle, surfaces map[string][]uint32, version, path string) error {
	return Write(path, Encode(vertices, triangles, surfaces, version))
}
