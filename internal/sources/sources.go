// Package sources resolves STL inputs on disk into named surfaces.
package sources

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/multierr"
)

// Ext is the STL file extension.
const Ext = ".stl"

// Source errors.
var (
	ErrDuplicateName = errors.New("repeated surface name")
	ErrNotSTL        = errors.New("file does not have .stl extension")
)

// SurfaceName returns the file name without its .stl extension.
func SurfaceName(path string) (string, error) {
	base := filepath.Base(path)
	if !strings.EqualFold(filepath.Ext(base), Ext) {
		return "", fmt.Errorf("%w: %s", ErrNotSTL, path)
	}
	return base[:len(base)-len(Ext)], nil
}

// ScanDir returns the regular .stl files directly inside dir, sorted.
func ScanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.EqualFold(filepath.Ext(e.Name()), Ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	slices.Sort(paths)
	return paths, nil
}

// Collect maps surface names to paths for every STL in dirs plus files.
// A name seen twice is an error.
func Collect(dirs, files []string) (map[string]string, error) {
	out := make(map[string]string)
	add := func(path string) error {
		name, err := SurfaceName(path)
		if err != nil {
			return err
		}
		if prev, ok := out[name]; ok {
			return fmt.Errorf("%w %q: %s and %s", ErrDuplicateName, name, prev, path)
		}
		out[name] = path
		return nil
	}

	for _, dir := range dirs {
		paths, err := ScanDir(dir)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			if err := add(p); err != nil {
				return nil, err
			}
		}
	}
	for _, f := range files {
		if err := add(f); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Names returns the surface names of files in sorted order.
func Names(files map[string]string) []string {
	names := lo.Keys(files)
	slices.Sort(names)
	return names
}

// CopyAll copies every surface file into dir as <name>.stl.
func CopyAll(files map[string]string, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, name := range Names(files) {
		if err := copyFile(files[name], filepath.Join(dir, name+Ext)); err != nil {
			return fmt.Errorf("copying surface %q: %w", name, err)
		}
	}
	return nil
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, out.Close())
	}()

	_, err = io.Copy(out, in)
	return err
}
