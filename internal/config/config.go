// Package config handles conversion configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Faultbox/stl2lnas/pkg/mesh"
)

// Config errors.
var (
	ErrMissingName  = errors.New("config: name is required")
	ErrMissingFiles = errors.New("config: stl.files must list at least one surface")
)

// Config holds all conversion settings.
type Config struct {
	Name          string               `yaml:"name"`
	STL           STLConfig            `yaml:"stl"`
	Normalization *NormalizationConfig `yaml:"normalization,omitempty"`
	Output        OutputConfig         `yaml:"output"`
	Logging       LoggingConfig        `yaml:"logging"`
}

// STLConfig lists the input surfaces.
type STLConfig struct {
	Files map[string]string `yaml:"files"` // surface name -> STL path
}

// NormalizationConfig rescales the mesh so Direction spans [0, Size].
type NormalizationConfig struct {
	Size      float32 `yaml:"size"`
	Direction string  `yaml:"direction"` // x, y or z
}

// OutputConfig controls where results are written.
type OutputConfig struct {
	Folder    string `yaml:"folder"`
	Overwrite bool   `yaml:"overwrite"`
	CopySTL   bool   `yaml:"copy_stl"` // copy inputs to <folder>/<name>.lnas.stls
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Name: "mesh",
		STL: STLConfig{
			Files: map[string]string{},
		},
		Output: OutputConfig{
			Folder:    "output",
			Overwrite: false,
			CopySTL:   true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Name == "" {
		return ErrMissingName
	}
	if len(c.STL.Files) == 0 {
		return ErrMissingFiles
	}
	if _, err := c.MeshNormalization(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// MeshNormalization converts the normalization section for mesh.Build.
func (c *Config) MeshNormalization() (mesh.Normalization, error) {
	if c.Normalization == nil {
		return mesh.Normalization{}, nil
	}
	axis, err := mesh.ParseAxis(c.Normalization.Direction)
	if err != nil {
		return mesh.Normalization{}, err
	}
	if c.Normalization.Size <= 0 {
		return mesh.Normalization{}, fmt.Errorf("%w: %g", mesh.ErrInvalidSize, c.Normalization.Size)
	}
	return mesh.Normalization{Enabled: true, Size: c.Normalization.Size, Axis: axis}, nil
}

// OutputPath returns <folder>/<name>.lnas.
func (c *Config) OutputPath() string {
	return filepath.Join(c.Output.Folder, c.Name+".lnas")
}

// resolvePaths makes relative STL and output paths relative to baseDir.
func (c *Config) resolvePaths(baseDir string) {
	for name, path := range c.STL.Files {
		if !filepath.IsAbs(path) {
			c.STL.Files[name] = filepath.Join(baseDir, path)
		}
	}
	if c.Output.Folder != "" && !filepath.IsAbs(c.Output.Folder) {
		c.Output.Folder = filepath.Join(baseDir, c.Output.Folder)
	}
}
