package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	// Create parent directory if needed
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SaveToOutput writes the config next to the LNAS output as <name>.yaml.
func (c *Config) SaveToOutput() (string, error) {
	path := filepath.Join(c.Output.Folder, c.Name+".yaml")
	return path, c.SaveTo(path)
}
