package config

import "flag"

// Flags are the command-line overrides of a conversion config.
type Flags struct {
	Config    *string
	Debug     *bool
	LogFile   *string
	Name      *string
	Output    *string
	Overwrite *bool
}

// RegisterFlags defines the config flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		Config:    fs.String("c", "", "Path to conversion config (YAML)"),
		Debug:     fs.Bool("debug", false, "Enable debug logging"),
		LogFile:   fs.String("log", "", "Also write logs to this file"),
		Name:      fs.String("name", "", "Override output name"),
		Output:    fs.String("out", "", "Override output folder"),
		Overwrite: fs.Bool("overwrite", false, "Overwrite existing output"),
	}
}

// ConfigPath returns the explicit config path if provided via -c.
func (f *Flags) ConfigPath() string {
	return *f.Config
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if *f.Debug {
		cfg.Logging.Level = "debug"
	}
	if *f.LogFile != "" {
		cfg.Logging.LogFile = *f.LogFile
	}
	if *f.Name != "" {
		cfg.Name = *f.Name
	}
	if *f.Output != "" {
		cfg.Output.Folder = *f.Output
	}
	if *f.Overwrite {
		cfg.Output.Overwrite = true
	}
}
