package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/stl2lnas/internal/logger"
	"github.com/Faultbox/stl2lnas/internal/sources"
	"github.com/Faultbox/stl2lnas/pkg/mesh"
)

// listFlag collects repeated string flags.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func cmdFolder(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("folder", flag.ExitOnError)
	var dirs, files listFlag
	fs.Var(&dirs, "d", "Directory with STLs to use (repeatable)")
	fs.Var(&files, "f", "STL filename to use (repeatable)")
	output := fs.String("o", "", "Output filename for .lnas")
	overwrite := fs.Bool("overwrite", false, "Overwrite existing files")
	size := fs.Float64("size", 0, "Normalize so -axis spans [0, size] (0 disables)")
	axis := fs.String("axis", "x", "Normalization axis (x, y or z)")
	debug := fs.Bool("debug", false, "Enable debug logging")
	logFile := fs.String("log", "", "Also write logs to this file")
	fs.Parse(args)

	if *output == "" {
		return errors.New("folder: -o is required")
	}
	if len(dirs) == 0 && len(files) == 0 {
		return errors.New("folder: give at least one -d or -f")
	}

	level := "info"
	if *debug {
		level = "debug"
	}
	if err := logger.Init(level, *logFile); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	found, err := sources.Collect(dirs, files)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return errors.New("folder: no STL files found")
	}

	var norm mesh.Normalization
	if *size > 0 {
		a, err := mesh.ParseAxis(*axis)
		if err != nil {
			return err
		}
		norm = mesh.Normalization{Enabled: true, Size: float32(*size), Axis: a}
	}

	j := job{
		name:      strings.TrimSuffix(filepath.Base(*output), ".lnas"),
		files:     found,
		norm:      norm,
		output:    *output,
		overwrite: *overwrite,
		copyDir:   *output + ".stls",
	}
	if err := checkOutput(j); err != nil {
		return err
	}
	return run(ctx, j)
}
