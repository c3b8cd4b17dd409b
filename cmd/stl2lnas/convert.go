package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/stl2lnas/internal/config"
	"github.com/Faultbox/stl2lnas/internal/logger"
	"github.com/Faultbox/stl2lnas/internal/sources"
	"github.com/Faultbox/stl2lnas/pkg/lnas"
	"github.com/Faultbox/stl2lnas/pkg/mesh"
)

var errOutputExists = errors.New("output exists, use -overwrite to replace it")

// job is one resolved conversion.
type job struct {
	name      string
	files     map[string]string
	norm      mesh.Normalization
	output    string
	overwrite bool
	copyDir   string         // empty disables copying inputs
	cfg       *config.Config // saved next to the output; nil skips
}

func cmdConvert(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	fs.Parse(args)

	cfg, err := config.Load(flags.ConfigPath(), flags)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	norm, err := cfg.MeshNormalization()
	if err != nil {
		return err
	}

	j := job{
		name:      cfg.Name,
		files:     cfg.STL.Files,
		norm:      norm,
		output:    cfg.OutputPath(),
		overwrite: cfg.Output.Overwrite,
		cfg:       cfg,
	}
	if cfg.Output.CopySTL {
		j.copyDir = j.output + ".stls"
	}

	if err := checkOutput(j); err != nil {
		return err
	}
	return run(ctx, j)
}

func checkOutput(j job) error {
	if j.overwrite {
		return nil
	}
	if _, err := os.Stat(j.output); err == nil {
		return fmt.Errorf("%s: %w", j.output, errOutputExists)
	}
	return nil
}

func run(ctx context.Context, j job) error {
	start := time.Now()
	logger.Info("converting",
		zap.String("name", j.name),
		zap.Strings("surfaces", sources.Names(j.files)),
		zap.String("output", j.output))

	m, err := mesh.Build(ctx, mesh.SourcesFromPaths(j.files), j.norm)
	if err != nil {
		return err
	}
	for _, name := range sources.Names(j.files) {
		if d := m.Dropped[name]; d > 0 {
			logger.Warn("found invalid triangles in STL, they were not added to LNAS",
				zap.String("surface", name), zap.Int("dropped", d))
		}
	}

	doc := lnas.EncodeMesh(m)
	doc.Name = j.name
	if j.norm.Enabled {
		doc.Normalization = &lnas.Normalization{Size: j.norm.Size, Direction: j.norm.Axis.String()}
	}
	if err := lnas.Write(j.output, doc); err != nil {
		return err
	}

	// side artifacts are only written once the document is on disk
	if j.copyDir != "" {
		if err := sources.CopyAll(j.files, j.copyDir); err != nil {
			return err
		}
		logger.Debug("copied STL inputs", zap.String("dir", j.copyDir))
	}
	if j.cfg != nil {
		cfgPath, err := j.cfg.SaveToOutput()
		if err != nil {
			logger.Warn("unable to save config in output folder", zap.Error(err))
		} else {
			logger.Debug("saved config", zap.String("path", cfgPath))
		}
	}

	fields := []zap.Field{
		zap.String("output", j.output),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", len(m.Triangles)),
		zap.Int("surfaces", len(m.Surfaces)),
		zap.String("fingerprint", fmt.Sprintf("%016x", m.Fingerprint())),
		zap.Duration("elapsed", time.Since(start)),
	}
	if data, err := os.ReadFile(j.output); err == nil {
		fields = append(fields, zap.String("xxhash", fmt.Sprintf("%016x", xxhash.Sum64(data))))
	}
	logger.Info("generated", fields...)
	return nil
}
