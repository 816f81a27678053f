// Package config loads paperfold settings from an optional YAML file and
// PAPERFOLD_ prefixed environment variables.
package config

import (
	"github.com/memmaker/paperfold/engine/physics"
	"github.com/memmaker/paperfold/fold"
	"github.com/memmaker/paperfold/level"
	"github.com/memmaker/paperfold/paper"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Fold  FoldConfig  `koanf:"fold"`
	Paper PaperConfig `koanf:"paper"`
	World WorldConfig `koanf:"world"`
	Log   LogConfig   `koanf:"log"`
}

type FoldConfig struct {
	Samples    int      `koanf:"samples"`     // poses tested along the fold arc
	ClipOffset float32  `koanf:"clip_offset"` // distance faces are pushed out before comparing
	ProbeInset float32  `koanf:"probe_inset"` // square casts stay this far from the edges
	Mask       []string `koanf:"mask"`        // collision layers the sweep looks at
}

type PaperConfig struct {
	Length    float32 `koanf:"length"`
	Thickness float32 `koanf:"thickness"`
}

type WorldConfig struct {
	CellSize float32 `koanf:"cell_size"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // console or json
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	defaults := fold.DefaultConfig()
	if cfg.Fold.Samples == 0 {
		cfg.Fold.Samples = defaults.Samples
	}
	if cfg.Fold.ClipOffset == 0 {
		cfg.Fold.ClipOffset = defaults.ClipOffset
	}
	if cfg.Fold.ProbeInset == 0 {
		cfg.Fold.ProbeInset = defaults.ProbeInset
	}
	if len(cfg.Fold.Mask) == 0 {
		cfg.Fold.Mask = []string{"paper", "obstacle", "player"}
	}
	if cfg.Paper.Length == 0 {
		cfg.Paper.Length = paper.DefaultLength
	}
	if cfg.Paper.Thickness == 0 {
		cfg.Paper.Thickness = paper.DefaultThickness
	}
	if cfg.World.CellSize == 0 {
		cfg.World.CellSize = physics.DefaultCellSize
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

func (c *Config) Validate() error {
	if c.Paper.Length <= 0 {
		return errors.Errorf("paper.length must be positive, got %v", c.Paper.Length)
	}
	if c.Paper.Thickness <= 0 || c.Paper.Thickness >= c.Paper.Length {
		return errors.Errorf("paper.thickness must be positive and below paper.length, got %v", c.Paper.Thickness)
	}
	if c.Fold.ProbeInset*2 >= c.Paper.Length {
		return errors.Errorf("fold.probe_inset %v leaves nothing of a square of length %v", c.Fold.ProbeInset, c.Paper.Length)
	}
	if c.World.CellSize <= 0 {
		return errors.Errorf("world.cell_size must be positive, got %v", c.World.CellSize)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return errors.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	checker, err := c.Checker()
	if err != nil {
		return err
	}
	return checker.Validate()
}

// Checker converts the fold section into fold checker settings.
func (c *Config) Checker() (fold.Config, error) {
	mask, err := physics.ParseLayerMask(c.Fold.Mask)
	if err != nil {
		return fold.Config{}, errors.Wrap(err, "fold.mask")
	}
	return fold.Config{
		Samples:    c.Fold.Samples,
		ClipOffset: c.Fold.ClipOffset,
		ProbeInset: c.Fold.ProbeInset,
		Mask:       mask,
	}, nil
}

func (c *Config) LevelOptions() level.Options {
	return level.Options{
		CellSize:       c.World.CellSize,
		PaperLength:    c.Paper.Length,
		PaperThickness: c.Paper.Thickness,
	}
}
