package fold

import (
	"github.com/memmaker/paperfold/engine/physics"
	"github.com/pkg/errors"
)

type Config struct {
	// Samples is the number of poses tested along the rotation arc.
	Samples int
	// ClipOffset is how far along its normal each face is pushed before measuring.
	ClipOffset float32
	// ProbeInset shrinks the square casts so they do not touch the hinge neighbours.
	ProbeInset float32
	Mask       physics.Layer
}

func DefaultConfig() Config {
	return Config{
		Samples:    10,
		ClipOffset: 0.1,
		ProbeInset: 0.1,
		Mask:       physics.LayerPaper | physics.LayerObstacle | physics.LayerPlayer,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.Samples < 1 {
		c.Samples = defaults.Samples
	}
	if c.ClipOffset <= 0 {
		c.ClipOffset = defaults.ClipOffset
	}
	if c.ProbeInset <= 0 {
		c.ProbeInset = defaults.ProbeInset
	}
	if c.Mask == 0 {
		c.Mask = defaults.Mask
	}
	return c
}

func (c Config) Validate() error {
	if c.Samples < 1 {
		return errors.Errorf("fold samples must be positive, got %d", c.Samples)
	}
	if c.ClipOffset <= 0 {
		return errors.Errorf("clip offset must be positive, got %v", c.ClipOffset)
	}
	if c.ProbeInset < 0 {
		return errors.Errorf("probe inset must not be negative, got %v", c.ProbeInset)
	}
	if c.Mask == 0 {
		return errors.New("collision mask is empty")
	}
	return nil
}
