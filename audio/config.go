package audio

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/lixenwraith/vi-beaker/parameter"
)

// Config holds audio output settings, loaded from the environment
type Config struct {
	// Enabled=false starts the session muted; mapping still runs
	Enabled bool `env:"BEAKER_AUDIO_ENABLED" envDefault:"true"`

	// VolumePercent is the master volume, 0-100
	VolumePercent int `env:"BEAKER_MASTER_VOLUME" envDefault:"50"`

	SampleRate int `env:"BEAKER_SAMPLE_RATE" envDefault:"44100"`
	BufferMs   int `env:"BEAKER_BUFFER_MS" envDefault:"100"`
}

// DefaultConfig returns the configuration used when the environment sets nothing
func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		VolumePercent: 50,
		SampleRate:    parameter.AudioSampleRate,
		BufferMs:      int(parameter.AudioBufferDuration / time.Millisecond),
	}
}

// LoadConfig loads audio configuration from BEAKER_* environment variables
// Out-of-range values are normalized rather than rejected
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse audio env: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.VolumePercent < 0 {
		c.VolumePercent = 0
	}
	if c.VolumePercent > 100 {
		c.VolumePercent = 100
	}
	if c.SampleRate <= 0 {
		c.SampleRate = parameter.AudioSampleRate
	}
	if c.BufferMs <= 0 {
		c.BufferMs = int(parameter.AudioBufferDuration / time.Millisecond)
	}
}

// Volume returns the master volume in [0, 1]
func (c *Config) Volume() float64 {
	return float64(c.VolumePercent) / 100.0
}

// Buffer returns the output buffer duration
func (c *Config) Buffer() time.Duration {
	return time.Duration(c.BufferMs) * time.Millisecond
}
