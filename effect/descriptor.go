package effect

import (
	"math"

	"github.com/lixenwraith/vi-beaker/parameter"
)

// Descriptor is one fully resolved presentation state: a liquid color plus five scalar channels
// A Descriptor returned by Compose or Clamp always satisfies Valid
type Descriptor struct {
	Color     RGB     `json:"color" yaml:"color"`
	Bubbles   float64 `json:"bubbles" yaml:"bubbles"`
	Smoke     float64 `json:"smoke" yaml:"smoke"`
	Sparkles  int     `json:"sparkles" yaml:"sparkles"`
	Glow      float64 `json:"glow" yaml:"glow"`
	Explosion float64 `json:"explosion" yaml:"explosion"`
}

// Partial is a per-substance contribution; nil fields are absent
// Absent numeric channels contribute zero, an absent color contributes nothing to the mix
type Partial struct {
	Color     *RGB     `json:"color,omitempty" yaml:"color,omitempty"`
	Bubbles   *float64 `json:"bubbles,omitempty" yaml:"bubbles,omitempty"`
	Smoke     *float64 `json:"smoke,omitempty" yaml:"smoke,omitempty"`
	Sparkles  *float64 `json:"sparkles,omitempty" yaml:"sparkles,omitempty"`
	Glow      *float64 `json:"glow,omitempty" yaml:"glow,omitempty"`
	Explosion *float64 `json:"explosion,omitempty" yaml:"explosion,omitempty"`
}

// Source is one active substance on the bench
// IDs are not required to be unique; duplicates each contribute
type Source struct {
	ID      string  `json:"id" yaml:"id"`
	Partial Partial `json:"effects" yaml:"effects"`
}

var baselineColor = MustParseHex(parameter.BaselineColor)

// Baseline returns the empty-bench state: plain water, every channel idle
func Baseline() Descriptor {
	return Descriptor{Color: baselineColor}
}

// BaselineColor returns the default liquid color
func BaselineColor() RGB {
	return baselineColor
}

// Clamp forces every scalar into its channel domain
// NaN becomes zero, infinities saturate
func Clamp(d Descriptor) Descriptor {
	d.Bubbles = clampFloat(d.Bubbles, parameter.BubblesMax)
	d.Smoke = clampFloat(d.Smoke, parameter.SmokeMax)
	d.Glow = clampFloat(d.Glow, parameter.GlowMax)
	d.Explosion = clampFloat(d.Explosion, parameter.ExplosionMax)
	d.Sparkles = clampInt(d.Sparkles, parameter.SparklesMax)
	return d
}

// Valid reports whether every channel lies within its domain
func (d Descriptor) Valid() bool {
	return inRange(d.Bubbles, parameter.BubblesMax) &&
		inRange(d.Smoke, parameter.SmokeMax) &&
		inRange(d.Glow, parameter.GlowMax) &&
		inRange(d.Explosion, parameter.ExplosionMax) &&
		d.Sparkles >= 0 && d.Sparkles <= parameter.SparklesMax
}

// Idle reports whether no channel would produce a visual or audible artifact
func (d Descriptor) Idle() bool {
	return d.Bubbles == 0 && d.Smoke == 0 && d.Sparkles == 0 && d.Glow == 0 && d.Explosion == 0
}

func clampFloat(v, hi float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > hi:
		return hi
	}
	return v
}

func clampInt(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

func inRange(v, hi float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= hi
}

// Float64 returns a pointer to v, for building Partial literals
func Float64(v float64) *float64 {
	return &v
}

// Color returns a pointer to c, for building Partial literals
func Color(c RGB) *RGB {
	return &c
}
