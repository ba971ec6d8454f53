package render

import (
	"math"
	"time"

	"github.com/lixenwraith/vi-beaker/effect"
	"github.com/lixenwraith/vi-beaker/parameter"
)

// LiquidShape is one of the pre-authored fill shapes
type LiquidShape struct {
	Index effect.FillIndex
	Level float64 // interior height fraction
}

// ShapeFor selects the liquid shape for a fill index, clamping out-of-range indices
func ShapeFor(fill effect.FillIndex) LiquidShape {
	if fill < 0 {
		fill = 0
	}
	if int(fill) > parameter.FillSteps {
		fill = effect.FillIndex(parameter.FillSteps)
	}
	return LiquidShape{Index: fill, Level: parameter.LiquidLevels[fill]}
}

// Liquid is the filled part of the beaker
type Liquid struct {
	Shape LiquidShape
	Color effect.RGB
}

// Bubble rises from the bottom of the liquid to its surface, looping
type Bubble struct {
	Column float64 // interior fraction
	Radius float64
	Rise   time.Duration
	Offset time.Duration
}

// Height returns the bubble's height as a fraction of the liquid column
// Reports false until the bubble's start offset has elapsed
func (b Bubble) Height(elapsed time.Duration) (float64, bool) {
	if elapsed < b.Offset {
		return 0, false
	}
	return phase(elapsed-b.Offset, b.Rise), true
}

// Plume is one smoke column drifting up from the rim
type Plume struct {
	Column float64
	Offset time.Duration
	Period time.Duration
}

// Height returns the plume head's height above the rim in [0, 1)
func (p Plume) Height(elapsed time.Duration) float64 {
	return phase(elapsed-p.Offset, p.Period)
}

// Smoke is the smoke layer; Opacity scales every plume
type Smoke struct {
	Opacity float64
	Plumes  [parameter.SmokePlumes]Plume
}

// Sparkle twinkles at a fixed position on its own clock
type Sparkle struct {
	X, Y   float64 // interior fractions
	Size   float64
	Delay  time.Duration
	Period time.Duration
}

// Lit reports whether the sparkle is in the visible half of its cycle
func (s Sparkle) Lit(elapsed time.Duration) bool {
	if elapsed < s.Delay {
		return false
	}
	return phase(elapsed-s.Delay, s.Period) < 0.5
}

// Glow is a colored halo around the beaker
type Glow struct {
	Radius float64
	Color  effect.RGB
}

// Scene is everything a renderer draws for one frame
// A channel at zero has no layer: nil pointers and empty slices, never zero-sized artifacts
type Scene struct {
	Liquid    *Liquid
	Bubbles   []Bubble
	Smoke     *Smoke
	Sparkles  []Sparkle
	Glow      *Glow
	Explosion *Explosion

	// Draw time and animation time since the stage started; set by Stage.Scene
	Now     time.Time
	Elapsed time.Duration
}

// Animating reports whether the scene changes over time
func (s Scene) Animating() bool {
	return len(s.Bubbles) > 0 || s.Smoke != nil || len(s.Sparkles) > 0 || s.Explosion != nil
}

// Build derives the continuous layers of a scene from one frame
// The explosion one-shot is stateful and mounted by Stage, not here
func Build(frame Frame, j Jitter) Scene {
	if j == nil {
		j = NewFastJitter(1)
	}
	state := effect.Clamp(frame.State)

	var scene Scene

	if frame.Sources > 0 {
		scene.Liquid = &Liquid{Shape: ShapeFor(frame.Fill), Color: state.Color}
	}
	if state.Idle() {
		return scene
	}

	if n := int(math.Floor(state.Bubbles)); n > 0 {
		scene.Bubbles = make([]Bubble, n)
		for i := range scene.Bubbles {
			scene.Bubbles[i] = Bubble{
				Column: between(j, 0.1, 0.9),
				Radius: between(j, parameter.BubbleRadiusMin, parameter.BubbleRadiusMax),
				Rise:   betweenDuration(j, parameter.BubbleRiseMin, parameter.BubbleRiseMax),
				Offset: time.Duration(i) * parameter.BubbleStagger,
			}
		}
	}

	if state.Smoke > 0 {
		smoke := &Smoke{Opacity: state.Smoke}
		for i := range smoke.Plumes {
			smoke.Plumes[i] = Plume{
				Column: parameter.SmokePlumeColumns[i],
				Offset: parameter.SmokePlumeOffsets[i],
				Period: parameter.SmokePlumePeriods[i],
			}
		}
		scene.Smoke = smoke
	}

	if state.Sparkles > 0 {
		scene.Sparkles = make([]Sparkle, state.Sparkles)
		for i := range scene.Sparkles {
			scene.Sparkles[i] = Sparkle{
				X:      j.Float64(),
				Y:      j.Float64(),
				Size:   between(j, parameter.SparkleSizeMin, parameter.SparkleSizeMax),
				Delay:  betweenDuration(j, 0, parameter.SparkleDelayMax),
				Period: betweenDuration(j, parameter.SparklePeriodMin, parameter.SparklePeriodMax),
			}
		}
	}

	if state.Glow > 0 {
		scene.Glow = &Glow{
			Radius: state.Glow * parameter.GlowRadiusPerUnit,
			Color:  state.Color,
		}
	}

	return scene
}

// phase maps elapsed onto [0, 1) of a repeating period; negative elapsed wraps
func phase(elapsed, period time.Duration) float64 {
	if period <= 0 {
		return 0
	}
	p := elapsed % period
	if p < 0 {
		p += period
	}
	return float64(p) / float64(period)
}
