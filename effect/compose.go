package effect

import (
	"math"
	"sort"

	"github.com/lixenwraith/vi-beaker/parameter"
)

// Compose resolves the current bench into a single presentation state
//
// An override, when present, is authoritative: it is clamped and returned without
// looking at sources. Otherwise scalar channels are summed then clamped, and the color
// is the per-channel floor average of the sources that declare one. The result does not
// depend on the order of sources.
func Compose(sources []Source, override *Descriptor) Descriptor {
	if override != nil {
		return Clamp(*override)
	}
	if len(sources) == 0 {
		return Baseline()
	}

	n := len(sources)
	bubbles := make([]float64, 0, n)
	smoke := make([]float64, 0, n)
	sparkles := make([]float64, 0, n)
	glow := make([]float64, 0, n)
	explosion := make([]float64, 0, n)
	colors := make([]RGB, 0, n)

	for i := range sources {
		p := &sources[i].Partial
		bubbles = appendScalar(bubbles, p.Bubbles)
		smoke = appendScalar(smoke, p.Smoke)
		sparkles = appendScalar(sparkles, p.Sparkles)
		glow = appendScalar(glow, p.Glow)
		explosion = appendScalar(explosion, p.Explosion)
		if p.Color != nil {
			colors = append(colors, *p.Color)
		}
	}

	color, ok := AverageRGB(colors)
	if !ok {
		color = baselineColor
	}

	out := Descriptor{
		Color:     color,
		Bubbles:   orderedSum(bubbles),
		Smoke:     orderedSum(smoke),
		Glow:      orderedSum(glow),
		Explosion: orderedSum(explosion),
	}
	out = Clamp(out)

	// Sparkles are clamped as a real sum, then floored
	out.Sparkles = int(math.Floor(clampFloat(orderedSum(sparkles), parameter.SparklesMax)))

	return out
}

// appendScalar collects a present, non-NaN contribution; absent channels contribute nothing
func appendScalar(dst []float64, v *float64) []float64 {
	if v == nil || math.IsNaN(*v) {
		return dst
	}
	return append(dst, *v)
}

// orderedSum adds values in ascending order so the float result is identical for every
// permutation of the input
func orderedSum(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sort.Float64s(vs)
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum
}
