package render

import (
	"math"
	"time"

	"github.com/lixenwraith/vi-beaker/parameter"
)

// Blast is one expanding wave of an explosion
type Blast struct {
	Radius   float64 // peak, scene units
	Duration time.Duration
	Delay    time.Duration
}

// At returns the wave radius and opacity at elapsed since mount
// Reports false before the delay and after the wave has faded
func (b Blast) At(elapsed time.Duration) (radius, opacity float64, ok bool) {
	t := elapsed - b.Delay
	if t < 0 || t >= b.Duration || b.Duration <= 0 {
		return 0, 0, false
	}
	p := float64(t) / float64(b.Duration)
	// Ease-out growth, linear fade
	radius = b.Radius * (1 - (1-p)*(1-p))
	return radius, 1 - p, true
}

func (b Blast) end() time.Duration {
	return b.Delay + b.Duration
}

// Explosion is a one-shot keyed by the retrigger id that mounted it
// A larger intensity gives a bigger, faster blast with more shockwave rings
type Explosion struct {
	ID        uint64
	Intensity float64
	Start     time.Time

	Main  Blast
	Inner Blast
	Rings []Blast
}

// ExplosionRadius is the main wave's peak radius for an intensity
func ExplosionRadius(intensity float64) float64 {
	return parameter.ExplosionBaseRadius + parameter.ExplosionRadiusPerUnit*intensity
}

// ExplosionDuration is the main wave's length; it decreases as intensity grows
func ExplosionDuration(intensity float64) time.Duration {
	rate := math.Max(parameter.ExplosionMinRate, parameter.ExplosionRatePerUnit*intensity)
	return time.Duration(float64(parameter.ExplosionBaseDuration) / rate)
}

// RingCount is the number of shockwave rings for an intensity
func RingCount(intensity float64) int {
	n := int(math.Floor(intensity / 2))
	if n < 0 {
		return 0
	}
	return min(n, parameter.ExplosionMaxRings)
}

// NewExplosion mounts a one-shot at start; a non-positive intensity mounts nothing
func NewExplosion(id uint64, intensity float64, start time.Time) *Explosion {
	if !(intensity > 0) {
		return nil
	}

	radius := ExplosionRadius(intensity)
	duration := ExplosionDuration(intensity)

	x := &Explosion{
		ID:        id,
		Intensity: intensity,
		Start:     start,
		Main:      Blast{Radius: radius, Duration: duration},
		Inner: Blast{
			Radius:   radius * parameter.ExplosionInnerRadiusScale,
			Duration: time.Duration(float64(duration) * parameter.ExplosionInnerDurationScale),
			Delay:    parameter.ExplosionInnerDelay,
		},
	}

	rings := RingCount(intensity)
	if rings > 0 {
		x.Rings = make([]Blast, rings)
		for i := range x.Rings {
			x.Rings[i] = Blast{
				Radius:   radius * parameter.ExplosionRingRadiusScale,
				Duration: time.Duration(float64(duration) * parameter.ExplosionRingDurationScale),
				Delay:    time.Duration(i) * parameter.ExplosionRingStagger,
			}
		}
	}
	return x
}

// Length is the time until the last wave has faded
func (x *Explosion) Length() time.Duration {
	end := max(x.Main.end(), x.Inner.end())
	for _, r := range x.Rings {
		end = max(end, r.end())
	}
	return end
}

// Progress returns how far the one-shot has run, in [0, 1]
func (x *Explosion) Progress(now time.Time) float64 {
	length := x.Length()
	if length <= 0 {
		return 1
	}
	p := float64(now.Sub(x.Start)) / float64(length)
	return math.Max(0, math.Min(1, p))
}

// Done reports whether every wave has finished
func (x *Explosion) Done(now time.Time) bool {
	return now.Sub(x.Start) >= x.Length()
}
