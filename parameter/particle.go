package parameter

import (
	"time"
)

// Bubble Particles
const (
	// BubbleStagger is the start offset between consecutive bubble instances
	BubbleStagger = 300 * time.Millisecond

	// BubbleRiseMin/Max bound the jittered time for one bubble to reach the top of the liquid
	BubbleRiseMin = 2 * time.Second
	BubbleRiseMax = 4 * time.Second

	// BubbleRadiusMin/Max bound the jittered bubble radius (scene units)
	BubbleRadiusMin = 1.0
	BubbleRadiusMax = 4.0
)

// Sparkle Particles
const (
	// SparkleDelayMax bounds the jittered start delay so sparkles never pulse in lockstep
	SparkleDelayMax = 2 * time.Second

	// SparklePeriodMin/Max bound the jittered twinkle period
	SparklePeriodMin = 500 * time.Millisecond
	SparklePeriodMax = time.Second

	SparkleSizeMin = 1.0
	SparkleSizeMax = 3.0
)

// SmokePlumes is the fixed number of smoke plumes in the smoke layer
const SmokePlumes = 3

// Glow
const (
	// GlowRadiusPerUnit converts glow intensity to blur radius (scene units)
	GlowRadiusPerUnit = 1.0
)

// Explosion One-Shot
const (
	// ExplosionBaseRadius + intensity*ExplosionRadiusPerUnit is the blast wave peak radius
	ExplosionBaseRadius    = 10.0
	ExplosionRadiusPerUnit = 18.0

	// ExplosionBaseDuration / max(ExplosionMinRate, intensity*ExplosionRatePerUnit) is the blast duration
	ExplosionBaseDuration = 600 * time.Millisecond
	ExplosionMinRate      = 0.5
	ExplosionRatePerUnit  = 0.3

	// Inner blast scales relative to the main wave
	ExplosionInnerRadiusScale   = 0.6
	ExplosionInnerDurationScale = 0.8
	ExplosionInnerDelay         = 50 * time.Millisecond

	// Shockwave rings: min(floor(intensity/2), ExplosionMaxRings)
	ExplosionMaxRings          = 4
	ExplosionRingRadiusScale   = 1.2
	ExplosionRingDurationScale = 1.5
	ExplosionRingStagger       = 80 * time.Millisecond
)
