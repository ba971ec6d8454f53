package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines output latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Continuous channel gain ranges (dB), mapped linearly from the channel's scalar domain
const (
	FizzMinDb    = -30.0
	FizzMaxDb    = -10.0
	HissMinDb    = -40.0
	HissMaxDb    = -15.0
	CrackleMinDb = -35.0
	CrackleMaxDb = -20.0
)

// Explosion voice gain range (dB)
const (
	ExplosionMinDb = -15.0
	ExplosionMaxDb = 0.0
)

// Gain ramps
const (
	// SilenceRamp is the fade-out applied when a channel's scalar drops to zero
	SilenceRamp = 500 * time.Millisecond

	FizzAttackRamp    = 100 * time.Millisecond
	HissAttackRamp    = 100 * time.Millisecond
	CrackleAttackRamp = 50 * time.Millisecond

	// CrackleReleaseRamp is the self-mute fade of a spark burst
	CrackleReleaseRamp = 100 * time.Millisecond

	// CrackleHoldBase + sparkles*CrackleHoldPerSparkle is the burst length before self-mute
	CrackleHoldBase       = 100 * time.Millisecond
	CrackleHoldPerSparkle = 10 * time.Millisecond
)

// Fizz filter
const (
	FizzFilterBaseHz  = 400.0
	FizzFilterOctaves = 2.0

	// FizzLFOHz is an eighth note at 120 BPM; FizzLFOBusyHz, a quarter note, applies when fizz is busy
	FizzLFOHz     = 4.0
	FizzLFOBusyHz = 2.0

	// FizzBusyThreshold is the bubbles level above which the LFO slows
	FizzBusyThreshold = 5.0
)

// HissBandpassHz is the hiss band-pass center
const HissBandpassHz = 800.0

// Explosion membrane voice (C1 kick-like hit)
// Pitch starts at MembraneBaseHz*MembranePitchRatio and falls to MembraneBaseHz over MembranePitchDecay
const (
	MembraneBaseHz     = 32.70
	MembranePitchRatio = 10.0
	MembranePitchDecay = 50 * time.Millisecond
	MembraneAttack     = 1 * time.Millisecond
	MembraneDecay      = 400 * time.Millisecond
	MembraneSustain    = 0.01
	MembraneRelease    = 1400 * time.Millisecond
	MembraneGate       = 500 * time.Millisecond
)
