package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/vi-beaker/parameter"
)

// membrane is a one-shot percussive hit: a sine whose pitch falls exponentially
// from baseHz*ratio to baseHz, shaped by an attack/decay/sustain/release envelope
type membrane struct {
	rate  beep.SampleRate
	gain  float64
	phase float64
	pos   int

	startHz, baseHz float64
	pitchSamples    int

	attack, decay, gate, release int
	sustain                      float64
	total                        int
}

// NewMembrane creates one explosion hit at the given linear gain
// Every call is an independent voice; nothing is shared between hits
func NewMembrane(rate beep.SampleRate, gain float64) beep.Streamer {
	gate := rate.N(parameter.MembraneGate)
	release := rate.N(parameter.MembraneRelease)
	return &membrane{
		rate:         rate,
		gain:         gain,
		startHz:      parameter.MembraneBaseHz * parameter.MembranePitchRatio,
		baseHz:       parameter.MembraneBaseHz,
		pitchSamples: rate.N(parameter.MembranePitchDecay),
		attack:       atLeastOne(rate.N(parameter.MembraneAttack)),
		decay:        atLeastOne(rate.N(parameter.MembraneDecay)),
		gate:         gate,
		release:      release,
		sustain:      parameter.MembraneSustain,
		total:        gate + release,
	}
}

// MembraneDuration is the full length of one hit including release
func MembraneDuration() time.Duration {
	return parameter.MembraneGate + parameter.MembraneRelease
}

func (m *membrane) Stream(samples [][2]float64) (int, bool) {
	if m.pos >= m.total {
		return 0, false
	}

	for i := range samples {
		if m.pos >= m.total {
			return i, true
		}

		// Exponential pitch glide, then hold at base
		freq := m.baseHz
		if m.pos < m.pitchSamples {
			t := float64(m.pos) / float64(m.pitchSamples)
			freq = m.startHz * math.Pow(m.baseHz/m.startHz, t)
		}

		val := math.Sin(2*math.Pi*m.phase) * m.envelope() * m.gain
		m.phase += freq / float64(m.rate)
		m.phase -= math.Floor(m.phase)

		samples[i][0] = val
		samples[i][1] = val
		m.pos++
	}
	return len(samples), true
}

func (m *membrane) envelope() float64 {
	p := m.pos
	switch {
	case p < m.attack:
		return float64(p) / float64(m.attack)
	case p < m.gate:
		// Exponential decay toward sustain; time constant chosen so the decay phase reaches ~sustain
		t := float64(p-m.attack) / float64(m.decay)
		if t > 1 {
			return m.sustain
		}
		return m.sustain + (1-m.sustain)*math.Exp(-5*t)
	default:
		// Release from whatever level the gate closed at
		t := float64(p-m.gate) / float64(atLeastOne(m.release))
		level := m.sustain
		if gt := float64(m.gate-m.attack) / float64(m.decay); gt < 1 {
			level = m.sustain + (1-m.sustain)*math.Exp(-5*gt)
		}
		return level * (1 - t)
	}
}

func (m *membrane) Err() error { return nil }

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
