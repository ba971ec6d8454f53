package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/vi-beaker/parameter"
)

// channel is one continuously gated noise voice: source -> optional filter -> ramped gain
type channel struct {
	kind   ChannelType
	gain   *rampGain
	filter *autoFilter // fizz only

	// Linear map from [0, domainMax] to [minDb, maxDb]
	domainMax    float64
	minDb, maxDb float64
	attack       time.Duration
}

func newFizzChannel(rate beep.SampleRate, seed int64) *channel {
	filter := newAutoFilter(NewNoise(NoisePink, seed), rate,
		parameter.FizzFilterBaseHz, parameter.FizzFilterOctaves, parameter.FizzLFOHz)
	return &channel{
		kind:      ChannelFizz,
		gain:      newRampGain(filter, rate),
		filter:    filter,
		domainMax: parameter.BubblesMax,
		minDb:     parameter.FizzMinDb,
		maxDb:     parameter.FizzMaxDb,
		attack:    parameter.FizzAttackRamp,
	}
}

func newHissChannel(rate beep.SampleRate, seed int64) *channel {
	band := newBandpass(NewNoise(NoiseWhite, seed), rate, parameter.HissBandpassHz, 1)
	return &channel{
		kind:      ChannelHiss,
		gain:      newRampGain(band, rate),
		domainMax: parameter.SmokeMax,
		minDb:     parameter.HissMinDb,
		maxDb:     parameter.HissMaxDb,
		attack:    parameter.HissAttackRamp,
	}
}

func newCrackleChannel(rate beep.SampleRate, seed int64) *channel {
	return &channel{
		kind:      ChannelCrackle,
		gain:      newRampGain(NewNoise(NoiseBrown, seed), rate),
		domainMax: parameter.SparklesMax,
		minDb:     parameter.CrackleMinDb,
		maxDb:     parameter.CrackleMaxDb,
		attack:    parameter.CrackleAttackRamp,
	}
}

// targetDb maps an in-domain scalar to this channel's gain in decibels
func (c *channel) targetDb(v float64) float64 {
	return MapRange(v, 0, c.domainMax, c.minDb, c.maxDb)
}

// attach puts the channel on a freshly acquired mixer, starting silent
func (c *channel) attach(m *beep.Mixer) {
	c.gain.reset()
	m.Add(c.gain)
}
