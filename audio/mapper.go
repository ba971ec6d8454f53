package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/vi-beaker/effect"
	"github.com/lixenwraith/vi-beaker/parameter"
)

// Mapper turns composed Descriptors into sound on a Session
//
// Fizz, hiss and crackle are continuous channels gated by bubbles, smoke and sparkles.
// Any explosion > 0 in an update triggers one membrane hit; the caller decides which
// updates carry an explosion, so bench edits that only re-render never re-hit.
type Mapper struct {
	mu      sync.Mutex
	session *Session
	sched   Scheduler
	rate    beep.SampleRate

	channels [channelTypeCount]*channel

	// Crackle bursts self-mute; each burst supersedes the previous timer
	crackleMute  Timer
	crackleBurst uint64

	hits uint64
}

// NewMapper builds the channel graph and registers it with the session
// A nil scheduler uses wall-clock timers
func NewMapper(session *Session, sched Scheduler, seed int64) *Mapper {
	if sched == nil {
		sched = NewRealScheduler()
	}
	rate := session.SampleRate()

	m := &Mapper{
		session: session,
		sched:   sched,
		rate:    rate,
	}
	m.channels[ChannelFizz] = newFizzChannel(rate, seed)
	m.channels[ChannelHiss] = newHissChannel(rate, seed+1)
	m.channels[ChannelCrackle] = newCrackleChannel(rate, seed+2)

	session.OnAcquire(func(mx *beep.Mixer) {
		for _, ch := range m.channels {
			ch.attach(mx)
		}
	})
	return m
}

// Update applies one descriptor to every channel
func (m *Mapper) Update(state effect.Descriptor) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.updateFizz(state.Bubbles)
	m.gate(m.channels[ChannelHiss], state.Smoke)
	m.updateCrackle(state.Sparkles)

	if state.Explosion > 0 {
		m.hitLocked(state.Explosion)
	}
}

func (m *Mapper) updateFizz(bubbles float64) {
	ch := m.channels[ChannelFizz]
	if bubbles <= 0 {
		m.silence(ch, parameter.SilenceRamp)
		return
	}

	lfo := parameter.FizzLFOHz
	if bubbles > parameter.FizzBusyThreshold {
		lfo = parameter.FizzLFOBusyHz
	}
	target := dbToGain(ch.targetDb(bubbles))
	m.session.Run(ch.kind.String(), true, func(*beep.Mixer) {
		ch.filter.setRate(lfo)
		ch.gain.rampTo(target, ch.attack)
	})
}

// gate ramps a continuous channel toward the level for v, or to silence when v is zero
func (m *Mapper) gate(ch *channel, v float64) {
	if v <= 0 {
		m.silence(ch, parameter.SilenceRamp)
		return
	}
	target := dbToGain(ch.targetDb(v))
	m.session.Run(ch.kind.String(), true, func(*beep.Mixer) {
		ch.gain.rampTo(target, ch.attack)
	})
}

func (m *Mapper) updateCrackle(sparkles int) {
	ch := m.channels[ChannelCrackle]

	if m.crackleMute != nil {
		m.crackleMute.Stop()
		m.crackleMute = nil
	}
	m.crackleBurst++

	if sparkles <= 0 {
		m.silence(ch, parameter.SilenceRamp)
		return
	}

	m.gate(ch, float64(sparkles))

	burst := m.crackleBurst
	hold := parameter.CrackleHoldBase + time.Duration(sparkles)*parameter.CrackleHoldPerSparkle
	m.crackleMute = m.sched.AfterFunc(hold, func() {
		m.endCrackle(burst)
	})
}

// endCrackle releases a crackle burst unless a newer one replaced it
func (m *Mapper) endCrackle(burst uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if burst != m.crackleBurst {
		return
	}
	m.crackleMute = nil
	m.silence(m.channels[ChannelCrackle], parameter.CrackleReleaseRamp)
}

func (m *Mapper) silence(ch *channel, d time.Duration) {
	m.session.Run(ch.kind.String(), false, func(*beep.Mixer) {
		ch.gain.rampTo(0, d)
	})
}

func (m *Mapper) hitLocked(explosion float64) {
	m.hits++
	gain := dbToGain(MapRange(explosion, 0, parameter.ExplosionMax, parameter.ExplosionMinDb, parameter.ExplosionMaxDb))
	rate := m.rate
	m.session.Run("explosion", true, func(mx *beep.Mixer) {
		mx.Add(NewMembrane(rate, gain))
	})
}

// Hits returns how many explosion hits were requested
func (m *Mapper) Hits() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits
}

// Close cancels any pending crackle release
func (m *Mapper) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.crackleMute != nil {
		m.crackleMute.Stop()
		m.crackleMute = nil
	}
	m.crackleBurst++
}
