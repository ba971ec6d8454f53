package audio

import (
	"log"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Session owns the live audio resources for one lab session
//
// Nothing is opened until the first genuinely audible request after Permit. Until the
// host permits sound (typically the first user gesture) requests are deferred, keeping
// only the latest request per key, and flushed on Permit. Stop releases everything and
// is safe to call any number of times, started or not.
type Session struct {
	mu  sync.Mutex
	cfg *Config
	out Output

	started   bool
	permitted bool
	acquired  bool
	silent    bool // backend failed; requests are accepted and discarded
	muted     bool

	mixer  *beep.Mixer
	master *effects.Volume

	pending      map[string]request
	pendingOrder []string

	hooks []func(m *beep.Mixer)
}

type request struct {
	audible bool
	fn      func(m *beep.Mixer)
}

// NewSession creates a stopped session; a nil cfg uses DefaultConfig
func NewSession(cfg *Config, out Output) *Session {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if out == nil {
		out = NewSpeakerOutput()
	}
	return &Session{
		cfg:     cfg,
		out:     out,
		muted:   !cfg.Enabled,
		pending: make(map[string]request),
	}
}

// OnAcquire registers a hook run (under the output lock) each time live resources are acquired
// Channels use it to attach their streamers to the fresh mixer
func (s *Session) OnAcquire(fn func(m *beep.Mixer)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// Start opens the session for requests; resources are still acquired lazily
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = true
	return nil
}

// Permit records that the host now allows sound and flushes deferred requests
func (s *Session) Permit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.permitted {
		return
	}
	s.permitted = true

	order := s.pendingOrder
	pending := s.pending
	s.pendingOrder = nil
	s.pending = make(map[string]request)

	for _, key := range order {
		s.runLocked(pending[key])
	}
}

// Run applies fn to the live mixer under the output lock
//
// key groups requests so only the latest per key survives deferral. audible=false marks a
// request that only lowers output; it never causes resources to be acquired.
func (s *Session) Run(key string, audible bool, fn func(m *beep.Mixer)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	req := request{audible: audible, fn: fn}
	if !s.permitted {
		if _, ok := s.pending[key]; !ok {
			s.pendingOrder = append(s.pendingOrder, key)
		}
		s.pending[key] = req
		return
	}
	s.runLocked(req)
}

func (s *Session) runLocked(req request) {
	if !s.acquired {
		if !req.audible || s.silent {
			return
		}
		if !s.acquireLocked() {
			return
		}
	}

	s.out.Lock()
	req.fn(s.mixer)
	s.out.Unlock()
}

// acquireLocked opens the output device and attaches the master chain
// Backend failure switches to silent mode; it is logged, never returned
func (s *Session) acquireLocked() bool {
	rate := beep.SampleRate(s.cfg.SampleRate)
	if err := s.out.Init(rate, rate.N(s.cfg.Buffer())); err != nil {
		log.Printf("[Audio] output unavailable, continuing silent: %v", err)
		s.silent = true
		return false
	}

	s.mixer = &beep.Mixer{}
	s.master = newVolume(s.mixer, s.cfg.Volume())
	setVolume(s.master, s.cfg.Volume(), s.muted)

	s.out.Lock()
	for _, hook := range s.hooks {
		hook(s.mixer)
	}
	s.out.Unlock()

	s.out.Play(s.master)
	s.acquired = true
	return true
}

// Stop releases live resources and drops deferred requests
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.acquired {
		s.out.Lock()
		s.mixer.Clear()
		s.out.Unlock()
		s.out.Close()
	}

	s.mixer = nil
	s.master = nil
	s.acquired = false
	s.started = false
	s.permitted = false
	s.silent = false
	s.pending = make(map[string]request)
	s.pendingOrder = nil
}

// SetVolume updates master volume in [0, 1]
func (s *Session) SetVolume(vol float64) {
	if vol < 0 {
		vol = 0
	} else if vol > 1 {
		vol = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.VolumePercent = int(vol*100 + 0.5)
	if s.acquired {
		s.out.Lock()
		setVolume(s.master, s.cfg.Volume(), s.muted)
		s.out.Unlock()
	}
}

// ToggleMute flips mute, returns true if sound is now enabled
func (s *Session) ToggleMute() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.muted = !s.muted
	if s.acquired {
		s.out.Lock()
		setVolume(s.master, s.cfg.Volume(), s.muted)
		s.out.Unlock()
	}
	return !s.muted
}

// Volume returns the master volume in [0, 1]
func (s *Session) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Volume()
}

// IsMuted returns current mute state
func (s *Session) IsMuted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// IsAcquired reports whether live output resources are held
func (s *Session) IsAcquired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acquired
}

// IsPermitted reports whether the host has allowed sound
func (s *Session) IsPermitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.permitted
}

// IsSilent reports whether the backend failed and output is discarded
func (s *Session) IsSilent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.silent
}

// SampleRate returns the configured output rate
func (s *Session) SampleRate() beep.SampleRate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return beep.SampleRate(s.cfg.SampleRate)
}
