package render

import (
	"sync"
	"time"

	"github.com/lixenwraith/vi-beaker/trigger"
)

// Stage holds the renderer-side state between frames: the current scene and the mounted one-shot
//
// The explosion is mounted from the replay machine (or from a frame whose retrigger id is new)
// and torn down when it finishes, at which point the replay is completed.
type Stage struct {
	mu     sync.Mutex
	jitter Jitter
	clock  Clock
	replay *trigger.Replay
	cancel func()
	epoch  time.Time

	frame     Frame
	scene     Scene
	explosion *Explosion
	mounted   uint64 // highest retrigger id mounted so far
}

// NewStage creates a stage subscribed to replay; replay may be nil
func NewStage(replay *trigger.Replay, jitter Jitter, clock Clock) *Stage {
	if jitter == nil {
		jitter = NewFastJitter(uint64(time.Now().UnixNano()))
	}
	if clock == nil {
		clock = NewTimeProvider()
	}

	s := &Stage{
		jitter: jitter,
		clock:  clock,
		replay: replay,
		frame:  EmptyFrame(),
	}
	s.epoch = clock.Now()
	if replay != nil {
		s.cancel = replay.Subscribe(s.onReplay)
	}
	return s
}

func (s *Stage) onReplay(state trigger.State) {
	if state.Phase != trigger.PhaseTriggered {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mountLocked(state.ID, state.Intensity)
}

// mountLocked replaces any in-flight one-shot; ids at or below the last mounted are ignored
func (s *Stage) mountLocked(id uint64, intensity float64) {
	if id == 0 || id <= s.mounted {
		return
	}
	s.mounted = id
	s.explosion = NewExplosion(id, intensity, s.clock.Now())
}

// Observe rebuilds the scene for a new frame
func (s *Stage) Observe(frame Frame) {
	scene := Build(frame, s.jitter)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.frame = frame
	s.scene = scene
	if frame.State.Explosion > 0 {
		s.mountLocked(frame.RetriggerID, frame.State.Explosion)
	}
}

// Frame returns the last observed frame
func (s *Stage) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// Scene returns the scene to draw at the current clock time
// A finished one-shot is torn down here and its replay completed
func (s *Stage) Scene() Scene {
	now := s.clock.Now()

	s.mu.Lock()
	scene := s.scene
	var completed uint64
	if s.explosion != nil && s.explosion.Done(now) {
		completed = s.explosion.ID
		s.explosion = nil
	}
	scene.Explosion = s.explosion
	scene.Now = now
	scene.Elapsed = now.Sub(s.epoch)
	s.mu.Unlock()

	if completed != 0 && s.replay != nil {
		s.replay.Complete(completed)
	}
	return scene
}

// Close unsubscribes from the replay machine
func (s *Stage) Close() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
