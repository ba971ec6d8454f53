package trigger

import (
	"sync"

	"github.com/lixenwraith/vi-beaker/effect"
)

// Controller owns the session's RetriggerID
//
// The ID advances only when an authoritative (override-driven) update carries an
// explosion. Re-observing a nonzero summed explosion while the user edits the bench
// does not replay anything. The ID never decreases.
type Controller struct {
	mu     sync.Mutex
	id     uint64
	replay *Replay
}

// NewController creates a controller at RetriggerID 0 with its own replay machine
func NewController() *Controller {
	return &Controller{replay: NewReplay()}
}

// OnStateUpdate records a new combined state and reports the current ID
// fired is true when this update advanced the ID
func (c *Controller) OnStateUpdate(state effect.Descriptor, overrideDriven bool) (id uint64, fired bool) {
	c.mu.Lock()
	if !overrideDriven || !(state.Explosion > 0) {
		id = c.id
		c.mu.Unlock()
		return id, false
	}
	c.id++
	id = c.id
	c.mu.Unlock()

	// Fired outside the lock; replay listeners may read ID()
	c.replay.Fire(id, state.Explosion)
	return id, true
}

// ID returns the current RetriggerID
func (c *Controller) ID() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

// Replay returns the machine renderers subscribe to
func (c *Controller) Replay() *Replay {
	return c.replay
}
