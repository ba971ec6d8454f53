package trigger

import (
	"sync"
)

// Phase is the replay state of the one-shot explosion
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTriggered
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseTriggered:
		return "Triggered"
	default:
		return "Unknown"
	}
}

// State is a snapshot of the replay machine
// ID and Intensity are meaningful only while Phase is PhaseTriggered
type State struct {
	Phase     Phase
	ID        uint64
	Intensity float64
}

// Listener receives every transition of the replay machine
type Listener func(State)

// Replay is the Idle -> Triggered(id) -> Idle machine renderers subscribe to
// It carries the "replay this" signal without assuming how a renderer restarts an animation
type Replay struct {
	mu        sync.Mutex
	state     State
	lastFired uint64
	nextSub   int
	listeners map[int]Listener
	order     []int
}

// NewReplay creates an idle replay machine
func NewReplay() *Replay {
	return &Replay{
		listeners: make(map[int]Listener),
	}
}

// State returns the current snapshot
func (r *Replay) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Fire enters Triggered(id), superseding any one-shot still in flight
// IDs must increase; a stale or repeated id is ignored and Fire returns false
func (r *Replay) Fire(id uint64, intensity float64) bool {
	r.mu.Lock()
	if id <= r.lastFired {
		r.mu.Unlock()
		return false
	}
	r.lastFired = id
	r.state = State{Phase: PhaseTriggered, ID: id, Intensity: intensity}
	s, ls := r.state, r.snapshotListenersLocked()
	r.mu.Unlock()

	notify(ls, s)
	return true
}

// Complete returns to Idle if id is still the active one-shot
// A completion from a superseded one-shot is ignored; returns whether the transition happened
func (r *Replay) Complete(id uint64) bool {
	r.mu.Lock()
	if r.state.Phase != PhaseTriggered || r.state.ID != id {
		r.mu.Unlock()
		return false
	}
	r.state = State{Phase: PhaseIdle}
	s, ls := r.state, r.snapshotListenersLocked()
	r.mu.Unlock()

	notify(ls, s)
	return true
}

// Subscribe registers fn for future transitions; the returned func unsubscribes
func (r *Replay) Subscribe(fn Listener) (cancel func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextSub
	r.nextSub++
	r.listeners[id] = fn
	r.order = append(r.order, id)

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if _, ok := r.listeners[id]; !ok {
			return
		}
		delete(r.listeners, id)
		for i, v := range r.order {
			if v == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
}

func (r *Replay) snapshotListenersLocked() []Listener {
	ls := make([]Listener, 0, len(r.order))
	for _, id := range r.order {
		ls = append(ls, r.listeners[id])
	}
	return ls
}

// notify runs outside the lock so listeners may call back into the machine
func notify(ls []Listener, s State) {
	for _, fn := range ls {
		fn(s)
	}
}
