package lab

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lixenwraith/vi-beaker/effect"
	"github.com/lixenwraith/vi-beaker/parameter"
	"github.com/lixenwraith/vi-beaker/render"
	"github.com/lixenwraith/vi-beaker/trigger"
)

var (
	ErrBenchFull       = errors.New("bench is full")
	ErrNotOnBench      = errors.New("substance not on bench")
	ErrReorderMismatch = errors.New("reorder ids do not match bench")
)

// Observer receives every frame the bench produces
// Observers run on the mutating goroutine and must not mutate the bench
type Observer interface {
	Observe(frame render.Frame)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(frame render.Frame)

func (f ObserverFunc) Observe(frame render.Frame) { f(frame) }

// Bench is one session's pipeline: sources and override in, frames out
//
// Every mutation recomputes the combined state synchronously, runs the retrigger
// controller and notifies observers in registration order. A mutex serializes
// writers; frames are delivered in mutation order.
type Bench struct {
	mu       sync.Mutex
	notifyMu sync.Mutex

	sources  []effect.Source
	override *effect.Descriptor
	capacity int
	steps    int

	controller *trigger.Controller
	observers  []Observer
	frame      render.Frame
}

// NewBench creates an empty bench; a nil controller gets a fresh one
func NewBench(controller *trigger.Controller) *Bench {
	if controller == nil {
		controller = trigger.NewController()
	}
	return &Bench{
		capacity:   parameter.BenchCapacity,
		steps:      parameter.FillSteps,
		controller: controller,
		frame:      render.EmptyFrame(),
	}
}

// Controller returns the retrigger controller driving this bench
func (b *Bench) Controller() *trigger.Controller {
	return b.controller
}

// AddObserver registers o for future frames
func (b *Bench) AddObserver(o Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, o)
}

// Add puts a source on the bench; an active override is dropped since the mix changed
func (b *Bench) Add(src effect.Source) error {
	b.mu.Lock()
	if len(b.sources) >= b.capacity {
		b.mu.Unlock()
		return fmt.Errorf("%w: capacity %d", ErrBenchFull, b.capacity)
	}
	b.sources = append(b.sources, src)
	b.override = nil
	b.commitLocked(false)
	return nil
}

// Remove takes the first source with id off the bench
func (b *Bench) Remove(id string) error {
	b.mu.Lock()
	for i := range b.sources {
		if b.sources[i].ID == id {
			b.sources = append(b.sources[:i], b.sources[i+1:]...)
			b.override = nil
			b.commitLocked(false)
			return nil
		}
	}
	b.mu.Unlock()
	return fmt.Errorf("%w: %q", ErrNotOnBench, id)
}

// Reorder rearranges sources to match ids, which must be a permutation of the bench
// Order carries no meaning; observers still get a frame
func (b *Bench) Reorder(ids []string) error {
	b.mu.Lock()
	if len(ids) != len(b.sources) {
		b.mu.Unlock()
		return fmt.Errorf("%w: %d ids for %d sources", ErrReorderMismatch, len(ids), len(b.sources))
	}

	pool := make(map[string][]effect.Source, len(b.sources))
	for _, s := range b.sources {
		pool[s.ID] = append(pool[s.ID], s)
	}
	reordered := make([]effect.Source, 0, len(ids))
	for _, id := range ids {
		q := pool[id]
		if len(q) == 0 {
			b.mu.Unlock()
			return fmt.Errorf("%w: %q", ErrReorderMismatch, id)
		}
		reordered = append(reordered, q[0])
		pool[id] = q[1:]
	}

	b.sources = reordered
	b.commitLocked(false)
	return nil
}

// Clear empties the bench and drops any override
func (b *Bench) Clear() {
	b.mu.Lock()
	b.sources = nil
	b.override = nil
	b.commitLocked(false)
}

// ApplyOverride installs an authoritative state; this is the only update that can retrigger
func (b *Bench) ApplyOverride(d effect.Descriptor) {
	b.mu.Lock()
	o := effect.Clamp(d)
	b.override = &o
	b.commitLocked(true)
}

// ClearOverride returns to composing the sources
func (b *Bench) ClearOverride() {
	b.mu.Lock()
	b.override = nil
	b.commitLocked(false)
}

// Snapshot returns the last frame
func (b *Bench) Snapshot() render.Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frame
}

// Sources returns a copy of the bench contents in order
func (b *Bench) Sources() []effect.Source {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]effect.Source, len(b.sources))
	copy(out, b.sources)
	return out
}

// IDs returns the source ids in bench order
func (b *Bench) IDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]string, len(b.sources))
	for i, s := range b.sources {
		ids[i] = s.ID
	}
	return ids
}

// Override returns the active override, if any
func (b *Bench) Override() (effect.Descriptor, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.override == nil {
		return effect.Descriptor{}, false
	}
	return *b.override, true
}

// commitLocked recomputes the frame, releases mu and notifies observers
// notifyMu is taken before mu is released so frames leave in mutation order
func (b *Bench) commitLocked(overrideDriven bool) {
	state, fill := effect.Resolve(b.sources, b.override, b.capacity, b.steps)
	id, _ := b.controller.OnStateUpdate(state, overrideDriven)

	b.frame = render.Frame{
		State:       state,
		Fill:        fill,
		RetriggerID: id,
		Sources:     len(b.sources),
	}
	frame := b.frame
	observers := make([]Observer, len(b.observers))
	copy(observers, b.observers)

	b.notifyMu.Lock()
	b.mu.Unlock()
	defer b.notifyMu.Unlock()

	for _, o := range observers {
		o.Observe(frame)
	}
}
