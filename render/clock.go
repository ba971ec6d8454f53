package render

import (
	"sync"
	"time"
)

// Clock drives animation time for a Stage: bubble rise, sparkle twinkle and explosion progress
type Clock interface {
	Now() time.Time
}

// TimeProvider is the wall clock used by the interactive stage
type TimeProvider struct{}

func NewTimeProvider() *TimeProvider {
	return &TimeProvider{}
}

func (p *TimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a stage clock that only moves when told to
// Tests step it past explosion durations and status timeouts
type MockTimeProvider struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward; a one-shot is torn down on the first Scene past its end
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}
