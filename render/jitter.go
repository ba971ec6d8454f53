package render

import (
	"sync"
	"time"
)

// Jitter supplies per-instance randomness in [0, 1)
type Jitter interface {
	Float64() float64
}

// FastJitter is a xorshift64 source, safe for concurrent use
type FastJitter struct {
	mu    sync.Mutex
	state uint64
}

// NewFastJitter seeds a xorshift source; zero is remapped since it is a fixed point
func NewFastJitter(seed uint64) *FastJitter {
	if seed == 0 {
		seed = 1
	}
	return &FastJitter{state: seed}
}

func (r *FastJitter) next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Float64 returns a uniform value in [0, 1) from the top 53 bits
func (r *FastJitter) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return float64(r.next()>>11) / (1 << 53)
}

// between maps one jitter draw onto [lo, hi)
func between(j Jitter, lo, hi float64) float64 {
	return lo + j.Float64()*(hi-lo)
}

func betweenDuration(j Jitter, lo, hi time.Duration) time.Duration {
	return lo + time.Duration(j.Float64()*float64(hi-lo))
}
