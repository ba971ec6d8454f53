package render

import (
	"testing"
)

// seqJitter replays a fixed sequence, wrapping around
type seqJitter struct {
	vals []float64
	i    int
}

func (s *seqJitter) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

// TestFastJitterRange verifies draws stay in [0, 1)
func TestFastJitterRange(t *testing.T) {
	j := NewFastJitter(12345)
	for i := 0; i < 10000; i++ {
		v := j.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Draw %d out of range: %f", i, v)
		}
	}
}

// TestFastJitterDeterministic verifies equal seeds give equal sequences
func TestFastJitterDeterministic(t *testing.T) {
	a := NewFastJitter(99)
	b := NewFastJitter(99)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("Sequences diverged at %d", i)
		}
	}
}

// TestFastJitterZeroSeed verifies a zero seed does not get stuck at zero
func TestFastJitterZeroSeed(t *testing.T) {
	j := NewFastJitter(0)
	if j.Float64() == 0 && j.Float64() == 0 {
		t.Error("Expected zero seed to be remapped")
	}
}
