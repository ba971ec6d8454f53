package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"
)

// TestMembraneLength verifies a hit lasts gate plus release and then ends
func TestMembraneLength(t *testing.T) {
	rate := beep.SampleRate(1000)
	hit := NewMembrane(rate, 1)
	want := rate.N(MembraneDuration())

	buf := make([][2]float64, 256)
	total := 0
	for {
		n, ok := hit.Stream(buf)
		total += n
		if !ok {
			break
		}
		if total > want*2 {
			t.Fatal("Membrane never ended")
		}
	}

	if total != want {
		t.Errorf("Expected %d samples, got %d", want, total)
	}
}

// TestMembraneBounded verifies the envelope never exceeds the requested gain
func TestMembraneBounded(t *testing.T) {
	rate := beep.SampleRate(8000)
	gain := 0.3
	hit := NewMembrane(rate, gain)

	buf := make([][2]float64, rate.N(MembraneDuration()))
	n, _ := hit.Stream(buf)

	var peak float64
	for _, s := range buf[:n] {
		peak = math.Max(peak, math.Abs(s[0]))
	}
	if peak > gain+1e-9 {
		t.Errorf("Expected peak <= %f, got %f", gain, peak)
	}
	if peak == 0 {
		t.Error("Expected audible hit")
	}
	if last := math.Abs(buf[n-1][0]); last > gain*0.01 {
		t.Errorf("Expected release to reach near silence, got %f", last)
	}
}

// TestMembraneIndependent verifies overlapping hits share no state
func TestMembraneIndependent(t *testing.T) {
	rate := beep.SampleRate(1000)
	a := NewMembrane(rate, 1)
	b := NewMembrane(rate, 1)

	bufA := make([][2]float64, 100)
	a.Stream(bufA)
	bufB := make([][2]float64, 100)
	b.Stream(bufB)

	for i := range bufA {
		if bufA[i] != bufB[i] {
			t.Fatalf("Expected identical fresh hits, diverged at %d", i)
		}
	}
}
