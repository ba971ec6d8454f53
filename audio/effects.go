package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// noise generates an endless mono noise stream of the given color
type noise struct {
	color NoiseColor
	rng   *rand.Rand

	// Pink filter state (Paul Kellet, economy)
	b0, b1, b2 float64

	// Brown integrator
	last float64
}

// NewNoise creates an endless noise streamer seeded for reproducibility
func NewNoise(color NoiseColor, seed int64) beep.Streamer {
	return &noise{
		color: color,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		white := n.rng.Float64()*2 - 1

		var val float64
		switch n.color {
		case NoiseWhite:
			val = white
		case NoisePink:
			n.b0 = 0.99765*n.b0 + white*0.0990460
			n.b1 = 0.96300*n.b1 + white*0.2965164
			n.b2 = 0.57000*n.b2 + white*1.0526913
			val = (n.b0 + n.b1 + n.b2 + white*0.1848) * 0.2
		case NoiseBrown:
			n.last = (n.last + 0.02*white) / 1.02
			val = n.last * 3.5
		}

		if val > 1 {
			val = 1
		} else if val < -1 {
			val = -1
		}

		samples[i][0] = val
		samples[i][1] = val
	}
	return len(samples), true
}

func (n *noise) Err() error { return nil }

// biquad is a second-order IIR filter (RBJ cookbook coefficients), run per channel
type biquad struct {
	streamer beep.Streamer
	rate     beep.SampleRate

	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     [2]float64
}

func newBandpass(s beep.Streamer, rate beep.SampleRate, centerHz, q float64) *biquad {
	f := &biquad{streamer: s, rate: rate}
	f.setBandpass(centerHz, q)
	return f
}

func newLowpass(s beep.Streamer, rate beep.SampleRate, cutoffHz, q float64) *biquad {
	f := &biquad{streamer: s, rate: rate}
	f.setLowpass(cutoffHz, q)
	return f
}

func (f *biquad) setBandpass(centerHz, q float64) {
	w0 := 2 * math.Pi * centerHz / float64(f.rate)
	alpha := math.Sin(w0) / (2 * q)
	a0 := 1 + alpha

	f.b0 = alpha / a0
	f.b1 = 0
	f.b2 = -alpha / a0
	f.a1 = -2 * math.Cos(w0) / a0
	f.a2 = (1 - alpha) / a0
}

func (f *biquad) setLowpass(cutoffHz, q float64) {
	// Keep the cutoff below Nyquist
	nyquist := float64(f.rate) / 2
	if cutoffHz > nyquist*0.95 {
		cutoffHz = nyquist * 0.95
	}
	w0 := 2 * math.Pi * cutoffHz / float64(f.rate)
	alpha := math.Sin(w0) / (2 * q)
	cosW := math.Cos(w0)
	a0 := 1 + alpha

	f.b0 = (1 - cosW) / 2 / a0
	f.b1 = (1 - cosW) / a0
	f.b2 = (1 - cosW) / 2 / a0
	f.a1 = -2 * cosW / a0
	f.a2 = (1 - alpha) / a0
}

func (f *biquad) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		for c := 0; c < 2; c++ {
			x := samples[i][c]
			y := f.b0*x + f.b1*f.x1[c] + f.b2*f.x2[c] - f.a1*f.y1[c] - f.a2*f.y2[c]
			f.x2[c], f.x1[c] = f.x1[c], x
			f.y2[c], f.y1[c] = f.y1[c], y
			samples[i][c] = y
		}
	}
	return n, ok
}

func (f *biquad) Err() error { return f.streamer.Err() }

// autoFilter sweeps a low-pass cutoff with a sine LFO between base and base*2^octaves
type autoFilter struct {
	lp      *biquad
	baseHz  float64
	octaves float64
	rateHz  float64
	phase   float64
	rate    beep.SampleRate

	// Coefficients are recomputed every controlStep samples rather than per sample
	controlStep int
	counter     int
}

func newAutoFilter(s beep.Streamer, rate beep.SampleRate, baseHz, octaves, lfoHz float64) *autoFilter {
	return &autoFilter{
		lp:          newLowpass(s, rate, baseHz, 1),
		baseHz:      baseHz,
		octaves:     octaves,
		rateHz:      lfoHz,
		rate:        rate,
		controlStep: 64,
	}
}

// setRate changes LFO speed; caller holds the output lock
func (a *autoFilter) setRate(hz float64) {
	a.rateHz = hz
}

func (a *autoFilter) Stream(samples [][2]float64) (int, bool) {
	total := 0
	for total < len(samples) {
		if a.counter == 0 {
			// LFO in [0,1] -> cutoff in [base, base*2^octaves]
			lfo := 0.5 + 0.5*math.Sin(2*math.Pi*a.phase)
			a.lp.setLowpass(a.baseHz*math.Pow(2, a.octaves*lfo), 1)
		}

		chunk := a.controlStep - a.counter
		if rem := len(samples) - total; chunk > rem {
			chunk = rem
		}

		n, ok := a.lp.Stream(samples[total : total+chunk])
		total += n
		a.counter = (a.counter + n) % a.controlStep
		a.phase += a.rateHz * float64(n) / float64(a.rate)
		a.phase -= math.Floor(a.phase)

		if !ok {
			return total, total > 0
		}
		if n < chunk {
			return total, true
		}
	}
	return total, true
}

func (a *autoFilter) Err() error { return a.lp.Err() }

// rampGain multiplies a stream by a gain that glides linearly toward its target
// Targets are changed under the output lock, never mid-buffer
type rampGain struct {
	streamer beep.Streamer
	rate     beep.SampleRate
	current  float64
	target   float64
	step     float64
}

func newRampGain(s beep.Streamer, rate beep.SampleRate) *rampGain {
	return &rampGain{streamer: s, rate: rate}
}

// rampTo glides from the current gain to target over d; d <= 0 is an instant set
func (g *rampGain) rampTo(target float64, d time.Duration) {
	g.target = target
	n := g.rate.N(d)
	if n <= 0 {
		g.current = target
		g.step = 0
		return
	}
	g.step = math.Abs(target-g.current) / float64(n)
}

// reset silences immediately, used when live resources are re-acquired
func (g *rampGain) reset() {
	g.current, g.target, g.step = 0, 0, 0
}

func (g *rampGain) Stream(samples [][2]float64) (int, bool) {
	n, ok := g.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if g.current != g.target {
			if g.current < g.target {
				g.current = math.Min(g.current+g.step, g.target)
			} else {
				g.current = math.Max(g.current-g.step, g.target)
			}
		}
		samples[i][0] *= g.current
		samples[i][1] *= g.current
	}
	return n, ok
}

func (g *rampGain) Err() error { return g.streamer.Err() }

// dbToGain converts decibels to linear amplitude; -Inf is silence
func dbToGain(db float64) float64 {
	if math.IsInf(db, -1) {
		return 0
	}
	return math.Pow(10, db/20)
}

// MapRange linearly maps v from [inMin, inMax] to [outMin, outMax]
// Values are not clamped; callers pass in-domain scalars
func MapRange(v, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return (v-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// newVolume wraps s in a volume effect
// math.Log2(0) is -Inf, so zero volume is handled by making it silent
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// setVolume updates an existing volume effect in place; caller holds the output lock
func setVolume(v *effects.Volume, vol float64, muted bool) {
	if vol <= 0 || muted {
		v.Silent = true
		return
	}
	v.Silent = false
	v.Volume = math.Log2(vol)
}
