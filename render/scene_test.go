package render

import (
	"testing"
	"time"

	"github.com/lixenwraith/vi-beaker/effect"
	"github.com/lixenwraith/vi-beaker/parameter"
)

func frameOf(d effect.Descriptor, fill effect.FillIndex, sources int) Frame {
	return Frame{State: d, Fill: fill, Sources: sources}
}

// TestBuildIdle verifies zero channels produce no layers at all
func TestBuildIdle(t *testing.T) {
	scene := Build(frameOf(effect.Baseline(), 3, 1), NewFastJitter(1))

	if scene.Bubbles != nil || scene.Sparkles != nil {
		t.Errorf("Expected no particle layers, got %d bubbles %d sparkles", len(scene.Bubbles), len(scene.Sparkles))
	}
	if scene.Smoke != nil || scene.Glow != nil || scene.Explosion != nil {
		t.Error("Expected no smoke, glow or explosion layer")
	}
	if scene.Animating() {
		t.Error("Expected idle scene to be static")
	}
	if scene.Liquid == nil {
		t.Fatal("Expected liquid with one source")
	}
	if scene.Liquid.Color != effect.BaselineColor() {
		t.Errorf("Expected baseline color, got %s", scene.Liquid.Color)
	}
}

// TestBuildEmptyBenchHidesLiquid verifies no liquid is drawn without sources
func TestBuildEmptyBenchHidesLiquid(t *testing.T) {
	scene := Build(EmptyFrame(), nil)
	if scene.Liquid != nil {
		t.Error("Expected no liquid for an empty bench")
	}
}

// TestShapeFor verifies shape selection is monotonic, clamped, and flat at the top
func TestShapeFor(t *testing.T) {
	prev := -1.0
	for i := 0; i <= parameter.FillSteps; i++ {
		s := ShapeFor(effect.FillIndex(i))
		if s.Index != effect.FillIndex(i) {
			t.Errorf("Expected index %d, got %d", i, s.Index)
		}
		if s.Level < prev {
			t.Errorf("Expected non-decreasing level at %d: %f < %f", i, s.Level, prev)
		}
		prev = s.Level
	}

	if ShapeFor(0).Level != 0 {
		t.Error("Expected empty shape at index 0")
	}
	top := ShapeFor(10).Level
	if ShapeFor(11).Level != top || ShapeFor(12).Level != top {
		t.Error("Expected shapes 10 through 12 identical")
	}
	if ShapeFor(40) != ShapeFor(12) || ShapeFor(-3) != ShapeFor(0) {
		t.Error("Expected out-of-range indices clamped")
	}
}

// TestBuildBubbles verifies floor(bubbles) instances with staggered starts and jittered fields
func TestBuildBubbles(t *testing.T) {
	d := effect.Baseline()
	d.Bubbles = 3.7
	scene := Build(frameOf(d, 5, 2), &seqJitter{vals: []float64{0, 0.5, 0.99, 0.25}})

	if len(scene.Bubbles) != 3 {
		t.Fatalf("Expected 3 bubbles, got %d", len(scene.Bubbles))
	}
	for i, b := range scene.Bubbles {
		if want := time.Duration(i) * parameter.BubbleStagger; b.Offset != want {
			t.Errorf("Bubble %d: expected offset %v, got %v", i, want, b.Offset)
		}
		if b.Rise < parameter.BubbleRiseMin || b.Rise >= parameter.BubbleRiseMax {
			t.Errorf("Bubble %d: rise %v out of range", i, b.Rise)
		}
		if b.Radius < parameter.BubbleRadiusMin || b.Radius >= parameter.BubbleRadiusMax {
			t.Errorf("Bubble %d: radius %f out of range", i, b.Radius)
		}
		if b.Column < 0.1 || b.Column >= 0.9 {
			t.Errorf("Bubble %d: column %f out of range", i, b.Column)
		}
	}
	if scene.Bubbles[0].Column == scene.Bubbles[1].Column {
		t.Error("Expected independent jitter per bubble")
	}
}

// TestBubbleHeight verifies a bubble waits for its offset and then loops
func TestBubbleHeight(t *testing.T) {
	b := Bubble{Rise: 2 * time.Second, Offset: 600 * time.Millisecond}

	if _, ok := b.Height(500 * time.Millisecond); ok {
		t.Error("Expected bubble hidden before its offset")
	}
	if h, ok := b.Height(1600 * time.Millisecond); !ok || h != 0.5 {
		t.Errorf("Expected half-way, got %f ok=%v", h, ok)
	}
	if h, _ := b.Height(2600 * time.Millisecond); h != 0 {
		t.Errorf("Expected loop back to bottom, got %f", h)
	}
}

// TestBuildSmoke verifies opacity follows smoke and plumes use fixed offsets and periods
func TestBuildSmoke(t *testing.T) {
	d := effect.Baseline()
	d.Smoke = 0.4
	scene := Build(frameOf(d, 1, 1), NewFastJitter(3))

	if scene.Smoke == nil {
		t.Fatal("Expected smoke layer")
	}
	if scene.Smoke.Opacity != 0.4 {
		t.Errorf("Expected opacity 0.4, got %f", scene.Smoke.Opacity)
	}

	offsets := []time.Duration{0, -time.Second, -2500 * time.Millisecond}
	periods := []time.Duration{5 * time.Second, 6 * time.Second, 4 * time.Second}
	for i, p := range scene.Smoke.Plumes {
		if p.Offset != offsets[i] || p.Period != periods[i] {
			t.Errorf("Plume %d: expected %v/%v, got %v/%v", i, offsets[i], periods[i], p.Offset, p.Period)
		}
	}

	// A negative offset means the plume is already part-way up at time zero
	if h := scene.Smoke.Plumes[1].Height(0); h <= 0 {
		t.Errorf("Expected pre-advanced plume, got %f", h)
	}
}

// TestBuildSparkles verifies one independent instance per sparkle
func TestBuildSparkles(t *testing.T) {
	d := effect.Baseline()
	d.Sparkles = 25
	scene := Build(frameOf(d, 1, 1), NewFastJitter(17))

	if len(scene.Sparkles) != 25 {
		t.Fatalf("Expected 25 sparkles, got %d", len(scene.Sparkles))
	}

	delays := make(map[time.Duration]bool)
	for i, s := range scene.Sparkles {
		if s.Delay < 0 || s.Delay >= parameter.SparkleDelayMax {
			t.Errorf("Sparkle %d: delay %v out of range", i, s.Delay)
		}
		if s.Period < parameter.SparklePeriodMin || s.Period >= parameter.SparklePeriodMax {
			t.Errorf("Sparkle %d: period %v out of range", i, s.Period)
		}
		delays[s.Delay] = true
	}
	if len(delays) < 2 {
		t.Error("Expected sparkles not to share a clock")
	}
}

// TestSparkleLit verifies the twinkle cycle
func TestSparkleLit(t *testing.T) {
	s := Sparkle{Delay: time.Second, Period: time.Second}

	if s.Lit(500 * time.Millisecond) {
		t.Error("Expected dark before delay")
	}
	if !s.Lit(1200 * time.Millisecond) {
		t.Error("Expected lit in first half of cycle")
	}
	if s.Lit(1700 * time.Millisecond) {
		t.Error("Expected dark in second half of cycle")
	}
}

// TestBuildGlow verifies the blur radius scales with glow and takes the liquid color
func TestBuildGlow(t *testing.T) {
	d := effect.Baseline()
	d.Glow = 1.5
	d.Color = effect.MustParseHex("#00ff00")
	scene := Build(frameOf(d, 1, 1), nil)

	if scene.Glow == nil {
		t.Fatal("Expected glow layer")
	}
	if scene.Glow.Radius != 1.5*parameter.GlowRadiusPerUnit {
		t.Errorf("Expected radius %f, got %f", 1.5*parameter.GlowRadiusPerUnit, scene.Glow.Radius)
	}
	if scene.Glow.Color != d.Color {
		t.Errorf("Expected glow color %s, got %s", d.Color, scene.Glow.Color)
	}
}

// TestBuildClampsInput verifies out-of-domain frames are clamped before building
func TestBuildClampsInput(t *testing.T) {
	d := effect.Baseline()
	d.Bubbles = 500
	d.Sparkles = -4
	scene := Build(frameOf(d, 1, 1), nil)

	if len(scene.Bubbles) != int(parameter.BubblesMax) {
		t.Errorf("Expected %d bubbles, got %d", int(parameter.BubblesMax), len(scene.Bubbles))
	}
	if scene.Sparkles != nil {
		t.Error("Expected no sparkles for negative count")
	}
}
