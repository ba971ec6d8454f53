package render

import (
	"testing"
	"time"

	"github.com/lixenwraith/vi-beaker/effect"
	"github.com/lixenwraith/vi-beaker/trigger"
)

func explosive(e float64, id uint64) Frame {
	d := effect.Baseline()
	d.Explosion = e
	return Frame{State: d, Fill: 2, RetriggerID: id, Sources: 1}
}

// TestStageMountsOnReplay verifies a replay fire mounts a one-shot keyed by its id
func TestStageMountsOnReplay(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	replay := trigger.NewReplay()
	stage := NewStage(replay, NewFastJitter(1), clock)
	defer stage.Close()

	replay.Fire(1, 4)

	scene := stage.Scene()
	if scene.Explosion == nil || scene.Explosion.ID != 1 {
		t.Fatalf("Expected explosion 1 mounted, got %+v", scene.Explosion)
	}
	if scene.Explosion.Intensity != 4 {
		t.Errorf("Expected intensity 4, got %f", scene.Explosion.Intensity)
	}
}

// TestStageCompletesReplay verifies a finished one-shot is torn down and completes the replay
func TestStageCompletesReplay(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	replay := trigger.NewReplay()
	stage := NewStage(replay, nil, clock)
	defer stage.Close()

	replay.Fire(1, 2)
	length := stage.Scene().Explosion.Length()

	clock.Advance(length)
	if scene := stage.Scene(); scene.Explosion != nil {
		t.Error("Expected finished explosion torn down")
	}
	if replay.State().Phase != trigger.PhaseIdle {
		t.Errorf("Expected replay idle, got %s", replay.State().Phase)
	}
}

// TestStageSupersedes verifies a newer id replaces the in-flight one-shot
func TestStageSupersedes(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	replay := trigger.NewReplay()
	stage := NewStage(replay, nil, clock)
	defer stage.Close()

	replay.Fire(1, 10)
	clock.Advance(100 * time.Millisecond)
	replay.Fire(2, 10)

	scene := stage.Scene()
	if scene.Explosion == nil || scene.Explosion.ID != 2 {
		t.Fatalf("Expected explosion 2, got %+v", scene.Explosion)
	}
	if !scene.Explosion.Start.Equal(clock.Now()) {
		t.Error("Expected the new one-shot to restart from its own mount time")
	}

	// The superseded one-shot must not complete the newer replay
	if replay.Complete(1) {
		t.Error("Expected stale completion ignored")
	}
}

// TestStageFrameDoesNotRemount verifies a frame carrying an already mounted id changes nothing
func TestStageFrameDoesNotRemount(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	replay := trigger.NewReplay()
	stage := NewStage(replay, nil, clock)
	defer stage.Close()

	replay.Fire(1, 3)
	start := stage.Scene().Explosion.Start

	clock.Advance(50 * time.Millisecond)
	stage.Observe(explosive(3, 1))

	if got := stage.Scene().Explosion; got == nil || !got.Start.Equal(start) {
		t.Error("Expected the same one-shot to keep running")
	}
}

// TestStageFrameMountsWithoutReplay verifies frames alone drive the one-shot when no replay is wired
func TestStageFrameMountsWithoutReplay(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	stage := NewStage(nil, nil, clock)
	defer stage.Close()

	stage.Observe(explosive(5, 1))
	if x := stage.Scene().Explosion; x == nil || x.ID != 1 {
		t.Fatalf("Expected explosion 1, got %+v", x)
	}

	// A bench edit keeps the explosion scalar but not a new id
	clock.Advance(time.Hour)
	stage.Observe(explosive(5, 1))
	if x := stage.Scene().Explosion; x != nil {
		t.Error("Expected no remount for an unchanged id")
	}
}

// TestStageObserveBuildsScene verifies continuous layers follow the latest frame
func TestStageObserveBuildsScene(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	stage := NewStage(nil, nil, clock)
	defer stage.Close()

	d := effect.Baseline()
	d.Bubbles = 4
	stage.Observe(Frame{State: d, Fill: 6, Sources: 3})
	clock.Advance(1500 * time.Millisecond)

	scene := stage.Scene()
	if len(scene.Bubbles) != 4 || scene.Liquid == nil {
		t.Errorf("Expected 4 bubbles and liquid, got %d bubbles", len(scene.Bubbles))
	}
	if scene.Elapsed != 1500*time.Millisecond {
		t.Errorf("Expected elapsed 1.5s, got %v", scene.Elapsed)
	}
	if stage.Frame().Fill != 6 {
		t.Errorf("Expected last frame kept, got fill %d", stage.Frame().Fill)
	}
}

// TestStageClose verifies a closed stage ignores further replays
func TestStageClose(t *testing.T) {
	replay := trigger.NewReplay()
	stage := NewStage(replay, nil, NewMockTimeProvider(time.Unix(0, 0)))
	stage.Close()
	stage.Close()

	replay.Fire(1, 5)
	if stage.Scene().Explosion != nil {
		t.Error("Expected no mount after Close")
	}
}
