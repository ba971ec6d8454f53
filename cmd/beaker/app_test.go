package main

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-beaker/audio"
	"github.com/lixenwraith/vi-beaker/lab"
	"github.com/lixenwraith/vi-beaker/render"
	"github.com/lixenwraith/vi-beaker/settings"
)

func newTestApp(t *testing.T) (*app, tcell.SimulationScreen, *render.MockTimeProvider) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	catalog, err := lab.DefaultCatalog()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	session := audio.NewSession(nil, audio.NewMemoryOutput())
	if err := session.Start(); err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}
	t.Cleanup(session.Stop)

	clock := render.NewMockTimeProvider(time.Unix(1000, 0))
	a := newApp(screen, catalog, session, settings.NewManager(nil), render.NewFastJitter(7), clock, 7)
	t.Cleanup(a.close)
	return a, screen, clock
}

func press(a *app, keys ...rune) bool {
	for _, r := range keys {
		if !a.handleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)) {
			return false
		}
	}
	return true
}

func statusRow(screen tcell.SimulationScreen) string {
	cells, w, h := screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		c := cells[(h-1)*w+x]
		if len(c.Runes) > 0 {
			b.WriteRune(c.Runes[0])
		}
	}
	return b.String()
}

// TestAppFirstKeyPermitsAudio verifies a key press counts as the audio gesture
func TestAppFirstKeyPermitsAudio(t *testing.T) {
	a, _, _ := newTestApp(t)

	if a.session.IsPermitted() {
		t.Fatal("Expected audio not permitted before any key")
	}
	press(a, 'z')
	if !a.session.IsPermitted() {
		t.Error("Expected audio permitted after first key")
	}
}

// TestAppAddAndRemove verifies number keys add substances and x removes the last one
func TestAppAddAndRemove(t *testing.T) {
	a, _, _ := newTestApp(t)

	press(a, '1', '2')
	if ids := a.bench.IDs(); len(ids) != 2 || ids[0] != "water" || ids[1] != "baking-soda" {
		t.Fatalf("Expected [water baking-soda], got %v", ids)
	}
	if f := a.stage.Frame(); f.Sources != 2 {
		t.Errorf("Expected stage to observe 2 sources, got %d", f.Sources)
	}

	press(a, 'x')
	if ids := a.bench.IDs(); len(ids) != 1 || ids[0] != "water" {
		t.Errorf("Expected [water] after remove, got %v", ids)
	}

	press(a, 'x', 'x')
	if ids := a.bench.IDs(); len(ids) != 0 {
		t.Errorf("Expected empty bench, got %v", ids)
	}
}

// TestAppIgnoresUnknownIndex verifies number keys past the catalog are ignored
func TestAppIgnoresUnknownIndex(t *testing.T) {
	a, _, _ := newTestApp(t)

	a.catalog.Substances = a.catalog.Substances[:2]
	press(a, '5')
	if ids := a.bench.IDs(); len(ids) != 0 {
		t.Errorf("Expected nothing added, got %v", ids)
	}
}

// TestAppReactionRetriggers verifies r applies the reaction override and mounts an explosion
func TestAppReactionRetriggers(t *testing.T) {
	a, _, _ := newTestApp(t)

	press(a, '8', '1', 'r')

	override, ok := a.bench.Override()
	if !ok {
		t.Fatal("Expected reaction override to be active")
	}
	if override.Explosion <= 0 {
		t.Errorf("Expected explosive reaction, got %+v", override)
	}
	if id := a.bench.Controller().ID(); id != 1 {
		t.Errorf("Expected retrigger id 1, got %d", id)
	}
	if a.stage.Scene().Explosion == nil {
		t.Error("Expected explosion mounted on stage")
	}
	if a.message != "Sodium in Water" {
		t.Errorf("Expected reaction name in status, got %q", a.message)
	}
}

// TestAppNoReaction verifies r without a known ingredient set leaves the bench composing
func TestAppNoReaction(t *testing.T) {
	a, _, _ := newTestApp(t)

	press(a, '1', 'r')
	if _, ok := a.bench.Override(); ok {
		t.Error("Expected no override")
	}
	if a.message != "nothing happens" {
		t.Errorf("Expected fallback message, got %q", a.message)
	}
}

// TestAppClear verifies c empties the bench and drops the override
func TestAppClear(t *testing.T) {
	a, _, _ := newTestApp(t)

	press(a, '2', '3', 'r', 'c')
	if ids := a.bench.IDs(); len(ids) != 0 {
		t.Errorf("Expected empty bench, got %v", ids)
	}
	if _, ok := a.bench.Override(); ok {
		t.Error("Expected override cleared")
	}
}

// TestAppMuteAndVolume verifies m and +/- drive the session and preferences
func TestAppMuteAndVolume(t *testing.T) {
	a, _, _ := newTestApp(t)

	press(a, 'm')
	if !a.session.IsMuted() || !a.prefs.Preferences().Muted {
		t.Error("Expected muted session and preference")
	}
	press(a, 'm')
	if a.session.IsMuted() || a.prefs.Preferences().Muted {
		t.Error("Expected unmuted session and preference")
	}

	press(a, '+', '+')
	if got := a.session.Volume(); got < 0.69 || got > 0.71 {
		t.Errorf("Expected volume 0.7, got %f", got)
	}
	for i := 0; i < 20; i++ {
		press(a, '-')
	}
	if got := a.session.Volume(); got != 0 {
		t.Errorf("Expected volume clamped to 0, got %f", got)
	}
	if got := a.prefs.Preferences().MasterVolume; got != 0 {
		t.Errorf("Expected saved volume 0, got %f", got)
	}
}

// TestAppCloseReleasesMapper verifies the app owns the mapper fed by the bench and closes it on shutdown
func TestAppCloseReleasesMapper(t *testing.T) {
	a, _, _ := newTestApp(t)

	press(a, '8', '1', 'r')
	if a.mapper.Hits() == 0 {
		t.Fatal("Expected bench frames to reach the app's mapper")
	}

	a.close()
	a.close()
}

// TestAppQuit verifies q and Escape end the loop
func TestAppQuit(t *testing.T) {
	a, _, _ := newTestApp(t)

	if press(a, 'q') {
		t.Error("Expected q to quit")
	}
	if a.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Expected Escape to quit")
	}
	if !a.handleKey(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)) {
		t.Error("Expected arrow keys to be ignored")
	}
}

// TestAppStatusMessageExpires verifies transient messages give way to the key legend
func TestAppStatusMessageExpires(t *testing.T) {
	a, screen, clock := newTestApp(t)

	press(a, '1')
	a.draw()
	if row := statusRow(screen); !strings.Contains(row, "added Water") {
		t.Errorf("Expected add message in status, got %q", row)
	}
	if row := statusRow(screen); !strings.Contains(row, "fill  1/12") {
		t.Errorf("Expected fill in status, got %q", row)
	}

	clock.Advance(3 * time.Second)
	a.draw()
	row := statusRow(screen)
	if strings.Contains(row, "added Water") {
		t.Errorf("Expected message to expire, got %q", row)
	}
	if !strings.Contains(row, "1:water") {
		t.Errorf("Expected key legend, got %q", row)
	}
}

// TestAppRestoresPreferences verifies saved volume and mute apply at startup
func TestAppRestoresPreferences(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	defer screen.Fini()

	catalog, err := lab.DefaultCatalog()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	prefs := settings.NewManager(nil)
	prefs.SetMasterVolume(0.2)
	prefs.SetMuted(true)

	session := audio.NewSession(nil, audio.NewMemoryOutput())
	session.Start()
	defer session.Stop()

	a := newApp(screen, catalog, session, prefs, render.NewFastJitter(1), render.NewMockTimeProvider(time.Unix(0, 0)), 1)
	defer a.close()

	if got := session.Volume(); got < 0.19 || got > 0.21 {
		t.Errorf("Expected restored volume 0.2, got %f", got)
	}
	if !session.IsMuted() {
		t.Error("Expected restored mute")
	}
}
