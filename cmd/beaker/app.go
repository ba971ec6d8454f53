package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-beaker/audio"
	"github.com/lixenwraith/vi-beaker/lab"
	"github.com/lixenwraith/vi-beaker/parameter"
	"github.com/lixenwraith/vi-beaker/render"
	"github.com/lixenwraith/vi-beaker/settings"
)

const volumeStep = 0.1

// app binds one bench to the terminal, the audio session and saved preferences
type app struct {
	catalog  *lab.Catalog
	bench    *lab.Bench
	stage    *render.Stage
	renderer *render.TerminalRenderer
	session  *audio.Session
	mapper   *audio.Mapper
	prefs    *settings.Manager
	clock    render.Clock

	message   string
	messageAt time.Time
}

func newApp(screen tcell.Screen, catalog *lab.Catalog, session *audio.Session, prefs *settings.Manager, jitter render.Jitter, clock render.Clock, seed int64) *app {
	bench := lab.NewBench(nil)
	stage := render.NewStage(bench.Controller().Replay(), jitter, clock)
	mapper := audio.NewMapper(session, nil, seed)

	bench.AddObserver(stage)
	bench.AddObserver(lab.ObserverFunc(func(f render.Frame) {
		mapper.Update(f.State)
	}))

	p := prefs.Preferences()
	session.SetVolume(p.MasterVolume)
	if p.Muted != session.IsMuted() {
		session.ToggleMute()
	}

	renderer := render.NewTerminalRenderer(screen)
	renderer.SetMonochrome(p.ColorMode == settings.ColorMono)

	return &app{
		catalog:  catalog,
		bench:    bench,
		stage:    stage,
		renderer: renderer,
		session:  session,
		mapper:   mapper,
		prefs:    prefs,
		clock:    clock,
	}
}

// handleKey applies one key press; it returns false when the user quits
// Every key press counts as a user gesture and permits audio
func (a *app) handleKey(ev *tcell.EventKey) bool {
	a.session.Permit()

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	r := ev.Rune()
	switch {
	case r >= '1' && r <= '9':
		a.addSubstance(int(r - '1'))
	case r == 'x':
		a.removeLast()
	case r == 'r':
		a.react()
	case r == 'c':
		a.bench.Clear()
		a.notify("bench cleared")
	case r == 'm':
		on := a.session.ToggleMute()
		a.prefs.SetMuted(!on)
		a.savePrefs()
		if on {
			a.notify("sound on")
		} else {
			a.notify("muted")
		}
	case r == '+' || r == '=':
		a.changeVolume(volumeStep)
	case r == '-':
		a.changeVolume(-volumeStep)
	case r == 'q':
		return false
	}
	return true
}

func (a *app) addSubstance(index int) {
	if index >= len(a.catalog.Substances) {
		return
	}
	sub := a.catalog.Substances[index]
	if err := a.bench.Add(sub.Source()); err != nil {
		a.notify(err.Error())
		return
	}
	a.notify("added " + sub.Name)
}

func (a *app) removeLast() {
	ids := a.bench.IDs()
	if len(ids) == 0 {
		return
	}
	last := ids[len(ids)-1]
	if err := a.bench.Remove(last); err != nil {
		a.notify(err.Error())
		return
	}
	a.notify("removed " + last)
}

func (a *app) react() {
	reaction, ok := a.catalog.Reaction(a.bench.IDs())
	if !ok {
		a.notify("nothing happens")
		return
	}
	a.bench.ApplyOverride(reaction.Outcome())
	a.notify(reaction.Name)
}

func (a *app) changeVolume(delta float64) {
	a.session.SetVolume(a.session.Volume() + delta)
	a.prefs.SetMasterVolume(a.session.Volume())
	a.savePrefs()
	a.notify(fmt.Sprintf("volume %d%%", int(a.session.Volume()*100+0.5)))
}

func (a *app) savePrefs() {
	if err := a.prefs.Save(); err != nil {
		log.Printf("[Beaker] failed to save preferences: %v", err)
	}
}

func (a *app) notify(msg string) {
	a.message = msg
	a.messageAt = a.clock.Now()
}

// status builds the bottom line: audio state, fill, then a message or the key legend
func (a *app) status() string {
	var b strings.Builder

	if a.session.IsMuted() {
		b.WriteString(parameter.MuteStr)
	} else {
		b.WriteString(parameter.AudioStr)
	}
	fmt.Fprintf(&b, "%3d%%  ", int(a.session.Volume()*100+0.5))

	frame := a.stage.Frame()
	fmt.Fprintf(&b, "fill %2d/%d  ", frame.Fill, parameter.FillSteps)

	if a.message != "" && a.clock.Now().Sub(a.messageAt) < parameter.StatusMessageTimeout {
		b.WriteString(a.message)
		return b.String()
	}

	for i, sub := range a.catalog.Substances {
		if i >= 9 {
			break
		}
		fmt.Fprintf(&b, "%d:%s ", i+1, sub.ID)
	}
	b.WriteString("| x r c m +/- q")
	return b.String()
}

func (a *app) draw() {
	a.renderer.RenderFrame(a.stage.Scene(), a.status())
}

func (a *app) resize(width, height int) {
	a.renderer.UpdateDimensions(width, height)
}

// close releases the stage subscription and any pending crackle release before the session stops
func (a *app) close() {
	a.stage.Close()
	a.mapper.Close()
}
