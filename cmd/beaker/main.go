package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-beaker/audio"
	"github.com/lixenwraith/vi-beaker/lab"
	"github.com/lixenwraith/vi-beaker/parameter"
	"github.com/lixenwraith/vi-beaker/render"
	"github.com/lixenwraith/vi-beaker/settings"
	"github.com/lixenwraith/vi-beaker/stream"
)

var (
	colorModeFlag = flag.String("color", "", "Color mode: auto, mono (default: saved preference)")
	debugFlag     = flag.Bool("debug", false, "Write logs to logs/beaker.log")
	catalogFlag   = flag.String("catalog", "", "Substance catalog YAML file (default: built-in)")
	listenFlag    = flag.String("listen", "", "Serve the frame stream on this address, e.g. :8080")
	seedFlag      = flag.Int64("seed", 0, "Seed for particle jitter and noise (0: time based)")
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	catalog, err := lab.LoadCatalog(*catalogFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	cfg, err := audio.LoadConfig()
	if err != nil {
		log.Printf("[Beaker] %v (using defaults)", err)
	}

	prefs := settings.Open()
	if *colorModeFlag != "" {
		prefs.SetColorMode(*colorModeFlag)
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: restore the terminal before printing anything
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mBEAKER CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	session := audio.NewSession(cfg, nil)
	if err := session.Start(); err != nil {
		log.Printf("[Beaker] audio start failed: %v (continuing without audio)", err)
	}
	defer session.Stop()

	a := newApp(screen, catalog, session, prefs, render.NewFastJitter(uint64(seed)), render.NewTimeProvider(), seed)
	defer a.close()

	if *listenFlag != "" {
		hub := stream.NewHub(log.Default())
		a.bench.AddObserver(hub)
		srv := serveStream(*listenFlag, hub)
		defer func() {
			hub.Close()
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.Printf("[Stream] shutdown: %v", err)
			}
		}()
	}

	run(screen, a)
}

func serveStream(addr string, hub *stream.Hub) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[Stream] server stopped: %v", err)
		}
	}()
	log.Printf("[Stream] serving frames on %s/ws", addr)
	return srv
}

// run owns the event loop until the user quits or the terminal closes
func run(screen tcell.Screen, a *app) {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(parameter.FrameInterval)
	defer ticker.Stop()

	a.draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.handleKey(ev) {
					return
				}
				a.draw()
			case *tcell.EventResize:
				w, h := ev.Size()
				a.resize(w, h)
				screen.Sync()
				a.draw()
			}
		case <-ticker.C:
			a.draw()
		}
	}
}
