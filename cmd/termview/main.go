// cmd/termview/main.go
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	game "go-mind-control/internal/app"
	"go-mind-control/internal/config"
	"go-mind-control/internal/defs"
	"go-mind-control/internal/utils"
	"go-mind-control/pkg/render"
	"go-mind-control/pkg/render/term"
)

const (
	controlledUnit = "e1"
	controllerUnit = "yuri"
)

type viewer struct {
	screen  tcell.Screen
	surface *term.Surface
	camera  *render.Camera
	replay  *game.Replay
}

func (v *viewer) draw() {
	v.screen.Clear()
	v.replay.Game.Draw(render.NewView(v.camera, v.surface))
	_, h := v.screen.Size()
	caption := v.replay.Caption()
	if v.replay.Done() {
		caption += " (q to quit)"
	}
	v.surface.DrawText(caption, 0, h-1, config.TextLightColor)
	v.screen.Show()
}

// handleInput reports false when the viewer should exit.
func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
			return false
		}
		v.replay.Advance()
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) run() {
	ticker := time.NewTicker(time.Second / config.TickRate)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- v.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if ev == nil || !v.handleInput(ev) {
				return
			}
		case <-ticker.C:
			v.replay.Game.Update(1.0 / config.TickRate)
		}
		v.draw()
	}
}

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatal(err)
	}
	if err := defs.LoadUnitDefinitions(settings.DefsPath); err != nil {
		log.Fatal(err)
	}
	replay, err := game.NewFallbackReplay(defs.UnitLibrary, controlledUnit, controllerUnit, utils.NewPRNGService(settings.Seed))
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	// The screen owns the terminal from here on.
	log.SetOutput(io.Discard)

	v := &viewer{
		screen:  screen,
		surface: term.NewSurface(screen),
		camera:  render.NewCamera(config.TermTileWidth, config.TermTileHeight),
		replay:  replay,
	}
	v.run()
	screen.Fini()

	fmt.Fprintf(os.Stdout, "%s\n", replay.Caption())
}
