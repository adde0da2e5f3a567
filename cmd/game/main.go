// cmd/game/main.go
package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	game "go-mind-control/internal/app"
	"go-mind-control/internal/audio"
	"go-mind-control/internal/config"
	"go-mind-control/internal/defs"
	"go-mind-control/internal/interfaces"
	"go-mind-control/internal/metrics"
	"go-mind-control/internal/state"
	"go-mind-control/internal/utils"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	view           *state.GameState
	sound          *audio.SoundManager
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	if a.sound != nil {
		a.sound.SetListener(a.view.Camera().GroundPosition(config.ScreenWidth/2, config.ScreenHeight/2))
	}
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatal(err)
	}

	http.Handle("/metrics", metrics.Handler())
	go func() {
		log.Println(http.ListenAndServe(settings.DebugAddr, nil))
	}()

	if err := defs.LoadUnitDefinitions(settings.DefsPath); err != nil {
		log.Fatal(err)
	}
	scenario, err := defs.LoadScenario(settings.ScenarioPath)
	if err != nil {
		log.Fatal(err)
	}

	var (
		sound   interfaces.SoundPlayer
		manager *audio.SoundManager
	)
	if settings.SoundEnabled {
		manager = audio.NewSoundManager()
		if err := manager.LoadDir(settings.SoundDir); err != nil {
			log.Fatal(err)
		}
		if err := manager.Initialize(); err != nil {
			// Non-fatal, the game runs without sound.
			log.Printf("Audio initialization failed: %v", err)
			manager = nil
		} else {
			defer manager.Cleanup()
			sound = manager
		}
	}

	rng := utils.NewPRNGService(settings.Seed)
	log.Printf("Random seed: %d", rng.Seed())
	g, err := game.NewGame(defs.UnitLibrary, scenario, rng, sound)
	if err != nil {
		log.Fatal(err)
	}

	sm := state.NewStateMachine()
	gs, err := state.NewGameState(sm, g)
	if err != nil {
		log.Fatal(err)
	}
	sm.SetState(gs)
	if settings.StartPaused {
		sm.SetState(state.NewPauseState(sm, gs, g))
	}

	app := &AppGame{
		stateMachine:   sm,
		view:           gs,
		sound:          manager,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Mind Control")
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
