// internal/state/game_state.go
package state

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	game "go-mind-control/internal/app"
	"go-mind-control/internal/config"
	"go-mind-control/internal/types"
	"go-mind-control/internal/ui"
	"go-mind-control/pkg/geom"
	"go-mind-control/pkg/render"
	"go-mind-control/pkg/render/canvas"
)

const scrollStep = geom.UnitsPerCell / 4

// GameState — состояние игры
type GameState struct {
	sm        *StateMachine
	game      *game.Game
	camera    *render.Camera
	surface   *canvas.Surface
	infoPanel *ui.InfoPanel
}

func NewGameState(sm *StateMachine, g *game.Game) (*GameState, error) {
	surface, err := canvas.NewSurface(config.FontSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create draw surface: %w", err)
	}
	return &GameState{
		sm:        sm,
		game:      g,
		camera:    render.NewCamera(config.TileWidth, config.TileHeight),
		surface:   surface,
		infoPanel: ui.NewInfoPanel(surface.FontFace(), g.Events),
	}, nil
}

// Camera returns the view used to map the cursor onto the map.
func (g *GameState) Camera() *render.Camera {
	return g.camera
}

func (g *GameState) Enter() {
	if g.game.IsPaused() {
		g.game.TogglePause()
	}
}

func (g *GameState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.sm.SetState(NewPauseState(g.sm, g, g.game))
		return
	}

	g.handleScroll()
	g.infoPanel.Update(g.game)

	x, y := ebiten.CursorPosition()
	cursor := g.camera.GroundPosition(float32(x), float32(y))
	hovered := g.game.EntityAt(cursor)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !g.infoPanel.Contains(x, y) {
		g.handleLeftClick(cursor, hovered)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) && hovered != types.InvalidEntity {
		if g.game.Selected != types.InvalidEntity {
			g.game.Control(g.game.Selected, hovered)
		}
	}

	if hovered != types.InvalidEntity {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyR):
			g.game.Revoke(hovered)
		case inpututil.IsKeyJustPressed(ebiten.KeyL):
			g.game.MarkLost(hovered)
		case inpututil.IsKeyJustPressed(ebiten.KeyE):
			g.game.ApplyEMP(hovered)
		case inpututil.IsKeyJustPressed(ebiten.KeyK):
			g.game.Kill(hovered)
		}
	}

	g.game.Update(deltaTime)
}

// handleLeftClick shows a unit in the info panel and selects it if it is a
// controller. A click on open ground orders the selected unit to move.
func (g *GameState) handleLeftClick(cursor geom.WPos, hovered types.EntityID) {
	if hovered != types.InvalidEntity {
		g.infoPanel.SetTarget(hovered)
		if _, isController := g.game.ECS.MindControllers[hovered]; isController {
			g.game.Selected = hovered
		}
		return
	}
	g.infoPanel.Hide()
	if g.game.Selected != types.InvalidEntity {
		g.game.MoveTo(g.game.Selected, cursor)
	}
}

func (g *GameState) handleScroll() {
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camera.Scroll.X -= scrollStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camera.Scroll.X += scrollStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camera.Scroll.Y -= scrollStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camera.Scroll.Y += scrollStep
	}
}

func (g *GameState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	g.surface.Target = screen
	g.game.Draw(render.NewView(g.camera, g.surface))
	g.infoPanel.Draw(screen, g.game)
}

func (g *GameState) Exit() {
	// Ничего не делаем при выходе
}
