// internal/app/game.go
package app

import (
	"fmt"
	"log"
	"math"

	"go-mind-control/internal/component"
	"go-mind-control/internal/config"
	"go-mind-control/internal/defs"
	"go-mind-control/internal/entity"
	"go-mind-control/internal/event"
	"go-mind-control/internal/interfaces"
	"go-mind-control/internal/system"
	"go-mind-control/internal/types"
	"go-mind-control/internal/utils"
	"go-mind-control/internal/world"
	"go-mind-control/pkg/geom"
	"go-mind-control/pkg/render"
)

var _ interfaces.Game = (*Game)(nil)

// Game holds the main game state and logic.
type Game struct {
	World  *world.World
	ECS    *entity.ECS
	Events *event.Dispatcher
	Rng    *utils.PRNGService
	Units  defs.Library

	MindControlSystem    *system.MindControlSystem
	MindControllerSystem *system.MindControllerSystem
	MovementSystem       *system.MovementSystem
	StatusEffectSystem   *system.StatusEffectSystem
	StateSystem          *system.StateSystem
	VisualEffectSystem   *system.VisualEffectSystem
	RenderSystem         *system.RenderSystem

	Selected types.EntityID

	// Game state
	gameTime float64
	tickAcc  float64
	isPaused bool
}

// NewGame builds a game from the unit library and a scenario. sound may be nil.
func NewGame(units defs.Library, scenario *defs.ScenarioDefinition, rng *utils.PRNGService, sound interfaces.SoundPlayer) (*Game, error) {
	ecs := entity.NewECS()
	eventDispatcher := event.NewDispatcher()
	w := world.New(ecs, eventDispatcher, rng, sound)

	g := &Game{
		World:  w,
		ECS:    ecs,
		Events: eventDispatcher,
		Rng:    rng,
		Units:  units,
	}
	g.MindControlSystem = system.NewMindControlSystem(w, units)
	g.MindControllerSystem = system.NewMindControllerSystem(w, units, g.MindControlSystem)
	g.MovementSystem = system.NewMovementSystem(w)
	g.StatusEffectSystem = system.NewStatusEffectSystem(w)
	g.StateSystem = system.NewStateSystem(w)
	g.VisualEffectSystem = system.NewVisualEffectSystem(w)
	g.RenderSystem = system.NewRenderSystem(w)

	listener := &GameEventListener{game: g}
	for _, t := range []event.EventType{event.ControlLinked, event.ControlRevoked, event.TraitDisabled, event.EntityKilled, event.RevokeRequest} {
		eventDispatcher.Subscribe(t, listener)
	}

	if err := g.loadScenario(scenario); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) loadScenario(scenario *defs.ScenarioDefinition) error {
	if scenario == nil {
		return nil
	}
	for _, p := range scenario.Players {
		if _, exists := g.World.PlayerByName(p.InternalName); exists {
			return fmt.Errorf("scenario %q: duplicate player %q", scenario.Name, p.InternalName)
		}
		g.World.AddPlayer(p.InternalName, p.Name, p.Color, p.NonCombatant)
	}
	for i, u := range scenario.Units {
		owner, ok := g.World.PlayerByName(u.Owner)
		if !ok {
			return fmt.Errorf("scenario %q: unit %d has unknown owner %q", scenario.Name, i, u.Owner)
		}
		pos := geom.NewWPos(int(geom.Cells(u.X)), int(geom.Cells(u.Y)), 0)
		if _, err := g.SpawnUnit(u.Unit, owner, pos); err != nil {
			return fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
	}
	return nil
}

// SpawnUnit creates a unit from its definition.
func (g *Game) SpawnUnit(defID string, owner types.PlayerID, pos geom.WPos) (types.EntityID, error) {
	def, ok := g.Units[defID]
	if !ok {
		return types.InvalidEntity, fmt.Errorf("unknown unit definition %q", defID)
	}
	id := g.World.Spawn(defID, def.Name, owner, pos)
	g.ECS.Renderables[id] = &component.Renderable{
		Radius:    float32(def.Visuals.RadiusFactor),
		HasStroke: def.Visuals.HasStroke,
	}
	if def.Speed > 0 {
		g.ECS.Mobiles[id] = &component.Mobile{Speed: geom.WDist(def.Speed)}
	}
	if def.MindControllable != nil {
		g.MindControlSystem.Attach(id, defID)
	}
	if def.MindController != nil {
		g.MindControllerSystem.Attach(id, defID)
	}
	return id, nil
}

// Update advances the simulation by whole ticks of 1/TickRate seconds.
func (g *Game) Update(deltaTime float64) {
	if g.isPaused {
		return
	}
	g.tickAcc += deltaTime
	const tickLen = 1.0 / config.TickRate
	for g.tickAcc >= tickLen {
		g.tickAcc -= tickLen
		g.Tick()
	}
}

// Tick runs one simulation step: every system, then the frame end tasks.
func (g *Game) Tick() {
	const dt = 1.0 / config.TickRate
	g.gameTime += dt
	g.ECS.GameTime = g.gameTime

	g.MovementSystem.Update(dt)
	g.StatusEffectSystem.Update(dt)
	g.StateSystem.Update(dt)
	g.VisualEffectSystem.Update(dt)

	g.World.EndTick()
}

// Draw renders units, bolts and the HUD onto ctx.
func (g *Game) Draw(ctx render.Context) {
	effects := append(g.VisualEffectSystem.Renderables(), g.MindControllerSystem.Bolts()...)
	g.RenderSystem.Draw(ctx, g.Selected, effects)
	surface := ctx.Surface()
	for i, line := range g.HUDLines() {
		surface.DrawText(line, 8, 8+i*config.HUDLineHeight, config.TextLightColor)
	}
}

// HUDLines describes the players and the selection, one line each.
func (g *Game) HUDLines() []string {
	units := make(map[types.PlayerID]int)
	for id, owner := range g.ECS.Owners {
		if g.World.IsAlive(id) {
			units[owner.Player]++
		}
	}
	lines := []string{fmt.Sprintf("tick %d", g.World.CurrentTick())}
	for _, pid := range g.World.PlayerIDs() {
		p := g.World.Player(pid)
		lines = append(lines, fmt.Sprintf("%-10s units %2d  %s", p.Name, units[pid], p.WinState))
	}
	if g.Selected != types.InvalidEntity && g.World.IsAlive(g.Selected) {
		lines = append(lines, fmt.Sprintf("selected #%d %s, controls %d",
			g.Selected, g.ECS.Actors[g.Selected].Name, len(g.MindControllerSystem.Roster(g.Selected))))
	}
	if g.isPaused {
		lines = append(lines, "PAUSED")
	}
	return lines
}

// UnitInfo describes one unit for the info panel.
func (g *Game) UnitInfo(id types.EntityID) (title string, lines []string) {
	actor, ok := g.ECS.Actors[id]
	if !ok {
		return "Unknown Entity", nil
	}
	title = fmt.Sprintf("%s #%d", actor.Name, id)
	lines = append(lines, "Owner: "+g.playerName(g.World.Owner(id)))

	if mc, ok := g.ECS.MindControllables[id]; ok {
		lines = append(lines, "Link: "+g.MindControlSystem.State(id).String())
		if mc.IsLinked() {
			lines = append(lines,
				fmt.Sprintf("Controller: #%d", mc.Controller),
				"Original owner: "+g.playerName(mc.OriginalOwner))
		}
		switch {
		case !mc.Enabled:
			lines = append(lines, "Mind control: disabled")
		case mc.Paused:
			lines = append(lines, "Mind control: paused")
		}
	}
	if _, ok := g.ECS.MindControllers[id]; ok {
		roster := g.MindControllerSystem.Roster(id)
		capacity := "unlimited"
		if def := g.Units[actor.DefID].MindController; def != nil && def.Capacity > 0 {
			capacity = fmt.Sprint(def.Capacity)
		}
		lines = append(lines, fmt.Sprintf("Controls: %d / %s", len(roster), capacity))
	}
	return title, lines
}

// IsControlled reports whether id is currently held by a controller.
func (g *Game) IsControlled(id types.EntityID) bool {
	return g.MindControlSystem.Controller(id) != types.InvalidEntity
}

func (g *Game) playerName(id types.PlayerID) string {
	if p := g.World.Player(id); p != nil {
		return p.Name
	}
	return "none"
}

// Control orders controller to take over target.
func (g *Game) Control(controller, target types.EntityID) bool {
	return g.MindControllerSystem.Control(controller, target)
}

// Revoke returns a controlled unit to its owner.
func (g *Game) Revoke(id types.EntityID) {
	g.MindControlSystem.RevokeControl(id)
}

// Kill destroys a unit.
func (g *Game) Kill(id types.EntityID) {
	g.World.Kill(id)
}

// ApplyEMP disables a unit for config.EmpDuration seconds.
func (g *Game) ApplyEMP(id types.EntityID) bool {
	return g.StatusEffectSystem.Apply(id, config.EmpCondition, config.EmpDuration)
}

// MarkLost defeats the original owner of id, or its owner if it is not controlled.
func (g *Game) MarkLost(id types.EntityID) {
	player := g.World.Owner(id)
	if mc, ok := g.ECS.MindControllables[id]; ok && mc.IsLinked() {
		player = mc.OriginalOwner
	}
	if player == types.NoPlayer {
		return
	}
	g.World.SetWinState(player, component.WinStateLost)
	log.Printf("player %d marked as lost", player)
}

// MoveTo orders id to walk to pos.
func (g *Game) MoveTo(id types.EntityID, pos geom.WPos) {
	g.World.QueueActivity(id, component.Activity{Kind: component.ActivityMove, Target: pos}, false)
}

// EntityAt returns the live unit closest to pos within config.PickRadius.
func (g *Game) EntityAt(pos geom.WPos) types.EntityID {
	best := types.InvalidEntity
	bestDist := math.MaxInt
	for id, p := range g.ECS.Positions {
		if !g.World.IsAlive(id) {
			continue
		}
		d := int(p.Pos.Sub(pos).HorizontalLength())
		if d > config.PickRadius {
			continue
		}
		if d < bestDist || (d == bestDist && id < best) {
			best, bestDist = id, d
		}
	}
	return best
}

// TogglePause pauses or resumes the simulation.
func (g *Game) TogglePause() {
	g.isPaused = !g.isPaused
}

func (g *Game) IsPaused() bool {
	return g.isPaused
}

func (g *Game) GetGameTime() float64 {
	return g.gameTime
}

// GameEventListener обрабатывает события, важные для основного игрового цикла.
type GameEventListener struct {
	game *Game
}

// OnEvent реализует интерфейс event.Listener.
func (l *GameEventListener) OnEvent(e event.Event) {
	switch e.Type {
	case event.ControlLinked:
		d := e.Data.(event.ControlData)
		log.Printf("entity %d taken over by %d, now owned by player %d", d.Controlled, d.Controller, d.NewOwner)
	case event.ControlRevoked:
		d := e.Data.(event.ControlData)
		log.Printf("entity %d released by %d, returned to player %d", d.Controlled, d.Controller, d.NewOwner)
	case event.TraitDisabled:
		log.Printf("entity %d: mind control trait disabled", e.Data.(event.EntityData).Entity)
	case event.RevokeRequest:
		l.game.Revoke(e.Data.(event.EntityData).Entity)
	case event.EntityKilled:
		id := e.Data.(event.EntityData).Entity
		if id == l.game.Selected {
			l.game.Selected = types.InvalidEntity
		}
	}
}
