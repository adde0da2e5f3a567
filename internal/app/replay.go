// internal/app/replay.go
package app

import (
	"fmt"
	"image/color"

	"go-mind-control/internal/config"
	"go-mind-control/internal/defs"
	"go-mind-control/internal/types"
	"go-mind-control/internal/utils"
	"go-mind-control/pkg/geom"
)

// ReplayStep is one scripted action of a replay.
type ReplayStep struct {
	Caption string
	Do      func(g *Game)
}

// Replay drives a game through a fixed script, one step at a time.
type Replay struct {
	Game  *Game
	Steps []ReplayStep
	next  int
}

// Done reports whether every step ran.
func (r *Replay) Done() bool {
	return r.next >= len(r.Steps)
}

// Caption describes the step that ran last.
func (r *Replay) Caption() string {
	if r.next == 0 {
		return "press any key to start"
	}
	return r.Steps[r.next-1].Caption
}

// Advance runs the next step followed by one tick.
func (r *Replay) Advance() bool {
	if r.Done() {
		return false
	}
	r.Steps[r.next].Do(r.Game)
	r.next++
	r.Game.Tick()
	return true
}

// NewFallbackReplay builds the capture, defeat and revoke walkthrough: a
// controller of one player takes a unit of another, the victim is defeated
// and the revoked unit goes to the fallback owner.
func NewFallbackReplay(units defs.Library, controlledID, controllerID string, rng *utils.PRNGService) (*Replay, error) {
	scenario := &defs.ScenarioDefinition{
		Name: "fallback walkthrough",
		Players: []defs.PlayerDefinition{
			{InternalName: "Multi0", Name: "Allies", Color: color.RGBA{R: 60, G: 120, B: 255, A: 255}},
			{InternalName: "Multi1", Name: "Yuri", Color: color.RGBA{R: 190, G: 60, B: 220, A: 255}},
			{InternalName: config.DefaultFallbackOwner, NonCombatant: true, Color: color.RGBA{R: 140, G: 140, B: 140, A: 255}},
		},
		Units: []defs.UnitPlacement{
			{Unit: controlledID, Owner: "Multi0", X: 4, Y: 4},
			{Unit: controllerID, Owner: "Multi1", X: 12, Y: 6},
		},
	}
	g, err := NewGame(units, scenario, rng, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build replay: %w", err)
	}

	var unit, controller types.EntityID
	for id, a := range g.ECS.Actors {
		switch a.DefID {
		case controlledID:
			unit = id
		case controllerID:
			controller = id
		}
	}
	if _, ok := g.ECS.MindControllables[unit]; !ok {
		return nil, fmt.Errorf("unit %q cannot be mind controlled", controlledID)
	}
	if _, ok := g.ECS.MindControllers[controller]; !ok {
		return nil, fmt.Errorf("unit %q is not a mind controller", controllerID)
	}
	g.Selected = controller

	steps := []ReplayStep{
		{"controller takes over the unit", func(g *Game) { g.Control(controller, unit) }},
		{"the unit's original owner is defeated", func(g *Game) { g.MarkLost(unit) }},
		{"control is revoked, the unit goes to " + config.DefaultFallbackOwner, func(g *Game) { g.Revoke(unit) }},
		{"the controller walks away", func(g *Game) {
			g.MoveTo(controller, g.World.CenterPosition(controller).Add(geom.WVec{X: int(geom.Cells(4))}))
		}},
	}
	return &Replay{Game: g, Steps: steps}, nil
}
