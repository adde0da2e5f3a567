// internal/entity/ecs.go
package entity

import (
	"go-mind-control/internal/component"
	"go-mind-control/internal/types"
)

// ECS holds every component store, keyed by entity or player id.
type ECS struct {
	GameTime     float64
	NextID       types.EntityID
	NextPlayerID types.PlayerID

	Actors            map[types.EntityID]*component.Actor
	Positions         map[types.EntityID]*component.Position
	Mobiles           map[types.EntityID]*component.Mobile
	Activities        map[types.EntityID]*component.ActivityQueue
	Owners            map[types.EntityID]*component.Owner
	Renderables       map[types.EntityID]*component.Renderable
	Conditions        map[types.EntityID]*component.Conditions
	TimedConditions   map[types.EntityID]*component.TimedConditions
	MindControllables map[types.EntityID]*component.MindControllable
	MindControllers   map[types.EntityID]*component.MindController
	ControlFlashes    map[types.EntityID]*component.ControlFlash

	Players map[types.PlayerID]*component.Player
}

func NewECS() *ECS {
	return &ECS{
		NextID:            1,
		NextPlayerID:      1,
		Actors:            make(map[types.EntityID]*component.Actor),
		Positions:         make(map[types.EntityID]*component.Position),
		Mobiles:           make(map[types.EntityID]*component.Mobile),
		Activities:        make(map[types.EntityID]*component.ActivityQueue),
		Owners:            make(map[types.EntityID]*component.Owner),
		Renderables:       make(map[types.EntityID]*component.Renderable),
		Conditions:        make(map[types.EntityID]*component.Conditions),
		TimedConditions:   make(map[types.EntityID]*component.TimedConditions),
		MindControllables: make(map[types.EntityID]*component.MindControllable),
		MindControllers:   make(map[types.EntityID]*component.MindController),
		ControlFlashes:    make(map[types.EntityID]*component.ControlFlash),
		Players:           make(map[types.PlayerID]*component.Player),
	}
}

func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

func (ecs *ECS) NewPlayer(p *component.Player) types.PlayerID {
	id := ecs.NextPlayerID
	ecs.NextPlayerID++
	ecs.Players[id] = p
	return id
}

// RemoveEntity deletes every component of id. Player records are untouched.
func (ecs *ECS) RemoveEntity(id types.EntityID) {
	delete(ecs.Actors, id)
	delete(ecs.Positions, id)
	delete(ecs.Mobiles, id)
	delete(ecs.Activities, id)
	delete(ecs.Owners, id)
	delete(ecs.Renderables, id)
	delete(ecs.Conditions, id)
	delete(ecs.TimedConditions, id)
	delete(ecs.MindControllables, id)
	delete(ecs.MindControllers, id)
	delete(ecs.ControlFlashes, id)
}
