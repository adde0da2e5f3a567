// internal/world/world.go
package world

import (
	"log"

	"go-mind-control/internal/component"
	"go-mind-control/internal/entity"
	"go-mind-control/internal/event"
	"go-mind-control/internal/interfaces"
	"go-mind-control/internal/types"
	"go-mind-control/internal/utils"
	"go-mind-control/pkg/geom"
)

// World is the host simulation: component stores, the event dispatcher,
// the shared random stream and the end-of-tick task queue.
// It is not safe for concurrent use; everything runs on the game loop.
type World struct {
	ECS    *entity.ECS
	Events *event.Dispatcher
	Rng    *utils.PRNGService
	Sound  interfaces.SoundPlayer

	frameEndTasks []func()
	tick          uint64
}

// New creates a world. sound may be nil.
func New(ecs *entity.ECS, events *event.Dispatcher, rng *utils.PRNGService, sound interfaces.SoundPlayer) *World {
	return &World{
		ECS:    ecs,
		Events: events,
		Rng:    rng,
		Sound:  sound,
	}
}

// CurrentTick returns the number of completed ticks.
func (w *World) CurrentTick() uint64 {
	return w.tick
}

// AddFrameEndTask queues task to run once the current tick's updates are done.
func (w *World) AddFrameEndTask(task func()) {
	w.frameEndTasks = append(w.frameEndTasks, task)
}

// PendingFrameEndTasks returns the number of queued tasks.
func (w *World) PendingFrameEndTasks() int {
	return len(w.frameEndTasks)
}

// RunFrameEndTasks drains the queue in FIFO order. Tasks queued while
// draining run in the same pass, after the ones already waiting.
func (w *World) RunFrameEndTasks() {
	for len(w.frameEndTasks) > 0 {
		task := w.frameEndTasks[0]
		w.frameEndTasks[0] = nil
		w.frameEndTasks = w.frameEndTasks[1:]
		task()
	}
	w.frameEndTasks = w.frameEndTasks[:0]
}

// EndTick runs the frame end tasks and advances the tick counter.
func (w *World) EndTick() {
	w.RunFrameEndTasks()
	w.tick++
}

// PlaySound plays a cue at pos if a sound player is attached.
func (w *World) PlaySound(name string, pos geom.WPos) {
	if w.Sound != nil {
		w.Sound.Play(name, pos)
	}
}

// Spawn creates an entity with the components every actor carries.
func (w *World) Spawn(defID, name string, owner types.PlayerID, pos geom.WPos) types.EntityID {
	id := w.ECS.NewEntity()
	w.ECS.Actors[id] = &component.Actor{DefID: defID, Name: name}
	w.ECS.Positions[id] = &component.Position{Pos: pos}
	w.ECS.Owners[id] = &component.Owner{Player: owner}
	w.ECS.Activities[id] = &component.ActivityQueue{}
	w.ECS.Conditions[id] = component.NewConditions()
	return id
}

// IsDead reports whether the entity was killed. Removed entities count as dead.
func (w *World) IsDead(id types.EntityID) bool {
	a, ok := w.ECS.Actors[id]
	return !ok || a.Dead
}

// IsDisposed reports whether the entity left the world or is about to.
func (w *World) IsDisposed(id types.EntityID) bool {
	a, ok := w.ECS.Actors[id]
	return !ok || a.Disposed
}

// IsAlive is the negation of IsDead || IsDisposed.
func (w *World) IsAlive(id types.EntityID) bool {
	return !w.IsDead(id) && !w.IsDisposed(id)
}

// CenterPosition returns the entity's position, or the origin if it has none.
func (w *World) CenterPosition(id types.EntityID) geom.WPos {
	if p, ok := w.ECS.Positions[id]; ok {
		return p.Pos
	}
	return geom.WPos{}
}

// CancelActivity drops every order of the entity.
func (w *World) CancelActivity(id types.EntityID) {
	if q, ok := w.ECS.Activities[id]; ok {
		q.Cancel()
	}
}

// QueueActivity appends an order, or replaces the queue if queued is false.
func (w *World) QueueActivity(id types.EntityID, a component.Activity, queued bool) {
	q, ok := w.ECS.Activities[id]
	if !ok || w.IsDead(id) {
		return
	}
	if !queued {
		q.Cancel()
	}
	q.Queue = append(q.Queue, a)
}

// Kill marks the entity dead, notifies listeners and disposes it at the end of the tick.
func (w *World) Kill(id types.EntityID) {
	if w.IsDead(id) || w.IsDisposed(id) {
		return
	}
	w.ECS.Actors[id].Dead = true
	w.CancelActivity(id)
	w.Events.Dispatch(event.Event{Type: event.EntityKilled, Data: event.EntityData{Entity: id}})
	w.AddFrameEndTask(func() { w.Dispose(id) })
}

// Dispose notifies listeners, flags the entity and removes its components at the end of the tick.
func (w *World) Dispose(id types.EntityID) {
	if w.IsDisposed(id) {
		return
	}
	w.Events.Dispatch(event.Event{Type: event.EntityDisposing, Data: event.EntityData{Entity: id}})
	w.ECS.Actors[id].Disposed = true
	w.AddFrameEndTask(func() { w.ECS.RemoveEntity(id) })
}

// TraitDisabled notifies listeners that a conditional trait of id turned off.
func (w *World) TraitDisabled(id types.EntityID) {
	w.Events.Dispatch(event.Event{Type: event.TraitDisabled, Data: event.EntityData{Entity: id}})
}

// Notify dispatches an arbitrary event.
func (w *World) Notify(t event.EventType, data interface{}) {
	w.Events.Dispatch(event.Event{Type: t, Data: data})
}

// GrantCondition adds a grant of name and returns its token.
func (w *World) GrantCondition(id types.EntityID, name string) int {
	c, ok := w.ECS.Conditions[id]
	if !ok || name == "" {
		return component.InvalidConditionToken
	}
	token := c.NextToken
	c.NextToken++
	c.Granted[token] = name
	w.Events.Dispatch(event.Event{Type: event.ConditionsChanged, Data: event.EntityData{Entity: id}})
	return token
}

// RevokeCondition removes a grant and returns InvalidConditionToken, so callers
// can write token = w.RevokeCondition(id, token).
func (w *World) RevokeCondition(id types.EntityID, token int) int {
	c, ok := w.ECS.Conditions[id]
	if !ok {
		return component.InvalidConditionToken
	}
	if _, granted := c.Granted[token]; !granted {
		log.Printf("world: entity %d has no condition token %d", id, token)
		return component.InvalidConditionToken
	}
	delete(c.Granted, token)
	w.Events.Dispatch(event.Event{Type: event.ConditionsChanged, Data: event.EntityData{Entity: id}})
	return component.InvalidConditionToken
}

// HasCondition reports whether at least one grant of name is outstanding.
func (w *World) HasCondition(id types.EntityID, name string) bool {
	c, ok := w.ECS.Conditions[id]
	return ok && c.Count(name) > 0
}
