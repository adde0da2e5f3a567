// internal/world/players.go
package world

import (
	"image/color"
	"sort"

	"go-mind-control/internal/component"
	"go-mind-control/internal/event"
	"go-mind-control/internal/types"
)

// AddPlayer registers a faction.
func (w *World) AddPlayer(internalName, name string, c color.RGBA, nonCombatant bool) types.PlayerID {
	if name == "" {
		name = internalName
	}
	return w.ECS.NewPlayer(&component.Player{
		InternalName: internalName,
		Name:         name,
		Color:        c,
		NonCombatant: nonCombatant,
	})
}

// Player returns the player record, or nil.
func (w *World) Player(id types.PlayerID) *component.Player {
	return w.ECS.Players[id]
}

// PlayerByName looks a player up by internal name.
func (w *World) PlayerByName(internalName string) (types.PlayerID, bool) {
	for _, id := range w.PlayerIDs() {
		if w.ECS.Players[id].InternalName == internalName {
			return id, true
		}
	}
	return types.NoPlayer, false
}

// PlayerIDs returns every player id in creation order.
func (w *World) PlayerIDs() []types.PlayerID {
	ids := make([]types.PlayerID, 0, len(w.ECS.Players))
	for id := range w.ECS.Players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SetWinState records the outcome of a player's game.
func (w *World) SetWinState(id types.PlayerID, state component.WinState) {
	if p, ok := w.ECS.Players[id]; ok {
		p.WinState = state
	}
}

// HasLost reports whether the player has been defeated. Unknown players have not.
func (w *World) HasLost(id types.PlayerID) bool {
	p, ok := w.ECS.Players[id]
	return ok && p.HasLost()
}

// Owner returns the entity's owner, or NoPlayer.
func (w *World) Owner(id types.EntityID) types.PlayerID {
	if o, ok := w.ECS.Owners[id]; ok {
		return o.Player
	}
	return types.NoPlayer
}

// ChangeOwner hands the entity to newOwner and notifies listeners
// synchronously. Disposed entities and no-op changes are ignored.
func (w *World) ChangeOwner(id types.EntityID, newOwner types.PlayerID) {
	o, ok := w.ECS.Owners[id]
	if !ok || w.IsDisposed(id) || o.Player == newOwner {
		return
	}
	oldOwner := o.Player
	o.Player = newOwner
	w.Events.Dispatch(event.Event{
		Type: event.OwnerChanged,
		Data: event.OwnerChangedData{Entity: id, OldOwner: oldOwner, NewOwner: newOwner},
	})
}
