// internal/interfaces/notify.go
package interfaces

import "go-mind-control/internal/types"

// KilledNotifier is told when an entity dies.
type KilledNotifier interface {
	OnKilled(id types.EntityID)
}

// DisposingNotifier is told right before an entity is removed from the world.
type DisposingNotifier interface {
	OnDisposing(id types.EntityID)
}

// OwnerChangedNotifier is told synchronously whenever an entity changes owner.
type OwnerChangedNotifier interface {
	OnOwnerChanged(id types.EntityID, oldOwner, newOwner types.PlayerID)
}

// TraitDisabledNotifier is told when a conditional trait turns off.
type TraitDisabledNotifier interface {
	OnTraitDisabled(id types.EntityID)
}

// ControlledRoster is the controller side of a mind control link.
type ControlledRoster interface {
	UnlinkControlled(controller, controlled types.EntityID)
}
