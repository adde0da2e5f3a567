// internal/event/types.go
package event

import "go-mind-control/internal/types"

const (
	OwnerChanged      EventType = "OwnerChanged"      // Data: OwnerChangedData
	EntityKilled      EventType = "EntityKilled"      // Data: EntityData
	EntityDisposing   EventType = "EntityDisposing"   // Data: EntityData
	ConditionsChanged EventType = "ConditionsChanged" // Data: EntityData
	TraitDisabled     EventType = "TraitDisabled"     // Data: EntityData
	ControlLinked     EventType = "ControlLinked"     // Data: ControlData
	ControlRevoked    EventType = "ControlRevoked"    // Data: ControlData
	RevokeRequest     EventType = "RevokeRequest"     // Data: EntityData
)

// EntityData is the payload of events about a single entity.
type EntityData struct {
	Entity types.EntityID
}

// OwnerChangedData is sent whenever an entity changes hands.
type OwnerChangedData struct {
	Entity   types.EntityID
	OldOwner types.PlayerID
	NewOwner types.PlayerID
}

// ControlData describes a controller/controlled pair.
type ControlData struct {
	Controlled types.EntityID
	Controller types.EntityID
	NewOwner   types.PlayerID
}
