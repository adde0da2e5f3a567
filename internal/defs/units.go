// internal/defs/units.go
package defs

import "image/color"

// UnitDefinition holds all the static data for a specific type of unit.
type UnitDefinition struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	Speed            int                  `json:"speed"` // world units per second, 0 = immobile
	Visuals          Visuals              `json:"visuals"`
	MindControllable *MindControllableDef `json:"mind_controllable,omitempty"`
	MindController   *MindControllerDef   `json:"mind_controller,omitempty"`
}

// Visuals describes how a unit marker is drawn.
type Visuals struct {
	RadiusFactor float64 `json:"radius_factor"` // marker radius in cells
	HasStroke    bool    `json:"has_stroke"`
}

// MindControllableDef configures the trait of units that can be taken over.
type MindControllableDef struct {
	// Condition granted while under control.
	Condition string `json:"condition,omitempty"`
	// One of these is played when control is revoked.
	RevokeControlSounds []string `json:"revoke_control_sounds,omitempty"`
	// Player that receives the unit if its original owner has lost.
	FallbackOwner string `json:"fallback_owner,omitempty"`
	// "name" or "!name"; the trait is disabled while this does not hold.
	RequiresCondition string `json:"requires_condition,omitempty"`
	// The unit cannot be captured while this condition is granted.
	PauseOnCondition string `json:"pause_on_condition,omitempty"`
}

// MindControllerDef configures units that take over others.
type MindControllerDef struct {
	Capacity             int     `json:"capacity"` // <= 0 means unlimited
	DiscardOldest        bool    `json:"discard_oldest"`
	Range                int     `json:"range"` // world units, 0 = unlimited
	ControllingCondition string  `json:"controlling_condition,omitempty"`
	Bolt                 BoltDef `json:"bolt"`
}

// BoltDef describes the electric bolt drawn from a controller to each unit it holds.
type BoltDef struct {
	Color        color.RGBA `json:"color"`
	Width        int        `json:"width"`          // world units
	ZOffset      int        `json:"z_offset"`       // draw order tie-break
	SegmentLen   int        `json:"segment_length"` // world units between jitter points
	Jitter       float64    `json:"jitter"`         // perpendicular displacement, fraction of length
	FlickerTicks int        `json:"flicker_ticks"`  // ticks before the path is re-rolled
	Height       int        `json:"height"`         // world Z of both ends
}

// Library maps unit ids to definitions.
type Library map[string]UnitDefinition
