// internal/defs/scenario.go
package defs

import "image/color"

// PlayerDefinition describes one faction of a scenario.
type PlayerDefinition struct {
	InternalName string     `json:"internal_name"`
	Name         string     `json:"name"`
	Color        color.RGBA `json:"color"`
	NonCombatant bool       `json:"non_combatant"`
}

// UnitPlacement puts one unit on the map at start.
type UnitPlacement struct {
	Unit  string `json:"unit"`
	Owner string `json:"owner"` // player internal name
	X     int    `json:"x"`     // cells
	Y     int    `json:"y"`     // cells
}

// ScenarioDefinition is the initial state of a game.
type ScenarioDefinition struct {
	Name    string             `json:"name"`
	Players []PlayerDefinition `json:"players"`
	Units   []UnitPlacement    `json:"units"`
}
