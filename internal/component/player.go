// internal/component/player.go
package component

import (
	"image/color"

	"go-mind-control/internal/types"
)

// WinState tracks how a player's game ended, if it has.
type WinState int

const (
	WinStateUndefined WinState = iota
	WinStateWon
	WinStateLost
)

func (w WinState) String() string {
	switch w {
	case WinStateWon:
		return "won"
	case WinStateLost:
		return "lost"
	}
	return "playing"
}

// Player is a faction that can own entities.
type Player struct {
	InternalName string // stable name definitions refer to, e.g. "Creeps"
	Name         string
	Color        color.RGBA
	NonCombatant bool
	WinState     WinState
}

// HasLost reports whether the player has been defeated.
func (p *Player) HasLost() bool {
	return p.WinState == WinStateLost
}

// Owner — компонент владельца сущности
type Owner struct {
	Player types.PlayerID
}
