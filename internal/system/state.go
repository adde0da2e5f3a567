// internal/system/state.go
package system

import (
	"log"

	"go-mind-control/internal/component"
	"go-mind-control/internal/entity"
	"go-mind-control/internal/types"
	"go-mind-control/internal/world"
)

// StateSystem decides when a player has lost: a combatant player that owned
// units and no longer owns any live one is out of the game.
type StateSystem struct {
	ecs      *entity.ECS
	world    *world.World
	hadUnits map[types.PlayerID]bool
}

func NewStateSystem(w *world.World) *StateSystem {
	return &StateSystem{ecs: w.ECS, world: w, hadUnits: make(map[types.PlayerID]bool)}
}

func (s *StateSystem) Update(deltaTime float64) {
	alive := make(map[types.PlayerID]int)
	for id, owner := range s.ecs.Owners {
		if s.world.IsAlive(id) {
			alive[owner.Player]++
		}
	}
	for _, pid := range s.world.PlayerIDs() {
		p := s.world.Player(pid)
		if p.NonCombatant || p.WinState != component.WinStateUndefined {
			continue
		}
		if alive[pid] > 0 {
			s.hadUnits[pid] = true
			continue
		}
		if s.hadUnits[pid] {
			log.Printf("player %s has no units left", p.InternalName)
			s.world.SetWinState(pid, component.WinStateLost)
		}
	}
}
