// internal/system/status_effect.go
package system

import (
	"go-mind-control/internal/component"
	"go-mind-control/internal/entity"
	"go-mind-control/internal/types"
	"go-mind-control/internal/world"
)

// StatusEffectSystem управляет временными условиями, такими как EMP.
type StatusEffectSystem struct {
	ecs   *entity.ECS
	world *world.World
}

func NewStatusEffectSystem(w *world.World) *StatusEffectSystem {
	return &StatusEffectSystem{ecs: w.ECS, world: w}
}

// Apply grants condition to id for duration seconds.
func (s *StatusEffectSystem) Apply(id types.EntityID, condition string, duration float64) bool {
	if !s.world.IsAlive(id) || duration <= 0 {
		return false
	}
	token := s.world.GrantCondition(id, condition)
	if token == component.InvalidConditionToken {
		return false
	}
	timed, ok := s.ecs.TimedConditions[id]
	if !ok {
		timed = &component.TimedConditions{}
		s.ecs.TimedConditions[id] = timed
	}
	timed.Active = append(timed.Active, component.TimedCondition{Condition: condition, Token: token, Timer: duration})
	return true
}

// Update обрабатывает все активные эффекты.
func (s *StatusEffectSystem) Update(deltaTime float64) {
	for id, timed := range s.ecs.TimedConditions {
		kept := timed.Active[:0]
		var expired []component.TimedCondition
		for _, tc := range timed.Active {
			tc.Timer -= deltaTime
			if tc.Timer <= 0 {
				expired = append(expired, tc)
				continue
			}
			kept = append(kept, tc)
		}
		timed.Active = kept
		// Revoking dispatches events, so it happens after the slice is settled.
		for _, tc := range expired {
			s.world.RevokeCondition(id, tc.Token)
		}
		if len(timed.Active) == 0 {
			delete(s.ecs.TimedConditions, id)
		}
	}
}
