// internal/system/movement.go
package system

import (
	"math"

	"go-mind-control/internal/component"
	"go-mind-control/internal/entity"
	"go-mind-control/internal/world"
)

// MovementSystem двигает сущности к цели текущего приказа Move.
type MovementSystem struct {
	ecs   *entity.ECS
	world *world.World
}

func NewMovementSystem(w *world.World) *MovementSystem {
	return &MovementSystem{ecs: w.ECS, world: w}
}

func (s *MovementSystem) Update(deltaTime float64) {
	for id, queue := range s.ecs.Activities {
		if !s.world.IsAlive(id) {
			continue
		}
		act, ok := queue.Current()
		if !ok || act.Kind != component.ActivityMove {
			continue
		}
		mobile, hasMobile := s.ecs.Mobiles[id]
		pos, hasPos := s.ecs.Positions[id]
		if !hasMobile || !hasPos || mobile.Speed <= 0 {
			queue.Complete()
			continue
		}

		dx := float64(act.Target.X - pos.Pos.X)
		dy := float64(act.Target.Y - pos.Pos.Y)
		dist := math.Sqrt(dx*dx + dy*dy)
		moveDistance := float64(mobile.Speed) * deltaTime

		if dist <= moveDistance {
			pos.Pos.X = act.Target.X
			pos.Pos.Y = act.Target.Y
			queue.Complete()
		} else {
			pos.Pos.X += int(math.Round(dx / dist * moveDistance))
			pos.Pos.Y += int(math.Round(dy / dist * moveDistance))
		}
	}
}
