// internal/system/mind_controller.go
package system

import (
	"image/color"
	"math/rand"

	"go-mind-control/internal/component"
	"go-mind-control/internal/defs"
	"go-mind-control/internal/entity"
	"go-mind-control/internal/event"
	"go-mind-control/internal/interfaces"
	"go-mind-control/internal/types"
	"go-mind-control/internal/world"
	"go-mind-control/pkg/geom"
	"go-mind-control/pkg/render"
)

// MindControllerSystem owns the controller side: rosters, capacity, the
// controlling condition and the bolts drawn to each controlled unit.
type MindControllerSystem struct {
	ecs          *entity.ECS
	world        *world.World
	units        defs.Library
	controllable *MindControlSystem
}

var _ interfaces.ControlledRoster = (*MindControllerSystem)(nil)

func NewMindControllerSystem(w *world.World, units defs.Library, controllable *MindControlSystem) *MindControllerSystem {
	s := &MindControllerSystem{ecs: w.ECS, world: w, units: units, controllable: controllable}
	controllable.SetRoster(s)
	w.Events.SubscribeNotifiers(s)
	return s
}

// Attach makes id a controller with an empty roster.
func (s *MindControllerSystem) Attach(id types.EntityID, defID string) {
	s.ecs.MindControllers[id] = component.NewMindController(defID)
}

func (s *MindControllerSystem) OnEvent(e event.Event) {
	event.Route(e, s)
}

func (s *MindControllerSystem) info(mc *component.MindController) defs.MindControllerDef {
	if def, ok := s.units[mc.DefID]; ok && def.MindController != nil {
		return *def.MindController
	}
	return defs.MindControllerDef{}
}

// Roster returns a copy of the entities held by controller, oldest first.
func (s *MindControllerSystem) Roster(controller types.EntityID) []types.EntityID {
	mc, ok := s.ecs.MindControllers[controller]
	if !ok {
		return nil
	}
	return append([]types.EntityID(nil), mc.Controlled...)
}

// Control makes controller take over target. It reports whether a link was made.
func (s *MindControllerSystem) Control(controller, target types.EntityID) bool {
	if controller == target {
		return false
	}
	mc, ok := s.ecs.MindControllers[controller]
	if !ok || !s.world.IsAlive(controller) || !s.controllable.CanBeControlled(target) {
		return false
	}
	if mc.Contains(target) {
		return false
	}
	// Units already ours are not taken over, unless someone else holds them.
	if s.world.Owner(target) == s.world.Owner(controller) &&
		s.controllable.Controller(target) == types.InvalidEntity {
		return false
	}

	info := s.info(mc)
	if info.Range > 0 {
		d := s.world.CenterPosition(target).Sub(s.world.CenterPosition(controller))
		if d.HorizontalLength() > geom.WDist(info.Range) {
			return false
		}
	}

	if info.Capacity > 0 && len(mc.Controlled) >= info.Capacity {
		if !info.DiscardOldest {
			return false
		}
		oldest := mc.Controlled[0]
		mc.Controlled = mc.Controlled[1:]
		s.controllable.RevokeControl(oldest)
	}

	mc.Controlled = append(mc.Controlled, target)
	s.updateControllingCondition(controller, mc)
	s.controllable.LinkController(target, controller)
	return true
}

// UnlinkControlled drops controlled from controller's roster.
func (s *MindControllerSystem) UnlinkControlled(controller, controlled types.EntityID) {
	mc, ok := s.ecs.MindControllers[controller]
	if !ok {
		return
	}
	if mc.Remove(controlled) {
		s.updateControllingCondition(controller, mc)
	}
}

// ReleaseAll revokes control of every entity held by controller.
func (s *MindControllerSystem) ReleaseAll(controller types.EntityID) {
	mc, ok := s.ecs.MindControllers[controller]
	if !ok || len(mc.Controlled) == 0 {
		return
	}
	released := mc.Controlled
	mc.Controlled = nil
	for _, id := range released {
		s.controllable.RevokeControl(id)
	}
	s.updateControllingCondition(controller, mc)
}

func (s *MindControllerSystem) OnKilled(id types.EntityID)    { s.ReleaseAll(id) }
func (s *MindControllerSystem) OnDisposing(id types.EntityID) { s.ReleaseAll(id) }

func (s *MindControllerSystem) OnOwnerChanged(id types.EntityID, oldOwner, newOwner types.PlayerID) {
	s.ReleaseAll(id)
}

func (s *MindControllerSystem) updateControllingCondition(id types.EntityID, mc *component.MindController) {
	cond := s.info(mc).ControllingCondition
	if cond == "" {
		return
	}
	holding := len(mc.Controlled) > 0
	switch {
	case holding && mc.ControllingToken == component.InvalidConditionToken:
		mc.ControllingToken = s.world.GrantCondition(id, cond)
	case !holding && mc.ControllingToken != component.InvalidConditionToken:
		mc.ControllingToken = s.world.RevokeCondition(id, mc.ControllingToken)
	}
}

// Bolts builds one bolt per live link. The jitter of each path is stable
// for FlickerTicks ticks, then rolled again.
func (s *MindControllerSystem) Bolts() []render.Renderable {
	tick := s.world.CurrentTick()
	var out []render.Renderable
	for controller, mc := range s.ecs.MindControllers {
		if !s.world.IsAlive(controller) {
			continue
		}
		bolt := s.info(mc).Bolt
		flicker := bolt.FlickerTicks
		if flicker <= 0 {
			flicker = 1
		}
		from := s.world.CenterPosition(controller).Add(geom.WVec{Z: bolt.Height})
		for _, controlled := range mc.Controlled {
			if !s.world.IsAlive(controlled) {
				continue
			}
			to := s.world.CenterPosition(controlled).Add(geom.WVec{Z: bolt.Height})
			salt := int64(tick/uint64(flicker))*7919 + int64(controller)*131 + int64(controlled)
			rng := s.world.Rng.Derive(salt)
			points := BoltPath(from, to, bolt.SegmentLen, bolt.Jitter, rng)
			c := render.LerpColor(bolt.Color, boltHighlight, rng.Float64()*0.35)
			out = append(out, render.NewBolt(points, bolt.ZOffset, geom.WDist(bolt.Width), c))
		}
	}
	render.SortByZOffset(out)
	return out
}

var boltHighlight = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// BoltPath splits from→to into segments of about segLen and displaces each
// inner point sideways by up to jitter/2 of the full length. The ends are exact.
func BoltPath(from, to geom.WPos, segLen int, jitter float64, rng *rand.Rand) []geom.WPos {
	d := to.Sub(from)
	segments := 2
	if segLen > 0 {
		if n := int(d.HorizontalLength()) / segLen; n > segments {
			segments = n
		}
	}
	points := make([]geom.WPos, 0, segments+1)
	points = append(points, from)
	for i := 1; i < segments; i++ {
		p := geom.Lerp(from, to, i, segments)
		k := jitter * (rng.Float64() - 0.5)
		p.X += int(-float64(d.Y) * k)
		p.Y += int(float64(d.X) * k)
		points = append(points, p)
	}
	return append(points, to)
}
