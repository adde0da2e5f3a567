// internal/system/mind_control.go
package system

import (
	"log"

	"go-mind-control/internal/component"
	"go-mind-control/internal/config"
	"go-mind-control/internal/defs"
	"go-mind-control/internal/entity"
	"go-mind-control/internal/event"
	"go-mind-control/internal/interfaces"
	"go-mind-control/internal/metrics"
	"go-mind-control/internal/types"
	"go-mind-control/internal/utils"
	"go-mind-control/internal/world"
)

// LinkState is the externally visible state of a mind controllable entity.
type LinkState int

const (
	LinkFree LinkState = iota
	LinkLinked
	LinkTransferPending
)

func (s LinkState) String() string {
	switch s {
	case LinkLinked:
		return "linked"
	case LinkTransferPending:
		return "transfer-pending"
	}
	return "free"
}

// MindControlSystem owns the controlled side of mind control links.
type MindControlSystem struct {
	ecs    *entity.ECS
	world  *world.World
	units  defs.Library
	roster interfaces.ControlledRoster
}

var (
	_ interfaces.KilledNotifier        = (*MindControlSystem)(nil)
	_ interfaces.DisposingNotifier     = (*MindControlSystem)(nil)
	_ interfaces.OwnerChangedNotifier  = (*MindControlSystem)(nil)
	_ interfaces.TraitDisabledNotifier = (*MindControlSystem)(nil)
)

func NewMindControlSystem(w *world.World, units defs.Library) *MindControlSystem {
	s := &MindControlSystem{ecs: w.ECS, world: w, units: units}
	w.Events.SubscribeNotifiers(s)
	w.Events.Subscribe(event.ConditionsChanged, s)
	return s
}

// SetRoster wires the controller side that deferred unlinks report to.
func (s *MindControlSystem) SetRoster(r interfaces.ControlledRoster) {
	s.roster = r
}

// Attach adds the trait to an entity and evaluates its conditions.
func (s *MindControlSystem) Attach(id types.EntityID, defID string) {
	s.ecs.MindControllables[id] = component.NewMindControllable(defID)
	s.updateConditionalState(id)
}

func (s *MindControlSystem) OnEvent(e event.Event) {
	if event.Route(e, s) {
		return
	}
	if e.Type == event.ConditionsChanged {
		s.updateConditionalState(e.Data.(event.EntityData).Entity)
	}
}

func (s *MindControlSystem) info(mc *component.MindControllable) defs.MindControllableDef {
	if def, ok := s.units[mc.DefID]; ok && def.MindControllable != nil {
		return *def.MindControllable
	}
	return defs.MindControllableDef{FallbackOwner: config.DefaultFallbackOwner}
}

// State reports where id is in the link state machine.
func (s *MindControlSystem) State(id types.EntityID) LinkState {
	mc, ok := s.ecs.MindControllables[id]
	switch {
	case !ok || !mc.IsLinked():
		return LinkFree
	case mc.TransferInFlight:
		return LinkTransferPending
	}
	return LinkLinked
}

// Controller returns the entity holding id, or InvalidEntity.
func (s *MindControlSystem) Controller(id types.EntityID) types.EntityID {
	if mc, ok := s.ecs.MindControllables[id]; ok {
		return mc.Controller
	}
	return types.InvalidEntity
}

// CanBeControlled reports whether a controller may take id over right now.
func (s *MindControlSystem) CanBeControlled(id types.EntityID) bool {
	mc, ok := s.ecs.MindControllables[id]
	return ok && mc.Enabled && !mc.Paused && s.world.IsAlive(id)
}

// LinkController hands self to controller's owner and records the link.
// An existing link is broken first, so self never has two controllers.
func (s *MindControlSystem) LinkController(self, controller types.EntityID) {
	mc, ok := s.ecs.MindControllables[self]
	if !ok {
		return
	}
	info := s.info(mc)

	s.world.CancelActivity(self)

	if !mc.IsLinked() {
		mc.OriginalOwner = s.world.Owner(self)
	}

	mc.TransferInFlight = true

	newOwner := s.world.Owner(controller)
	s.world.ChangeOwner(self, newOwner)

	if mc.Controller != controller {
		s.UnlinkController(self, mc.Controller)
		mc.Controller = controller
		metrics.ControlledEntities.Inc()
	}
	metrics.LinksEstablished.Inc()

	if mc.ConditionToken == component.InvalidConditionToken && info.Condition != "" {
		mc.ConditionToken = s.world.GrantCondition(self, info.Condition)
	}

	// Taking back a unit that was ours to begin with frees it.
	if newOwner == mc.OriginalOwner {
		metrics.SelfRecaptures.Inc()
		s.UnlinkController(self, controller)
	} else {
		s.world.Notify(event.ControlLinked, event.ControlData{Controlled: self, Controller: controller, NewOwner: newOwner})
	}

	s.world.AddFrameEndTask(func() { mc.TransferInFlight = false })
}

// UnlinkController breaks the link between self and controller. The
// controller's roster is updated at the end of the tick, if the controller
// still exists then; the link state and condition are cleared now.
func (s *MindControlSystem) UnlinkController(self, controller types.EntityID) {
	if controller == types.InvalidEntity {
		return
	}

	s.world.AddFrameEndTask(func() {
		if s.world.IsDead(controller) || s.world.IsDisposed(controller) {
			return
		}
		if s.roster != nil {
			s.roster.UnlinkControlled(controller, self)
		}
	})

	mc, ok := s.ecs.MindControllables[self]
	if !ok {
		return
	}
	if mc.IsLinked() {
		metrics.ControlledEntities.Dec()
	}
	mc.Controller = types.InvalidEntity

	if mc.ConditionToken != component.InvalidConditionToken {
		mc.ConditionToken = s.world.RevokeCondition(self, mc.ConditionToken)
	}
}

// RevokeControl returns self to its original owner, or to the fallback
// owner if the original one has lost, and breaks the link.
func (s *MindControlSystem) RevokeControl(self types.EntityID) {
	mc, ok := s.ecs.MindControllables[self]
	if !ok || !mc.IsLinked() {
		return
	}
	info := s.info(mc)
	controller := mc.Controller

	s.world.CancelActivity(self)

	mc.TransferInFlight = true

	newOwner, outcome := mc.OriginalOwner, metrics.RevokeToOriginal
	if s.world.HasLost(mc.OriginalOwner) {
		if fallback, found := s.world.PlayerByName(info.FallbackOwner); found {
			newOwner, outcome = fallback, metrics.RevokeToFallback
		} else {
			log.Printf("mind control: fallback owner %q not found, returning entity %d to player %d",
				info.FallbackOwner, self, mc.OriginalOwner)
		}
	}
	s.world.ChangeOwner(self, newOwner)

	s.UnlinkController(self, controller)

	if cue, ok := utils.PickUniform(s.world.Rng, info.RevokeControlSounds); ok {
		s.world.PlaySound(cue, s.world.CenterPosition(self))
	}

	metrics.Revokes.WithLabelValues(outcome).Inc()
	s.world.Notify(event.ControlRevoked, event.ControlData{Controlled: self, Controller: controller, NewOwner: newOwner})

	s.world.AddFrameEndTask(func() { mc.TransferInFlight = false })
}

func (s *MindControlSystem) forceUnlink(id types.EntityID, reason string) {
	mc, ok := s.ecs.MindControllables[id]
	if !ok || !mc.IsLinked() {
		return
	}
	metrics.ForcedUnlinks.WithLabelValues(reason).Inc()
	s.UnlinkController(id, mc.Controller)
}

func (s *MindControlSystem) OnKilled(id types.EntityID) {
	s.forceUnlink(id, metrics.ReasonKilled)
}

func (s *MindControlSystem) OnDisposing(id types.EntityID) {
	s.forceUnlink(id, metrics.ReasonDisposed)
}

func (s *MindControlSystem) OnTraitDisabled(id types.EntityID) {
	s.forceUnlink(id, metrics.ReasonTraitDisabled)
}

// OnOwnerChanged treats an owner change made by anyone else as a forced unlink.
func (s *MindControlSystem) OnOwnerChanged(id types.EntityID, oldOwner, newOwner types.PlayerID) {
	mc, ok := s.ecs.MindControllables[id]
	if !ok || mc.TransferInFlight {
		return
	}
	s.forceUnlink(id, metrics.ReasonOwnerChanged)
}

func (s *MindControlSystem) updateConditionalState(id types.EntityID) {
	mc, ok := s.ecs.MindControllables[id]
	if !ok {
		return
	}
	info := s.info(mc)

	mc.Paused = info.PauseOnCondition != "" && s.world.HasCondition(id, info.PauseOnCondition)

	enabled := s.conditionHolds(id, info.RequiresCondition)
	if enabled == mc.Enabled {
		return
	}
	mc.Enabled = enabled
	if !enabled {
		s.world.TraitDisabled(id)
	}
}

// conditionHolds evaluates "", "name" or "!name" against the entity's grants.
func (s *MindControlSystem) conditionHolds(id types.EntityID, expr string) bool {
	if expr == "" {
		return true
	}
	if expr[0] == '!' {
		return !s.world.HasCondition(id, expr[1:])
	}
	return s.world.HasCondition(id, expr)
}
