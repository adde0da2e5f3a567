package system

import (
	"image/color"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"go-mind-control/internal/component"
	"go-mind-control/internal/defs"
	"go-mind-control/internal/entity"
	"go-mind-control/internal/event"
	"go-mind-control/internal/metrics"
	"go-mind-control/internal/types"
	"go-mind-control/internal/utils"
	"go-mind-control/internal/world"
	"go-mind-control/pkg/geom"
)

type fakeSound struct {
	played []string
	at     []geom.WPos
}

func (f *fakeSound) Play(name string, pos geom.WPos) {
	f.played = append(f.played, name)
	f.at = append(f.at, pos)
}

type eventLog struct {
	events []event.Event
}

func (l *eventLog) OnEvent(e event.Event) { l.events = append(l.events, e) }

func (l *eventLog) count(t event.EventType) int {
	n := 0
	for _, e := range l.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func testLibrary() defs.Library {
	return defs.Library{
		"conscript": {
			ID: "conscript",
			MindControllable: &defs.MindControllableDef{
				Condition:           "mindcontrolled",
				RevokeControlSounds: []string{"iyurlaua", "iyurlaub"},
				FallbackOwner:       "Creeps",
				RequiresCondition:   "!berserk",
				PauseOnCondition:    "empdisable",
			},
		},
		"orphan": {
			ID: "orphan",
			MindControllable: &defs.MindControllableDef{
				Condition:     "mindcontrolled",
				FallbackOwner: "Nobody",
			},
		},
		"yuri": {
			ID: "yuri",
			MindController: &defs.MindControllerDef{
				Capacity:             1,
				DiscardOldest:        true,
				ControllingCondition: "controlling",
				Bolt:                 defs.BoltDef{Width: 48, SegmentLen: 384, Jitter: 0.2, FlickerTicks: 3, Height: 512},
			},
		},
		"mastermind": {
			ID: "mastermind",
			MindController: &defs.MindControllerDef{
				Capacity: 3,
				Range:    8 * geom.UnitsPerCell,
			},
		},
	}
}

type harness struct {
	w           *world.World
	controlled  *MindControlSystem
	controllers *MindControllerSystem
	sound       *fakeSound
	log         *eventLog

	p1, p2, p3, creeps types.PlayerID
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	sound := &fakeSound{}
	w := world.New(entity.NewECS(), event.NewDispatcher(), utils.NewPRNGService(42), sound)
	lib := testLibrary()
	h := &harness{w: w, sound: sound, log: &eventLog{}}
	h.controlled = NewMindControlSystem(w, lib)
	h.controllers = NewMindControllerSystem(w, lib, h.controlled)
	for _, et := range []event.EventType{event.ControlLinked, event.ControlRevoked, event.TraitDisabled} {
		w.Events.Subscribe(et, h.log)
	}
	h.p1 = w.AddPlayer("Multi0", "Allies", color.RGBA{R: 200, A: 255}, false)
	h.p2 = w.AddPlayer("Multi1", "Yuri", color.RGBA{B: 200, A: 255}, false)
	h.p3 = w.AddPlayer("Multi2", "Soviets", color.RGBA{G: 200, A: 255}, false)
	h.creeps = w.AddPlayer("Creeps", "", color.RGBA{A: 255}, true)
	return h
}

func (h *harness) unit(defID string, owner types.PlayerID, cellX int) types.EntityID {
	id := h.w.Spawn(defID, defID, owner, geom.NewWPos(cellX*geom.UnitsPerCell, 0, 0))
	h.controlled.Attach(id, defID)
	return id
}

func (h *harness) controller(defID string, owner types.PlayerID, cellX int) types.EntityID {
	id := h.w.Spawn(defID, defID, owner, geom.NewWPos(cellX*geom.UnitsPerCell, 0, 0))
	h.controllers.Attach(id, defID)
	return id
}

func (h *harness) conditionCount(id types.EntityID, name string) int {
	c, ok := h.w.ECS.Conditions[id]
	if !ok {
		return 0
	}
	return c.Count(name)
}

func (h *harness) rosterContains(controller, id types.EntityID) bool {
	for _, c := range h.controllers.Roster(controller) {
		if c == id {
			return true
		}
	}
	return false
}

func TestLinkTransfersOwnership(t *testing.T) {
	h := newHarness(t)
	e := h.unit("conscript", h.p1, 1)
	c := h.controller("mastermind", h.p2, 2)
	h.w.QueueActivity(e, component.Activity{Kind: component.ActivityMove, Target: geom.NewWPos(0, 4096, 0)}, false)

	if !h.controllers.Control(c, e) {
		t.Fatal("Control() = false, want true")
	}

	if got := h.w.Owner(e); got != h.p2 {
		t.Errorf("owner = %d, want %d", got, h.p2)
	}
	if got := h.controlled.State(e); got != LinkTransferPending {
		t.Errorf("state = %v, want transfer-pending", got)
	}
	if got := h.controlled.Controller(e); got != c {
		t.Errorf("controller = %d, want %d", got, c)
	}
	if got := h.conditionCount(e, "mindcontrolled"); got != 1 {
		t.Errorf("mindcontrolled grants = %d, want 1", got)
	}
	if _, busy := h.w.ECS.Activities[e].Current(); busy {
		t.Error("activity not cancelled by the link")
	}
	if !h.rosterContains(c, e) {
		t.Error("roster does not contain the controlled unit")
	}
	if h.log.count(event.ControlLinked) != 1 {
		t.Errorf("ControlLinked events = %d, want 1", h.log.count(event.ControlLinked))
	}

	h.w.EndTick()
	if got := h.controlled.State(e); got != LinkLinked {
		t.Errorf("state after tick = %v, want linked", got)
	}
	if got := h.w.ECS.MindControllables[e].OriginalOwner; got != h.p1 {
		t.Errorf("original owner = %d, want %d", got, h.p1)
	}
}

func TestRelinkMovesBetweenControllers(t *testing.T) {
	h := newHarness(t)
	e := h.unit("conscript", h.p1, 1)
	a := h.controller("mastermind", h.p2, 2)
	b := h.controller("mastermind", h.p3, 3)

	h.controllers.Control(a, e)
	h.w.EndTick()
	h.controllers.Control(b, e)

	if got := h.controlled.Controller(e); got != b {
		t.Fatalf("controller = %d, want %d", got, b)
	}
	// The old roster is cleaned up at the end of the tick.
	if !h.rosterContains(a, e) {
		t.Error("old roster dropped the unit before the end of the tick")
	}
	h.w.EndTick()

	if h.rosterContains(a, e) {
		t.Error("old controller still lists the unit")
	}
	if !h.rosterContains(b, e) {
		t.Error("new controller does not list the unit")
	}
	if got := h.conditionCount(e, "mindcontrolled"); got != 1 {
		t.Errorf("mindcontrolled grants = %d, want exactly 1", got)
	}
	if got := h.w.Owner(e); got != h.p3 {
		t.Errorf("owner = %d, want %d", got, h.p3)
	}
	if got := h.w.ECS.MindControllables[e].OriginalOwner; got != h.p1 {
		t.Errorf("original owner = %d, want %d (kept across re-links)", got, h.p1)
	}
}

func TestAtMostOneControllerPerTick(t *testing.T) {
	h := newHarness(t)
	e := h.unit("conscript", h.p1, 1)
	ctrls := []types.EntityID{
		h.controller("mastermind", h.p2, 2),
		h.controller("mastermind", h.p3, 3),
		h.controller("mastermind", h.p2, 4),
	}

	for round := 0; round < 4; round++ {
		for _, c := range ctrls {
			h.controllers.Control(c, e)
		}
		h.w.EndTick()

		holders := 0
		for _, c := range ctrls {
			if h.rosterContains(c, e) {
				holders++
			}
		}
		if holders > 1 {
			t.Fatalf("round %d: %d rosters hold the unit", round, holders)
		}
		if holders == 1 && !h.rosterContains(h.controlled.Controller(e), e) {
			t.Fatalf("round %d: roster and back reference disagree", round)
		}
		if got := h.conditionCount(e, "mindcontrolled"); got > 1 {
			t.Fatalf("round %d: %d condition grants", round, got)
		}
	}
}

func TestRecaptureByOriginalOwnerFrees(t *testing.T) {
	h := newHarness(t)
	e := h.unit("conscript", h.p1, 1)
	enemy := h.controller("mastermind", h.p2, 2)
	ours := h.controller("mastermind", h.p1, 3)
	before := testutil.ToFloat64(metrics.SelfRecaptures)

	h.controllers.Control(enemy, e)
	h.w.EndTick()
	if !h.controllers.Control(ours, e) {
		t.Fatal("recapture rejected")
	}

	if got := h.controlled.Controller(e); got != types.InvalidEntity {
		t.Errorf("controller = %d, want none", got)
	}
	if got := h.w.Owner(e); got != h.p1 {
		t.Errorf("owner = %d, want original %d", got, h.p1)
	}
	if got := h.conditionCount(e, "mindcontrolled"); got != 0 {
		t.Errorf("mindcontrolled grants = %d, want 0", got)
	}
	h.w.EndTick()

	if got := h.controlled.State(e); got != LinkFree {
		t.Errorf("state = %v, want free", got)
	}
	if h.rosterContains(ours, e) || h.rosterContains(enemy, e) {
		t.Error("a roster still lists the freed unit")
	}
	if got := testutil.ToFloat64(metrics.SelfRecaptures) - before; got != 1 {
		t.Errorf("self recaptures counted = %v, want 1", got)
	}
}

func TestControlRejectsOwnFreeUnits(t *testing.T) {
	h := newHarness(t)
	e := h.unit("conscript", h.p2, 1)
	c := h.controller("mastermind", h.p2, 2)

	if h.controllers.Control(c, e) {
		t.Error("controller took over a free unit of its own owner")
	}
	if h.controllers.Control(c, c) {
		t.Error("controller took over itself")
	}
}

func TestRevokeReturnsToOriginalOwner(t *testing.T) {
	h := newHarness(t)
	e := h.unit("conscript", h.p1, 1)
	c := h.controller("mastermind", h.p2, 2)
	h.controllers.Control(c, e)
	h.w.EndTick()

	h.controlled.RevokeControl(e)

	if got := h.w.Owner(e); got != h.p1 {
		t.Errorf("owner = %d, want %d", got, h.p1)
	}
	if got := h.controlled.Controller(e); got != types.InvalidEntity {
		t.Errorf("controller = %d, want none", got)
	}
	if tok := h.w.ECS.MindControllables[e].ConditionToken; tok != component.InvalidConditionToken {
		t.Errorf("token = %d, want invalid", tok)
	}
	if len(h.sound.played) != 1 {
		t.Fatalf("sounds = %v, want one revoke cue", h.sound.played)
	}
	if cue := h.sound.played[0]; cue != "iyurlaua" && cue != "iyurlaub" {
		t.Errorf("played %q, not a configured revoke cue", cue)
	}
	if h.sound.at[0] != h.w.CenterPosition(e) {
		t.Errorf("cue played at %v, want %v", h.sound.at[0], h.w.CenterPosition(e))
	}
	if h.log.count(event.ControlRevoked) != 1 {
		t.Errorf("ControlRevoked events = %d, want 1", h.log.count(event.ControlRevoked))
	}
	if got := h.controlled.State(e); got != LinkFree {
		t.Errorf("state = %v, want free", got)
	}
	h.w.EndTick()
	if h.rosterContains(c, e) {
		t.Error("controller still lists the unit after revoke")
	}
}

func TestRevokeFreeUnitIsNoop(t *testing.T) {
	h := newHarness(t)
	e := h.unit("conscript", h.p1, 1)

	h.controlled.RevokeControl(e)

	if got := h.w.Owner(e); got != h.p1 {
		t.Errorf("owner = %d, want %d", got, h.p1)
	}
	if len(h.sound.played) != 0 {
		t.Errorf("sounds = %v, want none", h.sound.played)
	}
	if h.w.PendingFrameEndTasks() != 0 {
		t.Errorf("pending tasks = %d, want 0", h.w.PendingFrameEndTasks())
	}
}

func TestRevokeFallsBackWhenOriginalOwnerLost(t *testing.T) {
	h := newHarness(t)
	e := h.unit("conscript", h.p1, 1)
	c := h.controller("mastermind", h.p2, 2)
	h.controllers.Control(c, e)
	h.w.EndTick()

	h.w.SetWinState(h.p1, component.WinStateLost)
	h.controlled.RevokeControl(e)

	if got := h.w.Owner(e); got != h.creeps {
		t.Errorf("owner = %d, want fallback %d", got, h.creeps)
	}
}

func TestRevokeWithoutFallbackPlayerReturnsToOriginal(t *testing.T) {
	h := newHarness(t)
	e := h.unit("orphan", h.p1, 1)
	c := h.controller("mastermind", h.p2, 2)
	h.controllers.Control(c, e)
	h.w.EndTick()

	h.w.SetWinState(h.p1, component.WinStateLost)
	h.controlled.RevokeControl(e)

	if got := h.w.Owner(e); got != h.p1 {
		t.Errorf("owner = %d, want original %d", got, h.p1)
	}
	if len(h.sound.played) != 0 {
		t.Errorf("sounds = %v, want none for a unit without cues", h.sound.played)
	}
}

func TestLinkThenRevokeSameTick(t *testing.T) {
	h := newHarness(t)
	e := h.unit("conscript", h.p1, 1)
	c := h.controller("mastermind", h.p2, 2)

	h.controllers.Control(c, e)
	h.controlled.RevokeControl(e)

	if got := h.w.Owner(e); got != h.p1 {
		t.Errorf("owner = %d, want pre-link %d", got, h.p1)
	}
	if tok := h.w.ECS.MindControllables[e].ConditionToken; tok != component.InvalidConditionToken {
		t.Errorf("token = %d, want invalid", tok)
	}
	if got := h.conditionCount(e, "mindcontrolled"); got != 0 {
		t.Errorf("mindcontrolled grants = %d, want 0", got)
	}

	h.w.EndTick()
	if got := h.controlled.State(e); got != LinkFree {
		t.Errorf("state = %v, want free", got)
	}
	if h.rosterContains(c, e) {
		t.Error("roster still lists the unit")
	}
}

func TestKillTearsDownWithoutTransfer(t *testing.T) {
	h := newHarness(t)
	e := h.unit("conscript", h.p1, 1)
	c := h.controller("mastermind", h.p2, 2)
	h.controllers.Control(c, e)
	h.w.EndTick()

	h.w.Kill(e)

	if got := h.controlled.Controller(e); got != types.InvalidEntity {
		t.Errorf("controller = %d, want none", got)
	}
	if got := h.conditionCount(e, "mindcontrolled"); got != 0 {
		t.Errorf("mindcontrolled grants = %d, want 0", got)
	}
	if got := h.w.Owner(e); got != h.p2 {
		t.Errorf("owner = %d, want unchanged %d", got, h.p2)
	}
	if len(h.sound.played) != 0 {
		t.Errorf("sounds = %v, want none", h.sound.played)
	}
	// controller == none is visible before the roster is cleaned up.
	if !h.rosterContains(c, e) {
		t.Error("roster cleaned up before the end of the tick")
	}

	h.w.EndTick()
	if h.rosterContains(c, e) {
		t.Error("roster still lists the dead unit")
	}
}

func TestDisposeTearsDown(t *testing.T) {
	h := newHarness(t)
	e := h.unit("conscript", h.p1, 1)
	c := h.controller("mastermind", h.p2, 2)
	h.controllers.Control(c, e)
	h.w.EndTick()

	h.w.Dispose(e)

	if got := h.w.Owner(e); got != h.p2 {
		t.Errorf("owner = %d, want unchanged %d", got, h.p2)
	}
	if got := h.controlled.Controller(e); got != types.InvalidEntity {
		t.Errorf("controller = %d, want none", got)
	}
	h.w.EndTick()
	if h.rosterContains(c, e) {
		t.Error("roster still lists the disposed unit")
	}
}

func TestTraitDisabledTearsDown(t *testing.T) {
	h := newHarness(t)
	e := h.unit("conscript", h.p1, 1)
	c := h.controller("mastermind", h.p2, 2)
	h.controllers.Control(c, e)
	h.w.EndTick()

	token := h.w.GrantCondition(e, "berserk")

	if h.log.count(event.TraitDisabled) != 1 {
		t.Errorf("TraitDisabled events = %d, want 1", h.log.count(event.TraitDisabled))
	}
	if got := h.controlled.Controller(e); got != types.InvalidEntity {
		t.Errorf("controller = %d, want none", got)
	}
	if got := h.w.Owner(e); got != h.p2 {
		t.Errorf("owner = %d, want unchanged %d", got, h.p2)
	}
	if h.controlled.CanBeControlled(e) {
		t.Error("disabled unit can be controlled")
	}

	h.w.RevokeCondition(e, token)
	if !h.controlled.CanBeControlled(e) {
		t.Error("unit still disabled after the condition was revoked")
	}
}

func TestPausedUnitCannotBeCaptured(t *testing.T) {
	h := newHarness(t)
	e := h.unit("conscript", h.p1, 1)
	c := h.controller("mastermind", h.p2, 2)
	effects := NewStatusEffectSystem(h.w)

	effects.Apply(e, "empdisable", 1.0)
	if h.controllers.Control(c, e) {
		t.Fatal("paused unit was captured")
	}

	effects.Update(1.5)
	if !h.controllers.Control(c, e) {
		t.Error("unit not capturable after the pause expired")
	}
}

func TestExternalOwnerChangeBreaksLink(t *testing.T) {
	h := newHarness(t)
	e := h.unit("conscript", h.p1, 1)
	c := h.controller("mastermind", h.p2, 2)
	h.controllers.Control(c, e)
	h.w.EndTick()

	h.w.ChangeOwner(e, h.p3)

	if got := h.controlled.Controller(e); got != types.InvalidEntity {
		t.Errorf("controller = %d, want none", got)
	}
	if got := h.w.Owner(e); got != h.p3 {
		t.Errorf("owner = %d, want %d", got, h.p3)
	}
	if len(h.sound.played) != 0 {
		t.Errorf("sounds = %v, want none", h.sound.played)
	}
}

func TestOwnerChangeDuringTransferIsIgnored(t *testing.T) {
	h := newHarness(t)
	e := h.unit("conscript", h.p1, 1)
	c := h.controller("mastermind", h.p2, 2)
	h.controllers.Control(c, e)

	h.w.ChangeOwner(e, h.p3)

	if got := h.controlled.Controller(e); got != c {
		t.Errorf("controller = %d, want %d while the transfer settles", got, c)
	}
}

func TestControllerDeathRevokesAll(t *testing.T) {
	h := newHarness(t)
	e1 := h.unit("conscript", h.p1, 1)
	e2 := h.unit("conscript", h.p3, 3)
	c := h.controller("mastermind", h.p2, 2)
	h.controllers.Control(c, e1)
	h.controllers.Control(c, e2)
	h.w.EndTick()

	h.w.Kill(c)

	if got := h.w.Owner(e1); got != h.p1 {
		t.Errorf("e1 owner = %d, want %d", got, h.p1)
	}
	if got := h.w.Owner(e2); got != h.p3 {
		t.Errorf("e2 owner = %d, want %d", got, h.p3)
	}
	if len(h.sound.played) != 2 {
		t.Errorf("sounds = %v, want two revoke cues", h.sound.played)
	}
	// The deferred roster removal must skip the dead controller.
	h.w.EndTick()
	h.w.EndTick()
	if _, ok := h.w.ECS.MindControllers[c]; ok {
		t.Error("dead controller was not removed")
	}
}

func TestCapacityDiscardsOldest(t *testing.T) {
	h := newHarness(t)
	e1 := h.unit("conscript", h.p1, 1)
	e2 := h.unit("conscript", h.p1, 3)
	c := h.controller("yuri", h.p2, 2)

	h.controllers.Control(c, e1)
	if got := h.conditionCount(c, "controlling"); got != 1 {
		t.Errorf("controlling grants = %d, want 1", got)
	}
	h.w.EndTick()
	h.controllers.Control(c, e2)

	if got := h.w.Owner(e1); got != h.p1 {
		t.Errorf("oldest unit owner = %d, want returned to %d", got, h.p1)
	}
	if got := h.controllers.Roster(c); len(got) != 1 || got[0] != e2 {
		t.Errorf("roster = %v, want [%d]", got, e2)
	}
	h.w.EndTick()

	h.controlled.RevokeControl(e2)
	h.w.EndTick()
	if got := h.conditionCount(c, "controlling"); got != 0 {
		t.Errorf("controlling grants = %d, want 0 with an empty roster", got)
	}
}

func TestControlRespectsRange(t *testing.T) {
	h := newHarness(t)
	near := h.unit("conscript", h.p1, 5)
	far := h.unit("conscript", h.p1, 20)
	c := h.controller("mastermind", h.p2, 0)

	if !h.controllers.Control(c, near) {
		t.Error("unit in range rejected")
	}
	if h.controllers.Control(c, far) {
		t.Error("unit out of range captured")
	}
}

func TestFallbackScenario(t *testing.T) {
	h := newHarness(t)
	e := h.unit("conscript", h.p1, 1)
	c := h.controller("mastermind", h.p2, 2)

	h.controllers.Control(c, e)
	if h.w.Owner(e) != h.p2 || h.w.ECS.MindControllables[e].ConditionToken == component.InvalidConditionToken {
		t.Fatal("link did not transfer the unit")
	}
	if !h.rosterContains(c, e) {
		t.Fatal("roster does not contain the unit")
	}
	h.w.EndTick()

	h.w.SetWinState(h.p1, component.WinStateLost)
	h.controlled.RevokeControl(e)
	h.w.EndTick()

	if got := h.w.Owner(e); got != h.creeps {
		t.Errorf("owner = %d, want Creeps (%d)", got, h.creeps)
	}
	if tok := h.w.ECS.MindControllables[e].ConditionToken; tok != component.InvalidConditionToken {
		t.Errorf("token = %d, want invalid", tok)
	}
	if h.rosterContains(c, e) {
		t.Error("roster still contains the unit")
	}
}
