// internal/component/mind_control.go
package component

import "go-mind-control/internal/types"

// MindControllable is the per-entity link state of an entity that can be
// taken over by a MindController.
type MindControllable struct {
	DefID string

	// Controller is a non-owning back reference; the controller's roster
	// is the owning side of the relation.
	Controller types.EntityID

	// OriginalOwner is captured when a link is made from the free state and
	// kept across re-links until control is revoked.
	OriginalOwner types.PlayerID

	ConditionToken int

	// TransferInFlight is set while an owner change started by the link
	// logic is settling, until the end of the tick.
	TransferInFlight bool

	Enabled bool
	Paused  bool
}

// NewMindControllable creates a free, enabled link state.
func NewMindControllable(defID string) *MindControllable {
	return &MindControllable{
		DefID:          defID,
		Controller:     types.InvalidEntity,
		OriginalOwner:  types.NoPlayer,
		ConditionToken: InvalidConditionToken,
		Enabled:        true,
	}
}

// IsLinked reports whether a controller currently holds the entity.
func (m *MindControllable) IsLinked() bool {
	return m.Controller != types.InvalidEntity
}

// MindController is the roster of entities held by one controller.
type MindController struct {
	DefID string

	// Controlled is ordered oldest first.
	Controlled       []types.EntityID
	ControllingToken int
}

// NewMindController creates an empty roster.
func NewMindController(defID string) *MindController {
	return &MindController{DefID: defID, ControllingToken: InvalidConditionToken}
}

// Contains reports whether id is in the roster.
func (m *MindController) Contains(id types.EntityID) bool {
	for _, c := range m.Controlled {
		if c == id {
			return true
		}
	}
	return false
}

// Remove deletes id from the roster, keeping order. It reports whether id was present.
func (m *MindController) Remove(id types.EntityID) bool {
	for i, c := range m.Controlled {
		if c == id {
			m.Controlled = append(m.Controlled[:i], m.Controlled[i+1:]...)
			return true
		}
	}
	return false
}
