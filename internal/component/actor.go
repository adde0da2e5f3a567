// internal/component/actor.go
package component

// Actor holds the identity and lifecycle flags shared by every entity.
type Actor struct {
	DefID    string // key into defs.UnitLibrary
	Name     string
	Dead     bool
	Disposed bool
}
