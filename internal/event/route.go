// internal/event/route.go
package event

import "go-mind-control/internal/interfaces"

// Route delivers lifecycle events to whichever notification interfaces
// target implements. It reports whether the event was handled.
func Route(e Event, target any) bool {
	switch e.Type {
	case EntityKilled:
		if n, ok := target.(interfaces.KilledNotifier); ok {
			n.OnKilled(e.Data.(EntityData).Entity)
			return true
		}
	case EntityDisposing:
		if n, ok := target.(interfaces.DisposingNotifier); ok {
			n.OnDisposing(e.Data.(EntityData).Entity)
			return true
		}
	case OwnerChanged:
		if n, ok := target.(interfaces.OwnerChangedNotifier); ok {
			d := e.Data.(OwnerChangedData)
			n.OnOwnerChanged(d.Entity, d.OldOwner, d.NewOwner)
			return true
		}
	case TraitDisabled:
		if n, ok := target.(interfaces.TraitDisabledNotifier); ok {
			n.OnTraitDisabled(e.Data.(EntityData).Entity)
			return true
		}
	}
	return false
}

// SubscribeNotifiers subscribes l to every lifecycle event its
// notification interfaces cover.
func (d *Dispatcher) SubscribeNotifiers(l Listener) {
	if _, ok := l.(interfaces.KilledNotifier); ok {
		d.Subscribe(EntityKilled, l)
	}
	if _, ok := l.(interfaces.DisposingNotifier); ok {
		d.Subscribe(EntityDisposing, l)
	}
	if _, ok := l.(interfaces.OwnerChangedNotifier); ok {
		d.Subscribe(OwnerChanged, l)
	}
	if _, ok := l.(interfaces.TraitDisabledNotifier); ok {
		d.Subscribe(TraitDisabled, l)
	}
}
