// internal/component/movement.go
package component

import "go-mind-control/pkg/geom"

// Position — компонент позиции
type Position struct {
	Pos geom.WPos
}

// Mobile marks entities that can follow move orders.
type Mobile struct {
	Speed geom.WDist // world units per second
}

// ActivityKind names what an order makes the entity do.
type ActivityKind string

const (
	ActivityMove ActivityKind = "Move"
	ActivityHold ActivityKind = "Hold"
)

// Activity is one queued order.
type Activity struct {
	Kind   ActivityKind
	Target geom.WPos
}

// ActivityQueue holds the orders of an entity, current one first.
type ActivityQueue struct {
	Queue []Activity
}

// Current returns the order being executed, if any.
func (q *ActivityQueue) Current() (Activity, bool) {
	if len(q.Queue) == 0 {
		return Activity{}, false
	}
	return q.Queue[0], true
}

// Complete drops the current order.
func (q *ActivityQueue) Complete() {
	if len(q.Queue) > 0 {
		q.Queue = q.Queue[1:]
	}
}

// Cancel drops every queued order.
func (q *ActivityQueue) Cancel() {
	q.Queue = q.Queue[:0]
}
