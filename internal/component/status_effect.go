// internal/component/status_effect.go
package component

// InvalidConditionToken is returned when no condition is held.
const InvalidConditionToken = -1

// Conditions stores the condition grants of one entity. Each grant gets its
// own token; the same name may be granted several times.
type Conditions struct {
	Granted   map[int]string
	NextToken int
}

// NewConditions creates an empty condition set.
func NewConditions() *Conditions {
	return &Conditions{Granted: make(map[int]string)}
}

// Count returns how many grants of name are outstanding.
func (c *Conditions) Count(name string) int {
	n := 0
	for _, granted := range c.Granted {
		if granted == name {
			n++
		}
	}
	return n
}

// TimedCondition is a grant that expires on its own, like an EMP stun.
type TimedCondition struct {
	Condition string
	Token     int
	Timer     float64 // How much time is left for the effect.
}

// TimedConditions holds every expiring grant of one entity.
type TimedConditions struct {
	Active []TimedCondition
}
