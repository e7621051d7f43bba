package searcher

import "time"

// DefaultNodes bounds a search given an empty Limit.
const DefaultNodes = 3200

// Limit bounds a single search call. Either or both fields may be set; the
// zero value searches DefaultNodes rounds. The dominance early exit applies
// regardless of which budgets are set.
type Limit struct {
	Time  time.Duration // Wall-clock budget
	Nodes int           // Round budget, one oracle consult per round
}

// effective substitutes the default node budget when no budget is set.
func (l Limit) effective() Limit {
	if l.Time <= 0 && l.Nodes <= 0 {
		l.Nodes = DefaultNodes
	}
	return l
}
