package agent

import (
	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/searcher"
)

// Searcher is the search entry point an agent drives: a single tree or a
// root-parallel coordinator.
type Searcher interface {
	Search(state game.State, limit searcher.Limit) (game.Move, map[game.Move]int, error)
}

type Agent interface {
	// FindMove returns a move for the position and the search metrics behind
	// it (zero-valued unless a collector was attached to the searcher).
	FindMove(state game.State) (game.Move, metrics.SearchMetric, error)
}
