package agent

import (
	"errors"

	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/searcher"

	"github.com/rs/zerolog/log"
)

type greedyAgent struct {
	searcher  Searcher
	limit     searcher.Limit
	collector metrics.Collector
}

// NewGreedyAgent returns an agent for evaluation play: it always takes the
// search's top vote. A partial parallel vote is accepted with a warning
// rather than forfeiting the move. collector may be nil.
func NewGreedyAgent(s Searcher, limit searcher.Limit, collector metrics.Collector) Agent {
	if s == nil {
		panic("Must supply a searcher")
	}
	if collector == nil {
		collector = metrics.NewDummyCollector()
	}
	return greedyAgent{searcher: s, limit: limit, collector: collector}
}

func (a greedyAgent) FindMove(state game.State) (game.Move, metrics.SearchMetric, error) {
	move, _, err := a.searcher.Search(state, a.limit)
	if err != nil {
		if !errors.Is(err, searcher.ErrPartialResult) {
			return nil, metrics.SearchMetric{}, err
		}
		log.Warn().Msgf("accepting a degraded vote: %v", err)
	}
	return move, a.collector.Complete(), nil
}
