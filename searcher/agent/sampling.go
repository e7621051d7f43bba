package agent

import (
	"errors"
	"math"
	"math/rand/v2"

	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/searcher"

	"github.com/rs/zerolog/log"
)

type samplingAgent struct {
	searcher    Searcher
	limit       searcher.Limit
	temperature float64
	collector   metrics.Collector
	rng         *rand.Rand
}

// NewSamplingAgent returns an agent for self-play variety: it draws its move
// from the visit distribution sharpened (or flattened) by temperature. A
// temperature of 1 samples visits proportionally; lower values approach the
// greedy choice. collector may be nil.
func NewSamplingAgent(s Searcher, limit searcher.Limit, temperature float64, seed uint64, collector metrics.Collector) Agent {
	if s == nil {
		panic("Must supply a searcher")
	}
	if temperature <= 0 {
		panic("Must use a positive temperature")
	}
	if collector == nil {
		collector = metrics.NewDummyCollector()
	}
	return samplingAgent{
		searcher:    s,
		limit:       limit,
		temperature: temperature,
		collector:   collector,
		rng:         rand.New(rand.NewPCG(seed, seed)),
	}
}

func (a samplingAgent) FindMove(state game.State) (game.Move, metrics.SearchMetric, error) {
	_, visits, err := a.searcher.Search(state, a.limit)
	if err != nil {
		if !errors.Is(err, searcher.ErrPartialResult) {
			return nil, metrics.SearchMetric{}, err
		}
		log.Warn().Msgf("accepting a degraded vote: %v", err)
	}
	// TODO: anneal the temperature as the game progresses
	policy := adjustTemperature(visits, a.temperature)
	return a.sample(policy), a.collector.Complete(), nil
}

func adjustTemperature(visits map[game.Move]int, temperature float64) map[game.Move]float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make(map[game.Move]float64, len(visits))
	for move, visit := range visits {
		prob := math.Pow(float64(visit), exponent)
		sum += prob
		adjusted[move] = prob
	}
	// Normalize
	for move := range adjusted {
		adjusted[move] /= sum
	}
	return adjusted
}

func (a samplingAgent) sample(policy map[game.Move]float64) game.Move {
	sampled := a.rng.Float64()
	cumulative := 0.0
	var lastMove game.Move
	for move, prob := range policy {
		lastMove = move
		cumulative += prob
		if sampled < cumulative {
			return move
		}
	}
	return lastMove // Fallback in case of rounding errors
}
