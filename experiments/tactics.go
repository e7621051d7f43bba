package experiments

import (
	"fmt"
	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/searcher"

	"github.com/rs/zerolog/log"
)

// Mate-in-one positions for both colors. The search should funnel every
// worker's votes onto the mating move well inside the node budget.
var tacticPositions = []struct {
	fen      string
	expected string
}{
	{"6k1/5ppp/8/8/8/8/8/4R2K w - - 0 1", "e1e8"},
	{"6k1/8/6K1/8/8/8/8/R7 w - - 0 1", "a1a8"},
	{"6k1/5ppp/8/8/8/8/8/3Q3K w - - 0 1", "d1d8"},
	{"4r2k/8/8/8/8/8/5PPP/6K1 b - - 0 1", "e8e1"},
	{"3q3k/8/8/8/8/8/5PPP/6K1 b - - 0 1", "d8d1"},
}

// RunTacticsExperiment checks that the agent converts forced mates.
func RunTacticsExperiment() {
	const Workers = 4
	const TacticBudget = 400

	records := []metrics.TacticRecord{}
	solved := 0

	log.Info().Msg("starting tactics experiment...")

	for _, tactic := range tacticPositions {
		state, err := game.ParseFEN(tactic.fen)
		if err != nil {
			panic(fmt.Sprintf("failed to parse tactic position: %v", err))
		}

		collector := metrics.NewCollector()
		coordinator := searcher.NewCoordinator(Workers, game.RestoreFEN, game.EvaluateMaterial, game.PriorsMaterial,
			searcher.WithMetrics(collector))

		move, _, err := coordinator.Search(state, searcher.Limit{Nodes: TacticBudget})
		if err != nil {
			panic(fmt.Sprintf("failed to search tactic position: %v", err))
		}

		record := metrics.TacticRecord{
			Position:     tactic.fen,
			Expected:     tactic.expected,
			Got:          move.String(),
			Solved:       move.String() == tactic.expected,
			SearchMetric: collector.Complete(),
		}
		records = append(records, record)
		if record.Solved {
			solved++
		} else {
			log.Warn().Msgf("missed tactic %q: expected %s, got %s", tactic.fen, tactic.expected, move)
		}
	}

	log.Info().Msgf("completed tactics experiment: solved %d of %d", solved, len(tacticPositions))

	// Store experiment results
	writer, err := metrics.NewWriter("tactics")
	if err != nil {
		panic(fmt.Sprintf("failed to create experiment writer: %v", err))
	}

	err = writer.WriteTacticRecords(records)
	if err != nil {
		panic(fmt.Sprintf("failed to write tactic records: %v", err))
	}
	log.Info().Msgf("stored tactic records under %s", writer.BaseDir())
}
