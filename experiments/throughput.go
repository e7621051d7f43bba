package experiments

import (
	"fmt"
	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/searcher"
	"time"

	"github.com/rs/zerolog/log"
)

// Benchmark positions spanning the phases of a game: the initial position,
// an open Sicilian, a middlegame with both sides developed, and a pawn endgame.
var throughputPositions = []string{
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
	"r1bq1rk1/pppp1ppp/2n2n2/2b1p3/2B1P3/2NP1N2/PPP2PPP/R1BQ1RK1 w - - 0 1",
	"8/8/4k3/8/8/4K3/4P3/8 w - - 0 1",
}

// RunThroughputExperiment measures search rounds per second across worker
// counts. Each worker owns an independent tree, so the rounds of a search sum
// across workers and the speedup over one worker is the rescheduling overhead
// made visible.
func RunThroughputExperiment() {
	const TimeBudget = 3 * time.Second
	workerCounts := []int{1, 2, 4, 8}

	records := []metrics.ThroughputRecord{}

	log.Info().Msg("starting throughput experiment...")

	for _, workers := range workerCounts {
		for _, fen := range throughputPositions {
			state, err := game.ParseFEN(fen)
			if err != nil {
				panic(fmt.Sprintf("failed to parse benchmark position: %v", err))
			}

			collector := metrics.NewCollector()
			coordinator := searcher.NewCoordinator(workers, game.RestoreFEN, game.EvaluateMaterial, game.PriorsMaterial,
				searcher.WithMetrics(collector))

			_, _, err = coordinator.Search(state, searcher.Limit{Time: TimeBudget})
			if err != nil {
				panic(fmt.Sprintf("failed to search benchmark position: %v", err))
			}

			metric := collector.Complete()
			records = append(records, metrics.ThroughputRecord{
				Position:     fen,
				SearchMetric: metric,
			})

			log.Info().Msgf("%d workers searched %q at %.0f rounds/s", workers, fen, float64(metric.Rounds)/metric.Duration.Seconds())
		}
	}

	log.Info().Msg("completed throughput experiment")

	// Store experiment results
	writer, err := metrics.NewWriter("throughput")
	if err != nil {
		panic(fmt.Sprintf("failed to create experiment writer: %v", err))
	}

	err = writer.WriteThroughputRecords(records)
	if err != nil {
		panic(fmt.Sprintf("failed to write throughput records: %v", err))
	}
	log.Info().Msgf("stored throughput records under %s", writer.BaseDir())
}
