package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"gambit/experiments"
	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/searcher"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	fen := flag.String("fen", game.NewChessState().Encode(), "Position to analyze in FEN")
	workers := flag.Int("workers", 8, "Number of parallel search workers")
	nodes := flag.Int("nodes", 0, "Node budget per worker (0 for the default)")
	duration := flag.Duration("time", 0, "Time budget for the search")
	seed := flag.Uint64("seed", 0, "Seed for reproducible searches")
	experiment := flag.String("experiment", "", "Experiment to run: scaling, throughput or tactics")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	switch *experiment {
	case "":
		analyze(*fen, *workers, *nodes, *duration, *seed)
	case "scaling":
		experiments.RunScalingExperiment()
	case "throughput":
		experiments.RunThroughputExperiment()
	case "tactics":
		experiments.RunTacticsExperiment()
	default:
		log.Fatal().Msgf("unknown experiment %q", *experiment)
	}
}

// analyze searches a single position and prints the vote distribution.
func analyze(fen string, workers, nodes int, duration time.Duration, seed uint64) {
	state, err := game.ParseFEN(fen)
	if err != nil {
		log.Fatal().Msgf("failed to parse position: %v", err)
	}

	options := []searcher.Option{}
	if seed > 0 {
		options = append(options, searcher.WithSeed(seed))
	}
	collector := metrics.NewCollector()
	options = append(options, searcher.WithMetrics(collector))

	coordinator := searcher.NewCoordinator(workers, game.RestoreFEN, game.EvaluateMaterial, game.PriorsMaterial, options...)

	move, votes, err := coordinator.Search(state, searcher.Limit{Time: duration, Nodes: nodes})
	if errors.Is(err, searcher.ErrPartialResult) {
		log.Warn().Msgf("reporting a degraded vote: %v", err)
	} else if err != nil {
		log.Fatal().Msgf("search failed: %v", err)
	}

	type vote struct {
		move  game.Move
		count int
	}
	ranked := []vote{}
	for m, count := range votes {
		ranked = append(ranked, vote{move: m, count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].move.String() < ranked[j].move.String()
	})

	output := termenv.NewOutput(os.Stdout)
	metric := collector.Complete()

	fmt.Printf("%s plays %s\n", state.Player(), output.String(move.String()).Foreground(output.Color("2")).Bold())
	for _, v := range ranked {
		fmt.Printf("  %s %d\n", v.move, v.count)
	}
	if seconds := metric.Duration.Seconds(); seconds > 0 {
		fmt.Printf("%d rounds over %d workers in %s (%.0f rounds/s, stopped on %s)\n",
			metric.Rounds, metric.Workers, metric.Duration.Round(time.Millisecond), float64(metric.Rounds)/seconds, metric.StopReason)
	}
}
