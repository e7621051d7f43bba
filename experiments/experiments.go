package experiments

import (
	"fmt"
	"gambit/engine"
	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/searcher"
	"gambit/searcher/agent"

	"github.com/rs/zerolog/log"
)

const (
	NumGames   = 10 // Per match up
	NodeBudget = 800
)

var scalingConfigs = []metrics.AgentConfig{
	{ID: 1, Workers: 1, Nodes: NodeBudget},
	{ID: 2, Workers: 2, Nodes: NodeBudget},
	{ID: 3, Workers: 4, Nodes: NodeBudget},
	{ID: 4, Workers: 8, Nodes: NodeBudget},
	{ID: 5, Workers: 16, Nodes: NodeBudget},
}

// RunScalingExperiment pits each multi-worker agent against the sequential
// baseline at the same per-worker node budget. More workers means more total
// search effort, so the win rate measures what the extra votes buy.
func RunScalingExperiment() {
	baseline := metrics.AgentConfig{ID: 0, Workers: 1, Nodes: NodeBudget}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range scalingConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	runExperiment("scaling", append(scalingConfigs, baseline), matchUps)
}

func runExperiment(name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) {
	// Run a number of games for each matchup, alternating colors so neither
	// side banks the first-move advantage
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < NumGames; i++ {
			white, black := config1, config2
			if i%2 == 1 {
				white, black = config2, config1
			}

			log.Info().Msgf("starting matchup %d of %d game %d of %d...", mi+1, len(matchUps), i+1, NumGames)

			winner, gameMetric, moveMetrics := runGame(white, black)
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				White:      white.ID,
				Black:      black.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	// Store experiment metadata
	writer, err := metrics.NewWriter(name)
	if err != nil {
		panic(fmt.Sprintf("failed to create experiment writer: %v", err))
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		panic(fmt.Sprintf("failed to store agent configs: %v", err))
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		panic(fmt.Sprintf("failed to write game records: %v", err))
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		panic(fmt.Sprintf("failed to write move records: %v", err))
	}
	log.Info().Msgf("stored move records under %s", writer.BaseDir())
}

// runGame executes a single game between two agents and returns the winner
func runGame(white, black metrics.AgentConfig) (string, metrics.GameMetric, []metrics.MoveMetric) {
	e := engine.NewLocalEngine(game.NewChessState(), buildAgent(white), buildAgent(black))

	winner, gameMetric, moveMetrics := e.Run()

	return winner, gameMetric, moveMetrics
}

func buildAgent(config metrics.AgentConfig) agent.Agent {
	options := []searcher.Option{}

	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}
	if config.Noise > 0 {
		options = append(options, searcher.WithNoise(config.Noise))
	}

	collector := metrics.NewCollector()
	options = append(options, searcher.WithMetrics(collector))

	coordinator := searcher.NewCoordinator(config.Workers, game.RestoreFEN, game.EvaluateMaterial, game.PriorsMaterial, options...)
	limit := searcher.Limit{Time: config.Time, Nodes: config.Nodes}
	return agent.NewGreedyAgent(coordinator, limit, collector)
}
