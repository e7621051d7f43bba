package engine

import "gambit/experiments/metrics"

// MaxPlies stops a game that refuses to produce a result.
const MaxPlies = 512

type Engine interface {
	// Run starts a game till there's a winner or a max number of plies is reached
	Run() (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
