package engine

import (
	"fmt"
	"time"

	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/searcher/agent"

	"github.com/rs/zerolog/log"
)

// LocalEngine plays two agents against each other in process, white moving
// first from the given position.
type LocalEngine struct {
	state game.State
	white agent.Agent
	black agent.Agent
}

func NewLocalEngine(start game.State, white, black agent.Agent) *LocalEngine {
	if start == nil {
		panic("Must supply a starting position")
	}
	if white == nil || black == nil {
		panic("Must supply both agents")
	}
	return &LocalEngine{state: start, white: white, black: black}
}

// Run executes the game loop until a result or the ply cap.
func (e *LocalEngine) Run() (string, metrics.GameMetric, []metrics.MoveMetric) {
	startTime := time.Now()
	log.Info().Msgf("%s is starting", e.state.Player())

	var moveMetrics []metrics.MoveMetric
	ply := 1
	for e.state.Winner() == "" && ply <= MaxPlies {
		side := e.state.Player()
		current := e.white
		if side == "black" {
			current = e.black
		}

		move, searchMetric, err := current.FindMove(e.state)
		if err != nil {
			panic(fmt.Sprintf("%s agent failed on ply %d: %v", side, ply, err))
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Ply:          ply,
			Player:       side,
			Move:         move.String(),
			SearchMetric: searchMetric,
		})

		log.Info().Msgf("ply %d: %s plays %s", ply, side, move)
		e.state = e.state.Play(move)
		ply++
	}

	winner := e.state.Winner()
	endTime := time.Now()
	if winner == "" {
		log.Info().Msgf("stopped after %d plies without a result", MaxPlies)
	} else {
		log.Info().Msgf("game over: %s", winner)
	}

	gameMetric := metrics.GameMetric{
		Winner:     winner,
		StartTime:  startTime,
		EndTime:    endTime,
		Duration:   endTime.Sub(startTime),
		TotalPlies: ply - 1,
	}
	return winner, gameMetric, moveMetrics
}
