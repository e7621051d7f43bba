package searcher

import (
	"errors"
	"fmt"
	"time"

	"gambit/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ErrPartialResult reports that only a subset of workers finished; the move
// returned alongside it aggregates that subset. Callers decide whether a
// degraded vote is acceptable.
var ErrPartialResult = errors.New("partial worker results")

// Coordinator root-parallelizes the search: every worker grows a private
// tree over its own reconstruction of the position, and their root visit
// counts are summed into one vote. Workers share no tree state, only the
// metrics collector.
type Coordinator struct {
	workers  int
	restore  game.Restore
	template *Tree
}

// NewCoordinator configures a root-parallel search with the given number of
// workers. Worker trees blend in Dirichlet noise by default so that their
// votes decorrelate; pass WithNoise(0) to make every worker identical.
func NewCoordinator(workers int, restore game.Restore, evaluate game.Evaluate, priors game.Priors, options ...Option) *Coordinator {
	if workers < 1 {
		panic("Must run at least one worker")
	}
	if restore == nil {
		panic("Must supply a restore function")
	}
	options = append([]Option{WithNoise(DefaultNoiseWeight)}, options...)
	return &Coordinator{
		workers:  workers,
		restore:  restore,
		template: NewTree(evaluate, priors, options...),
	}
}

// Search fans the position out to the workers and aggregates their votes by
// summed visit count; the earliest of the caller's moves wins ties. The same
// terminal and single-reply screening as Tree.Search applies before any
// worker starts.
func (c *Coordinator) Search(state game.State, limit Limit) (game.Move, map[game.Move]int, error) {
	c.template.metrics.Start(c.workers)
	moves := state.LegalMoves()
	if state.Winner() != "" || len(moves) == 0 {
		return nil, nil, fmt.Errorf("%s to move: %w", state.Player(), ErrTerminalPosition)
	}
	if len(moves) == 1 {
		return moves[0], map[game.Move]int{moves[0]: 1}, nil
	}

	token := state.Encode()
	base := c.template.seed
	if base == 0 {
		base = uint64(time.Now().UnixNano())
	}

	votes := make([]map[game.Move]int, c.workers)
	var group errgroup.Group
	for i := 0; i < c.workers; i++ {
		group.Go(func() error {
			private, err := c.restore(token)
			if err != nil {
				return fmt.Errorf("worker %d: restore position: %w", i, err)
			}
			worker := c.template.fork(base+uint64(i), c.template.metrics)
			_, visits, err := worker.Search(private, limit)
			if err != nil {
				return fmt.Errorf("worker %d: %w", i, err)
			}
			votes[i] = visits
			return nil
		})
	}
	workerErr := group.Wait()

	total := make(map[game.Move]int, len(moves))
	completed := 0
	for _, visits := range votes {
		if visits == nil {
			continue
		}
		completed++
		for m, n := range visits {
			total[m] += n
		}
	}
	if completed == 0 {
		return nil, nil, workerErr
	}

	best := moves[0]
	bestVotes := -1
	for _, m := range moves {
		if v := total[m]; v > bestVotes {
			best = m
			bestVotes = v
		}
	}

	if completed < c.workers {
		log.Warn().Msgf("aggregating %d of %d workers: %v", completed, c.workers, workerErr)
		return best, total, fmt.Errorf("%d of %d workers completed: %w", completed, c.workers, ErrPartialResult)
	}
	return best, total, nil
}
