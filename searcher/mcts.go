package searcher

import (
	"errors"
	"fmt"
	"time"

	"gambit/experiments/metrics"
	"gambit/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// ErrTerminalPosition reports a search request on a finished game. Callers
// are expected to screen terminal states before asking for a move.
var ErrTerminalPosition = errors.New("position is terminal")

type Option func(t *Tree)

// Tree runs the single-tree PUCT search: strictly sequential rounds of
// descend, expand once, back up once, over a tree rebuilt from scratch on
// every Search call. Reusing subtrees across calls was measured against this
// game's shallow trees and rejected; a rebuild also keeps stale repetition
// history out of the statistics.
type Tree struct {
	evaluate      game.Evaluate
	priors        game.Priors
	exploration   float64
	noiseWeight   float64
	seed          uint64
	rng           *rand.Rand
	metrics       metrics.Collector
	sharedMetrics bool
}

func WithExploration(c float64) Option {
	return func(t *Tree) {
		if c > 0 {
			t.exploration = c
		}
	}
}

// WithNoise sets the Dirichlet blend weight in [0, 1]; 0 disables noise.
func WithNoise(weight float64) Option {
	return func(t *Tree) {
		if weight >= 0 && weight <= 1 {
			t.noiseWeight = weight
		}
	}
}

// WithSeed fixes the noise seed for reproducible searches.
func WithSeed(seed uint64) Option {
	return func(t *Tree) {
		if seed > 0 {
			t.seed = seed
		}
	}
}

// WithMetrics records search statistics into collector.
func WithMetrics(collector metrics.Collector) Option {
	return func(t *Tree) {
		if collector != nil {
			t.metrics = collector
		}
	}
}

func NewTree(evaluate game.Evaluate, priors game.Priors, options ...Option) *Tree {
	if evaluate == nil || priors == nil {
		panic("Must supply an evaluation and a prior function")
	}
	t := &Tree{ // Default values
		evaluate:    evaluate,
		priors:      priors,
		exploration: DefaultExploration,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(t)
	}
	seed := t.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	t.rng = rand.New(rand.NewSource(seed))
	return t
}

// fork clones the tree's configuration for one parallel worker, reseeding
// its noise source and pointing it at the coordinator's shared collector.
func (t *Tree) fork(seed uint64, collector metrics.Collector) *Tree {
	clone := *t
	clone.rng = rand.New(rand.NewSource(seed))
	clone.metrics = collector
	clone.sharedMetrics = true
	return &clone
}

// Search picks a move for state within limit. It returns the chosen move
// and the root visit-count distribution backing the choice. A position with
// a single legal reply is answered immediately without consulting the
// oracle; a terminal position returns ErrTerminalPosition.
func (t *Tree) Search(state game.State, limit Limit) (game.Move, map[game.Move]int, error) {
	if !t.sharedMetrics {
		t.metrics.Start(1)
	}
	moves := state.LegalMoves()
	if state.Winner() != "" || len(moves) == 0 {
		return nil, nil, fmt.Errorf("%s to move: %w", state.Player(), ErrTerminalPosition)
	}
	if len(moves) == 1 {
		return moves[0], map[game.Move]int{moves[0]: 1}, nil
	}

	limit = limit.effective()
	start := time.Now()

	root, err := t.createNode(state, nil, nil)
	if err != nil {
		return nil, nil, err
	}

	rounds := 0
	reason := stopNone
	for reason == stopNone {
		if err := t.round(root); err != nil {
			return nil, nil, err
		}
		rounds++
		t.metrics.AddRound()
		reason = t.shouldStop(root, limit, rounds, start)
	}
	t.metrics.SetStopReason(reason.String())

	log.Debug().Msgf("search stopped on %s after %d rounds", reason, rounds)
	return root.bestMove(), root.visitCounts(), nil
}

// step is one hop of the selection path. Keeping the trail explicit avoids
// parent links on nodes.
type step struct {
	node *node
	move game.Move
}

// round runs one unit of search: walk selected branches to the frontier,
// create the child behind the first unexpanded edge, and back its score up
// the trail with alternating sign.
func (t *Tree) round(root *node) error {
	current := root
	move := current.selectBranch(t.exploration)
	trail := []step{{node: current, move: move}}
	for {
		child, ok := current.children[move]
		if !ok {
			break
		}
		current = child
		move = current.selectBranch(t.exploration)
		trail = append(trail, step{node: current, move: move})
	}

	child, err := t.createNode(current.state.Play(move), current, move)
	if err != nil {
		return err
	}

	// The child's score is from its own mover's perspective; each hop back
	// toward the root flips sides.
	value := -child.staticValue
	for i := len(trail) - 1; i >= 0; i-- {
		trail[i].node.recordVisit(trail[i].move, value)
		value = -value
	}
	return nil
}

// createNode consults the oracle exactly once for state and builds the node
// with its branch statistics. Non-terminal nodes register under their parent
// edge; terminal ones stay out of the tree so a later round through the same
// edge re-evaluates them instead of descending further.
func (t *Tree) createNode(state game.State, parent *node, move game.Move) (*node, error) {
	moves := state.LegalMoves()
	priors := t.priors(state)
	if t.noiseWeight > 0 {
		priors = perturbPriors(priors, moves, t.noiseWeight, t.rng)
	}
	child := newNode(state, t.evaluate(state), moves, priors)
	t.metrics.AddNode()

	if parent != nil && state.Winner() == "" && len(moves) > 0 {
		if err := parent.addChild(move, child); err != nil {
			return nil, err
		}
	}
	return child, nil
}

type stopReason int

const (
	stopNone stopReason = iota
	stopNodeBudget
	stopUnbeatableLead
	stopTimeBudget
	stopDominance
)

func (r stopReason) String() string {
	switch r {
	case stopNodeBudget:
		return "node budget"
	case stopUnbeatableLead:
		return "unbeatable lead"
	case stopTimeBudget:
		return "time budget"
	case stopDominance:
		return "dominance"
	default:
		return "none"
	}
}

// shouldStop applies the termination policy in priority order: the node
// budget and the unbeatable lead it implies, then the time budget, then
// dominance, which holds in every configuration.
func (t *Tree) shouldStop(root *node, limit Limit, rounds int, start time.Time) stopReason {
	if limit.Nodes > 0 {
		if rounds >= limit.Nodes {
			return stopNodeBudget
		}
		leader, runnerUp := root.leaders()
		if leader-runnerUp >= limit.Nodes-rounds {
			return stopUnbeatableLead
		}
	}
	if limit.Time > 0 && time.Since(start) >= limit.Time {
		return stopTimeBudget
	}
	if root.totalVisits > dominanceMinVisits {
		leader, _ := root.leaders()
		if float64(leader) > dominanceShare*float64(root.totalVisits) {
			return stopDominance
		}
	}
	return stopNone
}
