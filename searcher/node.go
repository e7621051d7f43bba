package searcher

import (
	"errors"
	"fmt"
	"math"

	"gambit/game"
)

// ErrDuplicateChild reports a second child registration for the same edge.
// Rounds only ever expand an edge without a child, so hitting this is an
// invariant violation rather than control flow.
var ErrDuplicateChild = errors.New("child already registered for move")

// branch carries the accumulated statistics for one legal move of a node.
type branch struct {
	prior      float64
	visitCount int
	totalValue float64
}

// expectedValue is the mean backed-up value of the branch, 0 while unvisited.
func (b *branch) expectedValue() float64 {
	if b.visitCount == 0 {
		return 0
	}
	return b.totalValue / float64(b.visitCount)
}

// node owns an immutable state snapshot, its one-time oracle score, and one
// branch per legal move. moves keeps the state's enumeration order: selection
// iterates the slice, so score ties resolve to the earliest move the same way
// in every worker. Children hang off edges lazily; edges into terminal states
// never get one.
type node struct {
	state       game.State
	staticValue float64
	moves       []game.Move
	branches    map[game.Move]*branch
	children    map[game.Move]*node
	totalVisits int
}

func newNode(state game.State, staticValue float64, moves []game.Move, priors map[game.Move]float64) *node {
	branches := make(map[game.Move]*branch, len(moves))
	for _, m := range moves {
		branches[m] = &branch{prior: priors[m]}
	}
	return &node{
		state:       state,
		staticValue: staticValue,
		moves:       moves,
		branches:    branches,
		children:    make(map[game.Move]*node),
		totalVisits: 1, // Creation counts as the first visit
	}
}

// selectBranch returns the move maximizing the PUCT score; the first move in
// enumeration order wins ties.
func (n *node) selectBranch(c float64) game.Move {
	if len(n.moves) == 0 {
		panic("selecting on a node without moves")
	}
	policy := newPUCT(c, n.totalVisits)
	best := n.moves[0]
	bestScore := math.Inf(-1)
	for _, m := range n.moves {
		b := n.branches[m]
		score := policy.evaluate(b.expectedValue(), b.prior, b.visitCount)
		if score > bestScore {
			best = m
			bestScore = score
		}
	}
	return best
}

// addChild registers child under move.
func (n *node) addChild(move game.Move, child *node) error {
	if _, ok := n.children[move]; ok {
		return fmt.Errorf("%s: %w", move, ErrDuplicateChild)
	}
	n.children[move] = child
	return nil
}

// recordVisit books one traversal of move carrying the backed-up value.
func (n *node) recordVisit(move game.Move, value float64) {
	b := n.branches[move]
	b.visitCount++
	b.totalValue += value
	n.totalVisits++
}

// bestMove is the most visited move, earliest on ties.
func (n *node) bestMove() game.Move {
	best := n.moves[0]
	bestVisits := -1
	for _, m := range n.moves {
		if v := n.branches[m].visitCount; v > bestVisits {
			best = m
			bestVisits = v
		}
	}
	return best
}

// leaders returns the two highest branch visit counts.
func (n *node) leaders() (leader, runnerUp int) {
	for _, m := range n.moves {
		v := n.branches[m].visitCount
		if v > leader {
			leader, runnerUp = v, leader
		} else if v > runnerUp {
			runnerUp = v
		}
	}
	return leader, runnerUp
}

// visitCounts snapshots the per-move visit distribution.
func (n *node) visitCounts() map[game.Move]int {
	counts := make(map[game.Move]int, len(n.moves))
	for _, m := range n.moves {
		counts[m] = n.branches[m].visitCount
	}
	return counts
}
