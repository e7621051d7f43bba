package searcher

import "math"

// Hyperparameters for the PUCT selection policy

// DefaultExploration weighs the prior-guided exploration term against the
// observed mean value.
const DefaultExploration = 1.41

// DefaultNoiseWeight is the Dirichlet blend applied to worker trees so that
// parallel searches explore decorrelated lines.
const DefaultNoiseWeight = 0.5

// noiseAlpha is the per-move concentration of the Dirichlet draw.
const noiseAlpha = 0.3

// puctEpsilon keeps the exploration term finite on unvisited branches while
// leaving them near-infinitely attractive.
const puctEpsilon = 1e-7

// Dominance early exit: stop once one branch holds more than dominanceShare
// of all visits, checked only after dominanceMinVisits rounds.
const (
	dominanceShare     = 0.75
	dominanceMinVisits = 1000
)

type puct struct {
	c         float64
	logVisits float64
}

func newPUCT(c float64, totalVisits int) puct {
	if totalVisits == 0 {
		panic("total visits cannot be 0")
	}
	return puct{c: c, logVisits: math.Log(float64(totalVisits))}
}

// evaluate scores one branch given its mean value q, its prior, and its
// visit count n.
func (p puct) evaluate(q float64, prior float64, n int) float64 {
	// PUCT = q + c*prior*sqrt(ln(N)/(n+eps))
	return q + p.c*prior*math.Sqrt(p.logVisits/(float64(n)+puctEpsilon))
}
