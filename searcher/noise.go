package searcher

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"

	"gambit/game"
)

// perturbPriors blends a Dirichlet draw over the legal-move simplex into the
// prior distribution. Workers searching the same position with different
// seeds then favor different lines early, which is what makes their votes
// worth aggregating. Distributions over fewer than two moves pass through
// untouched, as does a zero blend weight.
func perturbPriors(priors map[game.Move]float64, moves []game.Move, weight float64, src rand.Source) map[game.Move]float64 {
	if weight <= 0 || len(moves) < 2 {
		return priors
	}

	alpha := make([]float64, len(moves))
	for i := range alpha {
		alpha[i] = noiseAlpha
	}
	sample := distuv.NewDirichlet(alpha, src).Rand(nil)

	blended := make(map[game.Move]float64, len(moves))
	for i, m := range moves {
		blended[m] = (1-weight)*priors[m] + weight*sample[i]
	}
	return blended
}
