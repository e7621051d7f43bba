package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPUCT(t *testing.T) {
	t.Run("panics with zero parent visits", func(t *testing.T) {
		require.Panics(t, func() {
			newPUCT(DefaultExploration, 0)
		}, "Should panic when N is 0")
	})
}

func TestPUCTEvaluate(t *testing.T) {
	t.Run("computing PUCT value", func(t *testing.T) {
		policy := newPUCT(1.41, 100)
		got := policy.evaluate(0.5, 0.2, 10)

		expected := 0.5 + 1.41*0.2*math.Sqrt(math.Log(100)/(10+puctEpsilon))
		require.InDelta(t, expected, got, 0.0001,
			"Should compute q + c*prior*sqrt(ln(N)/(n+eps))")
	})

	t.Run("unvisited branch scores finite but dominant", func(t *testing.T) {
		policy := newPUCT(1.41, 50)
		unvisited := policy.evaluate(0, 0.5, 0)

		require.False(t, math.IsInf(unvisited, 1),
			"Epsilon should keep the unvisited score finite")
		require.Greater(t, unvisited, policy.evaluate(1.0, 0.5, 10),
			"An unvisited branch should outscore a visited winning one")
	})

	t.Run("exploration term increases with parent visits", func(t *testing.T) {
		// More parent visits -> higher exploration
		policy1 := newPUCT(1.41, 100)
		policy2 := newPUCT(1.41, 1000)

		score1 := policy1.evaluate(0.5, 0.2, 10)
		score2 := policy2.evaluate(0.5, 0.2, 10)

		require.Greater(t, score2, score1,
			"More parent visits should increase exploration term")
	})

	t.Run("exploration term decreases with branch visits", func(t *testing.T) {
		// More branch visits -> lower exploration
		policy := newPUCT(1.41, 100)

		score1 := policy.evaluate(0.5, 0.2, 10)
		score2 := policy.evaluate(0.5, 0.2, 20)

		require.Greater(t, score1, score2,
			"More branch visits should decrease exploration term")
	})

	t.Run("exploitation term increases with mean value", func(t *testing.T) {
		policy := newPUCT(1.41, 100)

		score1 := policy.evaluate(0.2, 0.2, 10)
		score2 := policy.evaluate(0.8, 0.2, 10)

		require.Greater(t, score2, score1,
			"Higher mean value should increase the score")
	})

	t.Run("prior scales the exploration term", func(t *testing.T) {
		policy := newPUCT(1.41, 100)

		score1 := policy.evaluate(0, 0.1, 5)
		score2 := policy.evaluate(0, 0.9, 5)

		require.Greater(t, score2, score1,
			"A larger prior should attract more exploration")
	})
}
