package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateMaterial(t *testing.T) {
	t.Run("scores the starting position as level", func(t *testing.T) {
		require.InDelta(t, 0, EvaluateMaterial(NewChessState()), 1e-9)
	})

	t.Run("scores from the side to move's perspective", func(t *testing.T) {
		up, err := ParseFEN("k7/8/8/8/8/8/8/KQ6 w - - 0 1")
		require.NoError(t, err)
		require.InDelta(t, 9, EvaluateMaterial(up), 1e-9, "white to move is a queen up")

		down, err := ParseFEN("k7/8/8/8/8/8/8/KQ6 b - - 0 1")
		require.NoError(t, err)
		require.InDelta(t, -9, EvaluateMaterial(down), 1e-9, "black to move is a queen down")
	})

	t.Run("penalizes standing in check", func(t *testing.T) {
		s, err := ParseFEN("4k3/8/8/8/8/8/3R4/4K3 w - - 0 1")
		require.NoError(t, err)
		checked := playLine(t, s, "d2d8")
		require.InDelta(t, -5-checkPenalty, EvaluateMaterial(checked), 1e-9,
			"a rook down and in check")
	})

	t.Run("scores checkmate with the sentinel", func(t *testing.T) {
		mated := playLine(t, NewChessState(), "f2f3", "e7e5", "g2g4", "d8h4")
		require.Equal(t, -MateValue, EvaluateMaterial(mated))
	})

	t.Run("scores stalemate as level", func(t *testing.T) {
		s, err := ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
		require.NoError(t, err)
		require.Zero(t, EvaluateMaterial(s))
	})

	t.Run("charges the side that repeats", func(t *testing.T) {
		repeated := playLine(t, NewChessState(), "g1f3", "g8f6", "f3g1", "f6g8")
		require.Equal(t, 2, repeated.(*ChessState).Repetitions())
		require.Equal(t, MateValue, EvaluateMaterial(repeated),
			"the mover inherits the sentinel, so backup charges the side that shuffled back")
	})
}

func TestEvaluatePlacement(t *testing.T) {
	t.Run("starting position is symmetric", func(t *testing.T) {
		require.InDelta(t, 0, EvaluatePlacement(NewChessState()), 1e-9)
	})

	t.Run("rewards a center pawn push", func(t *testing.T) {
		s := playLine(t, NewChessState(), "e2e4")
		require.InDelta(t, -0.40, EvaluatePlacement(s), 1e-9,
			"black to move faces white's e-pawn bonus")
	})

	t.Run("keeps the decided-position sentinels", func(t *testing.T) {
		mated := playLine(t, NewChessState(), "f2f3", "e7e5", "g2g4", "d8h4")
		require.Equal(t, -MateValue, EvaluatePlacement(mated))
	})
}

func TestPriorsMaterial(t *testing.T) {
	t.Run("forms a distribution over legal moves", func(t *testing.T) {
		s := NewChessState()
		priors := PriorsMaterial(s)

		require.Len(t, priors, 20, "one entry per legal move")
		sum := 0.0
		for m, p := range priors {
			require.Positive(t, p, "prior of %s", m)
			sum += p
		}
		require.InDelta(t, 1, sum, 1e-9)
	})

	t.Run("weighs a mating move heaviest", func(t *testing.T) {
		s, err := ParseFEN("6k1/5ppp/8/8/8/8/8/4R2K w - - 0 1")
		require.NoError(t, err)
		priors := PriorsMaterial(s)

		var mate Move
		for _, m := range s.LegalMoves() {
			if m.String() == "e1e8" {
				mate = m
			}
		}
		require.NotNil(t, mate)
		for m, p := range priors {
			if m == mate {
				continue
			}
			require.Greater(t, priors[mate], p, "e1e8 should outweigh %s", m)
		}
	})

	t.Run("stays positive when the mover dominates every reply", func(t *testing.T) {
		// Every successor scores negative for the opponent, so the spread
		// must shift weights positive rather than inherit the sign.
		s, err := ParseFEN("k7/8/8/8/8/8/8/KQ6 w - - 0 1")
		require.NoError(t, err)
		priors := PriorsMaterial(s)

		require.NotEmpty(t, priors)
		for m, p := range priors {
			require.Positive(t, p, "prior of %s", m)
		}
	})

	t.Run("is empty on terminal positions", func(t *testing.T) {
		mated := playLine(t, NewChessState(), "f2f3", "e7e5", "g2g4", "d8h4")
		require.Empty(t, PriorsMaterial(mated))
	})
}

func TestPriorsUniform(t *testing.T) {
	s := NewChessState()
	priors := PriorsUniform(s)

	require.Len(t, priors, 20)
	for m, p := range priors {
		require.InDelta(t, 0.05, p, 1e-9, "prior of %s", m)
	}
}
