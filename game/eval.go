package game

import (
	"math"

	"github.com/notnil/chess"
)

// MateValue is the sentinel magnitude, in pawns, for decided positions. A
// mated side to move scores -MateValue; a position repeated back into scores
// +MateValue for the side to move, which charges the side that steered into
// the repetition once the searcher negates the value on backup.
const MateValue = 39.0

const (
	checkPenalty = 0.75
	priorMargin  = 0.25
	priorEpsilon = 1e-6
)

// Piece values in pawns. The king carries no material value.
var pieceValues = map[chess.PieceType]float64{
	chess.Pawn:   1,
	chess.Knight: 3,
	chess.Bishop: 3,
	chess.Rook:   5,
	chess.Queen:  9,
}

// EvaluateMaterial tallies raw material from the side to move's perspective,
// with a small penalty for standing in check and sentinels for decided
// positions.
func EvaluateMaterial(s State) float64 {
	cs, ok := s.(*ChessState)
	if !ok {
		panic("unexpected state type")
	}
	if decided, score := decidedScore(cs); decided {
		return score
	}
	score := cs.materialBalance()
	if cs.InCheck() {
		score -= checkPenalty
	}
	return score
}

// EvaluatePlacement adds piece-square bonuses to the material tally, so that
// otherwise equal positions separate on development and king safety.
func EvaluatePlacement(s State) float64 {
	cs, ok := s.(*ChessState)
	if !ok {
		panic("unexpected state type")
	}
	if decided, score := decidedScore(cs); decided {
		return score
	}
	score := cs.materialBalance() + cs.placementBalance()
	if cs.InCheck() {
		score -= checkPenalty
	}
	return score
}

// decidedScore resolves terminal and repeated positions to their sentinel
// scores before any counting happens.
func decidedScore(cs *ChessState) (bool, float64) {
	switch cs.pos.Status() {
	case chess.Checkmate:
		return true, -MateValue
	case chess.Stalemate:
		return true, 0
	}
	if cs.Repetitions() >= 2 {
		return true, MateValue
	}
	return false, 0
}

func (cs *ChessState) materialBalance() float64 {
	mover := cs.pos.Turn()
	total := 0.0
	for _, piece := range cs.pos.Board().SquareMap() {
		value := pieceValues[piece.Type()]
		if piece.Color() == mover {
			total += value
		} else {
			total -= value
		}
	}
	return total
}

func (cs *ChessState) placementBalance() float64 {
	mover := cs.pos.Turn()
	total := 0.0
	for square, piece := range cs.pos.Board().SquareMap() {
		bonus := placementBonus(piece, square)
		if piece.Color() == mover {
			total += bonus
		} else {
			total -= bonus
		}
	}
	return total
}

func placementBonus(piece chess.Piece, square chess.Square) float64 {
	table, ok := placementTables[piece.Type()]
	if !ok {
		return 0
	}
	idx := int(square)
	if piece.Color() == chess.Black {
		idx ^= 56 // Mirror ranks, keep files
	}
	return table[idx]
}

// Placement bonuses in pawns, indexed A1..H8 from White's side. Rows read
// bottom rank first. Only the pieces whose placement dominates early play
// carry a table.
var placementTables = map[chess.PieceType][64]float64{
	chess.Pawn: {
		0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00,
		0.05, 0.10, 0.10, -0.20, -0.20, 0.10, 0.10, 0.05,
		0.05, -0.05, -0.10, 0.00, 0.00, -0.10, -0.05, 0.05,
		0.00, 0.00, 0.00, 0.20, 0.20, 0.00, 0.00, 0.00,
		0.05, 0.05, 0.10, 0.25, 0.25, 0.10, 0.05, 0.05,
		0.10, 0.10, 0.20, 0.30, 0.30, 0.20, 0.10, 0.10,
		0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50,
		0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00,
	},
	chess.Knight: {
		-0.50, -0.40, -0.30, -0.30, -0.30, -0.30, -0.40, -0.50,
		-0.40, -0.20, 0.00, 0.05, 0.05, 0.00, -0.20, -0.40,
		-0.30, 0.05, 0.10, 0.15, 0.15, 0.10, 0.05, -0.30,
		-0.30, 0.00, 0.15, 0.20, 0.20, 0.15, 0.00, -0.30,
		-0.30, 0.05, 0.15, 0.20, 0.20, 0.15, 0.05, -0.30,
		-0.30, 0.00, 0.10, 0.15, 0.15, 0.10, 0.00, -0.30,
		-0.40, -0.20, 0.00, 0.00, 0.00, 0.00, -0.20, -0.40,
		-0.50, -0.40, -0.30, -0.30, -0.30, -0.30, -0.40, -0.50,
	},
	chess.King: {
		0.20, 0.30, 0.10, 0.00, 0.00, 0.10, 0.30, 0.20,
		0.20, 0.20, 0.00, 0.00, 0.00, 0.00, 0.20, 0.20,
		-0.10, -0.20, -0.20, -0.20, -0.20, -0.20, -0.20, -0.10,
		-0.20, -0.30, -0.30, -0.40, -0.40, -0.30, -0.30, -0.20,
		-0.30, -0.40, -0.40, -0.50, -0.50, -0.40, -0.40, -0.30,
		-0.30, -0.40, -0.40, -0.50, -0.50, -0.40, -0.40, -0.30,
		-0.30, -0.40, -0.40, -0.50, -0.50, -0.40, -0.40, -0.30,
		-0.30, -0.40, -0.40, -0.50, -0.50, -0.40, -0.40, -0.30,
	},
}

// PriorsMaterial weights each legal move by how poor the resulting position
// looks for the opponent under EvaluateMaterial: replies that leave the
// opponent worst weigh most. Weights are shifted positive and normalized to
// sum to 1.
func PriorsMaterial(s State) map[Move]float64 {
	moves := s.LegalMoves()
	priors := make(map[Move]float64, len(moves))
	if len(moves) == 0 {
		return priors
	}

	raw := make([]float64, len(moves))
	maxRaw := math.Inf(-1)
	for i, m := range moves {
		raw[i] = EvaluateMaterial(s.Play(m))
		if raw[i] > maxRaw {
			maxRaw = raw[i]
		}
	}

	// Spread weights around the worst reply, keeping every weight positive
	// even when all replies favor the opponent.
	margin := priorMargin*math.Max(math.Abs(maxRaw), 1) + priorEpsilon
	sum := 0.0
	for i := range raw {
		raw[i] = maxRaw - raw[i] + margin
		sum += raw[i]
	}
	for i, m := range moves {
		priors[m] = raw[i] / sum
	}
	return priors
}

// PriorsUniform spreads weight evenly over the legal moves, reducing the
// search to plain visit-guided exploration.
func PriorsUniform(s State) map[Move]float64 {
	moves := s.LegalMoves()
	priors := make(map[Move]float64, len(moves))
	if len(moves) == 0 {
		return priors
	}
	weight := 1 / float64(len(moves))
	for _, m := range moves {
		priors[m] = weight
	}
	return priors
}
