package game

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

// ChessMove wraps a library move by value so that moves enumerated from
// independently rebuilt positions compare equal and key maps safely. String
// renders the move in UCI form ("e2e4", "e7e8q").
type ChessMove struct {
	mv chess.Move
}

func (m ChessMove) String() string {
	return m.mv.String()
}

// ChessState adapts a chess position to the search contract. It tracks the
// positions seen along its own line of play so threefold repetition ends the
// game; a state restored from a token starts a fresh line and forgets the
// history behind it.
type ChessState struct {
	pos   *chess.Position
	seen  map[string]int
	check bool
}

// NewChessState returns the standard starting position.
func NewChessState() *ChessState {
	pos := chess.NewGame().Position()
	return &ChessState{
		pos:  pos,
		seen: map[string]int{positionKey(pos): 1},
	}
}

// ParseFEN builds a state from a FEN record.
func ParseFEN(fen string) (*ChessState, error) {
	option, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	pos := chess.NewGame(option).Position()
	return &ChessState{
		pos:  pos,
		seen: map[string]int{positionKey(pos): 1},
	}, nil
}

// RestoreFEN rebuilds a state from a token produced by Encode. It satisfies
// the Restore contract for parallel search workers.
func RestoreFEN(token string) (State, error) {
	return ParseFEN(token)
}

// positionKey identifies a position for repetition purposes: piece placement,
// side to move, castling rights, and en passant square. Move counters are
// excluded so shuffled-back positions collide as they should.
func positionKey(pos *chess.Position) string {
	fields := strings.Fields(pos.String())
	if len(fields) < 4 {
		return pos.String()
	}
	return strings.Join(fields[:4], " ")
}

func (s *ChessState) Player() string {
	if s.pos.Turn() == chess.White {
		return "white"
	}
	return "black"
}

func (s *ChessState) LegalMoves() []Move {
	valid := s.pos.ValidMoves()
	moves := make([]Move, len(valid))
	for i, mv := range valid {
		moves[i] = ChessMove{mv: *mv}
	}
	return moves
}

func (s *ChessState) Play(m Move) State {
	cm, ok := m.(ChessMove)
	if !ok {
		panic("unexpected move type")
	}
	next := s.pos.Update(&cm.mv)
	seen := make(map[string]int, len(s.seen)+1)
	for k, v := range s.seen {
		seen[k] = v
	}
	seen[positionKey(next)]++
	return &ChessState{
		pos:   next,
		seen:  seen,
		check: cm.mv.HasTag(chess.Check),
	}
}

// Winner reports the game result: checkmate and stalemate from the position
// itself, draw once the current position occurred three times on this line.
func (s *ChessState) Winner() string {
	switch s.pos.Status() {
	case chess.Checkmate:
		if s.pos.Turn() == chess.White {
			return "black"
		}
		return "white"
	case chess.Stalemate:
		return "draw"
	}
	if s.Repetitions() >= 3 {
		return "draw"
	}
	return ""
}

// Encode returns the position as a FEN record. Restored states lose the
// repetition history of the line that produced the token.
func (s *ChessState) Encode() string {
	return s.pos.String()
}

// Repetitions counts how often the current position has occurred on this
// line, including right now, so the minimum is 1.
func (s *ChessState) Repetitions() int {
	return s.seen[positionKey(s.pos)]
}

// InCheck reports whether the side to move is in check. Known only for
// states reached through Play; a state parsed from FEN reports false.
func (s *ChessState) InCheck() bool {
	return s.check
}
