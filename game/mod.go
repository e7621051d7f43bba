package game

// Move is a single action available to the side to move. Implementations
// must be comparable values: the searcher keys its branch and visit maps by
// Move, and moves generated from independently rebuilt states must compare
// equal.
type Move interface {
	String() string
}

// State should be immutable - operations on State always return a new copy.
// LegalMoves must enumerate moves in a stable order: the searcher breaks
// score ties by first occurrence, and parallel workers rebuilt from the same
// token rely on seeing the same order.
type State interface {
	Player() string     // Side to move: "white" or "black"
	LegalMoves() []Move // Empty iff the game is over
	Play(Move) State
	Winner() string // "" while ongoing; "white", "black", or "draw"
	Encode() string // Opaque token understood by a matching Restore
}

// Evaluate scores a state for the side to move (positive favors the mover).
// A detected checkmate maps to a fixed large-magnitude sentinel. The searcher
// calls this exactly once per created node, possibly from several workers at
// once, so implementations must not rely on shared mutable state.
type Evaluate func(State) float64

// Priors assigns a heuristic weight to every legal move of a state: exactly
// one non-negative entry per move, summing to approximately 1, and an empty
// mapping when no moves exist. Same purity requirement as Evaluate.
type Priors func(State) map[Move]float64

// Restore rebuilds a State from a token produced by State.Encode, giving
// each parallel worker a private copy with no shared structure.
type Restore func(token string) (State, error)
