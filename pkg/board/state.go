package board

import "github.com/notnil/chess"

// Phase is the state of the click state machine.
type Phase int

const (
	// Idle means nothing is selected.
	Idle Phase = iota
	// PieceSelected means a piece of the side to move is selected and its
	// legal destinations are known.
	PieceSelected
	// AwaitingPromotion means a promoting move is waiting for the piece kind.
	// Board clicks are ignored until the choice is made or cancelled.
	AwaitingPromotion
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case PieceSelected:
		return "piece-selected"
	case AwaitingPromotion:
		return "awaiting-promotion"
	default:
		return "unknown"
	}
}

// PendingPromotion is a pawn move to the last rank waiting for its piece kind.
type PendingPromotion struct {
	From  chess.Square
	To    chess.Square
	Color chess.Color
}

// State holds everything the widget tracks between events. It is replaced
// as a whole on every transition.
type State struct {
	Phase        Phase
	Selected     chess.Square
	Destinations SquareSet
	Hovered      chess.Square
	Pending      *PendingPromotion
}

var idle = State{Phase: Idle, Selected: chess.NoSquare, Hovered: chess.NoSquare}

// HasSelection reports whether a square is selected.
func (s State) HasSelection() bool {
	return s.Phase == PieceSelected && s.Selected != chess.NoSquare
}
