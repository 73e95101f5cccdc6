package board

import (
	"github.com/notnil/chess"

	"github.com/qnkhuat/tuichess/pkg/rules"
)

// MovePlayed is emitted after a move has been applied to the position.
type MovePlayed struct {
	Move rules.Move
	// Notation is the full SAN of the move, check and mate suffixes included.
	Notation string
	Ply      int
}

// GameOver is emitted once, right after the MovePlayed of the final move.
type GameOver struct {
	Outcome rules.Outcome
}

// MoveRecord is one entry of the move history.
type MoveRecord struct {
	Ply      int
	Notation string
	Color    chess.Color
}
