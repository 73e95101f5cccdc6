package rules

import (
	"fmt"

	"github.com/notnil/chess"
)

// Outcome describes how a finished game ended.
type Outcome struct {
	Result chess.Outcome
	Method chess.Method
	// Winner is chess.NoColor for draws.
	Winner chess.Color
}

func newOutcome(result chess.Outcome, method chess.Method) *Outcome {
	o := &Outcome{Result: result, Method: method, Winner: chess.NoColor}
	switch result {
	case chess.WhiteWon:
		o.Winner = chess.White
	case chess.BlackWon:
		o.Winner = chess.Black
	}
	return o
}

// IsDraw reports whether the game ended without a winner.
func (o Outcome) IsDraw() bool {
	return o.Winner == chess.NoColor
}

func (o Outcome) String() string {
	if o.IsDraw() {
		return fmt.Sprintf("Draw by %s (%s)", o.Method, o.Result)
	}
	return fmt.Sprintf("%s wins by %s (%s)", o.Winner.Name(), o.Method, o.Result)
}
