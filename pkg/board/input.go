package board

import (
	"strings"

	"github.com/qnkhuat/tuichess/pkg/rules"
)

// MaxNotationLength is the longest move text accepted from the input field.
const MaxNotationLength = 7

// InputResult is the outcome of a typed move.
type InputResult int

const (
	// InputAccepted means the move was played.
	InputAccepted InputResult = iota
	// InputInvalid means the text is not algebraic notation.
	InputInvalid
	// InputIllegal means the text is well formed but names no legal move.
	InputIllegal
	// InputRejected means the board is not taking moves right now.
	InputRejected
)

func (r InputResult) String() string {
	switch r {
	case InputAccepted:
		return "accepted"
	case InputInvalid:
		return "invalid"
	case InputIllegal:
		return "illegal"
	case InputRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Submit plays a move typed in algebraic notation.
func (b *Board) Submit(text string) InputResult {
	text = strings.TrimSpace(text)
	if b.Finished() || b.state.Phase == AwaitingPromotion {
		return InputRejected
	}
	if len(text) > MaxNotationLength || !rules.ValidSAN(text) {
		b.log.Debugw("invalid move text", "text", text)
		return InputInvalid
	}
	m, err := b.rules.ParseAlgebraic(text)
	if err != nil {
		b.log.Debugw("illegal move text", "text", text, "error", err)
		return InputIllegal
	}
	b.state = idle
	if !b.play(m) {
		return InputIllegal
	}
	return InputAccepted
}
