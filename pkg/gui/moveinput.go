package gui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/qnkhuat/tuichess/pkg/board"
)

// MoveInput is the text field for typing moves in algebraic notation.
type MoveInput struct {
	*tview.InputField
	board   *board.Board
	theme   Theme
	invalid bool

	submitted func(text string, result board.InputResult)
}

func NewMoveInput(b *board.Board, theme Theme) *MoveInput {
	in := &MoveInput{
		InputField: tview.NewInputField(),
		board:      b,
		theme:      theme,
	}
	in.SetLabel("❯ ").
		SetLabelColor(theme.Prompt).
		SetFieldWidth(board.MaxNotationLength + 1).
		SetPlaceholder("e4").
		SetAcceptanceFunc(tview.InputFieldMaxLength(board.MaxNotationLength)).
		SetDoneFunc(in.done).
		SetChangedFunc(func(string) {
			if in.invalid {
				in.markInvalid(false)
			}
		})
	in.markInvalid(false)
	return in
}

// SetSubmittedFunc sets the handler called with every submitted text and
// what the board made of it.
func (in *MoveInput) SetSubmittedFunc(handler func(text string, result board.InputResult)) *MoveInput {
	in.submitted = handler
	return in
}

// Submit hands text to the board. Accepted moves clear the field; invalid
// and illegal ones keep it and mark it.
func (in *MoveInput) Submit(text string) board.InputResult {
	res := in.board.Submit(text)
	switch res {
	case board.InputAccepted:
		in.SetText("")
		in.markInvalid(false)
	case board.InputInvalid, board.InputIllegal:
		in.markInvalid(true)
	}
	if in.submitted != nil {
		in.submitted(text, res)
	}
	return res
}

// Invalid reports whether the field is marked as holding a bad move.
func (in *MoveInput) Invalid() bool {
	return in.invalid
}

func (in *MoveInput) done(key tcell.Key) {
	if key == tcell.KeyEnter && in.GetText() != "" {
		in.Submit(in.GetText())
	}
}

func (in *MoveInput) markInvalid(invalid bool) {
	in.invalid = invalid
	if invalid {
		in.SetFieldBackgroundColor(in.theme.InputInvalid)
		return
	}
	in.SetFieldBackgroundColor(tcell.ColorDefault)
	in.SetFieldTextColor(in.theme.Input)
}
