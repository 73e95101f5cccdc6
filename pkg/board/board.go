// Package board implements the interactive chessboard widget: selection,
// legal destination highlighting, the promotion sub-flow and move
// notifications. It knows nothing about the terminal; pkg/gui draws it.
package board

import (
	"github.com/notnil/chess"
	"go.uber.org/zap"

	"github.com/qnkhuat/tuichess/pkg/rules"
)

// Rules is the position model the widget drives. *rules.Game implements it.
type Rules interface {
	Reader
	LegalMoves(from chess.Square) []rules.Move
	IsLegal(m rules.Move) bool
	Apply(m rules.Move) error
	Outcome() *rules.Outcome
	ToAlgebraic(m rules.Move) (string, error)
	ParseAlgebraic(text string) (rules.Move, error)
}

// Board is the interactive board widget.
type Board struct {
	rules       Rules
	orientation Orientation
	state       State
	history     []MoveRecord
	outcome     *rules.Outcome
	log         *zap.SugaredLogger

	movePlayed func(MovePlayed)
	gameOver   func(GameOver)
	promotion  func(PendingPromotion)
}

// NewBoard returns a widget playing on r, drawn from o's point of view.
func NewBoard(r Rules, o Orientation, log *zap.SugaredLogger) *Board {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Board{
		rules:       r,
		orientation: o,
		state:       idle,
		outcome:     r.Outcome(),
		log:         log,
	}
}

// SetMovePlayedFunc sets the handler called after every applied move.
func (b *Board) SetMovePlayedFunc(handler func(MovePlayed)) *Board {
	b.movePlayed = handler
	return b
}

// SetGameOverFunc sets the handler called once when the game ends.
func (b *Board) SetGameOverFunc(handler func(GameOver)) *Board {
	b.gameOver = handler
	return b
}

// SetPromotionFunc sets the handler called when a promoting move needs its
// piece kind. The handler is expected to present the choice and later call
// ChoosePromotion or CancelPromotion.
func (b *Board) SetPromotionFunc(handler func(PendingPromotion)) *Board {
	b.promotion = handler
	return b
}

// Rules returns the position model.
func (b *Board) Rules() Rules {
	return b.rules
}

// State returns the current widget state.
func (b *Board) State() State {
	return b.state
}

// Orientation returns the current orientation.
func (b *Board) Orientation() Orientation {
	return b.orientation
}

// History returns the moves played through this widget.
func (b *Board) History() []MoveRecord {
	return append([]MoveRecord(nil), b.history...)
}

// Outcome returns the observed result, or nil while the game is running.
func (b *Board) Outcome() *rules.Outcome {
	return b.outcome
}

// Finished reports whether an outcome has been observed.
func (b *Board) Finished() bool {
	return b.outcome != nil
}

// Render projects the current position and state onto a grid.
func (b *Board) Render() *Grid {
	return Render(b.rules, b.orientation, b.state)
}

// Flip toggles the orientation and clears any selection. A pending
// promotion survives the flip.
func (b *Board) Flip() {
	b.orientation = b.orientation.Flip()
	if b.state.Phase != AwaitingPromotion {
		b.state = idle
	}
}

// Reset starts over on a new position, keeping the orientation and handlers.
func (b *Board) Reset(r Rules) {
	b.rules = r
	b.state = idle
	b.history = nil
	b.outcome = r.Outcome()
}

// ClickAt handles a click on grid position row, col. Positions outside the
// grid are ignored.
func (b *Board) ClickAt(row, col int) {
	sq, ok := b.orientation.SquareAt(row, col)
	if !ok {
		return
	}
	b.Click(sq)
}

// HoverAt handles the pointer moving over grid position row, col.
func (b *Board) HoverAt(row, col int) {
	sq, ok := b.orientation.SquareAt(row, col)
	if !ok {
		sq = chess.NoSquare
	}
	b.Hover(sq)
}

// Click advances the state machine with a click on sq.
func (b *Board) Click(sq chess.Square) {
	if b.Finished() || sq < chess.A1 || sq > chess.H8 {
		return
	}
	switch b.state.Phase {
	case Idle:
		b.state = b.selectSquare(sq)
	case PieceSelected:
		st := b.state
		switch {
		case st.Destinations.Has(sq):
			move := rules.Move{From: st.Selected, To: sq}
			if b.isPromotion(move) {
				pending := PendingPromotion{From: move.From, To: move.To, Color: b.rules.SideToMove()}
				b.state = State{
					Phase:    AwaitingPromotion,
					Selected: chess.NoSquare,
					Hovered:  chess.NoSquare,
					Pending:  &pending,
				}
				b.log.Debugw("promotion pending", "from", move.From, "to", move.To)
				if b.promotion != nil {
					b.promotion(pending)
				}
				return
			}
			b.state = idle
			b.play(move)
		case sq != st.Selected && b.ownPiece(sq):
			b.state = b.selectSquare(sq)
		default:
			b.state = idle
		}
	case AwaitingPromotion:
		// The promotion choice owns the input until it resolves.
	}
}

// Hover updates the hovered destination. It never changes the selection or
// the position.
func (b *Board) Hover(sq chess.Square) {
	if b.state.Phase != PieceSelected {
		return
	}
	if b.state.Destinations.Has(sq) {
		b.state.Hovered = sq
	} else {
		b.state.Hovered = chess.NoSquare
	}
}

// Deselect drops the current selection, if any.
func (b *Board) Deselect() {
	if b.state.Phase == PieceSelected {
		b.state = idle
	}
}

func (b *Board) selectSquare(sq chess.Square) State {
	if !b.ownPiece(sq) {
		return idle
	}
	var dests SquareSet
	for _, m := range b.rules.LegalMoves(sq) {
		if m.From == sq {
			dests = dests.Add(m.To)
		}
	}
	return State{
		Phase:        PieceSelected,
		Selected:     sq,
		Destinations: dests,
		Hovered:      chess.NoSquare,
	}
}

func (b *Board) ownPiece(sq chess.Square) bool {
	p := b.rules.PieceAt(sq)
	return p != chess.NoPiece && p.Color() == b.rules.SideToMove()
}

// play applies m and emits the notifications. It reports whether the move
// was applied.
func (b *Board) play(m rules.Move) bool {
	var (
		notation string
		err      error
	)
	color := b.rules.SideToMove()
	if !b.rules.IsLegal(m) {
		err = rules.ErrIllegalMove
	} else if notation, err = b.rules.ToAlgebraic(m); err == nil {
		err = b.rules.Apply(m)
	}
	if err != nil {
		// Moves reaching here come from engine-verified destinations.
		b.log.DPanicw("engine rejected a move built from its own legal moves",
			"move", m.String(),
			"error", err,
		)
		b.state = idle
		return false
	}

	ply := len(b.history) + 1
	b.history = append(b.history, MoveRecord{Ply: ply, Notation: notation, Color: color})
	b.log.Infow("move played", "ply", ply, "san", notation, "uci", m.String())
	if b.movePlayed != nil {
		b.movePlayed(MovePlayed{Move: m, Notation: notation, Ply: ply})
	}

	if o := b.rules.Outcome(); o != nil && b.outcome == nil {
		b.outcome = o
		b.log.Infow("game over", "result", string(o.Result), "method", o.Method.String())
		if b.gameOver != nil {
			b.gameOver(GameOver{Outcome: *o})
		}
	}
	return true
}
