package board

import (
	"errors"

	"github.com/notnil/chess"

	"github.com/qnkhuat/tuichess/pkg/rules"
)

// ErrNoPromotion is returned when a promotion choice arrives while no
// promoting move is pending.
var ErrNoPromotion = errors.New("board: no promotion pending")

// ErrPromotionPiece is returned for piece kinds a pawn cannot promote to.
var ErrPromotionPiece = errors.New("board: invalid promotion piece")

var promotionPieces = []chess.PieceType{chess.Queen, chess.Knight, chess.Rook, chess.Bishop}

// PromotionChoices returns the piece kinds offered to a pawn of color c,
// ordered from the destination square toward the board edge. The list is
// reversed when c's own back rank is drawn at the top, because the choices
// then extend upward from the destination.
func PromotionChoices(c chess.Color, o Orientation) []chess.PieceType {
	choices := append([]chess.PieceType(nil), promotionPieces...)
	if o.Bottom() != c {
		for i, j := 0, len(choices)-1; i < j; i, j = i+1, j-1 {
			choices[i], choices[j] = choices[j], choices[i]
		}
	}
	return choices
}

// PromotionExtendsUp reports whether the choice list for color c grows upward
// from the destination square.
func PromotionExtendsUp(c chess.Color, o Orientation) bool {
	return o.Bottom() != c
}

// ChoosePromotion completes the pending promotion with kind.
func (b *Board) ChoosePromotion(kind chess.PieceType) error {
	if b.state.Phase != AwaitingPromotion || b.state.Pending == nil {
		return ErrNoPromotion
	}
	if !isPromotionPiece(kind) {
		return ErrPromotionPiece
	}
	pending := *b.state.Pending
	b.state = idle
	b.play(rules.Move{From: pending.From, To: pending.To, Promo: kind})
	return nil
}

// CancelPromotion discards the pending promotion without touching the
// position.
func (b *Board) CancelPromotion() {
	if b.state.Phase != AwaitingPromotion {
		return
	}
	b.log.Debugw("promotion cancelled", "from", b.state.Pending.From, "to", b.state.Pending.To)
	b.state = idle
}

func (b *Board) isPromotion(m rules.Move) bool {
	p := b.rules.PieceAt(m.From)
	if p.Type() != chess.Pawn {
		return false
	}
	switch p.Color() {
	case chess.White:
		return m.To.Rank() == chess.Rank8
	case chess.Black:
		return m.To.Rank() == chess.Rank1
	}
	return false
}

func isPromotionPiece(kind chess.PieceType) bool {
	for _, p := range promotionPieces {
		if p == kind {
			return true
		}
	}
	return false
}
