package gui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/rivo/tview"

	"github.com/qnkhuat/tuichess/pkg/board"
)

var pieceNames = map[chess.PieceType]string{
	chess.Queen:  "Queen",
	chess.Knight: "Knight",
	chess.Rook:   "Rook",
	chess.Bishop: "Bishop",
}

// PromotionView is a full screen overlay holding the promotion choices next
// to the destination square. It takes every mouse event while shown: clicks
// on a choice select it, clicks anywhere else cancel.
type PromotionView struct {
	*tview.Box
	list    *tview.List
	choices []chess.PieceType

	anchorX, anchorY, anchorH int
	extendsUp                 bool

	chosen    func(kind chess.PieceType)
	cancelled func()
}

const promotionWidth = 12

func NewPromotionView(theme Theme) *PromotionView {
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true).
		SetMainTextColor(theme.White).
		SetSelectedTextColor(theme.White).
		SetSelectedBackgroundColor(theme.PromotionSelected)
	list.SetBackgroundColor(theme.PromotionBg)
	list.SetBorder(true).SetBorderPadding(0, 0, 1, 1)
	p := &PromotionView{
		Box:  tview.NewBox(),
		list: list,
	}
	list.SetSelectedFunc(func(index int, _, _ string, _ rune) {
		if index >= 0 && index < len(p.choices) && p.chosen != nil {
			p.chosen(p.choices[index])
		}
	})
	list.SetDoneFunc(p.cancel)
	return p
}

// SetChosenFunc sets the handler for a picked piece kind.
func (p *PromotionView) SetChosenFunc(handler func(kind chess.PieceType)) *PromotionView {
	p.chosen = handler
	return p
}

// SetCancelledFunc sets the handler for a dismissed choice.
func (p *PromotionView) SetCancelledFunc(handler func()) *PromotionView {
	p.cancelled = handler
	return p
}

// Present fills the list for pending and anchors it at the destination cell,
// whose top left corner is x, y and whose height is h.
func (p *PromotionView) Present(pending board.PendingPromotion, o board.Orientation, x, y, h int) {
	p.choices = board.PromotionChoices(pending.Color, o)
	p.extendsUp = board.PromotionExtendsUp(pending.Color, o)
	p.anchorX, p.anchorY, p.anchorH = x, y, h

	p.list.Clear()
	for _, kind := range p.choices {
		piece := pieceFor(pending.Color, kind)
		name := pieceNames[kind]
		p.list.AddItem(piece.String()+" "+name, "", rune(kind.String()[0]), nil)
	}
	if p.extendsUp {
		p.list.SetCurrentItem(len(p.choices) - 1)
	} else {
		p.list.SetCurrentItem(0)
	}
	p.list.SetTitle(" " + pending.To.String() + " ")
}

// Choices returns the piece kinds as currently listed, top to bottom.
func (p *PromotionView) Choices() []chess.PieceType {
	return append([]chess.PieceType(nil), p.choices...)
}

func (p *PromotionView) cancel() {
	if p.cancelled != nil {
		p.cancelled()
	}
}

// listRect places the list's first choice at the destination square, or its
// last choice when the list grows upward.
func (p *PromotionView) listRect() (x, y, width, height int) {
	height = len(p.choices) + 2
	width = promotionWidth
	x = p.anchorX
	y = p.anchorY - 1
	if p.extendsUp {
		y = p.anchorY + p.anchorH - height + 1
	}
	sx, sy, sw, sh := p.GetRect()
	if x+width > sx+sw {
		x = sx + sw - width
	}
	if y+height > sy+sh {
		y = sy + sh - height
	}
	if x < sx {
		x = sx
	}
	if y < sy {
		y = sy
	}
	return x, y, width, height
}

// Draw draws only the list so the board stays visible underneath.
func (p *PromotionView) Draw(screen tcell.Screen) {
	p.list.SetRect(p.listRect())
	p.list.Draw(screen)
}

func (p *PromotionView) Focus(delegate func(tview.Primitive)) {
	delegate(p.list)
}

func (p *PromotionView) HasFocus() bool {
	return p.list.HasFocus()
}

func (p *PromotionView) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return p.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(tview.Primitive)) (consumed bool, capture tview.Primitive) {
		if p.list.InRect(event.Position()) {
			if handler := p.list.MouseHandler(); handler != nil {
				handler(action, event, setFocus)
			}
			return true, nil
		}
		if action == tview.MouseLeftClick {
			p.cancel()
		}
		return true, nil
	})
}

func pieceFor(c chess.Color, kind chess.PieceType) chess.Piece {
	for _, p := range []chess.Piece{
		chess.WhiteQueen, chess.WhiteRook, chess.WhiteBishop, chess.WhiteKnight,
		chess.BlackQueen, chess.BlackRook, chess.BlackBishop, chess.BlackKnight,
	} {
		if p.Color() == c && p.Type() == kind {
			return p
		}
	}
	return chess.NoPiece
}
