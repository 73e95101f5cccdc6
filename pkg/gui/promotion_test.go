package gui

import (
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/rivo/tview"

	"github.com/qnkhuat/tuichess/pkg/board"
)

func TestPromotionChoicesOrder(t *testing.T) {
	p := NewPromotionView(testTheme(t))

	p.Present(board.PendingPromotion{From: chess.E7, To: chess.E8, Color: chess.White}, board.WhiteBottom, 10, 2, 2)
	want := []chess.PieceType{chess.Queen, chess.Knight, chess.Rook, chess.Bishop}
	if got := p.Choices(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	p.Present(board.PendingPromotion{From: chess.E2, To: chess.E1, Color: chess.Black}, board.WhiteBottom, 10, 16, 2)
	want = []chess.PieceType{chess.Bishop, chess.Rook, chess.Knight, chess.Queen}
	if got := p.Choices(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestPromotionAnchor(t *testing.T) {
	p := NewPromotionView(testTheme(t))
	p.SetRect(0, 0, 80, 30)

	p.Present(board.PendingPromotion{From: chess.E7, To: chess.E8, Color: chess.White}, board.WhiteBottom, 10, 2, 2)
	x, y, _, _ := p.listRect()
	if x != 10 || y+1 != 2 {
		t.Fatalf("first choice should sit on the destination, list at %d,%d", x, y)
	}

	p.Present(board.PendingPromotion{From: chess.E2, To: chess.E1, Color: chess.Black}, board.WhiteBottom, 10, 16, 2)
	_, y, _, h := p.listRect()
	if last := y + h - 2; last != 17 {
		t.Fatalf("last choice should sit on the destination's bottom row, got %d", last)
	}
}

func TestPromotionMouse(t *testing.T) {
	var (
		chosen    chess.PieceType
		cancelled bool
	)
	p := NewPromotionView(testTheme(t)).
		SetChosenFunc(func(kind chess.PieceType) { chosen = kind }).
		SetCancelledFunc(func() { cancelled = true })
	p.SetRect(0, 0, 80, 30)
	p.Present(board.PendingPromotion{From: chess.E7, To: chess.E8, Color: chess.White}, board.WhiteBottom, 10, 2, 2)
	p.Draw(newScreen(t))

	// Clicking the board underneath is swallowed and cancels.
	if !click(p, tview.MouseLeftClick, 40, 20) {
		t.Fatal("overlay should capture clicks outside the list")
	}
	if !cancelled || chosen != chess.NoPieceType {
		t.Fatalf("expected a cancel, got cancelled=%v chosen=%v", cancelled, chosen)
	}

	cancelled = false
	if !click(p, tview.MouseLeftClick, 13, 2) {
		t.Fatal("overlay should capture clicks on the list")
	}
	if cancelled || chosen != chess.Queen {
		t.Fatalf("expected the queen, got cancelled=%v chosen=%v", cancelled, chosen)
	}
}

func TestPromotionEscape(t *testing.T) {
	cancelled := false
	p := NewPromotionView(testTheme(t)).SetCancelledFunc(func() { cancelled = true })
	p.Present(board.PendingPromotion{From: chess.E7, To: chess.E8, Color: chess.White}, board.WhiteBottom, 10, 2, 2)

	press(p.list, tcell.KeyEscape, 0)
	if !cancelled {
		t.Fatal("escape should cancel the promotion")
	}
}
