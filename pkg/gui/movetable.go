package gui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/rivo/tview"

	"github.com/qnkhuat/tuichess/pkg/board"
)

// MoveTable lists the moves played, one full move per row.
type MoveTable struct {
	*tview.Table
	theme    Theme
	rows     int
	fullMove int
}

func NewMoveTable(theme Theme) *MoveTable {
	t := &MoveTable{
		Table: tview.NewTable(),
		theme: theme,
	}
	t.SetSelectable(false, false).
		SetBorders(false)
	t.SetBorder(true).
		SetTitle(" Moves ").
		SetBorderColor(theme.MoveBox)
	return t
}

// AddMove appends rec. A game whose first recorded move is black's starts
// with an elided white cell.
func (t *MoveTable) AddMove(rec board.MoveRecord) {
	if rec.Color == chess.White || t.rows == 0 {
		t.fullMove++
		t.rows++
		row := t.rows - 1
		t.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%d.", t.fullMove)).
			SetTextColor(t.theme.Status).
			SetAlign(tview.AlignRight))
		if rec.Color == chess.Black {
			t.SetCell(row, 1, tview.NewTableCell("…"))
		}
	}
	col := 1
	if rec.Color == chess.Black {
		col = 2
	}
	t.unmarkLast()
	t.SetCell(t.rows-1, col, tview.NewTableCell(rec.Notation).
		SetExpansion(1).
		SetAttributes(tcell.AttrBold))
	t.ScrollToEnd()
}

// Reset removes every move.
func (t *MoveTable) Reset() {
	t.Clear()
	t.rows = 0
	t.fullMove = 0
}

// Len returns the number of rows.
func (t *MoveTable) Len() int {
	return t.rows
}

// unmarkLast drops the bold from the previously newest move.
func (t *MoveTable) unmarkLast() {
	for row := 0; row < t.rows; row++ {
		for col := 1; col <= 2; col++ {
			if cell := t.GetCell(row, col); cell != nil {
				cell.SetAttributes(tcell.AttrNone)
			}
		}
	}
}
