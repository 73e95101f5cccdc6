package board

import (
	"github.com/notnil/chess"

	"github.com/qnkhuat/tuichess/pkg/rules"
)

// Reader is the read-only part of the position model used for rendering.
type Reader interface {
	SideToMove() chess.Color
	PieceAt(sq chess.Square) chess.Piece
	IsCheck() bool
	LastMove() (rules.Move, bool)
}

// Shade is the base color of a square.
type Shade int

const (
	Dark Shade = iota
	Light
)

// Highlight is the overlay drawn on top of a square's base shade.
type Highlight int

const (
	HighlightNone Highlight = iota
	HighlightLastMove
	HighlightDestination
	HighlightHover
	HighlightCheck
	HighlightSelected
)

// Cell is the render-time projection of one square.
type Cell struct {
	Square      chess.Square
	Piece       chess.Piece
	Shade       Shade
	Selected    bool
	Destination bool
	Hovered     bool
	Check       bool
	LastMove    bool
}

// Highlight resolves the flags of c into the single overlay to draw.
func (c Cell) Highlight() Highlight {
	switch {
	case c.Selected:
		return HighlightSelected
	case c.Check:
		return HighlightCheck
	case c.Hovered:
		return HighlightHover
	case c.Destination:
		return HighlightDestination
	case c.LastMove:
		return HighlightLastMove
	default:
		return HighlightNone
	}
}

type point struct {
	row, col int
}

// Grid is the 8x8 visual board. Row 0 is the top of the screen.
type Grid struct {
	Orientation Orientation
	cells       [numRows][numCols]Cell
	index       [64]point
}

// At returns the cell displayed at row, col.
func (g *Grid) At(row, col int) Cell {
	return g.cells[row][col]
}

// Locate returns the grid position of sq.
func (g *Grid) Locate(sq chess.Square) (row, col int) {
	p := g.index[sq]
	return p.row, p.col
}

// Cell returns the cell showing sq.
func (g *Grid) Cell(sq chess.Square) Cell {
	p := g.index[sq]
	return g.cells[p.row][p.col]
}

// Render projects the position and widget state onto a grid. It has no side
// effects.
func Render(pos Reader, o Orientation, st State) *Grid {
	g := &Grid{Orientation: o}
	turn := pos.SideToMove()
	check := pos.IsCheck()
	last, hasLast := pos.LastMove()

	for row := 0; row < numRows; row++ {
		for col := 0; col < numCols; col++ {
			sq, _ := o.SquareAt(row, col)
			p := pos.PieceAt(sq)
			cell := Cell{
				Square: sq,
				Piece:  p,
				Shade:  squareShade(sq),
			}
			if st.Phase == PieceSelected {
				cell.Selected = sq == st.Selected
				cell.Destination = st.Destinations.Has(sq)
				cell.Hovered = sq == st.Hovered
			}
			if st.Pending != nil {
				cell.Selected = sq == st.Pending.From
				cell.Destination = sq == st.Pending.To
			}
			if check && p.Type() == chess.King && p.Color() == turn {
				cell.Check = true
			}
			if hasLast && (sq == last.From || sq == last.To) {
				cell.LastMove = true
			}
			g.cells[row][col] = cell
			g.index[sq] = point{row, col}
		}
	}
	return g
}

func squareShade(sq chess.Square) Shade {
	if (int(sq.File())+int(sq.Rank()))%2 == 0 {
		return Dark
	}
	return Light
}
