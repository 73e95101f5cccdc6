package board

import (
	"math/bits"

	"github.com/notnil/chess"
)

const (
	numRows = 8
	numCols = 8
)

// Orientation selects which side's back rank is drawn at the bottom.
type Orientation int

const (
	WhiteBottom Orientation = iota
	BlackBottom
)

// OrientationFor returns the orientation that puts c at the bottom.
func OrientationFor(c chess.Color) Orientation {
	if c == chess.Black {
		return BlackBottom
	}
	return WhiteBottom
}

// Bottom returns the color whose back rank is at the bottom of the grid.
func (o Orientation) Bottom() chess.Color {
	if o == BlackBottom {
		return chess.Black
	}
	return chess.White
}

// Flip returns the opposite orientation.
func (o Orientation) Flip() Orientation {
	if o == WhiteBottom {
		return BlackBottom
	}
	return WhiteBottom
}

func (o Orientation) String() string {
	if o == BlackBottom {
		return "black"
	}
	return "white"
}

// SquareAt maps a grid position to the square displayed there. Row 0 is the
// top of the grid. ok is false outside the 8x8 grid.
func (o Orientation) SquareAt(row, col int) (sq chess.Square, ok bool) {
	if row < 0 || row >= numRows || col < 0 || col >= numCols {
		return chess.NoSquare, false
	}
	if o == WhiteBottom {
		return getSquare(chess.File(col), chess.Rank(numRows-row-1)), true
	}
	return getSquare(chess.File(numCols-col-1), chess.Rank(row)), true
}

// Position maps a square to its grid row and column.
func (o Orientation) Position(sq chess.Square) (row, col int) {
	f, r := int(sq.File()), int(sq.Rank())
	if o == WhiteBottom {
		return numRows - r - 1, f
	}
	return r, numCols - f - 1
}

func getSquare(f chess.File, r chess.Rank) chess.Square {
	return chess.Square((int(r) * 8) + int(f))
}

// SquareSet is a set of squares, one bit per square.
type SquareSet uint64

// Add returns s with sq added.
func (s SquareSet) Add(sq chess.Square) SquareSet {
	if sq < 0 || sq > chess.H8 {
		return s
	}
	return s | 1<<uint(sq)
}

// Has reports whether sq is in s.
func (s SquareSet) Has(sq chess.Square) bool {
	if sq < 0 || sq > chess.H8 {
		return false
	}
	return s&(1<<uint(sq)) != 0
}

// Len returns the number of squares in s.
func (s SquareSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// Squares returns the members of s in ascending order.
func (s SquareSet) Squares() []chess.Square {
	var sqs []chess.Square
	for sq := chess.A1; sq <= chess.H8; sq++ {
		if s.Has(sq) {
			sqs = append(sqs, sq)
		}
	}
	return sqs
}
