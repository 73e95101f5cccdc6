package gui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/notnil/chess"

	"github.com/qnkhuat/tuichess/pkg/board"
)

// ansiBg maps highlights onto the 16 colour palette every terminal has.
var ansiBg = map[board.Highlight]color.Attribute{
	board.HighlightSelected:    color.BgGreen,
	board.HighlightCheck:       color.BgRed,
	board.HighlightHover:       color.BgYellow,
	board.HighlightDestination: color.BgHiGreen,
	board.HighlightLastMove:    color.BgHiYellow,
}

// PrintGrid writes g to w with ANSI colours, one text row per board row
// and rank and file labels around it. Colour is left to fatih/color, which
// turns it off when w is not a terminal unless forced.
func PrintGrid(w io.Writer, g *board.Grid, glyphs GlyphSet, force bool) error {
	for row := 0; row < 8; row++ {
		for i := 0; i < glyphs.CellHeight; i++ {
			label := "  "
			if i == glyphs.CellHeight/2 {
				label = g.At(row, 0).Square.Rank().String() + " "
			}
			if _, err := fmt.Fprint(w, label); err != nil {
				return err
			}
			for col := 0; col < 8; col++ {
				cell := g.At(row, col)
				c := cellColor(cell)
				if force {
					c.EnableColor()
				}
				if _, err := c.Fprint(w, glyphs.Lines(cell.Piece)[i]); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	files := "  "
	for col := 0; col < 8; col++ {
		f := g.At(0, col).Square.File().String()
		files += fmt.Sprintf("%*s%-*s", (glyphs.CellWidth-1)/2, "", glyphs.CellWidth-(glyphs.CellWidth-1)/2, f)
	}
	_, err := fmt.Fprintln(w, files)
	return err
}

func cellColor(cell board.Cell) *color.Color {
	bg, ok := ansiBg[cell.Highlight()]
	if !ok {
		bg = color.BgHiBlack
		if cell.Shade == board.Light {
			bg = color.BgWhite
		}
	}
	fg := color.FgBlack
	if cell.Piece.Color() == chess.White {
		fg = color.FgHiWhite
	}
	return color.New(bg, fg, color.Bold)
}
