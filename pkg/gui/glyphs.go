package gui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/notnil/chess"

	"github.com/qnkhuat/tuichess/pkg/config"
)

// GlyphSet draws pieces into fixed size cells.
type GlyphSet struct {
	Name       string
	CellWidth  int
	CellHeight int
	art        func(p chess.Piece) []string
}

var blockArt = map[chess.PieceType][]string{
	chess.King:   {"   ▄▄", "  ▀██▀", " ██████", " ▄████▄"},
	chess.Queen:  {"   ▄▄", " █▄██▄█", "  ▀██▀", " ▄████▄"},
	chess.Rook:   {" ▄ ▄▄ ▄", " ▀████▀", "  ████", " ██████"},
	chess.Bishop: {"   ▄▄", "  ██▄▄", "   ██", " ▄████▄"},
	chess.Knight: {"   ▄▄", " ▄████", " ▀▀███", " ▄████▄"},
	chess.Pawn:   {"   ▄▄", "  ▄██▄", "   ██", " ▄████▄"},
}

var (
	// UnicodeGlyphs uses the chess symbols of the Unicode block.
	UnicodeGlyphs = GlyphSet{
		Name:       config.GlyphsUnicode,
		CellWidth:  4,
		CellHeight: 2,
		art: func(p chess.Piece) []string {
			return []string{p.String()}
		},
	}

	// LetterGlyphs uses K Q R B N P, upper case for both sides. The theme
	// colours tell the sides apart.
	LetterGlyphs = GlyphSet{
		Name:       config.GlyphsLetters,
		CellWidth:  4,
		CellHeight: 2,
		art: func(p chess.Piece) []string {
			return []string{strings.ToUpper(p.Type().String())}
		},
	}

	// BlockGlyphs draws large pieces out of half blocks.
	BlockGlyphs = GlyphSet{
		Name:       config.GlyphsBlock,
		CellWidth:  8,
		CellHeight: 4,
		art: func(p chess.Piece) []string {
			return blockArt[p.Type()]
		},
	}
)

// GlyphsByName returns the glyph set called name.
func GlyphsByName(name string) (GlyphSet, error) {
	for _, gs := range []GlyphSet{UnicodeGlyphs, LetterGlyphs, BlockGlyphs} {
		if gs.Name == name {
			return gs, nil
		}
	}
	return GlyphSet{}, fmt.Errorf("glyphs: unknown set %q", name)
}

// Lines returns exactly CellHeight lines of exactly CellWidth columns with
// p centred in them. An empty square is all blanks.
func (gs GlyphSet) Lines(p chess.Piece) []string {
	var art []string
	if p != chess.NoPiece {
		art = gs.art(p)
	}
	blank := strings.Repeat(" ", gs.CellWidth)
	lines := make([]string, gs.CellHeight)
	top := (gs.CellHeight - len(art)) / 2
	for i := range lines {
		j := i - top
		if j < 0 || j >= len(art) {
			lines[i] = blank
			continue
		}
		lines[i] = gs.pad(art[j])
	}
	return lines
}

// pad centres single glyphs and left aligns multi column art, which is
// already laid out for the cell.
func (gs GlyphSet) pad(s string) string {
	w := runewidth.StringWidth(s)
	if w > gs.CellWidth {
		return runewidth.Truncate(s, gs.CellWidth, "")
	}
	if w == 1 {
		s = strings.Repeat(" ", (gs.CellWidth-1)/2) + s
	}
	return runewidth.FillRight(s, gs.CellWidth)
}

func runeWidth(r rune) int {
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}
