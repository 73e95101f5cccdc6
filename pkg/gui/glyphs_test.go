package gui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/notnil/chess"
)

func TestGlyphLinesFillCell(t *testing.T) {
	pieces := []chess.Piece{chess.NoPiece, chess.WhiteKing, chess.BlackPawn, chess.WhiteKnight, chess.BlackQueen}
	for _, gs := range []GlyphSet{UnicodeGlyphs, LetterGlyphs, BlockGlyphs} {
		for _, p := range pieces {
			lines := gs.Lines(p)
			if len(lines) != gs.CellHeight {
				t.Fatalf("%s: expected %d lines for %v, got %d", gs.Name, gs.CellHeight, p, len(lines))
			}
			for _, l := range lines {
				if w := runewidth.StringWidth(l); w != gs.CellWidth {
					t.Fatalf("%s: line %q of %v is %d wide, want %d", gs.Name, l, p, w, gs.CellWidth)
				}
			}
		}
	}
}

func TestGlyphLinesContent(t *testing.T) {
	for _, l := range BlockGlyphs.Lines(chess.NoPiece) {
		if strings.TrimSpace(l) != "" {
			t.Fatalf("empty square should be blank, got %q", l)
		}
	}

	lines := LetterGlyphs.Lines(chess.BlackKnight)
	if strings.TrimSpace(lines[0]) != "N" {
		t.Fatalf("expected N on the first line, got %q", lines)
	}

	lines = UnicodeGlyphs.Lines(chess.WhiteQueen)
	if !strings.Contains(lines[0], "♕") {
		t.Fatalf("expected the white queen symbol, got %q", lines)
	}

	lines = BlockGlyphs.Lines(chess.WhiteRook)
	if strings.TrimRight(lines[0], " ") != " ▄ ▄▄ ▄" {
		t.Fatalf("unexpected rook art %q", lines)
	}
}

func TestGlyphsByName(t *testing.T) {
	for _, name := range []string{"unicode", "letters", "block"} {
		gs, err := GlyphsByName(name)
		if err != nil {
			t.Fatal(err)
		}
		if gs.Name != name {
			t.Fatalf("expected %s, got %s", name, gs.Name)
		}
	}
	if _, err := GlyphsByName("emoji"); err == nil {
		t.Fatal("expected error for unknown glyph set")
	}
}
