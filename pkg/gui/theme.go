package gui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/notnil/chess"

	"github.com/qnkhuat/tuichess/pkg/board"
	"github.com/qnkhuat/tuichess/pkg/config"
)

// ErrNoTheme is returned by ImportThemes when the wanted theme is missing.
var ErrNoTheme = errors.New("theme: no theme found")

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name              string
	SquareDark        tcell.Color
	SquareLight       tcell.Color
	SquareSelected    tcell.Color
	SquareDestination tcell.Color
	SquareHover       tcell.Color
	SquareCheck       tcell.Color
	SquareLastMove    tcell.Color
	White             tcell.Color
	Black             tcell.Color
	Rank              tcell.Color
	File              tcell.Color
	Prompt            tcell.Color
	Input             tcell.Color
	InputInvalid      tcell.Color
	Status            tcell.Color
	MoveBox           tcell.Color
	PromotionBg       tcell.Color
	PromotionSelected tcell.Color
}

// parseHex converts a config colour. "#0" and "" are the terminal default;
// anything else must be a #rrggbb hex string.
func parseHex(s string) (tcell.Color, error) {
	if s == "" || s == "#0" {
		return tcell.ColorDefault, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("theme: bad colour %q: %w", s, err)
	}
	return toTcell(c), nil
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func fromTcell(c tcell.Color) (colorful.Color, bool) {
	if c == tcell.ColorDefault {
		return colorful.Color{}, false
	}
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, true
}

// blend mixes a and b in Lab space. The default colour cannot be mixed, so
// a wins when either side is default.
func blend(a, b tcell.Color, t float64) tcell.Color {
	ca, okA := fromTcell(a)
	cb, okB := fromTcell(b)
	if !okA || !okB {
		return a
	}
	return toTcell(ca.BlendLab(cb, t).Clamped())
}

// FromHex converts a config theme. An empty hover colour is derived by
// blending the destination and selection colours.
func FromHex(t config.ThemeHex) (Theme, error) {
	th := Theme{Name: t.Name}
	fields := []struct {
		dst *tcell.Color
		hex string
	}{
		{&th.SquareDark, t.SquareDark},
		{&th.SquareLight, t.SquareLight},
		{&th.SquareSelected, t.SquareSelected},
		{&th.SquareDestination, t.SquareDestination},
		{&th.SquareHover, t.SquareHover},
		{&th.SquareCheck, t.SquareCheck},
		{&th.SquareLastMove, t.SquareLastMove},
		{&th.White, t.White},
		{&th.Black, t.Black},
		{&th.Rank, t.Rank},
		{&th.File, t.File},
		{&th.Prompt, t.Prompt},
		{&th.Input, t.Input},
		{&th.InputInvalid, t.InputInvalid},
		{&th.Status, t.Status},
		{&th.MoveBox, t.MoveBox},
		{&th.PromotionBg, t.PromotionBg},
		{&th.PromotionSelected, t.PromotionSelected},
	}
	for _, f := range fields {
		c, err := parseHex(f.hex)
		if err != nil {
			return Theme{}, fmt.Errorf("%s: %w", t.Name, err)
		}
		*f.dst = c
	}
	if t.SquareHover == "" {
		th.SquareHover = blend(th.SquareDestination, th.SquareSelected, 0.5)
	}
	return th, nil
}

// ImportThemes returns the converted theme named want.
func ImportThemes(want string, themes []config.ThemeHex) (Theme, error) {
	for _, t := range themes {
		if t.Name == want {
			return FromHex(t)
		}
	}
	return Theme{}, ErrNoTheme
}

// squareBg returns the background colour for a rendered cell.
func (t Theme) squareBg(c board.Cell) tcell.Color {
	switch c.Highlight() {
	case board.HighlightSelected:
		return t.SquareSelected
	case board.HighlightCheck:
		return t.SquareCheck
	case board.HighlightHover:
		return t.SquareHover
	case board.HighlightDestination:
		return t.SquareDestination
	case board.HighlightLastMove:
		return t.SquareLastMove
	}
	if c.Shade == board.Light {
		return t.SquareLight
	}
	return t.SquareDark
}

// cellStyle applies the theme's style to a cell and its piece
func (t Theme) cellStyle(c board.Cell) tcell.Style {
	style := tcell.StyleDefault.Background(t.squareBg(c))
	if c.Piece.Color() == chess.White {
		return style.Foreground(t.White)
	}
	return style.Foreground(t.Black)
}
