package config

// Glyph sets for drawing pieces.
const (
	GlyphsUnicode = "unicode"
	GlyphsLetters = "letters"
	GlyphsBlock   = "block"
)

var DefaultConfig Config

// Built-in themes. Brown and blue follow the usual online board colours;
// basic is the xterm-256 palette the first release shipped with.
var (
	ThemeBrown = ThemeHex{
		Name:              "brown",
		SquareDark:        "#b58863",
		SquareLight:       "#f0d9b5",
		SquareSelected:    "#577c57",
		SquareDestination: "#87af87",
		SquareHover:       "#cf6120",
		SquareCheck:       "#e70000",
		SquareLastMove:    "#cdd26a",
		White:             "#ffffff",
		Black:             "#000000",
		Rank:              "#9e9e9e",
		File:              "#9e9e9e",
		Prompt:            "#d70000",
		Input:             "#0",
		InputInvalid:      "#870000",
		Status:            "#0",
		MoveBox:           "#0",
		PromotionBg:       "#3a3a3a",
		PromotionSelected: "#cf6120",
	}

	ThemeBlue = ThemeHex{
		Name:              "blue",
		SquareDark:        "#8ca2ad",
		SquareLight:       "#dee3e6",
		SquareSelected:    "#577c57",
		SquareDestination: "#87af87",
		SquareHover:       "#cf6120",
		SquareCheck:       "#e70000",
		SquareLastMove:    "#aaa23b",
		White:             "#ffffff",
		Black:             "#000000",
		Rank:              "#9e9e9e",
		File:              "#9e9e9e",
		Prompt:            "#d70000",
		Input:             "#0",
		InputInvalid:      "#870000",
		Status:            "#0",
		MoveBox:           "#0",
		PromotionBg:       "#3a3a3a",
		PromotionSelected: "#cf6120",
	}

	ThemeBasic = ThemeHex{
		Name:              "basic",
		SquareDark:        "#d7d7d7",
		SquareLight:       "#ffffd7",
		SquareSelected:    "#ffff00",
		SquareDestination: "#ffd7af",
		SquareHover:       "#ffaf5f",
		SquareCheck:       "#ffafd7",
		SquareLastMove:    "#ffffaf",
		White:             "#080808",
		Black:             "#080808",
		Rank:              "#9e9e9e",
		File:              "#9e9e9e",
		Prompt:            "#d70000",
		Input:             "#0",
		InputInvalid:      "#d75f5f",
		Status:            "#9e9e9e",
		MoveBox:           "#0",
		PromotionBg:       "#585858",
		PromotionSelected: "#ffaf5f",
	}
)

func init() {
	DefaultConfig = Config{
		Theme:       ThemeBrown.Name,
		Themes:      []ThemeHex{ThemeBrown, ThemeBlue, ThemeBasic},
		Glyphs:      GlyphsUnicode,
		Orientation: "white",
		Mouse:       true,
		LogLevel:    "info",
		SSH: SSHConfig{
			Addr:        ":2222",
			IdleTimeout: "5m",
		},
	}
}
