package rules

import (
	"regexp"
	"strings"

	"github.com/notnil/chess"
)

// sanPattern is the grammar of a single move in algebraic notation: an
// optional piece letter, optional origin file and rank, an optional "-" or
// "x", the destination and an optional promotion, or either castle, each with
// an optional check or mate suffix. Long forms such as "e2e4" and "Ng1-f3"
// are accepted alongside plain SAN.
var sanPattern = regexp.MustCompile(`^(?:[NBKRQ]?[a-h]?[1-8]?[-x]?[a-h][1-8](?:=?[NBRQnbrq])?|O-O(?:-O)?|0-0(?:-0)?)[+#]?$`)

// movePattern splits a normalized non-castling move into piece, origin file,
// origin rank, destination and promotion.
var movePattern = regexp.MustCompile(`^([NBKRQ])?([a-h])?([1-8])?[-x]?([a-h][1-8])(?:=([NBRQ]))?[+#]?$`)

var pieceLetters = map[string]chess.PieceType{
	"":  chess.Pawn,
	"N": chess.Knight,
	"B": chess.Bishop,
	"R": chess.Rook,
	"Q": chess.Queen,
	"K": chess.King,
}

// moveHint is what a typed move says about the move it names.
type moveHint struct {
	piece chess.PieceType
	file  string
	rank  string
	to    string
	promo chess.PieceType
}

func parseHint(text string) (moveHint, bool) {
	m := movePattern.FindStringSubmatch(text)
	if m == nil {
		return moveHint{}, false
	}
	h := moveHint{piece: pieceLetters[m[1]], file: m[2], rank: m[3], to: m[4], promo: chess.NoPieceType}
	if m[5] != "" {
		h.promo = pieceLetters[m[5]]
	}
	return h, true
}

func (h moveHint) matches(pos *chess.Position, m *chess.Move) bool {
	from := m.S1()
	switch {
	case pos.Board().Piece(from).Type() != h.piece:
		return false
	case m.S2().String() != h.to:
		return false
	case h.file != "" && from.File().String() != h.file:
		return false
	case h.rank != "" && from.Rank().String() != h.rank:
		return false
	case h.piece == chess.Pawn && h.file == "" && from.File() != m.S2().File():
		// a pawn capture always names its file
		return false
	}
	return m.Promo() == h.promo
}

// ValidSAN reports whether text is syntactically a SAN move. It says nothing
// about legality.
func ValidSAN(text string) bool {
	return sanPattern.MatchString(text)
}

// normalizeSAN rewrites accepted spelling variants into the form the
// notation encoder produces: zero castles become letter castles and a
// promotion piece is written as "=Q".
func normalizeSAN(text string) string {
	body := strings.TrimRight(text, "+#")
	suffix := text[len(body):]
	switch body {
	case "0-0":
		return "O-O" + suffix
	case "0-0-0":
		return "O-O-O" + suffix
	}
	if n := len(body); n >= 3 && body[0] >= 'a' && body[0] <= 'h' {
		last := body[n-1]
		if strings.IndexByte("nbrqNBRQ", last) >= 0 {
			head := strings.TrimSuffix(body[:n-1], "=")
			body = head + "=" + strings.ToUpper(string(last))
		}
	}
	return body + suffix
}
