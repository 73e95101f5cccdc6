// Package rules adapts github.com/notnil/chess to the position model the
// board widget consumes.
package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

var (
	// ErrIllegalMove is returned when a move is not legal in the current position.
	ErrIllegalMove = errors.New("rules: illegal move")
	// ErrUnknownMove is returned when notation does not resolve to any legal move.
	ErrUnknownMove = errors.New("rules: notation does not match a legal move")
)

// Move is a from/to pair with an optional promotion piece type.
type Move struct {
	From  chess.Square
	To    chess.Square
	Promo chess.PieceType
}

// String returns the move in UCI form, e.g. e7e8q.
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promo != chess.NoPieceType {
		s += m.Promo.String()
	}
	return s
}

func fromChess(m *chess.Move) Move {
	return Move{From: m.S1(), To: m.S2(), Promo: m.Promo()}
}

// Game is the position model of a single game.
type Game struct {
	game *chess.Game
}

// NewGame starts a game from the standard initial position.
func NewGame() *Game {
	return &Game{game: chess.NewGame()}
}

// GameFromFEN starts a game from the given FEN.
func GameFromFEN(fen string) (*Game, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("rules: parse fen %q: %w", fen, err)
	}
	return &Game{game: chess.NewGame(opt)}, nil
}

// FEN returns the current position in Forsyth-Edwards notation.
func (g *Game) FEN() string {
	return g.game.Position().String()
}

// SideToMove returns the color whose turn it is.
func (g *Game) SideToMove() chess.Color {
	return g.game.Position().Turn()
}

// PieceAt returns the piece occupying sq, or chess.NoPiece.
func (g *Game) PieceAt(sq chess.Square) chess.Piece {
	return g.game.Position().Board().Piece(sq)
}

// LegalMoves returns every legal move starting on from.
func (g *Game) LegalMoves(from chess.Square) []Move {
	var moves []Move
	for _, m := range g.game.ValidMoves() {
		if m.S1() == from {
			moves = append(moves, fromChess(m))
		}
	}
	return moves
}

// IsLegal reports whether m is legal in the current position.
func (g *Game) IsLegal(m Move) bool {
	return g.find(m) != nil
}

// Apply plays m. It fails with ErrIllegalMove when m is not legal.
func (g *Game) Apply(m Move) error {
	valid := g.find(m)
	if valid == nil {
		return fmt.Errorf("%w: %s in %s", ErrIllegalMove, m, g.FEN())
	}
	return g.game.Move(valid)
}

// IsCheck reports whether the side to move is in check.
func (g *Game) IsCheck() bool {
	moves := g.game.Moves()
	if len(moves) > 0 {
		return moves[len(moves)-1].HasTag(chess.Check)
	}
	// Positions loaded from FEN have no move history to carry the tag.
	return attacked(g.game.Position(), g.kingSquare(g.SideToMove()))
}

// Outcome returns the terminal result of the game, or nil while it is in
// progress.
func (g *Game) Outcome() *Outcome {
	if g.game.Outcome() == chess.NoOutcome {
		return nil
	}
	return newOutcome(g.game.Outcome(), g.game.Method())
}

// LastMove returns the most recently applied move.
func (g *Game) LastMove() (Move, bool) {
	moves := g.game.Moves()
	if len(moves) == 0 {
		return Move{}, false
	}
	return fromChess(moves[len(moves)-1]), true
}

// ToAlgebraic encodes m in standard algebraic notation for the current
// position, including capture, promotion and check suffixes.
func (g *Game) ToAlgebraic(m Move) (string, error) {
	valid := g.find(m)
	if valid == nil {
		return "", fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	return chess.AlgebraicNotation{}.Encode(g.game.Position(), valid), nil
}

// ParseAlgebraic resolves SAN text to a legal move in the current position.
// A move written without its check or mate suffix, with more of its origin
// square than needed, or in long form ("e2e4", "Ng1-f3") is still recognised
// as long as exactly one legal move fits.
func (g *Game) ParseAlgebraic(text string) (Move, error) {
	pos := g.game.Position()
	text = normalizeSAN(text)
	if m, err := (chess.AlgebraicNotation{}).Decode(pos, text); err == nil {
		return fromChess(m), nil
	}
	want := stripSuffix(text)
	for _, m := range pos.ValidMoves() {
		if stripSuffix(chess.AlgebraicNotation{}.Encode(pos, m)) == want {
			return fromChess(m), nil
		}
	}
	hint, ok := parseHint(text)
	if !ok {
		return Move{}, fmt.Errorf("%w: %q", ErrUnknownMove, text)
	}
	var found *chess.Move
	for _, m := range pos.ValidMoves() {
		if !hint.matches(pos, m) {
			continue
		}
		if found != nil {
			return Move{}, fmt.Errorf("%w: %q is ambiguous", ErrUnknownMove, text)
		}
		found = m
	}
	if found == nil {
		return Move{}, fmt.Errorf("%w: %q", ErrUnknownMove, text)
	}
	return fromChess(found), nil
}

// History returns the SAN of every move played so far.
func (g *Game) History() []string {
	positions := g.game.Positions()
	moves := g.game.Moves()
	sans := make([]string, 0, len(moves))
	for i, m := range moves {
		sans = append(sans, chess.AlgebraicNotation{}.Encode(positions[i], m))
	}
	return sans
}

func (g *Game) find(m Move) *chess.Move {
	for _, v := range g.game.ValidMoves() {
		if v.S1() == m.From && v.S2() == m.To && v.Promo() == m.Promo {
			return v
		}
	}
	return nil
}

func (g *Game) kingSquare(c chess.Color) chess.Square {
	king := chess.WhiteKing
	if c == chess.Black {
		king = chess.BlackKing
	}
	for sq, p := range g.game.Position().Board().SquareMap() {
		if p == king {
			return sq
		}
	}
	return chess.NoSquare
}

// attacked reports whether the opponent of the side to move attacks sq,
// by handing the move to the opponent and looking for a move landing on it.
func attacked(pos *chess.Position, sq chess.Square) bool {
	if sq == chess.NoSquare {
		return false
	}
	fields := strings.Fields(pos.String())
	if len(fields) < 4 {
		return false
	}
	fields[1] = pos.Turn().Other().String()
	fields[3] = "-"
	opt, err := chess.FEN(strings.Join(fields, " "))
	if err != nil {
		return false
	}
	for _, m := range chess.NewGame(opt).ValidMoves() {
		if m.S2() == sq {
			return true
		}
	}
	return false
}

func stripSuffix(san string) string {
	return strings.TrimRight(san, "+#!?")
}
