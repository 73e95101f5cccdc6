package board

import (
	"strings"
	"testing"

	"github.com/notnil/chess"

	"github.com/qnkhuat/tuichess/pkg/rules"
)

type recorder struct {
	played  []MovePlayed
	over    []GameOver
	pending []PendingPromotion
	// order interleaves "move" and "over" to check emission order.
	order []string
}

func newTestBoard(t *testing.T, fen string) (*Board, *rules.Game, *recorder) {
	t.Helper()
	g := rules.NewGame()
	if fen != "" {
		var err error
		if g, err = rules.GameFromFEN(fen); err != nil {
			t.Fatal(err)
		}
	}
	rec := &recorder{}
	b := NewBoard(g, WhiteBottom, nil)
	b.SetMovePlayedFunc(func(e MovePlayed) {
		rec.played = append(rec.played, e)
		rec.order = append(rec.order, "move:"+e.Notation)
	}).SetGameOverFunc(func(e GameOver) {
		rec.over = append(rec.over, e)
		rec.order = append(rec.order, "over")
	}).SetPromotionFunc(func(p PendingPromotion) {
		rec.pending = append(rec.pending, p)
	})
	return b, g, rec
}

func TestClickNonOwnPieceStaysIdle(t *testing.T) {
	b, _, _ := newTestBoard(t, "")

	for sq := chess.A1; sq <= chess.H8; sq++ {
		p := b.Rules().PieceAt(sq)
		if p != chess.NoPiece && p.Color() == chess.White {
			continue
		}
		b.Click(sq)
		if st := b.State(); st.Phase != Idle || st.HasSelection() {
			t.Fatalf("clicking %s from idle selected something: %+v", sq, st)
		}
	}
}

func TestDestinationsSubsetOfLegalMoves(t *testing.T) {
	b, g, _ := newTestBoard(t, "r3k2r/pPpp1ppp/8/4P3/8/8/P1PP1PPP/R3K2R w KQkq - 0 1")

	for sq := chess.A1; sq <= chess.H8; sq++ {
		b.Deselect()
		b.Click(sq)
		st := b.State()
		if st.Phase != PieceSelected {
			continue
		}
		legal := SquareSet(0)
		for _, m := range g.LegalMoves(sq) {
			legal = legal.Add(m.To)
		}
		if st.Destinations&^legal != 0 {
			t.Fatalf("destinations of %s not a subset of legal targets: %v vs %v",
				sq, st.Destinations.Squares(), legal.Squares())
		}
		if st.Destinations != legal {
			t.Fatalf("destinations of %s should be every legal target", sq)
		}
	}
}

func TestSelectPawnAndPlay(t *testing.T) {
	b, g, rec := newTestBoard(t, "")

	b.Click(chess.E2)
	st := b.State()
	if st.Phase != PieceSelected || st.Selected != chess.E2 {
		t.Fatalf("expected e2 selected, got %+v", st)
	}
	want := SquareSet(0).Add(chess.E3).Add(chess.E4)
	if st.Destinations != want {
		t.Fatalf("expected destinations e3 e4, got %v", st.Destinations.Squares())
	}

	b.Click(chess.E4)
	if len(rec.played) != 1 || rec.played[0].Notation != "e4" {
		t.Fatalf("expected MovePlayed e4, got %+v", rec.played)
	}
	if rec.played[0].Ply != 1 {
		t.Fatalf("expected ply 1, got %d", rec.played[0].Ply)
	}
	if g.SideToMove() != chess.Black {
		t.Fatal("expected black to move")
	}
	if st := b.State(); st.Phase != Idle || st.HasSelection() {
		t.Fatalf("selection should be cleared, got %+v", st)
	}
	if h := b.History(); len(h) != 1 || h[0].Notation != "e4" || h[0].Color != chess.White {
		t.Fatalf("unexpected history %+v", h)
	}
}

func TestClickElsewhereReturnsToIdle(t *testing.T) {
	b, g, rec := newTestBoard(t, "")
	fen := g.FEN()

	b.Click(chess.G1)
	if b.State().Phase != PieceSelected {
		t.Fatal("expected knight selected")
	}
	b.Click(chess.G5)
	if st := b.State(); st.Phase != Idle {
		t.Fatalf("expected idle, got %s", st.Phase)
	}
	if g.FEN() != fen || len(rec.played) != 0 {
		t.Fatal("position must not change")
	}

	b.Click(chess.G1)
	b.Click(chess.G1)
	if b.State().Phase != Idle {
		t.Fatal("clicking the selected square again deselects it")
	}
}

func TestReselectOwnPiece(t *testing.T) {
	b, _, _ := newTestBoard(t, "")

	b.Click(chess.E2)
	b.Click(chess.G1)
	st := b.State()
	if st.Phase != PieceSelected || st.Selected != chess.G1 {
		t.Fatalf("expected g1 reselected, got %+v", st)
	}
	want := SquareSet(0).Add(chess.F3).Add(chess.H3)
	if st.Destinations != want {
		t.Fatalf("expected f3 h3, got %v", st.Destinations.Squares())
	}
}

func TestHover(t *testing.T) {
	b, g, _ := newTestBoard(t, "")
	fen := g.FEN()

	b.Hover(chess.E4)
	if b.State().Hovered != chess.NoSquare {
		t.Fatal("hover without selection must not highlight")
	}

	b.Click(chess.E2)
	b.Hover(chess.E4)
	b.Hover(chess.E4)
	if st := b.State(); st.Hovered != chess.E4 || st.Selected != chess.E2 {
		t.Fatalf("expected e4 hovered with e2 selected, got %+v", st)
	}
	if !b.Render().Cell(chess.E4).Hovered {
		t.Fatal("hovered cell should be flagged")
	}

	b.Hover(chess.E5)
	if st := b.State(); st.Hovered != chess.NoSquare || st.Phase != PieceSelected {
		t.Fatalf("non destination hover should clear only the highlight, got %+v", st)
	}
	b.HoverAt(-1, 3)
	if g.FEN() != fen {
		t.Fatal("hover must not change the position")
	}
}

func TestClickAtOutsideGrid(t *testing.T) {
	b, _, _ := newTestBoard(t, "")

	b.ClickAt(6, 4) // e2 from white's side
	if b.State().Selected != chess.E2 {
		t.Fatalf("expected e2 selected, got %s", b.State().Selected)
	}
	for _, pos := range [][2]int{{-1, 0}, {8, 0}, {0, -1}, {0, 8}} {
		b.ClickAt(pos[0], pos[1])
		if b.State().Selected != chess.E2 {
			t.Fatalf("click outside grid at %v changed state", pos)
		}
	}
}

func TestClickAtFollowsOrientation(t *testing.T) {
	b, _, _ := newTestBoard(t, "")
	b.Flip()

	// With black at the bottom, e2 is on row 1, column 3.
	b.ClickAt(1, 3)
	if st := b.State(); st.Selected != chess.E2 {
		t.Fatalf("expected e2 selected after flip, got %+v", st)
	}
}

func TestFlipClearsSelection(t *testing.T) {
	b, _, _ := newTestBoard(t, "")

	b.Click(chess.E2)
	b.Flip()
	if b.Orientation() != BlackBottom {
		t.Fatal("expected black at the bottom")
	}
	if b.State().Phase != Idle {
		t.Fatal("flip should clear the selection")
	}
}

const promotionFEN = "8/4P3/8/8/8/8/k7/7K w - - 0 1"

func TestPromotionWaitsForChoice(t *testing.T) {
	b, g, rec := newTestBoard(t, promotionFEN)
	fen := g.FEN()

	b.Click(chess.E7)
	b.Click(chess.E8)

	st := b.State()
	if st.Phase != AwaitingPromotion || st.Pending == nil {
		t.Fatalf("expected pending promotion, got %+v", st)
	}
	want := PendingPromotion{From: chess.E7, To: chess.E8, Color: chess.White}
	if *st.Pending != want {
		t.Fatalf("unexpected pending promotion %+v", *st.Pending)
	}
	if len(rec.pending) != 1 || rec.pending[0] != want {
		t.Fatalf("promotion handler not called with %+v: %+v", want, rec.pending)
	}
	if g.FEN() != fen || len(rec.played) != 0 {
		t.Fatal("position must not change before the choice")
	}

	// Board clicks, hovers and typed moves are suspended.
	b.Click(chess.H1)
	b.Hover(chess.E8)
	if b.Submit("Kg2") != InputRejected {
		t.Fatal("typed moves should be rejected while promoting")
	}
	if b.State().Phase != AwaitingPromotion || g.FEN() != fen {
		t.Fatal("suspended input changed state")
	}

	// Flipping turns the board but keeps the pending choice.
	b.Flip()
	if b.Orientation() != BlackBottom {
		t.Fatal("expected black at the bottom")
	}
	st = b.State()
	if st.Phase != AwaitingPromotion || st.Pending == nil || *st.Pending != want {
		t.Fatalf("flip dropped the pending promotion: %+v", st)
	}
	if err := b.ChoosePromotion(chess.Queen); err != nil {
		t.Fatal(err)
	}
	if len(rec.played) != 1 || rec.played[0].Notation != "e8=Q" {
		t.Fatalf("expected e8=Q after the flip, got %+v", rec.played)
	}
}

func TestPromotionCancel(t *testing.T) {
	b, g, rec := newTestBoard(t, promotionFEN)
	fen := g.FEN()
	before := b.Render()

	b.Click(chess.E7)
	b.Click(chess.E8)
	b.CancelPromotion()

	if st := b.State(); st.Phase != Idle || st.Pending != nil {
		t.Fatalf("expected idle after cancel, got %+v", st)
	}
	if g.FEN() != fen || len(rec.played) != 0 {
		t.Fatal("cancel must not change the position")
	}
	after := b.Render()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		if before.Cell(sq).Piece != after.Cell(sq).Piece {
			t.Fatalf("square %s changed after cancel", sq)
		}
	}
	if err := b.ChoosePromotion(chess.Queen); err != ErrNoPromotion {
		t.Fatalf("expected ErrNoPromotion, got %v", err)
	}
}

func TestPromotionToKnight(t *testing.T) {
	b, g, rec := newTestBoard(t, promotionFEN)

	b.Click(chess.E7)
	b.Click(chess.E8)
	if err := b.ChoosePromotion(chess.King); err != ErrPromotionPiece {
		t.Fatalf("expected ErrPromotionPiece, got %v", err)
	}
	if err := b.ChoosePromotion(chess.Knight); err != nil {
		t.Fatal(err)
	}

	if len(rec.played) != 1 {
		t.Fatalf("expected one move, got %+v", rec.played)
	}
	notation := strings.TrimRight(rec.played[0].Notation, "+#")
	if !strings.HasSuffix(notation, "=N") {
		t.Fatalf("expected =N suffix, got %s", rec.played[0].Notation)
	}
	if p := g.PieceAt(chess.E8); p != chess.WhiteKnight {
		t.Fatalf("expected white knight on e8, got %v", p)
	}
	if c := b.Render().Cell(chess.E8); c.Piece != chess.WhiteKnight {
		t.Fatalf("expected e8 to render a white knight, got %v", c.Piece)
	}
	if b.State().Phase != Idle {
		t.Fatal("expected idle after promotion")
	}
}

func TestScholarsMateByText(t *testing.T) {
	b, _, rec := newTestBoard(t, "")

	for _, san := range []string{"e4", "e5", "Qh5", "Nc6", "Bc4", "Nf6", "Qxf7#"} {
		if res := b.Submit(san); res != InputAccepted {
			t.Fatalf("expected %s to be accepted, got %s", san, res)
		}
	}

	if len(rec.over) != 1 {
		t.Fatalf("expected exactly one GameOver, got %d", len(rec.over))
	}
	o := rec.over[0].Outcome
	if o.Method != chess.Checkmate || o.Winner != chess.White {
		t.Fatalf("expected white checkmate, got %s", o)
	}
	last := rec.order[len(rec.order)-2:]
	if last[0] != "move:Qxf7#" || last[1] != "over" {
		t.Fatalf("GameOver must follow MovePlayed Qxf7#, got %v", rec.order)
	}

	// The game is final: no selection and no typed moves.
	b.Click(chess.E8)
	b.Click(chess.A2)
	if b.State().Phase != Idle {
		t.Fatal("no selection after game over")
	}
	if b.Submit("a3") != InputRejected {
		t.Fatal("typed moves after game over should be rejected")
	}
	if len(rec.over) != 1 {
		t.Fatal("GameOver must be emitted once")
	}
}

func TestSubmitInvalidAndIllegal(t *testing.T) {
	b, g, rec := newTestBoard(t, "")
	fen := g.FEN()

	tests := []struct {
		text string
		want InputResult
	}{
		{"hello", InputInvalid},
		{"e9", InputInvalid},
		{"Qxa1#+++", InputInvalid},
		{"e5", InputIllegal},
		{"Nd4", InputIllegal},
		{"O-O", InputIllegal},
		{"e2e5", InputIllegal},
		{"Nbf3", InputIllegal},
		{"e4-", InputInvalid},
	}
	for _, tt := range tests {
		if got := b.Submit(tt.text); got != tt.want {
			t.Errorf("Submit(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
	if g.FEN() != fen || len(rec.played) != 0 {
		t.Fatal("rejected input must not change the position")
	}

	b.Click(chess.E2)
	if b.Submit(" Ngf3 ") != InputAccepted {
		t.Fatal("expected Nf3 to be accepted")
	}
	if b.State().Phase != Idle {
		t.Fatal("typed move should clear the selection")
	}
}

func TestReset(t *testing.T) {
	b, _, _ := newTestBoard(t, "")
	b.Submit("e4")
	b.Click(chess.E7)

	b.Reset(rules.NewGame())
	if len(b.History()) != 0 || b.State().Phase != Idle || b.Finished() {
		t.Fatal("reset should start a clean game")
	}
}

// disagreeingRules reports legal moves it then refuses to apply.
type disagreeingRules struct {
	*rules.Game
}

func (disagreeingRules) Apply(m rules.Move) error {
	return rules.ErrIllegalMove
}

func TestEngineDisagreementResetsState(t *testing.T) {
	g := rules.NewGame()
	var played int
	b := NewBoard(disagreeingRules{g}, WhiteBottom, nil)
	b.SetMovePlayedFunc(func(MovePlayed) { played++ })

	b.Click(chess.E2)
	b.Click(chess.E4)
	if played != 0 {
		t.Fatal("no MovePlayed when the engine rejects the move")
	}
	if b.State().Phase != Idle || len(b.History()) != 0 {
		t.Fatal("state should be reset after a rejected move")
	}
}

func TestSubmitLongForms(t *testing.T) {
	for _, text := range []string{"Ngf3", "Ng1f3", "Ng1-f3", "e2e4", "e2-e4"} {
		t.Run(text, func(t *testing.T) {
			b, _, rec := newTestBoard(t, "")
			if got := b.Submit(text); got != InputAccepted {
				t.Fatalf("Submit(%q) = %s, want accepted", text, got)
			}
			if len(rec.played) != 1 {
				t.Fatalf("expected one move played, got %d", len(rec.played))
			}
		})
	}
}
