package rules

import (
	"testing"

	"github.com/notnil/chess"
)

func TestValidSAN(t *testing.T) {
	valid := []string{"e4", "exd5", "Nf3", "Nbd2", "R1a3", "Qh4xe1", "Qxf7#", "e8=Q", "exd8=N+", "O-O", "O-O-O+", "0-0", "Kxe2", "Ngf3", "Ng1f3", "Ng1-f3", "e2e4", "e2-e4", "e7e8q"}
	for _, text := range valid {
		if !ValidSAN(text) {
			t.Errorf("expected %q to be valid", text)
		}
	}

	invalid := []string{"", "e9", "i4", "Nf", "hello", "e4-", "Ng1--f3", "e2e4e5", "Qxf7##", "O-O-O-O", "Pe4 "}
	for _, text := range invalid {
		if ValidSAN(text) {
			t.Errorf("expected %q to be invalid", text)
		}
	}
}

func TestNormalizeSAN(t *testing.T) {
	tests := map[string]string{
		"0-0":    "O-O",
		"0-0-0+": "O-O-O+",
		"e8q":    "e8=Q",
		"e8=n#":  "e8=N#",
		"bxa1r":  "bxa1=R",
		"Bb5":    "Bb5",
		"e4":     "e4",
	}
	for in, want := range tests {
		if got := normalizeSAN(in); got != want {
			t.Errorf("normalizeSAN(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseHint(t *testing.T) {
	h, ok := parseHint("Ng1-f3")
	if !ok {
		t.Fatal("expected Ng1-f3 to parse")
	}
	want := moveHint{piece: chess.Knight, file: "g", rank: "1", to: "f3", promo: chess.NoPieceType}
	if h != want {
		t.Fatalf("expected %+v, got %+v", want, h)
	}

	h, ok = parseHint("exd8=N+")
	if !ok || h.piece != chess.Pawn || h.file != "e" || h.to != "d8" || h.promo != chess.Knight {
		t.Fatalf("unexpected hint %+v", h)
	}

	if _, ok := parseHint("O-O"); ok {
		t.Fatal("castles carry no hint")
	}
}
