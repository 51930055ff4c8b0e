package chess

import (
	"slices"
	"testing"
)

func TestIsInCheck(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		side Side
		want bool
	}{
		{"opening", StartFEN, Light, false},
		{"rook on file", "4r2k/8/8/8/8/8/8/4K3 w - - 0 1", Light, true},
		{"rook blocked", "4r2k/8/8/8/4N3/8/8/4K3 w - - 0 1", Light, false},
		{"knight", "7k/8/8/8/8/3n4/8/4K3 w - - 0 1", Light, true},
		{"pawn diagonal", "7k/8/8/8/8/8/3p4/4K3 w - - 0 1", Light, true},
		{"pawn ahead", "7k/8/8/8/8/8/4p3/4K3 w - - 0 1", Light, false},
		{"missing king", "8/8/8/8/8/8/8/K7 b - - 0 1", Dark, false},
		{"dark king by pawn", "8/3k4/4P3/8/8/8/8/K7 b - - 0 1", Dark, true},
		{"queen along rank", "4k3/8/8/8/8/8/8/R3K2q w - - 0 1", Light, true},
		{"dark checked while light to move", "4k3/8/8/8/8/8/8/4R1K1 w - - 0 1", Dark, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustFEN(t, tt.fen)
			if got := IsInCheck(b, tt.side); got != tt.want {
				t.Errorf("IsInCheck(%s) = %v, want %v", tt.side, got, tt.want)
			}
			if got := IsInCheck(b.Flip(), tt.side); got != tt.want {
				t.Errorf("IsInCheck(%s) on flipped board = %v, want %v", tt.side, got, tt.want)
			}
		})
	}
}

// Check is exactly "some opposing pseudo-legal move lands on the king".
func TestIsInCheckMatchesPseudoMoves(t *testing.T) {
	s := play(t, InitialState(), "e2e4", "e7e5", "g1f3", "b8c6", "f1b5", "a7a6", "b5c6", "d7c6", "f3e5", "d8d4", "e5f7", "d4e4")
	for _, b := range []Board{s.Board(), s.Board().Flip()} {
		for _, side := range []Side{Light, Dark} {
			king, _ := findKing(b, side)
			hit := false
			for _, from := range pieces(b, side.Opponent(), true) {
				c := b.At(from)
				if slices.Contains(Generate(b, c.Kind, from, c.Side, false), king) {
					hit = true
				}
			}
			if got := IsInCheck(b, side); got != hit {
				t.Errorf("%s: IsInCheck = %v, pseudo-move scan = %v", side, got, hit)
			}
		}
	}
}

func TestIsCheckmate(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		side Side
		want bool
	}{
		{"back rank", "R6k/6pp/8/8/8/8/8/K7 b - - 0 1", Dark, true},
		{"king takes checker", "6Rk/8/8/8/8/8/8/K7 b - - 0 1", Dark, false},
		{"not in check", StartFEN, Light, false},
		{"interposition", "rnbqkbnr/ppppp1pp/5p2/7Q/4P3/8/PPPP1PPP/RNB1KBNR b KQkq - 1 2", Dark, false},
		{"capture the checker", "R6k/6pp/8/8/8/8/1K6/r7 b - - 0 1", Dark, false},
		{"double check", "k6r/8/8/8/8/8/3Q1nP1/6RK w - - 0 1", Light, true},
		{"scholar", "r1bqkb1r/pppp1Qpp/2n2n2/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq - 0 4", Dark, true},
		{"smothered", "6rk/5Npp/8/8/8/8/8/K7 b - - 0 1", Dark, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustFEN(t, tt.fen)
			if got := IsCheckmate(b, tt.side); got != tt.want {
				t.Errorf("IsCheckmate(%s) = %v, want %v", tt.side, got, tt.want)
			}
			if got := IsCheckmate(b.Flip(), tt.side); got != tt.want {
				t.Errorf("IsCheckmate(%s) on flipped board = %v, want %v", tt.side, got, tt.want)
			}
			if tt.want && HasLegalMove(b.Oriented(tt.side)) {
				t.Errorf("mated side still has a legal move")
			}
		})
	}
}

func TestCheckers(t *testing.T) {
	b := mustFEN(t, "k6r/8/8/8/8/8/3Q1nP1/6RK w - - 0 1")
	got := names(b, Checkers(b, Light))
	want := []string{"f2", "h8"}
	if !slices.Equal(got, want) {
		t.Errorf("Checkers = %v, want %v", got, want)
	}
	if got := Checkers(NewBoard(), Light); len(got) != 0 {
		t.Errorf("opening checkers = %v", got)
	}
}

func TestBoardWithoutKingIsNeverInCheck(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/8/8/8/8/R7 w - - 0 1")
	if IsInCheck(b, Light) || IsCheckmate(b, Light) {
		t.Error("missing king reported in check")
	}
}
