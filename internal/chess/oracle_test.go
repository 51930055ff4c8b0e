package chess

import (
	"fmt"
	"slices"
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

var oraclePositions = []string{
	StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 0 1",
	"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 1",
	"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
	"7k/8/8/K2pP2r/8/8/8/8 w - d6 0 1",
}

func oracleSquare(sq uint8) string {
	return fmt.Sprintf("%c%d", 'a'+sq%8, sq/8+1)
}

// oracleMoves lists dragontoothmg's legal moves as from+to strings, with
// the four promotion choices folded into one.
func oracleMoves(fen string) []string {
	b := dragontoothmg.ParseFen(fen)
	var out []string
	for _, m := range b.GenerateLegalMoves() {
		mv := oracleSquare(m.From()) + oracleSquare(m.To())
		if !slices.Contains(out, mv) {
			out = append(out, mv)
		}
	}
	slices.Sort(out)
	return out
}

func engineMoves(b Board) []string {
	var out []string
	for _, from := range pieces(b, b.Mover(), true) {
		for _, to := range LegalMoves(b, from) {
			out = append(out, b.Square(from)+b.Square(to))
		}
	}
	slices.Sort(out)
	return out
}

func TestLegalMovesMatchOracle(t *testing.T) {
	for _, fen := range oraclePositions {
		b := mustFEN(t, fen)
		got, want := engineMoves(b), oracleMoves(fen)
		if !slices.Equal(got, want) {
			t.Errorf("%s\n got  %v\n want %v", fen, got, want)
		}
	}
}

// Every position one reply deep must agree as well; this exercises the
// markers, rights and flips the applier leaves behind.
func TestRepliesMatchOracle(t *testing.T) {
	for _, fen := range oraclePositions {
		b := mustFEN(t, fen)
		for _, from := range pieces(b, b.Mover(), true) {
			for _, to := range LegalMoves(b, from) {
				next, promoting := Apply(b, from, to)
				if promoting {
					var err error
					if next, err = Promote(next, to, Queen); err != nil {
						t.Fatal(err)
					}
				}
				got, want := engineMoves(next), oracleMoves(next.FEN())
				if !slices.Equal(got, want) {
					t.Errorf("%s after %s%s\n got  %v\n want %v", fen, b.Square(from), b.Square(to), got, want)
				}
			}
		}
	}
}

func perft(b Board, depth int) int {
	if depth == 0 {
		return 1
	}
	n := 0
	for _, from := range pieces(b, b.Mover(), true) {
		for _, to := range LegalMoves(b, from) {
			next, promoting := Apply(b, from, to)
			if !promoting {
				n += perft(next, depth-1)
				continue
			}
			for _, kind := range []PieceKind{Queen, Rook, Bishop, Knight} {
				done, _ := Promote(next, to, kind)
				n += perft(done, depth-1)
			}
		}
	}
	return n
}

func TestPerft(t *testing.T) {
	tests := []struct {
		fen   string
		depth int
		want  int
	}{
		{StartFEN, 1, 20},
		{StartFEN, 2, 400},
		{StartFEN, 3, 8902},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 1, 48},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2, 2039},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3, 2812},
		{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 2, 264},
		{"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 0 1", 2, 1486},
	}
	for _, tt := range tests {
		if testing.Short() && tt.depth > 2 {
			continue
		}
		if got := perft(mustFEN(t, tt.fen), tt.depth); got != tt.want {
			t.Errorf("perft(%q, %d) = %d, want %d", tt.fen, tt.depth, got, tt.want)
		}
	}
}
