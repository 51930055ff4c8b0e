package chess

import (
	"errors"
	"testing"
)

func TestFENRoundTrip(t *testing.T) {
	for _, fen := range []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 1",
		"rnbqkbnr/pppp1ppp/8/8/3Pp3/8/PPP1PPPP/RNBQKBNR b Kq d3 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	} {
		b := mustFEN(t, fen)
		if got := b.FEN(); got != fen {
			t.Errorf("FEN() = %q, want %q", got, fen)
		}
	}
	if got := NewBoard().FEN(); got != StartFEN {
		t.Errorf("NewBoard().FEN() = %q", got)
	}
}

func TestParseFENOrientsForMover(t *testing.T) {
	b := mustFEN(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	if b.Mover() != Dark {
		t.Fatalf("mover = %s", b.Mover())
	}
	king := b.At(Position{7, 3})
	if king.Kind != King || king.Side != Dark || king.HasMoved {
		t.Errorf("dark king = %+v", king)
	}
	marker := b.At(at(t, b, "e3"))
	if !marker.EnPassant || marker.Side != Light {
		t.Errorf("e3 = %+v, want light marker", marker)
	}
	if c := b.At(at(t, b, "e4")); !c.HasMoved {
		t.Errorf("advanced pawn not marked moved: %+v", c)
	}
	if c := b.At(at(t, b, "d7")); c.HasMoved {
		t.Errorf("home pawn marked moved: %+v", c)
	}
}

func TestParseFENRejects(t *testing.T) {
	for _, fen := range []string{
		"",
		"8/8/8/8/8/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN1 w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e4 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e3 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxq - 0 1",
	} {
		if _, err := ParseFEN(fen); !errors.Is(err, ErrInvalidFEN) {
			t.Errorf("ParseFEN(%q) err = %v, want ErrInvalidFEN", fen, err)
		}
	}
}
