package chess

import (
	"errors"
	"slices"
	"testing"
)

func mustFEN(t *testing.T, fen string) Board {
	t.Helper()
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func at(t *testing.T, b Board, name string) Position {
	t.Helper()
	pos, ok := b.Locate(name)
	if !ok {
		t.Fatalf("bad square %q", name)
	}
	return pos
}

func names(b Board, ps []Position) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, b.Square(p))
	}
	slices.Sort(out)
	return out
}

// play runs moves written as from+to pairs ("e2e4") through the state machine.
func play(t *testing.T, s GameState, moves ...string) GameState {
	t.Helper()
	for _, mv := range moves {
		b := s.Board()
		next, _, err := s.AttemptMove(at(t, b, mv[:2]), at(t, b, mv[2:4]))
		if err != nil {
			t.Fatalf("move %s: %v (board %s)", mv, err, b.FEN())
		}
		s = next
	}
	return s
}

func TestNewBoardLayout(t *testing.T) {
	b := NewBoard()
	if b.Mover() != Light {
		t.Fatalf("mover = %s, want Light", b.Mover())
	}
	for col, kind := range backRank {
		if c := b.At(Position{7, col}); c.Kind != kind || c.Side != Light || c.HasMoved {
			t.Errorf("light back rank col %d = %+v", col, c)
		}
		if c := b.At(Position{0, col}); c.Kind != kind || c.Side != Dark {
			t.Errorf("dark back rank col %d = %+v", col, c)
		}
		if c := b.At(Position{6, col}); c.Kind != Pawn || c.Side != Light {
			t.Errorf("light pawn col %d = %+v", col, c)
		}
	}
	if got := b.At(at(t, b, "e1")); got.Kind != King || got.Side != Light {
		t.Errorf("e1 = %+v, want light king", got)
	}
	if got := b.At(at(t, b, "d8")); got.Kind != Queen || got.Side != Dark {
		t.Errorf("d8 = %+v, want dark queen", got)
	}
}

func TestFlipIsInvolution(t *testing.T) {
	b := NewBoard()
	if b.Flip().Flip() != b {
		t.Fatal("flipping twice changed the board")
	}
	f := b.Flip()
	if f.Mover() != Dark {
		t.Fatalf("flipped mover = %s", f.Mover())
	}
	// Dark now advances upward from the bottom rows.
	if c := f.At(Position{6, 0}); c.Kind != Pawn || c.Side != Dark {
		t.Errorf("flipped (6,0) = %+v", c)
	}
	if c := f.At(Position{7, 3}); c.Kind != King || c.Side != Dark {
		t.Errorf("flipped (7,3) = %+v, want dark king", c)
	}
}

func TestSquareNamesFollowOrientation(t *testing.T) {
	b := NewBoard()
	for _, name := range []string{"a1", "e4", "h8", "c7"} {
		if got := b.Square(at(t, b, name)); got != name {
			t.Errorf("light frame %s round trips to %s", name, got)
		}
		f := b.Flip()
		if got := f.Square(at(t, f, name)); got != name {
			t.Errorf("dark frame %s round trips to %s", name, got)
		}
		if at(t, b, name).Flip() != at(t, b.Flip(), name) {
			t.Errorf("%s: flipped coordinate disagrees with flipped board", name)
		}
	}
	if _, ok := b.Locate("i9"); ok {
		t.Error("Locate accepted i9")
	}
}

func TestAtPanicsOffBoard(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrInvalidCoordinate) {
			t.Fatalf("recovered %v, want ErrInvalidCoordinate", r)
		}
	}()
	NewBoard().At(Position{8, 0})
}

func TestCellString(t *testing.T) {
	if got := (Cell{Kind: Queen, Side: Light}).String(); got != "♕" {
		t.Errorf("light queen = %q", got)
	}
	if got := (Cell{Kind: Knight, Side: Dark}).String(); got != "♞" {
		t.Errorf("dark knight = %q", got)
	}
	if got := (Cell{Side: Dark, EnPassant: true}).String(); got != " " {
		t.Errorf("marker = %q", got)
	}
}
