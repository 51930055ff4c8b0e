package chess

// reach lists the squares the piece on from attacks, in b's frame. Pawns
// attack both forward diagonals whether or not anything stands there;
// every other kind attacks its pseudo-legal destinations.
func reach(b Board, from Position) []Position {
	c := b.At(from)
	if c.Side != b.mover {
		out := reach(b.Flip(), from.Flip())
		for i := range out {
			out[i] = out[i].Flip()
		}
		return out
	}
	if c.Kind != Pawn {
		return pseudoMoves(b, c.Kind, from, c.Side)
	}

	var out []Position
	for _, dc := range [...]int{-1, 1} {
		if to := (Position{from.Row - 1, from.Col + dc}); to.Valid() {
			out = append(out, to)
		}
	}
	return out
}

// attacks marks every square side by attacks, in b's frame.
func attacks(b Board, by Side) [Size][Size]bool {
	var out [Size][Size]bool
	if by != b.mover {
		flipped := attacks(b.Flip(), by)
		for row := range Size {
			for col := range Size {
				out[row][col] = flipped[Size-1-row][Size-1-col]
			}
		}
		return out
	}
	for _, from := range pieces(b, by, true) {
		for _, to := range reach(b, from) {
			out[to.Row][to.Col] = true
		}
	}
	return out
}

// IsInCheck reports whether side's king is attacked. A board without
// that king is never in check.
func IsInCheck(b Board, side Side) bool {
	king, ok := findKing(b, side)
	if !ok {
		return false
	}
	return attacks(b, side.Opponent())[king.Row][king.Col]
}

// Checkers returns the opposing pieces attacking side's king.
func Checkers(b Board, side Side) []Position {
	king, ok := findKing(b, side)
	if !ok {
		return nil
	}
	var out []Position
	for _, from := range pieces(b, side.Opponent(), true) {
		for _, to := range reach(b, from) {
			if to == king {
				out = append(out, from)
				break
			}
		}
	}
	return out
}

// IsCheckmate reports whether side is in check with no way out. It is
// false whenever side is not in check.
func IsCheckmate(b Board, side Side) bool {
	b = b.Oriented(side)
	king, ok := findKing(b, side)
	if !ok || !IsInCheck(b, side) {
		return false
	}
	if len(Generate(b, King, king, side, true)) > 0 {
		return false
	}
	// A double check can only be answered by the king.
	if len(Checkers(b, side)) > 1 {
		return true
	}

	for _, from := range pieces(b, side, false) {
		c := b.At(from)
		for _, to := range Generate(b, c.Kind, from, side, true) {
			if !IsInCheck(simulate(b, from, to), side) {
				return false
			}
		}
	}
	return true
}

// HasLegalMove reports whether the mover of b can move at all.
func HasLegalMove(b Board) bool {
	for _, from := range pieces(b, b.mover, true) {
		if len(LegalMoves(b, from)) > 0 {
			return true
		}
	}
	return false
}
