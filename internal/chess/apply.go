package chess

import "fmt"

var promotable = map[PieceKind]bool{
	Queen: true, Knight: true, Rook: true, Bishop: true,
}

// Apply moves the piece on from to to and returns the board for the next
// mover. When a pawn lands on row 0 the board is returned unflipped with
// promoting set; Promote finishes the move.
//
// from must hold a piece of b's mover.
func Apply(b Board, from, to Position) (next Board, promoting bool) {
	piece := b.At(from)
	next = relocate(b, from, to)
	if piece.Kind == Pawn && to.Row == 0 {
		return normalize(next), true
	}
	return normalize(next.Flip()), false
}

// Promote replaces the pawn waiting on at with kind and flips the board.
func Promote(b Board, at Position, kind PieceKind) (Board, error) {
	if !promotable[kind] {
		return b, fmt.Errorf("%w: %s", ErrInvalidPromotionChoice, kind)
	}
	if !at.Valid() || at.Row != 0 {
		return b, fmt.Errorf("%w: %v is not on the far rank", ErrInvalidPromotionChoice, at)
	}
	pawn := b.cells[at.Row][at.Col]
	if pawn.Kind != Pawn || pawn.Side != b.mover {
		return b, fmt.Errorf("%w: no pawn waiting on %s", ErrInvalidPromotionChoice, b.Square(at))
	}
	pawn.Kind = kind
	b.cells[at.Row][at.Col] = pawn
	return normalize(b.Flip()), nil
}

// simulate plays from->to without staging promotion, for legality checks.
func simulate(b Board, from, to Position) Board {
	return relocate(b, from, to).Flip()
}

// relocate performs the move in the mover's frame, including en-passant
// captures, marker bookkeeping and the castling rook.
func relocate(b Board, from, to Position) Board {
	piece := b.At(from)
	target := b.At(to)

	if piece.Kind == Pawn && !target.Occupied() && target.EnPassant && target.Side != piece.Side {
		if victim := (Position{to.Row + 1, to.Col}); victim.Valid() {
			if v := b.cells[victim.Row][victim.Col]; v.Kind == Pawn && v.Side != piece.Side {
				b.cells[victim.Row][victim.Col] = Cell{}
			}
		}
	}

	// Markers live for exactly one reply.
	for row := range Size {
		for col := range Size {
			b.cells[row][col].EnPassant = false
		}
	}

	if piece.Kind == King && abs(to.Col-from.Col) == 2 {
		step := sign(to.Col - from.Col)
		corner := Position{from.Row, 0}
		if step > 0 {
			corner.Col = Size - 1
		}
		rook := b.cells[corner.Row][corner.Col]
		rook.HasMoved = true
		b.cells[corner.Row][corner.Col] = Cell{}
		b.cells[to.Row][to.Col-step] = rook
	}

	piece.HasMoved = true
	b.cells[from.Row][from.Col] = Cell{}
	b.cells[to.Row][to.Col] = piece

	if piece.Kind == Pawn && from.Row-to.Row == 2 {
		b.cells[from.Row-1][from.Col] = Cell{Side: piece.Side, EnPassant: true}
	}
	return b
}

// normalize empties every cell that holds no valid piece and no live
// marker. A live marker belongs to the side that just moved.
func normalize(b Board) Board {
	for row := range Size {
		for col := range Size {
			c := b.cells[row][col]
			switch {
			case c.Kind < NoPiece || c.Kind > King:
				c = Cell{}
			case c.Kind != NoPiece:
				c.EnPassant = false
			case c.EnPassant && c.Side != b.mover:
				c = Cell{Side: c.Side, EnPassant: true}
			default:
				c = Cell{}
			}
			b.cells[row][col] = c
		}
	}
	return b
}
