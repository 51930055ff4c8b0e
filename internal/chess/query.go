package chess

func InBounds(pos Position) bool {
	return pos.Valid()
}

// PieceAt requires pos to be on the board.
func PieceAt(b Board, pos Position) Cell {
	return b.At(pos)
}

func (c Cell) Occupied() bool {
	return c.Kind != NoPiece
}

func SideOf(c Cell) Side {
	return c.Side
}

func KindOf(c Cell) PieceKind {
	return c.Kind
}

// hostile reports whether c holds a piece that side may capture.
func hostile(c Cell, side Side) bool {
	return c.Occupied() && c.Side != side
}

func findKing(b Board, side Side) (Position, bool) {
	for row := range Size {
		for col := range Size {
			c := b.cells[row][col]
			if c.Kind == King && c.Side == side {
				return Position{row, col}, true
			}
		}
	}
	return Position{-1, -1}, false
}

// pieces lists the squares holding side's pieces, optionally skipping the king.
func pieces(b Board, side Side, withKing bool) []Position {
	var out []Position
	for row := range Size {
		for col := range Size {
			c := b.cells[row][col]
			if !c.Occupied() || c.Side != side {
				continue
			}
			if c.Kind == King && !withKing {
				continue
			}
			out = append(out, Position{row, col})
		}
	}
	return out
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
