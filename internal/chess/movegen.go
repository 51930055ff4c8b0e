package chess

var (
	diagonalDirs = []Position{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs = []Position{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	allDirs      = append(append([]Position{}, straightDirs...), diagonalDirs...)
	knightJumps  = []Position{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
)

// pawnRow is the row every pawn of the mover starts on.
const pawnRow = Size - 2

// Generate returns the squares a piece of kind and side standing on from
// could move to. With legal set, castling is considered and every
// destination that would leave side's own king attacked is removed;
// without it the raw pseudo-legal set is returned.
func Generate(b Board, kind PieceKind, from Position, side Side, legal bool) []Position {
	if side != b.mover {
		moves := Generate(b.Flip(), kind, from.Flip(), side, legal)
		for i := range moves {
			moves[i] = moves[i].Flip()
		}
		return moves
	}

	moves := pseudoMoves(b, kind, from, side)
	if !legal {
		return moves
	}
	if kind == King {
		moves = append(moves, castles(b, from, side)...)
	}

	out := moves[:0]
	for _, to := range moves {
		if !IsInCheck(simulate(b, from, to), side) {
			out = append(out, to)
		}
	}
	return out
}

// LegalMoves returns the legal destinations of whatever stands on from.
func LegalMoves(b Board, from Position) []Position {
	c := b.At(from)
	if !c.Occupied() {
		return nil
	}
	return Generate(b, c.Kind, from, c.Side, true)
}

func pseudoMoves(b Board, kind PieceKind, from Position, side Side) []Position {
	switch kind {
	case Pawn:
		return pawnMoves(b, from, side)
	case Knight:
		return steps(b, from, side, knightJumps)
	case Bishop:
		return rays(b, from, side, diagonalDirs)
	case Rook:
		return rays(b, from, side, straightDirs)
	case Queen:
		return rays(b, from, side, allDirs)
	case King:
		return steps(b, from, side, allDirs)
	}
	return nil
}

func rays(b Board, from Position, side Side, dirs []Position) []Position {
	var moves []Position
	for _, d := range dirs {
		for to := (Position{from.Row + d.Row, from.Col + d.Col}); to.Valid(); to = (Position{to.Row + d.Row, to.Col + d.Col}) {
			target := b.cells[to.Row][to.Col]
			if target.Occupied() {
				if target.Side != side {
					moves = append(moves, to)
				}
				break
			}
			moves = append(moves, to)
		}
	}
	return moves
}

func steps(b Board, from Position, side Side, offsets []Position) []Position {
	var moves []Position
	for _, d := range offsets {
		to := Position{from.Row + d.Row, from.Col + d.Col}
		if !to.Valid() {
			continue
		}
		target := b.cells[to.Row][to.Col]
		if !target.Occupied() || target.Side != side {
			moves = append(moves, to)
		}
	}
	return moves
}

// pawnMoves always advances toward row 0. A diagonal is open when it holds
// an opposing piece or an opposing en-passant marker.
func pawnMoves(b Board, from Position, side Side) []Position {
	var moves []Position
	for _, dc := range [...]int{-1, 1} {
		to := Position{from.Row - 1, from.Col + dc}
		if !to.Valid() {
			continue
		}
		target := b.cells[to.Row][to.Col]
		if hostile(target, side) || (!target.Occupied() && target.EnPassant && target.Side != side) {
			moves = append(moves, to)
		}
	}

	one := Position{from.Row - 1, from.Col}
	if !one.Valid() || b.cells[one.Row][one.Col].Occupied() {
		return moves
	}
	moves = append(moves, one)

	two := Position{from.Row - 2, from.Col}
	if from.Row == pawnRow && !b.cells[two.Row][two.Col].Occupied() {
		moves = append(moves, two)
	}
	return moves
}

// castles lists two-square king destinations. The rook on the matching
// corner is relocated by the applier.
func castles(b Board, from Position, side Side) []Position {
	king := b.At(from)
	if king.Kind != King || king.Side != side || king.HasMoved || from.Row != Size-1 {
		return nil
	}

	var danger *[Size][Size]bool
	var moves []Position
	for _, rookCol := range [...]int{0, Size - 1} {
		rook := b.cells[from.Row][rookCol]
		if rook.Kind != Rook || rook.Side != side || rook.HasMoved || abs(rookCol-from.Col) < 3 {
			continue
		}

		step := sign(rookCol - from.Col)
		clear := true
		for col := from.Col + step; col != rookCol; col += step {
			if b.cells[from.Row][col].Occupied() {
				clear = false
				break
			}
		}
		if !clear {
			continue
		}

		if danger == nil {
			a := attacks(b, side.Opponent())
			danger = &a
		}
		safe := true
		for i := range 3 {
			if danger[from.Row][from.Col+i*step] {
				safe = false
				break
			}
		}
		if safe {
			moves = append(moves, Position{from.Row, from.Col + 2*step})
		}
	}
	return moves
}
