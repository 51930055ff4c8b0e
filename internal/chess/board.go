package chess

import "fmt"

type Side int

const (
	Light Side = iota
	Dark
)

func (s Side) String() string {
	if s == Light {
		return "Light"
	}
	return "Dark"
}

func (s Side) Opponent() Side {
	return 1 - s
}

type PieceKind int

const (
	NoPiece PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	}
	return "Empty"
}

// Cell is one square of the grid. An empty cell may still carry an
// en-passant marker left by a pawn of Side that just passed over it.
type Cell struct {
	Kind      PieceKind
	Side      Side
	HasMoved  bool
	EnPassant bool
}

var glyphs = [2]map[PieceKind]string{
	Light: {Pawn: "♙", Knight: "♘", Bishop: "♗", Rook: "♖", Queen: "♕", King: "♔"},
	Dark:  {Pawn: "♟", Knight: "♞", Bishop: "♝", Rook: "♜", Queen: "♛", King: "♚"},
}

func (c Cell) String() string {
	if !c.Occupied() {
		return " "
	}
	return glyphs[c.Side][c.Kind]
}

type Position struct {
	Row, Col int
}

func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Flip maps p into the frame of the opposite mover.
func (p Position) Flip() Position {
	return Position{Size - 1 - p.Row, Size - 1 - p.Col}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

type Move struct {
	From, To Position
}

const Size = 8

// Board is an 8x8 grid stored so that its mover always advances toward
// row 0. Boards are values: every operation that changes one returns a copy.
type Board struct {
	cells [Size][Size]Cell
	mover Side
}

var backRank = [Size]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard opening layout with Light to move.
func NewBoard() Board {
	b := Board{mover: Light}
	for col := range Size {
		b.cells[0][col] = Cell{Kind: backRank[col], Side: Dark}
		b.cells[1][col] = Cell{Kind: Pawn, Side: Dark}
		b.cells[6][col] = Cell{Kind: Pawn, Side: Light}
		b.cells[7][col] = Cell{Kind: backRank[col], Side: Light}
	}
	return b
}

// EmptyBoard returns a board with no pieces and mover advancing upward.
func EmptyBoard(mover Side) Board {
	return Board{mover: mover}
}

func (b Board) Mover() Side {
	return b.mover
}

// At panics with ErrInvalidCoordinate when pos is off the board.
func (b Board) At(pos Position) Cell {
	if !pos.Valid() {
		panic(fmt.Errorf("%w: %v", ErrInvalidCoordinate, pos))
	}
	return b.cells[pos.Row][pos.Col]
}

// With returns a copy of b with cell placed at pos.
func (b Board) With(pos Position, cell Cell) Board {
	if !pos.Valid() {
		panic(fmt.Errorf("%w: %v", ErrInvalidCoordinate, pos))
	}
	b.cells[pos.Row][pos.Col] = cell
	return b
}

// Flip reverses rows and columns and hands the move to the other side.
func (b Board) Flip() Board {
	var out Board
	for row := range Size {
		for col := range Size {
			out.cells[Size-1-row][Size-1-col] = b.cells[row][col]
		}
	}
	out.mover = b.mover.Opponent()
	return out
}

// Oriented returns b as seen by side, with side advancing toward row 0.
func (b Board) Oriented(side Side) Board {
	if b.mover == side {
		return b
	}
	return b.Flip()
}

// Square names pos in absolute algebraic notation.
func (b Board) Square(pos Position) string {
	if !pos.Valid() {
		return "invalid"
	}
	file, rank := b.absolute(pos)
	return fmt.Sprintf("%c%d", 'a'+file, rank+1)
}

// Locate is the inverse of Square.
func (b Board) Locate(name string) (Position, bool) {
	if len(name) != 2 || name[0] < 'a' || name[0] > 'h' || name[1] < '1' || name[1] > '8' {
		return Position{}, false
	}
	return b.relative(int(name[0]-'a'), int(name[1]-'1')), true
}

// absolute converts a mover-frame coordinate to zero-based file and rank.
func (b Board) absolute(pos Position) (file, rank int) {
	if b.mover == Light {
		return pos.Col, Size - 1 - pos.Row
	}
	return Size - 1 - pos.Col, pos.Row
}

func (b Board) relative(file, rank int) Position {
	if b.mover == Light {
		return Position{Size - 1 - rank, file}
	}
	return Position{rank, Size - 1 - file}
}
