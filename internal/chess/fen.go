package chess

import (
	"fmt"
	"strings"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var fenKinds = map[byte]PieceKind{
	'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King,
}

var fenLetters = map[PieceKind]byte{
	Pawn: 'p', Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q', King: 'k',
}

// castleRights maps each FEN castling letter to the king and rook squares
// it vouches for, in Light's frame.
var castleRights = []struct {
	letter     byte
	side       Side
	king, rook Position
}{
	{'K', Light, Position{7, 4}, Position{7, 7}},
	{'Q', Light, Position{7, 4}, Position{7, 0}},
	{'k', Dark, Position{0, 4}, Position{0, 7}},
	{'q', Dark, Position{0, 4}, Position{0, 0}},
}

// ParseFEN builds a board oriented for the side to move. Castling rights
// become has-moved flags and the en-passant square becomes a marker.
// Move counters are accepted and ignored.
func ParseFEN(fen string) (Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return Board{}, fmt.Errorf("%w: want at least 4 fields, got %d", ErrInvalidFEN, len(fields))
	}

	b := EmptyBoard(Light)
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != Size {
		return Board{}, fmt.Errorf("%w: want %d ranks, got %d", ErrInvalidFEN, Size, len(ranks))
	}
	for row, rank := range ranks {
		col := 0
		for i := 0; i < len(rank); i++ {
			ch := rank[i]
			if ch >= '1' && ch <= '8' {
				col += int(ch - '0')
				continue
			}
			side := Dark
			if ch >= 'A' && ch <= 'Z' {
				side = Light
				ch += 'a' - 'A'
			}
			kind, ok := fenKinds[ch]
			if !ok || col >= Size {
				return Board{}, fmt.Errorf("%w: bad rank %q", ErrInvalidFEN, rank)
			}
			b.cells[row][col] = Cell{Kind: kind, Side: side, HasMoved: kind == King || kind == Rook}
			col++
		}
		if col != Size {
			return Board{}, fmt.Errorf("%w: rank %q has %d files", ErrInvalidFEN, rank, col)
		}
	}

	for row := range Size {
		for col := range Size {
			c := &b.cells[row][col]
			if c.Kind != Pawn {
				continue
			}
			start := (c.Side == Light && row == Size-2) || (c.Side == Dark && row == 1)
			c.HasMoved = !start
		}
	}

	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			if err := grantCastle(&b, fields[2][i]); err != nil {
				return Board{}, err
			}
		}
	}

	var mover Side
	switch fields[1] {
	case "w":
		mover = Light
	case "b":
		mover = Dark
	default:
		return Board{}, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}

	if fields[3] != "-" {
		pos, ok := b.Locate(fields[3])
		wantRow := 2
		if mover == Dark {
			wantRow = Size - 3
		}
		if !ok || pos.Row != wantRow || b.cells[pos.Row][pos.Col].Occupied() {
			return Board{}, fmt.Errorf("%w: en-passant square %q", ErrInvalidFEN, fields[3])
		}
		b.cells[pos.Row][pos.Col] = Cell{Side: mover.Opponent(), EnPassant: true}
	}

	return b.Oriented(mover), nil
}

func grantCastle(b *Board, letter byte) error {
	for _, r := range castleRights {
		if r.letter != letter {
			continue
		}
		king := &b.cells[r.king.Row][r.king.Col]
		rook := &b.cells[r.rook.Row][r.rook.Col]
		if king.Kind != King || king.Side != r.side || rook.Kind != Rook || rook.Side != r.side {
			return fmt.Errorf("%w: castling right %q without king and rook in place", ErrInvalidFEN, letter)
		}
		king.HasMoved = false
		rook.HasMoved = false
		return nil
	}
	return fmt.Errorf("%w: castling right %q", ErrInvalidFEN, letter)
}

// FEN exports b with zeroed move counters.
func (b Board) FEN() string {
	lb := b.Oriented(Light)

	var sb strings.Builder
	for row := range Size {
		if row > 0 {
			sb.WriteByte('/')
		}
		gap := 0
		for col := range Size {
			c := lb.cells[row][col]
			if !c.Occupied() {
				gap++
				continue
			}
			if gap > 0 {
				sb.WriteByte(byte('0' + gap))
				gap = 0
			}
			letter := fenLetters[c.Kind]
			if c.Side == Light {
				letter -= 'a' - 'A'
			}
			sb.WriteByte(letter)
		}
		if gap > 0 {
			sb.WriteByte(byte('0' + gap))
		}
	}

	if b.mover == Light {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	rights := ""
	for _, r := range castleRights {
		king := lb.cells[r.king.Row][r.king.Col]
		rook := lb.cells[r.rook.Row][r.rook.Col]
		if king.Kind == King && king.Side == r.side && !king.HasMoved &&
			rook.Kind == Rook && rook.Side == r.side && !rook.HasMoved {
			rights += string(r.letter)
		}
	}
	if rights == "" {
		rights = "-"
	}
	sb.WriteString(rights)

	ep := "-"
	for row := range Size {
		for col := range Size {
			if c := lb.cells[row][col]; !c.Occupied() && c.EnPassant {
				ep = lb.Square(Position{row, col})
			}
		}
	}
	sb.WriteString(" " + ep + " 0 1")
	return sb.String()
}
