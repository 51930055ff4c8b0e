package chess

import (
	"fmt"
	"slices"
)

type Phase int

const (
	AwaitingMove Phase = iota
	AwaitingPromotionChoice
	GameOver
)

func (p Phase) String() string {
	switch p {
	case AwaitingPromotionChoice:
		return "AwaitingPromotionChoice"
	case GameOver:
		return "GameOver"
	}
	return "AwaitingMove"
}

// GameState is an immutable snapshot of a game. Every transition returns
// a fresh value; check and checkmate are derived from the board on entry
// to each state and never updated separately.
type GameState struct {
	board       Board
	phase       Phase
	inCheck     bool
	inCheckmate bool
	pending     Position
	winner      Side
}

// Selection is the transient view-layer highlight for one piece.
type Selection struct {
	Active       Position
	Destinations []Position
	Selected     bool
}

func (s Selection) Contains(pos Position) bool {
	return s.Selected && slices.Contains(s.Destinations, pos)
}

func InitialState() GameState {
	return NewState(NewBoard())
}

// NewState starts a game from an arbitrary board with its mover to play.
func NewState(b Board) GameState {
	s := GameState{board: normalize(b)}
	s.evaluate()
	return s
}

func (s *GameState) evaluate() {
	side := s.board.mover
	s.phase = AwaitingMove
	s.inCheck = IsInCheck(s.board, side)
	s.inCheckmate = s.inCheck && IsCheckmate(s.board, side)
	if s.inCheckmate {
		s.phase = GameOver
		s.winner = side.Opponent()
	}
}

// Select returns the legal destinations for the piece on pos when it
// belongs to the side to move; otherwise the selection is empty.
func (s GameState) Select(pos Position) Selection {
	if s.phase != AwaitingMove || !pos.Valid() {
		return Selection{}
	}
	c := s.board.At(pos)
	if !c.Occupied() || c.Side != s.board.mover {
		return Selection{}
	}
	return Selection{
		Active:       pos,
		Destinations: LegalMoves(s.board, pos),
		Selected:     true,
	}
}

// AttemptMove plays from->to. An illegal destination leaves the state
// untouched and is reinterpreted as a selection of to, returned alongside
// an ErrIllegalMove; picking the active square again clears the selection.
func (s GameState) AttemptMove(from, to Position) (GameState, Selection, error) {
	switch s.phase {
	case GameOver:
		return s, Selection{}, ErrMoveAfterGameOver
	case AwaitingPromotionChoice:
		return s, Selection{}, ErrPromotionPending
	}
	if !from.Valid() || !to.Valid() {
		return s, Selection{}, fmt.Errorf("%w: %v -> %v", ErrInvalidCoordinate, from, to)
	}
	if from == to {
		return s, Selection{}, fmt.Errorf("%w: %s deselected", ErrIllegalMove, s.board.Square(from))
	}

	if !s.Select(from).Contains(to) {
		return s, s.Select(to), fmt.Errorf("%w: %s to %s", ErrIllegalMove, s.board.Square(from), s.board.Square(to))
	}

	board, promoting := Apply(s.board, from, to)
	next := GameState{board: board}
	if promoting {
		next.phase = AwaitingPromotionChoice
		next.pending = to
		return next, Selection{}, nil
	}
	next.evaluate()
	return next, Selection{}, nil
}

// Promote finishes a pending promotion with kind and hands the move over.
func (s GameState) Promote(kind PieceKind) (GameState, error) {
	if s.phase != AwaitingPromotionChoice {
		return s, fmt.Errorf("%w: no promotion pending", ErrInvalidPromotionChoice)
	}
	board, err := Promote(s.board, s.pending, kind)
	if err != nil {
		return s, err
	}
	next := GameState{board: board}
	next.evaluate()
	return next, nil
}

func (s GameState) Board() Board {
	return s.board
}

func (s GameState) PieceAt(pos Position) Cell {
	return s.board.At(pos)
}

func (s GameState) SideToMove() Side {
	return s.board.mover
}

func (s GameState) Phase() Phase {
	return s.phase
}

func (s GameState) InCheck() bool {
	return s.inCheck
}

func (s GameState) InCheckmate() bool {
	return s.inCheckmate
}

func (s GameState) PendingPromotion() (Position, bool) {
	return s.pending, s.phase == AwaitingPromotionChoice
}

func (s GameState) Winner() (Side, bool) {
	return s.winner, s.phase == GameOver
}

func (s GameState) Status() string {
	switch {
	case s.phase == GameOver:
		return fmt.Sprintf("Checkmate! %s wins!", s.winner)
	case s.phase == AwaitingPromotionChoice:
		return fmt.Sprintf("%s to choose a promotion", s.board.mover)
	case s.inCheck:
		return fmt.Sprintf("%s is in check!", s.board.mover)
	}
	return ""
}
