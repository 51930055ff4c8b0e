package chess

import "errors"

var (
	ErrInvalidCoordinate      = errors.New("invalid coordinate")
	ErrIllegalMove            = errors.New("illegal move")
	ErrInvalidPromotionChoice = errors.New("invalid promotion choice")
	ErrMoveAfterGameOver      = errors.New("game is over")
	ErrPromotionPending       = errors.New("promotion pending")
	ErrInvalidFEN             = errors.New("invalid FEN")
)
