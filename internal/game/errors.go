package game

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrInvalidMove   = errors.New("invalid move")
	ErrGameOver      = errors.New("game is over")
	ErrSeatTaken     = errors.New("player seat already taken")
)

// MoveError is a rejected move. The state it was attempted against is left
// unchanged.
type MoveError struct {
	From   Position
	To     Position
	Reason string
}

func (e *MoveError) Error() string { return "invalid move: " + e.Reason }

func (e *MoveError) Unwrap() error { return ErrInvalidMove }
