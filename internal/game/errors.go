package game

import "errors"

var (
	// ErrInvalidAction is returned for actions other than Stick or Hit.
	ErrInvalidAction = errors.New("invalid action")
	// ErrRoundOver is returned when Step is called on a terminal round.
	ErrRoundOver = errors.New("round is over")
)
