package apperror

import "errors"

var (
	// Board-level errors. ErrInvalidMove covers an occupied cell, an
	// out-of-range index, and a move made out of turn.
	ErrInvalidMove          = errors.New("invalid move")
	ErrGameAlreadyOver      = errors.New("game is already over")
	ErrPreconditionViolated = errors.New("precondition violated")

	// Round lifecycle errors.
	ErrGameIsNotStarted  = errors.New("game is not started")
	ErrGameAlreadyExists = errors.New("game already exists")
	ErrNoActiveGames     = errors.New("no active games")
)
