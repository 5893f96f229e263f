package battles

import "errors"

var (
	// ErrBattleNotFound is returned when no battle matches the given id.
	ErrBattleNotFound = errors.New("battle not found")

	// ErrNoActiveArmy is returned when the submitting user has no active
	// army in the target league.
	ErrNoActiveArmy = errors.New("no active army in this league")

	// ErrInvalidOpponent is returned when army2 is not another player's
	// active army in the same league.
	ErrInvalidOpponent = errors.New("invalid opponent")

	// ErrInvalidPoints is returned when a point total is negative.
	ErrInvalidPoints = errors.New("points must be non-negative")
)
