package armies

import "errors"

var (
	// ErrArmyNotFound is returned when no army matches the given id.
	ErrArmyNotFound = errors.New("army not found")

	// ErrDuplicateMembership is returned when a concurrent join already
	// created an active army for the same (league, user) pair.
	ErrDuplicateMembership = errors.New("user already has an active army in this league")

	// ErrInvalidAllegiance is returned when the faction code is not one of
	// the known allegiances.
	ErrInvalidAllegiance = errors.New("invalid allegiance")

	// ErrInvalidArmy is returned when army input fails validation.
	ErrInvalidArmy = errors.New("invalid army")
)
