package leagues

import "errors"

// ErrLeagueNotFound is returned when no league matches the given id or join
// token.
var ErrLeagueNotFound = errors.New("league not found")

// ErrInvalidLeague is returned when create/update input fails validation.
var ErrInvalidLeague = errors.New("invalid league")
