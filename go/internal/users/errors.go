package users

import "errors"

// ErrUserNotFound is returned when no user row matches the given ID.
var ErrUserNotFound = errors.New("user not found")
