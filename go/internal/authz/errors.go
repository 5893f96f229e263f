package authz

import "errors"

// ErrForbidden is returned when an authenticated user lacks permission for
// the requested operation.
var ErrForbidden = errors.New("forbidden")
