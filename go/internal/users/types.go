package users

import "github.com/google/uuid"

// EnsureUserRequest carries the identity-provider claims used to provision or
// refresh a user row.
type EnsureUserRequest struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}
