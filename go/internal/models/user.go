package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a player known to the system. Rows are provisioned from
// identity-provider claims on first authenticated request; this service never
// handles credentials.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
