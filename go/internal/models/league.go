package models

import (
	"time"

	"github.com/google/uuid"
)

// League represents a group of players competing under a shared ruleset and
// point budget. The owner is fixed at creation; JoinToken is the sole
// credential for joining and can be regenerated by the owner.
type League struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	JoinToken    string    `json:"-"`
	OwnerID      uuid.UUID `json:"owner_id"`
	PointsBudget int       `json:"points_budget"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
