package models

import (
	"time"

	"github.com/google/uuid"
)

// Battle represents a recorded result between two armies in the same league.
// The sides are asymmetric: army1 is the submitter's army. Either side may be
// nulled if its army row is removed outright; the points survive.
type Battle struct {
	ID        uuid.UUID     `json:"id"`
	LeagueID  uuid.UUID     `json:"league_id"`
	Army1ID   uuid.NullUUID `json:"army1_id"`
	Army2ID   uuid.NullUUID `json:"army2_id"`
	Army1Pts  int           `json:"army1_pts"`
	Army2Pts  int           `json:"army2_pts"`
	FoughtOn  time.Time     `json:"fought_on"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Winner returns the army ID with strictly greater points. A tie yields no
// winner.
func (b Battle) Winner() (uuid.UUID, bool) {
	switch {
	case b.Army1Pts > b.Army2Pts && b.Army1ID.Valid:
		return b.Army1ID.UUID, true
	case b.Army2Pts > b.Army1Pts && b.Army2ID.Valid:
		return b.Army2ID.UUID, true
	default:
		return uuid.Nil, false
	}
}
