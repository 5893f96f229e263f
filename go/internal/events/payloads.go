package events

import (
	"time"

	"github.com/google/uuid"
)

// ArmyJoinedPayload is published when a player joins or rejoins a league.
type ArmyJoinedPayload struct {
	ArmyID      uuid.UUID `json:"army_id"`
	UserID      uuid.UUID `json:"user_id"`
	ArmyTitle   string    `json:"army_title"`
	Allegiance  string    `json:"allegiance"`
	Reactivated bool      `json:"reactivated"`
}

// ArmyResignedPayload is published when a player leaves a league.
type ArmyResignedPayload struct {
	ArmyID uuid.UUID `json:"army_id"`
	UserID uuid.UUID `json:"user_id"`
}

// BattleRecordedPayload is published when a battle result enters the ledger.
type BattleRecordedPayload struct {
	BattleID uuid.UUID `json:"battle_id"`
	Army1ID  uuid.UUID `json:"army1_id"`
	Army2ID  uuid.UUID `json:"army2_id"`
	Army1Pts int       `json:"army1_pts"`
	Army2Pts int       `json:"army2_pts"`
	FoughtOn time.Time `json:"fought_on"`
}

// BattleDeletedPayload is published when a battle is removed from the ledger.
type BattleDeletedPayload struct {
	BattleID uuid.UUID `json:"battle_id"`
}

// LeagueDeletedPayload is published when a league and its records go away.
type LeagueDeletedPayload struct {
	Title string `json:"title"`
}
