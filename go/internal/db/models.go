package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Row types returned by the query layer. Repositories convert these to domain
// models; nullable columns use sql/uuid null wrappers.

type User struct {
	ID        uuid.UUID
	Username  string
	CreatedAt time.Time
}

type League struct {
	ID           uuid.UUID
	Title        string
	Description  string
	ImageURL     string
	JoinToken    string
	OwnerID      uuid.UUID
	PointsBudget int32
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Army struct {
	ID         uuid.UUID
	Title      string
	UserID     uuid.UUID
	LeagueID   uuid.UUID
	Allegiance string
	ImageURL   string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ArmyWithOwner carries the owning user's handle alongside the army row for
// standings and battle listings.
type ArmyWithOwner struct {
	Army
	OwnerUsername string
}

// ArmyWithLeague carries the league title alongside the army row for the
// "leagues I'm playing in" index view.
type ArmyWithLeague struct {
	Army
	LeagueTitle string
}

type Battle struct {
	ID        uuid.UUID
	LeagueID  uuid.UUID
	Army1ID   uuid.NullUUID
	Army2ID   uuid.NullUUID
	Army1Pts  int32
	Army2Pts  int32
	FoughtOn  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BattleRow joins both sides' army and owner data for presentation. Side
// columns are null when the army row was removed outright.
type BattleRow struct {
	Battle
	Army1Title      sql.NullString
	Army1Allegiance sql.NullString
	Army1Owner      sql.NullString
	Army1Active     sql.NullBool
	Army2Title      sql.NullString
	Army2Allegiance sql.NullString
	Army2Owner      sql.NullString
	Army2Active     sql.NullBool
}
