// Package events publishes domain events for other systems to consume.
// Publishing is best-effort and post-commit: a failed publish is logged by
// the caller, never surfaced to the user.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the league apps.
const (
	TypeLeagueDeleted  = "league.deleted"
	TypeArmyJoined     = "army.joined"
	TypeArmyResigned   = "army.resigned"
	TypeBattleRecorded = "battle.recorded"
	TypeBattleDeleted  = "battle.deleted"
)

// Event is the envelope published for every domain event.
type Event struct {
	ID        uuid.UUID `json:"event_id"`
	Type      string    `json:"event_type"`
	LeagueID  uuid.UUID `json:"league_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// Publisher publishes domain events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// New builds an event with a fresh ID and timestamp.
func New(eventType string, leagueID uuid.UUID, payload any) Event {
	return Event{
		ID:        uuid.New(),
		Type:      eventType,
		LeagueID:  leagueID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}
