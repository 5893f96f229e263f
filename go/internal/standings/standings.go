// Package standings computes the ranked aggregation of armies by cumulative
// battle points within a league. Standings are recomputed in full on every
// call; leagues are small and correctness must never depend on a stale
// aggregate.
package standings

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/griffonmill/warleague/go/internal/authz"
	"github.com/griffonmill/warleague/go/internal/models"
)

// ResignedName hides a departed player's identity in ongoing standings while
// keeping their army's history on the table.
const ResignedName = "RESIGNED"

// Row is one standings entry, ready for presentation.
type Row struct {
	DisplayName     string `json:"display_name"`
	ArmyTitle       string `json:"army_title"`
	AllegianceLabel string `json:"allegiance_label"`
	Points          int    `json:"points"`
}

// ArmyEntry is an army with its owner's handle, the aggregator's input.
type ArmyEntry struct {
	models.Army
	OwnerUsername string
}

// StandingsRepository defines what the aggregator needs from the data store
type StandingsRepository interface {
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
	ListArmyEntries(ctx context.Context, leagueID uuid.UUID) ([]ArmyEntry, error)
	ListBattles(ctx context.Context, leagueID uuid.UUID) ([]models.Battle, error)
}

// App computes league standings.
type App struct {
	repo StandingsRepository
}

// NewApp creates a new standings App
func NewApp(repo StandingsRepository) *App {
	return &App{repo: repo}
}

// Compute returns the league's standings for a viewer: every army, active or
// resigned, with its cumulative points across all battles, sorted by points
// descending and army title ascending on ties.
func (a *App) Compute(ctx context.Context, userID, leagueID uuid.UUID) ([]Row, error) {
	league, err := a.repo.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	entries, err := a.repo.ListArmyEntries(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	leagueArmies := make([]models.Army, len(entries))
	for i, e := range entries {
		leagueArmies[i] = e.Army
	}
	if !authz.CanViewLeague(userID, *league, leagueArmies) {
		return nil, authz.ErrForbidden
	}

	battles, err := a.repo.ListBattles(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	return Aggregate(entries, battles), nil
}

// Aggregate totals each army's points over the battles and ranks the rows.
// An army with no battles stays in the table with zero points.
func Aggregate(entries []ArmyEntry, battles []models.Battle) []Row {
	totals := make(map[uuid.UUID]int, len(entries))
	for _, b := range battles {
		if b.Army1ID.Valid {
			totals[b.Army1ID.UUID] += b.Army1Pts
		}
		if b.Army2ID.Valid {
			totals[b.Army2ID.UUID] += b.Army2Pts
		}
	}

	rows := make([]Row, len(entries))
	for i, e := range entries {
		name := e.OwnerUsername
		if !e.Active {
			name = ResignedName
		}
		rows[i] = Row{
			DisplayName:     name,
			ArmyTitle:       e.Title,
			AllegianceLabel: e.Allegiance.Label(),
			Points:          totals[e.ID],
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].ArmyTitle < rows[j].ArmyTitle
	})
	return rows
}
