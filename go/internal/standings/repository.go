package standings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/griffonmill/warleague/go/internal/db"
	"github.com/griffonmill/warleague/go/internal/leagues"
	"github.com/griffonmill/warleague/go/internal/models"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	GetLeague(ctx context.Context, id uuid.UUID) (db.League, error)
	ListArmiesWithOwnersByLeague(ctx context.Context, leagueID uuid.UUID) ([]db.ArmyWithOwner, error)
	ListBattlesByLeague(ctx context.Context, leagueID uuid.UUID) ([]db.Battle, error)
}

// Repository feeds the standings aggregator from the database.
type Repository struct {
	queries Querier
}

// NewRepository creates a new standings repository
func NewRepository(querier Querier) *Repository {
	return &Repository{queries: querier}
}

// GetLeague retrieves a league by ID.
func (r *Repository) GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error) {
	league, err := r.queries.GetLeague(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, leagues.ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to get league: %w", err)
	}
	return &models.League{
		ID:           league.ID,
		Title:        league.Title,
		Description:  league.Description,
		ImageURL:     league.ImageURL,
		JoinToken:    league.JoinToken,
		OwnerID:      league.OwnerID,
		PointsBudget: int(league.PointsBudget),
		CreatedAt:    league.CreatedAt,
		UpdatedAt:    league.UpdatedAt,
	}, nil
}

// ListArmyEntries retrieves every army in the league with its owner's handle.
func (r *Repository) ListArmyEntries(ctx context.Context, leagueID uuid.UUID) ([]ArmyEntry, error) {
	armies, err := r.queries.ListArmiesWithOwnersByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list army entries: %w", err)
	}
	out := make([]ArmyEntry, len(armies))
	for i, a := range armies {
		out[i] = ArmyEntry{
			Army: models.Army{
				ID:         a.ID,
				Title:      a.Title,
				UserID:     a.UserID,
				LeagueID:   a.LeagueID,
				Allegiance: models.Allegiance(a.Allegiance),
				ImageURL:   a.ImageURL,
				Active:     a.Active,
				CreatedAt:  a.CreatedAt,
				UpdatedAt:  a.UpdatedAt,
			},
			OwnerUsername: a.OwnerUsername,
		}
	}
	return out, nil
}

// ListBattles retrieves every battle in the league.
func (r *Repository) ListBattles(ctx context.Context, leagueID uuid.UUID) ([]models.Battle, error) {
	battles, err := r.queries.ListBattlesByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list battles: %w", err)
	}
	out := make([]models.Battle, len(battles))
	for i, b := range battles {
		out[i] = models.Battle{
			ID:        b.ID,
			LeagueID:  b.LeagueID,
			Army1ID:   b.Army1ID,
			Army2ID:   b.Army2ID,
			Army1Pts:  int(b.Army1Pts),
			Army2Pts:  int(b.Army2Pts),
			FoughtOn:  b.FoughtOn,
			CreatedAt: b.CreatedAt,
			UpdatedAt: b.UpdatedAt,
		}
	}
	return out, nil
}
