package leagues

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/griffonmill/warleague/go/internal/db"
	"github.com/griffonmill/warleague/go/internal/models"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	CreateLeague(ctx context.Context, arg db.CreateLeagueParams) (db.League, error)
	GetLeague(ctx context.Context, id uuid.UUID) (db.League, error)
	GetLeagueByJoinToken(ctx context.Context, joinToken string) (db.League, error)
	ListLeaguesByOwner(ctx context.Context, ownerID uuid.UUID) ([]db.League, error)
	ListArmiesByLeague(ctx context.Context, leagueID uuid.UUID) ([]db.Army, error)
	UpdateLeague(ctx context.Context, arg db.UpdateLeagueParams) (db.League, error)
	UpdateLeagueJoinToken(ctx context.Context, arg db.UpdateLeagueJoinTokenParams) (db.League, error)
	DeleteLeague(ctx context.Context, id uuid.UUID) error
}

// Repository implements league data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new leagues repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// CreateLeague creates a new league owned by ownerID.
func (r *Repository) CreateLeague(ctx context.Context, ownerID uuid.UUID, joinToken string, req CreateLeagueRequest) (*models.League, error) {
	league, err := r.queries.CreateLeague(ctx, db.CreateLeagueParams{
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		JoinToken:    joinToken,
		OwnerID:      ownerID,
		PointsBudget: int32(req.PointsBudget),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create league: %w", err)
	}
	return dbLeagueToModel(league), nil
}

// GetLeague retrieves a league by ID.
func (r *Repository) GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error) {
	league, err := r.queries.GetLeague(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to get league: %w", err)
	}
	return dbLeagueToModel(league), nil
}

// GetLeagueByJoinToken retrieves a league by its join token.
func (r *Repository) GetLeagueByJoinToken(ctx context.Context, token string) (*models.League, error) {
	league, err := r.queries.GetLeagueByJoinToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to get league by token: %w", err)
	}
	return dbLeagueToModel(league), nil
}

// ListLeaguesByOwner retrieves the leagues a user owns.
func (r *Repository) ListLeaguesByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.League, error) {
	leagues, err := r.queries.ListLeaguesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues by owner: %w", err)
	}
	out := make([]models.League, len(leagues))
	for i, l := range leagues {
		out[i] = *dbLeagueToModel(l)
	}
	return out, nil
}

// ListLeagueArmies retrieves every army in the league, active or resigned.
func (r *Repository) ListLeagueArmies(ctx context.Context, leagueID uuid.UUID) ([]models.Army, error) {
	armies, err := r.queries.ListArmiesByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list league armies: %w", err)
	}
	out := make([]models.Army, len(armies))
	for i, a := range armies {
		out[i] = dbArmyToModel(a)
	}
	return out, nil
}

// UpdateLeague updates a league's editable fields.
func (r *Repository) UpdateLeague(ctx context.Context, id uuid.UUID, req UpdateLeagueRequest) (*models.League, error) {
	league, err := r.queries.UpdateLeague(ctx, db.UpdateLeagueParams{
		ID:           id,
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		PointsBudget: int32(req.PointsBudget),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to update league: %w", err)
	}
	return dbLeagueToModel(league), nil
}

// UpdateJoinToken replaces the league's join token.
func (r *Repository) UpdateJoinToken(ctx context.Context, id uuid.UUID, token string) (*models.League, error) {
	league, err := r.queries.UpdateLeagueJoinToken(ctx, db.UpdateLeagueJoinTokenParams{
		ID:        id,
		JoinToken: token,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to update join token: %w", err)
	}
	return dbLeagueToModel(league), nil
}

// DeleteLeague deletes a league; the store cascades to its armies and
// battles.
func (r *Repository) DeleteLeague(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.DeleteLeague(ctx, id); err != nil {
		return fmt.Errorf("failed to delete league: %w", err)
	}
	return nil
}

func dbLeagueToModel(l db.League) *models.League {
	return &models.League{
		ID:           l.ID,
		Title:        l.Title,
		Description:  l.Description,
		ImageURL:     l.ImageURL,
		JoinToken:    l.JoinToken,
		OwnerID:      l.OwnerID,
		PointsBudget: int(l.PointsBudget),
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func dbArmyToModel(a db.Army) models.Army {
	return models.Army{
		ID:         a.ID,
		Title:      a.Title,
		UserID:     a.UserID,
		LeagueID:   a.LeagueID,
		Allegiance: models.Allegiance(a.Allegiance),
		ImageURL:   a.ImageURL,
		Active:     a.Active,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
