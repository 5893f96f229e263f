package armies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/griffonmill/warleague/go/internal/db"
	"github.com/griffonmill/warleague/go/internal/models"
	"github.com/griffonmill/warleague/go/internal/sqlutil"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// Repository implements army data access operations. Write paths that follow
// a read (join, leave) run inside a transaction via WithinTx; the partial
// unique index on (league_id, user_id) WHERE active backs the application
// check against races.
type Repository struct {
	sqlDB   *sql.DB
	queries *db.Queries
}

// NewRepository creates a new armies repository
func NewRepository(sqlDB *sql.DB, queries *db.Queries) *Repository {
	return &Repository{
		sqlDB:   sqlDB,
		queries: queries,
	}
}

// WithinTx runs fn against a repository bound to a single serializable
// transaction.
func (r *Repository) WithinTx(ctx context.Context, fn func(repo ArmiesRepository) error) error {
	if r.sqlDB == nil {
		// Already transaction-bound.
		return fn(r)
	}
	return sqlutil.RunSerializable(ctx, r.sqlDB,
		func(tx *sql.Tx) *Repository {
			return &Repository{queries: r.queries.WithTx(tx)}
		},
		func(q *Repository) error {
			return fn(q)
		},
	)
}

// CreateArmy inserts a new active army.
func (r *Repository) CreateArmy(ctx context.Context, leagueID, userID uuid.UUID, req JoinLeagueRequest) (*models.Army, error) {
	army, err := r.queries.CreateArmy(ctx, db.CreateArmyParams{
		Title:      req.Title,
		UserID:     userID,
		LeagueID:   leagueID,
		Allegiance: string(req.Allegiance),
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateMembership
		}
		return nil, fmt.Errorf("failed to create army: %w", err)
	}
	out := dbArmyToModel(army)
	return &out, nil
}

// GetArmy retrieves an army by ID.
func (r *Repository) GetArmy(ctx context.Context, id uuid.UUID) (*models.Army, error) {
	army, err := r.queries.GetArmy(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArmyNotFound
		}
		return nil, fmt.Errorf("failed to get army: %w", err)
	}
	out := dbArmyToModel(army)
	return &out, nil
}

// GetByLeagueAndUser retrieves the user's army in a league regardless of its
// active flag.
func (r *Repository) GetByLeagueAndUser(ctx context.Context, leagueID, userID uuid.UUID) (*models.Army, error) {
	army, err := r.queries.GetArmyByLeagueAndUser(ctx, db.GetArmyByLeagueAndUserParams{
		LeagueID: leagueID,
		UserID:   userID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArmyNotFound
		}
		return nil, fmt.Errorf("failed to get army by league and user: %w", err)
	}
	out := dbArmyToModel(army)
	return &out, nil
}

// ListByLeague retrieves every army in a league, active and resigned.
func (r *Repository) ListByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.Army, error) {
	armies, err := r.queries.ListArmiesByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list armies by league: %w", err)
	}
	out := make([]models.Army, len(armies))
	for i, a := range armies {
		out[i] = dbArmyToModel(a)
	}
	return out, nil
}

// ListActiveByUser retrieves the user's active armies with league titles.
func (r *Repository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]ArmyWithLeague, error) {
	armies, err := r.queries.ListActiveArmiesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active armies by user: %w", err)
	}
	out := make([]ArmyWithLeague, len(armies))
	for i, a := range armies {
		out[i] = ArmyWithLeague{
			Army:        dbArmyToModel(a.Army),
			LeagueTitle: a.LeagueTitle,
		}
	}
	return out, nil
}

// UpdateArmy updates an army's editable fields.
func (r *Repository) UpdateArmy(ctx context.Context, id uuid.UUID, req UpdateArmyRequest) (*models.Army, error) {
	army, err := r.queries.UpdateArmy(ctx, db.UpdateArmyParams{
		ID:         id,
		Title:      req.Title,
		Allegiance: string(req.Allegiance),
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArmyNotFound
		}
		return nil, fmt.Errorf("failed to update army: %w", err)
	}
	out := dbArmyToModel(army)
	return &out, nil
}

// SetActive flips an army's active flag.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.Army, error) {
	army, err := r.queries.SetArmyActive(ctx, db.SetArmyActiveParams{
		ID:     id,
		Active: active,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArmyNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateMembership
		}
		return nil, fmt.Errorf("failed to set army active: %w", err)
	}
	out := dbArmyToModel(army)
	return &out, nil
}

// DeleteArmy removes the army row outright. Battles keep their points with
// that side nulled; prefer SetActive for ordinary leaving.
func (r *Repository) DeleteArmy(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.DeleteArmy(ctx, id); err != nil {
		return fmt.Errorf("failed to delete army: %w", err)
	}
	return nil
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
