package battles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/griffonmill/warleague/go/internal/db"
	"github.com/griffonmill/warleague/go/internal/leagues"
	"github.com/griffonmill/warleague/go/internal/models"
	"github.com/griffonmill/warleague/go/internal/sqlutil"
)

// Repository implements battle ledger data access. Ledger writes follow
// reads (resolving army1, validating the opponent), so mutating flows run
// inside WithinTx.
type Repository struct {
	sqlDB   *sql.DB
	queries *db.Queries
}

// NewRepository creates a new battles repository
func NewRepository(sqlDB *sql.DB, queries *db.Queries) *Repository {
	return &Repository{
		sqlDB:   sqlDB,
		queries: queries,
	}
}

// WithinTx runs fn against a repository bound to a single transaction.
func (r *Repository) WithinTx(ctx context.Context, fn func(repo BattlesRepository) error) error {
	if r.sqlDB == nil {
		return fn(r)
	}
	return sqlutil.Run(ctx, r.sqlDB,
		func(tx *sql.Tx) *Repository {
			return &Repository{queries: r.queries.WithTx(tx)}
		},
		func(q *Repository) error {
			return fn(q)
		},
	)
}

// CreateBattle inserts a ledger entry.
func (r *Repository) CreateBattle(ctx context.Context, leagueID, army1ID, army2ID uuid.UUID, army1Pts, army2Pts int, foughtOn time.Time) (*models.Battle, error) {
	battle, err := r.queries.CreateBattle(ctx, db.CreateBattleParams{
		LeagueID: leagueID,
		Army1ID:  army1ID,
		Army2ID:  army2ID,
		Army1Pts: int32(army1Pts),
		Army2Pts: int32(army2Pts),
		FoughtOn: foughtOn,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create battle: %w", err)
	}
	out := dbBattleToModel(battle)
	return &out, nil
}

// GetBattle retrieves a battle by ID.
func (r *Repository) GetBattle(ctx context.Context, id uuid.UUID) (*models.Battle, error) {
	battle, err := r.queries.GetBattle(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBattleNotFound
		}
		return nil, fmt.Errorf("failed to get battle: %w", err)
	}
	out := dbBattleToModel(battle)
	return &out, nil
}

// GetLeague retrieves the battle's league for authorization checks.
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

// GetArmy retrieves an army by ID, or nil when the row is gone.
func (r *Repository) GetArmy(ctx context.Context, id uuid.UUID) (*models.Army, error) {
	army, err := r.queries.GetArmy(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get army: %w", err)
	}
	out := dbArmyToModel(army)
	return &out, nil
}

// GetActiveArmy resolves the user's active army within a league.
func (r *Repository) GetActiveArmy(ctx context.Context, leagueID, userID uuid.UUID) (*models.Army, error) {
	army, err := r.queries.GetActiveArmyByLeagueAndUser(ctx, db.GetActiveArmyByLeagueAndUserParams{
		LeagueID: leagueID,
		UserID:   userID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoActiveArmy
		}
		return nil, fmt.Errorf("failed to get active army: %w", err)
	}
	out := dbArmyToModel(army)
	return &out, nil
}

// ListLeagueArmies retrieves every army in the league for membership checks.
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

// ListRows retrieves presentation rows for the league, newest first.
func (r *Repository) ListRows(ctx context.Context, leagueID uuid.UUID, limit int) ([]BattleRow, error) {
	rows, err := r.queries.ListBattleRowsByLeague(ctx, db.ListBattleRowsByLeagueParams{
		LeagueID: leagueID,
		Limit:    int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list battle rows: %w", err)
	}
	out := make([]BattleRow, len(rows))
	for i, row := range rows {
		out[i] = BattleRow{
			ID:              row.ID,
			LeagueID:        row.LeagueID,
			FoughtOn:        row.FoughtOn,
			Army1Title:      sqlutil.FromNullString(row.Army1Title, ""),
			Army1Allegiance: allegianceLabel(row.Army1Allegiance),
			Army1Owner:      sqlutil.FromNullString(row.Army1Owner, DepartedName),
			Army1Pts:        int(row.Army1Pts),
			Army2Title:      sqlutil.FromNullString(row.Army2Title, ""),
			Army2Allegiance: allegianceLabel(row.Army2Allegiance),
			Army2Owner:      sqlutil.FromNullString(row.Army2Owner, DepartedName),
			Army2Pts:        int(row.Army2Pts),
		}
	}
	return out, nil
}

// UpdateBattle updates a ledger entry's mutable fields.
func (r *Repository) UpdateBattle(ctx context.Context, id, army2ID uuid.UUID, army1Pts, army2Pts int, foughtOn time.Time) (*models.Battle, error) {
	battle, err := r.queries.UpdateBattle(ctx, db.UpdateBattleParams{
		ID:       id,
		Army2ID:  army2ID,
		Army1Pts: int32(army1Pts),
		Army2Pts: int32(army2Pts),
		FoughtOn: foughtOn,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBattleNotFound
		}
		return nil, fmt.Errorf("failed to update battle: %w", err)
	}
	out := dbBattleToModel(battle)
	return &out, nil
}

// DeleteBattle removes a ledger entry.
func (r *Repository) DeleteBattle(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.DeleteBattle(ctx, id); err != nil {
		return fmt.Errorf("failed to delete battle: %w", err)
	}
	return nil
}

func allegianceLabel(code sql.NullString) string {
	if !code.Valid {
		return ""
	}
	return models.Allegiance(code.String).Label()
}

func dbBattleToModel(b db.Battle) models.Battle {
	return models.Battle{
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
