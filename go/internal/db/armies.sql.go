package db

import (
	"context"

	"github.com/google/uuid"
)

const armyColumns = `id, title, user_id, league_id, allegiance, image_url, active, created_at, updated_at`

const createArmy = `
INSERT INTO armies (title, user_id, league_id, allegiance, image_url, active)
VALUES ($1, $2, $3, $4, $5, TRUE)
RETURNING ` + armyColumns

type CreateArmyParams struct {
	Title      string
	UserID     uuid.UUID
	LeagueID   uuid.UUID
	Allegiance string
	ImageURL   string
}

func (q *Queries) CreateArmy(ctx context.Context, arg CreateArmyParams) (Army, error) {
	row := q.db.QueryRowContext(ctx, createArmy,
		arg.Title, arg.UserID, arg.LeagueID, arg.Allegiance, arg.ImageURL)
	return scanArmy(row)
}

const getArmy = `
SELECT ` + armyColumns + ` FROM armies WHERE id = $1
`

func (q *Queries) GetArmy(ctx context.Context, id uuid.UUID) (Army, error) {
	return scanArmy(q.db.QueryRowContext(ctx, getArmy, id))
}

const getArmyByLeagueAndUser = `
SELECT ` + armyColumns + ` FROM armies
WHERE league_id = $1 AND user_id = $2
ORDER BY created_at DESC
LIMIT 1
`

type GetArmyByLeagueAndUserParams struct {
	LeagueID uuid.UUID
	UserID   uuid.UUID
}

// GetArmyByLeagueAndUser returns the user's army in the league regardless of
// its active flag. Rejoin reactivates this row instead of inserting a second
// one.
func (q *Queries) GetArmyByLeagueAndUser(ctx context.Context, arg GetArmyByLeagueAndUserParams) (Army, error) {
	return scanArmy(q.db.QueryRowContext(ctx, getArmyByLeagueAndUser, arg.LeagueID, arg.UserID))
}

const getActiveArmyByLeagueAndUser = `
SELECT ` + armyColumns + ` FROM armies
WHERE league_id = $1 AND user_id = $2 AND active
`

type GetActiveArmyByLeagueAndUserParams struct {
	LeagueID uuid.UUID
	UserID   uuid.UUID
}

func (q *Queries) GetActiveArmyByLeagueAndUser(ctx context.Context, arg GetActiveArmyByLeagueAndUserParams) (Army, error) {
	return scanArmy(q.db.QueryRowContext(ctx, getActiveArmyByLeagueAndUser, arg.LeagueID, arg.UserID))
}

const listArmiesByLeague = `
SELECT ` + armyColumns + ` FROM armies WHERE league_id = $1 ORDER BY created_at
`

func (q *Queries) ListArmiesByLeague(ctx context.Context, leagueID uuid.UUID) ([]Army, error) {
	rows, err := q.db.QueryContext(ctx, listArmiesByLeague, leagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var armies []Army
	for rows.Next() {
		a, err := scanArmy(rows)
		if err != nil {
			return nil, err
		}
		armies = append(armies, a)
	}
	return armies, rows.Err()
}

const listArmiesWithOwnersByLeague = `
SELECT a.id, a.title, a.user_id, a.league_id, a.allegiance, a.image_url, a.active, a.created_at, a.updated_at,
       u.username
FROM armies a
JOIN users u ON u.id = a.user_id
WHERE a.league_id = $1
ORDER BY a.created_at
`

// ListArmiesWithOwnersByLeague feeds the standings aggregator: every army in
// the league, active or resigned, with its owner's handle.
func (q *Queries) ListArmiesWithOwnersByLeague(ctx context.Context, leagueID uuid.UUID) ([]ArmyWithOwner, error) {
	rows, err := q.db.QueryContext(ctx, listArmiesWithOwnersByLeague, leagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var armies []ArmyWithOwner
	for rows.Next() {
		var a ArmyWithOwner
		if err := rows.Scan(&a.ID, &a.Title, &a.UserID, &a.LeagueID, &a.Allegiance,
			&a.ImageURL, &a.Active, &a.CreatedAt, &a.UpdatedAt, &a.OwnerUsername); err != nil {
			return nil, err
		}
		armies = append(armies, a)
	}
	return armies, rows.Err()
}

const listActiveArmiesByUser = `
SELECT a.id, a.title, a.user_id, a.league_id, a.allegiance, a.image_url, a.active, a.created_at, a.updated_at,
       l.title
FROM armies a
JOIN leagues l ON l.id = a.league_id
WHERE a.user_id = $1 AND a.active
ORDER BY a.created_at
`

func (q *Queries) ListActiveArmiesByUser(ctx context.Context, userID uuid.UUID) ([]ArmyWithLeague, error) {
	rows, err := q.db.QueryContext(ctx, listActiveArmiesByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var armies []ArmyWithLeague
	for rows.Next() {
		var a ArmyWithLeague
		if err := rows.Scan(&a.ID, &a.Title, &a.UserID, &a.LeagueID, &a.Allegiance,
			&a.ImageURL, &a.Active, &a.CreatedAt, &a.UpdatedAt, &a.LeagueTitle); err != nil {
			return nil, err
		}
		armies = append(armies, a)
	}
	return armies, rows.Err()
}

const updateArmy = `
UPDATE armies SET title = $2, allegiance = $3, image_url = $4, updated_at = now()
WHERE id = $1
RETURNING ` + armyColumns

type UpdateArmyParams struct {
	ID         uuid.UUID
	Title      string
	Allegiance string
	ImageURL   string
}

func (q *Queries) UpdateArmy(ctx context.Context, arg UpdateArmyParams) (Army, error) {
	row := q.db.QueryRowContext(ctx, updateArmy, arg.ID, arg.Title, arg.Allegiance, arg.ImageURL)
	return scanArmy(row)
}

const setArmyActive = `
UPDATE armies SET active = $2, updated_at = now()
WHERE id = $1
RETURNING ` + armyColumns

type SetArmyActiveParams struct {
	ID     uuid.UUID
	Active bool
}

func (q *Queries) SetArmyActive(ctx context.Context, arg SetArmyActiveParams) (Army, error) {
	return scanArmy(q.db.QueryRowContext(ctx, setArmyActive, arg.ID, arg.Active))
}

const deleteArmy = `
DELETE FROM armies WHERE id = $1
`

// DeleteArmy removes the row outright; battles referencing it keep their
// points with that side nulled (ON DELETE SET NULL).
func (q *Queries) DeleteArmy(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, deleteArmy, id)
	return err
}

func scanArmy(row rowScanner) (Army, error) {
	var a Army
	err := row.Scan(&a.ID, &a.Title, &a.UserID, &a.LeagueID, &a.Allegiance,
		&a.ImageURL, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}
