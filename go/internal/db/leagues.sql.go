package db

import (
	"context"

	"github.com/google/uuid"
)

const createLeague = `
INSERT INTO leagues (title, description, image_url, join_token, owner_id, points_budget)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, title, description, image_url, join_token, owner_id, points_budget, created_at, updated_at
`

type CreateLeagueParams struct {
	Title        string
	Description  string
	ImageURL     string
	JoinToken    string
	OwnerID      uuid.UUID
	PointsBudget int32
}

func (q *Queries) CreateLeague(ctx context.Context, arg CreateLeagueParams) (League, error) {
	row := q.db.QueryRowContext(ctx, createLeague,
		arg.Title, arg.Description, arg.ImageURL, arg.JoinToken, arg.OwnerID, arg.PointsBudget)
	return scanLeague(row)
}

const getLeague = `
SELECT id, title, description, image_url, join_token, owner_id, points_budget, created_at, updated_at
FROM leagues WHERE id = $1
`

func (q *Queries) GetLeague(ctx context.Context, id uuid.UUID) (League, error) {
	return scanLeague(q.db.QueryRowContext(ctx, getLeague, id))
}

const getLeagueByJoinToken = `
SELECT id, title, description, image_url, join_token, owner_id, points_budget, created_at, updated_at
FROM leagues WHERE join_token = $1
`

func (q *Queries) GetLeagueByJoinToken(ctx context.Context, joinToken string) (League, error) {
	return scanLeague(q.db.QueryRowContext(ctx, getLeagueByJoinToken, joinToken))
}

const listLeaguesByOwner = `
SELECT id, title, description, image_url, join_token, owner_id, points_budget, created_at, updated_at
FROM leagues WHERE owner_id = $1 ORDER BY created_at
`

func (q *Queries) ListLeaguesByOwner(ctx context.Context, ownerID uuid.UUID) ([]League, error) {
	rows, err := q.db.QueryContext(ctx, listLeaguesByOwner, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var leagues []League
	for rows.Next() {
		var l League
		if err := rows.Scan(&l.ID, &l.Title, &l.Description, &l.ImageURL, &l.JoinToken,
			&l.OwnerID, &l.PointsBudget, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		leagues = append(leagues, l)
	}
	return leagues, rows.Err()
}

const updateLeague = `
UPDATE leagues
SET title = $2, description = $3, image_url = $4, points_budget = $5, updated_at = now()
WHERE id = $1
RETURNING id, title, description, image_url, join_token, owner_id, points_budget, created_at, updated_at
`

type UpdateLeagueParams struct {
	ID           uuid.UUID
	Title        string
	Description  string
	ImageURL     string
	PointsBudget int32
}

// UpdateLeague never touches owner_id or join_token; the owner is immutable
// and the token has its own statement.
func (q *Queries) UpdateLeague(ctx context.Context, arg UpdateLeagueParams) (League, error) {
	row := q.db.QueryRowContext(ctx, updateLeague,
		arg.ID, arg.Title, arg.Description, arg.ImageURL, arg.PointsBudget)
	return scanLeague(row)
}

const updateLeagueJoinToken = `
UPDATE leagues SET join_token = $2, updated_at = now()
WHERE id = $1
RETURNING id, title, description, image_url, join_token, owner_id, points_budget, created_at, updated_at
`

type UpdateLeagueJoinTokenParams struct {
	ID        uuid.UUID
	JoinToken string
}

func (q *Queries) UpdateLeagueJoinToken(ctx context.Context, arg UpdateLeagueJoinTokenParams) (League, error) {
	return scanLeague(q.db.QueryRowContext(ctx, updateLeagueJoinToken, arg.ID, arg.JoinToken))
}

const deleteLeague = `
DELETE FROM leagues WHERE id = $1
`

// DeleteLeague relies on ON DELETE CASCADE to remove the league's armies and
// battles.
func (q *Queries) DeleteLeague(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, deleteLeague, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLeague(row rowScanner) (League, error) {
	var l League
	err := row.Scan(&l.ID, &l.Title, &l.Description, &l.ImageURL, &l.JoinToken,
		&l.OwnerID, &l.PointsBudget, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}
