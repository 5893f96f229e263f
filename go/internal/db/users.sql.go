package db

import (
	"context"

	"github.com/google/uuid"
)

const upsertUser = `
INSERT INTO users (id, username)
VALUES ($1, $2)
ON CONFLICT (id) DO UPDATE SET username = EXCLUDED.username
RETURNING id, username, created_at
`

type UpsertUserParams struct {
	ID       uuid.UUID
	Username string
}

// UpsertUser provisions or refreshes a user row from identity claims.
func (q *Queries) UpsertUser(ctx context.Context, arg UpsertUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, upsertUser, arg.ID, arg.Username)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.CreatedAt)
	return u, err
}

const getUser = `
SELECT id, username, created_at FROM users WHERE id = $1
`

func (q *Queries) GetUser(ctx context.Context, id uuid.UUID) (User, error) {
	row := q.db.QueryRowContext(ctx, getUser, id)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.CreatedAt)
	return u, err
}
