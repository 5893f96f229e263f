package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const battleColumns = `id, league_id, army1_id, army2_id, army1_pts, army2_pts, fought_on, created_at, updated_at`

const createBattle = `
INSERT INTO battles (league_id, army1_id, army2_id, army1_pts, army2_pts, fought_on)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + battleColumns

type CreateBattleParams struct {
	LeagueID uuid.UUID
	Army1ID  uuid.UUID
	Army2ID  uuid.UUID
	Army1Pts int32
	Army2Pts int32
	FoughtOn time.Time
}

func (q *Queries) CreateBattle(ctx context.Context, arg CreateBattleParams) (Battle, error) {
	row := q.db.QueryRowContext(ctx, createBattle,
		arg.LeagueID, arg.Army1ID, arg.Army2ID, arg.Army1Pts, arg.Army2Pts, arg.FoughtOn)
	return scanBattle(row)
}

const getBattle = `
SELECT ` + battleColumns + ` FROM battles WHERE id = $1
`

func (q *Queries) GetBattle(ctx context.Context, id uuid.UUID) (Battle, error) {
	return scanBattle(q.db.QueryRowContext(ctx, getBattle, id))
}

const listBattlesByLeague = `
SELECT ` + battleColumns + ` FROM battles
WHERE league_id = $1
ORDER BY fought_on DESC, created_at DESC
`

func (q *Queries) ListBattlesByLeague(ctx context.Context, leagueID uuid.UUID) ([]Battle, error) {
	rows, err := q.db.QueryContext(ctx, listBattlesByLeague, leagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var battles []Battle
	for rows.Next() {
		b, err := scanBattle(rows)
		if err != nil {
			return nil, err
		}
		battles = append(battles, b)
	}
	return battles, rows.Err()
}

const listBattleRowsByLeague = `
SELECT b.id, b.league_id, b.army1_id, b.army2_id, b.army1_pts, b.army2_pts, b.fought_on, b.created_at, b.updated_at,
       a1.title, a1.allegiance, u1.username, a1.active,
       a2.title, a2.allegiance, u2.username, a2.active
FROM battles b
LEFT JOIN armies a1 ON a1.id = b.army1_id
LEFT JOIN users u1 ON u1.id = a1.user_id
LEFT JOIN armies a2 ON a2.id = b.army2_id
LEFT JOIN users u2 ON u2.id = a2.user_id
WHERE b.league_id = $1
ORDER BY b.fought_on DESC, b.created_at DESC
LIMIT $2
`

type ListBattleRowsByLeagueParams struct {
	LeagueID uuid.UUID
	Limit    int32
}

// ListBattleRowsByLeague returns presentation-ready battle rows, newest
// first. Sides whose army row was removed come back with null columns.
func (q *Queries) ListBattleRowsByLeague(ctx context.Context, arg ListBattleRowsByLeagueParams) ([]BattleRow, error) {
	rows, err := q.db.QueryContext(ctx, listBattleRowsByLeague, arg.LeagueID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []BattleRow
	for rows.Next() {
		var r BattleRow
		if err := rows.Scan(&r.ID, &r.LeagueID, &r.Army1ID, &r.Army2ID, &r.Army1Pts, &r.Army2Pts,
			&r.FoughtOn, &r.CreatedAt, &r.UpdatedAt,
			&r.Army1Title, &r.Army1Allegiance, &r.Army1Owner, &r.Army1Active,
			&r.Army2Title, &r.Army2Allegiance, &r.Army2Owner, &r.Army2Active); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const updateBattle = `
UPDATE battles SET army2_id = $2, army1_pts = $3, army2_pts = $4, fought_on = $5, updated_at = now()
WHERE id = $1
RETURNING ` + battleColumns

type UpdateBattleParams struct {
	ID       uuid.UUID
	Army2ID  uuid.UUID
	Army1Pts int32
	Army2Pts int32
	FoughtOn time.Time
}

func (q *Queries) UpdateBattle(ctx context.Context, arg UpdateBattleParams) (Battle, error) {
	row := q.db.QueryRowContext(ctx, updateBattle,
		arg.ID, arg.Army2ID, arg.Army1Pts, arg.Army2Pts, arg.FoughtOn)
	return scanBattle(row)
}

const deleteBattle = `
DELETE FROM battles WHERE id = $1
`

func (q *Queries) DeleteBattle(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, deleteBattle, id)
	return err
}

func scanBattle(row rowScanner) (Battle, error) {
	var b Battle
	err := row.Scan(&b.ID, &b.LeagueID, &b.Army1ID, &b.Army2ID, &b.Army1Pts, &b.Army2Pts,
		&b.FoughtOn, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}
