package db

import (
	"context"
	"time"
)

const insertMatch = `
INSERT INTO matches (team_a, team_b, winner, mmr_delta, created_at)
VALUES (?, ?, ?, ?, ?)
`

type InsertMatchParams struct {
	TeamA     string
	TeamB     string
	Winner    string
	MmrDelta  int64
	CreatedAt time.Time
}

func (q *Queries) InsertMatch(ctx context.Context, arg InsertMatchParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, insertMatch,
		arg.TeamA,
		arg.TeamB,
		arg.Winner,
		arg.MmrDelta,
		arg.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const getMatch = `
SELECT id, team_a, team_b, winner, mmr_delta, created_at
FROM matches
WHERE id = ?
`

func (q *Queries) GetMatch(ctx context.Context, id int64) (Match, error) {
	row := q.db.QueryRowContext(ctx, getMatch, id)
	var m Match
	err := row.Scan(&m.ID, &m.TeamA, &m.TeamB, &m.Winner, &m.MmrDelta, &m.CreatedAt)
	return m, err
}

const listMatches = `
SELECT id, team_a, team_b, winner, mmr_delta, created_at
FROM matches
ORDER BY id DESC
LIMIT ?
`

func (q *Queries) ListMatches(ctx context.Context, limit int64) ([]Match, error) {
	rows, err := q.db.QueryContext(ctx, listMatches, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.ID, &m.TeamA, &m.TeamB, &m.Winner, &m.MmrDelta, &m.CreatedAt); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
