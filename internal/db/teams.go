package db

import (
	"context"
)

const insertTeam = `
INSERT INTO teams (name, member_ids, seed_mmr)
VALUES (?, ?, ?)
`

type InsertTeamParams struct {
	Name      string
	MemberIds string
	SeedMmr   int64
}

func (q *Queries) InsertTeam(ctx context.Context, arg InsertTeamParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, insertTeam,
		arg.Name,
		arg.MemberIds,
		arg.SeedMmr,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const getTeam = `
SELECT id, name, member_ids, seed_mmr
FROM teams
WHERE id = ?
`

func (q *Queries) GetTeam(ctx context.Context, id int64) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeam, id)
	var t Team
	err := row.Scan(&t.ID, &t.Name, &t.MemberIds, &t.SeedMmr)
	return t, err
}
