package db

import (
	"context"
)

const getPlayer = `
SELECT discord_id, name, mmr_regular, mmr_general, games_played, max_mmr, wins, losses
FROM players
WHERE discord_id = ?
`

func (q *Queries) GetPlayer(ctx context.Context, discordID string) (Player, error) {
	row := q.db.QueryRowContext(ctx, getPlayer, discordID)
	var p Player
	err := row.Scan(
		&p.DiscordID,
		&p.Name,
		&p.MmrRegular,
		&p.MmrGeneral,
		&p.GamesPlayed,
		&p.MaxMmr,
		&p.Wins,
		&p.Losses,
	)
	return p, err
}

const insertPlayerIfAbsent = `
INSERT OR IGNORE INTO players (discord_id, name, mmr_regular, mmr_general, games_played, max_mmr, wins, losses)
VALUES (?, ?, ?, ?, 0, ?, 0, 0)
`

type InsertPlayerIfAbsentParams struct {
	DiscordID  string
	Name       string
	MmrRegular int64
	MmrGeneral int64
	MaxMmr     int64
}

// InsertPlayerIfAbsent creates the row with the given ratings if no row for
// the id exists yet. An existing row is left completely untouched.
func (q *Queries) InsertPlayerIfAbsent(ctx context.Context, arg InsertPlayerIfAbsentParams) error {
	_, err := q.db.ExecContext(ctx, insertPlayerIfAbsent,
		arg.DiscordID,
		arg.Name,
		arg.MmrRegular,
		arg.MmrGeneral,
		arg.MaxMmr,
	)
	return err
}

const seedPlayer = `
UPDATE players
SET name = ?, mmr_regular = ?, mmr_general = ?
WHERE discord_id = ?
`

type SeedPlayerParams struct {
	Name       string
	MmrRegular int64
	MmrGeneral int64
	DiscordID  string
}

// SeedPlayer unconditionally overwrites name and both rating tracks,
// leaving games/wins/losses/max_mmr alone.
func (q *Queries) SeedPlayer(ctx context.Context, arg SeedPlayerParams) error {
	_, err := q.db.ExecContext(ctx, seedPlayer,
		arg.Name,
		arg.MmrRegular,
		arg.MmrGeneral,
		arg.DiscordID,
	)
	return err
}

const applyMatchResult = `
UPDATE players
SET mmr_general = ?1,
    games_played = games_played + 1,
    wins = wins + (CASE WHEN ?2 THEN 1 ELSE 0 END),
    losses = losses + (CASE WHEN ?2 THEN 0 ELSE 1 END),
    max_mmr = CASE WHEN ?1 > max_mmr THEN ?1 ELSE max_mmr END
WHERE discord_id = ?3
`

type ApplyMatchResultParams struct {
	MmrGeneral int64
	Won        bool
	DiscordID  string
}

func (q *Queries) ApplyMatchResult(ctx context.Context, arg ApplyMatchResultParams) error {
	_, err := q.db.ExecContext(ctx, applyMatchResult,
		arg.MmrGeneral,
		arg.Won,
		arg.DiscordID,
	)
	return err
}

const listTopPlayersByGeneral = `
SELECT discord_id, name, mmr_regular, mmr_general, games_played, max_mmr, wins, losses
FROM players
ORDER BY mmr_general DESC, discord_id ASC
LIMIT ?
`

const listTopPlayersByRegular = `
SELECT discord_id, name, mmr_regular, mmr_general, games_played, max_mmr, wins, losses
FROM players
ORDER BY mmr_regular DESC, discord_id ASC
LIMIT ?
`

// ListTopPlayers returns the top players on the selected track, ties broken
// by discord_id ascending.
func (q *Queries) ListTopPlayers(ctx context.Context, useRegular bool, limit int64) ([]Player, error) {
	query := listTopPlayersByGeneral
	if useRegular {
		query = listTopPlayersByRegular
	}
	rows, err := q.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(
			&p.DiscordID,
			&p.Name,
			&p.MmrRegular,
			&p.MmrGeneral,
			&p.GamesPlayed,
			&p.MaxMmr,
			&p.Wins,
			&p.Losses,
		); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
