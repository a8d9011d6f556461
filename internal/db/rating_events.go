package db

import (
	"context"
	"time"
)

const insertRatingEvent = `
INSERT INTO rating_events (id, match_id, discord_id, rating_before, rating_after, won, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

type InsertRatingEventParams struct {
	ID           string
	MatchID      int64
	DiscordID    string
	RatingBefore int64
	RatingAfter  int64
	Won          bool
	CreatedAt    time.Time
}

func (q *Queries) InsertRatingEvent(ctx context.Context, arg InsertRatingEventParams) error {
	_, err := q.db.ExecContext(ctx, insertRatingEvent,
		arg.ID,
		arg.MatchID,
		arg.DiscordID,
		arg.RatingBefore,
		arg.RatingAfter,
		arg.Won,
		arg.CreatedAt,
	)
	return err
}

const listRatingEventsByPlayer = `
SELECT id, match_id, discord_id, rating_before, rating_after, won, created_at
FROM rating_events
WHERE discord_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?
`

type ListRatingEventsByPlayerParams struct {
	DiscordID string
	Limit     int64
}

func (q *Queries) ListRatingEventsByPlayer(ctx context.Context, arg ListRatingEventsByPlayerParams) ([]RatingEvent, error) {
	rows, err := q.db.QueryContext(ctx, listRatingEventsByPlayer, arg.DiscordID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []RatingEvent
	for rows.Next() {
		var e RatingEvent
		if err := rows.Scan(&e.ID, &e.MatchID, &e.DiscordID, &e.RatingBefore, &e.RatingAfter, &e.Won, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
