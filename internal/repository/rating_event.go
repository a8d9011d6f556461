package repository

import (
	"context"
	"database/sql"
	"fmt"
	"mmr-tracker/internal/db"
	"mmr-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// RatingEventRepository owns the per-player rating history appended
// alongside each match.
type RatingEventRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewRatingEventRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *RatingEventRepository {
	return &RatingEventRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// InsertBatch appends one event per participant inside the caller's
// transaction, generating nanoid row ids.
func (r *RatingEventRepository) InsertBatch(ctx context.Context, qtx *db.Queries, events []domain.RatingEvent) error {
	for _, event := range events {
		id := event.ID
		if id == "" {
			var err error
			id, err = gonanoid.New()
			if err != nil {
				return fmt.Errorf("failed to generate nanoid: %w", err)
			}
		}

		err := qtx.InsertRatingEvent(ctx, db.InsertRatingEventParams{
			ID:           id,
			MatchID:      event.MatchID,
			DiscordID:    event.DiscordID,
			RatingBefore: int64(event.RatingBefore),
			RatingAfter:  int64(event.RatingAfter),
			Won:          event.Won,
			CreatedAt:    event.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to insert rating event: %w", err)
		}
	}
	return nil
}

// ListByPlayer returns a player's rating history, newest first.
func (r *RatingEventRepository) ListByPlayer(ctx context.Context, discordID string, limit int) ([]domain.RatingEvent, error) {
	rows, err := r.queries.ListRatingEventsByPlayer(ctx, db.ListRatingEventsByPlayerParams{
		DiscordID: discordID,
		Limit:     int64(limit),
	})
	if err != nil {
		return nil, err
	}

	events := make([]domain.RatingEvent, len(rows))
	for i, row := range rows {
		events[i] = domain.RatingEvent{
			ID:           row.ID,
			MatchID:      row.MatchID,
			DiscordID:    row.DiscordID,
			RatingBefore: int(row.RatingBefore),
			RatingAfter:  int(row.RatingAfter),
			Won:          row.Won,
			CreatedAt:    row.CreatedAt,
		}
	}
	return events, nil
}
