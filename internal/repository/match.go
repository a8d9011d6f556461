package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mmr-tracker/internal/db"
	"mmr-tracker/internal/domain"
	"time"

	"github.com/rs/zerolog"
)

// MatchRepository owns match rows. Rows are append-only; nothing updates or
// deletes them.
type MatchRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Insert appends the match row inside the caller's transaction and returns
// the assigned id.
func (r *MatchRepository) Insert(ctx context.Context, qtx *db.Queries, teamA, teamB []string, winner domain.Winner, mmrDelta int, createdAt time.Time) (int64, error) {
	return qtx.InsertMatch(ctx, db.InsertMatchParams{
		TeamA:     joinIDs(teamA),
		TeamB:     joinIDs(teamB),
		Winner:    string(winner),
		MmrDelta:  int64(mmrDelta),
		CreatedAt: createdAt,
	})
}

func (r *MatchRepository) Get(ctx context.Context, id int64) (*domain.Match, error) {
	match, err := r.queries.GetMatch(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("match %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	m := toDomainMatch(match)
	return &m, nil
}

// List returns the most recent matches, newest first.
func (r *MatchRepository) List(ctx context.Context, limit int) ([]domain.Match, error) {
	rows, err := r.queries.ListMatches(ctx, int64(limit))
	if err != nil {
		return nil, err
	}

	matches := make([]domain.Match, len(rows))
	for i, row := range rows {
		matches[i] = toDomainMatch(row)
	}
	return matches, nil
}

func toDomainMatch(m db.Match) domain.Match {
	return domain.Match{
		ID:        m.ID,
		TeamA:     splitIDs(m.TeamA),
		TeamB:     splitIDs(m.TeamB),
		Winner:    domain.Winner(m.Winner),
		MMRDelta:  int(m.MmrDelta),
		CreatedAt: m.CreatedAt,
	}
}
