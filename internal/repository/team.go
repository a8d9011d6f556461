package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mmr-tracker/internal/db"
	"mmr-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// TeamRepository owns team rows. Teams are immutable once registered.
type TeamRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewTeamRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *TeamRepository {
	return &TeamRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Insert writes the team row inside the caller's transaction and returns
// the assigned id.
func (r *TeamRepository) Insert(ctx context.Context, qtx *db.Queries, name string, memberIDs []string, seedMMR int) (int64, error) {
	return qtx.InsertTeam(ctx, db.InsertTeamParams{
		Name:      name,
		MemberIds: joinIDs(memberIDs),
		SeedMmr:   int64(seedMMR),
	})
}

func (r *TeamRepository) Get(ctx context.Context, id int64) (*domain.Team, error) {
	team, err := r.queries.GetTeam(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("team %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &domain.Team{
		ID:        team.ID,
		Name:      team.Name,
		MemberIDs: splitIDs(team.MemberIds),
		SeedMMR:   int(team.SeedMmr),
	}, nil
}
