package service

import (
	"context"
	"database/sql"
	"fmt"
	"mmr-tracker/internal/constants"
	"mmr-tracker/internal/database"
	"mmr-tracker/internal/db"
	"mmr-tracker/internal/domain"
	"mmr-tracker/internal/repository"

	"github.com/rs/zerolog"
)

type TeamService struct {
	db         *sql.DB
	queries    *db.Queries
	teamRepo   *repository.TeamRepository
	playerRepo *repository.PlayerRepository
	logger     zerolog.Logger
}

func NewTeamService(
	sqlDB *sql.DB,
	queries *db.Queries,
	teamRepo *repository.TeamRepository,
	playerRepo *repository.PlayerRepository,
	logger zerolog.Logger,
) *TeamService {
	return &TeamService{
		db:         sqlDB,
		queries:    queries,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		logger:     logger,
	}
}

// Register creates an immutable named team. Members not yet known to the
// ledger are created with the seed rating (default 1200 when seed is
// unset) on both tracks, in the same transaction as the team row.
func (s *TeamService) Register(ctx context.Context, name string, memberIDs []string, seedMMR int) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if len(memberIDs) == 0 {
		return 0, domain.Validationf("team must have at least one member")
	}
	if len(memberIDs) > constants.MaxTeamSize {
		return 0, domain.Validationf("team may have at most %d members", constants.MaxTeamSize)
	}
	if id, dup := firstDuplicate(memberIDs); dup {
		return 0, domain.Validationf("duplicate member %s in team", id)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, database.MapError(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	for _, id := range memberIDs {
		if err := s.playerRepo.EnsureExists(ctx, qtx, id, seedMMR); err != nil {
			return 0, database.MapError(fmt.Errorf("failed to ensure player %s: %w", id, err))
		}
	}

	teamID, err := s.teamRepo.Insert(ctx, qtx, name, memberIDs, seedMMR)
	if err != nil {
		return 0, database.MapError(fmt.Errorf("failed to insert team: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return 0, database.MapError(fmt.Errorf("failed to commit: %w", err))
	}

	s.logger.Info().
		Int64("team_id", teamID).
		Str("name", name).
		Int("members", len(memberIDs)).
		Int("seed_mmr", seedMMR).
		Msg("team registered")
	return teamID, nil
}

func (s *TeamService) Get(ctx context.Context, id int64) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.teamRepo.Get(ctx, id)
}
