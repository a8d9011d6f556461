package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mmr-tracker/internal/constants"
	"mmr-tracker/internal/database"
	"mmr-tracker/internal/db"
	"mmr-tracker/internal/domain"
	"mmr-tracker/internal/rating"
	"mmr-tracker/internal/repository"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
)

// MatchService is the match recorder. Record is the only code path allowed
// to mutate player ratings and statistics.
type MatchService struct {
	db         *sql.DB
	queries    *db.Queries
	playerRepo *repository.PlayerRepository
	matchRepo  *repository.MatchRepository
	eventRepo  *repository.RatingEventRepository
	policy     rating.Policy
	logger     zerolog.Logger

	// recordMu is the write-serialization point for in-process callers:
	// two recordings sharing a player must never compute deltas from the
	// same pre-image. Cross-process writers are serialized by SQLite's
	// write lock and surface as ErrConflict.
	recordMu sync.Mutex
}

func NewMatchService(
	sqlDB *sql.DB,
	queries *db.Queries,
	playerRepo *repository.PlayerRepository,
	matchRepo *repository.MatchRepository,
	eventRepo *repository.RatingEventRepository,
	policy rating.Policy,
	logger zerolog.Logger,
) *MatchService {
	return &MatchService{
		db:         sqlDB,
		queries:    queries,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		eventRepo:  eventRepo,
		policy:     policy,
		logger:     logger,
	}
}

// Record applies one match outcome as a single atomic unit: validate,
// materialize unknown players, compute deltas with the active policy,
// update every participant, append the match row and one rating event per
// participant. Either everything commits or nothing does. Serialization
// conflicts are retried with backoff before surfacing as ErrConflict.
func (s *MatchService) Record(ctx context.Context, teamA, teamB []string, winner domain.Winner) (*domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if err := validateRosters(teamA, teamB, winner); err != nil {
		return nil, err
	}

	s.logger.Info().
		Strs("team_a", teamA).
		Strs("team_b", teamB).
		Str("winner", string(winner)).
		Str("policy", s.policy.Name()).
		Msg("recording match")

	var match *domain.Match
	backoff := retry.WithMaxRetries(constants.RecordRetryAttempts, retry.NewExponential(constants.RecordRetryBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		m, err := s.recordOnce(ctx, teamA, teamB, winner)
		if errors.Is(err, domain.ErrConflict) {
			s.logger.Warn().Err(err).Msg("match recording conflict, retrying")
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}
		match = m
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to record match")
		return nil, err
	}

	s.logger.Info().
		Int64("match_id", match.ID).
		Int("mmr_delta", match.MMRDelta).
		Msg("match recorded")
	return match, nil
}

func (s *MatchService) recordOnce(ctx context.Context, teamA, teamB []string, winner domain.Winner) (*domain.Match, error) {
	s.recordMu.Lock()
	defer s.recordMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, database.MapError(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	// A match may introduce brand-new participants; create them at the
	// default rating before reading pre-images.
	for _, id := range append(append([]string{}, teamA...), teamB...) {
		if err := s.playerRepo.EnsureExists(ctx, qtx, id, 0); err != nil {
			return nil, database.MapError(fmt.Errorf("failed to ensure player %s: %w", id, err))
		}
	}

	winnerIDs, loserIDs := teamA, teamB
	if winner == domain.WinnerB {
		winnerIDs, loserIDs = teamB, teamA
	}

	winMembers, winBefore, err := s.readMembers(ctx, qtx, winnerIDs)
	if err != nil {
		return nil, database.MapError(err)
	}
	loseMembers, loseBefore, err := s.readMembers(ctx, qtx, loserIDs)
	if err != nil {
		return nil, database.MapError(err)
	}

	result := s.policy.Apply(winMembers, loseMembers)
	now := time.Now().UTC()

	events := make([]domain.RatingEvent, 0, len(winnerIDs)+len(loserIDs))
	for i, id := range winnerIDs {
		if err := s.playerRepo.ApplyMatchResult(ctx, qtx, id, result.WinnerRatings[i], true); err != nil {
			return nil, database.MapError(fmt.Errorf("failed to apply result for %s: %w", id, err))
		}
		events = append(events, domain.RatingEvent{
			DiscordID:    id,
			RatingBefore: winBefore[i],
			RatingAfter:  result.WinnerRatings[i],
			Won:          true,
			CreatedAt:    now,
		})
	}
	for i, id := range loserIDs {
		if err := s.playerRepo.ApplyMatchResult(ctx, qtx, id, result.LoserRatings[i], false); err != nil {
			return nil, database.MapError(fmt.Errorf("failed to apply result for %s: %w", id, err))
		}
		events = append(events, domain.RatingEvent{
			DiscordID:    id,
			RatingBefore: loseBefore[i],
			RatingAfter:  result.LoserRatings[i],
			Won:          false,
			CreatedAt:    now,
		})
	}

	matchID, err := s.matchRepo.Insert(ctx, qtx, teamA, teamB, winner, result.Delta, now)
	if err != nil {
		return nil, database.MapError(fmt.Errorf("failed to insert match: %w", err))
	}

	for i := range events {
		events[i].MatchID = matchID
	}
	if err := s.eventRepo.InsertBatch(ctx, qtx, events); err != nil {
		return nil, database.MapError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, database.MapError(fmt.Errorf("failed to commit: %w", err))
	}

	return &domain.Match{
		ID:        matchID,
		TeamA:     teamA,
		TeamB:     teamB,
		Winner:    winner,
		MMRDelta:  result.Delta,
		CreatedAt: now,
	}, nil
}

func (s *MatchService) readMembers(ctx context.Context, qtx *db.Queries, ids []string) ([]rating.Member, []int, error) {
	members := make([]rating.Member, len(ids))
	before := make([]int, len(ids))
	for i, id := range ids {
		player, err := s.playerRepo.GetForUpdate(ctx, qtx, id)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read player %s: %w", id, err)
		}
		members[i] = rating.Member{Rating: player.MMRGeneral, GamesPlayed: player.GamesPlayed}
		before[i] = player.MMRGeneral
	}
	return members, before, nil
}

// Get returns one recorded match.
func (s *MatchService) Get(ctx context.Context, id int64) (*domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.matchRepo.Get(ctx, id)
}

// List returns recent matches, newest first.
func (s *MatchService) List(ctx context.Context, limit int) ([]domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if limit <= 0 {
		limit = constants.DefaultMatchListLimit
	}
	return s.matchRepo.List(ctx, limit)
}

// HistoryFor returns a player's rating events, newest first.
func (s *MatchService) HistoryFor(ctx context.Context, discordID string, limit int) ([]domain.RatingEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if limit <= 0 {
		limit = constants.DefaultHistoryLimit
	}
	return s.eventRepo.ListByPlayer(ctx, discordID, limit)
}

func validateRosters(teamA, teamB []string, winner domain.Winner) error {
	if !winner.Valid() {
		return domain.Validationf("winner must be %q or %q, got %q", domain.WinnerA, domain.WinnerB, winner)
	}
	if len(teamA) == 0 || len(teamB) == 0 {
		return domain.Validationf("both rosters must be non-empty")
	}
	if len(teamA) > constants.MaxTeamSize || len(teamB) > constants.MaxTeamSize {
		return domain.Validationf("rosters may have at most %d members", constants.MaxTeamSize)
	}
	if id, dup := firstDuplicate(teamA); dup {
		return domain.Validationf("duplicate member %s in roster A", id)
	}
	if id, dup := firstDuplicate(teamB); dup {
		return domain.Validationf("duplicate member %s in roster B", id)
	}
	seen := make(map[string]struct{}, len(teamA))
	for _, id := range teamA {
		seen[id] = struct{}{}
	}
	for _, id := range teamB {
		if _, ok := seen[id]; ok {
			return domain.Validationf("player %s appears on both rosters", id)
		}
	}
	return nil
}

func firstDuplicate(ids []string) (string, bool) {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return id, true
		}
		seen[id] = struct{}{}
	}
	return "", false
}
