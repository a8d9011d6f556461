package service

import (
	"context"
	"mmr-tracker/internal/constants"
	"mmr-tracker/internal/domain"
	"mmr-tracker/internal/rating"
	"mmr-tracker/internal/repository"

	"github.com/rs/zerolog"
)

type PlayerService struct {
	repo   *repository.PlayerRepository
	logger zerolog.Logger
}

func NewPlayerService(repo *repository.PlayerRepository, logger zerolog.Logger) *PlayerService {
	return &PlayerService{repo: repo, logger: logger}
}

func (s *PlayerService) Get(ctx context.Context, discordID string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.repo.Get(ctx, discordID)
}

// Seed is the administrative set: it creates the player if absent and then
// overwrites name and both rating tracks. Zero or negative ratings fall
// back to the default. Statistics are never touched.
func (s *PlayerService) Seed(ctx context.Context, discordID, name string, regular, general int) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if discordID == "" {
		return domain.Validationf("player id must not be empty")
	}
	if name == "" {
		name = discordID
	}
	if regular <= 0 {
		regular = rating.DefaultMMR
	}
	if general <= 0 {
		general = rating.DefaultMMR
	}

	if err := s.repo.UpsertSeed(ctx, discordID, name, regular, general); err != nil {
		s.logger.Error().Err(err).Str("discord_id", discordID).Msg("failed to seed player")
		return err
	}

	s.logger.Info().
		Str("discord_id", discordID).
		Int("mmr_regular", regular).
		Int("mmr_general", general).
		Msg("player seeded")
	return nil
}

// Leaderboard returns the top n players on the selected track. It reads a
// committed snapshot and never blocks match recording.
func (s *PlayerService) Leaderboard(ctx context.Context, n int, track domain.Track) ([]domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if n <= 0 {
		n = constants.DefaultLeaderboardLimit
	}
	if track == "" {
		track = domain.TrackGeneral
	}
	if !track.Valid() {
		return nil, domain.Validationf("unknown track %q", track)
	}

	return s.repo.ListTop(ctx, n, track)
}
