package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mmr-tracker/internal/db"
	"mmr-tracker/internal/domain"
	"mmr-tracker/internal/rating"

	"github.com/rs/zerolog"
)

// PlayerRepository owns player rows. Rating and statistics mutations go
// through ApplyMatchResult inside the match recording transaction; nothing
// else may change them.
type PlayerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *PlayerRepository) Get(ctx context.Context, discordID string) (*domain.Player, error) {
	player, err := r.queries.GetPlayer(ctx, discordID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %s: %w", discordID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	p := toDomainPlayer(player)
	return &p, nil
}

// UpsertSeed creates the row with the given ratings if absent, then
// unconditionally overwrites name and both rating tracks. Statistics are
// preserved. This is a seed/reset operation, not a merge.
func (r *PlayerRepository) UpsertSeed(ctx context.Context, discordID, name string, regular, general int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	maxMMR := regular
	if general > maxMMR {
		maxMMR = general
	}
	err = qtx.InsertPlayerIfAbsent(ctx, db.InsertPlayerIfAbsentParams{
		DiscordID:  discordID,
		Name:       name,
		MmrRegular: int64(regular),
		MmrGeneral: int64(general),
		MaxMmr:     int64(maxMMR),
	})
	if err != nil {
		return fmt.Errorf("failed to insert player %s: %w", discordID, err)
	}

	err = qtx.SeedPlayer(ctx, db.SeedPlayerParams{
		Name:       name,
		MmrRegular: int64(regular),
		MmrGeneral: int64(general),
		DiscordID:  discordID,
	})
	if err != nil {
		return fmt.Errorf("failed to seed player %s: %w", discordID, err)
	}

	return tx.Commit()
}

// EnsureExists creates the row with the given seed rating on both tracks if
// no row exists yet, leaving existing rows untouched. It is the single
// implicit-creation path: team registration and match recording both go
// through here, inside their own transactions.
func (r *PlayerRepository) EnsureExists(ctx context.Context, qtx *db.Queries, discordID string, seed int) error {
	if seed <= 0 {
		seed = rating.DefaultMMR
	}
	return qtx.InsertPlayerIfAbsent(ctx, db.InsertPlayerIfAbsentParams{
		DiscordID:  discordID,
		Name:       discordID,
		MmrRegular: int64(seed),
		MmrGeneral: int64(seed),
		MaxMmr:     int64(seed),
	})
}

// GetForUpdate reads a player inside the caller's write transaction.
func (r *PlayerRepository) GetForUpdate(ctx context.Context, qtx *db.Queries, discordID string) (domain.Player, error) {
	player, err := qtx.GetPlayer(ctx, discordID)
	if err != nil {
		return domain.Player{}, err
	}
	return toDomainPlayer(player), nil
}

// ApplyMatchResult sets the new general rating, bumps games_played and the
// win/loss counter, and raises max_mmr if exceeded. Must run inside the
// match recording transaction; it never commits on its own.
func (r *PlayerRepository) ApplyMatchResult(ctx context.Context, qtx *db.Queries, discordID string, newGeneral int, won bool) error {
	return qtx.ApplyMatchResult(ctx, db.ApplyMatchResultParams{
		MmrGeneral: int64(newGeneral),
		Won:        won,
		DiscordID:  discordID,
	})
}

// ListTop returns the top n players ordered by the selected track
// descending, ties broken by discord_id ascending.
func (r *PlayerRepository) ListTop(ctx context.Context, n int, track domain.Track) ([]domain.Player, error) {
	rows, err := r.queries.ListTopPlayers(ctx, track == domain.TrackRegular, int64(n))
	if err != nil {
		return nil, err
	}

	players := make([]domain.Player, len(rows))
	for i, row := range rows {
		players[i] = toDomainPlayer(row)
	}
	return players, nil
}

func toDomainPlayer(p db.Player) domain.Player {
	return domain.Player{
		DiscordID:   p.DiscordID,
		Name:        p.Name,
		MMRRegular:  int(p.MmrRegular),
		MMRGeneral:  int(p.MmrGeneral),
		GamesPlayed: int(p.GamesPlayed),
		MaxMMR:      int(p.MaxMmr),
		Wins:        int(p.Wins),
		Losses:      int(p.Losses),
	}
}
