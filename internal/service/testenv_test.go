package service

import (
	"path/filepath"
	"sync"
	"testing"

	"mmr-tracker/internal/config"
	"mmr-tracker/internal/database"
	"mmr-tracker/internal/db"
	"mmr-tracker/internal/rating"
	"mmr-tracker/internal/repository"

	"github.com/rs/zerolog"
)

// goose keeps package-level state (base FS, dialect), so database opens are
// serialized across parallel tests.
var openMu sync.Mutex

type testEnv struct {
	players *PlayerService
	teams   *TeamService
	matches *MatchService
}

func newTestEnv(t *testing.T, policy rating.Policy) *testEnv {
	t.Helper()

	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "mmr.db")}
	log := zerolog.Nop()

	openMu.Lock()
	sqlDB, err := database.New(cfg, log)
	openMu.Unlock()
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	queries := db.New(sqlDB)
	playerRepo := repository.NewPlayerRepository(sqlDB, queries, log)
	teamRepo := repository.NewTeamRepository(sqlDB, queries, log)
	matchRepo := repository.NewMatchRepository(sqlDB, queries, log)
	eventRepo := repository.NewRatingEventRepository(sqlDB, queries, log)

	return &testEnv{
		players: NewPlayerService(playerRepo, log),
		teams:   NewTeamService(sqlDB, queries, teamRepo, playerRepo, log),
		matches: NewMatchService(sqlDB, queries, playerRepo, matchRepo, eventRepo, policy, log),
	}
}
