package database

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"mmr-tracker/internal/config"

	"github.com/rs/zerolog"
)

// goose keeps package-level state, so opens are serialized.
var openMu sync.Mutex

func TestMigrationsAreIdempotent(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "mmr.db")}
	log := zerolog.Nop()

	openMu.Lock()
	db, err := New(cfg, log)
	openMu.Unlock()
	if err != nil {
		t.Fatalf("first open: %v", err)
	}

	// schema from the migrations, including the later wins/losses columns
	_, err = db.ExecContext(context.Background(),
		"INSERT INTO players (discord_id, name, mmr_regular, mmr_general, games_played, max_mmr, wins, losses) VALUES (?, ?, 1200, 1200, 0, 1200, 0, 0)",
		"probe", "probe")
	if err != nil {
		t.Fatalf("insert after migration: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// reopening must replay cleanly against the existing schema
	openMu.Lock()
	db, err = New(cfg, log)
	openMu.Unlock()
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM players").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("players = %d, want 1", count)
	}
}
