package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"mmr-tracker/internal/config"
	"mmr-tracker/internal/database"
	"mmr-tracker/internal/db"
	"mmr-tracker/internal/rating"
	"mmr-tracker/internal/repository"
	"mmr-tracker/internal/service"

	"github.com/rs/zerolog"
)

// goose keeps package-level state, so database opens are serialized.
var openMu sync.Mutex

func newTestServer(t *testing.T) http.Handler {
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

	playerSvc := service.NewPlayerService(playerRepo, log)
	teamSvc := service.NewTeamService(sqlDB, queries, teamRepo, playerRepo, log)
	matchSvc := service.NewMatchService(sqlDB, queries, playerRepo, matchRepo, eventRepo, rating.Flat{}, log)

	return New(playerSvc, teamSvc, matchSvc, log).Routes()
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRecordMatchEndToEnd(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/matches", map[string]any{
		"team_a": []string{"alice"},
		"team_b": []string{"bob"},
		"winner": "A",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var match struct {
		ID       int64 `json:"id"`
		MMRDelta int   `json:"mmr_delta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &match); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if match.MMRDelta != 25 {
		t.Fatalf("mmr_delta = %d, want 25", match.MMRDelta)
	}

	rec = doJSON(t, handler, http.MethodGet, "/players/alice", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var player struct {
		MMRGeneral int `json:"mmr_general"`
		Wins       int `json:"wins"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &player); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if player.MMRGeneral != 1225 || player.Wins != 1 {
		t.Fatalf("player = %+v", player)
	}
}

func TestRecordMatchOverlapIsBadRequest(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/matches", map[string]any{
		"team_a": []string{"shared", "a"},
		"team_b": []string{"shared"},
		"winner": "A",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/matches", nil)
	var list struct {
		Matches []json.RawMessage `json:"matches"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Matches) != 0 {
		t.Fatalf("matches = %d, want 0", len(list.Matches))
	}
}

func TestGetPlayerNotFound(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/players/ghost", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestRegisterTeamAndLeaderboard(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/teams", map[string]any{
		"name":       "wolves",
		"member_ids": []string{"w1", "w2"},
		"seed_mmr":   1300,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, handler, http.MethodPost, "/teams", map[string]any{
		"name":       "empty",
		"member_ids": []string{},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty team status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/leaderboard?track=general&limit=5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("leaderboard status = %d", rec.Code)
	}
	var board struct {
		Players []struct {
			DiscordID  string `json:"discord_id"`
			MMRGeneral int    `json:"mmr_general"`
		} `json:"players"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &board); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(board.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(board.Players))
	}
	if board.Players[0].MMRGeneral != 1300 {
		t.Fatalf("top rating = %d, want seed 1300", board.Players[0].MMRGeneral)
	}
}

func TestSeedPlayerEndpoint(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPut, "/players/admin-set", map[string]any{
		"name":        "Target",
		"mmr_regular": 1500,
		"mmr_general": 1450,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var player struct {
		Name       string `json:"name"`
		MMRRegular int    `json:"mmr_regular"`
		MMRGeneral int    `json:"mmr_general"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &player); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if player.Name != "Target" || player.MMRRegular != 1500 || player.MMRGeneral != 1450 {
		t.Fatalf("player = %+v", player)
	}
}
