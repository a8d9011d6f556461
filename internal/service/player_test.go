package service

import (
	"context"
	"errors"
	"testing"

	"mmr-tracker/internal/domain"
	"mmr-tracker/internal/rating"
)

func TestSeedCreatesAndOverwrites(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, rating.Flat{})
	ctx := context.Background()

	if err := env.players.Seed(ctx, "s1", "Alice", 1300, 1250); err != nil {
		t.Fatalf("seed: %v", err)
	}

	p, err := env.players.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Name != "Alice" || p.MMRRegular != 1300 || p.MMRGeneral != 1250 {
		t.Fatalf("player = %+v", p)
	}

	// seed again: ratings and name overwritten, stats preserved
	if _, err := env.matches.Record(ctx, []string{"s1"}, []string{"s2"}, domain.WinnerA); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := env.players.Seed(ctx, "s1", "Alicia", 1400, 1400); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	p, err = env.players.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Name != "Alicia" || p.MMRGeneral != 1400 {
		t.Fatalf("reseed did not overwrite: %+v", p)
	}
	if p.GamesPlayed != 1 || p.Wins != 1 {
		t.Fatalf("reseed clobbered stats: %+v", p)
	}
}

func TestSeedDefaultsForNonPositiveRatings(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, rating.Flat{})
	ctx := context.Background()

	if err := env.players.Seed(ctx, "s3", "", 0, -5); err != nil {
		t.Fatalf("seed: %v", err)
	}

	p, err := env.players.Get(ctx, "s3")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Name != "s3" {
		t.Fatalf("name = %q, want id fallback", p.Name)
	}
	if p.MMRRegular != 1200 || p.MMRGeneral != 1200 {
		t.Fatalf("ratings = (%d, %d), want defaults", p.MMRRegular, p.MMRGeneral)
	}
}

func TestSeedRequiresID(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, rating.Flat{})

	err := env.players.Seed(context.Background(), "", "nobody", 1200, 1200)
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestGetPlayerNotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, rating.Flat{})

	_, err := env.players.Get(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, rating.Flat{})
	ctx := context.Background()

	seeds := []struct {
		id      string
		regular int
		general int
	}{
		{"low", 1400, 1000},
		{"mid", 1100, 1200},
		{"high", 1000, 1400},
		{"tie-b", 900, 1300},
		{"tie-a", 950, 1300},
	}
	for _, s := range seeds {
		if err := env.players.Seed(ctx, s.id, s.id, s.regular, s.general); err != nil {
			t.Fatalf("seed %s: %v", s.id, err)
		}
	}

	general, err := env.players.Leaderboard(ctx, 10, domain.TrackGeneral)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	gotOrder := make([]string, len(general))
	for i, p := range general {
		gotOrder[i] = p.DiscordID
	}
	wantOrder := []string{"high", "tie-a", "tie-b", "mid", "low"}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("general order = %v, want %v", gotOrder, wantOrder)
		}
	}

	regular, err := env.players.Leaderboard(ctx, 2, domain.TrackRegular)
	if err != nil {
		t.Fatalf("leaderboard regular: %v", err)
	}
	if len(regular) != 2 || regular[0].DiscordID != "low" {
		t.Fatalf("regular top = %+v, want low first", regular)
	}
}

func TestLeaderboardRejectsUnknownTrack(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, rating.Flat{})

	_, err := env.players.Leaderboard(context.Background(), 10, domain.Track("ranked"))
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}
