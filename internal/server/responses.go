package server

import (
	"mmr-tracker/internal/domain"
	"time"
)

type playerResponse struct {
	DiscordID   string `json:"discord_id"`
	Name        string `json:"name"`
	MMRRegular  int    `json:"mmr_regular"`
	MMRGeneral  int    `json:"mmr_general"`
	GamesPlayed int    `json:"games_played"`
	MaxMMR      int    `json:"max_mmr"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
}

func toPlayerResponse(p *domain.Player) playerResponse {
	return playerResponse{
		DiscordID:   p.DiscordID,
		Name:        p.Name,
		MMRRegular:  p.MMRRegular,
		MMRGeneral:  p.MMRGeneral,
		GamesPlayed: p.GamesPlayed,
		MaxMMR:      p.MaxMMR,
		Wins:        p.Wins,
		Losses:      p.Losses,
	}
}

type teamResponse struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	MemberIDs []string `json:"member_ids"`
	SeedMMR   int      `json:"seed_mmr"`
}

func toTeamResponse(t *domain.Team) teamResponse {
	return teamResponse{
		ID:        t.ID,
		Name:      t.Name,
		MemberIDs: t.MemberIDs,
		SeedMMR:   t.SeedMMR,
	}
}

type matchResponse struct {
	ID        int64     `json:"id"`
	TeamA     []string  `json:"team_a"`
	TeamB     []string  `json:"team_b"`
	Winner    string    `json:"winner"`
	MMRDelta  int       `json:"mmr_delta"`
	CreatedAt time.Time `json:"created_at"`
}

func toMatchResponse(m *domain.Match) matchResponse {
	return matchResponse{
		ID:        m.ID,
		TeamA:     m.TeamA,
		TeamB:     m.TeamB,
		Winner:    string(m.Winner),
		MMRDelta:  m.MMRDelta,
		CreatedAt: m.CreatedAt,
	}
}

type ratingEventResponse struct {
	ID           string    `json:"id"`
	MatchID      int64     `json:"match_id"`
	DiscordID    string    `json:"discord_id"`
	RatingBefore int       `json:"rating_before"`
	RatingAfter  int       `json:"rating_after"`
	Won          bool      `json:"won"`
	CreatedAt    time.Time `json:"created_at"`
}
