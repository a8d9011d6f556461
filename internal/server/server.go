package server

import (
	"encoding/json"
	"errors"
	"mmr-tracker/internal/domain"
	"mmr-tracker/internal/service"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog"
)

// Server exposes the core as a thin JSON surface. It does no formatting
// beyond structured results and errors; presentation belongs to the
// front-end.
type Server struct {
	playerSvc *service.PlayerService
	teamSvc   *service.TeamService
	matchSvc  *service.MatchService
	logger    zerolog.Logger
}

func New(playerSvc *service.PlayerService, teamSvc *service.TeamService, matchSvc *service.MatchService, logger zerolog.Logger) *Server {
	return &Server{
		playerSvc: playerSvc,
		teamSvc:   teamSvc,
		matchSvc:  matchSvc,
		logger:    logger,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/teams", s.handleRegisterTeam)
	r.Get("/teams/{id}", s.handleGetTeam)

	r.Post("/matches", s.handleRecordMatch)
	r.Get("/matches", s.handleListMatches)
	r.Get("/matches/{id}", s.handleGetMatch)

	r.Get("/players/{id}", s.handleGetPlayer)
	r.Put("/players/{id}", s.handleSeedPlayer)
	r.Get("/players/{id}/history", s.handlePlayerHistory)

	r.Get("/leaderboard", s.handleLeaderboard)

	return r
}

type registerTeamRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"member_ids"`
	SeedMMR   int      `json:"seed_mmr"`
}

func (s *Server) handleRegisterTeam(w http.ResponseWriter, r *http.Request) {
	var req registerTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, domain.Validationf("invalid request body: %v", err))
		return
	}

	teamID, err := s.teamSvc.Register(r.Context(), req.Name, req.MemberIDs, req.SeedMMR)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{"team_id": teamID})
}

func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeError(w, r, domain.Validationf("invalid team id"))
		return
	}

	team, err := s.teamSvc.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toTeamResponse(team))
}

type recordMatchRequest struct {
	TeamA  []string `json:"team_a"`
	TeamB  []string `json:"team_b"`
	Winner string   `json:"winner"`
}

func (s *Server) handleRecordMatch(w http.ResponseWriter, r *http.Request) {
	var req recordMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, domain.Validationf("invalid request body: %v", err))
		return
	}

	match, err := s.matchSvc.Record(r.Context(), req.TeamA, req.TeamB, domain.Winner(req.Winner))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toMatchResponse(match))
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	matches, err := s.matchSvc.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]matchResponse, len(matches))
	for i := range matches {
		out[i] = toMatchResponse(&matches[i])
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"matches": out})
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeError(w, r, domain.Validationf("invalid match id"))
		return
	}

	match, err := s.matchSvc.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toMatchResponse(match))
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := s.playerSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toPlayerResponse(player))
}

type seedPlayerRequest struct {
	Name       string `json:"name"`
	MMRRegular int    `json:"mmr_regular"`
	MMRGeneral int    `json:"mmr_general"`
}

func (s *Server) handleSeedPlayer(w http.ResponseWriter, r *http.Request) {
	var req seedPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, domain.Validationf("invalid request body: %v", err))
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.playerSvc.Seed(r.Context(), id, req.Name, req.MMRRegular, req.MMRGeneral); err != nil {
		s.writeError(w, r, err)
		return
	}

	player, err := s.playerSvc.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toPlayerResponse(player))
}

func (s *Server) handlePlayerHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	events, err := s.matchSvc.HistoryFor(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]ratingEventResponse, len(events))
	for i, e := range events {
		out[i] = ratingEventResponse{
			ID:           e.ID,
			MatchID:      e.MatchID,
			DiscordID:    e.DiscordID,
			RatingBefore: e.RatingBefore,
			RatingAfter:  e.RatingAfter,
			Won:          e.Won,
			CreatedAt:    e.CreatedAt,
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"events": out})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	track := domain.Track(r.URL.Query().Get("track"))

	players, err := s.playerSvc.Leaderboard(r.Context(), limit, track)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]playerResponse, len(players))
	for i := range players {
		out[i] = toPlayerResponse(&players[i])
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"players": out})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case domain.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
