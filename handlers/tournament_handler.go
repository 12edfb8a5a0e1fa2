package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chessarena/tournament-service/models"
	"github.com/chessarena/tournament-service/services"
	"github.com/go-chi/chi/v5"
)

// TournamentHandler serves the tournament query endpoints.
type TournamentHandler struct {
	queries *services.TournamentService
	logger  *slog.Logger
}

func NewTournamentHandler(queries *services.TournamentService, logger *slog.Logger) *TournamentHandler {
	return &TournamentHandler{queries: queries, logger: logger}
}

var phaseMessages = map[models.TournamentPhase]string{
	models.PhaseUpcoming:  "Upcoming tournaments",
	models.PhaseOngoing:   "On-going tournaments",
	models.PhaseCompleted: "Completed tournaments",
	models.PhaseAll:       "All tournaments",
}

// ViewByPhase handles GET /tournaments/view/{phase}.
func (h *TournamentHandler) ViewByPhase(w http.ResponseWriter, r *http.Request) {
	phase := models.TournamentPhase(chi.URLParam(r, "phase"))

	tournaments, err := h.queries.ListByPhase(r.Context(), phase)
	if err != nil {
		if errors.Is(err, services.ErrNoTournaments) {
			errorResponse(w, h.logger, http.StatusNotFound, fmt.Sprintf("No %s tournaments", phase))
			return
		}
		mapServiceError(w, h.logger, err)
		return
	}

	successResponse(w, h.logger, http.StatusOK, phaseMessages[phase], tournaments)
}

// GetByID handles GET /tournaments/{id}.
func (h *TournamentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	tournament, err := h.queries.GetByID(r.Context(), id)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}

	successResponse(w, h.logger, http.StatusOK, "Tournament found", tournament)
}

// GetMatchups handles GET /tournaments/matchups/{tournamentID}. An optional
// body {"UUID": ...} restricts the result to matchups involving that player.
func (h *TournamentHandler) GetMatchups(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")

	var input struct {
		UUID string `json:"UUID"`
	}
	if err := readOptionalJSON(w, r, &input); err != nil {
		errorResponse(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	var playerID *string
	if input.UUID != "" {
		playerID = &input.UUID
	}

	matchups, err := h.queries.GetMatchups(r.Context(), tournamentID, playerID)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}

	successResponse(w, h.logger, http.StatusOK, "Tournament matchups retrieved successfully", matchups)
}

// GetRanking handles GET /tournaments/ranking/{tournamentID}.
func (h *TournamentHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")

	ranking, err := h.queries.GetRanking(r.Context(), tournamentID)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}

	successResponse(w, h.logger, http.StatusOK, "Tournament ranking retrieved successfully", ranking)
}

// GetPlayerRank handles GET /tournaments/ranking/{tournamentID}/player with
// body {"UUID": ...}, returning the requesting player's entry only.
func (h *TournamentHandler) GetPlayerRank(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")

	var input struct {
		UUID string `json:"UUID"`
	}
	if err := readJSON(w, r, &input); err != nil {
		errorResponse(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	if input.UUID == "" {
		errorResponse(w, h.logger, http.StatusBadRequest, "missing required fields: UUID")
		return
	}

	rank, err := h.queries.GetPlayerRank(r.Context(), tournamentID, input.UUID)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}

	successResponse(w, h.logger, http.StatusOK, "Current tournament ranking", rank)
}

// GetPlayers handles GET /tournaments/players/{tournamentID}. Zero signups
// is a success with an empty list, never a 404.
func (h *TournamentHandler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")

	players, err := h.queries.GetPlayers(r.Context(), tournamentID)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}

	message := "Players in the tournament"
	if len(players) == 0 {
		message = "No players have signed up for this tournament yet"
	}
	successResponse(w, h.logger, http.StatusOK, message, players)
}

// GetPlayerHistory handles GET /player/{playerID}/tournaments.
func (h *TournamentHandler) GetPlayerHistory(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	history, err := h.queries.GetPlayerHistory(r.Context(), playerID)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}

	successResponse(w, h.logger, http.StatusOK, "Player tournaments retrieved successfully", history)
}
