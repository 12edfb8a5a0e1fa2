package handlers

import (
	"log/slog"
	"net/http"

	"github.com/chessarena/tournament-service/services"
	"github.com/go-chi/chi/v5"
)

// SignupHandler serves the mutation endpoints: tournament sign-up and quit.
type SignupHandler struct {
	signups *services.SignupService
	logger  *slog.Logger
}

func NewSignupHandler(signups *services.SignupService, logger *slog.Logger) *SignupHandler {
	return &SignupHandler{signups: signups, logger: logger}
}

// SignUp handles POST /tournaments/signup/{playerID} with body
// {"tournamentID": ..., "elo": ...}.
func (h *SignupHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	var input struct {
		TournamentID string `json:"tournamentID"`
		Elo          int    `json:"elo"`
	}
	if err := readOptionalJSON(w, r, &input); err != nil {
		errorResponse(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	signup, err := h.signups.SignUp(r.Context(), playerID, input.TournamentID, input.Elo)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}

	successResponse(w, h.logger, http.StatusCreated, "Successfully signed up for the tournament", signup)
}

// Quit handles DELETE /tournaments/quit/{playerID} with body
// {"tournamentID": ...}.
func (h *SignupHandler) Quit(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	var input struct {
		TournamentID string `json:"tournamentID"`
	}
	if err := readOptionalJSON(w, r, &input); err != nil {
		errorResponse(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.signups.Quit(r.Context(), playerID, input.TournamentID); err != nil {
		mapServiceError(w, h.logger, err)
		return
	}

	successResponse(w, h.logger, http.StatusOK, "Successfully quit from the tournament", nil)
}
