package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/chessarena/tournament-service/identity"
	"github.com/chessarena/tournament-service/services"
)

// envelope is the uniform response wrapper for every endpoint, success and
// error alike. Content is always null on non-success outcomes, so clients
// branch on status only, never on shape.
type envelope struct {
	Success bool   `json:"success"`
	Status  int    `json:"status"`
	Message string `json:"message"`
	Content any    `json:"content"`
}

func writeJSON(w http.ResponseWriter, status int, data envelope) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func successResponse(w http.ResponseWriter, logger *slog.Logger, status int, message string, content any) {
	env := envelope{Success: true, Status: status, Message: message, Content: content}
	if err := writeJSON(w, status, env); err != nil {
		logger.Error("failed to write response", slog.Any("error", err))
	}
}

func errorResponse(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	env := envelope{Success: false, Status: status, Message: message, Content: nil}
	if err := writeJSON(w, status, env); err != nil {
		logger.Error("failed to write error response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// mapServiceError translates the service error taxonomy into HTTP statuses:
// invalid input 400, absence 404, business conflicts 409, unreachable
// dependencies 503, everything else 500.
func mapServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var missingFields *services.MissingFieldsError

	switch {
	case errors.As(err, &missingFields),
		errors.Is(err, services.ErrInvalidID),
		errors.Is(err, services.ErrInvalidPhase),
		errors.Is(err, services.ErrSignupRejected):
		errorResponse(w, logger, http.StatusBadRequest, err.Error())

	case errors.Is(err, services.ErrTournamentNotFound),
		errors.Is(err, services.ErrNoTournaments),
		errors.Is(err, services.ErrNoMatchups),
		errors.Is(err, services.ErrNoRanking),
		errors.Is(err, services.ErrPlayerNotRanked),
		errors.Is(err, services.ErrNoPlayerHistory),
		errors.Is(err, services.ErrSignupNotFound):
		errorResponse(w, logger, http.StatusNotFound, err.Error())

	case errors.Is(err, services.ErrAlreadySignedUp),
		errors.Is(err, services.ErrTournamentFull):
		errorResponse(w, logger, http.StatusConflict, err.Error())

	case errors.Is(err, identity.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		errorResponse(w, logger, http.StatusServiceUnavailable, "a downstream service is unavailable")

	default:
		logger.Error("unhandled service error", slog.Any("error", err))
		errorResponse(w, logger, http.StatusInternalServerError,
			"the server encountered a problem and could not process your request")
	}
}

// readJSON decodes a request body into dst with the usual strictness:
// single JSON value, known fields only, bounded size.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

// readOptionalJSON is readJSON for endpoints where the body may be absent
// entirely; a missing or empty body leaves dst untouched.
func readOptionalJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return readJSON(w, r, dst)
}
