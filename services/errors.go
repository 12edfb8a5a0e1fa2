package services

import (
	"errors"
	"strings"
)

// UnknownName is the fallback display label for player identifiers the
// identity backend has no mapping for.
const UnknownName = "Unknown"

// Errors shared across services and mapped to HTTP statuses in handlers.
var (
	// Validation errors
	ErrInvalidID    = errors.New("identifier is not a valid UUID")
	ErrInvalidPhase = errors.New("unknown tournament phase")

	// Legitimate absence of data
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrNoTournaments      = errors.New("no tournaments found")
	ErrNoMatchups         = errors.New("no matchups found for the provided tournament")
	ErrNoRanking          = errors.New("no ranking available for the provided tournament")
	ErrPlayerNotRanked    = errors.New("player not found in the tournament ranking")
	ErrNoPlayerHistory    = errors.New("no tournaments found for this player")
	ErrSignupNotFound     = errors.New("no signup found for the provided player and tournament")

	// Business-rule conflicts
	ErrAlreadySignedUp = errors.New("player is already signed up for this tournament")
	ErrTournamentFull  = errors.New("tournament is full")
	ErrSignupRejected  = errors.New("signup rejected by tournament rules")
)

// MissingFieldsError lists exactly which required request fields are absent.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}
