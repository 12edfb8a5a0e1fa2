package models

import "time"

// TournamentPhase is the lifecycle bucket of a tournament. Phases are derived
// from start/end dates by the database and never recomputed in this service.
type TournamentPhase string

const (
	PhaseUpcoming  TournamentPhase = "upcoming"
	PhaseOngoing   TournamentPhase = "ongoing"
	PhaseCompleted TournamentPhase = "completed"
	PhaseAll       TournamentPhase = "all"
)

// ValidPhase reports whether p is one of the known lifecycle phases.
func ValidPhase(p TournamentPhase) bool {
	switch p {
	case PhaseUpcoming, PhaseOngoing, PhaseCompleted, PhaseAll:
		return true
	}
	return false
}

// Tournament is a read-only projection of a tournament row.
type Tournament struct {
	ID          string          `json:"tournamentID"`
	Name        string          `json:"name"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
	Location    *string         `json:"location,omitempty"`
	PlayerLimit int             `json:"playerLimit"`
	Phase       TournamentPhase `json:"status"`
	Active      bool            `json:"active"`
}

// PlayerTournament is one row of a player's participation history.
type PlayerTournament struct {
	TournamentID string    `json:"tournamentID"`
	Name         string    `json:"tournamentName"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Status       string    `json:"status"`
}
