package models

// Signup records a player's intent to participate in a tournament, with
// an Elo snapshot taken at signup time. At most one active signup exists
// per (player, tournament) pair.
type Signup struct {
	PlayerID     string `json:"UUID"`
	TournamentID string `json:"tournamentID"`
	Elo          int    `json:"elo"`
}

// PlayerView is a signed-up player with the resolved display name.
type PlayerView struct {
	PlayerID string `json:"UUID"`
	Name     string `json:"name"`
}
