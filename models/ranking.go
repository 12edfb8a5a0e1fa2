package models

// RankingEntry is a raw ranking row: win count and rank position are
// computed entirely by the ranking procedure.
type RankingEntry struct {
	PlayerID string `json:"player"`
	Wins     int    `json:"wins"`
	Rank     int    `json:"rank"`
}

// RankingView is the enriched ranking entry returned to clients,
// ordered by rank.
type RankingView struct {
	Name     string `json:"name"`
	WinCount int    `json:"winCount"`
	Rank     int    `json:"ranking"`
}
