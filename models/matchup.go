package models

// Matchup is a raw pairing row as stored. Winner is nil while the game
// is unplayed.
type Matchup struct {
	Player1      string  `json:"player1"`
	Player2      string  `json:"player2"`
	Winner       *string `json:"playerWon,omitempty"`
	TournamentID string  `json:"tournamentID"`
	Round        int     `json:"roundNum"`
}

// MatchupView is the enriched matchup returned to clients: every player
// identifier replaced by a display name, ids never exposed alongside names.
type MatchupView struct {
	Player1Name   string `json:"player1Name"`
	Player2Name   string `json:"player2Name"`
	PlayerWonName string `json:"playerWonName"`
	TournamentID  string `json:"tournamentID"`
	Round         int    `json:"roundNum"`
}
