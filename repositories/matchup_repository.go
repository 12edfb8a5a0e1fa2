package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chessarena/tournament-service/models"
)

// MatchupRepository reads matchup rows for a tournament. When playerID is
// non-nil only matchups involving that player are returned.
type MatchupRepository interface {
	ListByTournament(ctx context.Context, tournamentID string, playerID *string) ([]models.Matchup, error)
}

type postgresMatchupRepository struct {
	db *sql.DB
}

func NewPostgresMatchupRepository(db *sql.DB) MatchupRepository {
	return &postgresMatchupRepository{db: db}
}

func (r *postgresMatchupRepository) ListByTournament(ctx context.Context, tournamentID string, playerID *string) ([]models.Matchup, error) {
	var rows *sql.Rows
	var err error
	if playerID != nil {
		rows, err = r.db.QueryContext(ctx, `SELECT * FROM get_tournament_matchups($1, $2)`, tournamentID, *playerID)
	} else {
		rows, err = r.db.QueryContext(ctx, `SELECT * FROM get_all_tournament_matchups($1)`, tournamentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list matchups for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	var matchups []models.Matchup
	for rows.Next() {
		var m models.Matchup
		if err := rows.Scan(&m.Player1, &m.Player2, &m.Winner, &m.TournamentID, &m.Round); err != nil {
			return nil, fmt.Errorf("failed to scan matchup row: %w", err)
		}
		matchups = append(matchups, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read matchup rows: %w", err)
	}
	return matchups, nil
}
