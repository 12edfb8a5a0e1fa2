package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chessarena/tournament-service/models"
)

// RankingRepository reads the per-tournament ranking computed by storage.
// Rows come back ordered by rank position.
type RankingRepository interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]models.RankingEntry, error)
}

type postgresRankingRepository struct {
	db *sql.DB
}

func NewPostgresRankingRepository(db *sql.DB) RankingRepository {
	return &postgresRankingRepository{db: db}
}

func (r *postgresRankingRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.RankingEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT * FROM rank_tournament_players($1)`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to rank players for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	var ranking []models.RankingEntry
	for rows.Next() {
		var entry models.RankingEntry
		if err := rows.Scan(&entry.PlayerID, &entry.Wins, &entry.Rank); err != nil {
			return nil, fmt.Errorf("failed to scan ranking row: %w", err)
		}
		ranking = append(ranking, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ranking rows: %w", err)
	}
	return ranking, nil
}
