package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chessarena/tournament-service/models"
)

// TournamentRepository reads tournament rows through stored procedures.
// Legitimate absence is reported as a nil record or an empty slice, never
// as an error; errors mean the call itself failed.
type TournamentRepository interface {
	ListByPhase(ctx context.Context, phase models.TournamentPhase) ([]models.Tournament, error)
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListByPlayer(ctx context.Context, playerID string) ([]models.PlayerTournament, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

// phaseProcedures maps a lifecycle phase to the procedure that lists it.
// The phase itself is derived from the dates inside the database.
var phaseProcedures = map[models.TournamentPhase]string{
	models.PhaseUpcoming:  "SELECT * FROM get_upcoming_tournaments()",
	models.PhaseOngoing:   "SELECT * FROM get_inprogress_tournaments()",
	models.PhaseCompleted: "SELECT * FROM get_completed_tournaments()",
	models.PhaseAll:       "SELECT * FROM get_all_tournaments()",
}

func (r *postgresTournamentRepository) ListByPhase(ctx context.Context, phase models.TournamentPhase) ([]models.Tournament, error) {
	query, ok := phaseProcedures[phase]
	if !ok {
		return nil, fmt.Errorf("unknown tournament phase %q", phase)
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s tournaments: %w", phase, err)
	}
	defer rows.Close()

	var tournaments []models.Tournament
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(
			&t.ID, &t.Name, &t.StartDate, &t.EndDate,
			&t.Location, &t.PlayerLimit, &t.Phase, &t.Active,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tournament rows: %w", err)
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `SELECT * FROM get_tournament_by_id($1)`

	t := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.StartDate, &t.EndDate,
		&t.Location, &t.PlayerLimit, &t.Phase, &t.Active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tournament %s: %w", id, err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) Exists(ctx context.Context, id string) (bool, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return t != nil, nil
}

func (r *postgresTournamentRepository) ListByPlayer(ctx context.Context, playerID string) ([]models.PlayerTournament, error) {
	query := `SELECT * FROM get_player_tournaments($1)`

	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments for player %s: %w", playerID, err)
	}
	defer rows.Close()

	var history []models.PlayerTournament
	for rows.Next() {
		var pt models.PlayerTournament
		if err := rows.Scan(&pt.TournamentID, &pt.Name, &pt.StartDate, &pt.EndDate, &pt.Status); err != nil {
			return nil, fmt.Errorf("failed to scan player tournament row: %w", err)
		}
		history = append(history, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read player tournament rows: %w", err)
	}
	return history, nil
}
