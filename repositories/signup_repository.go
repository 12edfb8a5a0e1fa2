package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/chessarena/tournament-service/models"
	"github.com/lib/pq"
)

var (
	// ErrSignupDuplicate is raised when the signup procedure signals that the
	// (player, tournament) pair is already registered.
	ErrSignupDuplicate = errors.New("player is already signed up for this tournament")

	// ErrTournamentFull is raised when the signup procedure signals that the
	// tournament has reached its player limit.
	ErrTournamentFull = errors.New("tournament is full")

	// ErrSignupRejected covers any other business-rule signal raised by the
	// signup procedure.
	ErrSignupRejected = errors.New("signup rejected by tournament rules")
)

// SignupRepository mutates and reads tournament signups through stored
// procedures. Business-rule violations signalled by the procedures
// (RAISE EXCEPTION, SQLSTATE P0001) are lifted into the tagged errors above
// here, so callers never string-match database messages.
type SignupRepository interface {
	Create(ctx context.Context, signup models.Signup) error
	// Delete removes the signup and reports how many rows were affected,
	// distinguishing "nothing to delete" from a failed call.
	Delete(ctx context.Context, playerID, tournamentID string) (int64, error)
	Exists(ctx context.Context, playerID, tournamentID string) (bool, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]string, error)
}

type postgresSignupRepository struct {
	db *sql.DB
}

func NewPostgresSignupRepository(db *sql.DB) SignupRepository {
	return &postgresSignupRepository{db: db}
}

func (r *postgresSignupRepository) Create(ctx context.Context, signup models.Signup) error {
	_, err := r.db.ExecContext(ctx, `SELECT sign_up_for_tournament($1, $2, $3)`,
		signup.PlayerID, signup.TournamentID, signup.Elo)
	if err != nil {
		return classifySignupError(err)
	}
	return nil
}

func (r *postgresSignupRepository) Delete(ctx context.Context, playerID, tournamentID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `SELECT quit_tournament($1, $2)`, playerID, tournamentID)
	if err != nil {
		return 0, fmt.Errorf("failed to quit tournament %s for player %s: %w", tournamentID, playerID, err)
	}
	return affectedRows(result)
}

func (r *postgresSignupRepository) Exists(ctx context.Context, playerID, tournamentID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT check_signup_exists($1, $2)`, playerID, tournamentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check signup for player %s in tournament %s: %w", playerID, tournamentID, err)
	}
	return exists, nil
}

func (r *postgresSignupRepository) ListByTournament(ctx context.Context, tournamentID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT * FROM get_tournament_players($1)`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	var players []string
	for rows.Next() {
		var playerID string
		if err := rows.Scan(&playerID); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, playerID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read player rows: %w", err)
	}
	return players, nil
}

// classifySignupError maps database signals onto tagged sentinel errors.
// Anything unrecognized passes through wrapped as a plain storage error.
func classifySignupError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return fmt.Errorf("failed to sign up for tournament: %w", err)
	}

	switch pqErr.Code {
	case raiseExceptionCode:
		msg := strings.ToLower(pqErr.Message)
		switch {
		case strings.Contains(msg, "already signed up"):
			return ErrSignupDuplicate
		case strings.Contains(msg, "full"):
			return ErrTournamentFull
		default:
			return fmt.Errorf("%w: %s", ErrSignupRejected, pqErr.Message)
		}
	case uniqueViolationCode:
		return ErrSignupDuplicate
	}
	return fmt.Errorf("failed to sign up for tournament: %w", err)
}
