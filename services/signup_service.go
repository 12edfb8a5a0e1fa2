package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/chessarena/tournament-service/models"
	"github.com/chessarena/tournament-service/repositories"
)

// SignupService handles the two mutations of this service: signing up for
// a tournament and quitting one.
type SignupService struct {
	signupRepo repositories.SignupRepository
	timeouts   Timeouts
	logger     *slog.Logger
}

func NewSignupService(signupRepo repositories.SignupRepository, timeouts Timeouts, logger *slog.Logger) *SignupService {
	return &SignupService{
		signupRepo: signupRepo,
		timeouts:   timeouts,
		logger:     logger,
	}
}

// SignUp registers a player for a tournament with an Elo snapshot. The
// pre-check on an existing signup is a fast path only; the stored procedure
// enforces uniqueness atomically and its signal is authoritative.
func (s *SignupService) SignUp(ctx context.Context, playerID, tournamentID string, elo int) (*models.Signup, error) {
	var missing []string
	if playerID == "" {
		missing = append(missing, "UUID")
	}
	if tournamentID == "" {
		missing = append(missing, "tournamentID")
	}
	if elo == 0 {
		missing = append(missing, "elo")
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	ctx, cancel := withTimeout(ctx, s.timeouts.Storage)
	defer cancel()

	exists, err := s.signupRepo.Exists(ctx, playerID, tournamentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadySignedUp
	}

	signup := models.Signup{PlayerID: playerID, TournamentID: tournamentID, Elo: elo}
	if err := s.signupRepo.Create(ctx, signup); err != nil {
		return nil, classifyCreateError(err)
	}

	s.logger.Info("player signed up",
		slog.String("player", playerID),
		slog.String("tournament", tournamentID),
		slog.Int("elo", elo))
	return &signup, nil
}

// Quit removes a player's signup. Deleting a signup that does not exist is
// reported as ErrSignupNotFound, not as a silent no-op.
func (s *SignupService) Quit(ctx context.Context, playerID, tournamentID string) error {
	var missing []string
	if playerID == "" {
		missing = append(missing, "UUID")
	}
	if tournamentID == "" {
		missing = append(missing, "tournamentID")
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}

	ctx, cancel := withTimeout(ctx, s.timeouts.Storage)
	defer cancel()

	affected, err := s.signupRepo.Delete(ctx, playerID, tournamentID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSignupNotFound
	}

	s.logger.Info("player quit tournament",
		slog.String("player", playerID),
		slog.String("tournament", tournamentID))
	return nil
}

// classifyCreateError translates the repository's tagged signals into the
// service error taxonomy.
func classifyCreateError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrSignupDuplicate):
		return ErrAlreadySignedUp
	case errors.Is(err, repositories.ErrTournamentFull):
		return ErrTournamentFull
	case errors.Is(err, repositories.ErrSignupRejected):
		return ErrSignupRejected
	}
	return err
}
