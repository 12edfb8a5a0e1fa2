package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chessarena/tournament-service/identity"
	"github.com/chessarena/tournament-service/models"
	"github.com/chessarena/tournament-service/repositories"
	"github.com/google/uuid"
)

// Timeouts bounds every outbound call a service makes. A zero value
// disables the corresponding bound.
type Timeouts struct {
	Storage  time.Duration
	Identity time.Duration
}

// TournamentService answers tournament queries: phase listings, single
// tournaments, matchups, rankings, signed-up players and player history.
// Wherever results carry player identifiers, the service resolves them to
// display names with exactly one batched identity call per request.
type TournamentService struct {
	tournamentRepo repositories.TournamentRepository
	matchupRepo    repositories.MatchupRepository
	rankingRepo    repositories.RankingRepository
	signupRepo     repositories.SignupRepository
	resolver       identity.Resolver
	timeouts       Timeouts
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	matchupRepo repositories.MatchupRepository,
	rankingRepo repositories.RankingRepository,
	signupRepo repositories.SignupRepository,
	resolver identity.Resolver,
	timeouts Timeouts,
	logger *slog.Logger,
) *TournamentService {
	return &TournamentService{
		tournamentRepo: tournamentRepo,
		matchupRepo:    matchupRepo,
		rankingRepo:    rankingRepo,
		signupRepo:     signupRepo,
		resolver:       resolver,
		timeouts:       timeouts,
		logger:         logger,
	}
}

// ListByPhase returns all tournaments in the given lifecycle phase.
// A legitimately empty listing is reported as ErrNoTournaments.
func (s *TournamentService) ListByPhase(ctx context.Context, phase models.TournamentPhase) ([]models.Tournament, error) {
	if !models.ValidPhase(phase) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPhase, phase)
	}

	ctx, cancel := withTimeout(ctx, s.timeouts.Storage)
	defer cancel()

	tournaments, err := s.tournamentRepo.ListByPhase(ctx, phase)
	if err != nil {
		return nil, err
	}
	if len(tournaments) == 0 {
		return nil, ErrNoTournaments
	}
	return tournaments, nil
}

// GetByID returns a single tournament. The id must be a well-formed UUID.
func (s *TournamentService) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	ctx, cancel := withTimeout(ctx, s.timeouts.Storage)
	defer cancel()

	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tournament == nil {
		return nil, ErrTournamentNotFound
	}
	return tournament, nil
}

// GetMatchups returns the enriched matchups of a tournament, optionally
// restricted to those involving playerID. Every identifier across all rows
// is resolved in a single batched identity call; ids without a mapping
// fall back to "Unknown".
func (s *TournamentService) GetMatchups(ctx context.Context, tournamentID string, playerID *string) ([]models.MatchupView, error) {
	storageCtx, cancel := withTimeout(ctx, s.timeouts.Storage)
	matchups, err := s.matchupRepo.ListByTournament(storageCtx, tournamentID, playerID)
	cancel()
	if err != nil {
		return nil, err
	}
	if len(matchups) == 0 {
		return nil, ErrNoMatchups
	}

	names, err := s.resolveNames(ctx, matchupPlayerIDs(matchups))
	if err != nil {
		return nil, err
	}

	views := make([]models.MatchupView, 0, len(matchups))
	for _, m := range matchups {
		view := models.MatchupView{
			Player1Name:   nameOrUnknown(names, m.Player1),
			Player2Name:   nameOrUnknown(names, m.Player2),
			PlayerWonName: UnknownName,
			TournamentID:  m.TournamentID,
			Round:         m.Round,
		}
		if m.Winner != nil {
			view.PlayerWonName = nameOrUnknown(names, *m.Winner)
		}
		views = append(views, view)
	}
	return views, nil
}

// GetRanking returns the enriched ranking of a tournament, ordered by rank.
// The tournament must exist; an existing tournament without results yields
// ErrNoRanking.
func (s *TournamentService) GetRanking(ctx context.Context, tournamentID string) ([]models.RankingView, error) {
	entries, err := s.fetchRanking(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.PlayerID)
	}

	names, err := s.resolveNames(ctx, dedupe(ids))
	if err != nil {
		return nil, err
	}

	views := make([]models.RankingView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, models.RankingView{
			Name:     nameOrUnknown(names, entry.PlayerID),
			WinCount: entry.Wins,
			Rank:     entry.Rank,
		})
	}
	return views, nil
}

// GetPlayerRank returns the ranking entry of a single player within a
// tournament, with the player's name resolved.
func (s *TournamentService) GetPlayerRank(ctx context.Context, tournamentID, playerID string) (*models.RankingView, error) {
	entries, err := s.fetchRanking(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	var found *models.RankingEntry
	for i := range entries {
		if entries[i].PlayerID == playerID {
			found = &entries[i]
			break
		}
	}
	if found == nil {
		return nil, ErrPlayerNotRanked
	}

	names, err := s.resolveNames(ctx, []string{playerID})
	if err != nil {
		return nil, err
	}

	return &models.RankingView{
		Name:     nameOrUnknown(names, playerID),
		WinCount: found.Wins,
		Rank:     found.Rank,
	}, nil
}

// GetPlayers returns the players signed up for a tournament. The tournament
// must exist, but zero signups is a valid state and yields an empty list,
// not an error.
func (s *TournamentService) GetPlayers(ctx context.Context, tournamentID string) ([]models.PlayerView, error) {
	storageCtx, cancel := withTimeout(ctx, s.timeouts.Storage)
	defer cancel()

	exists, err := s.tournamentRepo.Exists(storageCtx, tournamentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTournamentNotFound
	}

	playerIDs, err := s.signupRepo.ListByTournament(storageCtx, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(playerIDs) == 0 {
		return []models.PlayerView{}, nil
	}

	names, err := s.resolveNames(ctx, dedupe(playerIDs))
	if err != nil {
		return nil, err
	}

	players := make([]models.PlayerView, 0, len(playerIDs))
	for _, id := range playerIDs {
		players = append(players, models.PlayerView{
			PlayerID: id,
			Name:     nameOrUnknown(names, id),
		})
	}
	return players, nil
}

// GetPlayerHistory returns every tournament a player has participated in,
// regardless of phase.
func (s *TournamentService) GetPlayerHistory(ctx context.Context, playerID string) ([]models.PlayerTournament, error) {
	if _, err := uuid.Parse(playerID); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, playerID)
	}

	ctx, cancel := withTimeout(ctx, s.timeouts.Storage)
	defer cancel()

	history, err := s.tournamentRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, ErrNoPlayerHistory
	}
	return history, nil
}

func (s *TournamentService) fetchRanking(ctx context.Context, tournamentID string) ([]models.RankingEntry, error) {
	ctx, cancel := withTimeout(ctx, s.timeouts.Storage)
	defer cancel()

	exists, err := s.tournamentRepo.Exists(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTournamentNotFound
	}

	entries, err := s.rankingRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoRanking
	}
	return entries, nil
}

// resolveNames performs the single batched identity call of a request.
// A transport failure fails the whole request; per-id misses are left to
// the caller's fallback.
func (s *TournamentService) resolveNames(ctx context.Context, ids []string) (map[string]string, error) {
	ctx, cancel := withTimeout(ctx, s.timeouts.Identity)
	defer cancel()

	names, err := s.resolver.ResolveNames(ctx, ids)
	if err != nil {
		s.logger.Error("identity resolution failed", slog.Int("ids", len(ids)), slog.Any("error", err))
		return nil, err
	}
	return names, nil
}

func matchupPlayerIDs(matchups []models.Matchup) []string {
	ids := make([]string, 0, len(matchups)*3)
	for _, m := range matchups {
		ids = append(ids, m.Player1, m.Player2)
		if m.Winner != nil {
			ids = append(ids, *m.Winner)
		}
	}
	return dedupe(ids)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func nameOrUnknown(names map[string]string, id string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return UnknownName
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
