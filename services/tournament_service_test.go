package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/chessarena/tournament-service/identity"
	"github.com/chessarena/tournament-service/models"
)

const (
	testTournamentID = "6d2c9a1e-8f3b-4c5d-9e7a-1b2c3d4e5f60"
	testPlayerID     = "0a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9"
)

type stubTournamentRepo struct {
	byPhase map[models.TournamentPhase][]models.Tournament
	byID    map[string]*models.Tournament
	history map[string][]models.PlayerTournament
	err     error
}

func (s *stubTournamentRepo) ListByPhase(_ context.Context, phase models.TournamentPhase) ([]models.Tournament, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byPhase[phase], nil
}

func (s *stubTournamentRepo) GetByID(_ context.Context, id string) (*models.Tournament, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byID[id], nil
}

func (s *stubTournamentRepo) Exists(ctx context.Context, id string) (bool, error) {
	t, err := s.GetByID(ctx, id)
	return t != nil, err
}

func (s *stubTournamentRepo) ListByPlayer(_ context.Context, playerID string) ([]models.PlayerTournament, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.history[playerID], nil
}

type stubMatchupRepo struct {
	matchups    []models.Matchup
	err         error
	gotPlayerID *string
}

func (s *stubMatchupRepo) ListByTournament(_ context.Context, _ string, playerID *string) ([]models.Matchup, error) {
	s.gotPlayerID = playerID
	if s.err != nil {
		return nil, s.err
	}
	return s.matchups, nil
}

type stubRankingRepo struct {
	entries []models.RankingEntry
	err     error
}

func (s *stubRankingRepo) ListByTournament(_ context.Context, _ string) ([]models.RankingEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

type stubSignupRepo struct {
	players []string
	err     error
}

func (s *stubSignupRepo) Create(_ context.Context, _ models.Signup) error { return s.err }
func (s *stubSignupRepo) Delete(_ context.Context, _, _ string) (int64, error) {
	return 0, s.err
}
func (s *stubSignupRepo) Exists(_ context.Context, _, _ string) (bool, error) {
	return false, s.err
}
func (s *stubSignupRepo) ListByTournament(_ context.Context, _ string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.players, nil
}

// countingResolver records how many batch calls a request issues.
type countingResolver struct {
	names map[string]string
	calls int
	err   error
}

func (r *countingResolver) ResolveNames(_ context.Context, ids []string) (map[string]string, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if name, ok := r.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newQueryService(
	tournaments *stubTournamentRepo,
	matchups *stubMatchupRepo,
	rankings *stubRankingRepo,
	signups *stubSignupRepo,
	resolver identity.Resolver,
) *TournamentService {
	if tournaments == nil {
		tournaments = &stubTournamentRepo{}
	}
	if matchups == nil {
		matchups = &stubMatchupRepo{}
	}
	if rankings == nil {
		rankings = &stubRankingRepo{}
	}
	if signups == nil {
		signups = &stubSignupRepo{}
	}
	if resolver == nil {
		resolver = &countingResolver{}
	}
	return NewTournamentService(tournaments, matchups, rankings, signups, resolver,
		Timeouts{Storage: time.Second, Identity: time.Second}, testLogger())
}

func sampleTournament(id string) models.Tournament {
	return models.Tournament{
		ID:          id,
		Name:        "Spring Open",
		StartDate:   time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 4, 3, 18, 0, 0, 0, time.UTC),
		PlayerLimit: 32,
		Phase:       models.PhaseUpcoming,
		Active:      true,
	}
}

func TestListByPhaseEmptyIsNotFound(t *testing.T) {
	phases := []models.TournamentPhase{
		models.PhaseUpcoming, models.PhaseOngoing, models.PhaseCompleted, models.PhaseAll,
	}
	for _, phase := range phases {
		t.Run(string(phase), func(t *testing.T) {
			svc := newQueryService(&stubTournamentRepo{byPhase: map[models.TournamentPhase][]models.Tournament{}}, nil, nil, nil, nil)

			_, err := svc.ListByPhase(context.Background(), phase)
			if !errors.Is(err, ErrNoTournaments) {
				t.Fatalf("expected ErrNoTournaments, got %v", err)
			}
		})
	}
}

func TestListByPhaseReturnsRawList(t *testing.T) {
	want := []models.Tournament{sampleTournament(testTournamentID)}
	svc := newQueryService(&stubTournamentRepo{
		byPhase: map[models.TournamentPhase][]models.Tournament{models.PhaseUpcoming: want},
	}, nil, nil, nil, nil)

	got, err := svc.ListByPhase(context.Background(), models.PhaseUpcoming)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != testTournamentID {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListByPhaseRejectsUnknownPhase(t *testing.T) {
	svc := newQueryService(nil, nil, nil, nil, nil)

	_, err := svc.ListByPhase(context.Background(), "finished")
	if !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("expected ErrInvalidPhase, got %v", err)
	}
}

func TestGetByIDValidatesUUIDFormat(t *testing.T) {
	svc := newQueryService(nil, nil, nil, nil, nil)

	_, err := svc.GetByID(context.Background(), "not-a-uuid")
	if !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newQueryService(&stubTournamentRepo{byID: map[string]*models.Tournament{}}, nil, nil, nil, nil)

	_, err := svc.GetByID(context.Background(), testTournamentID)
	if !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("expected ErrTournamentNotFound, got %v", err)
	}
}

func TestGetByIDFound(t *testing.T) {
	want := sampleTournament(testTournamentID)
	svc := newQueryService(&stubTournamentRepo{byID: map[string]*models.Tournament{testTournamentID: &want}}, nil, nil, nil, nil)

	got, err := svc.GetByID(context.Background(), testTournamentID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Spring Open" {
		t.Fatalf("unexpected tournament: %+v", got)
	}
}

func TestGetMatchupsSubstitutesAllNames(t *testing.T) {
	p3 := "p3"
	p4 := "p4"
	matchups := &stubMatchupRepo{matchups: []models.Matchup{
		{Player1: "p1", Player2: "p2", Winner: &p3, TournamentID: "t1", Round: 1},
		{Player1: "p3", Player2: "p4", Winner: &p4, TournamentID: "t1", Round: 2},
	}}
	resolver := &countingResolver{names: map[string]string{
		"p1": "Alice", "p2": "Bob", "p3": "Charlie", "p4": "Diana",
	}}
	svc := newQueryService(nil, matchups, nil, nil, resolver)

	views, err := svc.GetMatchups(context.Background(), "t1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 matchups, got %d", len(views))
	}

	first := views[0]
	if first.Player1Name != "Alice" || first.Player2Name != "Bob" || first.PlayerWonName != "Charlie" {
		t.Fatalf("names not substituted: %+v", first)
	}
	if first.TournamentID != "t1" || first.Round != 1 {
		t.Fatalf("tournamentID/roundNum not preserved: %+v", first)
	}
	second := views[1]
	if second.Player1Name != "Charlie" || second.Player2Name != "Diana" || second.PlayerWonName != "Diana" {
		t.Fatalf("names not substituted: %+v", second)
	}
}

func TestGetMatchupsBatchesIdentityResolution(t *testing.T) {
	winner := "p1"
	matchups := &stubMatchupRepo{matchups: []models.Matchup{
		{Player1: "p1", Player2: "p2", Winner: &winner, TournamentID: "t1", Round: 1},
		{Player1: "p3", Player2: "p4", TournamentID: "t1", Round: 1},
		{Player1: "p1", Player2: "p3", TournamentID: "t1", Round: 2},
	}}
	resolver := &countingResolver{names: map[string]string{"p1": "Alice"}}
	svc := newQueryService(nil, matchups, nil, nil, resolver)

	if _, err := svc.GetMatchups(context.Background(), "t1", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolver.calls != 1 {
		t.Fatalf("expected exactly 1 identity call, got %d", resolver.calls)
	}
}

func TestGetMatchupsUnknownFallback(t *testing.T) {
	matchups := &stubMatchupRepo{matchups: []models.Matchup{
		{Player1: "p1", Player2: "p2", TournamentID: "t1", Round: 1},
	}}
	// Resolver knows nobody: every field falls back to the literal.
	svc := newQueryService(nil, matchups, nil, nil, &countingResolver{})

	views, err := svc.GetMatchups(context.Background(), "t1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := views[0]
	if v.Player1Name != UnknownName || v.Player2Name != UnknownName {
		t.Fatalf("expected Unknown fallback, got %+v", v)
	}
	// Unplayed matchup: nil winner also resolves to the fallback label.
	if v.PlayerWonName != UnknownName {
		t.Fatalf("expected Unknown winner for unplayed matchup, got %q", v.PlayerWonName)
	}
}

func TestGetMatchupsEmptyIsNotFound(t *testing.T) {
	svc := newQueryService(nil, &stubMatchupRepo{}, nil, nil, nil)

	_, err := svc.GetMatchups(context.Background(), "t1", nil)
	if !errors.Is(err, ErrNoMatchups) {
		t.Fatalf("expected ErrNoMatchups, got %v", err)
	}
}

func TestGetMatchupsForwardsRequestingPlayer(t *testing.T) {
	matchups := &stubMatchupRepo{matchups: []models.Matchup{
		{Player1: "p1", Player2: "p2", TournamentID: "t1", Round: 1},
	}}
	svc := newQueryService(nil, matchups, nil, nil, nil)

	player := "p1"
	if _, err := svc.GetMatchups(context.Background(), "t1", &player); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matchups.gotPlayerID == nil || *matchups.gotPlayerID != "p1" {
		t.Fatalf("requesting player not forwarded: %v", matchups.gotPlayerID)
	}
}

func TestGetMatchupsResolverFailureFailsRequest(t *testing.T) {
	matchups := &stubMatchupRepo{matchups: []models.Matchup{
		{Player1: "p1", Player2: "p2", TournamentID: "t1", Round: 1},
	}}
	resolver := &countingResolver{err: identity.ErrUnavailable}
	svc := newQueryService(nil, matchups, nil, nil, resolver)

	_, err := svc.GetMatchups(context.Background(), "t1", nil)
	if !errors.Is(err, identity.ErrUnavailable) {
		t.Fatalf("expected identity.ErrUnavailable, got %v", err)
	}
}

func TestGetRankingTournamentMissing(t *testing.T) {
	svc := newQueryService(&stubTournamentRepo{byID: map[string]*models.Tournament{}}, nil, nil, nil, nil)

	_, err := svc.GetRanking(context.Background(), testTournamentID)
	if !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("expected ErrTournamentNotFound, got %v", err)
	}
}

func TestGetRankingEmptyIsNotFound(t *testing.T) {
	existing := sampleTournament(testTournamentID)
	svc := newQueryService(
		&stubTournamentRepo{byID: map[string]*models.Tournament{testTournamentID: &existing}},
		nil, &stubRankingRepo{}, nil, nil)

	_, err := svc.GetRanking(context.Background(), testTournamentID)
	if !errors.Is(err, ErrNoRanking) {
		t.Fatalf("expected ErrNoRanking, got %v", err)
	}
}

func TestGetRankingEnrichedAndOrdered(t *testing.T) {
	existing := sampleTournament(testTournamentID)
	rankings := &stubRankingRepo{entries: []models.RankingEntry{
		{PlayerID: "p1", Wins: 5, Rank: 1},
		{PlayerID: "p2", Wins: 3, Rank: 2},
		{PlayerID: "p3", Wins: 1, Rank: 3},
	}}
	resolver := &countingResolver{names: map[string]string{"p1": "Alice", "p2": "Bob"}}
	svc := newQueryService(
		&stubTournamentRepo{byID: map[string]*models.Tournament{testTournamentID: &existing}},
		nil, rankings, nil, resolver)

	views, err := svc.GetRanking(context.Background(), testTournamentID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(views))
	}
	if views[0].Name != "Alice" || views[0].WinCount != 5 || views[0].Rank != 1 {
		t.Fatalf("unexpected first entry: %+v", views[0])
	}
	if views[2].Name != UnknownName {
		t.Fatalf("expected Unknown for unmapped player, got %q", views[2].Name)
	}
	if resolver.calls != 1 {
		t.Fatalf("expected exactly 1 identity call, got %d", resolver.calls)
	}
	for i := 1; i < len(views); i++ {
		if views[i].Rank < views[i-1].Rank {
			t.Fatalf("ranking out of order: %+v", views)
		}
	}
}

func TestGetPlayerRank(t *testing.T) {
	existing := sampleTournament(testTournamentID)
	rankings := &stubRankingRepo{entries: []models.RankingEntry{
		{PlayerID: "p1", Wins: 4, Rank: 1},
		{PlayerID: "p2", Wins: 2, Rank: 2},
	}}
	resolver := &countingResolver{names: map[string]string{"p2": "Bob"}}
	svc := newQueryService(
		&stubTournamentRepo{byID: map[string]*models.Tournament{testTournamentID: &existing}},
		nil, rankings, nil, resolver)

	view, err := svc.GetPlayerRank(context.Background(), testTournamentID, "p2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Name != "Bob" || view.WinCount != 2 || view.Rank != 2 {
		t.Fatalf("unexpected view: %+v", view)
	}

	_, err = svc.GetPlayerRank(context.Background(), testTournamentID, "p9")
	if !errors.Is(err, ErrPlayerNotRanked) {
		t.Fatalf("expected ErrPlayerNotRanked, got %v", err)
	}
}

func TestGetPlayersEmptyIsSuccess(t *testing.T) {
	existing := sampleTournament(testTournamentID)
	resolver := &countingResolver{}
	svc := newQueryService(
		&stubTournamentRepo{byID: map[string]*models.Tournament{testTournamentID: &existing}},
		nil, nil, &stubSignupRepo{}, resolver)

	players, err := svc.GetPlayers(context.Background(), testTournamentID)
	if err != nil {
		t.Fatalf("expected success for zero signups, got %v", err)
	}
	if players == nil || len(players) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", players)
	}
	if resolver.calls != 0 {
		t.Fatalf("expected no identity call for zero players, got %d", resolver.calls)
	}
}

func TestGetPlayersEnriched(t *testing.T) {
	existing := sampleTournament(testTournamentID)
	resolver := &countingResolver{names: map[string]string{"p1": "Alice"}}
	svc := newQueryService(
		&stubTournamentRepo{byID: map[string]*models.Tournament{testTournamentID: &existing}},
		nil, nil, &stubSignupRepo{players: []string{"p1", "p2"}}, resolver)

	players, err := svc.GetPlayers(context.Background(), testTournamentID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}
	if players[0].PlayerID != "p1" || players[0].Name != "Alice" {
		t.Fatalf("unexpected first player: %+v", players[0])
	}
	if players[1].Name != UnknownName {
		t.Fatalf("expected Unknown for unmapped player, got %q", players[1].Name)
	}
	if resolver.calls != 1 {
		t.Fatalf("expected exactly 1 identity call, got %d", resolver.calls)
	}
}

func TestGetPlayersTournamentMissing(t *testing.T) {
	svc := newQueryService(&stubTournamentRepo{byID: map[string]*models.Tournament{}}, nil, nil, nil, nil)

	_, err := svc.GetPlayers(context.Background(), testTournamentID)
	if !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("expected ErrTournamentNotFound, got %v", err)
	}
}

func TestGetPlayerHistory(t *testing.T) {
	repo := &stubTournamentRepo{history: map[string][]models.PlayerTournament{
		testPlayerID: {{TournamentID: "t1", Name: "Spring Open", Status: "completed"}},
	}}
	svc := newQueryService(repo, nil, nil, nil, nil)

	history, err := svc.GetPlayerHistory(context.Background(), testPlayerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 1 || history[0].TournamentID != "t1" {
		t.Fatalf("unexpected history: %+v", history)
	}

	_, err = svc.GetPlayerHistory(context.Background(), testTournamentID)
	if !errors.Is(err, ErrNoPlayerHistory) {
		t.Fatalf("expected ErrNoPlayerHistory, got %v", err)
	}

	_, err = svc.GetPlayerHistory(context.Background(), "not-a-uuid")
	if !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}
