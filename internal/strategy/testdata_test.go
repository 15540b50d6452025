package strategy

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// fakeStatStore serves profiles from maps keyed by team.
type fakeStatStore struct {
	quarterbacks map[string]*models.StatProfile
	defenses     map[string]*models.StatProfile
	teams        []*models.StatProfile
}

func (f *fakeStatStore) QuarterbackProfile(_ context.Context, team string, _, _ int) (*models.StatProfile, error) {
	p, ok := f.quarterbacks[team]
	if !ok {
		return nil, models.ErrMissingSubjectData
	}
	return p, nil
}

func (f *fakeStatStore) DefenseProfile(_ context.Context, team string, _, _ int) (*models.StatProfile, error) {
	p, ok := f.defenses[team]
	if !ok {
		return nil, models.ErrMissingSubjectData
	}
	return p, nil
}

func (f *fakeStatStore) TeamProfiles(_ context.Context, _, _ int) ([]*models.StatProfile, error) {
	return f.teams, nil
}

// fakeOddsStore serves quotes keyed by subject.
type fakeOddsStore struct {
	quotes map[string][]*models.OddsQuote
}

func (f *fakeOddsStore) QuotesForSubject(_ context.Context, subject string, _, _ int) ([]*models.OddsQuote, error) {
	return f.quotes[subject], nil
}

// fakeMatchupStore serves a fixed schedule.
type fakeMatchupStore struct {
	games []*models.Matchup
}

func (f *fakeMatchupStore) WeekMatchups(_ context.Context, _, _ int) ([]*models.Matchup, error) {
	return f.games, nil
}

// fakeSignalStore serves secondary signals with explicit availability.
type fakeSignalStore struct {
	redZoneRates map[string]float64
	ratings      map[string]string
}

func (f *fakeSignalStore) RedZoneRate(_ context.Context, subject string, _, _ int) (float64, bool, error) {
	rate, ok := f.redZoneRates[subject]
	return rate, ok, nil
}

func (f *fakeSignalStore) DefenseRating(_ context.Context, team string, _ int) (string, bool, error) {
	rating, ok := f.ratings[team]
	return rating, ok, nil
}

func mustProfile(subject string, games int, metrics map[string]float64) *models.StatProfile {
	p, err := models.NewStatProfile(subject, 2025, 10, games, metrics)
	if err != nil {
		panic(err)
	}
	return p
}

func mustQuote(subject string, line float64, americanOdds int, book string) *models.OddsQuote {
	q, err := models.NewOddsQuote(subject, line, americanOdds, book, time.Date(2025, 11, 9, 12, 0, 0, 0, time.UTC))
	if err != nil {
		panic(err)
	}
	return q
}

// propFixture wires one game where the home quarterback has a clear edge:
// 1.2 pass TDs/game against a defense allowing 1.0/game priced at -150.
// Baseline: raw 0.6*1.2+0.4*1.0 = 1.12 -> 0.672 (away side of the bump not
// applied to the away QB fixture below), edge vs 0.60 implied = 12.0%.
func propFixture() (*fakeStatStore, *fakeOddsStore, *fakeMatchupStore) {
	stats := &fakeStatStore{
		quarterbacks: map[string]*models.StatProfile{
			"SEA": mustProfile("QB Alpha", 10, map[string]float64{"passing_touchdowns": 12}),
		},
		defenses: map[string]*models.StatProfile{
			"ARI": mustProfile("ARI", 10, map[string]float64{"passing_touchdowns_allowed_per_game": 1.0}),
		},
	}
	oddsStore := &fakeOddsStore{
		quotes: map[string][]*models.OddsQuote{
			"QB Alpha": {mustQuote("QB Alpha", 0.5, -150, "draftkings")},
		},
	}
	matchups := &fakeMatchupStore{
		games: []*models.Matchup{
			// QB Alpha plays away so no home bump muddies the arithmetic.
			{HomeTeam: "ARI", AwayTeam: "SEA", Week: 10, Season: 2025},
		},
	}
	return stats, oddsStore, matchups
}

// stubCalculator is a canned Calculator for aggregator tests.
type stubCalculator struct {
	name    string
	records []models.EdgeRecord
	err     error
}

func (s *stubCalculator) Name() string { return s.name }

func (s *stubCalculator) CalculateEdges(_ context.Context, _, _ int, _ float64) ([]models.EdgeRecord, error) {
	if s.err != nil {
		return nil, fmt.Errorf("stub: %w", s.err)
	}
	return s.records, nil
}
