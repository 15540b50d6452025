package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/repository"
)

func testFeedConfig(statsURL, oddsURL string) *config.FeedConfig {
	return &config.FeedConfig{
		StatsURL:          statsURL,
		OddsURL:           oddsURL,
		APIKey:            "test-key",
		TimeoutSeconds:    5,
		RetryAttempts:     0,
		RequestsPerSecond: 100,
		FailureThreshold:  3,
		RecoverySeconds:   1,
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestFetchOdds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "10", r.URL.Query().Get("week"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"quotes":[
			{"subject":"Josh Allen","market_line":1.5,"american_odds":-150,"sportsbook":"draftkings","observed_at":"2025-11-09T12:00:00Z"},
			{"subject":"Broken Entry","market_line":1.5,"american_odds":0,"sportsbook":"fanduel","observed_at":"2025-11-09T12:00:00Z"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(testFeedConfig(server.URL, server.URL), quietLogger())
	defer client.Close()

	quotes, err := client.FetchOdds(context.Background(), 10, 2025)
	require.NoError(t, err)

	// The zero-odds entry is dropped rather than failing the batch
	require.Len(t, quotes, 1)
	assert.Equal(t, "Josh Allen", quotes[0].Subject)
	assert.Equal(t, -150, quotes[0].AmericanOdds)
}

func TestFetchTeamStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"teams":[
			{"team":"BUF","unit":"offense","season":2025,"week":10,"games_played":9,"metrics":{"points_per_game":28.5}}
		]}`))
	}))
	defer server.Close()

	client := NewClient(testFeedConfig(server.URL, server.URL), quietLogger())
	defer client.Close()

	teams, err := client.FetchTeamStats(context.Background(), 10, 2025)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "BUF", teams[0].Team)
	assert.Equal(t, 28.5, teams[0].Metrics["points_per_game"])
}

func TestFetchOddsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(testFeedConfig(server.URL, server.URL), quietLogger())
	defer client.Close()

	_, err := client.FetchOdds(context.Background(), 10, 2025)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

type capturingOddsRepo struct {
	batches [][]*models.OddsQuote
}

func (r *capturingOddsRepo) QuotesForSubject(_ context.Context, _ string, _, _ int) ([]*models.OddsQuote, error) {
	return nil, nil
}

func (r *capturingOddsRepo) InsertBatch(_ context.Context, _, _ int, quotes []*models.OddsQuote) error {
	r.batches = append(r.batches, quotes)
	return nil
}

type capturingMatchupRepo struct {
	matchups []*models.Matchup
}

func (r *capturingMatchupRepo) WeekMatchups(_ context.Context, _, _ int) ([]*models.Matchup, error) {
	return r.matchups, nil
}

func (r *capturingMatchupRepo) Upsert(_ context.Context, m *models.Matchup) error {
	r.matchups = append(r.matchups, m)
	return nil
}

type capturingStatRepo struct {
	teamUpserts   int
	playerUpserts int
}

func (r *capturingStatRepo) QuarterbackProfile(_ context.Context, _ string, _, _ int) (*models.StatProfile, error) {
	return nil, models.ErrNotFound
}

func (r *capturingStatRepo) DefenseProfile(_ context.Context, _ string, _, _ int) (*models.StatProfile, error) {
	return nil, models.ErrNotFound
}

func (r *capturingStatRepo) TeamProfiles(_ context.Context, _, _ int) ([]*models.StatProfile, error) {
	return nil, nil
}

func (r *capturingStatRepo) UpsertTeamProfile(_ context.Context, _ *models.StatProfile, _ string, _ int) error {
	r.teamUpserts++
	return nil
}

func (r *capturingStatRepo) UpsertPlayerProfile(_ context.Context, _ *models.StatProfile, _, _ string, _ int) error {
	r.playerUpserts++
	return nil
}

func TestIngesterSyncWeek(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/teams":
			_, _ = w.Write([]byte(`{"teams":[{"team":"BUF","unit":"offense","season":2025,"week":10,"games_played":9,"metrics":{"points_per_game":28.5}}]}`))
		case "/players":
			_, _ = w.Write([]byte(`{"players":[{"name":"Josh Allen","team":"BUF","position":"QB","season":2025,"week":10,"games_played":9,"metrics":{"passing_touchdowns":21}}]}`))
		case "/schedule":
			_, _ = w.Write([]byte(`{"games":[{"home_team":"BUF","away_team":"MIA","week":10,"season":2025,"is_division_game":true,"is_prime_time":false}]}`))
		case "/quotes":
			_, _ = w.Write([]byte(`{"quotes":[{"subject":"Josh Allen","market_line":1.5,"american_odds":-150,"sportsbook":"draftkings","observed_at":"2025-11-09T12:00:00Z"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(testFeedConfig(server.URL, server.URL), quietLogger())
	defer client.Close()

	stats := &capturingStatRepo{}
	odds := &capturingOddsRepo{}
	matchups := &capturingMatchupRepo{}
	repos := &repository.Repositories{Stats: stats, Odds: odds, Matchups: matchups}

	ingester := NewIngester(client, repos, quietLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := ingester.SyncWeek(ctx, 10, 2025)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.teamUpserts)
	assert.Equal(t, 1, stats.playerUpserts)
	require.Len(t, matchups.matchups, 1)
	assert.Equal(t, "MIA @ BUF", matchups.matchups[0].Label())
	require.Len(t, odds.batches, 1)
	require.Len(t, odds.batches[0], 1)
}
