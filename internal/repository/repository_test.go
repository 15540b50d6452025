package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// These tests run against a real database and skip when none is reachable.

func TestNewRepositoriesNilDB(t *testing.T) {
	_, err := NewRepositories(nil)
	assert.Error(t, err)
}

func TestStatRepositoryRoundTrip(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := NewRepositories(db)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	profile, err := models.NewStatProfile("BUF", 2025, 3, 3, map[string]float64{
		"points_per_game":     27.5,
		"passing_td_per_game": 2.1,
	})
	require.NoError(t, err)

	err = repos.Stats.UpsertTeamProfile(ctx, profile, "offense", 3)
	require.NoError(t, err)

	teams, err := repos.Stats.TeamProfiles(ctx, 3, 2025)
	require.NoError(t, err)

	var found *models.StatProfile
	for _, p := range teams {
		if p.Subject == "BUF" {
			found = p
		}
	}
	require.NotNil(t, found, "upserted profile should be returned")
	assert.Equal(t, 3, found.GamesPlayed)
	assert.InDelta(t, 27.5, found.MetricOr("points_per_game", 0), 1e-9)
}

func TestPredictionLogRepositoryLifecycle(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := NewRepositories(db)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	predictedAt := time.Now().UTC().Truncate(time.Microsecond)
	entry := &models.PredictionLogEntry{
		ID:                   models.NewPredictionID("Josh Allen", 3, 2025, predictedAt),
		Subject:              "Josh Allen",
		Week:                 3,
		Season:               2025,
		PredictedProbability: 0.62,
		AmericanOdds:         -140,
		ModelVersion:         models.ModelBaseline,
		Strategy:             "qb_td_props",
		Confidence:           models.ConfidenceMedium,
		PredictedAt:          predictedAt,
	}

	require.NoError(t, repos.PredictionLog.Append(ctx, entry))

	// Replaying the same id must be rejected, not silently duplicated.
	err = repos.PredictionLog.Append(ctx, entry)
	assert.ErrorIs(t, err, models.ErrDuplicateKey)

	updated, err := repos.PredictionLog.SetOutcome(ctx, entry.ID, true, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, updated)

	completed, err := repos.PredictionLog.CompletedSince(ctx, predictedAt.Add(-time.Minute))
	require.NoError(t, err)

	var got *models.PredictionLogEntry
	for _, e := range completed {
		if e.ID == entry.ID {
			got = e
		}
	}
	require.NotNil(t, got)
	require.NotNil(t, got.Outcome)
	assert.True(t, *got.Outcome)
	assert.Equal(t, models.ModelBaseline, got.ModelVersion)
}

func TestSetOutcomeUnknownID(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := NewRepositories(db)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	updated, err := repos.PredictionLog.SetOutcome(ctx, models.NewPredictionID("nobody", 1, 2025, time.Now()), false, time.Now())
	require.NoError(t, err)
	assert.False(t, updated)
}
