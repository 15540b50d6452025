package strategy

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/gridiron-edge/internal/models"
)

func record(strategy string, edgePct float64) models.EdgeRecord {
	return models.EdgeRecord{
		Matchup:    "DAL @ PHI",
		Strategy:   strategy,
		EdgePct:    edgePct,
		Confidence: "MEDIUM",
	}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestGetAllEdgesSortsDescending(t *testing.T) {
	agg := NewAggregator([]Calculator{
		&stubCalculator{name: "alpha", records: []models.EdgeRecord{record("alpha", 6), record("alpha", 22)}},
		&stubCalculator{name: "beta", records: []models.EdgeRecord{record("beta", 13)}},
	}, quietLogger())

	records, failures := agg.GetAllEdges(context.Background(), 10, 2025, 0, nil)

	require.Empty(t, failures)
	require.Len(t, records, 3)
	for i := 1; i < len(records); i++ {
		assert.GreaterOrEqual(t, records[i-1].EdgePct, records[i].EdgePct)
	}
	assert.Equal(t, 22.0, records[0].EdgePct)
}

func TestGetAllEdgesStableOnTies(t *testing.T) {
	agg := NewAggregator([]Calculator{
		&stubCalculator{name: "alpha", records: []models.EdgeRecord{record("alpha", 10)}},
		&stubCalculator{name: "beta", records: []models.EdgeRecord{record("beta", 10)}},
	}, quietLogger())

	records, _ := agg.GetAllEdges(context.Background(), 10, 2025, 0, nil)

	require.Len(t, records, 2)
	// Ties keep encounter order: alpha ran first.
	assert.Equal(t, "alpha", records[0].Strategy)
	assert.Equal(t, "beta", records[1].Strategy)
}

func TestGetAllEdgesIsolatesFailures(t *testing.T) {
	boom := errors.New("feed unavailable")
	agg := NewAggregator([]Calculator{
		&stubCalculator{name: "alpha", records: []models.EdgeRecord{record("alpha", 8)}},
		&stubCalculator{name: "broken", err: boom},
		&stubCalculator{name: "gamma", records: []models.EdgeRecord{record("gamma", 12)}},
	}, quietLogger())

	records, failures := agg.GetAllEdges(context.Background(), 10, 2025, 0, nil)

	require.Len(t, records, 2)
	for _, rec := range records {
		assert.NotEqual(t, "broken", rec.Strategy)
	}
	require.Len(t, failures, 1)
	assert.Equal(t, "broken", failures[0].Strategy)
	assert.ErrorIs(t, failures[0], boom)
}

func TestGetAllEdgesAppliesMinEdge(t *testing.T) {
	agg := NewAggregator([]Calculator{
		&stubCalculator{name: "alpha", records: []models.EdgeRecord{record("alpha", 3), record("alpha", 9)}},
	}, quietLogger())

	records, _ := agg.GetAllEdges(context.Background(), 10, 2025, 5, nil)

	require.Len(t, records, 1)
	assert.Equal(t, 9.0, records[0].EdgePct)
}

func TestGetAllEdgesStrategyFilter(t *testing.T) {
	agg := NewAggregator([]Calculator{
		&stubCalculator{name: "alpha", records: []models.EdgeRecord{record("alpha", 8)}},
		&stubCalculator{name: "beta", records: []models.EdgeRecord{record("beta", 12)}},
	}, quietLogger())

	records, _ := agg.GetAllEdges(context.Background(), 10, 2025, 0, []string{"beta"})

	require.Len(t, records, 1)
	assert.Equal(t, "beta", records[0].Strategy)
}

func TestGetEdgeCountsMatchesGetAllEdges(t *testing.T) {
	agg := NewAggregator([]Calculator{
		&stubCalculator{name: "alpha", records: []models.EdgeRecord{record("alpha", 3), record("alpha", 9)}},
		&stubCalculator{name: "beta", records: []models.EdgeRecord{record("beta", 1)}},
	}, quietLogger())

	counts := agg.GetEdgeCounts(context.Background(), 10, 2025)
	records, _ := agg.GetAllEdges(context.Background(), 10, 2025, 0, nil)

	assert.Equal(t, 2, counts["alpha"])
	assert.Equal(t, 1, counts["beta"])
	assert.Equal(t, len(records), counts["total"])
}
