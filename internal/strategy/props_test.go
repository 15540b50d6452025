package strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/gridiron-edge/internal/models"
)

func TestTDPropCalculatorFindsEdge(t *testing.T) {
	stats, oddsStore, matchups := propFixture()
	calc := NewTDPropCalculator(stats, oddsStore, matchups, PropConfig{Bankroll: 1000}, nil)

	records, err := calc.CalculateEdges(context.Background(), 10, 2025, 5)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "qb_td_props", rec.Strategy)
	assert.Equal(t, "SEA @ ARI", rec.Matchup)
	assert.InDelta(t, 12.0, rec.EdgePct, 0.01)
	assert.Equal(t, "MEDIUM", rec.Confidence)
	assert.Equal(t, "QB Alpha", rec.Fields["subject"])
	assert.Equal(t, -150, rec.Fields["american_odds"])
	assert.InDelta(t, 0.60, rec.Fields["implied_probability"].(float64), 0.0001)
	assert.InDelta(t, 0.672, rec.Fields["true_probability"].(float64), 0.0001)
	assert.Equal(t, string(models.TierGoodEdge), rec.Fields["tier"])
	assert.Contains(t, rec.Reasoning, "QB Alpha averages 1.20")
	assert.Contains(t, rec.Reasoning, "12.0% edge")
}

func TestTDPropCalculatorFiltersByThreshold(t *testing.T) {
	stats, oddsStore, matchups := propFixture()
	calc := NewTDPropCalculator(stats, oddsStore, matchups, PropConfig{Bankroll: 1000}, nil)

	records, err := calc.CalculateEdges(context.Background(), 10, 2025, 20)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestTDPropCalculatorSkipsTeamsWithoutQuarterback(t *testing.T) {
	stats, oddsStore, matchups := propFixture()
	// ARI has no quarterback row in the fixture; only SEA's side can emit.
	calc := NewTDPropCalculator(stats, oddsStore, matchups, PropConfig{Bankroll: 1000}, nil)

	records, err := calc.CalculateEdges(context.Background(), 10, 2025, 0)
	require.NoError(t, err)
	for _, rec := range records {
		assert.Equal(t, "QB Alpha", rec.Fields["subject"])
	}
}

func TestTDPropCalculatorRoutesEnhancedModel(t *testing.T) {
	stats, oddsStore, matchups := propFixture()
	// Two league profiles averaging 0.5 TDs per game. QB Alpha's 1.2 rate is
	// well above that, so the v2 logistic curve prices the prop far higher
	// than the v1 ratio does.
	stats.teams = []*models.StatProfile{
		mustProfile("SEA", 10, map[string]float64{"passing_touchdowns": 4}),
		mustProfile("ARI", 10, map[string]float64{"passing_touchdowns": 6}),
	}
	calc := NewTDPropCalculator(stats, oddsStore, matchups,
		PropConfig{Bankroll: 1000, ModelVersion: models.ModelEnhanced}, nil)

	records, err := calc.CalculateEdges(context.Background(), 10, 2025, 5)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "qb_td_props", rec.Strategy)
	assert.Equal(t, models.ModelEnhanced.String(), rec.Fields["model_version"])
	// composite = 0.6*(1.2/0.5) + 0.4*(1.0/0.5) = 2.24, logistic at 2.24.
	assert.InDelta(t, 0.9227, rec.Fields["true_probability"].(float64), 0.001)
}

func TestLeagueAverageSkipsTeamsWithoutRate(t *testing.T) {
	stats, oddsStore, matchups := propFixture()
	stats.teams = []*models.StatProfile{
		mustProfile("SEA", 10, map[string]float64{"passing_touchdowns": 4}),
		mustProfile("ARI", 10, map[string]float64{"passing_touchdowns": 6}),
		mustProfile("NYJ", 10, map[string]float64{"rushing_touchdowns": 9}),
	}
	calc := NewTDPropCalculator(stats, oddsStore, matchups,
		PropConfig{Bankroll: 1000, ModelVersion: models.ModelEnhanced}, nil)

	// NYJ has no passing rate and must not drag the mean toward zero.
	assert.InDelta(t, 0.5, calc.leagueAverage(context.Background(), 10, 2025), 0.0001)
}

func TestEnhancedAppliesMultipliers(t *testing.T) {
	stats, oddsStore, matchups := propFixture()
	baseline := NewTDPropCalculator(stats, oddsStore, matchups, PropConfig{Bankroll: 1000}, nil)
	signals := &fakeSignalStore{
		redZoneRates: map[string]float64{"QB Alpha": 0.20},
		ratings:      map[string]string{"ARI": "weak"},
	}
	calc := NewEnhancedTDPropCalculator(baseline, signals)

	records, err := calc.CalculateEdges(context.Background(), 10, 2025, 5)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "qb_td_props_enhanced", rec.Strategy)
	// 12.0% base edge x 1.15 (hot red zone) x 1.10 (weak defense) = 15.18%
	assert.InDelta(t, 15.18, rec.EdgePct, 0.01)
	assert.Equal(t, models.ModelEnhanced.String(), rec.Fields["model_version"])
	assert.InDelta(t, 12.0, rec.Fields["base_edge_pct"].(float64), 0.01)
	assert.Contains(t, rec.Reasoning, "red-zone rate 0.20 hot")
	assert.Contains(t, rec.Reasoning, "weak pass defense")
}

func TestEnhancedLimitedDataFallback(t *testing.T) {
	stats, oddsStore, matchups := propFixture()
	baseline := NewTDPropCalculator(stats, oddsStore, matchups, PropConfig{Bankroll: 1000}, nil)
	calc := NewEnhancedTDPropCalculator(baseline, &fakeSignalStore{})

	baseRecords, err := baseline.CalculateEdges(context.Background(), 10, 2025, 5)
	require.NoError(t, err)
	require.Len(t, baseRecords, 1)

	records, err := calc.CalculateEdges(context.Background(), 10, 2025, 5)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	// The baseline edge is re-emitted unchanged under the limited-data label.
	assert.Equal(t, "qb_td_props_limited", rec.Strategy)
	assert.Equal(t, baseRecords[0].EdgePct, rec.EdgePct)
	assert.Equal(t, models.ModelEnhancedLimited.String(), rec.Fields["model_version"])
}

func TestEnhancedRefiltersAdjustedEdges(t *testing.T) {
	stats, oddsStore, matchups := propFixture()
	baseline := NewTDPropCalculator(stats, oddsStore, matchups, PropConfig{Bankroll: 1000}, nil)
	signals := &fakeSignalStore{
		redZoneRates: map[string]float64{"QB Alpha": 0.04}, // cold: x0.92
		ratings:      map[string]string{"ARI": "strong"},   // x0.88
	}
	calc := NewEnhancedTDPropCalculator(baseline, signals)

	// Base edge 12.0% adjusts to 12.0 x 0.92 x 0.88 = 9.71%, below the 10%
	// floor, so the enhanced output drops it even though the baseline kept it.
	baseRecords, err := baseline.CalculateEdges(context.Background(), 10, 2025, 10)
	require.NoError(t, err)
	assert.Len(t, baseRecords, 1)

	records, err := calc.CalculateEdges(context.Background(), 10, 2025, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestEnhancedPartialSignalsStillAdjust(t *testing.T) {
	stats, oddsStore, matchups := propFixture()
	baseline := NewTDPropCalculator(stats, oddsStore, matchups, PropConfig{Bankroll: 1000}, nil)
	signals := &fakeSignalStore{
		redZoneRates: map[string]float64{"QB Alpha": 0.12}, // warm: x1.08
	}
	calc := NewEnhancedTDPropCalculator(baseline, signals)

	records, err := calc.CalculateEdges(context.Background(), 10, 2025, 5)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "qb_td_props_enhanced", rec.Strategy)
	assert.InDelta(t, 12.0*1.08, rec.EdgePct, 0.01)
}
