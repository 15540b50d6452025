package strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/gridiron-edge/internal/models"
)

func leagueFixture() *fakeStatStore {
	teams := []struct {
		name    string
		ppg     float64
		allowed float64
	}{
		{name: "AAA", ppg: 30, allowed: 24},
		{name: "BBB", ppg: 28, allowed: 25},
		{name: "CCC", ppg: 26, allowed: 22},
		{name: "DDD", ppg: 24, allowed: 23},
		{name: "EEE", ppg: 22, allowed: 21},
		{name: "FFF", ppg: 20, allowed: 20},
		{name: "GGG", ppg: 14, allowed: 15},
		{name: "HHH", ppg: 12, allowed: 16},
	}
	store := &fakeStatStore{}
	for _, tm := range teams {
		store.teams = append(store.teams, mustProfile(tm.name, 10, map[string]float64{
			metricPointsPerGame:        tm.ppg,
			metricPointsAllowedPerGame: tm.allowed,
		}))
	}
	return store
}

func TestRankingCalculatorQualifyingMatchup(t *testing.T) {
	stats := leagueFixture()
	matchups := &fakeMatchupStore{games: []*models.Matchup{
		{HomeTeam: "GGG", AwayTeam: "HHH", Week: 10, Season: 2025},
		{HomeTeam: "AAA", AwayTeam: "BBB", Week: 10, Season: 2025},
	}}
	calc := NewRankingCalculator(stats, matchups, RankingConfig{BottomOffenseCount: 2, TopDefenseCount: 3})

	records, err := calc.CalculateEdges(context.Background(), 10, 2025, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "HHH @ GGG", rec.Matchup)
	assert.Equal(t, "weak_offense_strong_defense", rec.Strategy)
	// Offense ranks 7 and 8, defense ranks 1 and 2 in an 8-team league:
	// (7.5 - 4) + (4 - 1.5) = 6.0
	assert.InDelta(t, 6.0, rec.EdgePct, 0.0001)
	assert.Equal(t, "LOW", rec.Confidence)
	assert.Contains(t, rec.Reasoning, "Offense ranks")
	assert.Equal(t, 7, rec.Fields["home_offense_rank"])
	assert.Equal(t, 8, rec.Fields["away_offense_rank"])
}

func TestRankingCalculatorRespectsMinEdge(t *testing.T) {
	stats := leagueFixture()
	matchups := &fakeMatchupStore{games: []*models.Matchup{
		{HomeTeam: "GGG", AwayTeam: "HHH", Week: 10, Season: 2025},
	}}
	calc := NewRankingCalculator(stats, matchups, RankingConfig{BottomOffenseCount: 2, TopDefenseCount: 3})

	records, err := calc.CalculateEdges(context.Background(), 10, 2025, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRankingCalculatorSkipsUnrankedTeams(t *testing.T) {
	stats := leagueFixture()
	matchups := &fakeMatchupStore{games: []*models.Matchup{
		{HomeTeam: "GGG", AwayTeam: "ZZZ", Week: 10, Season: 2025}, // no stat row for ZZZ
	}}
	calc := NewRankingCalculator(stats, matchups, RankingConfig{BottomOffenseCount: 2, TopDefenseCount: 3})

	records, err := calc.CalculateEdges(context.Background(), 10, 2025, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRankingMinTieMethod(t *testing.T) {
	a := mustProfile("A", 10, map[string]float64{metricPointsPerGame: 20})
	b := mustProfile("B", 10, map[string]float64{metricPointsPerGame: 20})
	c := mustProfile("C", 10, map[string]float64{metricPointsPerGame: 25})

	ranks := rankDescending([]*models.StatProfile{a, b, c}, metricPointsPerGame)

	assert.Equal(t, 1, ranks["C"])
	// Tied teams share the lower rank number.
	assert.Equal(t, 2, ranks["A"])
	assert.Equal(t, 2, ranks["B"])
}

func TestRankConfidenceTiers(t *testing.T) {
	assert.Equal(t, models.ConfidenceHigh, rankConfidence(15))
	assert.Equal(t, models.ConfidenceMedium, rankConfidence(10))
	assert.Equal(t, models.ConfidenceMedium, rankConfidence(14.9))
	assert.Equal(t, models.ConfidenceLow, rankConfidence(9.9))
}
