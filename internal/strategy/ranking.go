package strategy

import (
	"context"
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// Metric names the ranking calculator reads off team profiles.
const (
	metricPointsPerGame        = "points_per_game"
	metricPointsAllowedPerGame = "points_allowed_per_game"
)

// RankingConfig tunes the low-scoring-game strategy.
type RankingConfig struct {
	// BottomOffenseCount: both offenses must rank in the bottom N league-wide.
	BottomOffenseCount int
	// TopDefenseCount: both defenses must rank in the top N league-wide.
	TopDefenseCount int
}

// DefaultRankingConfig mirrors the production thresholds: bottom 8 offenses,
// top 12 defenses, of a 32-team league.
func DefaultRankingConfig() RankingConfig {
	return RankingConfig{
		BottomOffenseCount: 8,
		TopDefenseCount:    12,
	}
}

// RankingCalculator finds matchups where two weak offenses meet two strong
// defenses and flags the game total as an under candidate. Its edge score is
// a rank-extremity heuristic, not an odds-derived percentage; the aggregator
// ranks it on the same edge_pct axis as the odds-based strategies by
// product decision.
type RankingCalculator struct {
	stats    StatStore
	matchups MatchupStore
	cfg      RankingConfig
}

// NewRankingCalculator creates the ranking-based calculator.
func NewRankingCalculator(stats StatStore, matchups MatchupStore, cfg RankingConfig) *RankingCalculator {
	if cfg.BottomOffenseCount <= 0 {
		cfg.BottomOffenseCount = 8
	}
	if cfg.TopDefenseCount <= 0 {
		cfg.TopDefenseCount = 12
	}
	return &RankingCalculator{stats: stats, matchups: matchups, cfg: cfg}
}

// Name returns the strategy name.
func (c *RankingCalculator) Name() string {
	return NameRanking
}

// CalculateEdges ranks every team on offense and defense and emits an edge
// record for each matchup where both sides qualify.
func (c *RankingCalculator) CalculateEdges(ctx context.Context, week, season int, minEdgePct float64) ([]models.EdgeRecord, error) {
	teams, err := c.stats.TeamProfiles(ctx, week, season)
	if err != nil {
		return nil, fmt.Errorf("loading team profiles: %w", err)
	}
	if len(teams) == 0 {
		return nil, models.ErrMissingSubjectData
	}

	games, err := c.matchups.WeekMatchups(ctx, week, season)
	if err != nil {
		return nil, fmt.Errorf("loading week %d matchups: %w", week, err)
	}

	offenseRanks := rankDescending(teams, metricPointsPerGame)
	defenseRanks := rankAscending(teams, metricPointsAllowedPerGame)
	teamCount := len(teams)

	var records []models.EdgeRecord
	for _, game := range games {
		homeOff, awayOff := offenseRanks[game.HomeTeam], offenseRanks[game.AwayTeam]
		homeDef, awayDef := defenseRanks[game.HomeTeam], defenseRanks[game.AwayTeam]
		if homeOff == 0 || awayOff == 0 || homeDef == 0 || awayDef == 0 {
			// A team with no stat row cannot qualify; skip rather than abort.
			continue
		}

		worstAllowedOffense := teamCount - c.cfg.BottomOffenseCount + 1
		if homeOff < worstAllowedOffense || awayOff < worstAllowedOffense {
			continue
		}
		if homeDef > c.cfg.TopDefenseCount || awayDef > c.cfg.TopDefenseCount {
			continue
		}

		avgOff := float64(homeOff+awayOff) / 2.0
		avgDef := float64(homeDef+awayDef) / 2.0
		edgePct := rankEdgeScore(avgOff, avgDef, teamCount)
		if edgePct < minEdgePct {
			continue
		}

		records = append(records, models.EdgeRecord{
			Matchup:        game.Label(),
			Strategy:       c.Name(),
			Line:           "1H Under",
			Recommendation: fmt.Sprintf("Bet the first-half under in %s", game.Label()),
			EdgePct:        edgePct,
			Confidence:     rankConfidence(edgePct).Upper(),
			Reasoning: fmt.Sprintf(
				"Offense ranks %d/%d and %d/%d (both bottom %d); defense ranks %d and %d (both top %d); avg offense rank %.1f, avg defense rank %.1f",
				homeOff, teamCount, awayOff, teamCount, c.cfg.BottomOffenseCount,
				homeDef, awayDef, c.cfg.TopDefenseCount, avgOff, avgDef,
			),
			Fields: map[string]any{
				"home_offense_rank": homeOff,
				"away_offense_rank": awayOff,
				"home_defense_rank": homeDef,
				"away_defense_rank": awayDef,
			},
		})
	}

	return records, nil
}

// rankEdgeScore is a linear combination of how far beyond mid-pack the
// average offense and defense ranks sit. Larger means a more extreme
// pairing.
func rankEdgeScore(avgOffenseRank, avgDefenseRank float64, teamCount int) float64 {
	mid := float64(teamCount) / 2.0
	return (avgOffenseRank - mid) + (mid - avgDefenseRank)
}

func rankConfidence(edgePct float64) models.Confidence {
	switch {
	case edgePct >= 15:
		return models.ConfidenceHigh
	case edgePct >= 10:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// rankDescending assigns ordinal ranks with higher metric values ranked
// first. Ties share the lower rank number (min method).
func rankDescending(teams []*models.StatProfile, metric string) map[string]int {
	ranks := make(map[string]int, len(teams))
	for _, team := range teams {
		v := team.MetricOr(metric, 0)
		rank := 1
		for _, other := range teams {
			if other.MetricOr(metric, 0) > v {
				rank++
			}
		}
		ranks[team.Subject] = rank
	}
	return ranks
}

// rankAscending assigns ordinal ranks with lower metric values ranked first,
// min tie method.
func rankAscending(teams []*models.StatProfile, metric string) map[string]int {
	ranks := make(map[string]int, len(teams))
	for _, team := range teams {
		v := team.MetricOr(metric, 0)
		rank := 1
		for _, other := range teams {
			if other.MetricOr(metric, 0) < v {
				rank++
			}
		}
		ranks[team.Subject] = rank
	}
	return ranks
}
