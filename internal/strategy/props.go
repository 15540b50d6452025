package strategy

import (
	"context"
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/cache"
	"github.com/yourusername/gridiron-edge/internal/edge"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/odds"
	"github.com/yourusername/gridiron-edge/internal/probability"
)

// PropConfig tunes the QB touchdown prop calculators.
type PropConfig struct {
	// Bankroll used for stake recommendations in the emitted records.
	Bankroll float64
	// MaxBankrollFraction caps the Kelly stake; zero means the default.
	MaxBankrollFraction float64
	// ModelVersion selects the probability model generation. The zero value
	// is the baseline model.
	ModelVersion models.ModelVersion
}

// TDPropCalculator is the baseline (v1) QB touchdown prop strategy: for each
// game, estimate the starting quarterback's probability of throwing a
// touchdown with the baseline model and compare it against every book's
// quote.
type TDPropCalculator struct {
	stats       StatStore
	oddsStore   OddsStore
	matchups    MatchupStore
	detector    *edge.Detector
	recommender *edge.Recommender
	cfg         PropConfig
	modelCfg    probability.Config
	reasonCache *cache.ExplanationCache
}

// NewTDPropCalculator creates the baseline prop calculator. The explanation
// cache is optional.
func NewTDPropCalculator(stats StatStore, oddsStore OddsStore, matchups MatchupStore, cfg PropConfig, reasonCache *cache.ExplanationCache) *TDPropCalculator {
	return &TDPropCalculator{
		stats:       stats,
		oddsStore:   oddsStore,
		matchups:    matchups,
		detector:    edge.NewDetector(),
		recommender: edge.NewRecommender(cfg.MaxBankrollFraction),
		cfg:         cfg,
		modelCfg: probability.Config{
			SubjectMetric:  "passing_touchdowns",
			OpponentMetric: "passing_touchdowns_allowed_per_game",
		},
		reasonCache: reasonCache,
	}
}

// Name returns the strategy name.
func (c *TDPropCalculator) Name() string {
	return NamePropsBaseline
}

// CalculateEdges evaluates both starting quarterbacks of every game in the
// week against all available quotes and keeps positive edges at or above the
// threshold.
func (c *TDPropCalculator) CalculateEdges(ctx context.Context, week, season int, minEdgePct float64) ([]models.EdgeRecord, error) {
	games, err := c.matchups.WeekMatchups(ctx, week, season)
	if err != nil {
		return nil, fmt.Errorf("loading week %d matchups: %w", week, err)
	}

	modelCfg := c.modelCfg
	if c.cfg.ModelVersion == models.ModelEnhanced {
		// The enhanced model normalizes against the league-wide rate. An
		// unavailable average stays zero and the model falls back to its
		// default rate.
		modelCfg.LeagueAverage = c.leagueAverage(ctx, week, season)
	}
	model := probability.New(c.cfg.ModelVersion, modelCfg)

	var records []models.EdgeRecord
	for _, game := range games {
		sides := []struct {
			team     string
			opponent string
			isHome   bool
		}{
			{team: game.HomeTeam, opponent: game.AwayTeam, isHome: true},
			{team: game.AwayTeam, opponent: game.HomeTeam, isHome: false},
		}
		for _, side := range sides {
			sideRecords, err := c.evaluateSide(ctx, model, game, side.team, side.opponent, side.isHome, week, season, minEdgePct)
			if err != nil {
				return nil, err
			}
			records = append(records, sideRecords...)
		}
	}

	return records, nil
}

// leagueAverage computes the league-wide per-game rate of the subject
// metric across all team offense profiles for the week.
func (c *TDPropCalculator) leagueAverage(ctx context.Context, week, season int) float64 {
	teams, err := c.stats.TeamProfiles(ctx, week, season)
	if err != nil || len(teams) == 0 {
		return 0
	}

	var sum float64
	counted := 0
	for _, team := range teams {
		rate := team.PerGame(c.modelCfg.SubjectMetric)
		if rate <= 0 {
			continue
		}
		sum += rate
		counted++
	}
	if counted == 0 {
		return 0
	}
	return sum / float64(counted)
}

func (c *TDPropCalculator) evaluateSide(ctx context.Context, model probability.Model, game *models.Matchup, team, opponent string, isHome bool, week, season int, minEdgePct float64) ([]models.EdgeRecord, error) {
	qb, err := c.stats.QuarterbackProfile(ctx, team, week, season)
	if err != nil {
		// No QB row means no prop to price; substitute nothing and move on.
		return nil, nil
	}

	defense, err := c.stats.DefenseProfile(ctx, opponent, week, season)
	if err != nil {
		// Missing defensive data degrades to the league-average default
		// inside the model rather than aborting.
		defense = nil
	}

	estimate := model.Estimate(qb, defense, &probability.Context{
		IsHome:         isHome,
		IsDivisionGame: game.IsDivisionGame,
		IsPrimeTime:    game.IsPrimeTime,
	})

	quotes, err := c.oddsStore.QuotesForSubject(ctx, qb.Subject, week, season)
	if err != nil {
		return nil, fmt.Errorf("loading quotes for %s: %w", qb.Subject, err)
	}

	var records []models.EdgeRecord
	for _, quote := range quotes {
		result := c.detector.Compute(estimate, quote)
		if result.Degenerate || !result.IsPositiveEdge || result.EdgePercentage < minEdgePct {
			continue
		}
		rec := c.recommender.Recommend(result, c.cfg.Bankroll)
		records = append(records, c.buildRecord(game, qb, opponent, quote, estimate, result, rec, week, season))
	}
	return records, nil
}

func (c *TDPropCalculator) buildRecord(game *models.Matchup, qb *models.StatProfile, opponent string, quote *models.OddsQuote, estimate *models.ProbabilityEstimate, result *models.EdgeResult, rec *models.BetRecommendation, week, season int) models.EdgeRecord {
	return models.EdgeRecord{
		Matchup:  game.Label(),
		Strategy: c.Name(),
		Line:     fmt.Sprintf("%.1f+ Pass TD", quote.MarketLine),
		Recommendation: fmt.Sprintf("%s: %s %s at %s (%s)",
			rec.Tier, qb.Subject, c.lineText(quote), odds.FormatAmerican(quote.AmericanOdds), quote.Sportsbook),
		EdgePct:    result.EdgePercentage,
		Confidence: estimate.Confidence.Upper(),
		Reasoning:  c.reasoning(qb, opponent, estimate, result, week, season),
		Fields: map[string]any{
			"subject":             qb.Subject,
			"opponent":            opponent,
			"american_odds":       quote.AmericanOdds,
			"sportsbook":          quote.Sportsbook,
			"implied_probability": result.ImpliedProbability,
			"true_probability":    result.TrueProbability,
			"model_version":       estimate.ModelVersion.String(),
			"tier":                string(rec.Tier),
			"kelly_fraction":      rec.KellyFraction,
			"recommended_stake":   rec.RecommendedStake.InexactFloat64(),
			"bankroll_pct":        rec.BankrollPercentage,
		},
	}
}

func (c *TDPropCalculator) lineText(quote *models.OddsQuote) string {
	return fmt.Sprintf("over %.1f passing TDs", quote.MarketLine)
}

// reasoning builds the human-readable explanation from the concrete numbers
// that drove the decision. Identical explanations within the cache TTL are
// reused.
func (c *TDPropCalculator) reasoning(qb *models.StatProfile, opponent string, estimate *models.ProbabilityEstimate, result *models.EdgeResult, week, season int) string {
	key := cache.Key{
		Subject:      qb.Subject,
		Week:         week,
		Season:       season,
		Strategy:     c.Name(),
		ModelVersion: estimate.ModelVersion.String(),
	}
	if c.reasonCache != nil {
		if text, ok := c.reasonCache.Get(key); ok {
			return text
		}
	}

	text := fmt.Sprintf(
		"%s averages %.2f pass TDs/game over %d games; %s allows %.2f/game; model probability %.1f%% vs implied %.1f%% (+%.1f%% edge)",
		qb.Subject, estimate.Factors["subject_rate"], qb.GamesPlayed,
		opponent, estimate.Factors["opponent_rate"],
		estimate.Probability*100, result.ImpliedProbability*100, result.EdgePercentage,
	)
	if c.reasonCache != nil {
		c.reasonCache.Set(key, text)
	}
	return text
}
