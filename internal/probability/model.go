// Package probability implements the win-probability models behind the edge
// engine. Two generations share one contract: the baseline linear blend and
// the enhanced league-normalized logistic model.
package probability

import (
	"github.com/yourusername/gridiron-edge/internal/models"
)

// Context carries optional situational signals into an estimate.
type Context struct {
	IsHome         bool
	IsDivisionGame bool
	IsPrimeTime    bool
	// WeatherFactor is a pass-through multiplier; zero means absent.
	WeatherFactor float64
}

// Model estimates the probability that a subject's proposition hits, given
// the subject's profile and the opponent's defensive profile. Estimates
// never fail: missing data degrades to conservative neutral values.
type Model interface {
	Version() models.ModelVersion
	Estimate(subject, opponent *models.StatProfile, ctx *Context) *models.ProbabilityEstimate
}

// Policy constants shared by both model generations. These are fixed policy
// values, not fitted parameters.
const (
	subjectWeight  = 0.6
	opponentWeight = 0.4

	// Used when the opponent's allowed rate or the league average is
	// unavailable.
	defaultLeagueRate = 1.5

	homeMultiplier      = 1.10
	divisionMultiplier  = 0.95
	primeTimeMultiplier = 1.05
)

// Config selects which stat metrics feed a model.
type Config struct {
	// SubjectMetric is the season-total success count on the subject profile,
	// e.g. "passing_touchdowns".
	SubjectMetric string
	// OpponentMetric is the per-game allowed rate on the opponent profile,
	// e.g. "passing_touchdowns_allowed_per_game".
	OpponentMetric string
	// LeagueAverage is the league-wide per-game rate for the metric, computed
	// from all subjects' season data. Zero means unavailable; models fall
	// back to defaultLeagueRate.
	LeagueAverage float64
}

// New returns the model implementation for a version tag. The limited-data
// tag resolves to the baseline implementation since that is what its numbers
// came from.
func New(version models.ModelVersion, cfg Config) Model {
	switch version {
	case models.ModelEnhanced:
		return NewEnhancedModel(cfg)
	case models.ModelBaseline, models.ModelEnhancedLimited:
		return NewBaselineModel(cfg)
	default:
		return NewBaselineModel(cfg)
	}
}

// subjectRate returns the subject's per-game success rate. Zero recorded
// games yields rate zero, the deliberate insufficient-data policy.
func subjectRate(subject *models.StatProfile, metric string) float64 {
	if subject == nil {
		return 0
	}
	games := subject.GamesPlayed
	if games < 1 {
		games = 1
	}
	return subject.MetricOr(metric, 0) / float64(games)
}

// opponentRate returns the opponent's allowed rate, defaulting to the league
// constant when the profile or metric is absent.
func opponentRate(opponent *models.StatProfile, metric string) float64 {
	if opponent == nil {
		return defaultLeagueRate
	}
	return opponent.MetricOr(metric, defaultLeagueRate)
}
