package probability

import (
	"math"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// EnhancedModel is the v2 generation: subject and opponent rates are
// normalized against the league average, blended into a composite score, and
// mapped through a logistic curve centered at league-average performance. It
// also produces a confidence label and a probability interval from sample
// size and opponent volatility.
//
// The v1 and v2 curves are not required to agree at the same input; they
// operate on different scales.
type EnhancedModel struct {
	cfg Config
}

// NewEnhancedModel creates the v2 model.
func NewEnhancedModel(cfg Config) *EnhancedModel {
	return &EnhancedModel{cfg: cfg}
}

// Version returns the model version tag.
func (m *EnhancedModel) Version() models.ModelVersion {
	return models.ModelEnhanced
}

// Estimate produces the v2 probability with interval and confidence.
func (m *EnhancedModel) Estimate(subject, opponent *models.StatProfile, ctx *Context) *models.ProbabilityEstimate {
	league := m.cfg.LeagueAverage
	if league <= 0 {
		league = defaultLeagueRate
	}

	subjRate := subjectRate(subject, m.cfg.SubjectMetric)
	oppRate := opponentRate(opponent, m.cfg.OpponentMetric)

	subjRel := subjRate / league
	oppRel := oppRate / league
	composite := subjectWeight*subjRel + opponentWeight*oppRel

	// Logistic curve centered at league average: composite == 1 yields 50%.
	prob := 1.0 / (1.0 + math.Exp(-2.0*(composite-1.0)))

	if ctx != nil {
		if ctx.IsHome {
			prob *= homeMultiplier
		}
		if ctx.IsDivisionGame {
			prob *= divisionMultiplier
		}
		if ctx.IsPrimeTime {
			prob *= primeTimeMultiplier
		}
		if ctx.WeatherFactor > 0 {
			prob *= ctx.WeatherFactor
		}
	}

	prob = models.ClampProbability(prob)

	consistency := consistencyScore(subject)
	variance := varianceScore(oppRate, league)

	return &models.ProbabilityEstimate{
		Probability:  prob,
		Confidence:   combineConfidence(consistency, variance),
		ModelVersion: models.ModelEnhanced,
		Interval:     interval(prob, consistency, variance),
		Factors: map[string]float64{
			"subject_rate":      subjRate,
			"opponent_rate":     oppRate,
			"league_average":    league,
			"subject_relative":  subjRel,
			"opponent_relative": oppRel,
			"composite_score":   composite,
			"consistency":       consistency,
			"variance":          variance,
		},
	}
}

// consistencyScore maps the subject's sample size to a stability score:
// 8+ games is a trustworthy sample, 4-7 marginal, fewer is noise.
func consistencyScore(subject *models.StatProfile) float64 {
	games := 0
	if subject != nil {
		games = subject.GamesPlayed
	}
	switch {
	case games >= 8:
		return 0.9
	case games >= 4:
		return 0.6
	default:
		return 0.3
	}
}

// varianceScore maps the opponent's allowed rate to a volatility score.
// Opponents leaking outcomes at a high rate produce less predictable games.
func varianceScore(oppRate, leagueAverage float64) float64 {
	if leagueAverage <= 0 {
		return 0.5
	}
	v := oppRate / (2.0 * leagueAverage)
	if v < 0.1 {
		return 0.1
	}
	if v > 0.9 {
		return 0.9
	}
	return v
}

func combineConfidence(consistency, variance float64) models.Confidence {
	switch {
	case consistency >= 0.9 && variance <= 0.4:
		return models.ConfidenceHigh
	case consistency <= 0.3 || variance >= 0.7:
		return models.ConfidenceLow
	default:
		return models.ConfidenceMedium
	}
}

// interval builds a symmetric interval whose half-width grows with opponent
// variance and shrinks with subject consistency, clamped inside the
// probability bounds.
func interval(prob, consistency, variance float64) *models.ProbabilityInterval {
	halfWidth := (0.1 + 0.5*(variance+(1.0-consistency))) * prob
	return &models.ProbabilityInterval{
		Lo: models.ClampProbability(prob - halfWidth),
		Hi: models.ClampProbability(prob + halfWidth),
	}
}
