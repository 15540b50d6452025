// Package edge computes the gap between modeled and market-implied
// probabilities and sizes bets against it.
package edge

import (
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/odds"
)

// Detector compares probability estimates against bookmaker quotes.
type Detector struct{}

// NewDetector creates an edge detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Compute derives the edge between a model estimate and an odds quote.
// Quotes whose implied probability is zero or invalid are flagged as
// degenerate and report a zero edge percentage rather than propagating a NaN.
func (d *Detector) Compute(estimate *models.ProbabilityEstimate, quote *models.OddsQuote) *models.EdgeResult {
	implied, err := odds.ImpliedProbability(quote.AmericanOdds)
	if err != nil || implied <= 0 {
		return &models.EdgeResult{
			TrueProbability: estimate.Probability,
			Degenerate:      true,
		}
	}

	decimal, err := odds.ToDecimal(quote.AmericanOdds)
	if err != nil {
		return &models.EdgeResult{
			TrueProbability:    estimate.Probability,
			ImpliedProbability: implied,
			Degenerate:         true,
		}
	}

	e := estimate.Probability - implied
	return &models.EdgeResult{
		TrueProbability:    estimate.Probability,
		ImpliedProbability: implied,
		DecimalOdds:        decimal,
		Edge:               e,
		EdgePercentage:     e / implied * 100.0,
		IsPositiveEdge:     e > 0,
	}
}
