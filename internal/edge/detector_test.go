package edge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/gridiron-edge/internal/models"
)

func quote(t *testing.T, americanOdds int) *models.OddsQuote {
	t.Helper()
	q, err := models.NewOddsQuote("QB One", 0.5, americanOdds, "draftkings", time.Now())
	require.NoError(t, err)
	return q
}

func estimate(p float64) *models.ProbabilityEstimate {
	return &models.ProbabilityEstimate{
		Probability:  p,
		Confidence:   models.ConfidenceMedium,
		ModelVersion: models.ModelBaseline,
	}
}

func TestComputeEdge(t *testing.T) {
	d := NewDetector()

	// Reference scenario: -200 at true probability 0.70.
	result := d.Compute(estimate(0.70), quote(t, -200))

	assert.InDelta(t, 0.6667, result.ImpliedProbability, 0.0001)
	assert.InDelta(t, 0.0333, result.Edge, 0.0001)
	assert.InDelta(t, 5.0, result.EdgePercentage, 0.01)
	assert.True(t, result.IsPositiveEdge)
	assert.False(t, result.Degenerate)
	assert.InDelta(t, 1.5, result.DecimalOdds, 0.0001)
}

func TestComputeNegativeEdge(t *testing.T) {
	d := NewDetector()

	result := d.Compute(estimate(0.40), quote(t, -200))

	assert.Negative(t, result.Edge)
	assert.False(t, result.IsPositiveEdge)
}

func TestComputeDegenerateOdds(t *testing.T) {
	d := NewDetector()

	// Bypass constructor validation to simulate a corrupt quote.
	q := &models.OddsQuote{Subject: "QB One", AmericanOdds: 0, Sportsbook: "draftkings"}
	result := d.Compute(estimate(0.60), q)

	assert.True(t, result.Degenerate)
	assert.Zero(t, result.EdgePercentage)
	assert.False(t, result.IsPositiveEdge)
}
