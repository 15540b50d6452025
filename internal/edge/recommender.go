package edge

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// DefaultMaxBankrollFraction caps any single recommendation at 5% of
// bankroll regardless of how large the computed Kelly fraction is.
const DefaultMaxBankrollFraction = 0.05

// Tier breakpoints and their fractional-Kelly multipliers. Fixed policy
// constants reproduced exactly for behavioral parity.
const (
	smallEdgeThresholdPct  = 5.0
	goodEdgeThresholdPct   = 10.0
	strongEdgeThresholdPct = 20.0

	smallEdgeKellyMultiplier  = 0.15
	goodEdgeKellyMultiplier   = 0.25
	strongEdgeKellyMultiplier = 0.25
)

// Recommender turns edges into sized bet recommendations via fractional
// Kelly.
type Recommender struct {
	maxBankrollFraction float64
}

// NewRecommender creates a recommender. A non-positive max fraction falls
// back to the default 5% cap.
func NewRecommender(maxBankrollFraction float64) *Recommender {
	if maxBankrollFraction <= 0 {
		maxBankrollFraction = DefaultMaxBankrollFraction
	}
	return &Recommender{maxBankrollFraction: maxBankrollFraction}
}

// KellyFraction computes the capped fractional-Kelly stake fraction.
// Negative raw Kelly yields exactly zero, never a negative stake.
func (r *Recommender) KellyFraction(trueProb, decimalOdds, kellyMultiplier float64) float64 {
	if decimalOdds <= 1.0 || kellyMultiplier <= 0 {
		return 0
	}
	b := decimalOdds - 1.0
	p := trueProb
	kelly := (b*p - (1.0 - p)) / b
	fraction := math.Max(0, kelly*kellyMultiplier)
	return math.Min(fraction, r.maxBankrollFraction)
}

// Tier maps an edge percentage to its recommendation tier. It is a pure
// monotonic step function of the percentage.
func Tier(edgePercentage float64) (models.RecommendationTier, float64) {
	switch {
	case edgePercentage >= strongEdgeThresholdPct:
		return models.TierStrongEdge, strongEdgeKellyMultiplier
	case edgePercentage >= goodEdgeThresholdPct:
		return models.TierGoodEdge, goodEdgeKellyMultiplier
	case edgePercentage >= smallEdgeThresholdPct:
		return models.TierSmallEdge, smallEdgeKellyMultiplier
	default:
		return models.TierPass, 0
	}
}

// Recommend sizes a bet for an edge at the given bankroll.
func (r *Recommender) Recommend(result *models.EdgeResult, bankroll float64) *models.BetRecommendation {
	tier, multiplier := Tier(result.EdgePercentage)
	if result.Degenerate {
		tier, multiplier = models.TierPass, 0
	}

	fraction := r.KellyFraction(result.TrueProbability, result.DecimalOdds, multiplier)
	stake := decimal.NewFromFloat(bankroll).
		Mul(decimal.NewFromFloat(fraction)).
		Round(2)

	return &models.BetRecommendation{
		Tier:               tier,
		KellyFraction:      fraction,
		RecommendedStake:   stake,
		BankrollPercentage: fraction * 100.0,
	}
}
