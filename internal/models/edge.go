package models

import (
	"github.com/shopspring/decimal"
)

// EdgeResult compares a model probability against a bookmaker quote.
// Derived deterministically; it has no persisted identity.
type EdgeResult struct {
	TrueProbability    float64 `json:"true_probability"`
	ImpliedProbability float64 `json:"implied_probability"`
	DecimalOdds        float64 `json:"decimal_odds"`
	Edge               float64 `json:"edge"`
	EdgePercentage     float64 `json:"edge_percentage"`
	IsPositiveEdge     bool    `json:"is_positive_edge"`
	// Degenerate flags quotes whose implied probability was zero or invalid;
	// edge_percentage is reported as zero for them.
	Degenerate bool `json:"degenerate,omitempty"`
}

// RecommendationTier is the discrete bet-sizing tier derived from edge
// percentage.
type RecommendationTier string

// Tier breakpoints are fixed policy constants: <5% PASS, [5,10) SMALL EDGE,
// [10,20) GOOD EDGE, >=20 STRONG EDGE.
const (
	TierPass       RecommendationTier = "PASS"
	TierSmallEdge  RecommendationTier = "SMALL EDGE"
	TierGoodEdge   RecommendationTier = "GOOD EDGE"
	TierStrongEdge RecommendationTier = "STRONG EDGE"
)

// BetRecommendation is the sized recommendation for one edge at a given
// bankroll.
type BetRecommendation struct {
	Tier               RecommendationTier `json:"tier"`
	KellyFraction      float64            `json:"kelly_fraction"`
	RecommendedStake   decimal.Decimal    `json:"recommended_bet_amount"`
	BankrollPercentage float64            `json:"bankroll_percentage"`
}

// EdgeRecord is the standardized aggregator output consumed by the
// presentation layer. Field names are identical across strategies even though
// the source calculators produce heterogeneous native shapes.
type EdgeRecord struct {
	Matchup        string         `json:"matchup"`
	Strategy       string         `json:"strategy_name"`
	Line           string         `json:"line"`
	Recommendation string         `json:"recommendation_text"`
	EdgePct        float64        `json:"edge_pct"`
	Confidence     string         `json:"confidence"`
	Reasoning      string         `json:"reasoning_text"`
	Fields         map[string]any `json:"strategy_specific_fields,omitempty"`
}
