package models

import "strings"

// Confidence labels how much the model trusts its own estimate.
type Confidence string

// Confidence levels, ordered low to high.
const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Upper returns the display form used in standardized edge records.
func (c Confidence) Upper() string {
	return strings.ToUpper(string(c))
}

// ParseConfidence maps either the stored or the display form back to a
// confidence level. Unknown strings report false and default to medium.
func ParseConfidence(s string) (Confidence, bool) {
	switch Confidence(strings.ToLower(s)) {
	case ConfidenceLow:
		return ConfidenceLow, true
	case ConfidenceMedium:
		return ConfidenceMedium, true
	case ConfidenceHigh:
		return ConfidenceHigh, true
	default:
		return ConfidenceMedium, false
	}
}

// ModelVersion selects a probability model generation. It is a closed enum:
// adding a generation means adding a constant and handling it in the model
// factory, not remembering a new string literal everywhere.
type ModelVersion int

const (
	// ModelBaseline is the v1 linear-blend heuristic.
	ModelBaseline ModelVersion = iota
	// ModelEnhanced is the v2 league-normalized logistic model.
	ModelEnhanced
	// ModelEnhancedLimited tags enhanced-calculator output that fell back to
	// the baseline result because secondary signals were unavailable.
	ModelEnhancedLimited
)

// String returns the persisted tag for the model version.
func (v ModelVersion) String() string {
	switch v {
	case ModelBaseline:
		return "baseline_v1"
	case ModelEnhanced:
		return "enhanced_v2"
	case ModelEnhancedLimited:
		return "enhanced_v2_limited"
	default:
		return "unknown"
	}
}

// ParseModelVersion maps a persisted tag back to its enum value.
func ParseModelVersion(s string) (ModelVersion, bool) {
	switch s {
	case "baseline_v1":
		return ModelBaseline, true
	case "enhanced_v2":
		return ModelEnhanced, true
	case "enhanced_v2_limited":
		return ModelEnhancedLimited, true
	default:
		return ModelBaseline, false
	}
}

// ProbabilityInterval is a symmetric interval around a point estimate.
type ProbabilityInterval struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// ProbabilityEstimate is the output of a probability model. It is created
// fresh per calculation and never mutated afterwards. Every probability
// surfaced to a consumer lies in [MinProbability, MaxProbability].
type ProbabilityEstimate struct {
	Probability  float64              `json:"probability"`
	Confidence   Confidence           `json:"confidence"`
	ModelVersion ModelVersion         `json:"model_version"`
	Interval     *ProbabilityInterval `json:"interval,omitempty"`
	Factors      map[string]float64   `json:"explanatory_factors,omitempty"`
}

// Probability clamp bounds. The clamp is a deliberate invariant preventing
// overconfident extremes from both model generations.
const (
	MinProbability = 0.05
	MaxProbability = 0.95
)

// ClampProbability forces p into [MinProbability, MaxProbability].
func ClampProbability(p float64) float64 {
	if p < MinProbability {
		return MinProbability
	}
	if p > MaxProbability {
		return MaxProbability
	}
	return p
}
