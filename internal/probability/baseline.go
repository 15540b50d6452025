package probability

import (
	"github.com/yourusername/gridiron-edge/internal/models"
)

// baselineScale rescales the blended rate into probability space.
const baselineScale = 0.6

// BaselineModel is the v1 heuristic: a fixed-weight blend of the subject's
// per-game rate and the opponent's allowed rate, rescaled and clamped.
// Confidence is always medium.
type BaselineModel struct {
	cfg Config
}

// NewBaselineModel creates the v1 model.
func NewBaselineModel(cfg Config) *BaselineModel {
	return &BaselineModel{cfg: cfg}
}

// Version returns the model version tag.
func (m *BaselineModel) Version() models.ModelVersion {
	return models.ModelBaseline
}

// Estimate blends subject and opponent rates 0.6/0.4, bumps home subjects by
// 10%, rescales by 0.6 and clamps to the probability bounds.
func (m *BaselineModel) Estimate(subject, opponent *models.StatProfile, ctx *Context) *models.ProbabilityEstimate {
	subjRate := subjectRate(subject, m.cfg.SubjectMetric)
	oppRate := opponentRate(opponent, m.cfg.OpponentMetric)

	raw := subjectWeight*subjRate + opponentWeight*oppRate
	if ctx != nil && ctx.IsHome {
		raw *= homeMultiplier
	}

	prob := models.ClampProbability(raw * baselineScale)

	return &models.ProbabilityEstimate{
		Probability:  prob,
		Confidence:   models.ConfidenceMedium,
		ModelVersion: models.ModelBaseline,
		Factors: map[string]float64{
			"subject_rate":  subjRate,
			"opponent_rate": oppRate,
			"raw_score":     raw,
		},
	}
}
