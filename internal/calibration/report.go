package calibration

import (
	"encoding/json"
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// Report statuses.
const (
	StatusOK     = "ok"
	StatusNoData = "no_data"
)

// defaultCalibrationBins partitions [0,1] for calibration-bin analysis.
const defaultCalibrationBins = 10

// Recommendation thresholds. Fixed policy constants.
const (
	brierRecalibrateThreshold = 0.25
	calibrationErrorThreshold = 0.15
	overconfidentROIThreshold = -10.0
)

// OverallMetrics summarizes accuracy over the window.
type OverallMetrics struct {
	Predictions int     `json:"predictions"`
	BrierScore  float64 `json:"brier_score"`
	WinRate     float64 `json:"win_rate"`
}

// CalibrationBin reports realized accuracy for one probability bucket.
type CalibrationBin struct {
	Center      float64 `json:"bin_center"`
	Predictions int     `json:"predictions"`
	SuccessRate float64 `json:"success_rate"`
	Error       float64 `json:"error"`
}

// CalibrationAnalysis is the binned calibration view. WeightedError is the
// count-weighted mean of per-bin error; empty bins carry zero weight.
type CalibrationAnalysis struct {
	Bins          []CalibrationBin `json:"bins"`
	WeightedError float64          `json:"weighted_error"`
}

// ROIAnalysis reports realized return under the live Kelly policy replayed
// at a fixed reference bankroll.
type ROIAnalysis struct {
	ReferenceBankroll float64 `json:"reference_bankroll"`
	TotalStaked       float64 `json:"total_staked"`
	TotalProfit       float64 `json:"total_profit"`
	ROI               float64 `json:"roi_percent"`
}

// VersionMetrics breaks the headline metrics out per model version so two
// generations running side by side can be compared.
type VersionMetrics struct {
	Predictions int     `json:"predictions"`
	BrierScore  float64 `json:"brier_score"`
	WinRate     float64 `json:"win_rate"`
	ROI         float64 `json:"roi_percent"`
}

// Report is the full calibration output, serializable to JSON for the
// presentation layer.
type Report struct {
	Status              string                    `json:"status"`
	WeeksBack           int                       `json:"weeks_back"`
	OverallMetrics      OverallMetrics            `json:"overall_metrics"`
	CalibrationAnalysis CalibrationAnalysis       `json:"calibration_analysis"`
	ROIAnalysis         ROIAnalysis               `json:"roi_analysis"`
	ModelVersionMetrics map[string]VersionMetrics `json:"model_version_metrics"`
	Recommendations     []string                  `json:"recommendations"`
}

// ToJSON exports the report.
func (r *Report) ToJSON() string {
	data, _ := json.Marshal(r)
	return string(data)
}

// binAnalysis buckets predictions into equal-width probability bins and
// measures how far each bin's realized success rate sits from its center.
func binAnalysis(entries []*models.PredictionLogEntry, binCount int) CalibrationAnalysis {
	type bucket struct {
		count int
		wins  int
	}
	buckets := make([]bucket, binCount)

	for _, entry := range entries {
		idx := int(entry.PredictedProbability * float64(binCount))
		if idx >= binCount {
			idx = binCount - 1
		}
		if idx < 0 {
			idx = 0
		}
		buckets[idx].count++
		if entry.OutcomeValue() == 1 {
			buckets[idx].wins++
		}
	}

	var bins []CalibrationBin
	var weightedSum float64
	total := 0
	for i, b := range buckets {
		if b.count == 0 {
			continue
		}
		center := (float64(i) + 0.5) / float64(binCount)
		successRate := float64(b.wins) / float64(b.count)
		binErr := center - successRate
		if binErr < 0 {
			binErr = -binErr
		}
		bins = append(bins, CalibrationBin{
			Center:      center,
			Predictions: b.count,
			SuccessRate: successRate,
			Error:       binErr,
		})
		weightedSum += binErr * float64(b.count)
		total += b.count
	}

	analysis := CalibrationAnalysis{Bins: bins}
	if total > 0 {
		analysis.WeightedError = weightedSum / float64(total)
	}
	return analysis
}

// recommendations derives the qualitative verdicts from fixed thresholds.
func recommendations(m scoredMetrics) []string {
	var recs []string
	if m.BrierScore > brierRecalibrateThreshold {
		recs = append(recs, fmt.Sprintf("Brier score %.3f exceeds %.2f: recalibrate the model", m.BrierScore, brierRecalibrateThreshold))
	}
	if m.WeightedError > calibrationErrorThreshold {
		recs = append(recs, fmt.Sprintf("calibration error %.3f exceeds %.2f: model is poorly calibrated", m.WeightedError, calibrationErrorThreshold))
	}
	if m.ROI < overconfidentROIThreshold {
		recs = append(recs, fmt.Sprintf("ROI %.1f%% below %.0f%%: model is overconfident, consider rollback", m.ROI, overconfidentROIThreshold))
	}
	if len(recs) == 0 {
		recs = append(recs, "model performing within acceptable bounds")
	}
	return recs
}
