package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PredictionLogEntry records one model prediction before its outcome is
// known. Entries are append-only except for the single outcome update.
type PredictionLogEntry struct {
	ID                   string       `db:"id" json:"prediction_id" validate:"required"`
	Subject              string       `db:"subject" json:"subject" validate:"required"`
	Week                 int          `db:"week" json:"week" validate:"required,gt=0"`
	Season               int          `db:"season" json:"season" validate:"required,gt=0"`
	PredictedProbability float64      `db:"predicted_probability" json:"predicted_probability" validate:"gte=0,lte=1"`
	AmericanOdds         int          `db:"american_odds" json:"odds" validate:"required"`
	ModelVersion         ModelVersion `db:"model_version" json:"model_version"`
	Strategy             string       `db:"strategy" json:"strategy"`
	Confidence           Confidence   `db:"confidence" json:"confidence"`
	PredictedAt          time.Time    `db:"predicted_at" json:"predicted_at"`
	Outcome              *bool        `db:"outcome" json:"outcome,omitempty"`
	OutcomeRecordedAt    *time.Time   `db:"outcome_recorded_at" json:"outcome_recorded_at,omitempty"`
}

// predictionNamespace scopes deterministic prediction ids.
var predictionNamespace = uuid.MustParse("8b1e8f32-4a6f-4f0e-9b2a-63c5d8a94b17")

// NewPredictionID derives a unique id from subject, week, season and the
// prediction timestamp. Including the timestamp keeps repeated predictions
// for the same subject from colliding and overwriting an unrelated entry.
func NewPredictionID(subject string, week, season int, predictedAt time.Time) string {
	seed := fmt.Sprintf("%s:%d:%d:%d", subject, week, season, predictedAt.UnixNano())
	return uuid.NewSHA1(predictionNamespace, []byte(seed)).String()
}

// Completed reports whether the realized outcome has been recorded.
func (e *PredictionLogEntry) Completed() bool {
	return e.Outcome != nil
}

// OutcomeValue returns the outcome as 1 or 0 for scoring. Only meaningful
// when Completed.
func (e *PredictionLogEntry) OutcomeValue() float64 {
	if e.Outcome != nil && *e.Outcome {
		return 1
	}
	return 0
}
