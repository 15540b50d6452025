// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging for the prediction log.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogPredictionRecorded logs a prediction entering the calibration log.
func (al *AuditLogger) LogPredictionRecorded(predictionID, subject, strategy, modelVersion string, predictedProbability float64, americanOdds int, predictedAt time.Time) {
	al.WithFields(logrus.Fields{
		"prediction_id":         predictionID,
		"subject":               subject,
		"strategy":              strategy,
		"model_version":         modelVersion,
		"predicted_probability": predictedProbability,
		"american_odds":         americanOdds,
		"predicted_at":          predictedAt.Unix(),
	}).Info("Prediction recorded")
}

// LogOutcomeRecorded logs a realized outcome being attached to a prediction.
func (al *AuditLogger) LogOutcomeRecorded(predictionID string, outcome bool, recordedAt time.Time) {
	al.WithFields(logrus.Fields{
		"prediction_id": predictionID,
		"outcome":       outcome,
		"recorded_at":   recordedAt.Unix(),
	}).Info("Outcome recorded")
}

// LogUnknownOutcome logs an outcome submission that matched no prediction.
func (al *AuditLogger) LogUnknownOutcome(predictionID string) {
	al.WithFields(logrus.Fields{
		"prediction_id": predictionID,
	}).Warn("Outcome received for unknown prediction")
}

// LogReportGenerated logs a completed calibration analysis.
func (al *AuditLogger) LogReportGenerated(status string, totalPredictions int, brierScore, winRate, roiPercent float64, recommendations int) {
	al.WithFields(logrus.Fields{
		"status":            status,
		"total_predictions": totalPredictions,
		"brier_score":       brierScore,
		"win_rate":          winRate,
		"roi_percent":       roiPercent,
		"recommendations":   recommendations,
	}).Info("Calibration report generated")
}
