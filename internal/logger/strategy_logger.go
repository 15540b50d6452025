// Package logger provides strategy-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// StrategyLogger provides dedicated logging for edge scan operations.
type StrategyLogger struct {
	*logrus.Entry
}

// NewStrategyLogger creates a new strategy logger.
func NewStrategyLogger(baseLogger *logrus.Logger) *StrategyLogger {
	return &StrategyLogger{
		Entry: baseLogger.WithField("component", "strategy"),
	}
}

// LogScanStarted logs the start of an edge scan across calculators.
func (sl *StrategyLogger) LogScanStarted(week, season int, minEdgePercent float64, strategies []string) {
	sl.WithFields(logrus.Fields{
		"week":             week,
		"season":           season,
		"min_edge_percent": minEdgePercent,
		"strategies":       strategies,
	}).Info("Edge scan started")
}

// LogScanCompleted logs the outcome of an edge scan.
func (sl *StrategyLogger) LogScanCompleted(week, season, edgesFound, strategiesFailed int, durationMs float64) {
	sl.WithFields(logrus.Fields{
		"week":              week,
		"season":            season,
		"edges_found":       edgesFound,
		"strategies_failed": strategiesFailed,
		"scan_duration_ms":  durationMs,
	}).Info("Edge scan completed")
}

// LogEdgeDetected logs a single edge surfaced by a calculator.
func (sl *StrategyLogger) LogEdgeDetected(strategy, subject string, americanOdds int, impliedProbability, trueProbability, edgePercent float64, tier string) {
	sl.WithFields(logrus.Fields{
		"strategy":            strategy,
		"subject":             subject,
		"american_odds":       americanOdds,
		"implied_probability": impliedProbability,
		"true_probability":    trueProbability,
		"edge_percent":        edgePercent,
		"tier":                tier,
	}).Info("Edge detected")
}

// LogStrategyFailure logs a calculator failure that did not halt the scan.
func (sl *StrategyLogger) LogStrategyFailure(strategy string, week, season int, err error) {
	sl.WithFields(logrus.Fields{
		"strategy": strategy,
		"week":     week,
		"season":   season,
		"error":    err.Error(),
	}).Warn("Strategy calculator failed")
}

// LogStakeSized logs a Kelly stake recommendation.
func (sl *StrategyLogger) LogStakeSized(strategy, subject string, edgePercent, kellyFraction float64, stake string, tier string) {
	sl.WithFields(logrus.Fields{
		"strategy":       strategy,
		"subject":        subject,
		"edge_percent":   edgePercent,
		"kelly_fraction": kellyFraction,
		"stake":          stake,
		"tier":           tier,
	}).Info("Stake sized")
}
