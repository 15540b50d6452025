package calibration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/edge"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/odds"
)

// DefaultReferenceBankroll is the fixed bankroll used when replaying the
// Kelly policy for ROI scoring.
const DefaultReferenceBankroll = 1000.0

// Calibrator records predictions before outcomes are known and scores them
// afterwards.
type Calibrator struct {
	log         Log
	recommender *edge.Recommender
	bankroll    float64
	now         func() time.Time
	logger      *logrus.Entry
}

// NewCalibrator creates a calibrator over a prediction log. A nil clock uses
// time.Now; a non-positive bankroll uses the default reference bankroll.
func NewCalibrator(log Log, bankroll float64, now func() time.Time, logger *logrus.Logger) *Calibrator {
	if bankroll <= 0 {
		bankroll = DefaultReferenceBankroll
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Calibrator{
		log:         log,
		recommender: edge.NewRecommender(0),
		bankroll:    bankroll,
		now:         now,
		logger:      logger.WithField("component", "calibrator"),
	}
}

// RecordPrediction appends a pending entry and returns it. The id is
// derived from subject, week, season and the prediction timestamp; a
// colliding id fails loudly instead of overwriting an unrelated entry.
func (c *Calibrator) RecordPrediction(ctx context.Context, subject string, week, season int, probability float64, americanOdds int, version models.ModelVersion, strategyName string, confidence models.Confidence) (*models.PredictionLogEntry, error) {
	predictedAt := c.now()
	entry := &models.PredictionLogEntry{
		ID:                   models.NewPredictionID(subject, week, season, predictedAt),
		Subject:              subject,
		Week:                 week,
		Season:               season,
		PredictedProbability: probability,
		AmericanOdds:         americanOdds,
		ModelVersion:         version,
		Strategy:             strategyName,
		Confidence:           confidence,
		PredictedAt:          predictedAt,
	}

	if err := c.log.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("recording prediction for %s: %w", subject, err)
	}

	metrics.PredictionsRecordedTotal.Inc()
	c.logger.WithFields(logrus.Fields{
		"prediction_id": entry.ID,
		"subject":       subject,
		"week":          week,
		"model_version": version.String(),
	}).Debug("Prediction recorded")

	return entry, nil
}

// RecordEdges logs every odds-based record from a scan as a pending
// prediction and returns the appended entries. Records without a priced
// subject (the ranking strategy's output) carry no probability to score and
// are skipped. Duplicate ids are skipped with a warning; any other append
// failure aborts the batch.
func (c *Calibrator) RecordEdges(ctx context.Context, week, season int, records []models.EdgeRecord) ([]*models.PredictionLogEntry, error) {
	var entries []*models.PredictionLogEntry
	for _, rec := range records {
		subject, ok := rec.Fields["subject"].(string)
		if !ok || subject == "" {
			continue
		}
		americanOdds, ok := rec.Fields["american_odds"].(int)
		if !ok {
			continue
		}
		probability, ok := rec.Fields["true_probability"].(float64)
		if !ok {
			continue
		}

		version := models.ModelBaseline
		if tag, ok := rec.Fields["model_version"].(string); ok {
			if parsed, parseOK := models.ParseModelVersion(tag); parseOK {
				version = parsed
			}
		}
		confidence, _ := models.ParseConfidence(rec.Confidence)

		entry, err := c.RecordPrediction(ctx, subject, week, season, probability, americanOdds, version, rec.Strategy, confidence)
		if err != nil {
			if errors.Is(err, models.ErrDuplicateKey) {
				c.logger.WithField("subject", subject).Warn("Prediction already logged, skipping")
				continue
			}
			return entries, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// RecordOutcome sets the realized outcome for a prediction. Unknown ids
// return (false, nil): the caller learns the update did not land but nothing
// raises and no new entry is created.
func (c *Calibrator) RecordOutcome(ctx context.Context, predictionID string, outcome bool) (bool, error) {
	found, err := c.log.SetOutcome(ctx, predictionID, outcome, c.now())
	if err != nil {
		return false, fmt.Errorf("recording outcome for %s: %w", predictionID, err)
	}
	if !found {
		c.logger.WithField("prediction_id", predictionID).Warn("Outcome for unknown prediction id ignored")
		return false, nil
	}
	metrics.OutcomesRecordedTotal.Inc()
	return true, nil
}

// AnalyzePerformance scores all completed predictions from the trailing
// window. With zero completed entries it returns a report with StatusNoData
// so "no evidence" cannot be mistaken for "perfect model".
func (c *Calibrator) AnalyzePerformance(ctx context.Context, weeksBack int) (*Report, error) {
	if weeksBack <= 0 {
		weeksBack = 4
	}
	cutoff := c.now().AddDate(0, 0, -7*weeksBack)

	entries, err := c.log.CompletedSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("loading completed predictions: %w", err)
	}
	if len(entries) == 0 {
		return &Report{Status: StatusNoData, WeeksBack: weeksBack}, nil
	}

	report := c.buildReport(entries, weeksBack)

	for version, vm := range report.ModelVersionMetrics {
		metrics.CalibrationBrierScore.WithLabelValues(version).Set(vm.BrierScore)
		metrics.CalibrationROI.WithLabelValues(version).Set(vm.ROI)
	}

	return report, nil
}

func (c *Calibrator) buildReport(entries []*models.PredictionLogEntry, weeksBack int) *Report {
	overall := c.scoreEntries(entries)

	byVersion := make(map[string]VersionMetrics)
	grouped := make(map[string][]*models.PredictionLogEntry)
	for _, entry := range entries {
		key := entry.ModelVersion.String()
		grouped[key] = append(grouped[key], entry)
	}
	for version, group := range grouped {
		vm := c.scoreEntries(group)
		byVersion[version] = VersionMetrics{
			Predictions: len(group),
			BrierScore:  vm.BrierScore,
			WinRate:     vm.WinRate,
			ROI:         vm.ROIAnalysis.ROI,
		}
	}

	return &Report{
		Status:              StatusOK,
		WeeksBack:           weeksBack,
		OverallMetrics:      overall.OverallMetrics,
		CalibrationAnalysis: overall.CalibrationAnalysis,
		ROIAnalysis:         overall.ROIAnalysis,
		ModelVersionMetrics: byVersion,
		Recommendations:     recommendations(overall),
	}
}

// scoredMetrics bundles every figure computed over one entry group.
type scoredMetrics struct {
	OverallMetrics
	CalibrationAnalysis
	ROIAnalysis
}

func (c *Calibrator) scoreEntries(entries []*models.PredictionLogEntry) scoredMetrics {
	var brierSum float64
	wins := 0
	for _, entry := range entries {
		diff := entry.PredictedProbability - entry.OutcomeValue()
		brierSum += diff * diff
		if entry.OutcomeValue() == 1 {
			wins++
		}
	}

	var totalStaked, totalProfit float64
	for _, entry := range entries {
		stake, profit := c.replayKelly(entry)
		totalStaked += stake
		totalProfit += profit
	}
	roi := 0.0
	if totalStaked > 0 {
		roi = totalProfit / totalStaked * 100.0
	}

	return scoredMetrics{
		OverallMetrics: OverallMetrics{
			Predictions: len(entries),
			BrierScore:  brierSum / float64(len(entries)),
			WinRate:     float64(wins) / float64(len(entries)),
		},
		CalibrationAnalysis: binAnalysis(entries, defaultCalibrationBins),
		ROIAnalysis: ROIAnalysis{
			ReferenceBankroll: c.bankroll,
			TotalStaked:       totalStaked,
			TotalProfit:       totalProfit,
			ROI:               roi,
		},
	}
}

// replayKelly re-sizes each historical prediction with the same tier and
// Kelly policy the recommender applies live, at the fixed reference
// bankroll. Wins earn stake x (decimalOdds-1); losses forfeit the stake.
func (c *Calibrator) replayKelly(entry *models.PredictionLogEntry) (stake, profit float64) {
	implied, err := odds.ImpliedProbability(entry.AmericanOdds)
	if err != nil || implied <= 0 {
		return 0, 0
	}
	decimalOdds, err := odds.ToDecimal(entry.AmericanOdds)
	if err != nil {
		return 0, 0
	}

	edgePct := (entry.PredictedProbability - implied) / implied * 100.0
	_, multiplier := edge.Tier(edgePct)
	fraction := c.recommender.KellyFraction(entry.PredictedProbability, decimalOdds, multiplier)
	stake = c.bankroll * fraction
	if stake <= 0 {
		return 0, 0
	}

	if entry.OutcomeValue() == 1 {
		return stake, stake * (decimalOdds - 1.0)
	}
	return stake, -stake
}
