package strategy

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// Aggregator fans out to every enabled calculator, isolates per-strategy
// failures, and returns one globally ranked edge list.
type Aggregator struct {
	calculators []Calculator
	logger      *logrus.Entry
}

// NewAggregator creates an aggregator over the given calculators.
func NewAggregator(calculators []Calculator, logger *logrus.Logger) *Aggregator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Aggregator{
		calculators: calculators,
		logger:      logger.WithField("component", "aggregator"),
	}
}

// GetAllEdges runs every calculator (or only those named in strategyFilter),
// collects their records, filters by minEdgePct and returns them sorted
// descending by edge percentage. The sort is stable: ties keep encounter
// order. A failing calculator is logged, counted and skipped; it never
// aborts the other strategies.
func (a *Aggregator) GetAllEdges(ctx context.Context, week, season int, minEdgePct float64, strategyFilter []string) ([]models.EdgeRecord, []*StrategyError) {
	started := time.Now()
	defer func() {
		metrics.RecordEdgeScan(time.Since(started).Seconds())
	}()

	allowed := filterSet(strategyFilter)

	var all []models.EdgeRecord
	var failures []*StrategyError
	for _, calc := range a.calculators {
		if allowed != nil && !allowed[calc.Name()] {
			continue
		}

		calcStart := time.Now()
		records, err := calc.CalculateEdges(ctx, week, season, minEdgePct)
		metrics.CalculatorDuration.WithLabelValues(calc.Name()).Observe(time.Since(calcStart).Seconds())

		if err != nil {
			a.logger.WithFields(logrus.Fields{
				"strategy": calc.Name(),
				"week":     week,
				"season":   season,
			}).WithError(err).Warn("Calculator failed, excluding from this run")
			metrics.RecordStrategyFailure(calc.Name())
			failures = append(failures, &StrategyError{Strategy: calc.Name(), Err: err})
			continue
		}

		metrics.RecordEdgesFound(calc.Name(), len(records))
		all = append(all, records...)
	}

	filtered := all[:0]
	for _, rec := range all {
		if rec.EdgePct >= minEdgePct {
			filtered = append(filtered, rec)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].EdgePct > filtered[j].EdgePct
	})

	a.logger.WithFields(logrus.Fields{
		"week":     week,
		"season":   season,
		"edges":    len(filtered),
		"failures": len(failures),
	}).Info("Edge aggregation completed")

	return filtered, failures
}

// GetEdgeCounts returns per-strategy edge counts plus a "total" key. The
// counts derive from the same unfiltered data as GetAllEdges so the two
// views cannot silently diverge.
func (a *Aggregator) GetEdgeCounts(ctx context.Context, week, season int) map[string]int {
	records, _ := a.GetAllEdges(ctx, week, season, 0, nil)

	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.Strategy]++
	}
	counts["total"] = len(records)
	return counts
}

func filterSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
