package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// Adjustment multipliers applied to the baseline edge. Multipliers compose
// multiplicatively.
const (
	redZoneHotMultiplier  = 1.15
	redZoneWarmMultiplier = 1.08
	redZoneColdMultiplier = 0.92

	weakDefenseMultiplier   = 1.10
	strongDefenseMultiplier = 0.88

	redZoneHotThreshold  = 0.15
	redZoneWarmThreshold = 0.10
	redZoneColdThreshold = 0.05

	// Trailing window, in weeks, for the red-zone signal.
	redZoneTrailingWeeks = 4
)

// EnhancedTDPropCalculator is the v2 refinement of the QB touchdown prop
// strategy. It always computes the baseline calculator's edges first, then
// adjusts each edge multiplicatively by red-zone efficiency and opponent
// pass-defense rating. When the secondary signals are unavailable for a
// subject, the baseline edge is re-emitted unchanged under a limited-data
// label so consumers can tell degraded results apart.
type EnhancedTDPropCalculator struct {
	baseline *TDPropCalculator
	signals  SignalStore
}

// NewEnhancedTDPropCalculator composes the enhanced calculator over an
// existing baseline instance. The baseline formula lives only in the
// baseline calculator.
func NewEnhancedTDPropCalculator(baseline *TDPropCalculator, signals SignalStore) *EnhancedTDPropCalculator {
	return &EnhancedTDPropCalculator{baseline: baseline, signals: signals}
}

// Name returns the strategy name.
func (c *EnhancedTDPropCalculator) Name() string {
	return NamePropsEnhanced
}

// LimitedName is the label applied to records that fell back to the
// baseline edge for lack of secondary signals.
func (c *EnhancedTDPropCalculator) LimitedName() string {
	return "qb_td_props_limited"
}

// CalculateEdges refines the baseline output. Adjusted edges are re-filtered
// against minEdgePct: an edge that started above the threshold may be
// adjusted below it and is then dropped from the enhanced output.
func (c *EnhancedTDPropCalculator) CalculateEdges(ctx context.Context, week, season int, minEdgePct float64) ([]models.EdgeRecord, error) {
	baseRecords, err := c.baseline.CalculateEdges(ctx, week, season, minEdgePct)
	if err != nil {
		return nil, fmt.Errorf("baseline calculation: %w", err)
	}

	var records []models.EdgeRecord
	for _, base := range baseRecords {
		subject, _ := base.Fields["subject"].(string)
		opponent, _ := base.Fields["opponent"].(string)

		rzRate, rzOK := c.redZoneRate(ctx, subject, season)
		rating, ratingOK := c.defenseRating(ctx, opponent, season)

		if !rzOK && !ratingOK {
			records = append(records, c.limitedRecord(base))
			continue
		}

		multiplier, notes := adjustment(rzRate, rzOK, rating, ratingOK)
		adjusted := base.EdgePct * multiplier
		if adjusted < minEdgePct {
			continue
		}

		rec := base
		rec.Strategy = c.Name()
		rec.EdgePct = adjusted
		rec.Reasoning = fmt.Sprintf("%s; %s (edge %.1f%% -> %.1f%%)",
			base.Reasoning, strings.Join(notes, ", "), base.EdgePct, adjusted)
		rec.Fields = cloneFields(base.Fields)
		rec.Fields["model_version"] = models.ModelEnhanced.String()
		rec.Fields["base_edge_pct"] = base.EdgePct
		rec.Fields["adjustment_multiplier"] = multiplier
		if rzOK {
			rec.Fields["red_zone_rate"] = rzRate
		}
		if ratingOK {
			rec.Fields["opponent_rating"] = rating
		}
		records = append(records, rec)
	}

	return records, nil
}

func (c *EnhancedTDPropCalculator) redZoneRate(ctx context.Context, subject string, season int) (float64, bool) {
	if subject == "" {
		return 0, false
	}
	rate, ok, err := c.signals.RedZoneRate(ctx, subject, season, redZoneTrailingWeeks)
	if err != nil || !ok {
		return 0, false
	}
	return rate, true
}

func (c *EnhancedTDPropCalculator) defenseRating(ctx context.Context, team string, season int) (string, bool) {
	if team == "" {
		return "", false
	}
	rating, ok, err := c.signals.DefenseRating(ctx, team, season)
	if err != nil || !ok {
		return "", false
	}
	return rating, true
}

// limitedRecord re-emits a baseline record under the limited-data label.
// The edge number is untouched.
func (c *EnhancedTDPropCalculator) limitedRecord(base models.EdgeRecord) models.EdgeRecord {
	rec := base
	rec.Strategy = c.LimitedName()
	rec.Reasoning = base.Reasoning + "; secondary signals unavailable, baseline edge re-emitted"
	rec.Fields = cloneFields(base.Fields)
	rec.Fields["model_version"] = models.ModelEnhancedLimited.String()
	return rec
}

// adjustment derives the composite multiplier and explanation fragments from
// whichever signals are available.
func adjustment(rzRate float64, rzOK bool, rating string, ratingOK bool) (float64, []string) {
	multiplier := 1.0
	var notes []string

	if rzOK {
		switch {
		case rzRate > redZoneHotThreshold:
			multiplier *= redZoneHotMultiplier
			notes = append(notes, fmt.Sprintf("red-zone rate %.2f hot (x%.2f)", rzRate, redZoneHotMultiplier))
		case rzRate > redZoneWarmThreshold:
			multiplier *= redZoneWarmMultiplier
			notes = append(notes, fmt.Sprintf("red-zone rate %.2f warm (x%.2f)", rzRate, redZoneWarmMultiplier))
		case rzRate > 0 && rzRate < redZoneColdThreshold:
			multiplier *= redZoneColdMultiplier
			notes = append(notes, fmt.Sprintf("red-zone rate %.2f cold (x%.2f)", rzRate, redZoneColdMultiplier))
		default:
			notes = append(notes, fmt.Sprintf("red-zone rate %.2f neutral", rzRate))
		}
	}

	if ratingOK {
		switch rating {
		case "weak":
			multiplier *= weakDefenseMultiplier
			notes = append(notes, fmt.Sprintf("weak pass defense (x%.2f)", weakDefenseMultiplier))
		case "strong":
			multiplier *= strongDefenseMultiplier
			notes = append(notes, fmt.Sprintf("strong pass defense (x%.2f)", strongDefenseMultiplier))
		default:
			notes = append(notes, "average pass defense")
		}
	}

	return multiplier, notes
}

func cloneFields(fields map[string]any) map[string]any {
	cloned := make(map[string]any, len(fields))
	for k, v := range fields {
		cloned[k] = v
	}
	return cloned
}
