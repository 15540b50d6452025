// Package strategy contains the per-strategy edge calculators and the
// aggregator that unifies their output into one ranked feed.
package strategy

import (
	"context"
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// Calculator computes edge records for one betting strategy over a week.
type Calculator interface {
	Name() string
	CalculateEdges(ctx context.Context, week, season int, minEdgePct float64) ([]models.EdgeRecord, error)
}

// StrategyError wraps a calculator failure with the strategy that produced
// it. The aggregator collects these instead of letting one strategy abort
// the run.
type StrategyError struct {
	Strategy string
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("strategy %s: %v", e.Strategy, e.Err)
}

func (e *StrategyError) Unwrap() error {
	return e.Err
}

// StatStore supplies the statistical rows calculators feed into the models.
// Implemented by the repository layer; faked in tests.
type StatStore interface {
	// QuarterbackProfile returns the starting quarterback's season profile
	// for a team as of a week.
	QuarterbackProfile(ctx context.Context, team string, week, season int) (*models.StatProfile, error)
	// DefenseProfile returns a team's defensive season profile as of a week.
	DefenseProfile(ctx context.Context, team string, week, season int) (*models.StatProfile, error)
	// TeamProfiles returns every team's season profile as of a week.
	TeamProfiles(ctx context.Context, week, season int) ([]*models.StatProfile, error)
}

// SignalStore supplies the secondary signals only the enhanced calculators
// use. The boolean reports availability; unavailable signals trigger the
// limited-data fallback, not an error.
type SignalStore interface {
	// RedZoneRate returns a subject's red-zone touchdown rate over a
	// trailing window of weeks.
	RedZoneRate(ctx context.Context, subject string, season, trailingWeeks int) (float64, bool, error)
	// DefenseRating returns a categorical opponent-strength rating
	// ("weak", "average", "strong") for a team's pass defense.
	DefenseRating(ctx context.Context, team string, season int) (string, bool, error)
}

// OddsStore supplies bookmaker quotes for a proposition.
type OddsStore interface {
	QuotesForSubject(ctx context.Context, subject string, week, season int) ([]*models.OddsQuote, error)
}

// MatchupStore supplies the week's schedule.
type MatchupStore interface {
	WeekMatchups(ctx context.Context, week, season int) ([]*models.Matchup, error)
}
