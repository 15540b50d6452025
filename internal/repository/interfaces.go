package repository

import (
	"context"
	"time"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// StatRepository defines the interface for stat profile access. It satisfies
// the strategy package's StatStore.
type StatRepository interface {
	QuarterbackProfile(ctx context.Context, team string, week, season int) (*models.StatProfile, error)
	DefenseProfile(ctx context.Context, team string, week, season int) (*models.StatProfile, error)
	TeamProfiles(ctx context.Context, week, season int) ([]*models.StatProfile, error)
	UpsertTeamProfile(ctx context.Context, profile *models.StatProfile, unit string, week int) error
	UpsertPlayerProfile(ctx context.Context, profile *models.StatProfile, team, position string, week int) error
}

// SignalRepository defines the interface for enhanced-model secondary
// signals. It satisfies the strategy package's SignalStore.
type SignalRepository interface {
	RedZoneRate(ctx context.Context, subject string, season, trailingWeeks int) (float64, bool, error)
	DefenseRating(ctx context.Context, team string, season int) (string, bool, error)
}

// OddsRepository defines the interface for odds quote access. It satisfies
// the strategy package's OddsStore.
type OddsRepository interface {
	QuotesForSubject(ctx context.Context, subject string, week, season int) ([]*models.OddsQuote, error)
	InsertBatch(ctx context.Context, week, season int, quotes []*models.OddsQuote) error
}

// MatchupRepository defines the interface for schedule access. It satisfies
// the strategy package's MatchupStore.
type MatchupRepository interface {
	WeekMatchups(ctx context.Context, week, season int) ([]*models.Matchup, error)
	Upsert(ctx context.Context, matchup *models.Matchup) error
}

// PredictionLogRepository defines the interface for the calibration log. It
// satisfies the calibration package's Log.
type PredictionLogRepository interface {
	Append(ctx context.Context, entry *models.PredictionLogEntry) error
	SetOutcome(ctx context.Context, id string, outcome bool, at time.Time) (bool, error)
	CompletedSince(ctx context.Context, cutoff time.Time) ([]*models.PredictionLogEntry, error)
}
