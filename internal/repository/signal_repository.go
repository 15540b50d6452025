package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/gridiron-edge/internal/database"
)

// PostgresSignalRepository implements SignalRepository for PostgreSQL
type PostgresSignalRepository struct {
	db *database.DB
}

// NewPostgresSignalRepository creates a new signal repository
func NewPostgresSignalRepository(db *database.DB) SignalRepository {
	return &PostgresSignalRepository{db: db}
}

// RedZoneRate computes a subject's touchdown conversion rate on red zone
// trips over the trailing window. The boolean reports whether enough trips
// exist to make the rate meaningful.
func (r *PostgresSignalRepository) RedZoneRate(ctx context.Context, subject string, season, trailingWeeks int) (float64, bool, error) {
	query := `
		SELECT COALESCE(SUM(red_zone_touchdowns), 0), COALESCE(SUM(red_zone_trips), 0)
		FROM red_zone_stats
		WHERE subject = $1 AND season = $2
		  AND week > (SELECT COALESCE(MAX(week), 0) FROM red_zone_stats WHERE subject = $1 AND season = $2) - $3
	`

	var touchdowns, trips int
	err := r.db.GetPool().QueryRow(ctx, query, subject, season, trailingWeeks).Scan(&touchdowns, &trips)
	if err != nil {
		return 0, false, fmt.Errorf("failed to get red zone rate for %s: %w", subject, err)
	}
	if trips == 0 {
		return 0, false, nil
	}

	return float64(touchdowns) / float64(trips), true, nil
}

// DefenseRating retrieves a team's season defensive rating label. The boolean
// reports whether a rating exists for the team.
func (r *PostgresSignalRepository) DefenseRating(ctx context.Context, team string, season int) (string, bool, error) {
	query := `
		SELECT rating FROM defense_ratings WHERE team = $1 AND season = $2
	`

	var rating string
	err := r.db.GetPool().QueryRow(ctx, query, team, season).Scan(&rating)
	if err == pgx.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get defense rating for %s: %w", team, err)
	}

	return rating, true, nil
}
