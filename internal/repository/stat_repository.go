package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// PostgresStatRepository implements StatRepository for PostgreSQL
type PostgresStatRepository struct {
	db *database.DB
}

// NewPostgresStatRepository creates a new stat repository
func NewPostgresStatRepository(db *database.DB) StatRepository {
	return &PostgresStatRepository{db: db}
}

// QuarterbackProfile retrieves the starting quarterback profile for a team
// through the given week. Returns models.ErrNotFound when the team has no
// quarterback on record.
func (r *PostgresStatRepository) QuarterbackProfile(ctx context.Context, team string, week, season int) (*models.StatProfile, error) {
	query := `
		SELECT subject, team, season, week, games_played, metrics
		FROM player_stats
		WHERE team = $1 AND position = 'QB' AND season = $2 AND week <= $3
		ORDER BY week DESC, games_played DESC
		LIMIT 1
	`

	profile := &models.StatProfile{}
	err := r.db.GetPool().QueryRow(ctx, query, team, season, week).Scan(
		&profile.Subject, &profile.Team, &profile.Season, &profile.Week,
		&profile.GamesPlayed, &profile.Metrics,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quarterback profile: %w", err)
	}

	return profile, nil
}

// DefenseProfile retrieves a team's defensive profile through the given week
func (r *PostgresStatRepository) DefenseProfile(ctx context.Context, team string, week, season int) (*models.StatProfile, error) {
	return r.teamProfile(ctx, team, "defense", week, season)
}

// TeamProfiles retrieves the offensive profiles for every team through the
// given week, ordered by team name
func (r *PostgresStatRepository) TeamProfiles(ctx context.Context, week, season int) ([]*models.StatProfile, error) {
	query := `
		SELECT DISTINCT ON (subject) subject, season, week, games_played, metrics
		FROM team_stats
		WHERE unit = 'offense' AND season = $1 AND week <= $2
		ORDER BY subject, week DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query, season, week)
	if err != nil {
		return nil, fmt.Errorf("failed to get team profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.StatProfile
	for rows.Next() {
		profile := &models.StatProfile{}
		if err := rows.Scan(&profile.Subject, &profile.Season, &profile.Week, &profile.GamesPlayed, &profile.Metrics); err != nil {
			return nil, fmt.Errorf("failed to scan team profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

// UpsertTeamProfile inserts or replaces a team's profile for one unit and week
func (r *PostgresStatRepository) UpsertTeamProfile(ctx context.Context, profile *models.StatProfile, unit string, week int) error {
	query := `
		INSERT INTO team_stats (subject, unit, season, week, games_played, metrics)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (subject, unit, season, week)
		DO UPDATE SET games_played = EXCLUDED.games_played, metrics = EXCLUDED.metrics
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		profile.Subject, unit, profile.Season, week, profile.GamesPlayed, profile.Metrics,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert team profile: %w", err)
	}

	return nil
}

// UpsertPlayerProfile inserts or replaces a player's profile for a week
func (r *PostgresStatRepository) UpsertPlayerProfile(ctx context.Context, profile *models.StatProfile, team, position string, week int) error {
	query := `
		INSERT INTO player_stats (subject, team, position, season, week, games_played, metrics)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (subject, season, week)
		DO UPDATE SET team = EXCLUDED.team, position = EXCLUDED.position,
		              games_played = EXCLUDED.games_played, metrics = EXCLUDED.metrics
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		profile.Subject, team, position, profile.Season, week, profile.GamesPlayed, profile.Metrics,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert player profile: %w", err)
	}

	return nil
}

func (r *PostgresStatRepository) teamProfile(ctx context.Context, team, unit string, week, season int) (*models.StatProfile, error) {
	query := `
		SELECT subject, season, week, games_played, metrics
		FROM team_stats
		WHERE subject = $1 AND unit = $2 AND season = $3 AND week <= $4
		ORDER BY week DESC
		LIMIT 1
	`

	profile := &models.StatProfile{}
	err := r.db.GetPool().QueryRow(ctx, query, team, unit, season, week).Scan(
		&profile.Subject, &profile.Season, &profile.Week, &profile.GamesPlayed, &profile.Metrics,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s profile: %w", unit, err)
	}

	return profile, nil
}
