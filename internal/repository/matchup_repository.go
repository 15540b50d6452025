package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// PostgresMatchupRepository implements MatchupRepository for PostgreSQL
type PostgresMatchupRepository struct {
	db *database.DB
}

// NewPostgresMatchupRepository creates a new matchup repository
func NewPostgresMatchupRepository(db *database.DB) MatchupRepository {
	return &PostgresMatchupRepository{db: db}
}

// WeekMatchups retrieves all scheduled games for one week ordered by kickoff
func (r *PostgresMatchupRepository) WeekMatchups(ctx context.Context, week, season int) ([]*models.Matchup, error) {
	query := `
		SELECT home_team, away_team, week, season, game_date, is_division_game, is_prime_time
		FROM matchups
		WHERE week = $1 AND season = $2
		ORDER BY game_date NULLS LAST, home_team
	`

	rows, err := r.db.GetPool().Query(ctx, query, week, season)
	if err != nil {
		return nil, fmt.Errorf("failed to get matchups: %w", err)
	}
	defer rows.Close()

	var matchups []*models.Matchup
	for rows.Next() {
		matchup := &models.Matchup{}
		if err := rows.Scan(
			&matchup.HomeTeam, &matchup.AwayTeam, &matchup.Week, &matchup.Season,
			&matchup.GameDate, &matchup.IsDivisionGame, &matchup.IsPrimeTime,
		); err != nil {
			return nil, fmt.Errorf("failed to scan matchup: %w", err)
		}
		matchups = append(matchups, matchup)
	}

	return matchups, rows.Err()
}

// Upsert inserts or replaces one scheduled game
func (r *PostgresMatchupRepository) Upsert(ctx context.Context, matchup *models.Matchup) error {
	query := `
		INSERT INTO matchups (home_team, away_team, week, season, game_date, is_division_game, is_prime_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (home_team, away_team, week, season)
		DO UPDATE SET game_date = EXCLUDED.game_date,
		              is_division_game = EXCLUDED.is_division_game,
		              is_prime_time = EXCLUDED.is_prime_time
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		matchup.HomeTeam, matchup.AwayTeam, matchup.Week, matchup.Season,
		matchup.GameDate, matchup.IsDivisionGame, matchup.IsPrimeTime,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert matchup %s: %w", matchup.Label(), err)
	}

	return nil
}
