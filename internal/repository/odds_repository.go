package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// PostgresOddsRepository implements OddsRepository for PostgreSQL
type PostgresOddsRepository struct {
	db *database.DB
}

// NewPostgresOddsRepository creates a new odds repository
func NewPostgresOddsRepository(db *database.DB) OddsRepository {
	return &PostgresOddsRepository{db: db}
}

// QuotesForSubject retrieves the latest quote per sportsbook for a subject in
// one week. Stale quotes from earlier captures of the same book are skipped.
func (r *PostgresOddsRepository) QuotesForSubject(ctx context.Context, subject string, week, season int) ([]*models.OddsQuote, error) {
	query := `
		SELECT DISTINCT ON (sportsbook) subject, market_line, american_odds, sportsbook, observed_at
		FROM odds_quotes
		WHERE subject = $1 AND week = $2 AND season = $3
		ORDER BY sportsbook, observed_at DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query, subject, week, season)
	if err != nil {
		return nil, fmt.Errorf("failed to get quotes for %s: %w", subject, err)
	}
	defer rows.Close()

	var quotes []*models.OddsQuote
	for rows.Next() {
		quote := &models.OddsQuote{}
		if err := rows.Scan(
			&quote.Subject, &quote.MarketLine, &quote.AmericanOdds,
			&quote.Sportsbook, &quote.ObservedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan odds quote: %w", err)
		}
		quotes = append(quotes, quote)
	}

	return quotes, rows.Err()
}

// InsertBatch stores a batch of captured quotes for one week
func (r *PostgresOddsRepository) InsertBatch(ctx context.Context, week, season int, quotes []*models.OddsQuote) error {
	query := `
		INSERT INTO odds_quotes (subject, market_line, american_odds, sportsbook, observed_at, week, season)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (subject, sportsbook, week, season, observed_at) DO NOTHING
	`

	for _, quote := range quotes {
		_, err := r.db.GetPool().Exec(ctx, query,
			quote.Subject, quote.MarketLine, quote.AmericanOdds,
			quote.Sportsbook, quote.ObservedAt, week, season,
		)
		if err != nil {
			return fmt.Errorf("failed to insert odds quote for %s: %w", quote.Subject, err)
		}
	}

	return nil
}
