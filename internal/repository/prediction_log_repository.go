package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// uniqueViolation is the PostgreSQL error code for duplicate keys
const uniqueViolation = "23505"

// PostgresPredictionLogRepository implements PredictionLogRepository for
// PostgreSQL. It backs the calibration log when the engine runs against a
// database instead of the in-memory log.
type PostgresPredictionLogRepository struct {
	db *database.DB
}

// NewPostgresPredictionLogRepository creates a new prediction log repository
func NewPostgresPredictionLogRepository(db *database.DB) PredictionLogRepository {
	return &PostgresPredictionLogRepository{db: db}
}

// Append stores a new prediction entry, rejecting duplicate ids with
// models.ErrDuplicateKey so callers can distinguish replays from failures.
func (r *PostgresPredictionLogRepository) Append(ctx context.Context, entry *models.PredictionLogEntry) error {
	query := `
		INSERT INTO prediction_log (id, subject, week, season, predicted_probability,
		                            american_odds, model_version, strategy, confidence, predicted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		entry.ID, entry.Subject, entry.Week, entry.Season, entry.PredictedProbability,
		entry.AmericanOdds, entry.ModelVersion.String(), entry.Strategy, string(entry.Confidence), entry.PredictedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.ErrDuplicateKey
		}
		return fmt.Errorf("failed to append prediction %s: %w", entry.ID, err)
	}

	return nil
}

// SetOutcome records the realized outcome for an entry. Returns false when
// the id is unknown.
func (r *PostgresPredictionLogRepository) SetOutcome(ctx context.Context, id string, outcome bool, at time.Time) (bool, error) {
	query := `
		UPDATE prediction_log
		SET outcome = $2, outcome_recorded_at = $3
		WHERE id = $1
	`

	tag, err := r.db.GetPool().Exec(ctx, query, id, outcome, at)
	if err != nil {
		return false, fmt.Errorf("failed to set outcome for %s: %w", id, err)
	}

	return tag.RowsAffected() > 0, nil
}

// CompletedSince returns completed entries predicted at or after cutoff,
// oldest first.
func (r *PostgresPredictionLogRepository) CompletedSince(ctx context.Context, cutoff time.Time) ([]*models.PredictionLogEntry, error) {
	query := `
		SELECT id, subject, week, season, predicted_probability, american_odds,
		       model_version, strategy, confidence, predicted_at, outcome, outcome_recorded_at
		FROM prediction_log
		WHERE predicted_at >= $1 AND outcome IS NOT NULL
		ORDER BY predicted_at
	`

	rows, err := r.db.GetPool().Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed predictions: %w", err)
	}
	defer rows.Close()

	var entries []*models.PredictionLogEntry
	for rows.Next() {
		entry := &models.PredictionLogEntry{}
		var version, confidence string
		if err := rows.Scan(
			&entry.ID, &entry.Subject, &entry.Week, &entry.Season,
			&entry.PredictedProbability, &entry.AmericanOdds,
			&version, &entry.Strategy, &confidence, &entry.PredictedAt,
			&entry.Outcome, &entry.OutcomeRecordedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan prediction entry: %w", err)
		}
		if v, ok := models.ParseModelVersion(version); ok {
			entry.ModelVersion = v
		}
		entry.Confidence = models.Confidence(confidence)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
