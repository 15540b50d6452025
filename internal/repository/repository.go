package repository

import (
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Stats         StatRepository
	Signals       SignalRepository
	Odds          OddsRepository
	Matchups      MatchupRepository
	PredictionLog PredictionLogRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Stats:         NewPostgresStatRepository(db),
		Signals:       NewPostgresSignalRepository(db),
		Odds:          NewPostgresOddsRepository(db),
		Matchups:      NewPostgresMatchupRepository(db),
		PredictionLog: NewPostgresPredictionLogRepository(db),
	}, nil
}
