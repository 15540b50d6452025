// Package calibration tracks prediction accuracy against realized outcomes
// so model generations can be compared, adjusted, or rolled back.
package calibration

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// Log is the append-only prediction store behind the calibrator. Implemented
// by the repository layer for persistence and by MemoryLog for tests and
// single-process runs.
type Log interface {
	// Append stores a new entry. Appending an id that already exists must
	// fail with models.ErrDuplicateKey rather than overwrite.
	Append(ctx context.Context, entry *models.PredictionLogEntry) error
	// SetOutcome records the realized outcome for an entry. Returns false
	// when the id is unknown; the entry then stays pending.
	SetOutcome(ctx context.Context, id string, outcome bool, at time.Time) (bool, error)
	// CompletedSince returns entries predicted at or after cutoff whose
	// outcome has been recorded.
	CompletedSince(ctx context.Context, cutoff time.Time) ([]*models.PredictionLogEntry, error)
}

// MemoryLog is an in-memory Log. Outcome updates are keyed and idempotent;
// last writer wins per prediction id.
type MemoryLog struct {
	mu      sync.RWMutex
	entries map[string]*models.PredictionLogEntry
	order   []string
}

// NewMemoryLog creates an empty in-memory prediction log.
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{entries: make(map[string]*models.PredictionLogEntry)}
}

// Append stores a new entry, rejecting duplicate ids.
func (l *MemoryLog) Append(_ context.Context, entry *models.PredictionLogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.entries[entry.ID]; exists {
		return models.ErrDuplicateKey
	}
	stored := *entry
	l.entries[entry.ID] = &stored
	l.order = append(l.order, entry.ID)
	return nil
}

// SetOutcome records an outcome for a known id.
func (l *MemoryLog) SetOutcome(_ context.Context, id string, outcome bool, at time.Time) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[id]
	if !ok {
		return false, nil
	}
	entry.Outcome = &outcome
	entry.OutcomeRecordedAt = &at
	return true, nil
}

// CompletedSince returns completed entries in append order.
func (l *MemoryLog) CompletedSince(_ context.Context, cutoff time.Time) ([]*models.PredictionLogEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []*models.PredictionLogEntry
	for _, id := range l.order {
		entry := l.entries[id]
		if !entry.Completed() || entry.PredictedAt.Before(cutoff) {
			continue
		}
		copied := *entry
		out = append(out, &copied)
	}
	return out, nil
}

// Len returns the number of logged predictions.
func (l *MemoryLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
