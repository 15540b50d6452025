// Package models defines the core domain records shared across the engine.
package models

import (
	"fmt"
	"time"
)

// StatProfile is an immutable snapshot of named numeric metrics for one
// subject (player or team) scoped to a season/week. Produced by the data
// layer; consumed read-only by the strategy calculators and models.
type StatProfile struct {
	Subject     string             `db:"subject" json:"subject" validate:"required"`
	Team        string             `db:"team" json:"team"`
	Season      int                `db:"season" json:"season" validate:"required,gt=0"`
	Week        int                `db:"week" json:"week" validate:"gte=0"`
	GamesPlayed int                `db:"games_played" json:"games_played" validate:"gte=0"`
	Metrics     map[string]float64 `db:"metrics" json:"metrics"`
}

// NewStatProfile constructs a validated stat profile. Unknown subjects and
// nil metric maps are rejected here rather than defaulting deep inside the
// probability formulas.
func NewStatProfile(subject string, season, week, gamesPlayed int, metrics map[string]float64) (*StatProfile, error) {
	if subject == "" {
		return nil, fmt.Errorf("stat profile: %w", ErrSubjectRequired)
	}
	if season <= 0 {
		return nil, fmt.Errorf("stat profile for %s: invalid season %d", subject, season)
	}
	if metrics == nil {
		metrics = map[string]float64{}
	}
	return &StatProfile{
		Subject:     subject,
		Season:      season,
		Week:        week,
		GamesPlayed: gamesPlayed,
		Metrics:     metrics,
	}, nil
}

// Metric returns a named metric and whether it was present.
func (p *StatProfile) Metric(name string) (float64, bool) {
	if p == nil || p.Metrics == nil {
		return 0, false
	}
	v, ok := p.Metrics[name]
	return v, ok
}

// MetricOr returns a named metric, falling back to def when absent.
func (p *StatProfile) MetricOr(name string, def float64) float64 {
	if v, ok := p.Metric(name); ok {
		return v
	}
	return def
}

// PerGame returns a metric divided by games played, guarding the zero-games
// case by treating the rate as zero. Insufficient data yields a conservative
// neutral rate, never an error.
func (p *StatProfile) PerGame(name string) float64 {
	v, ok := p.Metric(name)
	if !ok || p.GamesPlayed <= 0 {
		return 0
	}
	return v / float64(p.GamesPlayed)
}

// Matchup identifies one scheduled game between two subjects.
type Matchup struct {
	HomeTeam       string     `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam       string     `db:"away_team" json:"away_team" validate:"required"`
	Week           int        `db:"week" json:"week" validate:"required,gt=0"`
	Season         int        `db:"season" json:"season" validate:"required,gt=0"`
	GameDate       *time.Time `db:"game_date" json:"game_date,omitempty"`
	IsDivisionGame bool       `db:"is_division_game" json:"is_division_game"`
	IsPrimeTime    bool       `db:"is_prime_time" json:"is_prime_time"`
}

// Label renders the matchup in away @ home form for display.
func (m *Matchup) Label() string {
	return fmt.Sprintf("%s @ %s", m.AwayTeam, m.HomeTeam)
}
