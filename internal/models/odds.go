package models

import (
	"fmt"
	"time"
)

// OddsQuote is one sportsbook's price for a proposition. A single line can
// have many concurrent quotes from different books; the engine treats each
// quote independently.
type OddsQuote struct {
	Subject      string    `db:"subject" json:"subject" validate:"required"`
	MarketLine   float64   `db:"market_line" json:"market_line"`
	AmericanOdds int       `db:"american_odds" json:"american_odds" validate:"required"`
	Sportsbook   string    `db:"sportsbook" json:"sportsbook" validate:"required"`
	ObservedAt   time.Time `db:"observed_at" json:"observed_at" validate:"required"`
}

// NewOddsQuote constructs a validated quote. American odds of exactly zero
// are rejected at construction instead of surfacing later as a division by
// zero inside the converter.
func NewOddsQuote(subject string, marketLine float64, americanOdds int, sportsbook string, observedAt time.Time) (*OddsQuote, error) {
	if subject == "" {
		return nil, fmt.Errorf("odds quote: %w", ErrSubjectRequired)
	}
	if americanOdds == 0 {
		return nil, fmt.Errorf("odds quote for %s: %w", subject, ErrInvalidOdds)
	}
	if sportsbook == "" {
		return nil, fmt.Errorf("odds quote for %s: sportsbook is required", subject)
	}
	return &OddsQuote{
		Subject:      subject,
		MarketLine:   marketLine,
		AmericanOdds: americanOdds,
		Sportsbook:   sportsbook,
		ObservedAt:   observedAt,
	}, nil
}

// IsFavorite reports whether the quote prices the subject as a favorite.
func (q *OddsQuote) IsFavorite() bool {
	return q.AmericanOdds < 0
}
