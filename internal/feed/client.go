// Package feed pulls team stats, player stats, schedules and odds quotes from
// upstream HTTP feeds and writes them through the repository layer.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// Client fetches stat and odds payloads from the configured upstream feeds
type Client struct {
	http     *RateLimitedHTTPClient
	statsURL string
	oddsURL  string
	apiKey   string
	logger   *logrus.Logger
}

// NewClient creates a feed client from configuration
func NewClient(cfg *config.FeedConfig, logger *logrus.Logger) *Client {
	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = cfg.RetryAttempts
	httpCfg.RateLimit = float64(cfg.RequestsPerSecond)
	httpCfg.CircuitBreakerMax = cfg.FailureThreshold

	return &Client{
		http:     NewRateLimitedHTTPClient(httpCfg, nil),
		statsURL: cfg.StatsURL,
		oddsURL:  cfg.OddsURL,
		apiKey:   cfg.APIKey,
		logger:   logger,
	}
}

// teamStatsPayload is the wire shape of the team stats endpoint
type teamStatsPayload struct {
	Teams []TeamStatsEntry `json:"teams"`
}

// TeamStatsEntry is one team-unit stat snapshot from the feed
type TeamStatsEntry struct {
	Team        string             `json:"team"`
	Unit        string             `json:"unit"`
	Season      int                `json:"season"`
	Week        int                `json:"week"`
	GamesPlayed int                `json:"games_played"`
	Metrics     map[string]float64 `json:"metrics"`
}

// playerStatsPayload is the wire shape of the player stats endpoint
type playerStatsPayload struct {
	Players []PlayerStatsEntry `json:"players"`
}

// PlayerStatsEntry is one player stat snapshot from the feed
type PlayerStatsEntry struct {
	Name        string             `json:"name"`
	Team        string             `json:"team"`
	Position    string             `json:"position"`
	Season      int                `json:"season"`
	Week        int                `json:"week"`
	GamesPlayed int                `json:"games_played"`
	Metrics     map[string]float64 `json:"metrics"`
}

// schedulePayload is the wire shape of the schedule endpoint
type schedulePayload struct {
	Games []models.Matchup `json:"games"`
}

// oddsPayload is the wire shape of the odds endpoint
type oddsPayload struct {
	Quotes []oddsEntry `json:"quotes"`
}

type oddsEntry struct {
	Subject      string    `json:"subject"`
	MarketLine   float64   `json:"market_line"`
	AmericanOdds int       `json:"american_odds"`
	Sportsbook   string    `json:"sportsbook"`
	ObservedAt   time.Time `json:"observed_at"`
}

// FetchTeamStats retrieves team-unit stat snapshots for one week
func (c *Client) FetchTeamStats(ctx context.Context, week, season int) ([]TeamStatsEntry, error) {
	url := fmt.Sprintf("%s/teams?week=%d&season=%d", c.statsURL, week, season)

	var payload teamStatsPayload
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch team stats: %w", err)
	}

	return payload.Teams, nil
}

// FetchPlayerStats retrieves player stat snapshots for one week
func (c *Client) FetchPlayerStats(ctx context.Context, week, season int) ([]PlayerStatsEntry, error) {
	url := fmt.Sprintf("%s/players?week=%d&season=%d", c.statsURL, week, season)

	var payload playerStatsPayload
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch player stats: %w", err)
	}

	return payload.Players, nil
}

// FetchSchedule retrieves the slate of games for one week
func (c *Client) FetchSchedule(ctx context.Context, week, season int) ([]models.Matchup, error) {
	url := fmt.Sprintf("%s/schedule?week=%d&season=%d", c.statsURL, week, season)

	var payload schedulePayload
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	return payload.Games, nil
}

// FetchOdds retrieves the current quote board for one week. Quotes with
// malformed odds are dropped with a warning rather than failing the batch.
func (c *Client) FetchOdds(ctx context.Context, week, season int) ([]*models.OddsQuote, error) {
	url := fmt.Sprintf("%s/quotes?week=%d&season=%d", c.oddsURL, week, season)

	var payload oddsPayload
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch odds: %w", err)
	}

	quotes := make([]*models.OddsQuote, 0, len(payload.Quotes))
	for _, entry := range payload.Quotes {
		quote, err := models.NewOddsQuote(entry.Subject, entry.MarketLine, entry.AmericanOdds, entry.Sportsbook, entry.ObservedAt)
		if err != nil {
			c.logger.WithFields(logrus.Fields{
				"subject":    entry.Subject,
				"sportsbook": entry.Sportsbook,
			}).WithError(err).Warn("Dropping malformed odds quote")
			continue
		}
		quotes = append(quotes, quote)
	}

	return quotes, nil
}

// getJSON executes an authenticated GET and decodes the JSON response
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Close releases the underlying HTTP client resources
func (c *Client) Close() error {
	return c.http.Close()
}
