package feed

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/repository"
)

// Ingester pulls one week of upstream data and persists it through the
// repository layer. Each section is independent; a failure in one section
// aborts the sync so a partial week is never silently recorded as complete.
type Ingester struct {
	client *Client
	repos  *repository.Repositories
	logger *logrus.Logger
}

// NewIngester creates a feed ingester
func NewIngester(client *Client, repos *repository.Repositories, logger *logrus.Logger) *Ingester {
	return &Ingester{
		client: client,
		repos:  repos,
		logger: logger,
	}
}

// SyncWeek pulls stats, schedule and odds for one week and stores them
func (i *Ingester) SyncWeek(ctx context.Context, week, season int) error {
	i.logger.WithFields(logrus.Fields{
		"week":   week,
		"season": season,
	}).Info("Starting week sync")

	if err := i.syncTeamStats(ctx, week, season); err != nil {
		return err
	}
	if err := i.syncPlayerStats(ctx, week, season); err != nil {
		return err
	}
	if err := i.syncSchedule(ctx, week, season); err != nil {
		return err
	}
	if err := i.syncOdds(ctx, week, season); err != nil {
		return err
	}

	i.logger.WithFields(logrus.Fields{
		"week":   week,
		"season": season,
	}).Info("Week sync completed")

	return nil
}

func (i *Ingester) syncTeamStats(ctx context.Context, week, season int) error {
	teams, err := i.client.FetchTeamStats(ctx, week, season)
	if err != nil {
		return err
	}

	for _, entry := range teams {
		profile, err := models.NewStatProfile(entry.Team, entry.Season, entry.Week, entry.GamesPlayed, entry.Metrics)
		if err != nil {
			i.logger.WithField("team", entry.Team).WithError(err).Warn("Skipping invalid team stat entry")
			continue
		}
		unit := entry.Unit
		if unit == "" {
			unit = "offense"
		}
		if err := i.repos.Stats.UpsertTeamProfile(ctx, profile, unit, week); err != nil {
			return fmt.Errorf("week sync: %w", err)
		}
	}

	return nil
}

func (i *Ingester) syncPlayerStats(ctx context.Context, week, season int) error {
	players, err := i.client.FetchPlayerStats(ctx, week, season)
	if err != nil {
		return err
	}

	for _, entry := range players {
		profile, err := models.NewStatProfile(entry.Name, entry.Season, entry.Week, entry.GamesPlayed, entry.Metrics)
		if err != nil {
			i.logger.WithField("player", entry.Name).WithError(err).Warn("Skipping invalid player stat entry")
			continue
		}
		if err := i.repos.Stats.UpsertPlayerProfile(ctx, profile, entry.Team, entry.Position, week); err != nil {
			return fmt.Errorf("week sync: %w", err)
		}
	}

	return nil
}

func (i *Ingester) syncSchedule(ctx context.Context, week, season int) error {
	games, err := i.client.FetchSchedule(ctx, week, season)
	if err != nil {
		return err
	}

	for idx := range games {
		if err := i.repos.Matchups.Upsert(ctx, &games[idx]); err != nil {
			return fmt.Errorf("week sync: %w", err)
		}
	}

	return nil
}

func (i *Ingester) syncOdds(ctx context.Context, week, season int) error {
	quotes, err := i.client.FetchOdds(ctx, week, season)
	if err != nil {
		return err
	}

	if err := i.repos.Odds.InsertBatch(ctx, week, season, quotes); err != nil {
		return fmt.Errorf("week sync: %w", err)
	}

	i.logger.WithField("quotes", len(quotes)).Debug("Stored odds batch")
	return nil
}
