// Package main provides the entry point for the long-running edge server:
// scheduled feed syncs, periodic edge scans, health checks and metrics.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/cache"
	"github.com/yourusername/gridiron-edge/internal/calibration"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/feed"
	"github.com/yourusername/gridiron-edge/internal/health"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/repository"
	"github.com/yourusername/gridiron-edge/internal/scheduler"
	"github.com/yourusername/gridiron-edge/internal/strategy"
	"github.com/yourusername/gridiron-edge/internal/tracing"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	configPath := os.Getenv("GRIDIRON_EDGE_CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if cfg.Feed.SecretsManagerEnabled {
		region := os.Getenv("AWS_REGION")
		if region == "" {
			log.Fatalf("AWS_REGION must be set when the secrets manager is enabled")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, cfg.Feed.SecretsManagerKey); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel)
	if err := tracing.Initialize(tracing.Config{
		ServiceName: cfg.App.Name,
		Enabled:     cfg.Tracing.Enabled,
		DaemonAddr:  cfg.Tracing.DaemonAddr,
	}, appLog); err != nil {
		appLog.WithError(err).Fatal("Failed to initialize tracing")
	}
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     Version,
		"commit":      GitCommit,
	}).Info("Gridiron Edge server starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	appLog.Info("Database connection established")

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize repositories")
	}

	// Metrics registry and endpoint
	metrics.InitRegistry()
	if cfg.Metrics.Enabled {
		go serveMetrics(cfg, appLog)
	}

	// Strategy calculators behind the aggregator
	reasonCache := cache.New(cfg.ExplanationTTL(), time.Now)
	calculators, err := strategy.BuildCalculators(
		cfg.Strategies.Enabled,
		strategy.Stores{
			Stats:    repos.Stats,
			Signals:  repos.Signals,
			Odds:     repos.Odds,
			Matchups: repos.Matchups,
		},
		strategy.RankingConfig{
			BottomOffenseCount: cfg.Strategies.WeakOffenseCount,
			TopDefenseCount:    cfg.Strategies.StrongDefenseCount,
		},
		strategy.PropConfig{
			Bankroll:            cfg.Betting.Bankroll,
			MaxBankrollFraction: cfg.Betting.MaxBankrollFraction,
			ModelVersion:        cfg.StrategyModelVersion(),
		},
		reasonCache,
	)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to build strategy calculators")
	}
	aggregator := strategy.NewAggregator(calculators, appLog)

	// Feed client and ingester
	feedClient := feed.NewClient(&cfg.Feed, appLog)
	defer feedClient.Close()
	ingester := feed.NewIngester(feedClient, repos, appLog)

	scanLog := logger.NewStrategyLogger(appLog)
	auditLog := logger.NewAuditLogger(appLog)
	calibrator := calibration.NewCalibrator(repos.PredictionLog, cfg.Betting.Bankroll, time.Now, appLog)

	// Scheduler
	sched := scheduler.NewScheduler(appLog)
	if cfg.Scheduler.Enabled {
		week, season := cfg.Scheduler.Week, cfg.Scheduler.Season
		if season == 0 {
			season = time.Now().Year()
		}

		if err := sched.ScheduleWeekSync(cfg.Scheduler.ScanSchedule, ingester, week, season); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule week sync")
		}

		scan := func(scanCtx context.Context) error {
			start := time.Now()
			scanCtx, seg := tracing.StartSegment(scanCtx, "edge-scan")
			scanLog.LogScanStarted(week, season, cfg.Strategies.MinEdgePercent, cfg.Strategies.Enabled)

			records, failures := aggregator.GetAllEdges(scanCtx, week, season, cfg.Strategies.MinEdgePercent, nil)
			tracing.AddAnnotation(scanCtx, "edges_found", len(records))

			entries, err := calibrator.RecordEdges(scanCtx, week, season, records)
			if err != nil {
				appLog.WithError(err).Error("Failed to log scan predictions")
			}
			for _, entry := range entries {
				auditLog.LogPredictionRecorded(entry.ID, entry.Subject, entry.Strategy,
					entry.ModelVersion.String(), entry.PredictedProbability, entry.AmericanOdds, entry.PredictedAt)
			}

			tracing.CloseSegment(seg, nil)
			scanLog.LogScanCompleted(week, season, len(records), len(failures), float64(time.Since(start).Milliseconds()))
			return nil
		}
		if err := sched.ScheduleEdgeScan(cfg.Scheduler.ScanSchedule, scan); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule edge scan")
		}

		if err := sched.Start(); err != nil {
			appLog.WithError(err).Fatal("Failed to start scheduler")
		}
		defer func() {
			if err := sched.Stop(); err != nil {
				appLog.WithError(err).Error("Failed to stop scheduler")
			}
		}()
	}

	// Live odds stream, persisting quote updates as they arrive
	var stream *feed.StreamClient
	if cfg.Scheduler.Enabled && cfg.Feed.OddsStreamURL != "" {
		week, season := cfg.Scheduler.Week, cfg.Scheduler.Season
		if season == 0 {
			season = time.Now().Year()
		}

		stream = feed.NewStreamClient(cfg.Feed.OddsStreamURL, cfg.Feed.APIKey, appLog)
		stream.AddHandler(func(quote *models.OddsQuote) error {
			return repos.Odds.InsertBatch(ctx, week, season, []*models.OddsQuote{quote})
		})
		if err := stream.Connect(ctx); err != nil {
			appLog.WithError(err).Warn("Odds stream unavailable, continuing with scheduled syncs only")
			stream = nil
		} else {
			defer stream.Close()
			if err := stream.Subscribe(nil); err != nil {
				appLog.WithError(err).Warn("Odds stream subscription failed")
			}
		}
	}

	// Health server
	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Port:        fmt.Sprintf("%d", cfg.Scheduler.HealthPort),
		Logger:      appLog,
		DB:          db,
	})
	if cfg.Scheduler.Enabled {
		healthServer.AddCheck("scheduler", func(context.Context) error {
			if !sched.IsRunning() {
				return fmt.Errorf("scheduler not running")
			}
			return nil
		})
	}
	if stream != nil {
		healthServer.AddCheck("odds_stream", func(context.Context) error {
			if !stream.IsConnected() {
				return fmt.Errorf("odds stream disconnected")
			}
			return nil
		})
	}
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}
	healthServer.SetReady(true)

	appLog.Info("Gridiron Edge server ready")

	// Wait for shutdown; SIGHUP re-reads config from the environment.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	for sig := range sigCh {
		if sig == syscall.SIGHUP {
			if err := config.ReloadFromEnv(cfg); err != nil {
				appLog.WithError(err).Error("Failed to reload configuration")
				continue
			}
			if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
				appLog.SetLevel(level)
			}
			appLog.WithField("log_level", cfg.App.LogLevel).Info("Configuration reloaded")
			continue
		}
		appLog.WithField("signal", sig.String()).Info("Shutting down")
		break
	}
	healthServer.SetReady(false)
	cancel()
}

// serveMetrics exposes the Prometheus registry over HTTP
func serveMetrics(cfg *config.Config, appLog *logrus.Logger) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())

	addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
	appLog.WithField("addr", addr).Info("Metrics server starting")

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		appLog.WithError(err).Error("Metrics server error")
	}
}
