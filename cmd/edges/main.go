// Package main provides the edges CLI: scan a week's slate for betting edges
// across the enabled strategies and print the ranked results.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/gridiron-edge/internal/cache"
	"github.com/yourusername/gridiron-edge/internal/calibration"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/repository"
	"github.com/yourusername/gridiron-edge/internal/strategy"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile   string
	week         int
	season       int
	minEdgePct   float64
	bankroll     float64
	strategyList []string
	modelVersion string
	recordPreds  bool
	outputJSON   bool

	appLog *logrus.Logger
	cfg    *config.Config
	db     *database.DB
	repos  *repository.Repositories
)

var rootCmd = &cobra.Command{
	Use:   "edges",
	Short: "Scan a week for betting edges",
	Long:  `Runs the enabled strategy calculators for one week, ranks the detected edges by size and prints them.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().IntVarP(&week, "week", "w", 0, "Week to scan (required)")
	rootCmd.Flags().IntVarP(&season, "season", "s", time.Now().Year(), "Season year")
	rootCmd.Flags().Float64VarP(&minEdgePct, "min-edge", "e", -1, "Minimum edge percent (default from config)")
	rootCmd.Flags().Float64VarP(&bankroll, "bankroll", "b", 0, "Bankroll for stake sizing (default from config)")
	rootCmd.Flags().StringSliceVar(&strategyList, "strategy", nil, "Restrict to specific strategies (repeatable)")
	rootCmd.Flags().StringVarP(&modelVersion, "model", "m", "", "Probability model version (baseline_v1 or enhanced_v2, default from config)")
	rootCmd.Flags().BoolVar(&recordPreds, "record", false, "Log each priced edge as a pending prediction")
	rootCmd.Flags().BoolVar(&outputJSON, "json", false, "Print JSON instead of a table")
	_ = rootCmd.MarkFlagRequired("week")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	return config.Validate(cfg)
}

func setupDependencies(ctx context.Context) error {
	appLog = logger.NewLogger(cfg.App.LogLevel)

	var err error
	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err = repository.NewRepositories(db)
	if err != nil {
		return err
	}

	return nil
}

func runScan(ctx context.Context) error {
	defer db.Close()

	if minEdgePct < 0 {
		minEdgePct = cfg.Strategies.MinEdgePercent
	}
	if bankroll <= 0 {
		bankroll = cfg.Betting.Bankroll
	}

	version := cfg.StrategyModelVersion()
	if modelVersion != "" {
		parsed, ok := models.ParseModelVersion(modelVersion)
		if !ok {
			return fmt.Errorf("unknown model version %q", modelVersion)
		}
		version = parsed
	}

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
			Bankroll:            bankroll,
			MaxBankrollFraction: cfg.Betting.MaxBankrollFraction,
			ModelVersion:        version,
		},
		reasonCache,
	)
	if err != nil {
		return err
	}

	aggregator := strategy.NewAggregator(calculators, appLog)
	records, failures := aggregator.GetAllEdges(ctx, week, season, minEdgePct, strategyList)

	for _, failure := range failures {
		fmt.Fprintf(os.Stderr, "warning: %v\n", failure)
	}

	if recordPreds {
		calibrator := calibration.NewCalibrator(repos.PredictionLog, bankroll, time.Now, appLog)
		audit := logger.NewAuditLogger(appLog)
		entries, err := calibrator.RecordEdges(ctx, week, season, records)
		if err != nil {
			return fmt.Errorf("logging predictions: %w", err)
		}
		for _, entry := range entries {
			audit.LogPredictionRecorded(entry.ID, entry.Subject, entry.Strategy,
				entry.ModelVersion.String(), entry.PredictedProbability, entry.AmericanOdds, entry.PredictedAt)
			fmt.Fprintf(os.Stderr, "logged prediction %s for %s\n", entry.ID, entry.Subject)
		}
	}

	if outputJSON {
		return printJSON(records)
	}
	printTable(records)
	return nil
}

func printJSON(records []models.EdgeRecord) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func printTable(records []models.EdgeRecord) {
	if len(records) == 0 {
		fmt.Printf("No edges found for week %d above %.1f%%\n", week, minEdgePct)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MATCHUP\tSTRATEGY\tLINE\tEDGE %\tCONFIDENCE\tRECOMMENDATION")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\t%s\n",
			rec.Matchup, rec.Strategy, rec.Line, rec.EdgePct, rec.Confidence, rec.Recommendation)
	}
	w.Flush()

	fmt.Printf("\n%d edges found (week %d, season %d, min edge %.1f%%)\n", len(records), week, season, minEdgePct)
}
