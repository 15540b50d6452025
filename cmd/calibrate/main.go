// Package main provides the calibrate CLI: record realized outcomes against
// logged predictions and analyze model accuracy over a trailing window.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/gridiron-edge/internal/calibration"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/repository"
)

var (
	configFile string
	weeksBack  int
	outputJSON bool

	appLog     *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	calibrator *calibration.Calibrator
	audit      *logger.AuditLogger
)

var rootCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Track prediction accuracy against realized outcomes",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

var outcomeCmd = &cobra.Command{
	Use:   "outcome <prediction-id> <win|loss>",
	Short: "Record the realized outcome for a prediction",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOutcome(cmd.Context(), args[0], args[1])
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Analyze prediction accuracy over the trailing window",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	reportCmd.Flags().IntVar(&weeksBack, "weeks", 0, "Trailing window in weeks (default from config)")
	reportCmd.Flags().BoolVar(&outputJSON, "json", false, "Print the full JSON report")
	rootCmd.AddCommand(outcomeCmd)
	rootCmd.AddCommand(reportCmd)
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

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return err
	}

	calibrator = calibration.NewCalibrator(repos.PredictionLog, cfg.Betting.Bankroll, time.Now, appLog)
	audit = logger.NewAuditLogger(appLog)
	return nil
}

func runOutcome(ctx context.Context, predictionID, result string) error {
	var outcome bool
	switch result {
	case "win":
		outcome = true
	case "loss":
		outcome = false
	default:
		return fmt.Errorf("outcome must be 'win' or 'loss', got %q", result)
	}

	known, err := calibrator.RecordOutcome(ctx, predictionID, outcome)
	if err != nil {
		return err
	}
	if !known {
		audit.LogUnknownOutcome(predictionID)
		fmt.Printf("No prediction found with id %s; nothing recorded\n", predictionID)
		return nil
	}

	audit.LogOutcomeRecorded(predictionID, outcome, time.Now())
	fmt.Printf("Recorded %s for prediction %s\n", result, predictionID)
	return nil
}

func runReport(ctx context.Context) error {
	if weeksBack <= 0 {
		weeksBack = cfg.Calibration.LookbackWeeks
	}

	report, err := calibrator.AnalyzePerformance(ctx, weeksBack)
	if err != nil {
		return err
	}

	audit.LogReportGenerated(report.Status, report.OverallMetrics.Predictions,
		report.OverallMetrics.BrierScore, report.OverallMetrics.WinRate,
		report.ROIAnalysis.ROI, len(report.Recommendations))

	if outputJSON {
		fmt.Println(report.ToJSON())
		return nil
	}

	printReport(report)
	return nil
}

func printReport(report *calibration.Report) {
	if report.Status == calibration.StatusNoData {
		fmt.Printf("No completed predictions in the last %d weeks\n", report.WeeksBack)
		return
	}

	fmt.Printf("Calibration report (last %d weeks)\n\n", report.WeeksBack)
	fmt.Printf("Predictions: %d\n", report.OverallMetrics.Predictions)
	fmt.Printf("Brier score: %.4f\n", report.OverallMetrics.BrierScore)
	fmt.Printf("Win rate:    %.1f%%\n", report.OverallMetrics.WinRate*100)
	fmt.Printf("Calibration error (weighted): %.4f\n", report.CalibrationAnalysis.WeightedError)
	fmt.Printf("ROI: %.2f%% (staked %.2f, profit %.2f at reference bankroll %.0f)\n\n",
		report.ROIAnalysis.ROI, report.ROIAnalysis.TotalStaked,
		report.ROIAnalysis.TotalProfit, report.ROIAnalysis.ReferenceBankroll)

	if len(report.ModelVersionMetrics) > 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MODEL VERSION\tPREDICTIONS\tBRIER\tWIN RATE\tROI %")
		for version, metrics := range report.ModelVersionMetrics {
			fmt.Fprintf(w, "%s\t%d\t%.4f\t%.1f%%\t%.2f\n",
				version, metrics.Predictions, metrics.BrierScore, metrics.WinRate*100, metrics.ROI)
		}
		w.Flush()
		fmt.Println()
	}

	for _, rec := range report.Recommendations {
		fmt.Printf("- %s\n", rec)
	}
}
