// Package config provides configuration management for the Gridiron Edge engine.
package config

import (
	"fmt"
	"time"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	Feed        FeedConfig        `mapstructure:"feed" validate:"required"`
	Strategies  StrategiesConfig  `mapstructure:"strategies" validate:"required"`
	Betting     BettingConfig     `mapstructure:"betting" validate:"required"`
	Calibration CalibrationConfig `mapstructure:"calibration" validate:"required"`
	Metrics     MetricsConfig     `mapstructure:"metrics" validate:"required"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler" validate:"required"`
	Tracing     TracingConfig     `mapstructure:"tracing"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host" validate:"required"`
	Port           int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name           string `mapstructure:"name" validate:"required"`
	User           string `mapstructure:"user" validate:"required"`
	Password       string `mapstructure:"password" validate:"required"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"required,gt=0"`
}

// FeedConfig represents upstream stat and odds feed configuration
type FeedConfig struct {
	StatsURL              string `mapstructure:"stats_url" validate:"required,url"`
	OddsURL               string `mapstructure:"odds_url" validate:"required,url"`
	OddsStreamURL         string `mapstructure:"odds_stream_url"`
	APIKey                string `mapstructure:"api_key"`
	TimeoutSeconds        int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts         int    `mapstructure:"retry_attempts" validate:"required,gte=0"`
	RequestsPerSecond     int    `mapstructure:"requests_per_second" validate:"required,gt=0"`
	FailureThreshold      int    `mapstructure:"failure_threshold" validate:"required,gt=0"`
	RecoverySeconds       int    `mapstructure:"recovery_seconds" validate:"required,gt=0"`
	SecretsManagerEnabled bool   `mapstructure:"secrets_manager_enabled"`
	SecretsManagerKey     string `mapstructure:"secrets_manager_key"`
}

// StrategiesConfig represents strategy selection and thresholds
type StrategiesConfig struct {
	Enabled               []string `mapstructure:"enabled" validate:"required,min=1,strategies"`
	MinEdgePercent        float64  `mapstructure:"min_edge_percent" validate:"gte=0"`
	ModelVersion          string   `mapstructure:"model_version"`
	WeakOffenseCount      int      `mapstructure:"weak_offense_count" validate:"required,gt=0"`
	StrongDefenseCount    int      `mapstructure:"strong_defense_count" validate:"required,gt=0"`
	ExplanationTTLMinutes int      `mapstructure:"explanation_ttl_minutes" validate:"required,gt=0"`
}

// BettingConfig represents bankroll and stake sizing configuration
type BettingConfig struct {
	Bankroll            float64 `mapstructure:"bankroll" validate:"required,gt=0"`
	MaxBankrollFraction float64 `mapstructure:"max_bankroll_fraction" validate:"required,gt=0,lte=1"`
}

// CalibrationConfig represents prediction tracking configuration
type CalibrationConfig struct {
	LookbackWeeks int `mapstructure:"lookback_weeks" validate:"required,gt=0"`
	Bins          int `mapstructure:"bins" validate:"required,gt=1"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// TracingConfig represents AWS X-Ray tracing configuration
type TracingConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	DaemonAddr string `mapstructure:"daemon_addr"`
}

// SchedulerConfig represents scheduled scan configuration
type SchedulerConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	ScanSchedule string `mapstructure:"scan_schedule" validate:"required"`
	HealthPort   int    `mapstructure:"health_port" validate:"required,min=1,max=65535"`
	Week         int    `mapstructure:"week" validate:"gte=0"`
	Season       int    `mapstructure:"season" validate:"gte=0"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// FeedTimeout returns the upstream request timeout as a duration
func (c *Config) FeedTimeout() time.Duration {
	return time.Duration(c.Feed.TimeoutSeconds) * time.Second
}

// ExplanationTTL returns the reasoning cache lifetime as a duration
func (c *Config) ExplanationTTL() time.Duration {
	return time.Duration(c.Strategies.ExplanationTTLMinutes) * time.Minute
}

// StrategyModelVersion returns the configured probability model generation.
// An empty setting means the baseline model.
func (c *Config) StrategyModelVersion() models.ModelVersion {
	version, ok := models.ParseModelVersion(c.Strategies.ModelVersion)
	if !ok {
		return models.ModelBaseline
	}
	return version
}
