// Package logger provides structured logging built on logrus, plus
// domain-specific loggers for strategy scans and the prediction audit trail.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a logrus logger configured for the given level.
// Unknown levels fall back to info rather than failing startup.
func NewLogger(logLevel string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		log.Warnf("Invalid log level '%s', defaulting to info", logLevel)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	// JSON in production so log aggregators can index fields, colored
	// text locally.
	env := os.Getenv("GRIDIRON_EDGE_APP_ENVIRONMENT")
	if env == "" {
		env = os.Getenv("ENVIRONMENT")
	}
	if env == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	return log
}
