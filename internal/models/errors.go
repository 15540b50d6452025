package models

import "errors"

// Custom errors
var (
	ErrSubjectRequired        = errors.New("subject is required")
	ErrInvalidOdds            = errors.New("american odds of zero are invalid")
	ErrMissingSubjectData     = errors.New("no stat profile for subject")
	ErrDegenerateOdds         = errors.New("odds quote yields a degenerate implied probability")
	ErrUnknownPrediction      = errors.New("prediction id not found in log")
	ErrNoCompletedPredictions = errors.New("no completed predictions in window")
	ErrNotFound               = errors.New("record not found")
	ErrDuplicateKey           = errors.New("duplicate key violation")
)
