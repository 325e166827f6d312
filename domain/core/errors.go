package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Sampling errors
	ErrInvalidSampleSize = errors.New("invalid sample size")
	ErrSizeMismatch      = errors.New("group sizes do not sum to pool length")

	// Simulation errors
	ErrInvalidTrialCount = errors.New("invalid trial count")

	// Estimation errors
	ErrInvalidConfidenceLevel = errors.New("confidence level must be strictly between 0 and 1")
	ErrInsufficientSampleSize = errors.New("insufficient sample size")
	ErrStatisticFunction      = errors.New("statistic function failed")

	// Data errors
	ErrColumnNotFound = errors.New("column not found in dataset")
	ErrEmptyDataset   = errors.New("dataset contains no observations")
)

// Error constructors with context

func NewInvalidSampleSizeError(n, populationSize int) error {
	if populationSize > 0 {
		return fmt.Errorf("%w: requested %d from population of %d without replacement", ErrInvalidSampleSize, n, populationSize)
	}
	return fmt.Errorf("%w: n=%d", ErrInvalidSampleSize, n)
}

func NewSizeMismatchError(n1, n2, poolSize int) error {
	return fmt.Errorf("%w: n1=%d + n2=%d != %d", ErrSizeMismatch, n1, n2, poolSize)
}

func NewInvalidTrialCountError(trials int) error {
	return fmt.Errorf("%w: trials=%d", ErrInvalidTrialCount, trials)
}

func NewInvalidConfidenceLevelError(level float64) error {
	return fmt.Errorf("%w: got %g", ErrInvalidConfidenceLevel, level)
}

func NewInsufficientSampleSizeError(n, minimum int) error {
	return fmt.Errorf("%w: n=%d, need at least %d", ErrInsufficientSampleSize, n, minimum)
}

// NewStatisticError wraps a failure from a caller-supplied statistic function.
// The original error remains reachable through errors.Is/errors.As.
func NewStatisticError(trial int, err error) error {
	return fmt.Errorf("%w on trial %d: %w", ErrStatisticFunction, trial, err)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// Error checking helpers

func IsCallerError(err error) bool {
	return errors.Is(err, ErrInvalidSampleSize) ||
		errors.Is(err, ErrSizeMismatch) ||
		errors.Is(err, ErrInvalidTrialCount) ||
		errors.Is(err, ErrInvalidConfidenceLevel) ||
		errors.Is(err, ErrInsufficientSampleSize)
}

func IsStatisticError(err error) bool {
	return errors.Is(err, ErrStatisticFunction)
}
