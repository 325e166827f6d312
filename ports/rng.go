package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// TrialStream creates a deterministic RNG stream for a single Monte Carlo trial.
	// Distinct trial indices produce logically independent streams, so parallel
	// trial execution reproduces the same empirical distribution as sequential.
	TrialStream(ctx context.Context, name string, seed int64, trial int) (*rand.Rand, error)
}
