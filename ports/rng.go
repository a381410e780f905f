package ports

import (
	"context"
	"math/rand"

	"gamblelab/domain/experiment"
)

// RNGPort provides seeded random number generation for deterministic trial sampling
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// TrialStream creates a deterministic RNG stream for a specific phase/trial.
	// Replaying the same (baseSeed, phase, trialIndex) triple reproduces the
	// same gamble, which keeps sessions reproducible per trial.
	TrialStream(ctx context.Context, phase experiment.Phase, trialIndex int, baseSeed int64) (*rand.Rand, error)

	// ValidateSeed ensures the seed produces expected deterministic results
	ValidateSeed(ctx context.Context, name string, seed int64, expected []float64) error
}
