package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrSessionNotFound = fmt.Errorf("%w: session", ErrNotFound)

	// Validation errors
	ErrInvalidDecision = errors.New("invalid decision")
	ErrInvalidTier     = errors.New("difficulty tier out of range")
	ErrPhaseViolation  = errors.New("operation not permitted in current phase")
	ErrConsentRequired = fmt.Errorf("%w: consent required before trials begin", ErrPhaseViolation)

	// Determinism errors
	ErrSeedMismatch = errors.New("seed mismatch")
)

// Error constructors with context
func NewInvalidDecisionError(value string) error {
	return fmt.Errorf("%w: %q (only accept or reject permitted)", ErrInvalidDecision, value)
}

func NewInvalidTierError(tier int) error {
	return fmt.Errorf("%w: %d (valid tiers are 0..2)", ErrInvalidTier, tier)
}

func NewPhaseViolationError(op, phase string) error {
	return fmt.Errorf("%w: %s during %s", ErrPhaseViolation, op, phase)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDecision) ||
		errors.Is(err, ErrInvalidTier) ||
		errors.Is(err, ErrPhaseViolation) ||
		errors.Is(err, ErrConsentRequired)
}
