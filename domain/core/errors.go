package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input validation errors, raised before any computation
	ErrInsufficientEvents = errors.New("fewer than two events")
	ErrLengthMismatch     = errors.New("spatial and temporal arrays differ in length")
	ErrRaggedCoordinates  = errors.New("coordinate rows differ in dimension")

	// Parameter errors
	ErrInvalidThreshold    = errors.New("invalid threshold")
	ErrInvalidNeighborK    = errors.New("invalid nearest-neighbor count")
	ErrInvalidPermutations = errors.New("negative permutation count")
	ErrMissingRandSource   = errors.New("nil random source with permutations requested")

	// Numeric degeneracy
	ErrDegenerateDistance = errors.New("zero-variance distance vector")
)

// Error constructors with context
func NewThresholdError(name string, value float64) error {
	return fmt.Errorf("%w: %s = %g", ErrInvalidThreshold, name, value)
}

func NewNeighborKError(k, n int) error {
	return fmt.Errorf("%w: k = %d with n = %d (need 1 <= k <= n-1)", ErrInvalidNeighborK, k, n)
}

func NewLengthMismatchError(spatial, temporal int) error {
	return fmt.Errorf("%w: %d spatial rows vs %d temporal values", ErrLengthMismatch, spatial, temporal)
}

// Error checking helpers
func IsInputError(err error) bool {
	return errors.Is(err, ErrInsufficientEvents) ||
		errors.Is(err, ErrLengthMismatch) ||
		errors.Is(err, ErrRaggedCoordinates)
}

func IsParameterError(err error) bool {
	return errors.Is(err, ErrInvalidThreshold) ||
		errors.Is(err, ErrInvalidNeighborK) ||
		errors.Is(err, ErrInvalidPermutations) ||
		errors.Is(err, ErrMissingRandSource)
}
