package sim

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf values.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrBadTimestep indicates a non-positive timestep.
	ErrBadTimestep = errors.New("sim: timestep must be positive")

	// ErrBadDuration indicates a non-positive duration.
	ErrBadDuration = errors.New("sim: duration must be positive")

	// ErrDimensionMismatch indicates mismatched state/control dimensions.
	ErrDimensionMismatch = errors.New("sim: dimension mismatch between state and system")
)

// SimError wraps an error with the step and time it occurred at.
type SimError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimError) Unwrap() error {
	return e.Wrapped
}
