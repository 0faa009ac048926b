package scene

import (
	"errors"
	"fmt"
)

// Compile-time invariant violations.
var (
	// ErrDuplicateName indicates two elements of the same class share a name.
	ErrDuplicateName = errors.New("scene: duplicate name")

	// ErrUnresolvedRef indicates a reference to a name that does not exist.
	ErrUnresolvedRef = errors.New("scene: unresolved reference")

	// ErrNoTarget indicates an actuator that names neither joint nor tendon.
	ErrNoTarget = errors.New("scene: actuator has no target")

	// ErrDualTarget indicates an actuator that names both joint and tendon.
	ErrDualTarget = errors.New("scene: actuator targets both joint and tendon")

	// ErrTendonTooShort indicates a spatial tendon with fewer than two sites.
	ErrTendonTooShort = errors.New("scene: spatial tendon needs at least two sites")

	// ErrBadRange indicates a range attribute that is not a [min max] pair.
	ErrBadRange = errors.New("scene: range must be two values, min <= max")
)

// CompileError carries the element that violated an invariant.
type CompileError struct {
	Element string // e.g. `tendon "lThread"`
	Ref     string // referenced name, when relevant
	Wrapped error
}

func (e *CompileError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("%s: %v: %q", e.Element, e.Wrapped, e.Ref)
	}
	return fmt.Sprintf("%s: %v", e.Element, e.Wrapped)
}

func (e *CompileError) Unwrap() error {
	return e.Wrapped
}

func compileErr(element string, wrapped error) error {
	return &CompileError{Element: element, Wrapped: wrapped}
}

func refErr(element, ref string, wrapped error) error {
	return &CompileError{Element: element, Ref: ref, Wrapped: wrapped}
}
