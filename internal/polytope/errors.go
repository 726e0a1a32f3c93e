package polytope

import (
	"errors"
	"fmt"
)

// MaxActuators bounds the 2^m bound-combination enumeration; larger
// actuator counts would materialize an intractable vertex cloud.
const MaxActuators = 20

// Domain errors for polytope construction.
var (
	// ErrDegenerate tags builds whose vertex cloud collapsed below the
	// wrench dimension or whose hull computation failed.
	ErrDegenerate = errors.New("polytope: degenerate wrench set")

	// ErrTooManyActuators indicates an actuator count above MaxActuators.
	ErrTooManyActuators = errors.New("polytope: actuator count above enumeration bound")
)

// DegenerateError reports why a build produced no usable polytope. It
// matches ErrDegenerate under errors.Is so callers can branch without
// inspecting the reason text.
type DegenerateError struct {
	Reason string
	Cause  error
}

func (e *DegenerateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("polytope: degenerate wrench set: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("polytope: degenerate wrench set: %s", e.Reason)
}

func (e *DegenerateError) Is(target error) bool { return target == ErrDegenerate }

func (e *DegenerateError) Unwrap() error { return e.Cause }
