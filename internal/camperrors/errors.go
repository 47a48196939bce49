// Package camperrors gives the error taxonomy of spec §7 concrete Go
// types so callers can tell a bad config apart from an unsolvable model
// with errors.As instead of string matching.
package camperrors

import "fmt"

// InputInvalidError means a required column was missing, a date was
// unparseable, an unknown activity/location was referenced, or some
// other structural problem was found before any variable was created.
type InputInvalidError struct {
	Field   string
	Message string
}

func (e *InputInvalidError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewInputInvalid builds an InputInvalidError naming the offending field.
func NewInputInvalid(field, format string, args ...any) error {
	return &InputInvalidError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ModelInfeasibleError means the CP-SAT backend proved no assignment
// satisfies every posted constraint.
type ModelInfeasibleError struct{}

func (e *ModelInfeasibleError) Error() string { return "no feasible schedule exists for this config" }

// TimeoutError means the solver exhausted its wall-clock budget without
// ever finding a feasible incumbent.
type TimeoutError struct{ Seconds int }

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("solver found no incumbent within %ds", e.Seconds)
}

// SolverInternalError wraps an INVALID status or proto-build failure
// from the CP-SAT backend itself — a programmer error, not a recoverable
// scheduling outcome.
type SolverInternalError struct{ Detail string }

func (e *SolverInternalError) Error() string {
	return fmt.Sprintf("solver backend reported an internal error: %s", e.Detail)
}
