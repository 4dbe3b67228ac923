/*
errors.go - Centralized error types for the schedule model

PURPOSE:
  All malformed-input and store errors in one place. These are Go errors,
  deliberately distinct from compliance outcomes: an unparseable clock
  string or a guard shift without segments indicates a caller bug and must
  fail fast, never be coerced into "valid" or "non-compliant".

USAGE:
  if errors.Is(err, schedule.ErrInvalidClock) { ... }

SEE ALSO:
  - compliance package: structured rule outcomes (never Go errors)
*/
package schedule

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidClock is returned when a clock string is not "HH:mm" (or
	// "HH:mm:ss") within valid ranges.
	ErrInvalidClock = errors.New("invalid clock time")

	// ErrUnknownShiftType is returned for a shift type outside the four
	// known variants.
	ErrUnknownShiftType = errors.New("unknown shift type")

	// ErrMissingSegments is returned when an operation requires the segment
	// list of a guard_24h shift and it is empty.
	ErrMissingSegments = errors.New("guard shift has no segments")

	// ErrSegmentCycle is returned when a guard shift's segments, laid out
	// cumulatively, do not close the duty cycle at the shift's own span.
	ErrSegmentCycle = errors.New("guard segments do not close the duty cycle")

	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrContractNotFound is returned when an employee has no active contract.
	ErrContractNotFound = errors.New("contract not found")

	// ErrShiftNotFound is returned when a referenced shift doesn't exist.
	ErrShiftNotFound = errors.New("shift not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// MalformedShiftError describes why a shift could not be resolved.
type MalformedShiftError struct {
	ShiftID string
	Field   string
	Cause   error
}

func (e *MalformedShiftError) Error() string {
	return fmt.Sprintf("malformed shift %q: field %s: %v", e.ShiftID, e.Field, e.Cause)
}

func (e *MalformedShiftError) Unwrap() error { return e.Cause }

// IsMalformedInput reports whether err stems from caller-supplied data the
// engine refuses to interpret (as opposed to a store failure).
func IsMalformedInput(err error) bool {
	return errors.Is(err, ErrInvalidClock) ||
		errors.Is(err, ErrUnknownShiftType) ||
		errors.Is(err, ErrMissingSegments) ||
		errors.Is(err, ErrSegmentCycle)
}
