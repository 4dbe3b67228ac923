/*
Package schedule provides the core data model and time arithmetic for
home-care shift planning.

PURPOSE:
  This package contains the value objects every other engine package works
  on - shifts, guard segments, contracts, absences - plus the interval/time
  kernel: clock-to-minute conversion, duration with midnight wraparound,
  night-window intersection, week boundaries and overlap detection.

KEY CONCEPTS IN THIS FILE (types.go):
  - Shift:    a half-open work interval [start, end) on a calendar date
  - Segment:  one typed slice of a 24-hour guard duty cycle
  - Contract: weekly contracted hours and hourly rate
  - Absence:  an inclusive day range blocking scheduling when approved

DESIGN PRINCIPLES:
  1. Value semantics: entities are transient, built per request, never mutated
  2. Precision: decimal.Decimal for every figure that feeds pay
  3. Wraparound is data, not a flag: end <= start means the interval crosses
     midnight, and start == end means exactly 24 hours
  4. The engine owns no clock: dates come in from callers

SEE ALSO:
  - time.go: the interval/time kernel
  - resolve.go: parsed form of a shift used by validators and calculators
  - store.go: persistence collaborator interface
*/
package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SHIFT TYPES - Discriminated variants
// =============================================================================

// ShiftType discriminates how a shift's time is counted and paid.
type ShiftType string

const (
	// ShiftEffective is ordinary active work, paid at 100% of the rate.
	ShiftEffective ShiftType = "effective"

	// ShiftPresenceDay is responsible presence during the day, counted at
	// two-thirds for hour caps and paid at two-thirds of the rate.
	ShiftPresenceDay ShiftType = "presence_day"

	// ShiftPresenceNight is responsible presence at night, counted at zero
	// for hour caps and paid as an allowance at a quarter of the rate,
	// unless requalified by the night-intervention count.
	ShiftPresenceNight ShiftType = "presence_night"

	// ShiftGuard24h is a 24-hour duty cycle subdivided into an ordered list
	// of segments, each typed as one of the three variants above.
	ShiftGuard24h ShiftType = "guard_24h"
)

// IsPresence reports whether t is one of the responsible-presence variants.
// Guard duty is not itself a presence type; its segments are.
func (t ShiftType) IsPresence() bool {
	return t == ShiftPresenceDay || t == ShiftPresenceNight
}

// Valid reports whether t is a known shift type.
func (t ShiftType) Valid() bool {
	switch t {
	case ShiftEffective, ShiftPresenceDay, ShiftPresenceNight, ShiftGuard24h:
		return true
	}
	return false
}

// SegmentType is the subset of shift types a guard segment may carry.
type SegmentType = ShiftType

// =============================================================================
// SHIFT - A half-open work interval on a calendar date
// =============================================================================

// Shift is a proposed or existing work interval [StartTime, EndTime) on
// Date. EndTime at or before StartTime means the interval wraps past
// midnight; equal clock times mean exactly 24 hours.
type Shift struct {
	// ID is empty for a not-yet-created shift. When re-validating an edit,
	// the validator excludes the candidate's own ID from the context.
	ID string

	EmployeeID string
	ContractID string

	Date      time.Time // calendar date, midnight UTC
	StartTime string    // "HH:mm", optional trailing ":ss" tolerated
	EndTime   string    // "HH:mm"

	BreakMinutes int

	Type ShiftType

	// HasNightAction distinguishes acting during the night window from
	// merely being present; it gates the night premium.
	HasNightAction bool

	// NightInterventions is the number of care acts during a night-presence
	// block. At the requalification threshold the whole block is re-paid as
	// full effective work.
	NightInterventions int

	// Segments subdivide a guard_24h shift. Empty for other types.
	Segments []Segment
}

// Segment is one typed slice of a 24-hour guard cycle. Its end is inferred:
// a segment runs until the next segment's start, and the last segment runs
// until the shift's own start time, completing the 24-hour cycle.
type Segment struct {
	StartTime    string
	Type         SegmentType
	BreakMinutes int
}

// =============================================================================
// CONTRACT - Anchors overtime and weekly-hours thresholds
// =============================================================================

type Contract struct {
	ID          string
	EmployeeID  string
	WeeklyHours decimal.Decimal // contracted hours per week
	HourlyRate  decimal.Decimal // gross hourly rate
}

// =============================================================================
// ABSENCE - An inclusive day range
// =============================================================================

type AbsenceStatus string

const (
	AbsencePending  AbsenceStatus = "pending"
	AbsenceApproved AbsenceStatus = "approved"
	AbsenceRejected AbsenceStatus = "rejected"
)

// Absence blocks scheduling over [StartDate, EndDate] when approved.
// Pending and rejected absences never block.
type Absence struct {
	ID         string
	EmployeeID string
	Type       string
	StartDate  time.Time // inclusive
	EndDate    time.Time // inclusive
	Status     AbsenceStatus
}

// Covers reports whether day falls within the absence's range.
func (a Absence) Covers(day time.Time) bool {
	d := DateOf(day)
	return !d.Before(DateOf(a.StartDate)) && !d.After(DateOf(a.EndDate))
}

// =============================================================================
// EMPLOYEE - Entity record held by the persistence collaborator
// =============================================================================

type Employee struct {
	ID   string
	Name string
}
