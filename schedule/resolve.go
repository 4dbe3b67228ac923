/*
resolve.go - Parsed, wraparound-aware form of a shift

PURPOSE:
  Validators and pay calculators need real datetimes, exact minute counts
  and inferred guard-segment boundaries. Resolve computes all of that once,
  up front, so rule evaluation stays pure and cannot hit a parse error
  halfway through. Malformed input fails fast here with a descriptive
  error - it is a caller bug, not a compliance result.

SEGMENT-END INFERENCE:
  A guard segment runs until the next segment's start; the last segment runs
  until the shift's own start clock, wrapping to its next occurrence and
  completing the 24-hour cycle. Segment datetimes are anchored at the
  shift's start and laid out cumulatively, so a cycle crossing midnight
  resolves without special cases.

SEE ALSO:
  - types.go: the raw Shift value
  - time.go: the kernel primitives used here
*/
package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RESOLVED SHIFT
// =============================================================================

// Resolved is a Shift with clocks parsed, wraparound applied and guard
// segments laid out on the real timeline.
type Resolved struct {
	Shift Shift

	StartMinute int // clock minutes from midnight
	EndMinute   int

	StartAt time.Time // real start datetime
	EndAt   time.Time // real end datetime, strictly after StartAt

	RawMinutes int // span length, break included
	NetMinutes int // span minus the shift break, floored at zero

	// Segments is non-empty only for guard_24h shifts that carry segments.
	Segments []ResolvedSegment
}

// ResolvedSegment is one guard segment with its inferred end.
type ResolvedSegment struct {
	Type         SegmentType
	StartMinute  int
	BreakMinutes int

	StartAt time.Time
	EndAt   time.Time

	RawMinutes int // inferred span, break included
	NetMinutes int // span minus the segment break, floored at zero
}

// Resolve parses and lays out a shift. It returns a MalformedShiftError
// wrapping the cause when the shift cannot be interpreted.
func Resolve(s Shift) (*Resolved, error) {
	if !s.Type.Valid() {
		return nil, &MalformedShiftError{ShiftID: s.ID, Field: "type", Cause: ErrUnknownShiftType}
	}

	start, err := TimeToMinutes(s.StartTime)
	if err != nil {
		return nil, &MalformedShiftError{ShiftID: s.ID, Field: "start_time", Cause: err}
	}
	end, err := TimeToMinutes(s.EndTime)
	if err != nil {
		return nil, &MalformedShiftError{ShiftID: s.ID, Field: "end_time", Cause: err}
	}

	raw := SpanMinutes(start, end)
	net := raw - s.BreakMinutes
	if net < 0 {
		net = 0
	}

	startAt := DateOf(s.Date).Add(time.Duration(start) * time.Minute)
	r := &Resolved{
		Shift:       s,
		StartMinute: start,
		EndMinute:   end,
		StartAt:     startAt,
		EndAt:       startAt.Add(time.Duration(raw) * time.Minute),
		RawMinutes:  raw,
		NetMinutes:  net,
	}

	if s.Type == ShiftGuard24h && len(s.Segments) > 0 {
		segs, err := resolveSegments(s, startAt, raw)
		if err != nil {
			return nil, err
		}
		r.Segments = segs
	}
	return r, nil
}

func resolveSegments(s Shift, shiftStart time.Time, shiftRaw int) ([]ResolvedSegment, error) {
	segs := make([]ResolvedSegment, len(s.Segments))
	offset := 0
	for i, seg := range s.Segments {
		if !seg.Type.Valid() || seg.Type == ShiftGuard24h {
			return nil, &MalformedShiftError{ShiftID: s.ID, Field: "segments", Cause: ErrUnknownShiftType}
		}
		start, err := TimeToMinutes(seg.StartTime)
		if err != nil {
			return nil, &MalformedShiftError{ShiftID: s.ID, Field: "segments", Cause: err}
		}

		// Inferred end: next segment's start, or the shift's own start
		// clock for the last segment.
		nextClock := 0
		if i+1 < len(s.Segments) {
			nextClock, err = TimeToMinutes(s.Segments[i+1].StartTime)
		} else {
			nextClock, err = TimeToMinutes(s.StartTime)
		}
		if err != nil {
			return nil, &MalformedShiftError{ShiftID: s.ID, Field: "segments", Cause: err}
		}

		raw := SpanMinutes(start, nextClock)
		net := raw - seg.BreakMinutes
		if net < 0 {
			net = 0
		}

		at := shiftStart.Add(time.Duration(offset) * time.Minute)
		segs[i] = ResolvedSegment{
			Type:         seg.Type,
			StartMinute:  start,
			BreakMinutes: seg.BreakMinutes,
			StartAt:      at,
			EndAt:        at.Add(time.Duration(raw) * time.Minute),
			RawMinutes:   raw,
			NetMinutes:   net,
		}
		offset += raw
	}

	// A misordered segment list still lays out pair by pair; the cumulative
	// offset only returns to the shift's span when the cycle truly closes.
	if offset != shiftRaw {
		return nil, &MalformedShiftError{ShiftID: s.ID, Field: "segments", Cause: ErrSegmentCycle}
	}
	return segs, nil
}

// =============================================================================
// HOUR WEIGHTING - How shift time counts against hour caps
// =============================================================================

// WeightedMinutes returns the shift's contribution to daily/weekly hour
// caps: effective counts in full, responsible presence (day) at the given
// factor, responsible presence (night) not at all, and guard duty as the
// sum of its effective-typed segments' net minutes - falling back to the
// full raw duration when the segment list is missing.
func (r *Resolved) WeightedMinutes(presenceDayFactor decimal.Decimal) decimal.Decimal {
	switch r.Shift.Type {
	case ShiftEffective:
		return decimal.NewFromInt(int64(r.NetMinutes))
	case ShiftPresenceDay:
		return decimal.NewFromInt(int64(r.NetMinutes)).Mul(presenceDayFactor)
	case ShiftPresenceNight:
		return decimal.Zero
	case ShiftGuard24h:
		if len(r.Segments) == 0 {
			return decimal.NewFromInt(int64(r.RawMinutes))
		}
		total := 0
		for _, seg := range r.Segments {
			if seg.Type == ShiftEffective {
				total += seg.NetMinutes
			}
		}
		return decimal.NewFromInt(int64(total))
	}
	return decimal.Zero
}

// WeightedHours is WeightedMinutes expressed in hours.
func (r *Resolved) WeightedHours(presenceDayFactor decimal.Decimal) decimal.Decimal {
	return r.WeightedMinutes(presenceDayFactor).Div(decimal.NewFromInt(60))
}

// NightMinutes returns how many minutes of the shift interval fall in the
// night window. The zero-length empty-interval rule of the kernel applies.
func (r *Resolved) NightMinutes(nightStart, nightEnd int) int {
	return NightIntersectionMinutes(r.StartMinute, r.EndMinute, nightStart, nightEnd)
}

// Overlaps reports whether two resolved shifts overlap on the real
// timeline. Back-to-back shifts do not overlap.
func (r *Resolved) Overlaps(other *Resolved) bool {
	return IntervalsOverlap(r.StartAt, r.EndAt, other.StartAt, other.EndAt)
}

// ResolveAll resolves a slice of shifts, failing on the first malformed one.
func ResolveAll(shifts []Shift) ([]*Resolved, error) {
	out := make([]*Resolved, 0, len(shifts))
	for _, s := range shifts {
		r, err := Resolve(s)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
