/*
time.go - Interval/time kernel

PURPOSE:
  Pure time arithmetic for shift planning: clock parsing, duration with
  midnight wraparound, night-window intersection, week boundaries and
  interval overlap. Every function is a total, deterministic transformation
  of its inputs; nothing here reads a system clock.

WRAPAROUND RULE:
  A shift's end clock at or before its start clock means the interval wraps
  past midnight: add 1440 minutes. Equal clocks therefore mean exactly 24
  hours. This is load-bearing for 24-hour guard duty.

NIGHT WINDOW:
  The night window is [21:00, 06:00), wrapping midnight. Intersections are
  computed against four fixed windows laid over a 48-hour timeline:

      [0,360) [1260,1440) [1440,1800) [2700,2880)

  An interval normalized to [start, end) with end in (start, start+1440]
  lands inside [0, 2880), so summing the four intersections is exact and
  O(1) - identical to minute-by-minute counting for all same-day and
  midnight-crossing cases.

SEE ALSO:
  - resolve.go: turns a Shift into real datetimes using these primitives
*/
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MinutesPerDay is the length of the wraparound cycle.
const MinutesPerDay = 24 * 60

// =============================================================================
// CLOCK CONVERSION
// =============================================================================

// TimeToMinutes parses "HH:mm" into minutes from midnight. A trailing ":ss"
// component is tolerated and ignored.
func TimeToMinutes(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	return h*60 + m, nil
}

// MinutesToTime is the inverse of TimeToMinutes, modulo 24 hours.
func MinutesToTime(minutes int) string {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// =============================================================================
// DURATION WITH WRAPAROUND
// =============================================================================

// SpanMinutes returns the raw length of [start, end) in minutes, applying
// the wraparound rule: end at or before start means the interval crosses
// midnight, and equal clocks mean exactly 24 hours.
func SpanMinutes(startMinute, endMinute int) int {
	if endMinute <= startMinute {
		endMinute += MinutesPerDay
	}
	return endMinute - startMinute
}

// ShiftDurationMinutes parses both clocks, applies the wraparound rule and
// subtracts the break. The result never goes below zero.
func ShiftDurationMinutes(start, end string, breakMinutes int) (int, error) {
	s, err := TimeToMinutes(start)
	if err != nil {
		return 0, err
	}
	e, err := TimeToMinutes(end)
	if err != nil {
		return 0, err
	}
	d := SpanMinutes(s, e) - breakMinutes
	if d < 0 {
		d = 0
	}
	return d, nil
}

// =============================================================================
// NIGHT-WINDOW INTERSECTION
// =============================================================================

// nightWindows lays the wrapping night window [startMin, 1440) + [0, endMin)
// over a 48-hour timeline.
func nightWindows(nightStart, nightEnd int) [4][2]int {
	return [4][2]int{
		{0, nightEnd},
		{nightStart, MinutesPerDay},
		{MinutesPerDay, MinutesPerDay + nightEnd},
		{MinutesPerDay + nightStart, 2 * MinutesPerDay},
	}
}

// NightIntersectionMinutes returns how many minutes of [start, end) fall in
// the night window [nightStart, nightEnd) (clock minutes, window wrapping
// midnight). A zero-length interval (start == end) intersects nothing:
// unlike SpanMinutes, equal clocks here mean an empty interval.
func NightIntersectionMinutes(startMinute, endMinute, nightStart, nightEnd int) int {
	s, e := startMinute, endMinute
	if e < s {
		e += MinutesPerDay
	}
	total := 0
	for _, w := range nightWindows(nightStart, nightEnd) {
		lo, hi := s, e
		if w[0] > lo {
			lo = w[0]
		}
		if w[1] < hi {
			hi = w[1]
		}
		if hi > lo {
			total += hi - lo
		}
	}
	return total
}

// NightIntersectionHours is NightIntersectionMinutes expressed in hours.
func NightIntersectionHours(startMinute, endMinute, nightStart, nightEnd int) decimal.Decimal {
	m := NightIntersectionMinutes(startMinute, endMinute, nightStart, nightEnd)
	return decimal.NewFromInt(int64(m)).Div(decimal.NewFromInt(60))
}

// =============================================================================
// CALENDAR BOUNDARIES
// =============================================================================

// DateOf truncates t to midnight UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday of t's ISO week, at midnight UTC.
func WeekStart(t time.Time) time.Time {
	d := DateOf(t)
	// Weekday() makes Sunday 0; shift to Monday-start.
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// WeekEnd returns the Sunday of t's ISO week, at midnight UTC.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 6)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}

// =============================================================================
// OVERLAP
// =============================================================================

// IntervalsOverlap reports whether two half-open datetime intervals overlap.
// Back-to-back intervals (one's end equals the other's start) do not.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// MinutesToHours converts an exact minute count to decimal hours.
func MinutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60))
}
