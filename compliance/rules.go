/*
rules.go - The individual legal-constraint predicates

PURPOSE:
  One pure function per constraint of the agreement. Each takes the resolved
  candidate plus the relevant context slice and returns a structured
  Outcome. Rules never mutate anything and never read a clock; "now" does
  not exist here.

CONTEXT:
  The aggregator builds the Context once: the employee's other shifts
  (candidate's own ID excluded when re-validating an edit), resolved and
  sorted by real start datetime, plus approved absences.

SEE ALSO:
  - outcome.go: Outcome/Severity/Code
  - aggregate.go: run order and partitioning
*/
package compliance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aidalis/care-engine/schedule"
)

// Context is the filtered snapshot a validation pass runs against.
type Context struct {
	Existing []*schedule.Resolved // same employee, sorted by StartAt
	Absences []schedule.Absence   // approved only
}

// restDirection distinguishes the backward and forward daily-rest checks.
type restDirection int

const (
	restBeforeCandidate restDirection = iota // rest since the prior shift
	restAfterCandidate                       // rest until the next shift
)

// =============================================================================
// OVERLAP
// =============================================================================

const ruleOverlap = "No two shifts of one employee may overlap"

func (v *Validator) checkOverlap(c *schedule.Resolved, ctx *Context) Outcome {
	for _, other := range ctx.Existing {
		if c.Overlaps(other) {
			return fail(CodeShiftOverlap, ruleOverlap, SeverityBlocking,
				fmt.Sprintf("shift overlaps an existing shift from %s to %s on %s",
					other.Shift.StartTime, other.Shift.EndTime,
					other.Shift.Date.Format("2006-01-02")),
				map[string]any{
					"conflictingShiftId": other.Shift.ID,
					"conflictStart":      other.Shift.StartTime,
					"conflictEnd":        schedule.MinutesToTime(other.EndMinute),
					"conflictEndAt":      other.EndAt,
				})
		}
	}
	return pass(CodeShiftOverlap, ruleOverlap)
}

// =============================================================================
// DAILY REST
// =============================================================================

const ruleDailyRest = "At least 11h of rest between consecutive shifts"

func (v *Validator) checkDailyRest(c *schedule.Resolved, ctx *Context, dir restDirection) Outcome {
	required := v.cc.Rules.DailyRestHours

	var neighbor *schedule.Resolved
	if dir == restBeforeCandidate {
		// Latest shift ending at or before the candidate starts.
		for _, other := range ctx.Existing {
			if !other.EndAt.After(c.StartAt) {
				if neighbor == nil || other.EndAt.After(neighbor.EndAt) {
					neighbor = other
				}
			}
		}
	} else {
		// Earliest shift starting at or after the candidate ends.
		for _, other := range ctx.Existing {
			if !other.StartAt.Before(c.EndAt) {
				if neighbor == nil || other.StartAt.Before(neighbor.StartAt) {
					neighbor = other
				}
			}
		}
	}
	if neighbor == nil {
		return pass(CodeDailyRest, ruleDailyRest)
	}

	// Responsible presence on either side exempts the pair.
	if c.Shift.Type.IsPresence() || neighbor.Shift.Type.IsPresence() {
		return pass(CodeDailyRest, ruleDailyRest)
	}

	var restMinutes int
	if dir == restBeforeCandidate {
		restMinutes = int(c.StartAt.Sub(neighbor.EndAt).Minutes())
	} else {
		restMinutes = int(neighbor.StartAt.Sub(c.EndAt).Minutes())
	}
	if restMinutes >= required*60 {
		return pass(CodeDailyRest, ruleDailyRest)
	}

	details := map[string]any{
		"restHours":     hoursValue(restMinutes),
		"requiredHours": required,
	}
	msg := fmt.Sprintf("only %.2fh of rest since the previous shift, %dh required",
		float64(restMinutes)/60, required)
	if dir == restBeforeCandidate {
		earliest := neighbor.EndAt.Add(time.Duration(required) * time.Hour)
		details["priorEndAt"] = neighbor.EndAt
		details["earliestStartAt"] = earliest
		details["suggestedStart"] = earliest.Format("15:04")
	} else {
		msg = fmt.Sprintf("only %.2fh of rest before the next shift, %dh required",
			float64(restMinutes)/60, required)
		details["nextStartAt"] = neighbor.StartAt
	}
	return fail(CodeDailyRest, ruleDailyRest, SeverityBlocking, msg, details)
}

// =============================================================================
// DAILY MAX HOURS
// =============================================================================

const ruleDailyMax = "At most 10 effective hours per calendar day"

func (v *Validator) checkDailyMaxHours(c *schedule.Resolved, ctx *Context) Outcome {
	factor := v.cc.Premiums.PresenceDayFactor
	total := c.WeightedMinutes(factor)
	for _, other := range ctx.Existing {
		if schedule.SameDay(other.Shift.Date, c.Shift.Date) {
			total = total.Add(other.WeightedMinutes(factor))
		}
	}

	totalHours := total.Div(decimal.NewFromInt(60))
	max := decimal.NewFromInt(int64(v.cc.Rules.DailyMaxHours))
	if totalHours.LessThanOrEqual(max) {
		return pass(CodeDailyMaxHours, ruleDailyMax)
	}
	return fail(CodeDailyMaxHours, ruleDailyMax, SeverityBlocking,
		fmt.Sprintf("%.2f effective hours on %s exceed the %dh daily maximum",
			decValue(totalHours), c.Shift.Date.Format("2006-01-02"), v.cc.Rules.DailyMaxHours),
		map[string]any{
			"totalHours":  decValue(totalHours),
			"maxHours":    v.cc.Rules.DailyMaxHours,
			"excessHours": decValue(totalHours.Sub(max)),
		})
}

// =============================================================================
// WEEKLY MAX HOURS
// =============================================================================

const ruleWeeklyMax = "At most 48 effective hours per week, warning from 44h"

func (v *Validator) checkWeeklyMaxHours(c *schedule.Resolved, ctx *Context) Outcome {
	totalHours := v.weeklyWeightedHours(c, ctx)
	max := decimal.NewFromInt(int64(v.cc.Rules.WeeklyMaxHours))
	warn := decimal.NewFromInt(int64(v.cc.Rules.WeeklyWarningHours))

	switch {
	case totalHours.GreaterThan(max):
		return fail(CodeWeeklyMaxHours, ruleWeeklyMax, SeverityBlocking,
			fmt.Sprintf("%.2f effective hours this week exceed the %dh weekly maximum",
				decValue(totalHours), v.cc.Rules.WeeklyMaxHours),
			map[string]any{
				"totalHours":  decValue(totalHours),
				"maxHours":    v.cc.Rules.WeeklyMaxHours,
				"excessHours": decValue(totalHours.Sub(max)),
			})
	case totalHours.GreaterThanOrEqual(warn):
		return fail(CodeWeeklyMaxHours, ruleWeeklyMax, SeverityWarning,
			fmt.Sprintf("%.2f effective hours this week approach the %dh weekly maximum",
				decValue(totalHours), v.cc.Rules.WeeklyMaxHours),
			map[string]any{
				"totalHours":     decValue(totalHours),
				"maxHours":       v.cc.Rules.WeeklyMaxHours,
				"warningHours":   v.cc.Rules.WeeklyWarningHours,
				"remainingHours": decValue(max.Sub(totalHours)),
			})
	}
	return pass(CodeWeeklyMaxHours, ruleWeeklyMax)
}

// weeklyWeightedHours sums the weighted hours of the candidate's ISO week,
// candidate included.
func (v *Validator) weeklyWeightedHours(c *schedule.Resolved, ctx *Context) decimal.Decimal {
	factor := v.cc.Premiums.PresenceDayFactor
	weekStart := schedule.WeekStart(c.Shift.Date)
	weekEnd := schedule.WeekEnd(c.Shift.Date)

	total := c.WeightedMinutes(factor)
	for _, other := range ctx.Existing {
		d := schedule.DateOf(other.Shift.Date)
		if !d.Before(weekStart) && !d.After(weekEnd) {
			total = total.Add(other.WeightedMinutes(factor))
		}
	}
	return total.Div(decimal.NewFromInt(60))
}

// =============================================================================
// WEEKLY REST
// =============================================================================

const ruleWeeklyRest = "A single uninterrupted weekly rest span of at least 35h"

func (v *Validator) checkWeeklyRest(c *schedule.Resolved, ctx *Context) Outcome {
	all := append([]*schedule.Resolved{c}, ctx.Existing...)
	longest := longestRestMinutes(all, c.Shift.Date)

	required := v.cc.Rules.WeeklyRestHours * 60
	if longest >= required {
		return pass(CodeWeeklyRest, ruleWeeklyRest)
	}
	return fail(CodeWeeklyRest, ruleWeeklyRest, SeverityBlocking,
		fmt.Sprintf("longest rest span this week is %.2fh, %dh required",
			float64(longest)/60, v.cc.Rules.WeeklyRestHours),
		map[string]any{
			"longestRestHours": hoursValue(longest),
			"requiredHours":    v.cc.Rules.WeeklyRestHours,
		})
}

// longestRestMinutes computes the longest work-free span inside the week of
// date, with the window extended by one day on each side so a rest span
// straddling the week boundary still counts.
func longestRestMinutes(shifts []*schedule.Resolved, date time.Time) int {
	windowStart := schedule.WeekStart(date).AddDate(0, 0, -1)
	windowEnd := schedule.WeekStart(date).AddDate(0, 0, 8)

	// Clip work intervals to the window and merge them.
	type span struct{ start, end time.Time }
	var spans []span
	for _, s := range shifts {
		start, end := s.StartAt, s.EndAt
		if !end.After(windowStart) || !start.Before(windowEnd) {
			continue
		}
		if start.Before(windowStart) {
			start = windowStart
		}
		if end.After(windowEnd) {
			end = windowEnd
		}
		spans = append(spans, span{start, end})
	}
	if len(spans) == 0 {
		return int(windowEnd.Sub(windowStart).Minutes())
	}

	// Insertion sort by start; the per-employee slices here are small.
	for i := 1; i < len(spans); i++ {
		for j := i; j > 0 && spans[j].start.Before(spans[j-1].start); j-- {
			spans[j], spans[j-1] = spans[j-1], spans[j]
		}
	}
	merged := spans[:1]
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if !sp.start.After(last.end) {
			if sp.end.After(last.end) {
				last.end = sp.end
			}
			continue
		}
		merged = append(merged, sp)
	}

	longest := int(merged[0].start.Sub(windowStart).Minutes())
	for i := 1; i < len(merged); i++ {
		gap := int(merged[i].start.Sub(merged[i-1].end).Minutes())
		if gap > longest {
			longest = gap
		}
	}
	if tail := int(windowEnd.Sub(merged[len(merged)-1].end).Minutes()); tail > longest {
		longest = tail
	}
	return longest
}

// =============================================================================
// MANDATORY BREAK
// =============================================================================

const ruleBreak = "A break of at least 20min when the worked span exceeds 6h"

func (v *Validator) checkMandatoryBreak(c *schedule.Resolved, _ *Context) Outcome {
	if c.RawMinutes <= v.cc.Rules.BreakRequiredOverHours*60 {
		return pass(CodeMandatoryBreak, ruleBreak)
	}
	if c.Shift.BreakMinutes >= v.cc.Rules.BreakMinMinutes {
		return pass(CodeMandatoryBreak, ruleBreak)
	}
	return fail(CodeMandatoryBreak, ruleBreak, SeverityWarning,
		fmt.Sprintf("worked span of %.2fh requires a break of at least %dmin",
			float64(c.RawMinutes)/60, v.cc.Rules.BreakMinMinutes),
		map[string]any{
			"workedHours":          hoursValue(c.RawMinutes),
			"breakMinutes":         c.Shift.BreakMinutes,
			"requiredBreakMinutes": v.cc.Rules.BreakMinMinutes,
		})
}

// =============================================================================
// ABSENCE CONFLICT
// =============================================================================

const ruleAbsence = "No shift during an approved absence"

func (v *Validator) checkAbsenceConflict(c *schedule.Resolved, ctx *Context) Outcome {
	for _, a := range ctx.Absences {
		if a.Status != schedule.AbsenceApproved {
			continue
		}
		if a.Covers(c.Shift.Date) {
			return fail(CodeAbsenceConflict, ruleAbsence, SeverityBlocking,
				fmt.Sprintf("shift falls within an approved %s absence from %s to %s",
					a.Type, a.StartDate.Format("2006-01-02"), a.EndDate.Format("2006-01-02")),
				map[string]any{
					"absenceType":  a.Type,
					"absenceStart": a.StartDate.Format("2006-01-02"),
					"absenceEnd":   a.EndDate.Format("2006-01-02"),
				})
		}
	}
	return pass(CodeAbsenceConflict, ruleAbsence)
}

// =============================================================================
// NIGHT-PRESENCE DURATION
// =============================================================================

const ruleNightPresence = "Night responsible presence of at most 12 consecutive hours"

func (v *Validator) checkNightPresenceDuration(c *schedule.Resolved, _ *Context) Outcome {
	if c.Shift.Type != schedule.ShiftPresenceNight {
		return pass(CodeNightPresenceDuration, ruleNightPresence)
	}
	max := v.cc.Rules.NightPresenceMaxHours
	if c.RawMinutes <= max*60 {
		return pass(CodeNightPresenceDuration, ruleNightPresence)
	}
	return fail(CodeNightPresenceDuration, ruleNightPresence, SeverityBlocking,
		fmt.Sprintf("night presence of %.2fh exceeds the %dh maximum",
			float64(c.RawMinutes)/60, max),
		map[string]any{
			"durationHours": hoursValue(c.RawMinutes),
			"maxHours":      max,
		})
}

// =============================================================================
// CONSECUTIVE NIGHTS
// =============================================================================

const ruleConsecutiveNights = "At most 5 consecutive calendar days of night presence"

func (v *Validator) checkConsecutiveNights(c *schedule.Resolved, ctx *Context) Outcome {
	if c.Shift.Type != schedule.ShiftPresenceNight {
		return pass(CodeConsecutiveNights, ruleConsecutiveNights)
	}

	occupied := map[time.Time]bool{schedule.DateOf(c.Shift.Date): true}
	for _, other := range ctx.Existing {
		if other.Shift.Type == schedule.ShiftPresenceNight {
			occupied[schedule.DateOf(other.Shift.Date)] = true
		}
	}

	// Expand from the candidate date through the occupied set.
	count := 1
	for d := schedule.DateOf(c.Shift.Date).AddDate(0, 0, -1); occupied[d]; d = d.AddDate(0, 0, -1) {
		count++
	}
	for d := schedule.DateOf(c.Shift.Date).AddDate(0, 0, 1); occupied[d]; d = d.AddDate(0, 0, 1) {
		count++
	}

	max := v.cc.Rules.ConsecutiveNightsMax
	if count <= max {
		return pass(CodeConsecutiveNights, ruleConsecutiveNights)
	}
	return fail(CodeConsecutiveNights, ruleConsecutiveNights, SeverityBlocking,
		fmt.Sprintf("%d consecutive nights of presence, at most %d allowed", count, max),
		map[string]any{
			"consecutiveNights": count,
			"maximumAllowed":    max,
		})
}

// =============================================================================
// GUARD AMPLITUDE
// =============================================================================

const ruleGuardAmplitude = "Chained presence shifts must not span more than 24h end-to-end"

func (v *Validator) checkGuardAmplitude(c *schedule.Resolved, ctx *Context) Outcome {
	gap := time.Duration(v.cc.Rules.GuardChainGapHours) * time.Hour

	all := make([]*schedule.Resolved, 0, len(ctx.Existing)+1)
	all = append(all, ctx.Existing...)
	all = append(all, c)
	for i := 1; i < len(all); i++ {
		for j := i; j > 0 && all[j].StartAt.Before(all[j-1].StartAt); j-- {
			all[j], all[j-1] = all[j-1], all[j]
		}
	}

	idx := 0
	for i, s := range all {
		if s == c {
			idx = i
			break
		}
	}

	// Two neighbors chain when the gap between them is at most the
	// tolerance and at least one side is a responsible-presence type.
	linked := func(prev, next *schedule.Resolved) bool {
		if next.StartAt.Sub(prev.EndAt) > gap {
			return false
		}
		return prev.Shift.Type.IsPresence() || next.Shift.Type.IsPresence()
	}

	first, last := idx, idx
	for first > 0 && linked(all[first-1], all[first]) {
		first--
	}
	for last < len(all)-1 && linked(all[last], all[last+1]) {
		last++
	}

	amplitude := int(all[last].EndAt.Sub(all[first].StartAt).Minutes())
	max := v.cc.Rules.GuardAmplitudeMaxHours * 60
	if amplitude <= max {
		return pass(CodeGuardAmplitude, ruleGuardAmplitude)
	}
	return fail(CodeGuardAmplitude, ruleGuardAmplitude, SeverityBlocking,
		fmt.Sprintf("chained shifts span %.2fh end-to-end, at most %dh allowed",
			float64(amplitude)/60, v.cc.Rules.GuardAmplitudeMaxHours),
		map[string]any{
			"amplitudeHours": hoursValue(amplitude),
			"maxHours":       v.cc.Rules.GuardAmplitudeMaxHours,
			"chainLength":    last - first + 1,
		})
}

// =============================================================================
// GUARD-24H INTERNAL CAPS
// =============================================================================

const ruleGuardCaps = "Within one 24h guard: at most 12h effective work; night-presence segments at most 12h"

// checkGuardCaps evaluates the two internal caps of a guard_24h shift: the
// effective-work total (blocking) and any over-long night-presence segment
// (warning only). A guard without segments is handled by the raw-duration
// fallback of the hour-weighting rules and passes here.
func (v *Validator) checkGuardCaps(c *schedule.Resolved, _ *Context) []Outcome {
	if c.Shift.Type != schedule.ShiftGuard24h || len(c.Segments) == 0 {
		return []Outcome{pass(CodeGuard24hCaps, ruleGuardCaps)}
	}

	var outcomes []Outcome
	maxMin := v.cc.Rules.GuardEffectiveMaxHours * 60

	effective := 0
	for _, seg := range c.Segments {
		if seg.Type == schedule.ShiftEffective {
			effective += seg.NetMinutes
		}
	}
	if effective > maxMin {
		outcomes = append(outcomes, fail(CodeGuard24hCaps, ruleGuardCaps, SeverityBlocking,
			fmt.Sprintf("%.2fh of effective work inside the guard exceed the %dh cap",
				float64(effective)/60, v.cc.Rules.GuardEffectiveMaxHours),
			map[string]any{
				"effectiveHours": hoursValue(effective),
				"maxHours":       v.cc.Rules.GuardEffectiveMaxHours,
			}))
	}

	nightMax := v.cc.Rules.NightPresenceMaxHours * 60
	for i, seg := range c.Segments {
		if seg.Type == schedule.ShiftPresenceNight && seg.RawMinutes > nightMax {
			outcomes = append(outcomes, fail(CodeGuard24hCaps, ruleGuardCaps, SeverityWarning,
				fmt.Sprintf("night-presence segment of %.2fh exceeds the %dh maximum",
					float64(seg.RawMinutes)/60, v.cc.Rules.NightPresenceMaxHours),
				map[string]any{
					"segmentIndex":  i,
					"durationHours": hoursValue(seg.RawMinutes),
					"maxHours":      v.cc.Rules.NightPresenceMaxHours,
				}))
		}
	}

	if len(outcomes) == 0 {
		outcomes = append(outcomes, pass(CodeGuard24hCaps, ruleGuardCaps))
	}
	return outcomes
}
