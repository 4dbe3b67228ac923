/*
aggregate.go - Validation aggregator

PURPOSE:
  Runs every rule against a candidate shift and partitions failures into
  blocking errors and non-blocking warnings. Exposes the fast path the UI
  uses before a full report (QuickValidate) alongside the complete one.

RUN ORDER:
  overlap -> daily rest (prior) -> daily rest (next, re-labelled) ->
  daily max -> weekly max -> weekly rest -> mandatory break ->
  absence conflict -> night-presence duration -> consecutive nights ->
  guard amplitude -> guard-24h internal caps

SNAPSHOT CONTRACT:
  The caller supplies a consistent snapshot of the employee's other shifts
  and approved absences. The aggregator filters out the candidate's own ID
  (re-validating an edit) but performs no I/O of its own.

SEE ALSO:
  - rules.go: the predicates
  - summary.go: remaining-budget query
  - suggest.go: alternative slots for failed validations
*/
package compliance

import (
	"github.com/aidalis/care-engine/convention"
	"github.com/aidalis/care-engine/schedule"
)

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator evaluates candidate shifts against the agreement's constraints.
// It is stateless and safe for concurrent use.
type Validator struct {
	cc convention.Convention
}

func NewValidator(cc convention.Convention) *Validator {
	return &Validator{cc: cc}
}

// Validate runs the full rule set. A Go error means the candidate (or a
// context shift) is malformed; compliance failures land in the Report.
func (v *Validator) Validate(candidate schedule.Shift, existing []schedule.Shift, absences []schedule.Absence) (*Report, error) {
	c, ctx, err := v.prepare(candidate, existing, absences)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	report.add(v.checkOverlap(c, ctx))
	report.add(v.checkDailyRest(c, ctx, restBeforeCandidate))
	report.add(v.checkDailyRest(c, ctx, restAfterCandidate))
	report.add(v.checkDailyMaxHours(c, ctx))
	report.add(v.checkWeeklyMaxHours(c, ctx))
	report.add(v.checkWeeklyRest(c, ctx))
	report.add(v.checkMandatoryBreak(c, ctx))
	report.add(v.checkAbsenceConflict(c, ctx))
	report.add(v.checkNightPresenceDuration(c, ctx))
	report.add(v.checkConsecutiveNights(c, ctx))
	report.add(v.checkGuardAmplitude(c, ctx))
	for _, o := range v.checkGuardCaps(c, ctx) {
		report.add(o)
	}

	report.Valid = len(report.Errors) == 0
	return report, nil
}

// QuickValidate runs only the rules fast UI feedback needs and returns the
// blocking failure messages as plain strings. Warning-band outcomes (the
// 44-48h weekly corridor) stay out: the quick path answers "can I create
// this?", and it has no severity channel to tell a warning apart.
func (v *Validator) QuickValidate(candidate schedule.Shift, existing []schedule.Shift) ([]string, error) {
	c, ctx, err := v.prepare(candidate, existing, nil)
	if err != nil {
		return nil, err
	}

	var messages []string
	for _, o := range []Outcome{
		v.checkOverlap(c, ctx),
		v.checkDailyRest(c, ctx, restBeforeCandidate),
		v.checkDailyRest(c, ctx, restAfterCandidate),
		v.checkDailyMaxHours(c, ctx),
		v.checkWeeklyMaxHours(c, ctx),
	} {
		if !o.Valid && o.Severity == SeverityBlocking {
			messages = append(messages, o.Message)
		}
	}
	return messages, nil
}

// prepare resolves the candidate and builds the rule context: same-employee
// shifts with the candidate's own ID excluded, sorted by real start.
func (v *Validator) prepare(candidate schedule.Shift, existing []schedule.Shift, absences []schedule.Absence) (*schedule.Resolved, *Context, error) {
	c, err := schedule.Resolve(candidate)
	if err != nil {
		return nil, nil, err
	}

	filtered := make([]schedule.Shift, 0, len(existing))
	for _, s := range existing {
		if candidate.ID != "" && s.ID == candidate.ID {
			continue
		}
		if s.EmployeeID != candidate.EmployeeID {
			continue
		}
		filtered = append(filtered, s)
	}

	resolved, err := schedule.ResolveAll(filtered)
	if err != nil {
		return nil, nil, err
	}
	for i := 1; i < len(resolved); i++ {
		for j := i; j > 0 && resolved[j].StartAt.Before(resolved[j-1].StartAt); j-- {
			resolved[j], resolved[j-1] = resolved[j-1], resolved[j]
		}
	}

	approved := make([]schedule.Absence, 0, len(absences))
	for _, a := range absences {
		if a.Status == schedule.AbsenceApproved && a.EmployeeID == candidate.EmployeeID {
			approved = append(approved, a)
		}
	}

	return c, &Context{Existing: resolved, Absences: approved}, nil
}
