/*
Package compliance implements the labor-law rule engine for home-care
shift scheduling.

PURPOSE:
  Decides whether a proposed shift may legally be created given an
  employee's existing shifts and absences, under the collective agreement's
  constraints. Each rule is an independent pure predicate producing a
  structured outcome; the aggregator partitions failures into blocking
  errors and non-blocking warnings.

KEY CONCEPTS IN THIS FILE (outcome.go):
  - Outcome:  one rule's structured result (never a Go error)
  - Severity: blocking vs warning
  - Report:   the aggregate of all rule failures for a candidate shift

TWO ERROR TAXONOMIES:
  A non-compliant but well-formed shift yields an invalid Outcome. A
  malformed shift (unparseable clock, unknown type) yields a Go error from
  the schedule package before any rule runs. The two never mix.

DETAILS BAG:
  Outcome.Details carries the numbers the decision used (hours, thresholds,
  excess, suggested times). These values are part of the contract consumed
  by UI and suggester, not incidental debugging output.

SEE ALSO:
  - rules.go: the individual predicates
  - aggregate.go: Validator running them in order
  - suggest.go: alternative-slot suggestions derived from failures
*/
package compliance

import "github.com/shopspring/decimal"

// =============================================================================
// CODES AND SEVERITY
// =============================================================================

// Code is the stable machine-readable identifier of a rule.
type Code string

const (
	CodeShiftOverlap          Code = "SHIFT_OVERLAP"
	CodeDailyRest             Code = "DAILY_REST"
	CodeDailyMaxHours         Code = "DAILY_MAX_HOURS"
	CodeWeeklyMaxHours        Code = "WEEKLY_MAX_HOURS"
	CodeWeeklyRest            Code = "WEEKLY_REST"
	CodeMandatoryBreak        Code = "MANDATORY_BREAK"
	CodeAbsenceConflict       Code = "ABSENCE_CONFLICT"
	CodeNightPresenceDuration Code = "NIGHT_PRESENCE_DURATION"
	CodeConsecutiveNights     Code = "CONSECUTIVE_NIGHTS"
	CodeGuardAmplitude        Code = "GUARD_AMPLITUDE"
	CodeGuard24hCaps          Code = "GUARD_24H_CAPS"
)

// Severity partitions failures: blocking outcomes prevent persistence,
// warnings do not.
type Severity string

const (
	SeverityBlocking Severity = "blocking"
	SeverityWarning  Severity = "warning"
)

// =============================================================================
// OUTCOME - One rule's structured result
// =============================================================================

// Outcome is a rule result. Rules always return an Outcome for well-formed
// input; they never return Go errors for non-compliance.
type Outcome struct {
	Valid    bool
	Code     Code
	Rule     string // human description of the constraint
	Severity Severity
	Message  string
	Details  map[string]any
}

func pass(code Code, rule string) Outcome {
	return Outcome{Valid: true, Code: code, Rule: rule, Severity: SeverityBlocking}
}

func fail(code Code, rule string, sev Severity, msg string, details map[string]any) Outcome {
	return Outcome{Valid: false, Code: code, Rule: rule, Severity: sev, Message: msg, Details: details}
}

// =============================================================================
// REPORT - Aggregated validation result
// =============================================================================

// Report is the aggregate of one validation pass. Only failures appear in
// the lists; Valid is true exactly when Errors is empty.
type Report struct {
	Valid    bool
	Errors   []Outcome
	Warnings []Outcome
}

func (r *Report) add(o Outcome) {
	if o.Valid {
		return
	}
	if o.Severity == SeverityWarning {
		r.Warnings = append(r.Warnings, o)
	} else {
		r.Errors = append(r.Errors, o)
	}
}

// hoursValue renders an exact minute count as a 2-decimal hour figure for
// the details bag.
func hoursValue(minutes int) float64 {
	v, _ := decimal.NewFromInt(int64(minutes)).
		Div(decimal.NewFromInt(60)).Round(2).Float64()
	return v
}

func decValue(d decimal.Decimal) float64 {
	v, _ := d.Round(2).Float64()
	return v
}
