/*
suggest.go - Alternative-slot suggester

PURPOSE:
  Given a failed validation, proposes up to three corrected time windows
  the planner can offer instead of a bare rejection:
  - DAILY_REST failures: earliest legal start = prior shift's end plus the
    daily rest span, rolling into the next day past midnight, preserving
    the candidate's original duration
  - SHIFT_OVERLAP failures: start at the conflicting shift's end

  An already-valid candidate yields no suggestions.

SEE ALSO:
  - rules.go: the detail keys consumed here (earliestStartAt, conflictEndAt)
*/
package compliance

import (
	"time"

	"github.com/aidalis/care-engine/schedule"
)

// maxSuggestions caps the proposals per failed validation.
const maxSuggestions = 3

// Suggestion is one corrected time window for the candidate shift.
type Suggestion struct {
	Date      time.Time
	StartTime string
	EndTime   string
	Reason    string
}

// SuggestAlternatives validates the candidate and derives corrected slots
// from the failures. A valid candidate returns an empty list.
func (v *Validator) SuggestAlternatives(candidate schedule.Shift, existing []schedule.Shift, absences []schedule.Absence) ([]Suggestion, error) {
	report, err := v.Validate(candidate, existing, absences)
	if err != nil {
		return nil, err
	}
	if report.Valid {
		return nil, nil
	}

	c, err := schedule.Resolve(candidate)
	if err != nil {
		return nil, err
	}

	var out []Suggestion
	for _, e := range report.Errors {
		if len(out) >= maxSuggestions {
			break
		}
		switch e.Code {
		case CodeDailyRest:
			start, ok := e.Details["earliestStartAt"].(time.Time)
			if !ok {
				continue
			}
			out = append(out, slotFrom(start, c.RawMinutes,
				"earliest start respecting the daily rest"))
		case CodeShiftOverlap:
			start, ok := e.Details["conflictEndAt"].(time.Time)
			if !ok {
				continue
			}
			out = append(out, slotFrom(start, c.RawMinutes,
				"start after the conflicting shift ends"))
		}
	}
	return out, nil
}

// slotFrom builds a suggestion starting at the given datetime, keeping the
// candidate's raw duration.
func slotFrom(start time.Time, rawMinutes int, reason string) Suggestion {
	end := start.Add(time.Duration(rawMinutes) * time.Minute)
	return Suggestion{
		Date:      schedule.DateOf(start),
		StartTime: start.Format("15:04"),
		EndTime:   end.Format("15:04"),
		Reason:    reason,
	}
}
