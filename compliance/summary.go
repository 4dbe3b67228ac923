/*
summary.go - Remaining-budget compliance query

PURPOSE:
  Answers "how much more can this employee work this day and this week?"
  without a candidate shift. The UI shows the remaining budgets next to the
  planning grid and surfaces recommendations when a budget runs low or the
  weekly rest is already compromised.

SEE ALSO:
  - rules.go: the weighting and rest-span helpers reused here
*/
package compliance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aidalis/care-engine/schedule"
)

// Summary reports the remaining daily/weekly hour budgets for a date and
// whether the weekly rest requirement is already satisfied.
type Summary struct {
	Date time.Time

	DailyHoursUsed      decimal.Decimal
	DailyHoursRemaining decimal.Decimal

	WeeklyHoursUsed      decimal.Decimal
	WeeklyHoursRemaining decimal.Decimal

	WeeklyRestSatisfied bool
	LongestRestHours    decimal.Decimal

	Recommendations []string
}

// Budgets considered "low" for recommendation purposes.
const (
	lowDailyBudgetHours  = 2
	lowWeeklyBudgetHours = 8
)

// Summarize computes the remaining budgets from the employee's existing
// shifts alone.
func (v *Validator) Summarize(shifts []schedule.Shift, date time.Time) (*Summary, error) {
	resolved, err := schedule.ResolveAll(shifts)
	if err != nil {
		return nil, err
	}

	factor := v.cc.Premiums.PresenceDayFactor
	sixty := decimal.NewFromInt(60)

	day := decimal.Zero
	week := decimal.Zero
	weekStart := schedule.WeekStart(date)
	weekEnd := schedule.WeekEnd(date)
	for _, r := range resolved {
		d := schedule.DateOf(r.Shift.Date)
		if schedule.SameDay(d, date) {
			day = day.Add(r.WeightedMinutes(factor))
		}
		if !d.Before(weekStart) && !d.After(weekEnd) {
			week = week.Add(r.WeightedMinutes(factor))
		}
	}
	dayHours := day.Div(sixty)
	weekHours := week.Div(sixty)

	dailyMax := decimal.NewFromInt(int64(v.cc.Rules.DailyMaxHours))
	weeklyMax := decimal.NewFromInt(int64(v.cc.Rules.WeeklyMaxHours))
	dayLeft := decimal.Max(decimal.Zero, dailyMax.Sub(dayHours))
	weekLeft := decimal.Max(decimal.Zero, weeklyMax.Sub(weekHours))

	longest := longestRestMinutes(resolved, date)
	restOK := longest >= v.cc.Rules.WeeklyRestHours*60

	s := &Summary{
		Date:                 schedule.DateOf(date),
		DailyHoursUsed:       dayHours.Round(2),
		DailyHoursRemaining:  dayLeft.Round(2),
		WeeklyHoursUsed:      weekHours.Round(2),
		WeeklyHoursRemaining: weekLeft.Round(2),
		WeeklyRestSatisfied:  restOK,
		LongestRestHours:     schedule.MinutesToHours(longest).Round(2),
	}

	if dayLeft.LessThanOrEqual(decimal.NewFromInt(lowDailyBudgetHours)) {
		s.Recommendations = append(s.Recommendations,
			fmt.Sprintf("only %sh left on %s before the %dh daily maximum",
				dayLeft.Round(2), s.Date.Format("2006-01-02"), v.cc.Rules.DailyMaxHours))
	}
	if weekLeft.LessThanOrEqual(decimal.NewFromInt(lowWeeklyBudgetHours)) {
		s.Recommendations = append(s.Recommendations,
			fmt.Sprintf("only %sh left this week before the %dh weekly maximum",
				weekLeft.Round(2), v.cc.Rules.WeeklyMaxHours))
	}
	if !restOK {
		s.Recommendations = append(s.Recommendations,
			fmt.Sprintf("weekly rest is insufficient: longest span %sh, %dh required",
				s.LongestRestHours, v.cc.Rules.WeeklyRestHours))
	}
	return s, nil
}
