/*
breakdown.go - Hours-by-category aggregation for export

PURPOSE:
  The export/reporting collaborator (CSV/PDF generators, out of scope here)
  consumes per-shift and per-period hour totals split by category:
  normal, Sunday, holiday, night and overtime. This is a thin aggregation
  pass over the pay calculator's primitives - no pricing happens here.

WEEK GROUPING:
  Overtime only exists per ISO week, so the period aggregation groups
  shifts by Monday-start week before attributing.

SEE ALSO:
  - overtime.go: the attribution reused per week
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aidalis/care-engine/schedule"
)

// HoursBreakdown totals worked hours by pay category. Categories overlap
// by design: a Sunday night hour counts in Normal, Sunday and Night.
type HoursBreakdown struct {
	Normal   decimal.Decimal
	Sunday   decimal.Decimal
	Holiday  decimal.Decimal
	Night    decimal.Decimal
	Overtime decimal.Decimal
}

func emptyBreakdown() *HoursBreakdown {
	return &HoursBreakdown{
		Normal:   decimal.Zero,
		Sunday:   decimal.Zero,
		Holiday:  decimal.Zero,
		Night:    decimal.Zero,
		Overtime: decimal.Zero,
	}
}

// BreakdownShift categorizes one shift's hours, given its overtime share.
func (c *Calculator) BreakdownShift(shift schedule.Shift, share OvertimeShare) (*HoursBreakdown, error) {
	r, err := schedule.Resolve(shift)
	if err != nil {
		return nil, err
	}

	b := emptyBreakdown()
	hours := r.WeightedHours(c.cc.Premiums.PresenceDayFactor)
	b.Normal = hours.Round(2)

	if r.Shift.Date.Weekday() == time.Sunday {
		b.Sunday = hours.Round(2)
	}
	if IsPublicHoliday(r.Shift.Date) {
		b.Holiday = hours.Round(2)
	}

	night := r.NightMinutes(c.cc.Rules.NightStartMinute, c.cc.Rules.NightEndMinute)
	b.Night = schedule.MinutesToHours(night).Round(2)

	b.Overtime = share.Tier1Hours.Add(share.Tier2Hours).Round(2)
	return b, nil
}

// BreakdownPeriod aggregates any span of one employee's shifts, grouping
// by ISO week for the overtime attribution.
func (c *Calculator) BreakdownPeriod(shifts []schedule.Shift, contract schedule.Contract) (*HoursBreakdown, error) {
	weeks := make(map[time.Time][]schedule.Shift)
	for _, s := range shifts {
		ws := schedule.WeekStart(s.Date)
		weeks[ws] = append(weeks[ws], s)
	}

	total := emptyBreakdown()
	for _, weekShifts := range weeks {
		attributions, err := c.AttributeOvertime(weekShifts, contract.WeeklyHours)
		if err != nil {
			return nil, err
		}
		// AttributeOvertime sorts chronologically; mirror that order.
		resolved, err := schedule.ResolveAll(weekShifts)
		if err != nil {
			return nil, err
		}
		sortByStart(resolved)

		for i, r := range resolved {
			b, err := c.BreakdownShift(r.Shift, attributions[i].Share())
			if err != nil {
				return nil, err
			}
			total.Normal = total.Normal.Add(b.Normal)
			total.Sunday = total.Sunday.Add(b.Sunday)
			total.Holiday = total.Holiday.Add(b.Holiday)
			total.Night = total.Night.Add(b.Night)
			total.Overtime = total.Overtime.Add(b.Overtime)
		}
	}
	return total, nil
}
