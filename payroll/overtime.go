/*
overtime.go - Rolling weekly overtime attribution

PURPOSE:
  Distributes an employee's weekly overtime across the individual shifts
  that produced it, and across the two premium tiers. The algorithm is
  order-dependent by design: shifts are processed chronologically within
  the ISO week, carrying a running total forward, so each shift is charged
  exactly the overtime it pushed past the contractual threshold.

TIER SPLIT:
  The first 8 cumulative overtime hours of a week price at the first tier
  (25%), everything beyond at the second (50%). A shift straddling the
  boundary mid-shift splits accordingly: the before/after cumulative
  overtime values are clipped to [0, 8] for tier 1 and the remainder falls
  to tier 2.

IMPLEMENTATION NOTE:
  An explicit fold over the sorted sequence, O(n), no recomputation - the
  running totals make the attribution auditable line by line.

SEE ALSO:
  - calculator.go: turns an attribution into the overtime premium
*/
package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/aidalis/care-engine/schedule"
)

// Attribution is one shift's share of the week's overtime.
type Attribution struct {
	ShiftID string

	// HoursBefore is the cumulative weighted total before this shift.
	HoursBefore decimal.Decimal
	// HoursAfter is the cumulative weighted total including this shift.
	HoursAfter decimal.Decimal

	// NewOvertimeHours is the overtime this shift created.
	NewOvertimeHours decimal.Decimal
	// Tier1Hours prices at the first-tier premium, Tier2Hours beyond it.
	Tier1Hours decimal.Decimal
	Tier2Hours decimal.Decimal
}

// OvertimeShare is the tier split the pay calculator consumes.
type OvertimeShare struct {
	Tier1Hours decimal.Decimal
	Tier2Hours decimal.Decimal
}

// Share extracts the tier split of an attribution.
func (a Attribution) Share() OvertimeShare {
	return OvertimeShare{Tier1Hours: a.Tier1Hours, Tier2Hours: a.Tier2Hours}
}

// AttributeOvertime folds the shifts in chronological order against the
// contractual weekly threshold. The input is expected to cover one ISO
// week; the function does not group by week itself.
func (c *Calculator) AttributeOvertime(shifts []schedule.Shift, weeklyHours decimal.Decimal) ([]Attribution, error) {
	resolved, err := schedule.ResolveAll(shifts)
	if err != nil {
		return nil, err
	}
	sortByStart(resolved)

	factor := c.cc.Premiums.PresenceDayFactor
	tierCap := c.cc.Premiums.OvertimeTier1Cap

	running := decimal.Zero
	out := make([]Attribution, 0, len(resolved))
	for _, r := range resolved {
		hours := r.WeightedHours(factor)
		before := running
		after := running.Add(hours)
		running = after

		otBefore := decimal.Max(decimal.Zero, before.Sub(weeklyHours))
		otAfter := decimal.Max(decimal.Zero, after.Sub(weeklyHours))
		newOT := otAfter.Sub(otBefore)

		tier1 := decimal.Min(otAfter, tierCap).Sub(decimal.Min(otBefore, tierCap))
		tier2 := newOT.Sub(tier1)

		out = append(out, Attribution{
			ShiftID:          r.Shift.ID,
			HoursBefore:      before,
			HoursAfter:       after,
			NewOvertimeHours: newOT,
			Tier1Hours:       tier1,
			Tier2Hours:       tier2,
		})
	}
	return out, nil
}

func sortByStart(shifts []*schedule.Resolved) {
	for i := 1; i < len(shifts); i++ {
		for j := i; j > 0 && shifts[j].StartAt.Before(shifts[j-1].StartAt); j-- {
			shifts[j], shifts[j-1] = shifts[j-1], shifts[j]
		}
	}
}
