/*
Package payroll computes gross pay for home-care shifts under the
collective agreement.

PURPOSE:
  One shift in, one ComputedPay out: base pay plus the Sunday, holiday,
  night and overtime premiums, or the alternate formulas for responsible
  presence and 24-hour guard duty. The calculator is pure - rate and
  premium configuration are injected, nothing reads a clock or a store.

ROUNDING DISCIPLINE:
  Every monetary line rounds half-up to 2 decimals at each accumulation
  boundary, not only at the end. Repeated computation from identical
  inputs is bit-for-bit reproducible; the outputs feed legal declarations.

PAY FORMULAS BY SHIFT TYPE:
  effective:       hours x rate, + 30% Sunday, + 60%/100% holiday
                   (habitual/exceptional), + 20% on night hours when the
                   worker actually acted at night, + overtime premium
  presence_day:    hours x 2/3 x rate; Sunday/holiday premiums apply to
                   this reduced base
  presence_night:  hours x rate x 0.25, requalified to x 1.0 when the
                   night-intervention count reaches the threshold
  guard_24h:       effective segments into base pay (premiums apply),
                   presence_day segments at 2/3, presence_night segments
                   as the allowance; the night premium covers only the
                   effective segments' night-window portion

SEE ALSO:
  - overtime.go: the weekly attribution feeding the overtime premium
  - holidays.go: the public-holiday calendar
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aidalis/care-engine/convention"
	"github.com/aidalis/care-engine/schedule"
)

// =============================================================================
// COMPUTED PAY - The per-shift result
// =============================================================================

// ComputedPay is the gross pay of one shift, one line per premium. Which
// lines are nonzero depends on the shift type.
type ComputedPay struct {
	BasePay                decimal.Decimal
	SundayPremium          decimal.Decimal
	HolidayPremium         decimal.Decimal
	NightPremium           decimal.Decimal
	OvertimePremium        decimal.Decimal
	PresenceDayPay         decimal.Decimal
	NightPresenceAllowance decimal.Decimal
	Total                  decimal.Decimal
}

// PayOptions carries the per-shift inputs that are not on the shift itself.
type PayOptions struct {
	// HolidayExceptional selects the 100% holiday premium over the 60%
	// habitual one.
	HolidayExceptional bool

	// Overtime is this shift's share of the week's overtime, from the
	// attributor. The zero value means no overtime.
	Overtime OvertimeShare
}

// =============================================================================
// CALCULATOR
// =============================================================================

// Calculator computes shift pay under an injected convention. Stateless
// and safe for concurrent use.
type Calculator struct {
	cc convention.Convention
}

func NewCalculator(cc convention.Convention) *Calculator {
	return &Calculator{cc: cc}
}

// PayShift computes the gross pay of one shift at the given hourly rate.
// It returns a Go error only for malformed input (a guard shift without
// segments, unparseable clocks); it never fails on well-typed numbers.
func (c *Calculator) PayShift(shift schedule.Shift, rate decimal.Decimal, opts PayOptions) (*ComputedPay, error) {
	r, err := schedule.Resolve(shift)
	if err != nil {
		return nil, err
	}

	pay := &ComputedPay{
		BasePay:                decimal.Zero,
		SundayPremium:          decimal.Zero,
		HolidayPremium:         decimal.Zero,
		NightPremium:           decimal.Zero,
		OvertimePremium:        decimal.Zero,
		PresenceDayPay:         decimal.Zero,
		NightPresenceAllowance: decimal.Zero,
	}

	switch shift.Type {
	case schedule.ShiftEffective:
		c.payEffective(r, rate, opts, pay)
	case schedule.ShiftPresenceDay:
		c.payPresenceDay(r, rate, opts, pay)
	case schedule.ShiftPresenceNight:
		c.payPresenceNight(r, rate, pay)
	case schedule.ShiftGuard24h:
		if len(r.Segments) == 0 {
			return nil, &schedule.MalformedShiftError{
				ShiftID: shift.ID, Field: "segments", Cause: schedule.ErrMissingSegments,
			}
		}
		c.payGuard(r, rate, opts, pay)
	}

	pay.OvertimePremium = c.overtimePremium(rate, opts.Overtime)

	pay.Total = pay.BasePay.
		Add(pay.SundayPremium).
		Add(pay.HolidayPremium).
		Add(pay.NightPremium).
		Add(pay.OvertimePremium).
		Add(pay.PresenceDayPay).
		Add(pay.NightPresenceAllowance).
		Round(2)
	return pay, nil
}

func (c *Calculator) payEffective(r *schedule.Resolved, rate decimal.Decimal, opts PayOptions, pay *ComputedPay) {
	hours := schedule.MinutesToHours(r.NetMinutes)
	pay.BasePay = hours.Mul(rate).Round(2)

	c.applyDatePremiums(r.Shift.Date, pay.BasePay, opts, pay)

	if r.Shift.HasNightAction {
		nightHours := schedule.MinutesToHours(
			r.NightMinutes(c.cc.Rules.NightStartMinute, c.cc.Rules.NightEndMinute))
		pay.NightPremium = nightHours.Mul(rate).Mul(c.cc.Premiums.Night).Round(2)
	}
}

func (c *Calculator) payPresenceDay(r *schedule.Resolved, rate decimal.Decimal, opts PayOptions, pay *ComputedPay) {
	hours := schedule.MinutesToHours(r.NetMinutes)
	pay.PresenceDayPay = hours.Mul(c.cc.Premiums.PresenceDayFactor).Mul(rate).Round(2)

	// Sunday/holiday premiums apply to the reduced base, not the raw hours.
	c.applyDatePremiums(r.Shift.Date, pay.PresenceDayPay, opts, pay)
}

func (c *Calculator) payPresenceNight(r *schedule.Resolved, rate decimal.Decimal, pay *ComputedPay) {
	hours := schedule.MinutesToHours(r.NetMinutes)
	pay.NightPresenceAllowance = hours.Mul(rate).Mul(c.presenceNightFactor(r.Shift)).Round(2)
}

func (c *Calculator) payGuard(r *schedule.Resolved, rate decimal.Decimal, opts PayOptions, pay *ComputedPay) {
	nightFactor := c.presenceNightFactor(r.Shift)
	nightMinutes := 0

	for _, seg := range r.Segments {
		hours := schedule.MinutesToHours(seg.NetMinutes)
		switch seg.Type {
		case schedule.ShiftEffective:
			pay.BasePay = pay.BasePay.Add(hours.Mul(rate).Round(2))
			nightMinutes += schedule.NightIntersectionMinutes(
				seg.StartMinute, seg.StartMinute+seg.RawMinutes,
				c.cc.Rules.NightStartMinute, c.cc.Rules.NightEndMinute)
		case schedule.ShiftPresenceDay:
			pay.PresenceDayPay = pay.PresenceDayPay.
				Add(hours.Mul(c.cc.Premiums.PresenceDayFactor).Mul(rate).Round(2))
		case schedule.ShiftPresenceNight:
			pay.NightPresenceAllowance = pay.NightPresenceAllowance.
				Add(hours.Mul(rate).Mul(nightFactor).Round(2))
		}
	}

	c.applyDatePremiums(r.Shift.Date, pay.BasePay, opts, pay)

	if r.Shift.HasNightAction && nightMinutes > 0 {
		pay.NightPremium = schedule.MinutesToHours(nightMinutes).
			Mul(rate).Mul(c.cc.Premiums.Night).Round(2)
	}
}

// applyDatePremiums adds the Sunday and holiday premiums computed on the
// given base.
func (c *Calculator) applyDatePremiums(date time.Time, base decimal.Decimal, opts PayOptions, pay *ComputedPay) {
	if date.Weekday() == time.Sunday {
		pay.SundayPremium = base.Mul(c.cc.Premiums.Sunday).Round(2)
	}
	if IsPublicHoliday(date) {
		holidayRate := c.cc.Premiums.HolidayHabitual
		if opts.HolidayExceptional {
			holidayRate = c.cc.Premiums.HolidayExceptional
		}
		pay.HolidayPremium = base.Mul(holidayRate).Round(2)
	}
}

// presenceNightFactor returns the allowance factor, requalified to full
// effective pay when the night-intervention count reaches the threshold.
func (c *Calculator) presenceNightFactor(s schedule.Shift) decimal.Decimal {
	if s.NightInterventions >= c.cc.Premiums.RequalifyInterventions {
		return decimal.NewFromInt(1)
	}
	return c.cc.Premiums.PresenceNightFactor
}

func (c *Calculator) overtimePremium(rate decimal.Decimal, share OvertimeShare) decimal.Decimal {
	tier1 := share.Tier1Hours.Mul(rate).Mul(c.cc.Premiums.OvertimeTier1).Round(2)
	tier2 := share.Tier2Hours.Mul(rate).Mul(c.cc.Premiums.OvertimeTier2).Round(2)
	return tier1.Add(tier2)
}

// =============================================================================
// WEEK CONVENIENCE - Attribution plus per-shift pay in one pass
// =============================================================================

// ShiftPay pairs a shift with its overtime share and computed pay.
type ShiftPay struct {
	Shift    schedule.Shift
	Overtime OvertimeShare
	Pay      ComputedPay
}

// PayWeek attributes the week's overtime and prices each shift,
// chronologically. The input is expected to cover one ISO week of one
// employee.
func (c *Calculator) PayWeek(shifts []schedule.Shift, contract schedule.Contract, holidayExceptional bool) ([]ShiftPay, error) {
	resolved, err := schedule.ResolveAll(shifts)
	if err != nil {
		return nil, err
	}
	sortByStart(resolved)

	sorted := make([]schedule.Shift, len(resolved))
	for i, r := range resolved {
		sorted[i] = r.Shift
	}

	attributions, err := c.AttributeOvertime(sorted, contract.WeeklyHours)
	if err != nil {
		return nil, err
	}

	out := make([]ShiftPay, len(sorted))
	for i, s := range sorted {
		pay, err := c.PayShift(s, contract.HourlyRate, PayOptions{
			HolidayExceptional: holidayExceptional,
			Overtime:           attributions[i].Share(),
		})
		if err != nil {
			return nil, err
		}
		out[i] = ShiftPay{Shift: s, Overtime: attributions[i].Share(), Pay: *pay}
	}
	return out, nil
}
