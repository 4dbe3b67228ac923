package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidalis/care-engine/convention"
	"github.com/aidalis/care-engine/payroll"
	"github.com/aidalis/care-engine/schedule"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newCalculator() *payroll.Calculator {
	return payroll.NewCalculator(convention.Default2025())
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func shiftOn(day time.Time, start, end string, typ schedule.ShiftType) schedule.Shift {
	return schedule.Shift{
		EmployeeID: "emp-1",
		Date:       day,
		StartTime:  start,
		EndTime:    end,
		Type:       typ,
	}
}

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func payShift(t *testing.T, s schedule.Shift, hourly string, opts payroll.PayOptions) *payroll.ComputedPay {
	t.Helper()
	pay, err := newCalculator().PayShift(s, rate(hourly), opts)
	require.NoError(t, err)
	return pay
}

// =============================================================================
// EFFECTIVE SHIFT PRICING
// =============================================================================

func TestPayShift_PlainWeekday(t *testing.T) {
	// 8h on a plain Monday at 15/h: base pay only.
	pay := payShift(t, shiftOn(date(2025, time.March, 10), "09:00", "17:00", schedule.ShiftEffective),
		"15", payroll.PayOptions{})

	assert.Equal(t, "120.00", pay.BasePay.StringFixed(2))
	assert.Equal(t, "0.00", pay.SundayPremium.StringFixed(2))
	assert.Equal(t, "0.00", pay.HolidayPremium.StringFixed(2))
	assert.Equal(t, "120.00", pay.Total.StringFixed(2))
}

func TestPayShift_SundayPremium(t *testing.T) {
	// June 1 2025 is a Sunday: +30% on base.
	pay := payShift(t, shiftOn(date(2025, time.June, 1), "09:00", "17:00", schedule.ShiftEffective),
		"15", payroll.PayOptions{})

	assert.Equal(t, "120.00", pay.BasePay.StringFixed(2))
	assert.Equal(t, "36.00", pay.SundayPremium.StringFixed(2))
	assert.Equal(t, "156.00", pay.Total.StringFixed(2))
}

func TestPayShift_HolidayHabitualVsExceptional(t *testing.T) {
	// May 1 2025, a Thursday: habitual +60%, exceptional +100%.
	mayDay := shiftOn(date(2025, time.May, 1), "09:00", "17:00", schedule.ShiftEffective)

	habitual := payShift(t, mayDay, "15", payroll.PayOptions{})
	assert.Equal(t, "72.00", habitual.HolidayPremium.StringFixed(2))
	assert.Equal(t, "192.00", habitual.Total.StringFixed(2))

	exceptional := payShift(t, mayDay, "15", payroll.PayOptions{HolidayExceptional: true})
	assert.Equal(t, "120.00", exceptional.HolidayPremium.StringFixed(2))
	assert.Equal(t, "240.00", exceptional.Total.StringFixed(2))
}

func TestPayShift_SundayAndHolidayStack(t *testing.T) {
	// August 15 2027 falls on a Sunday: both premiums apply to the base.
	pay := payShift(t, shiftOn(date(2027, time.August, 15), "09:00", "17:00", schedule.ShiftEffective),
		"15", payroll.PayOptions{HolidayExceptional: true})

	assert.Equal(t, "120.00", pay.BasePay.StringFixed(2))
	assert.Equal(t, "36.00", pay.SundayPremium.StringFixed(2))
	assert.Equal(t, "120.00", pay.HolidayPremium.StringFixed(2))
	assert.Equal(t, "276.00", pay.Total.StringFixed(2))
}

func TestPayShift_NightPremiumGatedByNightAction(t *testing.T) {
	// GIVEN: a 22:00-06:00 shift, fully inside the night window for 8h
	// THEN: the +20% night premium applies only when the worker acted

	night := shiftOn(date(2025, time.March, 10), "22:00", "06:00", schedule.ShiftEffective)

	passive := payShift(t, night, "10", payroll.PayOptions{})
	assert.Equal(t, "0.00", passive.NightPremium.StringFixed(2))

	night.HasNightAction = true
	active := payShift(t, night, "10", payroll.PayOptions{})
	assert.Equal(t, "80.00", active.BasePay.StringFixed(2))
	assert.Equal(t, "16.00", active.NightPremium.StringFixed(2), "8 night hours x 10 x 20%")
	assert.Equal(t, "96.00", active.Total.StringFixed(2))
}

// =============================================================================
// RESPONSIBLE PRESENCE PRICING
// =============================================================================

func TestPayShift_PresenceDayAtTwoThirds(t *testing.T) {
	pay := payShift(t, shiftOn(date(2025, time.March, 10), "10:00", "16:00", schedule.ShiftPresenceDay),
		"15", payroll.PayOptions{})

	assert.Equal(t, "60.00", pay.PresenceDayPay.StringFixed(2), "6h x 2/3 x 15")
	assert.Equal(t, "0.00", pay.BasePay.StringFixed(2))
	assert.Equal(t, "60.00", pay.Total.StringFixed(2))
}

func TestPayShift_PresenceDaySundayPremiumOnReducedBase(t *testing.T) {
	pay := payShift(t, shiftOn(date(2025, time.June, 1), "10:00", "16:00", schedule.ShiftPresenceDay),
		"15", payroll.PayOptions{})

	assert.Equal(t, "60.00", pay.PresenceDayPay.StringFixed(2))
	assert.Equal(t, "18.00", pay.SundayPremium.StringFixed(2), "30% of the reduced base, not of 6h x 15")
}

func TestPayShift_PresenceNightAllowance(t *testing.T) {
	pn := shiftOn(date(2025, time.March, 10), "21:00", "05:00", schedule.ShiftPresenceNight)

	pay := payShift(t, pn, "12", payroll.PayOptions{})
	assert.Equal(t, "24.00", pay.NightPresenceAllowance.StringFixed(2), "8h x 12 x 1/4")
	assert.Equal(t, "24.00", pay.Total.StringFixed(2))
}

func TestPayShift_PresenceNightRequalifiedByInterventions(t *testing.T) {
	// At 4 interventions the whole block is re-paid as effective work.
	pn := shiftOn(date(2025, time.March, 10), "21:00", "05:00", schedule.ShiftPresenceNight)

	pn.NightInterventions = 3
	below := payShift(t, pn, "12", payroll.PayOptions{})
	assert.Equal(t, "24.00", below.NightPresenceAllowance.StringFixed(2))

	pn.NightInterventions = 4
	at := payShift(t, pn, "12", payroll.PayOptions{})
	assert.Equal(t, "96.00", at.NightPresenceAllowance.StringFixed(2), "8h x 12 x 1.0")
}

// =============================================================================
// GUARD PRICING
// =============================================================================

func TestPayShift_GuardSegmentsPricedByType(t *testing.T) {
	guard := schedule.Shift{
		EmployeeID: "emp-1",
		Date:       date(2025, time.March, 10),
		StartTime:  "08:00",
		EndTime:    "08:00",
		Type:       schedule.ShiftGuard24h,
		Segments: []schedule.Segment{
			{StartTime: "08:00", Type: schedule.ShiftEffective},     // 12h
			{StartTime: "20:00", Type: schedule.ShiftPresenceNight}, // 10h
			{StartTime: "06:00", Type: schedule.ShiftPresenceDay},   // 2h
		},
	}

	pay := payShift(t, guard, "10", payroll.PayOptions{})
	assert.Equal(t, "120.00", pay.BasePay.StringFixed(2), "12h effective x 10")
	assert.Equal(t, "25.00", pay.NightPresenceAllowance.StringFixed(2), "10h x 10 x 1/4")
	assert.Equal(t, "13.33", pay.PresenceDayPay.StringFixed(2), "2h x 2/3 x 10")
	assert.Equal(t, "158.33", pay.Total.StringFixed(2))
}

func TestPayShift_GuardWithoutSegmentsFailsFast(t *testing.T) {
	guard := shiftOn(date(2025, time.March, 10), "08:00", "08:00", schedule.ShiftGuard24h)

	_, err := newCalculator().PayShift(guard, rate("10"), payroll.PayOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, schedule.ErrMissingSegments)
}

// =============================================================================
// OVERTIME PREMIUM
// =============================================================================

func TestPayShift_OvertimePremiumFromShare(t *testing.T) {
	pay := payShift(t, shiftOn(date(2025, time.March, 10), "09:00", "17:00", schedule.ShiftEffective),
		"10", payroll.PayOptions{
			Overtime: payroll.OvertimeShare{
				Tier1Hours: decimal.NewFromInt(3),
				Tier2Hours: decimal.NewFromInt(5),
			},
		})

	// 3h x 10 x 25% + 5h x 10 x 50%
	assert.Equal(t, "32.50", pay.OvertimePremium.StringFixed(2))
	assert.Equal(t, "112.50", pay.Total.StringFixed(2))
}

// =============================================================================
// WEEK CONVENIENCE
// =============================================================================

func TestPayWeek_AttributesOvertimeChronologically(t *testing.T) {
	// GIVEN: a 35h contract at 10/h and six 8h shifts Monday to Saturday
	// THEN: the 5th shift carries 5h tier-1, the 6th 3h tier-1 + 5h tier-2

	contract := schedule.Contract{
		EmployeeID:  "emp-1",
		WeeklyHours: decimal.NewFromInt(35),
		HourlyRate:  rate("10"),
	}
	var shifts []schedule.Shift
	for d := 10; d <= 15; d++ {
		shifts = append(shifts, shiftOn(date(2025, time.March, d), "09:00", "17:00", schedule.ShiftEffective))
	}

	paid, err := newCalculator().PayWeek(shifts, contract, false)
	require.NoError(t, err)
	require.Len(t, paid, 6)

	for i := 0; i < 4; i++ {
		assert.Equal(t, "0.00", paid[i].Pay.OvertimePremium.StringFixed(2), "shift %d inside the contract", i)
	}

	fifth := paid[4]
	assert.Equal(t, "5", fifth.Overtime.Tier1Hours.String())
	assert.Equal(t, "0", fifth.Overtime.Tier2Hours.String())
	assert.Equal(t, "12.50", fifth.Pay.OvertimePremium.StringFixed(2))

	sixth := paid[5]
	assert.Equal(t, "3", sixth.Overtime.Tier1Hours.String())
	assert.Equal(t, "5", sixth.Overtime.Tier2Hours.String())
	assert.Equal(t, "32.50", sixth.Pay.OvertimePremium.StringFixed(2))
}
