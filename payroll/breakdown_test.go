package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidalis/care-engine/payroll"
	"github.com/aidalis/care-engine/schedule"
)

func TestBreakdownShift_CategoriesOverlap(t *testing.T) {
	// A Sunday night shift counts its hours in Normal, Sunday and Night.
	s := shiftOn(date(2025, time.June, 1), "22:00", "06:00", schedule.ShiftEffective)

	b, err := newCalculator().BreakdownShift(s, payroll.OvertimeShare{})
	require.NoError(t, err)

	assert.Equal(t, "8.00", b.Normal.StringFixed(2))
	assert.Equal(t, "8.00", b.Sunday.StringFixed(2))
	assert.Equal(t, "8.00", b.Night.StringFixed(2))
	assert.Equal(t, "0.00", b.Holiday.StringFixed(2))
	assert.Equal(t, "0.00", b.Overtime.StringFixed(2))
}

func TestBreakdownShift_HolidayHours(t *testing.T) {
	s := shiftOn(date(2025, time.May, 1), "09:00", "17:00", schedule.ShiftEffective)

	b, err := newCalculator().BreakdownShift(s, payroll.OvertimeShare{
		Tier1Hours: decimal.NewFromInt(2),
	})
	require.NoError(t, err)

	assert.Equal(t, "8.00", b.Holiday.StringFixed(2))
	assert.Equal(t, "2.00", b.Overtime.StringFixed(2))
}

func TestBreakdownPeriod_GroupsByWeekForOvertime(t *testing.T) {
	// GIVEN: six 8h shifts in one week against a 35h contract
	// THEN: 48h normal, 13h of them overtime

	contract := schedule.Contract{
		EmployeeID:  "emp-1",
		WeeklyHours: decimal.NewFromInt(35),
		HourlyRate:  decimal.NewFromInt(10),
	}
	var shifts []schedule.Shift
	for d := 10; d <= 15; d++ {
		shifts = append(shifts, shiftOn(date(2025, time.March, d), "09:00", "17:00", schedule.ShiftEffective))
	}

	b, err := newCalculator().BreakdownPeriod(shifts, contract)
	require.NoError(t, err)

	assert.Equal(t, "48.00", b.Normal.StringFixed(2))
	assert.Equal(t, "13.00", b.Overtime.StringFixed(2))
	assert.Equal(t, "0.00", b.Sunday.StringFixed(2))
}

func TestBreakdownPeriod_OvertimeResetsAcrossWeeks(t *testing.T) {
	// 40h in each of two weeks: 5h overtime per week, never 10h in one.
	contract := schedule.Contract{
		EmployeeID:  "emp-1",
		WeeklyHours: decimal.NewFromInt(35),
		HourlyRate:  decimal.NewFromInt(10),
	}
	var shifts []schedule.Shift
	for d := 10; d <= 14; d++ { // week one, Monday-Friday
		shifts = append(shifts, shiftOn(date(2025, time.March, d), "09:00", "17:00", schedule.ShiftEffective))
	}
	for d := 17; d <= 21; d++ { // week two
		shifts = append(shifts, shiftOn(date(2025, time.March, d), "09:00", "17:00", schedule.ShiftEffective))
	}

	b, err := newCalculator().BreakdownPeriod(shifts, contract)
	require.NoError(t, err)

	assert.Equal(t, "80.00", b.Normal.StringFixed(2))
	assert.Equal(t, "10.00", b.Overtime.StringFixed(2), "5h per week, attributed per week")
}
