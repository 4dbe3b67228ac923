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

func attribute(t *testing.T, shifts []schedule.Shift, weeklyHours int) []payroll.Attribution {
	t.Helper()
	out, err := newCalculator().AttributeOvertime(shifts, decimal.NewFromInt(int64(weeklyHours)))
	require.NoError(t, err)
	return out
}

func TestAttributeOvertime_NoOvertimeUnderThreshold(t *testing.T) {
	shifts := []schedule.Shift{
		shiftOn(date(2025, time.March, 10), "09:00", "17:00", schedule.ShiftEffective),
		shiftOn(date(2025, time.March, 11), "09:00", "17:00", schedule.ShiftEffective),
	}
	for _, a := range attribute(t, shifts, 35) {
		assert.True(t, a.NewOvertimeHours.IsZero())
	}
}

func TestAttributeOvertime_ChargesTheShiftThatCrossed(t *testing.T) {
	// GIVEN: four 9h shifts against a 35h contract
	// THEN: only the fourth, which pushed the total to 36h, carries overtime

	var shifts []schedule.Shift
	for d := 10; d <= 13; d++ {
		shifts = append(shifts, shiftOn(date(2025, time.March, d), "09:00", "18:00", schedule.ShiftEffective))
	}
	attrs := attribute(t, shifts, 35)
	require.Len(t, attrs, 4)

	assert.True(t, attrs[2].NewOvertimeHours.IsZero())
	assert.Equal(t, "1", attrs[3].NewOvertimeHours.String())
	assert.Equal(t, "1", attrs[3].Tier1Hours.String())
	assert.Equal(t, "27", attrs[3].HoursBefore.String())
	assert.Equal(t, "36", attrs[3].HoursAfter.String())
}

func TestAttributeOvertime_TierBoundarySplitsMidShift(t *testing.T) {
	// GIVEN: 36h worked Monday-Thursday (1h already overtime), then 10h Friday
	// THEN: the Friday shift splits 7h at tier 1 and 3h at tier 2

	var shifts []schedule.Shift
	for d := 10; d <= 13; d++ {
		shifts = append(shifts, shiftOn(date(2025, time.March, d), "09:00", "18:00", schedule.ShiftEffective))
	}
	shifts = append(shifts, shiftOn(date(2025, time.March, 14), "08:00", "18:00", schedule.ShiftEffective))

	attrs := attribute(t, shifts, 35)
	friday := attrs[4]

	assert.Equal(t, "10", friday.NewOvertimeHours.String())
	assert.Equal(t, "7", friday.Tier1Hours.String())
	assert.Equal(t, "3", friday.Tier2Hours.String())
}

func TestAttributeOvertime_SortsChronologically(t *testing.T) {
	// Input order must not matter: the fold runs on the real timeline.
	monday := shiftOn(date(2025, time.March, 10), "09:00", "17:00", schedule.ShiftEffective)
	monday.ID = "mon"
	tuesday := shiftOn(date(2025, time.March, 11), "09:00", "17:00", schedule.ShiftEffective)
	tuesday.ID = "tue"

	attrs := attribute(t, []schedule.Shift{tuesday, monday}, 10)
	require.Len(t, attrs, 2)

	assert.Equal(t, "mon", attrs[0].ShiftID)
	assert.Equal(t, "tue", attrs[1].ShiftID)
	assert.True(t, attrs[0].HoursBefore.IsZero())
	assert.Equal(t, "8", attrs[1].HoursBefore.String())
}

func TestAttributeOvertime_PresenceWeightsFeedTheFold(t *testing.T) {
	// A presence_night block adds nothing to the weekly total.
	pn := shiftOn(date(2025, time.March, 10), "21:00", "07:00", schedule.ShiftPresenceNight)
	eff := shiftOn(date(2025, time.March, 11), "09:00", "17:00", schedule.ShiftEffective)

	attrs := attribute(t, []schedule.Shift{pn, eff}, 5)
	require.Len(t, attrs, 2)

	assert.True(t, attrs[0].NewOvertimeHours.IsZero(), "presence night weighs zero")
	assert.Equal(t, "3", attrs[1].NewOvertimeHours.String(), "8h effective against a 5h threshold")
}
