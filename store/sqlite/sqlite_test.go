package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidalis/care-engine/schedule"
	"github.com/aidalis/care-engine/store/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedEmployee(t *testing.T, s *sqlite.Store, id string) {
	t.Helper()
	require.NoError(t, s.SaveEmployee(context.Background(), schedule.Employee{ID: id, Name: "Marie"}))
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func TestEmployees_SaveAndGet(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveEmployee(ctx, schedule.Employee{ID: "emp-1", Name: "Marie"}))

	got, err := store.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "Marie", got.Name)

	// Upsert replaces the name.
	require.NoError(t, store.SaveEmployee(ctx, schedule.Employee{ID: "emp-1", Name: "Marie D."}))
	got, err = store.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "Marie D.", got.Name)

	list, err := store.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestEmployees_GetMissing(t *testing.T) {
	_, err := newStore(t).GetEmployee(context.Background(), "nobody")
	assert.ErrorIs(t, err, schedule.ErrEmployeeNotFound)
}

// =============================================================================
// CONTRACTS
// =============================================================================

func TestContracts_DecimalRoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	seedEmployee(t, store, "emp-1")

	require.NoError(t, store.SaveContract(ctx, schedule.Contract{
		EmployeeID:  "emp-1",
		WeeklyHours: decimal.RequireFromString("37.5"),
		HourlyRate:  decimal.RequireFromString("15.20"),
	}))

	c, err := store.ActiveContract(ctx, "emp-1")
	require.NoError(t, err)
	assert.True(t, c.WeeklyHours.Equal(decimal.RequireFromString("37.5")))
	assert.True(t, c.HourlyRate.Equal(decimal.RequireFromString("15.20")))
	assert.NotEmpty(t, c.ID, "store mints an id when absent")
}

func TestContracts_OneActivePerEmployee(t *testing.T) {
	// Saving a second contract replaces the first, not stacks.
	store := newStore(t)
	ctx := context.Background()
	seedEmployee(t, store, "emp-1")

	require.NoError(t, store.SaveContract(ctx, schedule.Contract{
		EmployeeID: "emp-1", WeeklyHours: decimal.NewFromInt(35), HourlyRate: decimal.NewFromInt(14),
	}))
	require.NoError(t, store.SaveContract(ctx, schedule.Contract{
		EmployeeID: "emp-1", WeeklyHours: decimal.NewFromInt(40), HourlyRate: decimal.NewFromInt(16),
	}))

	c, err := store.ActiveContract(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "40", c.WeeklyHours.String())
}

func TestContracts_MissingContract(t *testing.T) {
	store := newStore(t)
	seedEmployee(t, store, "emp-1")
	_, err := store.ActiveContract(context.Background(), "emp-1")
	assert.ErrorIs(t, err, schedule.ErrContractNotFound)
}

// =============================================================================
// SHIFTS
// =============================================================================

func TestShifts_RoundTripWithSegments(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	seedEmployee(t, store, "emp-1")

	saved, err := store.SaveShift(ctx, schedule.Shift{
		EmployeeID: "emp-1",
		Date:       day(2025, time.March, 10),
		StartTime:  "08:00",
		EndTime:    "08:00",
		Type:       schedule.ShiftGuard24h,
		Segments: []schedule.Segment{
			{StartTime: "08:00", Type: schedule.ShiftEffective, BreakMinutes: 30},
			{StartTime: "20:00", Type: schedule.ShiftPresenceNight},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	shifts, err := store.ShiftsForEmployee(ctx, "emp-1",
		day(2025, time.March, 10), day(2025, time.March, 10))
	require.NoError(t, err)
	require.Len(t, shifts, 1)

	got := shifts[0]
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, day(2025, time.March, 10), got.Date)
	assert.Equal(t, schedule.ShiftGuard24h, got.Type)
	require.Len(t, got.Segments, 2)
	assert.Equal(t, "20:00", got.Segments[1].StartTime)
	assert.Equal(t, schedule.ShiftPresenceNight, got.Segments[1].Type)
	assert.Equal(t, 30, got.Segments[0].BreakMinutes)
}

func TestShifts_UpsertKeepsID(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	seedEmployee(t, store, "emp-1")

	saved, err := store.SaveShift(ctx, schedule.Shift{
		EmployeeID: "emp-1", Date: day(2025, time.March, 10),
		StartTime: "09:00", EndTime: "17:00", Type: schedule.ShiftEffective,
	})
	require.NoError(t, err)

	saved.EndTime = "18:00"
	saved.HasNightAction = true
	_, err = store.SaveShift(ctx, saved)
	require.NoError(t, err)

	shifts, err := store.ShiftsForEmployee(ctx, "emp-1",
		day(2025, time.March, 10), day(2025, time.March, 10))
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, "18:00", shifts[0].EndTime)
	assert.True(t, shifts[0].HasNightAction)
}

func TestShifts_RangeFilterAndOrder(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	seedEmployee(t, store, "emp-1")

	for _, d := range []int{12, 10, 14} {
		_, err := store.SaveShift(ctx, schedule.Shift{
			EmployeeID: "emp-1", Date: day(2025, time.March, d),
			StartTime: "09:00", EndTime: "17:00", Type: schedule.ShiftEffective,
		})
		require.NoError(t, err)
	}

	shifts, err := store.ShiftsForEmployee(ctx, "emp-1",
		day(2025, time.March, 10), day(2025, time.March, 12))
	require.NoError(t, err)
	require.Len(t, shifts, 2)
	assert.Equal(t, day(2025, time.March, 10), shifts[0].Date)
	assert.Equal(t, day(2025, time.March, 12), shifts[1].Date)
}

func TestShifts_DeleteMissing(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	seedEmployee(t, store, "emp-1")

	saved, err := store.SaveShift(ctx, schedule.Shift{
		EmployeeID: "emp-1", Date: day(2025, time.March, 10),
		StartTime: "09:00", EndTime: "17:00", Type: schedule.ShiftEffective,
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteShift(ctx, saved.ID))
	assert.ErrorIs(t, store.DeleteShift(ctx, saved.ID), schedule.ErrShiftNotFound)
}

// =============================================================================
// ABSENCES
// =============================================================================

func TestAbsences_OnlyApprovedInRange(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	seedEmployee(t, store, "emp-1")

	save := func(id string, from, to time.Time, status schedule.AbsenceStatus) {
		require.NoError(t, store.SaveAbsence(ctx, schedule.Absence{
			ID: id, EmployeeID: "emp-1", Type: "vacation",
			StartDate: from, EndDate: to, Status: status,
		}))
	}
	save("a-1", day(2025, time.March, 10), day(2025, time.March, 12), schedule.AbsenceApproved)
	save("a-2", day(2025, time.March, 11), day(2025, time.March, 13), schedule.AbsencePending)
	save("a-3", day(2025, time.April, 1), day(2025, time.April, 2), schedule.AbsenceApproved)

	// The query range overlaps a-1 partially and misses a-3 entirely.
	absences, err := store.ApprovedAbsences(ctx, "emp-1",
		day(2025, time.March, 12), day(2025, time.March, 20))
	require.NoError(t, err)
	require.Len(t, absences, 1)
	assert.Equal(t, "a-1", absences[0].ID)
	assert.Equal(t, schedule.AbsenceApproved, absences[0].Status)
	assert.True(t, absences[0].Covers(day(2025, time.March, 12)))
}
