package compliance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidalis/care-engine/compliance"
	"github.com/aidalis/care-engine/schedule"
)

// =============================================================================
// QUICK VALIDATION
// =============================================================================

func TestQuickValidate_ReturnsMessagesForFastRules(t *testing.T) {
	existing := []schedule.Shift{effective("s-1", march(10), "15:00", "20:00", 0)}

	messages, err := newValidator().QuickValidate(
		effective("", march(10), "09:00", "16:00", 30), existing)
	require.NoError(t, err)
	assert.NotEmpty(t, messages)
}

func TestQuickValidate_CleanShiftHasNoMessages(t *testing.T) {
	messages, err := newValidator().QuickValidate(
		effective("", march(10), "09:00", "15:00", 0), nil)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestQuickValidate_WeeklyWarningCorridorStaysQuiet(t *testing.T) {
	// GIVEN: 40h worked Monday-Friday and a 5h Saturday candidate (45h,
	//        inside the 44-48h warning corridor)
	// THEN: the full report warns, but the quick path reports no blockers

	var existing []schedule.Shift
	for d := 10; d <= 14; d++ {
		existing = append(existing, effective("", march(d), "09:00", "17:00", 0))
	}
	candidate := effective("", march(15), "09:00", "14:00", 0)

	messages, err := newValidator().QuickValidate(candidate, existing)
	require.NoError(t, err)
	assert.Empty(t, messages)

	report, err := newValidator().Validate(candidate, existing, nil)
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.NotNil(t, findOutcome(report.Warnings, compliance.CodeWeeklyMaxHours))
}

// =============================================================================
// SUGGESTIONS
// =============================================================================

func TestSuggest_DailyRestFailureKeepsDuration(t *testing.T) {
	// GIVEN: the prior shift ended 22:00; the 6h candidate starts 05:00
	// WHEN: suggestions are derived
	// THEN: the slot starts 11h after the prior end, same 6h duration

	existing := []schedule.Shift{effective("s-1", march(9), "13:00", "22:00", 60)}
	candidate := effective("", march(10), "05:00", "11:00", 0)

	suggestions, err := newValidator().SuggestAlternatives(candidate, existing, nil)
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)

	s := suggestions[0]
	assert.Equal(t, march(10), s.Date)
	assert.Equal(t, "09:00", s.StartTime)
	assert.Equal(t, "15:00", s.EndTime)
}

func TestSuggest_OverlapFailureStartsAfterConflict(t *testing.T) {
	existing := []schedule.Shift{effective("s-1", march(10), "08:00", "12:00", 0)}
	candidate := effective("", march(10), "10:00", "14:00", 0)

	suggestions, err := newValidator().SuggestAlternatives(candidate, existing, nil)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)

	s := suggestions[0]
	assert.Equal(t, "12:00", s.StartTime)
	assert.Equal(t, "16:00", s.EndTime)
}

func TestSuggest_ValidCandidateYieldsNothing(t *testing.T) {
	suggestions, err := newValidator().SuggestAlternatives(
		effective("", march(10), "09:00", "15:00", 0), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestSuggest_RollsPastMidnight(t *testing.T) {
	// Prior shift ends 23:00: the earliest legal start is 10:00 the next day.
	existing := []schedule.Shift{effective("s-1", march(10), "14:00", "23:00", 60)}
	candidate := effective("", march(11), "06:00", "10:00", 0)

	suggestions, err := newValidator().SuggestAlternatives(candidate, existing, nil)
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)

	s := suggestions[0]
	assert.Equal(t, march(11), s.Date)
	assert.Equal(t, "10:00", s.StartTime)
	assert.Equal(t, "14:00", s.EndTime)
}

// =============================================================================
// COMPLIANCE SUMMARY
// =============================================================================

func TestSummarize_RemainingBudgets(t *testing.T) {
	shifts := []schedule.Shift{
		effective("s-1", march(10), "09:00", "17:00", 0), // 8h Monday
		effective("s-2", march(11), "09:00", "14:00", 0), // 5h Tuesday
	}

	summary, err := newValidator().Summarize(shifts, march(10))
	require.NoError(t, err)

	assert.Equal(t, "8", summary.DailyHoursUsed.String())
	assert.Equal(t, "2", summary.DailyHoursRemaining.String())
	assert.Equal(t, "13", summary.WeeklyHoursUsed.String())
	assert.Equal(t, "35", summary.WeeklyHoursRemaining.String())
	assert.True(t, summary.WeeklyRestSatisfied)
	assert.NotEmpty(t, summary.Recommendations, "2h of daily budget left is low")
}

func TestSummarize_FlagsCompromisedWeeklyRest(t *testing.T) {
	var shifts []schedule.Shift
	for d := 10; d <= 16; d++ {
		shifts = append(shifts, effective("", march(d), "09:00", "15:00", 0))
	}

	summary, err := newValidator().Summarize(shifts, march(12))
	require.NoError(t, err)

	assert.False(t, summary.WeeklyRestSatisfied)
	assert.Equal(t, "33", summary.LongestRestHours.String())
}

func TestSummarize_EmptyScheduleHasFullBudgets(t *testing.T) {
	summary, err := newValidator().Summarize(nil, march(10))
	require.NoError(t, err)

	assert.Equal(t, "10", summary.DailyHoursRemaining.String())
	assert.Equal(t, "48", summary.WeeklyHoursRemaining.String())
	assert.True(t, summary.WeeklyRestSatisfied)
	assert.Empty(t, summary.Recommendations)
}

// =============================================================================
// REPORT PARTITIONING
// =============================================================================

func TestValidate_PartitionsErrorsAndWarnings(t *testing.T) {
	// An overlapping 7h shift without a break: the overlap blocks, the
	// missing break only warns.
	existing := []schedule.Shift{effective("s-1", march(10), "15:00", "19:00", 0)}
	report, err := newValidator().Validate(
		effective("", march(10), "09:00", "16:00", 0), existing, nil)
	require.NoError(t, err)

	assert.False(t, report.Valid)
	assert.NotNil(t, findOutcome(report.Errors, compliance.CodeShiftOverlap))
	assert.NotNil(t, findOutcome(report.Warnings, compliance.CodeMandatoryBreak))
	for _, e := range report.Errors {
		assert.Equal(t, compliance.SeverityBlocking, e.Severity)
	}
	for _, w := range report.Warnings {
		assert.Equal(t, compliance.SeverityWarning, w.Severity)
	}
}
