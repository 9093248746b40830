package schedule_test

import (
	"testing"
	"time"

	"shiftwise/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(schedule.DateLayout, s)
	require.NoError(t, err)
	return d
}

func TestISOWeekOfYearBoundaries(t *testing.T) {
	tests := map[string]struct {
		date     string
		wantYear int
		wantWeek int
	}{
		// 2024 starts on a Monday, so January 1st opens week 1.
		"MondayNewYear": {"2024-01-01", 2024, 1},
		// 2023-01-01 is a Sunday and still belongs to 2022's final week.
		"SundayNewYearBelongsToPriorYear": {"2023-01-01", 2022, 52},
		// 2020 is a 53-week ISO year; New Year's Day 2021 is inside it.
		"FridayNewYearInWeek53": {"2021-01-01", 2020, 53},
		// Late December can already sit in week 1 of the next ISO year.
		"DecemberMondayInNextYearsWeekOne": {"2024-12-30", 2025, 1},
		"MidYear": {"2024-07-10", 2024, 28},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			year, week, err := schedule.ISOWeekOf(tc.date)
			require.NoError(t, err)
			assert.Equal(t, tc.wantYear, year)
			assert.Equal(t, tc.wantWeek, week)
		})
	}
}

func TestISOWeekOfRejectsBadDate(t *testing.T) {
	_, _, err := schedule.ISOWeekOf("01-02-2024")
	assert.Error(t, err)
}

func TestMondayOf(t *testing.T) {
	tests := map[string]struct {
		anchor     string
		wantMonday string
	}{
		"MondayIsItself":     {"2024-07-08", "2024-07-08"},
		"WednesdayStepsBack": {"2024-07-10", "2024-07-08"},
		"SundayStepsBackSix": {"2024-07-14", "2024-07-08"},
		"AcrossYearBoundary": {"2023-01-01", "2022-12-26"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := schedule.MondayOf(date(t, tc.anchor))
			assert.Equal(t, tc.wantMonday, got.Format(schedule.DateLayout))
		})
	}
}

func TestBuildWeekFillsSparseRecords(t *testing.T) {
	records := map[string]schedule.DayRecord{
		"2024-07-09": {Status: schedule.StatusAvailable, Note: "after 17:00 only"},
		"2024-07-13": {Status: schedule.StatusUnavailable},
	}

	wk := schedule.BuildWeek(date(t, "2024-07-10"), records)

	assert.Equal(t, "2024-07-08", wk.Monday)
	assert.Equal(t, 2024, wk.ISOYear)
	assert.Equal(t, 28, wk.ISOWeek)

	assert.Equal(t, "Monday", wk.Days[0].Weekday)
	assert.Equal(t, "Sunday", wk.Days[6].Weekday)

	assert.Equal(t, schedule.StatusUnset, wk.Days[0].Status)
	assert.Equal(t, schedule.StatusAvailable, wk.Days[1].Status)
	assert.Equal(t, "after 17:00 only", wk.Days[1].Note)
	assert.Equal(t, schedule.StatusUnavailable, wk.Days[5].Status)
	assert.Equal(t, schedule.StatusUnset, wk.Days[6].Status)

	for i, day := range wk.Days {
		assert.Equal(t, wk.Days[0].Date, schedule.MondayOf(date(t, day.Date)).Format(schedule.DateLayout),
			"day %d must fall in the Monday-start week", i)
	}
}

func TestBuildWeekAcrossYearBoundary(t *testing.T) {
	wk := schedule.BuildWeek(date(t, "2023-01-01"), nil)

	assert.Equal(t, "2022-12-26", wk.Monday)
	assert.Equal(t, 2022, wk.ISOYear)
	assert.Equal(t, 52, wk.ISOWeek)
	assert.Equal(t, "2023-01-01", wk.Days[6].Date)
	for _, day := range wk.Days {
		assert.Equal(t, schedule.StatusUnset, day.Status)
	}
}
