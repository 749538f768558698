package progress_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ganot/dayplan/internal/domain/catalog"
	"github.com/ganot/dayplan/internal/domain/progress"
	"github.com/ganot/dayplan/internal/domain/schedule"
)

func at(t *testing.T, clock string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04", "2025-03-10 "+clock, time.Local)
	require.NoError(t, err)
	return parsed
}

func item(start, end string, status schedule.ItemStatus, minutes int) schedule.Item {
	return schedule.Item{
		ID:        start + "-" + end,
		StartTime: start,
		EndTime:   end,
		Status:    status,
		Activity:  catalog.Activity{DurationMinutes: minutes},
	}
}

func TestStatus(t *testing.T) {
	planned := item("09:00", "09:30", schedule.StatusPlanned, 30)

	require.Equal(t, progress.Upcoming, progress.Status(planned, at(t, "08:50"), ""))
	require.Equal(t, progress.Current, progress.Status(planned, at(t, "09:10"), ""))
	require.Equal(t, progress.Current, progress.Status(planned, at(t, "09:00"), ""), "window is closed at the start")
	require.Equal(t, progress.Missed, progress.Status(planned, at(t, "09:30"), ""), "and open at the end")
	require.Equal(t, progress.Missed, progress.Status(planned, at(t, "09:35"), ""))

	done := item("09:00", "09:30", schedule.StatusCompleted, 30)
	require.Equal(t, progress.Completed, progress.Status(done, at(t, "09:10"), ""))
	require.Equal(t, progress.Completed, progress.Status(done, at(t, "23:59"), ""), "completed beats the clock")
}

func TestStatus_FutureDate(t *testing.T) {
	planned := item("09:00", "09:30", schedule.StatusPlanned, 30)
	now := at(t, "12:00")

	require.Equal(t, progress.Future, progress.Status(planned, now, "2025-03-11"))
	require.Equal(t, progress.Missed, progress.Status(planned, now, "2025-03-10"), "today is judged by the clock")
	require.Equal(t, progress.Missed, progress.Status(planned, now, "2025-03-09"), "past days too")

	done := item("09:00", "09:30", schedule.StatusCompleted, 30)
	require.Equal(t, progress.Completed, progress.Status(done, now, "2025-03-11"))
}

func TestCurrentItem(t *testing.T) {
	items := []schedule.Item{
		item("14:00", "15:00", schedule.StatusPlanned, 60),
		item("09:00", "10:00", schedule.StatusPlanned, 60),
	}

	got, ok := progress.CurrentItem(items, at(t, "09:30"))
	require.True(t, ok)
	require.Equal(t, "09:00", got.StartTime)

	_, ok = progress.CurrentItem(items, at(t, "12:00"))
	require.False(t, ok)

	// A completed item is never current, even inside its window.
	items[1].Status = schedule.StatusCompleted
	_, ok = progress.CurrentItem(items, at(t, "09:30"))
	require.False(t, ok)
}

func TestNextItem(t *testing.T) {
	items := []schedule.Item{
		item("14:00", "15:00", schedule.StatusPlanned, 60),
		item("09:00", "10:00", schedule.StatusPlanned, 60),
		item("11:00", "11:30", schedule.StatusCompleted, 30),
	}

	got, ok := progress.NextItem(items, at(t, "08:00"))
	require.True(t, ok)
	require.Equal(t, "09:00", got.StartTime, "ordering is by start time, not declared order")

	got, ok = progress.NextItem(items, at(t, "09:00"))
	require.True(t, ok)
	require.Equal(t, "14:00", got.StartTime, "strictly after now, and completed items are skipped")

	_, ok = progress.NextItem(items, at(t, "14:00"))
	require.False(t, ok)
}

func TestMinutesUntil(t *testing.T) {
	got, err := progress.MinutesUntil("14:30", at(t, "14:00"))
	require.NoError(t, err)
	require.Equal(t, 30, got)

	got, err = progress.MinutesUntil("13:00", at(t, "14:00"))
	require.NoError(t, err)
	require.Equal(t, -60, got)

	_, err = progress.MinutesUntil("soon", at(t, "14:00"))
	require.Error(t, err)
}

func TestDayStats(t *testing.T) {
	day := &schedule.Schedule{
		Date: "2025-03-10",
		Items: []schedule.Item{
			item("09:00", "09:30", schedule.StatusCompleted, 30),
			item("10:00", "10:30", schedule.StatusCompleted, 30),
			item("11:00", "11:30", schedule.StatusCompleted, 30),
			item("12:00", "12:30", schedule.StatusPlanned, 30),
		},
	}

	stats := progress.DayStats(day)
	require.Equal(t, 4, stats.TotalItems)
	require.Equal(t, 3, stats.CompletedItems)
	require.Equal(t, 0, stats.MissedItems)
	require.InDelta(t, 75.0, stats.CompletionRate, 0.001)
	require.Equal(t, 120, stats.TotalMinutes)
	require.Equal(t, 90, stats.CompletedMinutes)
}

func TestDayStats_SkippedCountsAsMissed(t *testing.T) {
	day := &schedule.Schedule{
		Items: []schedule.Item{
			item("09:00", "09:30", schedule.StatusSkipped, 30),
			item("10:00", "10:30", schedule.StatusPlanned, 30),
		},
	}
	stats := progress.DayStats(day)
	require.Equal(t, 1, stats.MissedItems)
	require.Equal(t, 0, stats.CompletedItems)
}

func TestDayStats_Empty(t *testing.T) {
	require.Zero(t, progress.DayStats(nil))
	require.Zero(t, progress.DayStats(&schedule.Schedule{}))
}

func TestAverageStats(t *testing.T) {
	days := []schedule.Schedule{
		{Items: []schedule.Item{
			item("09:00", "09:30", schedule.StatusCompleted, 30),
			item("10:00", "10:30", schedule.StatusCompleted, 30),
		}},
		{Items: []schedule.Item{
			item("09:00", "09:30", schedule.StatusCompleted, 30),
			item("10:00", "10:30", schedule.StatusPlanned, 30),
		}},
		{}, // never planned, ignored
	}

	agg := progress.AverageStats(days)
	require.Equal(t, 2, agg.TotalDays)
	require.Equal(t, 1, agg.PerfectDays)
	require.InDelta(t, 75.0, agg.AvgCompletionRate, 0.001)

	require.Zero(t, progress.AverageStats(nil))
}

func TestDateClassifiers(t *testing.T) {
	now := at(t, "12:00")

	require.True(t, progress.IsToday("2025-03-10", now))
	require.False(t, progress.IsToday("2025-03-11", now))

	require.True(t, progress.IsPast("2025-03-09", now))
	require.False(t, progress.IsPast("2025-03-10", now))

	require.True(t, progress.IsFuture("2025-03-11", now))
	require.False(t, progress.IsFuture("2025-03-10", now))
}
