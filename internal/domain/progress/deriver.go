// Package progress derives display state from a day's schedule and the
// wall clock. Everything here is a pure function of its inputs; nothing
// is stored and nothing is mutated.
package progress

import (
	"sort"
	"time"

	"github.com/ganot/dayplan/internal/domain/schedule"
	"github.com/ganot/dayplan/internal/timeslot"
)

// DerivedStatus is what an item looks like right now, as opposed to the
// stored schedule.ItemStatus which only moves on explicit user action.
type DerivedStatus string

const (
	Upcoming  DerivedStatus = "upcoming"
	Current   DerivedStatus = "current"
	Completed DerivedStatus = "completed"
	Missed    DerivedStatus = "missed"
	Future    DerivedStatus = "future"
)

// Status classifies a single item against the clock. A stored completed
// status is terminal and wins over any time-based answer. When the day
// being viewed is after today, every item on it is Future. Otherwise the
// item is Current while now sits inside its half-open window, Missed once
// the window has passed, and Upcoming before it.
func Status(item schedule.Item, now time.Time, selectedDate string) DerivedStatus {
	if item.Status == schedule.StatusCompleted {
		return Completed
	}
	if selectedDate != "" && selectedDate > timeslot.DateKey(now) {
		return Future
	}
	start, err := timeslot.ToMinutes(item.StartTime)
	if err != nil {
		return Upcoming
	}
	end, err := timeslot.ToMinutesUnbounded(item.EndTime)
	if err != nil {
		return Upcoming
	}
	minute := timeslot.MinutesOfDay(now)
	switch {
	case minute >= start && minute < end:
		return Current
	case minute >= end:
		return Missed
	default:
		return Upcoming
	}
}

// CurrentItem returns the first item, in declared order, whose window contains
// now and which has not been completed.
func CurrentItem(items []schedule.Item, now time.Time) (schedule.Item, bool) {
	minute := timeslot.MinutesOfDay(now)
	for _, item := range items {
		if item.Status == schedule.StatusCompleted {
			continue
		}
		start, err := timeslot.ToMinutes(item.StartTime)
		if err != nil {
			continue
		}
		end, err := timeslot.ToMinutesUnbounded(item.EndTime)
		if err != nil {
			continue
		}
		if minute >= start && minute < end {
			return item, true
		}
	}
	return schedule.Item{}, false
}

// NextItem returns the earliest-starting item that begins strictly after
// now and has not been completed.
func NextItem(items []schedule.Item, now time.Time) (schedule.Item, bool) {
	minute := timeslot.MinutesOfDay(now)
	sorted := make([]schedule.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})
	for _, item := range sorted {
		if item.Status == schedule.StatusCompleted {
			continue
		}
		start, err := timeslot.ToMinutes(item.StartTime)
		if err != nil {
			continue
		}
		if start > minute {
			return item, true
		}
	}
	return schedule.Item{}, false
}

// MinutesUntil is the signed distance from now to a clock time on the
// same day. Negative when the time has already passed.
func MinutesUntil(targetTime string, now time.Time) (int, error) {
	target, err := timeslot.ToMinutesUnbounded(targetTime)
	if err != nil {
		return 0, err
	}
	return target - timeslot.MinutesOfDay(now), nil
}

// Stats summarizes one day. MissedItems counts items the user explicitly
// skipped, not items whose window passed without action. Minutes come
// from each item's activity snapshot, so later catalog edits do not
// rewrite history.
type Stats struct {
	TotalItems       int     `json:"totalItems"`
	CompletedItems   int     `json:"completedItems"`
	MissedItems      int     `json:"missedItems"`
	CompletionRate   float64 `json:"completionRate"`
	TotalMinutes     int     `json:"totalMinutes"`
	CompletedMinutes int     `json:"completedMinutes"`
}

// DayStats computes Stats for one schedule. A nil or empty day yields the
// zero Stats with a rate of 0.
func DayStats(day *schedule.Schedule) Stats {
	var stats Stats
	if day == nil {
		return stats
	}
	for _, item := range day.Items {
		stats.TotalItems++
		stats.TotalMinutes += item.Activity.DurationMinutes
		switch item.Status {
		case schedule.StatusCompleted:
			stats.CompletedItems++
			stats.CompletedMinutes += item.Activity.DurationMinutes
		case schedule.StatusSkipped:
			stats.MissedItems++
		}
	}
	if stats.TotalItems > 0 {
		stats.CompletionRate = float64(stats.CompletedItems) / float64(stats.TotalItems) * 100
	}
	return stats
}

// Averages rolls per-day completion up across a stretch of schedules.
type Averages struct {
	AvgCompletionRate float64 `json:"avgCompletionRate"`
	TotalDays         int     `json:"totalDays"`
	PerfectDays       int     `json:"perfectDays"`
}

// AverageStats aggregates over the days that actually had items planned.
// Empty days do not drag the average down.
func AverageStats(days []schedule.Schedule) Averages {
	var agg Averages
	var sum float64
	for i := range days {
		stats := DayStats(&days[i])
		if stats.TotalItems == 0 {
			continue
		}
		agg.TotalDays++
		sum += stats.CompletionRate
		if stats.CompletedItems == stats.TotalItems {
			agg.PerfectDays++
		}
	}
	if agg.TotalDays > 0 {
		agg.AvgCompletionRate = sum / float64(agg.TotalDays)
	}
	return agg
}

// IsToday reports whether date names the same calendar day as now.
func IsToday(date string, now time.Time) bool {
	return date == timeslot.DateKey(now)
}

// IsPast reports whether date is strictly before today.
func IsPast(date string, now time.Time) bool {
	return date < timeslot.DateKey(now)
}

// IsFuture reports whether date is strictly after today.
func IsFuture(date string, now time.Time) bool {
	return date > timeslot.DateKey(now)
}
