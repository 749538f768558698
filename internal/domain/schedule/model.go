// Package schedule maintains per-date day timelines of placed
// activities and enforces the no-overlap invariant on placement.
package schedule

import (
	"sort"
	"time"

	"github.com/ganot/dayplan/internal/domain/catalog"
)

// ItemStatus is the stored completion state of a placed item.
type ItemStatus string

const (
	StatusPlanned    ItemStatus = "planned"
	StatusInProgress ItemStatus = "in_progress"
	StatusCompleted  ItemStatus = "completed"
	StatusSkipped    ItemStatus = "skipped"
)

// ValidStatus reports whether s is one of the four stored statuses.
func ValidStatus(s ItemStatus) bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusSkipped:
		return true
	}
	return false
}

// Item is one placed occurrence of an activity on a specific day. It
// carries a snapshot of the activity taken at placement time, so later
// catalog edits never reshape an already-placed day.
type Item struct {
	ID         string           `json:"id"`
	ScheduleID string           `json:"scheduleId"`
	ActivityID string           `json:"activityId"`
	Activity   catalog.Activity `json:"activity"`
	StartTime  string           `json:"startTime"`
	EndTime    string           `json:"endTime"`
	Status     ItemStatus       `json:"status"`
	OrderIndex int              `json:"orderIndex"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// Schedule is the collection of items for one calendar day. Items are an
// unordered bag; display order is derived by sorting on start time.
type Schedule struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	ChildProfileID string    `json:"childProfileId"`
	Date           string    `json:"date"`
	Items          []Item    `json:"items"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ScheduleID derives the one-per-date schedule identity.
func ScheduleID(date string) string {
	return "schedule-" + date
}

// SortedItems returns the items ordered by start time.
func (s *Schedule) SortedItems() []Item {
	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StartTime < items[j].StartTime
	})
	return items
}
