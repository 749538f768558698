package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ganot/dayplan/internal/domain/catalog"
	"github.com/ganot/dayplan/internal/store"
	"github.com/ganot/dayplan/internal/timeslot"
)

const defaultProfileID = "default"

// Service owns all day schedules, keyed by "YYYY-MM-DD" date. In-memory
// state is the source of truth; every mutation is mirrored to the store
// as a write-behind.
type Service struct {
	mu              sync.Mutex
	days            map[string]*Schedule
	selectedDate    string
	selectedProfile string
	mirror          *store.Mirror
	logger          *slog.Logger
}

// NewService creates an empty schedule store selected on today.
func NewService(mirror *store.Mirror, logger *slog.Logger) *Service {
	return &Service{
		days:         make(map[string]*Schedule),
		selectedDate: timeslot.DateKey(time.Now()),
		mirror:       mirror,
		logger:       logger,
	}
}

// ItemPatch defines the fields an item update may change. Nil fields are
// left as they are. Patches that move startTime/endTime are NOT conflict
// checked; callers that care run CheckConflict first.
type ItemPatch struct {
	StartTime  *string
	EndTime    *string
	Status     *ItemStatus
	OrderIndex *int
}

// Load restores all schedules from the store.
func (s *Service) Load(ctx context.Context) error {
	var days []Schedule
	if _, err := s.mirror.Load(ctx, store.KeySchedules, &days); err != nil {
		return fmt.Errorf("loading schedules: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.days = make(map[string]*Schedule, len(days))
	for i := range days {
		day := days[i]
		s.days[day.Date] = &day
	}
	return nil
}

// SetSelectedDate records the date the UI is looking at.
func (s *Service) SetSelectedDate(date string) error {
	if _, err := timeslot.ParseDate(date); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedDate = date
	return nil
}

// SelectedDate returns the date the UI is looking at.
func (s *Service) SelectedDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedDate
}

// SetSelectedProfile records the active child profile id.
func (s *Service) SetSelectedProfile(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedProfile = id
}

// SelectedProfile returns the active child profile id.
func (s *Service) SelectedProfile() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedProfile
}

// ForDate returns a copy of the date's schedule, or nil if the day has
// never had an item.
func (s *Service) ForDate(date string) *Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	day, ok := s.days[date]
	if !ok {
		return nil
	}
	out := *day
	out.Items = make([]Item, len(day.Items))
	copy(out.Items, day.Items)
	return &out
}

// CheckConflict reports whether [startTime, endTime) overlaps any item on
// the date, skipping excludeItemID when non-empty. A day with no schedule
// never conflicts.
func (s *Service) CheckConflict(date, startTime, endTime, excludeItemID string) (bool, error) {
	start, err := timeslot.ToMinutes(startTime)
	if err != nil {
		return false, err
	}
	end, err := timeslot.ToMinutesUnbounded(endTime)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conflictLocked(date, start, end, excludeItemID), nil
}

// AddItem places an activity on the date at startTime. The end time is
// fixed at placement from the activity's duration; editing the catalog
// later never moves it. Rejected with ErrTimeConflict when the slot
// overlaps an existing item, leaving the day untouched.
func (s *Service) AddItem(date string, activity catalog.Activity, startTime string) (*Item, error) {
	if _, err := timeslot.ParseDate(date); err != nil {
		return nil, err
	}
	start, err := timeslot.ToMinutes(startTime)
	if err != nil {
		return nil, err
	}
	end := start + activity.DurationMinutes

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conflictLocked(date, start, end, "") {
		return nil, ErrTimeConflict
	}

	now := time.Now()
	item := Item{
		ID:         uuid.NewString(),
		ScheduleID: ScheduleID(date),
		ActivityID: activity.ID,
		Activity:   activity,
		StartTime:  timeslot.FromMinutes(start),
		EndTime:    timeslot.FromMinutes(end),
		Status:     StatusPlanned,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	day, ok := s.days[date]
	if !ok {
		profile := s.selectedProfile
		if profile == "" {
			profile = defaultProfileID
		}
		day = &Schedule{
			ID:             ScheduleID(date),
			UserID:         "local",
			ChildProfileID: profile,
			Date:           date,
			CreatedAt:      now,
		}
		s.days[date] = day
	}
	day.Items = append(day.Items, item)
	day.UpdatedAt = now
	s.persistLocked()
	return &item, nil
}

// UpdateItem patches an item wherever it lives. Time moves are taken as
// given without re-running the conflict check.
func (s *Service) UpdateItem(itemID string, patch ItemPatch) (*Item, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, day := range s.days {
		for i := range day.Items {
			if day.Items[i].ID != itemID {
				continue
			}
			applyItemPatch(&day.Items[i], patch)
			day.UpdatedAt = day.Items[i].UpdatedAt
			s.persistLocked()
			updated := day.Items[i]
			return &updated, nil
		}
	}
	return nil, ErrItemNotFound
}

// RemoveItem deletes an item from whichever day contains it.
func (s *Service) RemoveItem(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, day := range s.days {
		for i := range day.Items {
			if day.Items[i].ID != itemID {
				continue
			}
			day.Items = append(day.Items[:i], day.Items[i+1:]...)
			day.UpdatedAt = time.Now()
			s.persistLocked()
			return nil
		}
	}
	return ErrItemNotFound
}

// RemoveAllItems clears the date's items. The schedule object itself
// survives, empty. A date with no schedule is a no-op.
func (s *Service) RemoveAllItems(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day, ok := s.days[date]
	if !ok {
		return
	}
	day.Items = nil
	day.UpdatedAt = time.Now()
	s.persistLocked()
}

// CopyToDate clones every item of sourceDate onto targetDate. Clones get
// fresh ids and timestamps, the target's schedule id, and status reset to
// planned. The copy never overwrites: a target with any items is
// rejected and the caller must clear it through a separate, confirmed
// step first.
func (s *Service) CopyToDate(sourceDate, targetDate string) error {
	if _, err := timeslot.ParseDate(targetDate); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	source, ok := s.days[sourceDate]
	if !ok || len(source.Items) == 0 {
		return ErrNothingToCopy
	}
	if target, ok := s.days[targetDate]; ok && len(target.Items) > 0 {
		return ErrTargetNotEmpty
	}

	now := time.Now()
	items := make([]Item, len(source.Items))
	for i, item := range source.Items {
		clone := item
		clone.ID = uuid.NewString()
		clone.ScheduleID = ScheduleID(targetDate)
		clone.Status = StatusPlanned
		clone.CreatedAt = now
		clone.UpdatedAt = now
		items[i] = clone
	}

	s.days[targetDate] = &Schedule{
		ID:             ScheduleID(targetDate),
		UserID:         source.UserID,
		ChildProfileID: source.ChildProfileID,
		Date:           targetDate,
		Items:          items,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.persistLocked()
	return nil
}

// Reset drops every schedule.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days = make(map[string]*Schedule)
	s.persistLocked()
}

// Snapshot returns every schedule, ordered by date.
func (s *Service) Snapshot() []Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// ReplaceAll swaps in a full schedule set. Used by backup restore.
func (s *Service) ReplaceAll(days []Schedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days = make(map[string]*Schedule, len(days))
	for i := range days {
		day := days[i]
		s.days[day.Date] = &day
	}
	s.persistLocked()
}

func (s *Service) conflictLocked(date string, start, end int, excludeItemID string) bool {
	day, ok := s.days[date]
	if !ok {
		return false
	}
	for _, item := range day.Items {
		if excludeItemID != "" && item.ID == excludeItemID {
			continue
		}
		itemStart, err := timeslot.ToMinutes(item.StartTime)
		if err != nil {
			continue
		}
		itemEnd, err := timeslot.ToMinutesUnbounded(item.EndTime)
		if err != nil {
			continue
		}
		if timeslot.Overlaps(start, end, itemStart, itemEnd) {
			return true
		}
	}
	return false
}

func (s *Service) snapshotLocked() []Schedule {
	out := make([]Schedule, 0, len(s.days))
	for _, day := range s.days {
		copied := *day
		copied.Items = make([]Item, len(day.Items))
		copy(copied.Items, day.Items)
		out = append(out, copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func (s *Service) persistLocked() {
	s.mirror.Write(store.KeySchedules, s.snapshotLocked())
}

func validatePatch(patch ItemPatch) error {
	if patch.StartTime != nil {
		if _, err := timeslot.ToMinutes(*patch.StartTime); err != nil {
			return err
		}
	}
	if patch.EndTime != nil {
		if _, err := timeslot.ToMinutesUnbounded(*patch.EndTime); err != nil {
			return err
		}
	}
	if patch.Status != nil && !ValidStatus(*patch.Status) {
		return fmt.Errorf("%w: status %q", ErrInvalidInput, *patch.Status)
	}
	return nil
}

func applyItemPatch(item *Item, patch ItemPatch) {
	if patch.StartTime != nil {
		item.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		item.EndTime = *patch.EndTime
	}
	if patch.Status != nil {
		item.Status = *patch.Status
	}
	if patch.OrderIndex != nil {
		item.OrderIndex = *patch.OrderIndex
	}
	item.UpdatedAt = time.Now()
}
