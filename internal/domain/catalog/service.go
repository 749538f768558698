package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ganot/dayplan/internal/store"
)

// Service owns the activity catalog. The in-memory state is the source
// of truth; every mutation is mirrored to the store as a write-behind.
type Service struct {
	mu       sync.Mutex
	defaults []Activity
	customs  []Activity
	shadows  map[string]int      // default id -> index into customs
	deleted  map[string]struct{} // tombstoned default ids
	mirror   *store.Mirror
	logger   *slog.Logger
}

// NewService creates a catalog service with the defaults seeded.
func NewService(mirror *store.Mirror, logger *slog.Logger) *Service {
	return &Service{
		defaults: defaultActivities(time.Now()),
		shadows:  make(map[string]int),
		deleted:  make(map[string]struct{}),
		mirror:   mirror,
		logger:   logger,
	}
}

// CreateRequest defines activity creation inputs.
type CreateRequest struct {
	Name            string
	EmojiKey        string
	ColorKey        Color
	DurationMinutes int
	Category        Category
	UserID          *string
	ChildProfileID  *string
}

// Patch defines the fields an update may change. Nil fields are left as
// they are.
type Patch struct {
	Name            *string
	EmojiKey        *string
	ColorKey        *Color
	DurationMinutes *int
	Category        *Category
}

// Load restores custom activities and the tombstone set from the store.
func (s *Service) Load(ctx context.Context) error {
	var customs []Activity
	if _, err := s.mirror.Load(ctx, store.KeyActivities, &customs); err != nil {
		return fmt.Errorf("loading activities: %w", err)
	}

	var deletedIDs []string
	if _, err := s.mirror.Load(ctx, store.KeyDeletedDefaults, &deletedIDs); err != nil {
		return fmt.Errorf("loading deleted defaults: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCustomsLocked(customs)
	s.deleted = make(map[string]struct{}, len(deletedIDs))
	for _, id := range deletedIDs {
		s.deleted[id] = struct{}{}
	}
	return nil
}

// Visible returns the catalog as presented for scheduling: defaults that
// are neither tombstoned nor shadowed, in seed order, followed by custom
// activities in creation order.
func (s *Service) Visible() []Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleLocked()
}

func (s *Service) visibleLocked() []Activity {
	out := make([]Activity, 0, len(s.defaults)+len(s.customs))
	for _, def := range s.defaults {
		if _, gone := s.deleted[def.ID]; gone {
			continue
		}
		if _, shadowed := s.shadows[def.ID]; shadowed {
			continue
		}
		out = append(out, def)
	}
	out = append(out, s.customs...)
	return out
}

// GetByID looks up a visible activity.
func (s *Service) GetByID(id string) (*Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, act := range s.visibleLocked() {
		if act.ID == id {
			found := act
			return &found, nil
		}
	}
	return nil, ErrActivityNotFound
}

// Add creates a new custom activity.
func (s *Service) Add(req CreateRequest) (*Activity, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	now := time.Now()
	act := Activity{
		ID:              uuid.NewString(),
		UserID:          req.UserID,
		ChildProfileID:  req.ChildProfileID,
		Name:            req.Name,
		EmojiKey:        req.EmojiKey,
		ColorKey:        req.ColorKey,
		DurationMinutes: req.DurationMinutes,
		Category:        req.Category,
		IsDefault:       false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.customs = append(s.customs, act)
	s.persistCustomsLocked()
	return &act, nil
}

// Update patches an activity. Patching a default does not touch the
// default itself: the change lands on its shadow copy, created on first
// edit and reused by later ones.
func (s *Service) Update(id string, patch Patch) (*Activity, error) {
	if err := ValidatePatch(patch); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if def, ok := s.findDefaultLocked(id); ok {
		if idx, shadowed := s.shadows[id]; shadowed {
			applyPatch(&s.customs[idx], patch)
			s.persistCustomsLocked()
			updated := s.customs[idx]
			return &updated, nil
		}

		shadow := def
		applyPatch(&shadow, patch)
		shadow.ID = uuid.NewString()
		shadow.IsDefault = false
		shadow.OriginalDefaultID = id
		s.customs = append(s.customs, shadow)
		s.shadows[id] = len(s.customs) - 1
		s.persistCustomsLocked()
		return &shadow, nil
	}

	for i := range s.customs {
		if s.customs[i].ID == id {
			applyPatch(&s.customs[i], patch)
			s.persistCustomsLocked()
			updated := s.customs[i]
			return &updated, nil
		}
	}

	return nil, ErrActivityNotFound
}

// Delete removes an activity from the visible catalog. Deleting a
// default tombstones it and drops any shadow derived from it; deleting a
// custom entry matches either its own id or the default id it shadows.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findDefaultLocked(id); ok {
		s.deleted[id] = struct{}{}
		s.removeCustomLocked(func(a Activity) bool {
			return a.effectiveID() == id
		})
		s.persistCustomsLocked()
		s.persistDeletedLocked()
		return nil
	}

	if s.removeCustomLocked(func(a Activity) bool {
		return a.ID == id || a.effectiveID() == id
	}) {
		s.persistCustomsLocked()
		return nil
	}

	return ErrActivityNotFound
}

// Reset clears custom activities. Tombstoned defaults stay deleted; only
// a full data wipe or a backup import brings them back.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCustomsLocked(nil)
	s.persistCustomsLocked()
}

// Snapshot returns the persisted portion of the catalog: the custom
// activity list, in creation order.
func (s *Service) Snapshot() []Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Activity, len(s.customs))
	copy(out, s.customs)
	return out
}

// ReplaceAll swaps in a full custom list, clearing the tombstone set.
// The imported catalog is authoritative. Used by backup restore.
func (s *Service) ReplaceAll(customs []Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCustomsLocked(customs)
	s.deleted = make(map[string]struct{})
	s.persistCustomsLocked()
	s.persistDeletedLocked()
}

// effectiveID is the identity an entry occupies in the visible catalog:
// the shadowed default's id when there is one, its own otherwise.
func (a Activity) effectiveID() string {
	if a.OriginalDefaultID != "" {
		return a.OriginalDefaultID
	}
	return a.ID
}

func (s *Service) findDefaultLocked(id string) (Activity, bool) {
	for _, def := range s.defaults {
		if def.ID == id {
			return def, true
		}
	}
	return Activity{}, false
}

// setCustomsLocked installs a custom list and rebuilds the shadow index.
// If two entries claim the same default, the first one wins and the rest
// are dropped so a default can never be doubly shadowed.
func (s *Service) setCustomsLocked(customs []Activity) {
	s.customs = make([]Activity, 0, len(customs))
	s.shadows = make(map[string]int)
	for _, act := range customs {
		if act.OriginalDefaultID != "" {
			if _, dup := s.shadows[act.OriginalDefaultID]; dup {
				if s.logger != nil {
					s.logger.Warn("dropping duplicate shadow", "activity_id", act.ID, "default_id", act.OriginalDefaultID)
				}
				continue
			}
			s.shadows[act.OriginalDefaultID] = len(s.customs)
		}
		s.customs = append(s.customs, act)
	}
}

func (s *Service) removeCustomLocked(match func(Activity) bool) bool {
	kept := s.customs[:0]
	removed := false
	for _, act := range s.customs {
		if match(act) {
			removed = true
			continue
		}
		kept = append(kept, act)
	}
	if !removed {
		return false
	}
	s.customs = kept
	s.reindexShadowsLocked()
	return true
}

func (s *Service) reindexShadowsLocked() {
	s.shadows = make(map[string]int)
	for i, act := range s.customs {
		if act.OriginalDefaultID != "" {
			if _, dup := s.shadows[act.OriginalDefaultID]; !dup {
				s.shadows[act.OriginalDefaultID] = i
			}
		}
	}
}

func (s *Service) persistCustomsLocked() {
	list := make([]Activity, len(s.customs))
	copy(list, s.customs)
	s.mirror.Write(store.KeyActivities, list)
}

func (s *Service) persistDeletedLocked() {
	ids := make([]string, 0, len(s.deleted))
	for id := range s.deleted {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	s.mirror.Write(store.KeyDeletedDefaults, ids)
}

func applyPatch(act *Activity, patch Patch) {
	if patch.Name != nil {
		act.Name = *patch.Name
	}
	if patch.EmojiKey != nil {
		act.EmojiKey = *patch.EmojiKey
	}
	if patch.ColorKey != nil {
		act.ColorKey = *patch.ColorKey
	}
	if patch.DurationMinutes != nil {
		act.DurationMinutes = *patch.DurationMinutes
	}
	if patch.Category != nil {
		act.Category = *patch.Category
	}
	act.UpdatedAt = time.Now()
}
