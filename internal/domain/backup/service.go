// Package backup moves the whole application state in and out as a
// single JSON document, the same shape the mobile client writes to its
// export file.
package backup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ganot/dayplan/internal/domain/catalog"
	"github.com/ganot/dayplan/internal/domain/schedule"
	"github.com/ganot/dayplan/internal/store"
)

// Version identifies the backup document format.
const Version = "1.0.0"

// Document is a complete state export.
type Document struct {
	Version    string              `json:"version"`
	UserID     string              `json:"userId"`
	Activities []catalog.Activity  `json:"activities"`
	Schedules  []schedule.Schedule `json:"schedules"`
	LastSync   time.Time           `json:"lastSync"`
}

type Service struct {
	catalog  *catalog.Service
	schedule *schedule.Service
	mirror   *store.Mirror
	logger   *slog.Logger
}

func NewService(cat *catalog.Service, sched *schedule.Service, mirror *store.Mirror, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{catalog: cat, schedule: sched, mirror: mirror, logger: logger}
}

// Export snapshots the catalog and every schedule into a Document. The
// user id is minted on first export and persisted so later exports can
// be correlated.
func (s *Service) Export(ctx context.Context) (*Document, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	return &Document{
		Version:    Version,
		UserID:     userID,
		Activities: s.catalog.Snapshot(),
		Schedules:  s.schedule.Snapshot(),
		LastSync:   time.Now(),
	}, nil
}

// Import replaces the full catalog and schedule state with the
// document's contents. Tombstones are cleared; the imported catalog is
// authoritative about which defaults exist.
func (s *Service) Import(ctx context.Context, doc *Document) error {
	if doc == nil || doc.Version == "" {
		return fmt.Errorf("%w: missing backup version", ErrInvalidBackup)
	}
	s.catalog.ReplaceAll(doc.Activities)
	s.schedule.ReplaceAll(doc.Schedules)
	if doc.UserID != "" {
		s.mirror.Write(store.KeyUserID, doc.UserID)
	}
	s.logger.Info("backup imported",
		"activities", len(doc.Activities),
		"schedules", len(doc.Schedules))
	return nil
}

// ClearAll wipes both services and every persisted key. Tombstones go
// too; the next start sees a factory-fresh catalog.
func (s *Service) ClearAll(ctx context.Context) error {
	s.catalog.ReplaceAll(nil)
	s.schedule.Reset()
	// Let the reset writes land before deleting, so a slow write cannot
	// resurrect a key behind the removal.
	s.mirror.Wait()
	if err := s.mirror.Remove(ctx, store.AllKeys); err != nil {
		return fmt.Errorf("clear stored state: %w", err)
	}
	s.logger.Info("all data cleared")
	return nil
}

func (s *Service) userID(ctx context.Context) (string, error) {
	var id string
	found, err := s.mirror.Load(ctx, store.KeyUserID, &id)
	if err != nil {
		return "", fmt.Errorf("load user id: %w", err)
	}
	if found && id != "" {
		return id, nil
	}
	id = uuid.NewString()
	s.mirror.Write(store.KeyUserID, id)
	return id, nil
}
