package backup_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ganot/dayplan/internal/domain/backup"
	"github.com/ganot/dayplan/internal/domain/catalog"
	"github.com/ganot/dayplan/internal/domain/schedule"
	"github.com/ganot/dayplan/internal/store"
	"github.com/ganot/dayplan/internal/store/storetest"
)

type fixture struct {
	catalog  *catalog.Service
	schedule *schedule.Service
	backup   *backup.Service
	mirror   *store.Mirror
	gateway  *storetest.Gateway
}

func newFixture() *fixture {
	gateway := storetest.New()
	mirror := store.NewMirror(gateway, nil)
	cat := catalog.NewService(mirror, nil)
	sched := schedule.NewService(mirror, nil)
	return &fixture{
		catalog:  cat,
		schedule: sched,
		backup:   backup.NewService(cat, sched, mirror, nil),
		mirror:   mirror,
		gateway:  gateway,
	}
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.catalog.Add(catalog.CreateRequest{
		Name:            "퍼즐 맞추기",
		EmojiKey:        "play",
		ColorKey:        catalog.ColorPink,
		DurationMinutes: 25,
		Category:        catalog.CategoryPlay,
	})
	require.NoError(t, err)
	_, err = f.schedule.AddItem("2025-03-10", catalog.Activity{ID: "a", DurationMinutes: 30}, "09:00")
	require.NoError(t, err)

	doc, err := f.backup.Export(ctx)
	require.NoError(t, err)
	require.Equal(t, "1.0.0", doc.Version)
	require.NotEmpty(t, doc.UserID)
	require.Len(t, doc.Activities, 1)
	require.Len(t, doc.Schedules, 1)
	require.False(t, doc.LastSync.IsZero())

	// The minted user id is stable across exports.
	again, err := f.backup.Export(ctx)
	require.NoError(t, err)
	require.Equal(t, doc.UserID, again.UserID)
}

func TestImport_ReplacesStateAndClearsTombstones(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	require.NoError(t, f.catalog.Delete("default-0"))
	require.Len(t, f.catalog.Visible(), 7)
	_, err := f.schedule.AddItem("2025-03-10", catalog.Activity{ID: "a", DurationMinutes: 30}, "09:00")
	require.NoError(t, err)

	doc := &backup.Document{
		Version: "1.0.0",
		UserID:  "user-from-backup",
		Schedules: []schedule.Schedule{
			{ID: "schedule-2025-04-01", Date: "2025-04-01"},
		},
	}
	require.NoError(t, f.backup.Import(ctx, doc))

	require.Len(t, f.catalog.Visible(), 8, "tombstone cleared, all defaults back")
	require.Nil(t, f.schedule.ForDate("2025-03-10"))
	require.NotNil(t, f.schedule.ForDate("2025-04-01"))
}

func TestImport_RejectsMissingVersion(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	require.ErrorIs(t, f.backup.Import(ctx, nil), backup.ErrInvalidBackup)
	require.ErrorIs(t, f.backup.Import(ctx, &backup.Document{}), backup.ErrInvalidBackup)
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.catalog.Add(catalog.CreateRequest{
		Name:            "퍼즐 맞추기",
		EmojiKey:        "play",
		ColorKey:        catalog.ColorPink,
		DurationMinutes: 25,
		Category:        catalog.CategoryPlay,
	})
	require.NoError(t, err)
	_, err = f.schedule.AddItem("2025-03-10", catalog.Activity{ID: "a", DurationMinutes: 30}, "09:00")
	require.NoError(t, err)
	f.mirror.Wait()
	require.NotEmpty(t, f.gateway.Keys())

	require.NoError(t, f.backup.ClearAll(ctx))
	f.mirror.Wait()

	require.Len(t, f.catalog.Visible(), 8, "defaults only")
	require.Empty(t, f.schedule.Snapshot())
}
