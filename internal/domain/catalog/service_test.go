package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ganot/dayplan/internal/domain/catalog"
	"github.com/ganot/dayplan/internal/store"
	"github.com/ganot/dayplan/internal/store/storetest"
)

func newTestService() *catalog.Service {
	return catalog.NewService(store.NewMirror(nil, nil), nil)
}

func strptr(s string) *string { return &s }

func TestVisible_SeedOrder(t *testing.T) {
	svc := newTestService()

	visible := svc.Visible()
	require.Len(t, visible, 8)
	require.Equal(t, "default-0", visible[0].ID)
	require.Equal(t, "숙제하기", visible[0].Name)
	require.True(t, visible[0].IsDefault)
	require.Equal(t, "default-7", visible[7].ID)
}

func TestAdd_AppendsCustom(t *testing.T) {
	svc := newTestService()

	act, err := svc.Add(catalog.CreateRequest{
		Name:            "태권도",
		EmojiKey:        "exercise",
		ColorKey:        catalog.ColorGreen,
		DurationMinutes: 50,
		Category:        catalog.CategoryExercise,
	})
	require.NoError(t, err)
	require.False(t, act.IsDefault)
	require.NotEmpty(t, act.ID)

	visible := svc.Visible()
	require.Len(t, visible, 9)
	require.Equal(t, act.ID, visible[8].ID, "customs follow defaults")
}

func TestAdd_Validation(t *testing.T) {
	svc := newTestService()

	_, err := svc.Add(catalog.CreateRequest{
		Name: "  ", ColorKey: catalog.ColorBlue, DurationMinutes: 30, Category: catalog.CategoryPlay,
	})
	require.ErrorIs(t, err, catalog.ErrInvalidInput)

	_, err = svc.Add(catalog.CreateRequest{
		Name: "x", ColorKey: catalog.ColorBlue, DurationMinutes: 0, Category: catalog.CategoryPlay,
	})
	require.ErrorIs(t, err, catalog.ErrInvalidInput)

	_, err = svc.Add(catalog.CreateRequest{
		Name: "x", ColorKey: "magenta", DurationMinutes: 30, Category: catalog.CategoryPlay,
	})
	require.ErrorIs(t, err, catalog.ErrInvalidInput)

	_, err = svc.Add(catalog.CreateRequest{
		Name: "x", ColorKey: catalog.ColorBlue, DurationMinutes: 30, Category: "chores",
	})
	require.ErrorIs(t, err, catalog.ErrInvalidInput)
}

func TestUpdate_DefaultCreatesShadow(t *testing.T) {
	svc := newTestService()

	shadow, err := svc.Update("default-0", catalog.Patch{Name: strptr("과제")})
	require.NoError(t, err)
	require.False(t, shadow.IsDefault)
	require.Equal(t, "default-0", shadow.OriginalDefaultID)
	require.NotEqual(t, "default-0", shadow.ID)

	visible := svc.Visible()
	require.Len(t, visible, 8, "shadow replaces the default, no duplicate")

	var named []string
	for _, act := range visible {
		named = append(named, act.Name)
	}
	require.Contains(t, named, "과제")
	require.NotContains(t, named, "숙제하기")
}

func TestUpdate_SecondEditReusesShadow(t *testing.T) {
	svc := newTestService()

	first, err := svc.Update("default-0", catalog.Patch{Name: strptr("과제")})
	require.NoError(t, err)

	second, err := svc.Update("default-0", catalog.Patch{Name: strptr("공부")})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID, "same shadow entry, not a second one")
	require.Equal(t, "공부", second.Name)

	require.Len(t, svc.Visible(), 8)
}

func TestUpdate_ShadowKeepsUnpatchedFields(t *testing.T) {
	svc := newTestService()

	shadow, err := svc.Update("default-2", catalog.Patch{DurationMinutes: intptr(90)})
	require.NoError(t, err)
	require.Equal(t, "놀이 시간", shadow.Name)
	require.Equal(t, catalog.ColorPink, shadow.ColorKey)
	require.Equal(t, 90, shadow.DurationMinutes)
}

func TestUpdate_Custom(t *testing.T) {
	svc := newTestService()
	act, err := svc.Add(catalog.CreateRequest{
		Name: "수영", EmojiKey: "exercise", ColorKey: catalog.ColorTeal,
		DurationMinutes: 45, Category: catalog.CategoryExercise,
	})
	require.NoError(t, err)

	updated, err := svc.Update(act.ID, catalog.Patch{DurationMinutes: intptr(60)})
	require.NoError(t, err)
	require.Equal(t, act.ID, updated.ID)
	require.Equal(t, 60, updated.DurationMinutes)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService()
	_, err := svc.Update("nope", catalog.Patch{Name: strptr("x")})
	require.ErrorIs(t, err, catalog.ErrActivityNotFound)
}

func TestDelete_DefaultTombstonesAndDropsShadow(t *testing.T) {
	svc := newTestService()

	_, err := svc.Update("default-0", catalog.Patch{Name: strptr("과제")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete("default-0"))

	visible := svc.Visible()
	require.Len(t, visible, 7)
	for _, act := range visible {
		require.NotEqual(t, "default-0", act.ID)
		require.NotEqual(t, "default-0", act.OriginalDefaultID)
	}
}

func TestDelete_CustomByOriginalDefaultID(t *testing.T) {
	svc := newTestService()

	shadow, err := svc.Update("default-1", catalog.Patch{Name: strptr("독서")})
	require.NoError(t, err)

	// Deleting by the shadow's own id also works.
	require.NoError(t, svc.Delete(shadow.ID))
	require.Len(t, svc.Visible(), 7)
}

func TestDelete_NotFound(t *testing.T) {
	svc := newTestService()
	require.ErrorIs(t, svc.Delete("nope"), catalog.ErrActivityNotFound)
}

func TestReset_KeepsTombstones(t *testing.T) {
	svc := newTestService()

	_, err := svc.Add(catalog.CreateRequest{
		Name: "수영", EmojiKey: "exercise", ColorKey: catalog.ColorTeal,
		DurationMinutes: 45, Category: catalog.CategoryExercise,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Delete("default-0"))

	svc.Reset()

	visible := svc.Visible()
	require.Len(t, visible, 7, "customs cleared, tombstone still hides default-0")
	for _, act := range visible {
		require.True(t, act.IsDefault)
	}
}

func TestTombstoneSurvivesReconstruction(t *testing.T) {
	ctx := context.Background()
	gateway := storetest.New()
	mirror := store.NewMirror(gateway, nil)

	svc := catalog.NewService(mirror, nil)
	require.NoError(t, svc.Delete("default-0"))
	_, err := svc.Update("default-3", catalog.Patch{Name: strptr("줄넘기")})
	require.NoError(t, err)
	mirror.Wait()

	rebuilt := catalog.NewService(store.NewMirror(gateway, nil), nil)
	require.NoError(t, rebuilt.Load(ctx))

	visible := rebuilt.Visible()
	require.Len(t, visible, 8, "7 defaults plus the reloaded shadow")
	var ids []string
	for _, act := range visible {
		ids = append(ids, act.ID)
		require.NotEqual(t, "default-0", act.ID)
	}
	// default-3 is shadowed by the reloaded custom copy.
	require.NotContains(t, ids, "default-3")

	_, err = rebuilt.GetByID("default-0")
	require.ErrorIs(t, err, catalog.ErrActivityNotFound)
}

func TestLoad_DropsDuplicateShadows(t *testing.T) {
	ctx := context.Background()
	gateway := storetest.New()
	require.NoError(t, gateway.Set(ctx, store.KeyActivities, []byte(`[
		{"id":"c1","name":"one","emojiKey":"play","colorKey":"pink","durationMinutes":30,"category":"play","originalDefaultId":"default-2"},
		{"id":"c2","name":"two","emojiKey":"play","colorKey":"pink","durationMinutes":30,"category":"play","originalDefaultId":"default-2"}
	]`)))

	svc := catalog.NewService(store.NewMirror(gateway, nil), nil)
	require.NoError(t, svc.Load(ctx))

	var shadows int
	for _, act := range svc.Visible() {
		if act.OriginalDefaultID == "default-2" {
			shadows++
			require.Equal(t, "c1", act.ID, "first shadow wins")
		}
	}
	require.Equal(t, 1, shadows)
}

func TestGetByID(t *testing.T) {
	svc := newTestService()

	act, err := svc.GetByID("default-5")
	require.NoError(t, err)
	require.Equal(t, "음악 연습", act.Name)
	require.Equal(t, "🎵", act.Emoji())

	_, err = svc.GetByID("nope")
	require.ErrorIs(t, err, catalog.ErrActivityNotFound)
}

func intptr(i int) *int { return &i }
