package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/core/internal/domain/entities"
)

func TestFileKVStoreRoundTrip(t *testing.T) {
	kv, err := NewFileKVStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = kv.Get(ctx, "u1", "missing")
	assert.ErrorIs(t, err, entities.ErrKeyNotFound)

	require.NoError(t, kv.Set(ctx, "u1", "greeting", []byte(`"hello"`)))
	value, err := kv.Get(ctx, "u1", "greeting")
	require.NoError(t, err)
	assert.Equal(t, `"hello"`, string(value))

	// Users are isolated from each other.
	_, err = kv.Get(ctx, "u2", "greeting")
	assert.ErrorIs(t, err, entities.ErrKeyNotFound)

	require.NoError(t, kv.Delete(ctx, "u1", "greeting"))
	_, err = kv.Get(ctx, "u1", "greeting")
	assert.ErrorIs(t, err, entities.ErrKeyNotFound)

	// Deleting an absent key is a no-op.
	require.NoError(t, kv.Delete(ctx, "u1", "greeting"))
}

func TestFileKVStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	kv, err := NewFileKVStore(dir)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "u1", "k", []byte(`{"n":1}`)))

	reopened, err := NewFileKVStore(dir)
	require.NoError(t, err)
	value, err := reopened.Get(ctx, "u1", "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1}`, string(value))
}

func TestFileKVStoreCorruptFileResets(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	kv, err := NewFileKVStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "u1.json"), []byte("{not json"), 0o600))

	_, err = kv.Get(ctx, "u1", "k")
	assert.ErrorIs(t, err, entities.ErrKeyNotFound)

	// Writes recover the file.
	require.NoError(t, kv.Set(ctx, "u1", "k", []byte(`true`)))
	value, err := kv.Get(ctx, "u1", "k")
	require.NoError(t, err)
	assert.Equal(t, "true", string(value))
}

func TestFileKVStoreSanitizesUserID(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	kv, err := NewFileKVStore(dir)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "../evil/../../user", "k", []byte(`1`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), "..")
}

func TestUserEventRepository(t *testing.T) {
	repo := NewUserEventRepository(NewMemoryKVStore())
	ctx := context.Background()

	events, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, events)

	saved := []entities.CalendarEvent{
		{ID: "user-1", Title: "Dentist", Date: "2026-09-10", Type: entities.EventTypePersonal, Source: entities.SourceUser},
	}
	require.NoError(t, repo.Save(ctx, "u1", saved))

	events, err = repo.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, saved, events)
}

func TestUserEventRepositoryCorruptRecordResets(t *testing.T) {
	kv := NewMemoryKVStore()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "u1", keyUserEvents, []byte("[{broken")))

	repo := NewUserEventRepository(kv)
	events, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestPreferenceRepositoryPartialRecordMergesDefaults(t *testing.T) {
	kv := NewMemoryKVStore()
	ctx := context.Background()
	// Record written before timing and event-type toggles existed.
	require.NoError(t, kv.Set(ctx, "u1", keyPreferences, []byte(`{"method":"sms","phone":"514-555-0101"}`)))

	repo := NewPreferenceRepository(kv)
	prefs, found, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, entities.DeliverySMS, prefs.Method)
	assert.Equal(t, "514-555-0101", prefs.Phone)
	assert.True(t, prefs.Timing.OneDay)
	assert.True(t, prefs.EventTypes.Academic)
}

func TestPreferenceRepositoryFirstUse(t *testing.T) {
	repo := NewPreferenceRepository(NewMemoryKVStore())

	_, found, err := repo.Load(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCourseRepositoryRoundTrip(t *testing.T) {
	repo := NewCourseRepository(NewMemoryKVStore())
	ctx := context.Background()

	saved := []entities.SavedCourse{{Code: "COMP 302", Completed: true}}
	require.NoError(t, repo.Save(ctx, "u1", saved))

	courses, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, saved, courses)
}
