package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/campusboard/core/internal/domain/entities"
	"github.com/campusboard/core/internal/ports"
)

// Storage keys, one per persisted collection. Each value is the whole
// collection encoded as JSON and written through on every change.
const (
	keyUserEvents   = "calendar.events"
	keyPreferences  = "notifications.preferences"
	keySavedCourses = "courses.saved"
)

// UserEventRepositoryImpl implements the UserEventRepository interface over
// a KVStore.
type UserEventRepositoryImpl struct {
	kv ports.KVStore
}

// NewUserEventRepository creates a KV-backed user event repository.
func NewUserEventRepository(kv ports.KVStore) ports.UserEventRepository {
	return &UserEventRepositoryImpl{kv: kv}
}

func (r *UserEventRepositoryImpl) List(ctx context.Context, userID string) ([]entities.CalendarEvent, error) {
	data, err := r.kv.Get(ctx, userID, keyUserEvents)
	if errors.Is(err, entities.ErrKeyNotFound) {
		return []entities.CalendarEvent{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user events: %w", err)
	}

	var events []entities.CalendarEvent
	if err := json.Unmarshal(data, &events); err != nil {
		// A corrupt record resets to empty rather than wedging the calendar.
		return []entities.CalendarEvent{}, nil
	}
	return events, nil
}

func (r *UserEventRepositoryImpl) Save(ctx context.Context, userID string, events []entities.CalendarEvent) error {
	if events == nil {
		events = []entities.CalendarEvent{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode user events: %w", err)
	}
	if err := r.kv.Set(ctx, userID, keyUserEvents, data); err != nil {
		return fmt.Errorf("save user events: %w", err)
	}
	return nil
}

// PreferenceRepositoryImpl implements the PreferenceRepository interface
// over a KVStore.
type PreferenceRepositoryImpl struct {
	kv ports.KVStore
}

// NewPreferenceRepository creates a KV-backed preference repository.
func NewPreferenceRepository(kv ports.KVStore) ports.PreferenceRepository {
	return &PreferenceRepositoryImpl{kv: kv}
}

func (r *PreferenceRepositoryImpl) Load(ctx context.Context, userID string) (entities.NotificationPreferences, bool, error) {
	data, err := r.kv.Get(ctx, userID, keyPreferences)
	if errors.Is(err, entities.ErrKeyNotFound) {
		return entities.NotificationPreferences{}, false, nil
	}
	if err != nil {
		return entities.NotificationPreferences{}, false, fmt.Errorf("load preferences: %w", err)
	}

	// Partial records merge over the defaults so fields added after the
	// record was written come back populated, not zeroed.
	prefs := entities.DefaultNotificationPreferences()
	if err := json.Unmarshal(data, &prefs); err != nil {
		return entities.NotificationPreferences{}, false, nil
	}
	return prefs, true, nil
}

func (r *PreferenceRepositoryImpl) Save(ctx context.Context, userID string, prefs entities.NotificationPreferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := r.kv.Set(ctx, userID, keyPreferences, data); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// CourseRepositoryImpl implements the CourseRepository interface over a
// KVStore.
type CourseRepositoryImpl struct {
	kv ports.KVStore
}

// NewCourseRepository creates a KV-backed course repository.
func NewCourseRepository(kv ports.KVStore) ports.CourseRepository {
	return &CourseRepositoryImpl{kv: kv}
}

func (r *CourseRepositoryImpl) List(ctx context.Context, userID string) ([]entities.SavedCourse, error) {
	data, err := r.kv.Get(ctx, userID, keySavedCourses)
	if errors.Is(err, entities.ErrKeyNotFound) {
		return []entities.SavedCourse{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load saved courses: %w", err)
	}

	var courses []entities.SavedCourse
	if err := json.Unmarshal(data, &courses); err != nil {
		return []entities.SavedCourse{}, nil
	}
	return courses, nil
}

func (r *CourseRepositoryImpl) Save(ctx context.Context, userID string, courses []entities.SavedCourse) error {
	if courses == nil {
		courses = []entities.SavedCourse{}
	}
	data, err := json.Marshal(courses)
	if err != nil {
		return fmt.Errorf("encode saved courses: %w", err)
	}
	if err := r.kv.Set(ctx, userID, keySavedCourses, data); err != nil {
		return fmt.Errorf("save saved courses: %w", err)
	}
	return nil
}
