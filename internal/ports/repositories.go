package ports

import (
	"context"

	"github.com/campusboard/core/internal/domain/entities"
)

// KVStore is the namespaced per-user JSON key-value store backing all local
// persistence. Get returns entities.ErrKeyNotFound when no value exists.
type KVStore interface {
	Get(ctx context.Context, userID, key string) ([]byte, error)
	Set(ctx context.Context, userID, key string, value []byte) error
	Delete(ctx context.Context, userID, key string) error
}

// UserEventRepository persists the user-owned event list. The list is
// written through as a whole on every change; malformed stored data loads as
// an empty list, never as an error.
type UserEventRepository interface {
	List(ctx context.Context, userID string) ([]entities.CalendarEvent, error)
	Save(ctx context.Context, userID string, events []entities.CalendarEvent) error
}

// PreferenceRepository persists notification preferences. Load reports
// found=false on first use so the caller can apply defaults and seeding.
type PreferenceRepository interface {
	Load(ctx context.Context, userID string) (prefs entities.NotificationPreferences, found bool, err error)
	Save(ctx context.Context, userID string, prefs entities.NotificationPreferences) error
}

// CourseRepository persists the saved/completed course list.
type CourseRepository interface {
	List(ctx context.Context, userID string) ([]entities.SavedCourse, error)
	Save(ctx context.Context, userID string, courses []entities.SavedCourse) error
}

// ClubFilter narrows and pages the club directory listing.
type ClubFilter struct {
	Search   string
	Category string
	Limit    int
	Offset   int
}

// ClubDirectory is the clubs backend consumed over HTTP. Implementations
// must not fabricate data; graceful fallback to the bundled static dataset
// is layered on top by the club service.
type ClubDirectory interface {
	List(ctx context.Context, filter ClubFilter) ([]entities.Club, int, error)
	Memberships(ctx context.Context, userID string) ([]entities.ClubMembership, error)
	Join(ctx context.Context, userID, clubID string) error
	Leave(ctx context.Context, userID, clubID string) error
	SetCalendarSync(ctx context.Context, userID, clubID string, synced bool) error
	Submit(ctx context.Context, submission entities.ClubSubmission) error
}

// NotificationGateway is the remote notification-scheduling backend.
type NotificationGateway interface {
	Schedule(ctx context.Context, userID string, event entities.CalendarEvent) error
	Scheduled(ctx context.Context, userID string) ([]entities.CalendarEvent, error)
	Cancel(ctx context.Context, eventID string) error
}
