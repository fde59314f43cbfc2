package ports

import (
	"context"
	"time"

	"github.com/campusboard/core/internal/domain/entities"
)

// CalendarService merges static catalog data, club-derived occurrences and
// user events into the calendar view models.
type CalendarService interface {
	Collection(ctx context.Context, userID string, opts CollectionOptions) (*EventCollection, error)
	MonthGrid(ctx context.Context, userID string, year int, month time.Month, opts CollectionOptions) (*MonthGrid, error)
	SaveEvent(ctx context.Context, userID, id string, req SaveEventRequest) (*entities.CalendarEvent, error)
	DeleteEvent(ctx context.Context, userID, id string) error
}

// PreferenceService loads and updates notification preferences.
type PreferenceService interface {
	Load(ctx context.Context, userID, accountEmail string) (entities.NotificationPreferences, error)
	Update(ctx context.Context, userID string, req UpdatePreferencesRequest) (entities.NotificationPreferences, error)
}

// ClubService fronts the clubs backend with static fallback and per-club
// in-flight guarding.
type ClubService interface {
	List(ctx context.Context, filter ClubFilter) (*ClubPage, error)
	Memberships(ctx context.Context, userID string) ([]entities.ClubMembership, error)
	Join(ctx context.Context, userID, clubID string) error
	Leave(ctx context.Context, userID, clubID string) error
	SetCalendarSync(ctx context.Context, userID, clubID string, synced bool) error
	Submit(ctx context.Context, req SubmitClubRequest) error
	RefreshDirectory(ctx context.Context) error
}

// ExamService resolves course codes to exam entries.
type ExamService interface {
	Lookup(code string) (entities.ExamEntry, error)
}

// CourseService tracks saved/completed courses.
type CourseService interface {
	List(ctx context.Context, userID string) ([]SavedCourseView, error)
	Save(ctx context.Context, userID string, req SaveCourseRequest) (*SavedCourseView, error)
	Remove(ctx context.Context, userID, code string) error
	Complete(ctx context.Context, userID, code string) (*SavedCourseView, error)
}

// NotificationService proxies reminder scheduling to the backend.
type NotificationService interface {
	Schedule(ctx context.Context, userID string, event entities.CalendarEvent) error
	Scheduled(ctx context.Context, userID string) ([]entities.CalendarEvent, error)
	Cancel(ctx context.Context, eventID string) error
}

// CollectionOptions selects language and display filters for a calendar
// computation. A nil Filters map shows every type; filtering never touches
// stored data.
type CollectionOptions struct {
	Lang    string
	Filters map[entities.EventType]bool
}

// EventCollection is the derived view model for one user and one pass.
type EventCollection struct {
	All      []entities.CalendarEvent            `json:"all"`
	Filtered []entities.CalendarEvent            `json:"filtered"`
	ByDate   map[string][]entities.CalendarEvent `json:"by_date"`
	Upcoming []entities.CalendarEvent            `json:"upcoming"`
	Urgent   []entities.CalendarEvent            `json:"urgent"`
}

// MonthGrid carries the metadata the web calendar needs to render a month.
type MonthGrid struct {
	Year         int                                 `json:"year"`
	Month        int                                 `json:"month"`
	DaysInMonth  int                                 `json:"days_in_month"`
	FirstWeekday int                                 `json:"first_weekday"`
	ByDate       map[string][]entities.CalendarEvent `json:"by_date"`
}

// ClubPage is one page of the club directory. Fallback is true when the
// backend was unreachable or empty and the bundled dataset was served.
type ClubPage struct {
	Clubs    []entities.Club `json:"clubs"`
	Total    int             `json:"total"`
	Limit    int             `json:"limit"`
	Offset   int             `json:"offset"`
	Fallback bool            `json:"fallback"`
}

// SavedCourseView is a saved course annotated with its exam entry when the
// exam table knows the code.
type SavedCourseView struct {
	entities.SavedCourse
	Exam *entities.ExamEntry `json:"exam,omitempty"`
}

// Request types

// SaveEventRequest creates or fully replaces a user-owned event.
type SaveEventRequest struct {
	Title       string               `json:"title" validate:"required,max=200"`
	Date        string               `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string               `json:"time" validate:"omitempty,datetime=15:04"`
	Category    string               `json:"category" validate:"omitempty,max=100"`
	Description string               `json:"description" validate:"omitempty,max=2000"`
	Notify      entities.EventNotify `json:"notify"`
}

// UpdatePreferencesRequest is a partial preferences update; nil fields keep
// their previous value.
type UpdatePreferencesRequest struct {
	Method     *entities.DeliveryMethod     `json:"method" validate:"omitempty,oneof=email sms both none"`
	Email      *string                      `json:"email" validate:"omitempty,email"`
	Phone      *string                      `json:"phone" validate:"omitempty,max=20"`
	Timing     *entities.NotificationTiming `json:"timing"`
	EventTypes *entities.EventTypeToggles   `json:"event_types"`
}

// SubmitClubRequest proposes a new club for the directory.
type SubmitClubRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	Category        string `json:"category" validate:"required,max=100"`
	Description     string `json:"description" validate:"omitempty,max=2000"`
	MeetingSchedule string `json:"meeting_schedule" validate:"omitempty,max=200"`
	ContactEmail    string `json:"contact_email" validate:"omitempty,email"`
}

// SaveCourseRequest adds a course to the saved list.
type SaveCourseRequest struct {
	Code  string `json:"code" validate:"required,max=20"`
	Title string `json:"title" validate:"omitempty,max=200"`
}
