package entities

import (
	"errors"
	"strings"
	"time"
)

// Common errors
var (
	ErrEventNotFound       = errors.New("event not found")
	ErrEventReadOnly       = errors.New("event is read-only")
	ErrInvalidEventDate    = errors.New("invalid event date")
	ErrClubNotFound        = errors.New("club not found")
	ErrAlreadyMember       = errors.New("already a member of club")
	ErrNotMember           = errors.New("not a member of club")
	ErrSubmissionExists    = errors.New("submission already exists")
	ErrExamNotFound        = errors.New("exam not found")
	ErrCourseNotSaved      = errors.New("course not saved")
	ErrOperationInFlight   = errors.New("operation already in flight for club")
	ErrKeyNotFound         = errors.New("key not found")
	ErrReminderIneligible  = errors.New("event not eligible for reminders")
	ErrNotificationBackend = errors.New("notification backend unavailable")
)

// EventType classifies an event for display and notification muting.
type EventType string

const (
	EventTypeAcademic EventType = "academic"
	EventTypeUnion    EventType = "union"
	EventTypeClub     EventType = "club"
	EventTypePersonal EventType = "personal"
)

// EventSource records where an event came from. Provenance decides
// mutability: only SourceUser events may be edited or deleted.
type EventSource string

const (
	SourceAcademic    EventSource = "academic"
	SourceClubCatalog EventSource = "club-catalog"
	SourceClubDerived EventSource = "club-derived"
	SourceUser        EventSource = "user"
)

// DeliveryMethod selects how reminders are delivered.
type DeliveryMethod string

const (
	DeliveryEmail DeliveryMethod = "email"
	DeliverySMS   DeliveryMethod = "sms"
	DeliveryBoth  DeliveryMethod = "both"
	DeliveryNone  DeliveryMethod = "none"
)

// ExamMode distinguishes sit-down exams from online ones.
type ExamMode string

const (
	ExamInPerson ExamMode = "IN-PERSON"
	ExamOnline   ExamMode = "ONLINE"
)

// EventNotify carries the per-event reminder settings sent to the
// notification backend when an event is scheduled.
type EventNotify struct {
	Enabled bool   `json:"enabled"`
	Email   bool   `json:"email"`
	SMS     bool   `json:"sms"`
	SameDay bool   `json:"same_day"`
	OneDay  bool   `json:"one_day"`
	OneWeek bool   `json:"one_week"`
	EmailTo string `json:"email_to,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// CalendarEvent is the central entity of the dashboard calendar. Date is a
// local wall-clock date in YYYY-MM-DD form with no timezone; Time is an
// optional 24-hour HH:MM string, empty for all-day events.
//
// Catalog events carry translation keys (TitleKey, CategoryKey, DescKey)
// that are resolved to display strings per request; user events carry
// literal fields only.
type CalendarEvent struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	TitleKey    string      `json:"title_key,omitempty"`
	Date        string      `json:"date"`
	Time        string      `json:"time,omitempty"`
	Type        EventType   `json:"type"`
	Source      EventSource `json:"source"`
	Category    string      `json:"category,omitempty"`
	CategoryKey string      `json:"category_key,omitempty"`
	Description string      `json:"description,omitempty"`
	DescKey     string      `json:"desc_key,omitempty"`
	ReadOnly    bool        `json:"read_only"`
	Notify      EventNotify `json:"notify"`
}

// UserEventIDPrefix marks user-authored event ids.
const UserEventIDPrefix = "user-"

// IsUserOwned reports whether the event was authored by the user and is
// therefore mutable and deletable.
func (e *CalendarEvent) IsUserOwned() bool {
	return e.Source == SourceUser && strings.HasPrefix(e.ID, UserEventIDPrefix)
}

// StyleType returns the type used for display styling. Unrecognized types
// fall back to personal; the event itself is never dropped.
func (e *CalendarEvent) StyleType() EventType {
	if e.Type.IsValid() {
		return e.Type
	}
	return EventTypePersonal
}

// ReminderEligible reports whether the event should be forwarded to the
// notification backend: reminders enabled, a delivery channel chosen and at
// least one timing offset selected.
func (e *CalendarEvent) ReminderEligible() bool {
	n := e.Notify
	if !n.Enabled {
		return false
	}
	if !n.Email && !n.SMS {
		return false
	}
	return n.SameDay || n.OneDay || n.OneWeek
}

// NotificationTiming holds the reminder offset toggles.
type NotificationTiming struct {
	SameDay bool `json:"same_day"`
	OneDay  bool `json:"one_day"`
	OneWeek bool `json:"one_week"`
}

// EventTypeToggles holds per-type notification mute flags. A disabled type
// mutes delivery only; it never hides the type from the calendar.
type EventTypeToggles struct {
	Academic bool `json:"academic"`
	Union    bool `json:"union"`
	Club     bool `json:"club"`
	Personal bool `json:"personal"`
}

// NotificationPreferences is the per-user reminder configuration. Missing
// fields in a previously persisted record fall back to the defaults from
// DefaultNotificationPreferences, never to zero values surfaced as errors.
type NotificationPreferences struct {
	Method     DeliveryMethod     `json:"method"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone"`
	Timing     NotificationTiming `json:"timing"`
	EventTypes EventTypeToggles   `json:"event_types"`
}

// DefaultNotificationPreferences returns the hard-coded first-load defaults.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		Method: DeliveryEmail,
		Timing: NotificationTiming{OneDay: true},
		EventTypes: EventTypeToggles{
			Academic: true,
			Union:    true,
			Club:     true,
			Personal: true,
		},
	}
}

// Allows reports whether delivery for the given event type is unmuted.
func (p *NotificationPreferences) Allows(t EventType) bool {
	switch t {
	case EventTypeAcademic:
		return p.EventTypes.Academic
	case EventTypeUnion:
		return p.EventTypes.Union
	case EventTypeClub:
		return p.EventTypes.Club
	default:
		return p.EventTypes.Personal
	}
}

// ExamEntry is static read-only reference data for one final exam. Start and
// End are 24-hour HH:MM strings, empty for open-ended online exams.
type ExamEntry struct {
	Code   string   `json:"code"`
	Title  string   `json:"title"`
	Mode   ExamMode `json:"mode"`
	Date   string   `json:"date"`
	Start  string   `json:"start,omitempty"`
	End    string   `json:"end,omitempty"`
	Campus string   `json:"campus,omitempty"`
}

// Club is a student club as served by the clubs backend.
type Club struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	Description     string `json:"description,omitempty"`
	MeetingSchedule string `json:"meeting_schedule,omitempty"`
	MemberCount     int    `json:"member_count,omitempty"`
}

// ClubMembership ties a user to a club. CalendarSynced gates whether the
// club's meeting schedule is expanded into calendar occurrences.
type ClubMembership struct {
	Club           Club      `json:"club"`
	CalendarSynced bool      `json:"calendar_synced"`
	JoinedAt       time.Time `json:"joined_at,omitempty"`
}

// SavedCourse is one entry of the user's saved/completed course list.
type SavedCourse struct {
	Code      string    `json:"code"`
	Title     string    `json:"title,omitempty"`
	Completed bool      `json:"completed"`
	SavedAt   time.Time `json:"saved_at"`
}

// ClubSubmission is a user-proposed new club.
type ClubSubmission struct {
	Name            string `json:"name"`
	Category        string `json:"category"`
	Description     string `json:"description,omitempty"`
	MeetingSchedule string `json:"meeting_schedule,omitempty"`
	ContactEmail    string `json:"contact_email,omitempty"`
}

// Utility methods
func (t EventType) IsValid() bool {
	switch t {
	case EventTypeAcademic, EventTypeUnion, EventTypeClub, EventTypePersonal:
		return true
	default:
		return false
	}
}

func (s EventSource) IsValid() bool {
	switch s {
	case SourceAcademic, SourceClubCatalog, SourceClubDerived, SourceUser:
		return true
	default:
		return false
	}
}

func (m DeliveryMethod) IsValid() bool {
	switch m {
	case DeliveryEmail, DeliverySMS, DeliveryBoth, DeliveryNone:
		return true
	default:
		return false
	}
}

func (m ExamMode) IsValid() bool {
	switch m {
	case ExamInPerson, ExamOnline:
		return true
	default:
		return false
	}
}
