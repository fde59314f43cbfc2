package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/campusboard/core/internal/domain/catalog"
	"github.com/campusboard/core/internal/domain/dates"
	"github.com/campusboard/core/internal/domain/entities"
	"github.com/campusboard/core/internal/domain/schedule"
	"github.com/campusboard/core/internal/infrastructure/logger"
	"github.com/campusboard/core/internal/ports"
)

// upcomingCap bounds the upcoming-events view.
const upcomingCap = 30

// urgentWindowDays marks events within a week as urgent.
const urgentWindowDays = 7

// CalendarService is the merge engine: it combines static academic dates,
// catalog union events, club-derived occurrences and user-authored events
// into one collection per pass, and derives the filtered/grouped/upcoming
// views from it. Static and club-derived events are regenerated on every
// call; only user events are persisted.
type CalendarService struct {
	events      ports.UserEventRepository
	clubs       ports.ClubDirectory
	notify      ports.NotificationGateway
	gen         schedule.GeneratorConfig
	defaultLang string
	logger      *logger.Logger
	now         func() time.Time
}

// NewCalendarService creates a new calendar service.
func NewCalendarService(events ports.UserEventRepository, clubs ports.ClubDirectory, notify ports.NotificationGateway, gen schedule.GeneratorConfig, defaultLang string, logger *logger.Logger) *CalendarService {
	return &CalendarService{
		events:      events,
		clubs:       clubs,
		notify:      notify,
		gen:         gen,
		defaultLang: defaultLang,
		logger:      logger,
		now:         time.Now,
	}
}

// WithClock replaces the reference clock; tests use it to pin "today".
func (s *CalendarService) WithClock(now func() time.Time) *CalendarService {
	s.now = now
	return s
}

// Collection produces the merged event collection and its derived views for
// one user. Memberships that cannot be fetched degrade to zero club events
// rather than failing the whole pass.
func (s *CalendarService) Collection(ctx context.Context, userID string, opts ports.CollectionOptions) (*ports.EventCollection, error) {
	now := s.now()
	loc := catalog.ParseLocale(opts.Lang)
	if opts.Lang == "" {
		loc = catalog.ParseLocale(s.defaultLang)
	}

	// Source order is fixed: academic, union catalog, club-derived, user.
	all := catalog.AcademicEvents(loc)
	all = append(all, catalog.UnionEvents(loc)...)

	memberships, err := s.clubs.Memberships(ctx, userID)
	if err != nil {
		s.logger.Warn("Membership fetch failed, omitting club events", "error", err, "user_id", userID)
		memberships = nil
	}
	all = append(all, schedule.MembershipOccurrences(memberships, now, s.gen)...)

	userEvents, err := s.events.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user events: %w", err)
	}
	all = append(all, userEvents...)

	s.reportIDCollisions(all, userID)

	filtered := applyTypeFilters(all, opts.Filters)

	col := &ports.EventCollection{
		All:      all,
		Filtered: filtered,
		ByDate:   groupByDate(filtered),
		Upcoming: upcoming(filtered, now),
	}
	col.Urgent = urgent(col.Upcoming, now)
	return col, nil
}

// MonthGrid returns the month-rendering metadata plus that month's slice of
// the grouped events.
func (s *CalendarService) MonthGrid(ctx context.Context, userID string, year int, month time.Month, opts ports.CollectionOptions) (*ports.MonthGrid, error) {
	col, err := s.Collection(ctx, userID, opts)
	if err != nil {
		return nil, err
	}

	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	byDate := make(map[string][]entities.CalendarEvent)
	for date, evs := range col.ByDate {
		if len(date) >= len(prefix) && date[:len(prefix)] == prefix {
			byDate[date] = evs
		}
	}

	return &ports.MonthGrid{
		Year:         year,
		Month:        int(month),
		DaysInMonth:  dates.DaysInMonth(year, month),
		FirstWeekday: int(dates.FirstWeekday(year, month)),
		ByDate:       byDate,
	}, nil
}

// SaveEvent creates a user event (empty id) or replaces one in place
// (existing id), writing through to storage before returning. Reminder
// scheduling is forwarded best-effort: a backend failure is logged, the
// local write stands.
func (s *CalendarService) SaveEvent(ctx context.Context, userID, id string, req ports.SaveEventRequest) (*entities.CalendarEvent, error) {
	if _, err := dates.ParseDate(req.Date, time.Local); err != nil {
		return nil, err
	}

	userEvents, err := s.events.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user events: %w", err)
	}

	event := entities.CalendarEvent{
		ID:          id,
		Title:       req.Title,
		Date:        req.Date,
		Time:        req.Time,
		Type:        entities.EventTypePersonal,
		Source:      entities.SourceUser,
		Category:    req.Category,
		Description: req.Description,
		Notify:      req.Notify,
	}

	if id == "" {
		event.ID = entities.UserEventIDPrefix + uuid.NewString()
		userEvents = append(userEvents, event)
	} else {
		if !event.IsUserOwned() {
			return nil, entities.ErrEventReadOnly
		}
		idx := indexOfEvent(userEvents, id)
		if idx < 0 {
			return nil, entities.ErrEventNotFound
		}
		userEvents[idx] = event
	}

	if err := s.events.Save(ctx, userID, userEvents); err != nil {
		return nil, fmt.Errorf("failed to persist user events: %w", err)
	}

	s.logger.Info("User event saved", "event_id", event.ID, "user_id", userID, "date", event.Date)

	if event.ReminderEligible() {
		if err := s.notify.Schedule(ctx, userID, event); err != nil {
			s.logger.Warn("Reminder scheduling failed, local event kept", "error", err, "event_id", event.ID)
		}
	}

	return &event, nil
}

// DeleteEvent removes a user-owned event. Static and club-derived ids are
// rejected, never removed.
func (s *CalendarService) DeleteEvent(ctx context.Context, userID, id string) error {
	probe := entities.CalendarEvent{ID: id, Source: entities.SourceUser}
	if !probe.IsUserOwned() {
		return entities.ErrEventReadOnly
	}

	userEvents, err := s.events.List(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user events: %w", err)
	}

	idx := indexOfEvent(userEvents, id)
	if idx < 0 {
		return entities.ErrEventNotFound
	}

	userEvents = append(userEvents[:idx], userEvents[idx+1:]...)
	if err := s.events.Save(ctx, userID, userEvents); err != nil {
		return fmt.Errorf("failed to persist user events: %w", err)
	}

	s.logger.Info("User event deleted", "event_id", id, "user_id", userID)

	if err := s.notify.Cancel(ctx, id); err != nil {
		s.logger.Warn("Reminder cancellation failed", "error", err, "event_id", id)
	}

	return nil
}

func (s *CalendarService) reportIDCollisions(events []entities.CalendarEvent, userID string) {
	seen := make(map[string]struct{}, len(events))
	for _, ev := range events {
		if _, dup := seen[ev.ID]; dup {
			s.logger.Warn("Duplicate event id in merged collection", "event_id", ev.ID, "user_id", userID)
		}
		seen[ev.ID] = struct{}{}
	}
}

// applyTypeFilters drops hidden types from the display set. A nil filter
// map shows everything; unknown types filter under personal, matching their
// display styling.
func applyTypeFilters(events []entities.CalendarEvent, filters map[entities.EventType]bool) []entities.CalendarEvent {
	if filters == nil {
		out := make([]entities.CalendarEvent, len(events))
		copy(out, events)
		return out
	}
	out := make([]entities.CalendarEvent, 0, len(events))
	for _, ev := range events {
		if shown, ok := filters[ev.StyleType()]; !ok || shown {
			out = append(out, ev)
		}
	}
	return out
}

// groupByDate preserves source order within each day.
func groupByDate(events []entities.CalendarEvent) map[string][]entities.CalendarEvent {
	byDate := make(map[string][]entities.CalendarEvent)
	for _, ev := range events {
		byDate[ev.Date] = append(byDate[ev.Date], ev)
	}
	return byDate
}

// upcoming keeps events on or after today, sorted ascending by date
// (lexicographic is chronological for zero-padded ISO dates), capped. The
// sort is stable so same-day events keep source order.
func upcoming(events []entities.CalendarEvent, now time.Time) []entities.CalendarEvent {
	today := dates.Today(now)
	out := make([]entities.CalendarEvent, 0, len(events))
	for _, ev := range events {
		if ev.Date >= today {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	if len(out) > upcomingCap {
		out = out[:upcomingCap]
	}
	return out
}

// urgent keeps the upcoming events within the urgency window. Dates that
// fail to parse are skipped here but remain in the other views.
func urgent(upcoming []entities.CalendarEvent, now time.Time) []entities.CalendarEvent {
	out := make([]entities.CalendarEvent, 0, len(upcoming))
	for _, ev := range upcoming {
		d, err := dates.DaysUntil(ev.Date, now)
		if err != nil {
			continue
		}
		if d <= urgentWindowDays {
			out = append(out, ev)
		}
	}
	return out
}

func indexOfEvent(events []entities.CalendarEvent, id string) int {
	for i, ev := range events {
		if ev.ID == id {
			return i
		}
	}
	return -1
}
