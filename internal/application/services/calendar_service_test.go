package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/core/internal/domain/entities"
	"github.com/campusboard/core/internal/domain/schedule"
	"github.com/campusboard/core/internal/infrastructure/logger"
	"github.com/campusboard/core/internal/ports"
)

// 2026-09-01 is a Tuesday; all catalog dates lie after it.
var testNow = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

const catalogEventCount = 16 // 10 academic + 6 union

type memEventRepo struct {
	events  map[string][]entities.CalendarEvent
	listErr error
	saveErr error
	saves   int
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{events: make(map[string][]entities.CalendarEvent)}
}

func (r *memEventRepo) List(_ context.Context, userID string) ([]entities.CalendarEvent, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]entities.CalendarEvent, len(r.events[userID]))
	copy(out, r.events[userID])
	return out, nil
}

func (r *memEventRepo) Save(_ context.Context, userID string, events []entities.CalendarEvent) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	stored := make([]entities.CalendarEvent, len(events))
	copy(stored, events)
	r.events[userID] = stored
	return nil
}

type stubDirectory struct {
	memberships    []entities.ClubMembership
	membershipsErr error
}

func (d *stubDirectory) List(context.Context, ports.ClubFilter) ([]entities.Club, int, error) {
	return nil, 0, nil
}

func (d *stubDirectory) Memberships(context.Context, string) ([]entities.ClubMembership, error) {
	return d.memberships, d.membershipsErr
}

func (d *stubDirectory) Join(context.Context, string, string) error  { return nil }
func (d *stubDirectory) Leave(context.Context, string, string) error { return nil }
func (d *stubDirectory) Submit(context.Context, entities.ClubSubmission) error {
	return nil
}

func (d *stubDirectory) SetCalendarSync(context.Context, string, string, bool) error {
	return nil
}

type stubNotify struct {
	scheduled   []string
	cancelled   []string
	scheduleErr error
}

func (n *stubNotify) Schedule(_ context.Context, _ string, event entities.CalendarEvent) error {
	if n.scheduleErr != nil {
		return n.scheduleErr
	}
	n.scheduled = append(n.scheduled, event.ID)
	return nil
}

func (n *stubNotify) Scheduled(context.Context, string) ([]entities.CalendarEvent, error) {
	return nil, nil
}

func (n *stubNotify) Cancel(_ context.Context, eventID string) error {
	n.cancelled = append(n.cancelled, eventID)
	return nil
}

func newTestCalendarService(repo *memEventRepo, dir *stubDirectory, notify *stubNotify) *CalendarService {
	return NewCalendarService(repo, dir, notify, schedule.GeneratorConfig{}, "en", logger.NewNop()).
		WithClock(func() time.Time { return testNow })
}

func eligibleNotify() entities.EventNotify {
	return entities.EventNotify{Enabled: true, Email: true, OneDay: true}
}

func TestCollectionMergeOrder(t *testing.T) {
	repo := newMemEventRepo()
	repo.events["u1"] = []entities.CalendarEvent{
		{ID: "user-1", Title: "Dentist", Date: "2026-09-10", Type: entities.EventTypePersonal, Source: entities.SourceUser},
	}
	dir := &stubDirectory{memberships: []entities.ClubMembership{
		{Club: entities.Club{ID: "chess", Name: "Chess Club", MeetingSchedule: "Tuesdays 5-7pm"}, CalendarSynced: true},
	}}
	svc := newTestCalendarService(repo, dir, &stubNotify{})

	col, err := svc.Collection(context.Background(), "u1", ports.CollectionOptions{})
	require.NoError(t, err)

	// 10 academic, 6 union, 8 weekly occurrences, 1 user event, in that order.
	require.Len(t, col.All, catalogEventCount+8+1)
	for i := 0; i < 10; i++ {
		assert.Equal(t, entities.SourceAcademic, col.All[i].Source)
	}
	for i := 10; i < 16; i++ {
		assert.Equal(t, entities.SourceClubCatalog, col.All[i].Source)
	}
	for i := 16; i < 24; i++ {
		assert.Equal(t, entities.SourceClubDerived, col.All[i].Source)
		assert.True(t, strings.HasPrefix(col.All[i].ID, "club-chess-"))
		assert.Equal(t, "17:00", col.All[i].Time)
	}
	assert.Equal(t, "user-1", col.All[len(col.All)-1].ID)

	// With no filters the display set is the whole collection.
	assert.Equal(t, col.All, col.Filtered)

	// Grouping preserves source order within a day.
	first := col.ByDate["2026-09-01"]
	require.NotEmpty(t, first)
	assert.Equal(t, "club-chess-2026-09-01", first[0].ID)
}

func TestCollectionTitlesLocalized(t *testing.T) {
	svc := newTestCalendarService(newMemEventRepo(), &stubDirectory{}, &stubNotify{})

	en, err := svc.Collection(context.Background(), "u1", ports.CollectionOptions{Lang: "en"})
	require.NoError(t, err)
	fr, err := svc.Collection(context.Background(), "u1", ports.CollectionOptions{Lang: "fr"})
	require.NoError(t, err)

	require.Equal(t, len(en.All), len(fr.All))
	assert.NotEqual(t, en.All[0].Title, fr.All[0].Title)
	assert.NotEmpty(t, en.All[0].Title)
}

func TestCollectionTypeFiltersDisplayOnly(t *testing.T) {
	repo := newMemEventRepo()
	repo.events["u1"] = []entities.CalendarEvent{
		{ID: "user-1", Title: "Dentist", Date: "2026-09-10", Type: entities.EventTypePersonal, Source: entities.SourceUser},
	}
	svc := newTestCalendarService(repo, &stubDirectory{}, &stubNotify{})

	hidden := map[entities.EventType]bool{
		entities.EventTypeAcademic: false,
		entities.EventTypeUnion:    true,
		entities.EventTypeClub:     true,
		entities.EventTypePersonal: true,
	}
	col, err := svc.Collection(context.Background(), "u1", ports.CollectionOptions{Filters: hidden})
	require.NoError(t, err)

	assert.Len(t, col.All, catalogEventCount+1)
	assert.Len(t, col.Filtered, 6+1)
	for _, ev := range col.Filtered {
		assert.NotEqual(t, entities.EventTypeAcademic, ev.Type)
	}
	for _, evs := range col.ByDate {
		for _, ev := range evs {
			assert.NotEqual(t, entities.EventTypeAcademic, ev.Type)
		}
	}

	// Re-enabling the filter restores the full view; nothing was lost.
	col, err = svc.Collection(context.Background(), "u1", ports.CollectionOptions{})
	require.NoError(t, err)
	assert.Len(t, col.Filtered, catalogEventCount+1)
}

func TestCollectionUnknownTypeFiltersAsPersonal(t *testing.T) {
	repo := newMemEventRepo()
	repo.events["u1"] = []entities.CalendarEvent{
		{ID: "user-1", Title: "Mystery", Date: "2026-09-10", Type: "banquet", Source: entities.SourceUser},
	}
	svc := newTestCalendarService(repo, &stubDirectory{}, &stubNotify{})

	hidePersonal := map[entities.EventType]bool{
		entities.EventTypeAcademic: true,
		entities.EventTypeUnion:    true,
		entities.EventTypeClub:     true,
		entities.EventTypePersonal: false,
	}
	col, err := svc.Collection(context.Background(), "u1", ports.CollectionOptions{Filters: hidePersonal})
	require.NoError(t, err)

	assert.Len(t, col.All, catalogEventCount+1)
	for _, ev := range col.Filtered {
		assert.NotEqual(t, "user-1", ev.ID)
	}
}

func TestCollectionMembershipFailureDegrades(t *testing.T) {
	dir := &stubDirectory{membershipsErr: errors.New("backend down")}
	svc := newTestCalendarService(newMemEventRepo(), dir, &stubNotify{})

	col, err := svc.Collection(context.Background(), "u1", ports.CollectionOptions{})
	require.NoError(t, err)
	assert.Len(t, col.All, catalogEventCount)
}

func TestCollectionUnsyncedMembershipSkipped(t *testing.T) {
	dir := &stubDirectory{memberships: []entities.ClubMembership{
		{Club: entities.Club{ID: "chess", MeetingSchedule: "Tuesdays 5pm"}, CalendarSynced: false},
	}}
	svc := newTestCalendarService(newMemEventRepo(), dir, &stubNotify{})

	col, err := svc.Collection(context.Background(), "u1", ports.CollectionOptions{})
	require.NoError(t, err)
	assert.Len(t, col.All, catalogEventCount)
}

func TestUpcomingSortedAndCapped(t *testing.T) {
	repo := newMemEventRepo()
	// Enough user events to push the merged set past the cap. Dates are
	// inserted in reverse to exercise the sort.
	for day := 30; day >= 1; day-- {
		repo.events["u1"] = append(repo.events["u1"], entities.CalendarEvent{
			ID:     fmt.Sprintf("user-%d", day),
			Title:  "Study",
			Date:   fmt.Sprintf("2026-09-%02d", day),
			Type:   entities.EventTypePersonal,
			Source: entities.SourceUser,
		})
	}
	svc := newTestCalendarService(repo, &stubDirectory{}, &stubNotify{})

	col, err := svc.Collection(context.Background(), "u1", ports.CollectionOptions{})
	require.NoError(t, err)

	require.Len(t, col.Upcoming, 30)
	for i := 1; i < len(col.Upcoming); i++ {
		assert.LessOrEqual(t, col.Upcoming[i-1].Date, col.Upcoming[i].Date)
	}
	// Today's events count as upcoming.
	assert.Equal(t, "user-1", col.Upcoming[0].ID)
}

func TestUrgentWindow(t *testing.T) {
	repo := newMemEventRepo()
	repo.events["u1"] = []entities.CalendarEvent{
		{ID: "user-edge", Title: "Quiz", Date: "2026-09-08", Type: entities.EventTypePersonal, Source: entities.SourceUser},
		{ID: "user-beyond", Title: "Trip", Date: "2026-09-09", Type: entities.EventTypePersonal, Source: entities.SourceUser},
	}
	svc := newTestCalendarService(repo, &stubDirectory{}, &stubNotify{})

	col, err := svc.Collection(context.Background(), "u1", ports.CollectionOptions{})
	require.NoError(t, err)

	ids := make([]string, 0, len(col.Urgent))
	for _, ev := range col.Urgent {
		ids = append(ids, ev.ID)
	}
	// user-edge is exactly 7 days out, user-beyond 8, classes begin tomorrow.
	assert.Contains(t, ids, "user-edge")
	assert.Contains(t, ids, "academic-fall-classes-begin")
	assert.NotContains(t, ids, "user-beyond")
}

func TestMonthGrid(t *testing.T) {
	repo := newMemEventRepo()
	repo.events["u1"] = []entities.CalendarEvent{
		{ID: "user-1", Title: "Dentist", Date: "2026-10-05", Type: entities.EventTypePersonal, Source: entities.SourceUser},
	}
	svc := newTestCalendarService(repo, &stubDirectory{}, &stubNotify{})

	grid, err := svc.MonthGrid(context.Background(), "u1", 2026, time.October, ports.CollectionOptions{})
	require.NoError(t, err)

	assert.Equal(t, 31, grid.DaysInMonth)
	assert.Equal(t, int(time.Thursday), grid.FirstWeekday)
	assert.NotEmpty(t, grid.ByDate["2026-10-05"])
	for date := range grid.ByDate {
		assert.True(t, strings.HasPrefix(date, "2026-10-"), "date %s leaked into October grid", date)
	}
}

func TestSaveEventCreate(t *testing.T) {
	repo := newMemEventRepo()
	notify := &stubNotify{}
	svc := newTestCalendarService(repo, &stubDirectory{}, notify)

	ev, err := svc.SaveEvent(context.Background(), "u1", "", ports.SaveEventRequest{
		Title:  "Midterm study session",
		Date:   "2026-09-20",
		Time:   "18:00",
		Notify: eligibleNotify(),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ev.ID, entities.UserEventIDPrefix))
	assert.Equal(t, entities.SourceUser, ev.Source)
	assert.Equal(t, entities.EventTypePersonal, ev.Type)
	require.Len(t, repo.events["u1"], 1)
	assert.Equal(t, []string{ev.ID}, notify.scheduled)
}

func TestSaveEventUpdateInPlace(t *testing.T) {
	repo := newMemEventRepo()
	repo.events["u1"] = []entities.CalendarEvent{
		{ID: "user-a", Title: "Old", Date: "2026-09-10", Type: entities.EventTypePersonal, Source: entities.SourceUser},
		{ID: "user-b", Title: "Keep", Date: "2026-09-12", Type: entities.EventTypePersonal, Source: entities.SourceUser},
	}
	svc := newTestCalendarService(repo, &stubDirectory{}, &stubNotify{})

	ev, err := svc.SaveEvent(context.Background(), "u1", "user-a", ports.SaveEventRequest{
		Title: "New title",
		Date:  "2026-09-11",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-a", ev.ID)

	require.Len(t, repo.events["u1"], 2)
	assert.Equal(t, "New title", repo.events["u1"][0].Title)
	assert.Equal(t, "2026-09-11", repo.events["u1"][0].Date)
	assert.Equal(t, "Keep", repo.events["u1"][1].Title)
}

func TestSaveEventRejectsReadOnlyAndMissing(t *testing.T) {
	svc := newTestCalendarService(newMemEventRepo(), &stubDirectory{}, &stubNotify{})

	_, err := svc.SaveEvent(context.Background(), "u1", "academic-fall-classes-begin", ports.SaveEventRequest{
		Title: "Hijack", Date: "2026-09-02",
	})
	assert.ErrorIs(t, err, entities.ErrEventReadOnly)

	_, err = svc.SaveEvent(context.Background(), "u1", "user-missing", ports.SaveEventRequest{
		Title: "Ghost", Date: "2026-09-02",
	})
	assert.ErrorIs(t, err, entities.ErrEventNotFound)
}

func TestSaveEventInvalidDate(t *testing.T) {
	svc := newTestCalendarService(newMemEventRepo(), &stubDirectory{}, &stubNotify{})

	_, err := svc.SaveEvent(context.Background(), "u1", "", ports.SaveEventRequest{
		Title: "Bad", Date: "09/20/2026",
	})
	assert.Error(t, err)
}

func TestSaveEventSurvivesReminderFailure(t *testing.T) {
	repo := newMemEventRepo()
	notify := &stubNotify{scheduleErr: errors.New("backend down")}
	svc := newTestCalendarService(repo, &stubDirectory{}, notify)

	ev, err := svc.SaveEvent(context.Background(), "u1", "", ports.SaveEventRequest{
		Title:  "Quiz",
		Date:   "2026-09-20",
		Notify: eligibleNotify(),
	})
	require.NoError(t, err)
	require.Len(t, repo.events["u1"], 1)
	assert.Equal(t, ev.ID, repo.events["u1"][0].ID)
}

func TestDeleteEvent(t *testing.T) {
	repo := newMemEventRepo()
	repo.events["u1"] = []entities.CalendarEvent{
		{ID: "user-a", Title: "Gone soon", Date: "2026-09-10", Type: entities.EventTypePersonal, Source: entities.SourceUser},
	}
	notify := &stubNotify{}
	svc := newTestCalendarService(repo, &stubDirectory{}, notify)

	require.NoError(t, svc.DeleteEvent(context.Background(), "u1", "user-a"))
	assert.Empty(t, repo.events["u1"])
	assert.Equal(t, []string{"user-a"}, notify.cancelled)

	// The deleted event is gone from every derived view.
	col, err := svc.Collection(context.Background(), "u1", ports.CollectionOptions{})
	require.NoError(t, err)
	for _, ev := range col.All {
		assert.NotEqual(t, "user-a", ev.ID)
	}
}

func TestDeleteEventRejectsReadOnlyAndMissing(t *testing.T) {
	svc := newTestCalendarService(newMemEventRepo(), &stubDirectory{}, &stubNotify{})

	assert.ErrorIs(t, svc.DeleteEvent(context.Background(), "u1", "academic-thanksgiving"), entities.ErrEventReadOnly)
	assert.ErrorIs(t, svc.DeleteEvent(context.Background(), "u1", "club-chess-2026-09-01"), entities.ErrEventReadOnly)
	assert.ErrorIs(t, svc.DeleteEvent(context.Background(), "u1", "user-missing"), entities.ErrEventNotFound)
}
