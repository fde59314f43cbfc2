package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/core/internal/domain/entities"
)

// 2026-09-01 is a Tuesday.
var today = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

func chessClub(scheduleText string) entities.Club {
	return entities.Club{
		ID:              "chess",
		Name:            "Chess Club",
		Category:        "Games",
		MeetingSchedule: scheduleText,
	}
}

func TestParseWeeklyWithTimeRange(t *testing.T) {
	p, ok := Parse("Tuesdays 5–7pm")
	require.True(t, ok)
	assert.Equal(t, []time.Weekday{time.Tuesday}, p.Weekdays)
	assert.Equal(t, "17:00", p.Time)
	assert.Equal(t, Weekly, p.Cadence)
}

func TestParseUnknownMarkers(t *testing.T) {
	for _, s := range []string{"", "TBD", "tba", "Varies", "To Be Announced", "Meeting time varies by week"} {
		_, ok := Parse(s)
		assert.False(t, ok, "input %q", s)
	}
}

func TestParseNoWeekday(t *testing.T) {
	_, ok := Parse("Year-round — Engineering building")
	assert.False(t, ok)
}

func TestParseThursdayAbbreviations(t *testing.T) {
	for _, s := range []string{"Thu 6pm", "Thur 6pm", "Thurs 6pm"} {
		p, ok := Parse(s)
		require.True(t, ok, "input %q", s)
		assert.Equal(t, []time.Weekday{time.Thursday}, p.Weekdays, "input %q", s)
	}

	// "thus" is an ordinary English word, not a Thursday abbreviation.
	_, ok := Parse("Schedule thus far undecided, 6pm")
	assert.False(t, ok)
}

func TestParseMultipleWeekdayAbbreviations(t *testing.T) {
	p, ok := Parse("Mon & Wed 7 PM")
	require.True(t, ok)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday}, p.Weekdays)
	assert.Equal(t, "19:00", p.Time)
}

func TestParseBiweekly(t *testing.T) {
	tests := []string{
		"Bi-weekly — Tuesdays 5 PM",
		"biweekly tuesdays 5pm",
		"every other week, Tuesday 5pm",
		"Tuesdays 5pm, alternate weeks",
	}
	for _, s := range tests {
		p, ok := Parse(s)
		require.True(t, ok, "input %q", s)
		assert.Equal(t, Biweekly, p.Cadence, "input %q", s)
		assert.Equal(t, "17:00", p.Time, "input %q", s)
	}
}

func TestParseTimeEdges(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fridays 12 pm", "12:00"},
		{"Fridays 12 am", "00:00"},
		{"Fridays 9:30am", "09:30"},
		{"Fridays at noon-ish", ""},
	}
	for _, tt := range tests {
		p, ok := Parse(tt.in)
		require.True(t, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, p.Time, "input %q", tt.in)
	}
}

func TestOccurrencesWeekly(t *testing.T) {
	events := Occurrences(chessClub("Tuesdays 5–7pm"), today, GeneratorConfig{})
	require.Len(t, events, 8)

	for i, ev := range events {
		wantDate := today.AddDate(0, 0, 7*i).Format("2006-01-02")
		assert.Equal(t, wantDate, ev.Date)
		assert.Equal(t, "17:00", ev.Time)
		assert.Equal(t, "club-chess-"+wantDate, ev.ID)
		assert.Equal(t, "Chess Club", ev.Title)
		assert.Equal(t, "Games", ev.Category)
		assert.Equal(t, entities.EventTypeClub, ev.Type)
		assert.Equal(t, entities.SourceClubDerived, ev.Source)
		assert.True(t, ev.ReadOnly)
		assert.Equal(t, "Tuesdays 5–7pm", ev.Description)
	}
}

func TestOccurrencesBiweeklyHalvesTheCount(t *testing.T) {
	events := Occurrences(chessClub("Bi-weekly — Tuesdays 5 PM"), today, GeneratorConfig{})
	require.Len(t, events, 4)

	for i, ev := range events {
		wantDate := today.AddDate(0, 0, 14*i).Format("2006-01-02")
		assert.Equal(t, wantDate, ev.Date)
		assert.Equal(t, "17:00", ev.Time)
	}
}

func TestOccurrencesBiweeklyCountBased(t *testing.T) {
	events := Occurrences(chessClub("Bi-weekly — Tuesdays 5 PM"), today, GeneratorConfig{CountBased: true})
	require.Len(t, events, 8)
	assert.Equal(t, today.AddDate(0, 0, 14*7).Format("2006-01-02"), events[7].Date)
}

func TestOccurrencesTwoWeekdays(t *testing.T) {
	events := Occurrences(chessClub("Mon & Wed 7 PM"), today, GeneratorConfig{})
	require.Len(t, events, 16)

	byDay := map[time.Weekday]int{}
	for _, ev := range events {
		d, err := time.Parse("2006-01-02", ev.Date)
		require.NoError(t, err)
		byDay[d.Weekday()]++
		assert.Equal(t, "19:00", ev.Time)
	}
	assert.Equal(t, 8, byDay[time.Monday])
	assert.Equal(t, 8, byDay[time.Wednesday])
}

func TestOccurrencesUnknownSchedule(t *testing.T) {
	assert.Empty(t, Occurrences(chessClub("TBD"), today, GeneratorConfig{}))
	assert.Empty(t, Occurrences(chessClub("Year-round — Engineering building"), today, GeneratorConfig{}))
}

func TestOccurrencesIdempotent(t *testing.T) {
	a := Occurrences(chessClub("Mon & Wed 7 PM"), today, GeneratorConfig{})
	b := Occurrences(chessClub("Mon & Wed 7 PM"), today, GeneratorConfig{})
	assert.Equal(t, a, b)
}

func TestOccurrencesStartsOnToday(t *testing.T) {
	// Today is a Tuesday; the first Tuesday occurrence is today itself.
	events := Occurrences(chessClub("Tuesdays 5pm"), today, GeneratorConfig{})
	require.NotEmpty(t, events)
	assert.Equal(t, "2026-09-01", events[0].Date)
}

func TestMembershipOccurrencesRespectsSyncFlag(t *testing.T) {
	memberships := []entities.ClubMembership{
		{Club: chessClub("Tuesdays 5pm"), CalendarSynced: true},
		{Club: entities.Club{ID: "debate", Name: "Debate Society", MeetingSchedule: "Thursdays 6pm"}, CalendarSynced: false},
	}
	events := MembershipOccurrences(memberships, today, GeneratorConfig{})
	require.Len(t, events, 8)
	for _, ev := range events {
		assert.Equal(t, "Chess Club", ev.Title)
	}
}

func TestOccurrencesDefaultCategory(t *testing.T) {
	club := entities.Club{ID: "x", Name: "X", MeetingSchedule: "Fridays 3pm"}
	events := Occurrences(club, today, GeneratorConfig{})
	require.NotEmpty(t, events)
	assert.Equal(t, "Club", events[0].Category)
}
