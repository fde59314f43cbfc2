package schedule

import (
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/campusboard/core/internal/domain/dates"
	"github.com/campusboard/core/internal/domain/entities"
)

// DefaultHorizonWeeks is the forward window for occurrence generation.
const DefaultHorizonWeeks = 8

// GeneratorConfig controls occurrence expansion.
type GeneratorConfig struct {
	// HorizonWeeks is the number of forward week-steps; zero means
	// DefaultHorizonWeeks.
	HorizonWeeks int
	// CountBased switches the recurrence to "HorizonWeeks occurrences per
	// weekday regardless of cadence". The default (false) bounds expansion
	// by calendar time, so a biweekly schedule yields half as many
	// occurrences over the same window.
	CountBased bool
}

// Occurrences expands one club's meeting schedule into read-only calendar
// events covering the horizon starting at today. The expansion is stateless
// and idempotent: the same club and today always produce identical events.
// Unknown or unparseable schedules yield no events.
func Occurrences(club entities.Club, today time.Time, cfg GeneratorConfig) []entities.CalendarEvent {
	parsed, ok := Parse(club.MeetingSchedule)
	if !ok {
		return nil
	}

	horizon := cfg.HorizonWeeks
	if horizon <= 0 {
		horizon = DefaultHorizonWeeks
	}
	interval := 1
	if parsed.Cadence == Biweekly {
		interval = 2
	}

	base := dates.Midnight(today)
	category := club.Category
	if category == "" {
		category = "Club"
	}

	var events []entities.CalendarEvent
	for _, wd := range parsed.Weekdays {
		first := nextOnOrAfter(base, wd)

		opt := rrule.ROption{
			Freq:     rrule.WEEKLY,
			Interval: interval,
			Dtstart:  first,
		}
		if cfg.CountBased {
			opt.Count = horizon
		} else {
			// The window is [today, today+horizon weeks); Until is
			// inclusive, so stop one second short of the boundary.
			opt.Until = base.AddDate(0, 0, horizon*7).Add(-time.Second)
		}

		rule, err := rrule.NewRRule(opt)
		if err != nil {
			continue
		}

		for _, occ := range rule.All() {
			dateStr := dates.Today(occ)
			events = append(events, entities.CalendarEvent{
				ID:          "club-" + club.ID + "-" + dateStr,
				Title:       club.Name,
				Date:        dateStr,
				Time:        parsed.Time,
				Type:        entities.EventTypeClub,
				Source:      entities.SourceClubDerived,
				Category:    category,
				Description: parsed.Raw,
				ReadOnly:    true,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})
	return events
}

// MembershipOccurrences expands every calendar-synced membership. Clubs with
// sync toggled off contribute nothing.
func MembershipOccurrences(memberships []entities.ClubMembership, today time.Time, cfg GeneratorConfig) []entities.CalendarEvent {
	var events []entities.CalendarEvent
	for _, m := range memberships {
		if !m.CalendarSynced {
			continue
		}
		events = append(events, Occurrences(m.Club, today, cfg)...)
	}
	return events
}

// nextOnOrAfter returns the first occurrence of wd on or after base.
func nextOnOrAfter(base time.Time, wd time.Weekday) time.Time {
	delta := (int(wd) - int(base.Weekday()) + 7) % 7
	return base.AddDate(0, 0, delta)
}
