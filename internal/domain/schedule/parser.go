// Package schedule turns free-text club meeting schedules ("Tuesdays 5-7pm",
// "Bi-weekly - Mon & Wed 6 PM") into concrete calendar occurrences over a
// fixed forward horizon.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Cadence is the recurrence step of a parsed schedule.
type Cadence int

const (
	Weekly Cadence = iota
	Biweekly
)

// Parsed is the structured form of a meeting-schedule string.
type Parsed struct {
	Weekdays []time.Weekday
	// Time is a 24-hour HH:MM start time, empty when the schedule names no
	// time (all-day occurrence).
	Time    string
	Cadence Cadence
	// Raw is the original schedule text, carried into occurrence
	// descriptions.
	Raw string
}

var (
	// Markers meaning "schedule is unknown": no occurrences are fabricated.
	unknownRe = regexp.MustCompile(`\b(?:tbd|tba|varies|to be announced)\b`)

	biweeklyRe = regexp.MustCompile(`bi[-\s]?weekly|every\s+(?:other|2nd)\s+week|alternate\s+weeks?`)

	// A time range like "5-7pm" keeps the start hour and borrows the
	// meridiem from either side.
	timeRangeRe = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\s*(?:-|–|—|\bto\b)\s*(?:\d{1,2})(?::\d{2})?\s*(am|pm)`)
	timeRe      = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm)`)

	weekdayRes = [7]*regexp.Regexp{
		regexp.MustCompile(`sunday|\bsun\b`),
		regexp.MustCompile(`monday|\bmon\b`),
		regexp.MustCompile(`tuesday|\btues?\b`),
		regexp.MustCompile(`wednesday|\bweds?\b`),
		regexp.MustCompile(`thursday|\b(?:thurs|thur|thu)\b`),
		regexp.MustCompile(`friday|\bfri\b`),
		regexp.MustCompile(`saturday|\bsat\b`),
	}
)

// Parse extracts weekdays, start time and cadence from a human-authored
// schedule string. ok is false when the schedule is empty, marked unknown
// (TBD/TBA/varies), or names no weekday; callers must treat that as "no
// occurrences", not as an error.
func Parse(raw string) (Parsed, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || unknownRe.MatchString(s) {
		return Parsed{}, false
	}

	p := Parsed{Raw: raw, Time: parseStartTime(s)}

	for wd, re := range weekdayRes {
		if re.MatchString(s) {
			p.Weekdays = append(p.Weekdays, time.Weekday(wd))
		}
	}
	if len(p.Weekdays) == 0 {
		return Parsed{}, false
	}

	if biweeklyRe.MatchString(s) {
		p.Cadence = Biweekly
	}
	return p, true
}

// parseStartTime returns a 24-hour HH:MM string, or "" when the schedule
// names no time.
func parseStartTime(s string) string {
	var hourStr, minStr, meridiem string
	if m := timeRangeRe.FindStringSubmatch(s); m != nil {
		hourStr, minStr, meridiem = m[1], m[2], m[3]
		if meridiem == "" {
			meridiem = m[4]
		}
	} else if m := timeRe.FindStringSubmatch(s); m != nil {
		hourStr, minStr, meridiem = m[1], m[2], m[3]
	} else {
		return ""
	}

	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour > 12 {
		return ""
	}
	if meridiem == "pm" && hour < 12 {
		hour += 12
	} else if meridiem == "am" && hour == 12 {
		hour = 0
	}

	min := 0
	if minStr != "" {
		min, _ = strconv.Atoi(minStr)
	}
	return fmt.Sprintf("%02d:%02d", hour, min)
}
