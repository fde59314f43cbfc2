// Package dates provides the pure calendar arithmetic used by the month
// grid and the countdown views. All functions take the reference time as an
// explicit parameter so callers stay deterministic under test.
package dates

import (
	"fmt"
	"math"
	"time"

	"github.com/campusboard/core/internal/domain/entities"
)

// DateLayout is the wire format for calendar dates: zero-padded ISO dates
// with no timezone, always interpreted as local wall-clock dates.
const DateLayout = "2006-01-02"

const dayMillis = 86_400_000

// DaysInMonth returns the number of days in the given month, leap years
// included ("day 0 of the next month" trick).
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the 1st of the given month,
// 0 (Sunday) through 6 (Saturday).
func FirstWeekday(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// ToDateString formats a calendar date as zero-padded YYYY-MM-DD.
func ToDateString(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// ParseDate parses a YYYY-MM-DD string as a local wall-clock date at
// midnight in the given location.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, dateStr, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", entities.ErrInvalidEventDate, dateStr)
	}
	return t, nil
}

// Midnight truncates t to local midnight in its own location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysUntil returns the whole number of days between now's local midnight
// and the target date: negative for past dates, 0 for today. The millisecond
// difference is rounded, so a daylight-saving transition inside the span can
// shift the raw difference by an hour without changing the day count; the
// result is accurate to within one day across DST boundaries.
func DaysUntil(dateStr string, now time.Time) (int, error) {
	target, err := ParseDate(dateStr, now.Location())
	if err != nil {
		return 0, err
	}
	diff := target.Sub(Midnight(now)).Milliseconds()
	return int(math.Round(float64(diff) / dayMillis)), nil
}

// Today returns now's local date as a YYYY-MM-DD string.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
