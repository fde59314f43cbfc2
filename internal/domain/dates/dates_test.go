package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2027, time.February, 28},
		{2028, time.February, 29},
		{2026, time.January, 31},
		{2026, time.April, 30},
		{2026, time.December, 31},
		{2000, time.February, 29},
		{1900, time.February, 28},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysInMonth(tt.year, tt.month), "%d-%d", tt.year, tt.month)
	}
}

func TestDaysInMonthMatchesEnumeration(t *testing.T) {
	for year := 2025; year <= 2029; year++ {
		for m := time.January; m <= time.December; m++ {
			count := 0
			for d := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC); d.Month() == m; d = d.AddDate(0, 0, 1) {
				count++
			}
			assert.Equal(t, count, DaysInMonth(year, m), "%d-%d", year, m)
		}
	}
}

func TestFirstWeekday(t *testing.T) {
	// 2026-09-01 is a Tuesday, 2026-02-01 a Sunday.
	assert.Equal(t, time.Tuesday, FirstWeekday(2026, time.September))
	assert.Equal(t, time.Sunday, FirstWeekday(2026, time.February))
}

func TestToDateString(t *testing.T) {
	assert.Equal(t, "2026-09-01", ToDateString(2026, time.September, 1))
	assert.Equal(t, "2026-12-31", ToDateString(2026, time.December, 31))
	assert.Equal(t, "0999-01-05", ToDateString(999, time.January, 5))
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, time.September, 1, 15, 30, 0, 0, time.UTC)

	d, err := DaysUntil("2026-09-01", now)
	require.NoError(t, err)
	assert.Equal(t, 0, d)

	d, err = DaysUntil("2026-09-08", now)
	require.NoError(t, err)
	assert.Equal(t, 7, d)

	d, err = DaysUntil("2026-08-31", now)
	require.NoError(t, err)
	assert.Equal(t, -1, d)

	_, err = DaysUntil("not-a-date", now)
	assert.Error(t, err)
}

func TestDaysUntilMonotonic(t *testing.T) {
	now := time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)
	prev := -1 << 30
	for d := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC); d.Year() == 2026; d = d.AddDate(0, 0, 1) {
		n, err := DaysUntil(Today(d), now)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, prev)
		prev = n
	}
}

func TestDaysUntilAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/Toronto")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// Spring-forward 2026-03-08: the span loses an hour but rounding keeps
	// the day count exact.
	now := time.Date(2026, time.March, 6, 12, 0, 0, 0, loc)
	d, err := DaysUntil("2026-03-10", now)
	require.NoError(t, err)
	assert.Equal(t, 4, d)
}
