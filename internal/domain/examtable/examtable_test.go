package examtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/core/internal/domain/entities"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"COMP302", "COMP 302"},
		{"comp 302", "COMP 302"},
		{"  comp   302  ", "COMP 302"},
		{"EAST 220D2", "EAST 220D2"},
		{"math240", "MATH 240"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "input %q", tt.in)
	}
}

func TestLookupVariantsResolveIdentically(t *testing.T) {
	table := New()

	a, err := table.Lookup("COMP302")
	require.NoError(t, err)
	b, err := table.Lookup("COMP 302")
	require.NoError(t, err)
	c, err := table.Lookup("comp 302")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, b, c)
	assert.Equal(t, "COMP 302", a.Code)
}

func TestLookupTermSuffixFallback(t *testing.T) {
	table := New()
	e, err := table.Lookup("EAST 220D2")
	require.NoError(t, err)
	assert.Equal(t, "EAST 220", e.Code)
}

func TestLookupSectionSuffixFallback(t *testing.T) {
	table := New()

	e, err := table.Lookup("COMP 302 001")
	require.NoError(t, err)
	assert.Equal(t, "COMP 302", e.Code)

	e, err = table.Lookup("MATH 240-002")
	require.NoError(t, err)
	assert.Equal(t, "MATH 240", e.Code)
}

func TestLookupBothSuffixesFallback(t *testing.T) {
	table := New()
	e, err := table.Lookup("EAST 220D1-001")
	require.NoError(t, err)
	assert.Equal(t, "EAST 220", e.Code)
}

func TestLookupExactWinsOverFallback(t *testing.T) {
	// When a table carries both the suffixed and the base code, the exact
	// match must win; the fallback chain only runs on a miss.
	table := NewWithEntries([]entities.ExamEntry{
		{Code: "EAST 220", Title: "base"},
		{Code: "EAST 220D2", Title: "suffixed"},
	})
	e, err := table.Lookup("EAST 220D2")
	require.NoError(t, err)
	assert.Equal(t, "suffixed", e.Title)
}

func TestLookupNotFound(t *testing.T) {
	table := New()
	_, err := table.Lookup("NOSUCH 999")
	assert.ErrorIs(t, err, entities.ErrExamNotFound)
}

func TestOnlineExamOpenEnded(t *testing.T) {
	table := New()
	e, err := table.Lookup("PSYC 100")
	require.NoError(t, err)
	assert.Equal(t, entities.ExamOnline, e.Mode)
	assert.Empty(t, e.End)
}
