package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/core/internal/domain/entities"
)

func TestAcademicEventsResolved(t *testing.T) {
	events := AcademicEvents(LocaleEN)
	require.NotEmpty(t, events)
	for _, ev := range events {
		assert.NotEmpty(t, ev.Title, "id %s", ev.ID)
		assert.NotEmpty(t, ev.Date, "id %s", ev.ID)
		assert.Equal(t, entities.SourceAcademic, ev.Source)
		assert.True(t, ev.ReadOnly)
	}
}

func TestTranslationPerLocale(t *testing.T) {
	en := AcademicEvents(LocaleEN)
	fr := AcademicEvents(LocaleFR)
	require.Equal(t, len(en), len(fr))
	assert.NotEqual(t, en[0].Title, fr[0].Title)
	assert.Equal(t, en[0].ID, fr[0].ID)
	assert.Equal(t, en[0].Date, fr[0].Date)
}

func TestTranslateFallsBackToKey(t *testing.T) {
	assert.Equal(t, "no.such.key", Translate(LocaleFR, "no.such.key"))
}

func TestCatalogImmutable(t *testing.T) {
	a := UnionEvents(LocaleEN)
	a[0].Title = "mutated"
	b := UnionEvents(LocaleEN)
	assert.NotEqual(t, "mutated", b[0].Title)
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, LocaleFR, ParseLocale("fr"))
	assert.Equal(t, LocaleEN, ParseLocale("en"))
	assert.Equal(t, LocaleEN, ParseLocale("de"))
	assert.Equal(t, LocaleEN, ParseLocale(""))
}
