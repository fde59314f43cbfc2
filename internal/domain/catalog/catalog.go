// Package catalog bundles the static academic-calendar dates and the
// curated student-union event list. Catalog events are immutable source
// data: every call re-resolves translation keys against the requested
// locale, so the returned slices are fresh copies safe for callers to merge
// and filter.
package catalog

import "github.com/campusboard/core/internal/domain/entities"

// academicDates are keyed by translation identifiers; Date is the canonical
// field, display strings come from the locale catalogs.
var academicDates = []entities.CalendarEvent{
	{ID: "academic-fall-classes-begin", TitleKey: "academic.fall_classes_begin", CategoryKey: "category.registration", Date: "2026-09-02", Type: entities.EventTypeAcademic},
	{ID: "academic-fall-adddrop", TitleKey: "academic.fall_adddrop", DescKey: "academic.fall_adddrop_desc", CategoryKey: "category.deadline", Date: "2026-09-15", Type: entities.EventTypeAcademic},
	{ID: "academic-fall-withdrawal", TitleKey: "academic.fall_withdrawal", CategoryKey: "category.deadline", Date: "2026-10-27", Type: entities.EventTypeAcademic},
	{ID: "academic-thanksgiving", TitleKey: "academic.thanksgiving", CategoryKey: "category.holiday", Date: "2026-10-12", Type: entities.EventTypeAcademic},
	{ID: "academic-fall-reading-break", TitleKey: "academic.fall_reading_break", CategoryKey: "category.break", Date: "2026-10-13", Type: entities.EventTypeAcademic},
	{ID: "academic-fall-classes-end", TitleKey: "academic.fall_classes_end", CategoryKey: "category.registration", Date: "2026-12-03", Type: entities.EventTypeAcademic},
	{ID: "academic-fall-exams-begin", TitleKey: "academic.fall_exams_begin", DescKey: "academic.fall_exams_begin_desc", CategoryKey: "category.exams", Date: "2026-12-07", Type: entities.EventTypeAcademic},
	{ID: "academic-fall-exams-end", TitleKey: "academic.fall_exams_end", CategoryKey: "category.exams", Date: "2026-12-21", Type: entities.EventTypeAcademic},
	{ID: "academic-winter-registration", TitleKey: "academic.winter_registration", CategoryKey: "category.registration", Date: "2026-11-17", Type: entities.EventTypeAcademic},
	{ID: "academic-winter-classes-begin", TitleKey: "academic.winter_classes_begin", CategoryKey: "category.registration", Date: "2027-01-06", Type: entities.EventTypeAcademic},
}

// unionEvents are the curated student-union happenings bundled with the app.
var unionEvents = []entities.CalendarEvent{
	{ID: "union-activities-night", TitleKey: "union.activities_night", DescKey: "union.activities_night_desc", CategoryKey: "category.social", Date: "2026-09-09", Time: "17:00", Type: entities.EventTypeUnion},
	{ID: "union-career-fair", TitleKey: "union.career_fair", CategoryKey: "category.career", Date: "2026-09-23", Time: "10:00", Type: entities.EventTypeUnion},
	{ID: "union-general-assembly", TitleKey: "union.general_assembly", CategoryKey: "category.governance", Date: "2026-10-06", Time: "18:00", Type: entities.EventTypeUnion},
	{ID: "union-halloween-social", TitleKey: "union.halloween_social", CategoryKey: "category.social", Date: "2026-10-30", Time: "20:00", Type: entities.EventTypeUnion},
	{ID: "union-winter-market", TitleKey: "union.winter_market", CategoryKey: "category.social", Date: "2026-11-26", Time: "11:00", Type: entities.EventTypeUnion},
	{ID: "union-exam-destress", TitleKey: "union.exam_destress", DescKey: "union.exam_destress_desc", CategoryKey: "category.wellness", Date: "2026-12-08", Time: "12:00", Type: entities.EventTypeUnion},
}

// AcademicEvents returns the academic-calendar dates resolved for the given
// locale.
func AcademicEvents(loc Locale) []entities.CalendarEvent {
	return resolve(academicDates, loc, entities.SourceAcademic)
}

// UnionEvents returns the curated union events resolved for the given
// locale.
func UnionEvents(loc Locale) []entities.CalendarEvent {
	return resolve(unionEvents, loc, entities.SourceClubCatalog)
}

func resolve(src []entities.CalendarEvent, loc Locale, source entities.EventSource) []entities.CalendarEvent {
	out := make([]entities.CalendarEvent, len(src))
	for i, ev := range src {
		ev.Source = source
		ev.ReadOnly = true
		if ev.TitleKey != "" {
			ev.Title = Translate(loc, ev.TitleKey)
		}
		if ev.CategoryKey != "" {
			ev.Category = Translate(loc, ev.CategoryKey)
		}
		if ev.DescKey != "" {
			ev.Description = Translate(loc, ev.DescKey)
		}
		out[i] = ev
	}
	return out
}
