// Package examtable holds the static final-exam schedule and its
// course-code lookup with fuzzy normalization.
package examtable

import (
	"regexp"
	"strings"

	"github.com/campusboard/core/internal/domain/entities"
)

var (
	spaceRe = regexp.MustCompile(`\s+`)
	// Separates a leading 2-4 letter subject code from immediately
	// following digits: "COMP302" -> "COMP 302".
	subjectRe = regexp.MustCompile(`^([A-Z]{2,4})(\d.*)$`)
	// Term suffix: a trailing "D" plus a single digit ("EAST 220D2").
	termSuffixRe = regexp.MustCompile(`^(.*\d)D\d$`)
	// Section suffix: a trailing 3-digit section number ("COMP 302 001").
	sectionSuffixRe = regexp.MustCompile(`^(.*\d{3})[ -]?\d{3}$`)
	// Term and section suffix combined ("EAST 220D2-001").
	bothSuffixRe = regexp.MustCompile(`^(.*\d)D\d[ -]?\d{3}$`)
)

// Table is a normalized map from canonical course code to exam entry.
// Entries are static reference data, never mutated at runtime.
type Table struct {
	byCode map[string]entities.ExamEntry
}

// New builds a table over the bundled exam schedule.
func New() *Table {
	return NewWithEntries(examSchedule)
}

// NewWithEntries builds a table over the given entries, keyed by canonical
// code.
func NewWithEntries(entries []entities.ExamEntry) *Table {
	byCode := make(map[string]entities.ExamEntry, len(entries))
	for _, e := range entries {
		byCode[e.Code] = e
	}
	return &Table{byCode: byCode}
}

// Normalize canonicalizes a course code: uppercase, collapsed whitespace,
// and a space inserted between the subject code and the course number.
func Normalize(code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	c = spaceRe.ReplaceAllString(c, " ")
	if m := subjectRe.FindStringSubmatch(c); m != nil {
		c = m[1] + " " + m[2]
	}
	return c
}

// Lookup resolves a course code through an ordered fallback chain: exact
// match on the normalized code, then with the term suffix stripped, then the
// section suffix, then both. The order decides which entry wins when a code
// is ambiguous after normalization, so it must not be rearranged. A miss is
// entities.ErrExamNotFound, never a panic.
func (t *Table) Lookup(code string) (entities.ExamEntry, error) {
	c := Normalize(code)

	candidates := []string{c}
	if m := termSuffixRe.FindStringSubmatch(c); m != nil {
		candidates = append(candidates, m[1])
	}
	if m := sectionSuffixRe.FindStringSubmatch(c); m != nil {
		candidates = append(candidates, m[1])
	}
	if m := bothSuffixRe.FindStringSubmatch(c); m != nil {
		candidates = append(candidates, m[1])
	}

	for _, cand := range candidates {
		if e, ok := t.byCode[cand]; ok {
			return e, nil
		}
	}
	return entities.ExamEntry{}, entities.ErrExamNotFound
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.byCode)
}
