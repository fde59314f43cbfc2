package examtable

import "github.com/campusboard/core/internal/domain/entities"

// examSchedule is the bundled fall-term final exam schedule. Codes are
// canonical "SUBJ NNN" strings; online entries with no End are open-ended.
var examSchedule = []entities.ExamEntry{
	{Code: "COMP 302", Title: "Programming Languages and Paradigms", Mode: entities.ExamInPerson, Date: "2026-12-11", Start: "09:00", End: "12:00", Campus: "Downtown"},
	{Code: "COMP 250", Title: "Introduction to Computer Science", Mode: entities.ExamInPerson, Date: "2026-12-14", Start: "14:00", End: "17:00", Campus: "Downtown"},
	{Code: "COMP 330", Title: "Theory of Computation", Mode: entities.ExamInPerson, Date: "2026-12-17", Start: "09:00", End: "12:00", Campus: "Downtown"},
	{Code: "MATH 240", Title: "Discrete Structures", Mode: entities.ExamInPerson, Date: "2026-12-09", Start: "14:00", End: "17:00", Campus: "Downtown"},
	{Code: "MATH 262", Title: "Intermediate Calculus", Mode: entities.ExamInPerson, Date: "2026-12-15", Start: "09:00", End: "12:00", Campus: "Macdonald"},
	{Code: "EAST 220", Title: "Introductory Japanese", Mode: entities.ExamOnline, Date: "2026-12-10", Start: "10:00"},
	{Code: "EAST 211", Title: "Introductory Korean", Mode: entities.ExamOnline, Date: "2026-12-12"},
	{Code: "PHYS 101", Title: "Introductory Physics - Mechanics", Mode: entities.ExamInPerson, Date: "2026-12-18", Start: "09:00", End: "12:00", Campus: "Downtown"},
	{Code: "CHEM 110", Title: "General Chemistry 1", Mode: entities.ExamInPerson, Date: "2026-12-08", Start: "09:00", End: "12:00", Campus: "Downtown"},
	{Code: "BIOL 111", Title: "Principles: Organismal Biology", Mode: entities.ExamInPerson, Date: "2026-12-16", Start: "14:00", End: "17:00", Campus: "Macdonald"},
	{Code: "ECON 208", Title: "Microeconomic Analysis and Applications", Mode: entities.ExamInPerson, Date: "2026-12-13", Start: "14:00", End: "17:00", Campus: "Downtown"},
	{Code: "PSYC 100", Title: "Introduction to Psychology", Mode: entities.ExamOnline, Date: "2026-12-09"},
	{Code: "HIST 203", Title: "Survey: Canada since 1867", Mode: entities.ExamInPerson, Date: "2026-12-19", Start: "09:00", End: "12:00", Campus: "Downtown"},
	{Code: "POLI 244", Title: "International Politics", Mode: entities.ExamInPerson, Date: "2026-12-12", Start: "09:00", End: "12:00", Campus: "Downtown"},
	{Code: "LING 201", Title: "Introduction to Linguistics", Mode: entities.ExamOnline, Date: "2026-12-11", Start: "13:00"},
}
