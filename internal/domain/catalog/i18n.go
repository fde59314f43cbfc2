package catalog

// Locale selects the display language for catalog events.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleFR Locale = "fr"
)

// ParseLocale maps a request language tag to a supported locale, defaulting
// to English.
func ParseLocale(lang string) Locale {
	if Locale(lang) == LocaleFR {
		return LocaleFR
	}
	return LocaleEN
}

var translations = map[Locale]map[string]string{
	LocaleEN: {
		"academic.fall_classes_begin":    "Fall term classes begin",
		"academic.fall_adddrop":          "Add/drop deadline",
		"academic.fall_adddrop_desc":     "Last day to add or drop fall term courses without penalty.",
		"academic.fall_withdrawal":       "Withdrawal deadline (with refund)",
		"academic.thanksgiving":          "Thanksgiving - no classes",
		"academic.fall_reading_break":    "Fall reading break",
		"academic.fall_classes_end":      "Fall term classes end",
		"academic.fall_exams_begin":      "Final examinations begin",
		"academic.fall_exams_begin_desc": "Check your personalized exam schedule for times and rooms.",
		"academic.fall_exams_end":        "Final examinations end",
		"academic.winter_registration":   "Winter term registration opens",
		"academic.winter_classes_begin":  "Winter term classes begin",

		"union.activities_night":      "Activities Night",
		"union.activities_night_desc": "Meet the student clubs and sign up at their booths.",
		"union.career_fair":           "Career Fair",
		"union.general_assembly":      "Students' Union General Assembly",
		"union.halloween_social":      "Halloween Social",
		"union.winter_market":         "Winter Market",
		"union.exam_destress":         "Exam De-Stress Day",
		"union.exam_destress_desc":    "Therapy dogs, free snacks and quiet study rooms.",

		"category.registration": "Registration",
		"category.deadline":     "Deadline",
		"category.holiday":      "Holiday",
		"category.break":        "Break",
		"category.exams":        "Exams",
		"category.social":       "Social",
		"category.career":       "Career",
		"category.governance":   "Governance",
		"category.wellness":     "Wellness",
	},
	LocaleFR: {
		"academic.fall_classes_begin":    "Début des cours du trimestre d'automne",
		"academic.fall_adddrop":          "Date limite de modification d'inscription",
		"academic.fall_adddrop_desc":     "Dernier jour pour ajouter ou abandonner un cours d'automne sans pénalité.",
		"academic.fall_withdrawal":       "Date limite d'abandon (avec remboursement)",
		"academic.thanksgiving":          "Action de grâce - pas de cours",
		"academic.fall_reading_break":    "Semaine de lecture d'automne",
		"academic.fall_classes_end":      "Fin des cours du trimestre d'automne",
		"academic.fall_exams_begin":      "Début des examens finaux",
		"academic.fall_exams_begin_desc": "Consultez votre horaire d'examens personnalisé pour les heures et les salles.",
		"academic.fall_exams_end":        "Fin des examens finaux",
		"academic.winter_registration":   "Ouverture des inscriptions du trimestre d'hiver",
		"academic.winter_classes_begin":  "Début des cours du trimestre d'hiver",

		"union.activities_night":      "Soirée des activités",
		"union.activities_night_desc": "Rencontrez les clubs étudiants et inscrivez-vous à leurs kiosques.",
		"union.career_fair":           "Salon des carrières",
		"union.general_assembly":      "Assemblée générale de l'association étudiante",
		"union.halloween_social":      "Soirée d'Halloween",
		"union.winter_market":         "Marché d'hiver",
		"union.exam_destress":         "Journée anti-stress des examens",
		"union.exam_destress_desc":    "Zoothérapie, collations gratuites et salles d'étude calmes.",

		"category.registration": "Inscription",
		"category.deadline":     "Date limite",
		"category.holiday":      "Congé",
		"category.break":        "Relâche",
		"category.exams":        "Examens",
		"category.social":       "Social",
		"category.career":       "Carrière",
		"category.governance":   "Gouvernance",
		"category.wellness":     "Bien-être",
	},
}

// Translate resolves a translation key for the locale, falling back to
// English and finally to the key itself so a missing entry is visible, not
// fatal.
func Translate(loc Locale, key string) string {
	if s, ok := translations[loc][key]; ok {
		return s
	}
	if s, ok := translations[LocaleEN][key]; ok {
		return s
	}
	return key
}
