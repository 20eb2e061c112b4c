package domain

// StudyHistory tracks the consecutive-day study streak. LastStudyDay is a
// calendar date in "YYYY-MM-DD" form (empty when the user has never
// studied); the streak tracker owns the day arithmetic.
//
// There is one StudyHistory per installation. It is mutated at most once per
// calendar day of use and is never reset except by clearing the store.
type StudyHistory struct {
	LastStudyDay  string `json:"last_study_day"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
}

// NewStudyHistory returns an empty history: no study day recorded, both
// streak counters at zero.
func NewStudyHistory() StudyHistory {
	return StudyHistory{}
}
