package domain

import "errors"

// Settings defaults, matching the documented store defaults.
const (
	DefaultDailyStudyLimit = 20
	DefaultTargetLanguage  = "es"
)

// Settings validation errors
var (
	// ErrDailyLimitInvalid is returned when the daily study limit is not a
	// positive number of cards.
	ErrDailyLimitInvalid = errors.New("daily study limit must be positive")

	// ErrTargetLanguageInvalid is returned when the target language is not a
	// two-letter language code.
	ErrTargetLanguageInvalid = errors.New("target language must be a two-letter code")
)

// StudySettings holds the user-tunable study options: how many cards a
// session may draw and the language translations are rendered in.
type StudySettings struct {
	DailyStudyLimit int    `json:"daily_study_limit"`
	TargetLanguage  string `json:"target_language"`
}

// DefaultStudySettings returns the documented defaults, used when no
// settings row has been stored yet.
func DefaultStudySettings() StudySettings {
	return StudySettings{
		DailyStudyLimit: DefaultDailyStudyLimit,
		TargetLanguage:  DefaultTargetLanguage,
	}
}

// Validate checks if the StudySettings hold valid values.
// Returns an error if any field fails validation.
func (s StudySettings) Validate() error {
	if s.DailyStudyLimit <= 0 {
		return ErrDailyLimitInvalid
	}

	if len(s.TargetLanguage) != 2 {
		return ErrTargetLanguageInvalid
	}

	return nil
}
