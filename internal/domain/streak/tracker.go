// Package streak derives a day-granularity consecutive-study streak from the
// stored study history.
package streak

import (
	"time"

	"github.com/phrazzld/lingua-api/internal/domain"
)

// dayFormat is the calendar-date form stored in StudyHistory.LastStudyDay.
const dayFormat = "2006-01-02"

// Tracker updates and reads the study streak. All day arithmetic happens in
// a single fixed location so Touch and Read can never disagree across a day
// boundary.
type Tracker struct {
	loc *time.Location
}

// NewTracker creates a Tracker using the given location for calendar-date
// comparisons. A nil location defaults to UTC.
func NewTracker(loc *time.Location) *Tracker {
	if loc == nil {
		loc = time.UTC
	}
	return &Tracker{loc: loc}
}

// Touch records that a review happened at the given instant and returns the
// updated history. It is idempotent per calendar day: the first rating of a
// day advances the streak, every later call that day is a no-op.
//
// A study day immediately following the recorded last study day increments
// the current streak; any gap resets it to 1. The longest streak never
// decreases.
func (t *Tracker) Touch(history domain.StudyHistory, now time.Time) domain.StudyHistory {
	today := t.day(now)

	if history.LastStudyDay == today {
		return history
	}

	if history.LastStudyDay == t.yesterday(now) {
		history.CurrentStreak++
	} else {
		history.CurrentStreak = 1
	}

	history.LastStudyDay = today

	if history.CurrentStreak > history.LongestStreak {
		history.LongestStreak = history.CurrentStreak
	}

	return history
}

// Read returns the effective view of the history at the given instant
// without mutating stored state: if the last study day is neither today nor
// yesterday the current streak is reported as 0, since it is already broken
// even though no touch has recorded the break yet.
func (t *Tracker) Read(history domain.StudyHistory, now time.Time) domain.StudyHistory {
	if history.LastStudyDay != t.day(now) && history.LastStudyDay != t.yesterday(now) {
		history.CurrentStreak = 0
	}
	return history
}

func (t *Tracker) day(now time.Time) string {
	return now.In(t.loc).Format(dayFormat)
}

func (t *Tracker) yesterday(now time.Time) string {
	return now.In(t.loc).AddDate(0, 0, -1).Format(dayFormat)
}
