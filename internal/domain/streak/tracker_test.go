package streak

import (
	"testing"
	"time"

	"github.com/phrazzld/lingua-api/internal/domain"
)

func TestTouch(t *testing.T) {
	t.Parallel() // Enable parallel execution
	tracker := NewTracker(nil)

	testCases := []struct {
		name            string
		history         domain.StudyHistory
		now             time.Time
		expectedLastDay string
		expectedCurrent int
		expectedLongest int
	}{
		{
			name:            "First ever review starts a streak of one",
			history:         domain.StudyHistory{},
			now:             time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			expectedLastDay: "2024-01-01",
			expectedCurrent: 1,
			expectedLongest: 1,
		},
		{
			name: "Review the day after extends the streak",
			history: domain.StudyHistory{
				LastStudyDay:  "2024-01-01",
				CurrentStreak: 1,
				LongestStreak: 1,
			},
			now:             time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
			expectedLastDay: "2024-01-02",
			expectedCurrent: 2,
			expectedLongest: 2,
		},
		{
			name: "Review after a gap resets the streak to one",
			history: domain.StudyHistory{
				LastStudyDay:  "2024-01-01",
				CurrentStreak: 5,
				LongestStreak: 5,
			},
			now:             time.Date(2024, 1, 4, 9, 0, 0, 0, time.UTC),
			expectedLastDay: "2024-01-04",
			expectedCurrent: 1,
			expectedLongest: 5,
		},
		{
			name: "Longest streak never decreases on reset",
			history: domain.StudyHistory{
				LastStudyDay:  "2023-12-20",
				CurrentStreak: 10,
				LongestStreak: 10,
			},
			now:             time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
			expectedLastDay: "2024-01-01",
			expectedCurrent: 1,
			expectedLongest: 10,
		},
		{
			name: "Extension past the previous record raises the longest streak",
			history: domain.StudyHistory{
				LastStudyDay:  "2024-01-01",
				CurrentStreak: 7,
				LongestStreak: 7,
			},
			now:             time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC),
			expectedLastDay: "2024-01-02",
			expectedCurrent: 8,
			expectedLongest: 8,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tracker.Touch(tc.history, tc.now)

			if got.LastStudyDay != tc.expectedLastDay {
				t.Errorf("Expected last study day %q, got %q", tc.expectedLastDay, got.LastStudyDay)
			}
			if got.CurrentStreak != tc.expectedCurrent {
				t.Errorf("Expected current streak %d, got %d", tc.expectedCurrent, got.CurrentStreak)
			}
			if got.LongestStreak != tc.expectedLongest {
				t.Errorf("Expected longest streak %d, got %d", tc.expectedLongest, got.LongestStreak)
			}
		})
	}
}

func TestTouchIsIdempotentWithinADay(t *testing.T) {
	t.Parallel() // Enable parallel execution
	tracker := NewTracker(nil)

	morning := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 1, 2, 22, 0, 0, 0, time.UTC)

	history := domain.StudyHistory{
		LastStudyDay:  "2024-01-01",
		CurrentStreak: 3,
		LongestStreak: 4,
	}

	first := tracker.Touch(history, morning)
	if first.CurrentStreak != 4 {
		t.Fatalf("Expected first touch to extend streak to 4, got %d", first.CurrentStreak)
	}

	second := tracker.Touch(first, evening)
	if second != first {
		t.Errorf("Expected second touch on the same day to be a no-op, got %+v", second)
	}
}

func TestRead(t *testing.T) {
	t.Parallel() // Enable parallel execution
	tracker := NewTracker(nil)
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name            string
		history         domain.StudyHistory
		expectedCurrent int
	}{
		{
			name: "Studied today reports the stored streak",
			history: domain.StudyHistory{
				LastStudyDay:  "2024-01-10",
				CurrentStreak: 4,
				LongestStreak: 6,
			},
			expectedCurrent: 4,
		},
		{
			name: "Studied yesterday still reports the stored streak",
			history: domain.StudyHistory{
				LastStudyDay:  "2024-01-09",
				CurrentStreak: 4,
				LongestStreak: 6,
			},
			expectedCurrent: 4,
		},
		{
			name: "Gap of two days reports a broken streak",
			history: domain.StudyHistory{
				LastStudyDay:  "2024-01-08",
				CurrentStreak: 4,
				LongestStreak: 6,
			},
			expectedCurrent: 0,
		},
		{
			name:            "Empty history reports zero",
			history:         domain.StudyHistory{},
			expectedCurrent: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tracker.Read(tc.history, now)

			if got.CurrentStreak != tc.expectedCurrent {
				t.Errorf("Expected current streak %d, got %d", tc.expectedCurrent, got.CurrentStreak)
			}
			if got.LongestStreak != tc.history.LongestStreak {
				t.Errorf("Expected longest streak untouched at %d, got %d",
					tc.history.LongestStreak, got.LongestStreak)
			}
			if got.LastStudyDay != tc.history.LastStudyDay {
				t.Errorf("Expected last study day untouched, got %q", got.LastStudyDay)
			}
		})
	}
}

func TestTrackerLocation(t *testing.T) {
	t.Parallel() // Enable parallel execution

	// 2024-01-02 01:00 UTC is still 2024-01-01 in a UTC-5 location, so a
	// tracker pinned there treats the instant as the same study day.
	loc := time.FixedZone("UTC-5", -5*60*60)
	tracker := NewTracker(loc)

	now := time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC)
	history := domain.StudyHistory{
		LastStudyDay:  "2024-01-01",
		CurrentStreak: 2,
		LongestStreak: 2,
	}

	got := tracker.Touch(history, now)
	if got != history {
		t.Errorf("Expected touch in UTC-5 to be a same-day no-op, got %+v", got)
	}
}
