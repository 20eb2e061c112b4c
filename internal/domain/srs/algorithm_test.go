package srs

import (
	"math"
	"testing"
	"time"

	"github.com/phrazzld/lingua-api/internal/domain"
)

func TestAdjustDifficulty(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		current  float64
		rating   domain.Rating
		expected float64
	}{
		{
			name:     "Again rating should increase difficulty",
			current:  0.5,
			rating:   domain.RatingAgain,
			expected: 0.7, // 0.5 + 0.2
		},
		{
			name:     "Again rating clamps at the upper bound",
			current:  0.9,
			rating:   domain.RatingAgain,
			expected: 1.0, // 0.9 + 0.2 → 1.0
		},
		{
			name:     "Hard rating should increase difficulty",
			current:  0.5,
			rating:   domain.RatingHard,
			expected: 0.65, // 0.5 + 0.15
		},
		{
			name:     "Good rating should decrease difficulty",
			current:  0.5,
			rating:   domain.RatingGood,
			expected: 0.35, // 0.5 - 0.15
		},
		{
			name:     "Good rating clamps at the lower bound",
			current:  0.35,
			rating:   domain.RatingGood,
			expected: 0.3, // 0.35 - 0.15 → 0.3
		},
		{
			name:     "Easy rating should decrease difficulty",
			current:  0.6,
			rating:   domain.RatingEasy,
			expected: 0.4, // 0.6 - 0.2
		},
		{
			name:     "Easy rating clamps at the lower bound",
			current:  0.35,
			rating:   domain.RatingEasy,
			expected: 0.3, // 0.35 - 0.2 → 0.3
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := adjustDifficulty(tc.current, tc.rating, params)

			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Expected difficulty %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestCalculateNextState(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	pastDue := now.Add(-48 * time.Hour)

	testCases := []struct {
		name               string
		state              ReviewState
		rating             domain.Rating
		expectedStability  float64
		expectedDifficulty float64
		expectedDueDays    int // days after now; ignored when expectAgain
		expectAgain        bool
	}{
		{
			name:               "Again resets stability and leaves due unchanged",
			state:              ReviewState{Stability: 5, Difficulty: 0.5, Due: pastDue},
			rating:             domain.RatingAgain,
			expectedStability:  0,
			expectedDifficulty: 0.7,
			expectAgain:        true,
		},
		{
			name:               "Hard on a new card schedules one day out",
			state:              ReviewState{Stability: 0, Difficulty: 0.5, Due: pastDue},
			rating:             domain.RatingHard,
			expectedStability:  1, // max(1, 0 * 1.2)
			expectedDifficulty: 0.65,
			expectedDueDays:    1,
		},
		{
			name:               "Hard grows stability by the hard multiplier",
			state:              ReviewState{Stability: 5, Difficulty: 0.5, Due: pastDue},
			rating:             domain.RatingHard,
			expectedStability:  6, // 5 * 1.2
			expectedDifficulty: 0.65,
			expectedDueDays:    6,
		},
		{
			name:               "Good on a learning card sets stability to one",
			state:              ReviewState{Stability: 0, Difficulty: 0.5, Due: pastDue},
			rating:             domain.RatingGood,
			expectedStability:  1,
			expectedDifficulty: 0.35,
			expectedDueDays:    1,
		},
		{
			name:               "Good on a mature card multiplies by base minus difficulty",
			state:              ReviewState{Stability: 10, Difficulty: 0.5, Due: pastDue},
			rating:             domain.RatingGood,
			expectedStability:  21.5, // 10 * (2.5 - 0.35)
			expectedDifficulty: 0.35,
			expectedDueDays:    22, // round(21.5) half away from zero
		},
		{
			name:               "Easy on a learning card sets stability to four",
			state:              ReviewState{Stability: 0.5, Difficulty: 0.5, Due: pastDue},
			rating:             domain.RatingEasy,
			expectedStability:  4,
			expectedDifficulty: 0.3,
			expectedDueDays:    4,
		},
		{
			name:               "Easy on a mature card applies the easy bonus",
			state:              ReviewState{Stability: 10, Difficulty: 0.5, Due: pastDue},
			rating:             domain.RatingEasy,
			expectedStability:  28.6, // 10 * (2.5 - 0.3) * 1.3
			expectedDifficulty: 0.3,
			expectedDueDays:    29,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next := calculateNextState(tc.state, tc.rating, now, params)

			if math.Abs(next.Stability-tc.expectedStability) > 1e-9 {
				t.Errorf("Expected stability %v, got %v", tc.expectedStability, next.Stability)
			}
			if math.Abs(next.Difficulty-tc.expectedDifficulty) > 1e-9 {
				t.Errorf("Expected difficulty %v, got %v", tc.expectedDifficulty, next.Difficulty)
			}
			if next.IsAgain != tc.expectAgain {
				t.Errorf("Expected IsAgain %v, got %v", tc.expectAgain, next.IsAgain)
			}

			if tc.expectAgain {
				if !next.Due.Equal(tc.state.Due) {
					t.Errorf("Expected due to stay %v, got %v", tc.state.Due, next.Due)
				}
			} else {
				expectedDue := now.AddDate(0, 0, tc.expectedDueDays)
				if !next.Due.Equal(expectedDue) {
					t.Errorf("Expected due %v, got %v", expectedDue, next.Due)
				}
			}
		})
	}
}

// TestCalculateNextStateProgression walks a fresh card through two ratings
// and checks the compounded state after each step.
func TestCalculateNextStateProgression(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	state := ReviewState{Stability: 0, Difficulty: 0.5, Due: now}

	// First review: good. A learning card jumps to stability 1, one day out.
	state = calculateNextState(state, domain.RatingGood, now, params)
	if state.Stability != 1 {
		t.Errorf("After good: expected stability 1, got %v", state.Stability)
	}
	if math.Abs(state.Difficulty-0.35) > 1e-9 {
		t.Errorf("After good: expected difficulty 0.35, got %v", state.Difficulty)
	}
	if !state.Due.Equal(now.AddDate(0, 0, 1)) {
		t.Errorf("After good: expected due one day out, got %v", state.Due)
	}

	// Second review the next day: easy. Difficulty clamps to the floor and
	// stability becomes 1 * (2.5 - 0.3) * 1.3 = 2.86, rounding to 3 days.
	later := now.AddDate(0, 0, 1)
	state = calculateNextState(state, domain.RatingEasy, later, params)
	if math.Abs(state.Stability-2.86) > 1e-9 {
		t.Errorf("After easy: expected stability 2.86, got %v", state.Stability)
	}
	if math.Abs(state.Difficulty-0.3) > 1e-9 {
		t.Errorf("After easy: expected difficulty 0.3, got %v", state.Difficulty)
	}
	if !state.Due.Equal(later.AddDate(0, 0, 3)) {
		t.Errorf("After easy: expected due three days out, got %v", state.Due)
	}
}
