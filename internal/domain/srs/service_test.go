package srs

import (
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/lingua-api/internal/domain"
)

func TestCalculateNextReview(t *testing.T) {
	t.Parallel() // Enable parallel execution
	service := NewDefaultService()
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("valid rating delegates to the algorithm", func(t *testing.T) {
		state := ReviewState{Stability: 0, Difficulty: 0.5, Due: now}

		next, err := service.CalculateNextReview(state, domain.RatingGood, now)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if next.Stability != 1 {
			t.Errorf("Expected stability 1, got %v", next.Stability)
		}
	})

	t.Run("invalid rating is rejected", func(t *testing.T) {
		state := ReviewState{Stability: 5, Difficulty: 0.5, Due: now}

		_, err := service.CalculateNextReview(state, domain.Rating("perfect"), now)
		if !errors.Is(err, domain.ErrInvalidRating) {
			t.Errorf("Expected ErrInvalidRating, got %v", err)
		}
	})

	t.Run("empty rating is rejected", func(t *testing.T) {
		_, err := service.CalculateNextReview(ReviewState{}, domain.Rating(""), now)
		if !errors.Is(err, domain.ErrInvalidRating) {
			t.Errorf("Expected ErrInvalidRating, got %v", err)
		}
	})
}

func TestNewServiceWithParams(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	params := NewDefaultParams()
	params.FirstGoodStability = 2

	service := NewServiceWithParams(params)

	next, err := service.CalculateNextReview(
		ReviewState{Stability: 0, Difficulty: 0.5, Due: now},
		domain.RatingGood,
		now,
	)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if next.Stability != 2 {
		t.Errorf("Expected custom first-good stability 2, got %v", next.Stability)
	}
}
