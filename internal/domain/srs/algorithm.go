package srs

import (
	"math"
	"time"

	"github.com/phrazzld/lingua-api/internal/domain"
)

// ReviewState is the scheduler's view of a card: the retention parameters
// plus the next-due instant. IsAgain is set on the output state when the
// card was rated again and must be replayed within the current session.
type ReviewState struct {
	Stability  float64
	Difficulty float64
	Due        time.Time
	IsAgain    bool
}

// adjustDifficulty applies the per-rating difficulty delta, clamped to
// [params.MinDifficulty, params.MaxDifficulty].
func adjustDifficulty(current float64, rating domain.Rating, params *Params) float64 {
	next := current + params.DifficultyAdjustment[rating]

	if next < params.MinDifficulty {
		next = params.MinDifficulty
	}
	if next > params.MaxDifficulty {
		next = params.MaxDifficulty
	}

	return next
}

// calculateNextState computes the card's next retention state for a rating.
//
// Branch behavior:
//   - again: stability resets to 0, difficulty rises, and the due date is
//     deliberately left unchanged. The card is replayed within the same
//     session instead of being scheduled into the future; if the session is
//     abandoned before the replay pass re-rates it, the card simply stays
//     due.
//   - hard: stability = max(1, stability * HardIntervalMultiplier).
//   - good: stability = FirstGoodStability while still learning
//     (stability < 1), else stability * (GoodIntervalBase - difficulty)
//     using the post-adjustment difficulty.
//   - easy: as good, but with FirstEasyStability and an extra EasyBonus
//     multiplier.
//
// For every branch except again, the new due date is now plus the new
// stability rounded to whole days. Rounding is math.Round, half away from
// zero, so a stability of 1.5 schedules 2 days out.
func calculateNextState(state ReviewState, rating domain.Rating, now time.Time, params *Params) ReviewState {
	next := ReviewState{
		Stability:  state.Stability,
		Difficulty: adjustDifficulty(state.Difficulty, rating, params),
		Due:        state.Due,
	}

	switch rating {
	case domain.RatingAgain:
		next.Stability = 0
		next.IsAgain = true

	case domain.RatingHard:
		next.Stability = math.Max(1, state.Stability*params.HardIntervalMultiplier)

	case domain.RatingGood:
		if state.Stability < 1 {
			next.Stability = params.FirstGoodStability
		} else {
			next.Stability = state.Stability * (params.GoodIntervalBase - next.Difficulty)
		}

	case domain.RatingEasy:
		if state.Stability < 1 {
			next.Stability = params.FirstEasyStability
		} else {
			next.Stability = state.Stability * (params.GoodIntervalBase - next.Difficulty) * params.EasyBonus
		}
	}

	if !next.IsAgain {
		interval := int(math.Round(next.Stability))
		next.Due = now.AddDate(0, 0, interval)
	}

	return next
}
