package srs

import (
	"github.com/phrazzld/lingua-api/internal/domain"
)

// Params defines all configurable parameters for the scheduling algorithm.
type Params struct {
	// Difficulty limits
	MinDifficulty float64
	MaxDifficulty float64

	// Per-rating difficulty adjustments
	DifficultyAdjustment map[domain.Rating]float64

	// Interval growth
	HardIntervalMultiplier float64
	GoodIntervalBase       float64
	EasyBonus              float64

	// Stability assigned when a card in the learning phase (stability < 1)
	// is rated good or easy
	FirstGoodStability float64
	FirstEasyStability float64
}

// NewDefaultParams creates a new Params instance with the default values.
//
// The defaults couple difficulty and stability: harder cards get shorter
// next intervals even at the same stability. Closed-form adjustments are
// used instead of lookup tables so the schedule stays predictable.
func NewDefaultParams() *Params {
	return &Params{
		MinDifficulty: domain.MinDifficulty,
		MaxDifficulty: domain.MaxDifficulty,

		DifficultyAdjustment: map[domain.Rating]float64{
			domain.RatingAgain: 0.20,
			domain.RatingHard:  0.15,
			domain.RatingGood:  -0.15,
			domain.RatingEasy:  -0.20,
		},

		HardIntervalMultiplier: 1.2,
		GoodIntervalBase:       2.5,
		EasyBonus:              1.3,

		FirstGoodStability: 1,
		FirstEasyStability: 4,
	}
}
