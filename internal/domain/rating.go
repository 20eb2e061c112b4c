package domain

import "errors"

// Rating represents the reviewer's judgment of a presented card.
type Rating string

// Possible rating values
const (
	RatingAgain Rating = "again"
	RatingHard  Rating = "hard"
	RatingGood  Rating = "good"
	RatingEasy  Rating = "easy"
)

// ErrInvalidRating is returned when a rating value is outside the
// four-element enumeration. Ratings are validated at the scheduler boundary;
// unknown values are rejected, never silently defaulted.
var ErrInvalidRating = errors.New("invalid rating")

// IsValid reports whether the rating is one of the four known values.
func (r Rating) IsValid() bool {
	switch r {
	case RatingAgain, RatingHard, RatingGood, RatingEasy:
		return true
	default:
		return false
	}
}
