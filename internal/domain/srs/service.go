package srs

import (
	"time"

	"github.com/phrazzld/lingua-api/internal/domain"
)

// Service defines the interface for scheduling operations.
type Service interface {
	// CalculateNextReview computes the card's next retention state for the
	// given rating. The rating is validated at this boundary: unknown values
	// return domain.ErrInvalidRating and the input state is not used.
	CalculateNextReview(
		state ReviewState,
		rating domain.Rating,
		now time.Time,
	) (ReviewState, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduling service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduling service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// CalculateNextReview implements the Service interface.
func (s *defaultService) CalculateNextReview(
	state ReviewState,
	rating domain.Rating,
	now time.Time,
) (ReviewState, error) {
	if !rating.IsValid() {
		return ReviewState{}, domain.ErrInvalidRating
	}

	return calculateNextState(state, rating, now, s.params), nil
}
