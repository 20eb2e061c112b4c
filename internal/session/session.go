// Package session implements the in-memory study-session state machine: deck
// composition, presentation sequencing, and the same-session replay of cards
// rated again.
package session

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingua-api/internal/domain"
	"github.com/phrazzld/lingua-api/internal/domain/srs"
)

// State is the UI-observable session state.
type State string

// Session states. Idle and End are terminal for the current session; a fresh
// New call is the only transition out of them.
const (
	// StateIdle means the collection holds no cards at all.
	StateIdle State = "idle"

	// StateQuestion means a card's front face is shown, answer hidden.
	StateQuestion State = "question"

	// StateAnswer means the card's back face is revealed and ratings are enabled.
	StateAnswer State = "answer"

	// StateEnd means both the deck and the again-queue are exhausted.
	StateEnd State = "end"
)

// EndReason distinguishes the two End sub-variants so the caller can message
// them differently.
type EndReason string

const (
	// EndReasonNone applies while the session is still running.
	EndReasonNone EndReason = ""

	// EndReasonNothingDue means the session started with no due cards.
	EndReasonNothingDue EndReason = "nothing_due"

	// EndReasonCompleted means a non-empty session was studied to the end.
	EndReasonCompleted EndReason = "completed"
)

// Session errors
var (
	// ErrNoActiveCard is returned when an operation needs a presented card
	// but the session is idle or ended.
	ErrNoActiveCard = errors.New("no active card in session")

	// ErrAnswerNotRevealed is returned when a rating arrives while the card's
	// back face is still hidden.
	ErrAnswerNotRevealed = errors.New("answer has not been revealed")

	// ErrNoCardMatch is returned when the presented card no longer exists in
	// the live collection, e.g. it was deleted mid-session. The rating is
	// dropped, no state is mutated, and presentation still advances.
	ErrNoCardMatch = errors.New("rated card not found in collection")
)

// RateResult describes the outcome of a single rating.
type RateResult struct {
	// Updated is the live card with its new retention state written back.
	Updated *domain.Card

	// IsAgain reports that the card was queued for a same-session replay.
	IsAgain bool
}

// Session sequences one study pass over the card collection. It borrows the
// live collection for its lifetime: ratings mutate the matching entries in
// place and the caller persists them. Sessions are not safe for concurrent
// use; the caller serializes access.
type Session struct {
	allCards     []*domain.Card
	studyDeck    []*domain.Card
	currentIndex int
	againQueue   []*domain.Card

	scheduler srs.Service
	rng       *rand.Rand

	state     State
	endReason EndReason
}

// New starts a session over the given collection. Cards with missing or
// invalid retention fields are repaired in place (due now, default
// stability/difficulty) before deck selection, so malformed store data is
// studied rather than dropped.
//
// With an empty collection the session starts in StateIdle; with no due
// cards it starts ended with EndReasonNothingDue.
func New(allCards []*domain.Card, scheduler srs.Service, rng *rand.Rand, now time.Time, dailyLimit int) *Session {
	for _, card := range allCards {
		card.Normalize(now)
	}

	s := &Session{
		allCards:  allCards,
		scheduler: scheduler,
		rng:       rng,
	}

	if len(allCards) == 0 {
		s.state = StateIdle
		return s
	}

	s.studyDeck = BuildDeck(allCards, now, dailyLimit, rng)
	if len(s.studyDeck) == 0 {
		s.state = StateEnd
		s.endReason = EndReasonNothingDue
		return s
	}

	s.state = StateQuestion
	return s
}

// State returns the current session state.
func (s *Session) State() State {
	return s.state
}

// EndReason returns which End variant the session finished in, or
// EndReasonNone while it is still running.
func (s *Session) EndReason() EndReason {
	return s.endReason
}

// Current returns the card being presented, or nil when the session is idle
// or ended.
func (s *Session) Current() *domain.Card {
	if s.state != StateQuestion && s.state != StateAnswer {
		return nil
	}
	return s.studyDeck[s.currentIndex]
}

// Reveal flips the presented card from question to answer, enabling ratings.
func (s *Session) Reveal() error {
	switch s.state {
	case StateQuestion:
		s.state = StateAnswer
		return nil
	case StateAnswer:
		return nil
	default:
		return ErrNoActiveCard
	}
}

// Rate applies the reviewer's rating to the presented card. It looks up the
// live card by ID, runs the scheduler, writes the new retention state back
// onto the live entry, queues the card for replay if it was rated again, and
// advances presentation.
//
// An invalid rating is rejected without advancing. A missing live card
// (deleted mid-session) returns ErrNoCardMatch after advancing, so the
// caller can keep presenting; nothing is mutated in that case.
func (s *Session) Rate(rating domain.Rating, now time.Time) (RateResult, error) {
	if s.state != StateQuestion && s.state != StateAnswer {
		return RateResult{}, ErrNoActiveCard
	}
	if s.state != StateAnswer {
		return RateResult{}, ErrAnswerNotRevealed
	}

	presented := s.studyDeck[s.currentIndex]

	live := s.find(presented.ID)
	if live == nil {
		s.advance()
		return RateResult{}, ErrNoCardMatch
	}

	next, err := s.scheduler.CalculateNextReview(srs.ReviewState{
		Stability:  live.Stability,
		Difficulty: live.Difficulty,
		Due:        live.Due,
	}, rating, now)
	if err != nil {
		return RateResult{}, err
	}

	live.Stability = next.Stability
	live.Difficulty = next.Difficulty
	live.Due = next.Due
	live.UpdatedAt = now

	if next.IsAgain {
		s.againQueue = append(s.againQueue, presented)
	}

	s.advance()

	return RateResult{Updated: live, IsAgain: next.IsAgain}, nil
}

// Progress returns the remaining-to-complete count: cards left in the
// current pass plus cards waiting in the again-queue.
func (s *Session) Progress() int {
	if s.state == StateIdle || s.state == StateEnd {
		return 0
	}
	return (len(s.studyDeck) - s.currentIndex) + len(s.againQueue)
}

// advance moves the cursor and applies the deck transition rule: when the
// current pass is exhausted, a non-empty again-queue becomes the next pass
// (freshly shuffled), otherwise the session ends.
func (s *Session) advance() {
	s.currentIndex++

	if s.currentIndex < len(s.studyDeck) {
		s.state = StateQuestion
		return
	}

	if len(s.againQueue) > 0 {
		s.studyDeck = s.againQueue
		s.againQueue = nil
		s.currentIndex = 0
		s.rng.Shuffle(len(s.studyDeck), func(i, j int) {
			s.studyDeck[i], s.studyDeck[j] = s.studyDeck[j], s.studyDeck[i]
		})
		s.state = StateQuestion
		return
	}

	s.state = StateEnd
	s.endReason = EndReasonCompleted
}

// RemoveCard drops the card from the borrowed collection. The study deck is
// left alone: if the card is still queued for presentation, rating it later
// resolves to ErrNoCardMatch and the rating is dropped.
func (s *Session) RemoveCard(id uuid.UUID) {
	for i, card := range s.allCards {
		if card.ID == id {
			s.allCards = append(s.allCards[:i], s.allCards[i+1:]...)
			return
		}
	}
}

// find returns the live collection entry with the given ID, or nil.
func (s *Session) find(id uuid.UUID) *domain.Card {
	for _, card := range s.allCards {
		if card.ID == id {
			return card
		}
	}
	return nil
}
