// Package study orchestrates the study session: it loads the card
// collection, drives the session state machine, applies the scheduler's
// results, and persists updated cards and the study streak.
package study

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingua-api/internal/domain"
	"github.com/phrazzld/lingua-api/internal/session"
)

// SessionView is the presentation-layer view of the running session.
type SessionView struct {
	State     session.State
	EndReason session.EndReason
	Card      *domain.Card
	Progress  int
}

// StudyService exposes the study session, streak, and card collection to
// the presentation layer.
type StudyService interface {
	// StartSession builds a fresh session over the stored collection: due
	// cards are selected, shuffled, and capped at the configured daily
	// limit. Starting while a session is running restarts it.
	StartSession(ctx context.Context, now time.Time) (SessionView, error)

	// CurrentSession returns the view of the running session.
	// Returns ErrSessionNotStarted if no session has been started.
	CurrentSession(ctx context.Context) (SessionView, error)

	// Reveal flips the presented card from question to answer.
	Reveal(ctx context.Context) (SessionView, error)

	// Rate applies a rating to the presented card, persists the card's new
	// retention state and the streak update, and advances presentation.
	// The returned skipped flag is true when the presented card had been
	// deleted mid-session: the rating is dropped but presentation still
	// advances.
	Rate(ctx context.Context, rating domain.Rating, now time.Time) (view SessionView, skipped bool, err error)

	// Streak returns the effective streak view at the given instant without
	// mutating stored history.
	Streak(ctx context.Context, now time.Time) (domain.StudyHistory, error)

	// CreateCard captures a new card into the collection, due immediately.
	CreateCard(ctx context.Context, original, translation, sourceLang, example string) (*domain.Card, error)

	// ListCards returns the full stored collection.
	ListCards(ctx context.Context) ([]*domain.Card, error)

	// GetCard returns a single card by its ID.
	// Returns store.ErrCardNotFound if the card does not exist.
	GetCard(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// Settings returns the stored study settings, or the documented
	// defaults when none have been saved.
	Settings(ctx context.Context) (domain.StudySettings, error)

	// UpdateSettings validates and persists the study settings. The new
	// daily limit applies from the next started session; a running session's
	// deck is not re-opened.
	UpdateSettings(ctx context.Context, settings domain.StudySettings) (domain.StudySettings, error)

	// DeleteCard removes a card from the collection. A running session
	// forgets the card; if it was still queued, rating it later is dropped
	// as a recoverable skip.
	DeleteCard(ctx context.Context, id uuid.UUID) error
}

// Common error types for StudyService
var (
	// ErrSessionNotStarted indicates that no study session is running.
	ErrSessionNotStarted = errors.New("study session not started")
)

// ServiceError wraps errors from the study service with additional context.
// This allows consumers to differentiate between different types of service
// errors using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "start_session", "rate")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError returns a new ServiceError for the given operation.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
