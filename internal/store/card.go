package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/lingua-api/internal/domain"
)

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// Create saves a new card to the store.
	// The card must be valid according to domain validation rules.
	// Returns ErrDuplicate if a card with the same ID already exists.
	Create(ctx context.Context, card *domain.Card) error

	// GetAll retrieves the full card collection, ordered by creation time.
	// Returns an empty slice when no cards exist.
	GetAll(ctx context.Context) ([]*domain.Card, error)

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// Update persists a card's current field values, including its
	// retention state. Returns ErrCardNotFound if the card does not exist.
	Update(ctx context.Context, card *domain.Card) error

	// Delete removes a card from the store by its ID.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CardStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller,
	// typically through RunInTransaction.
	WithTx(tx *sql.Tx) CardStore
}

// SettingsStore defines the interface for study settings persistence.
type SettingsStore interface {
	// Get retrieves the stored study settings. When no settings row exists
	// yet, the documented defaults are returned, not an error.
	Get(ctx context.Context) (domain.StudySettings, error)

	// Save persists the study settings, creating the row if needed.
	Save(ctx context.Context, settings domain.StudySettings) error
}

// HistoryStore defines the interface for study history persistence.
type HistoryStore interface {
	// Get retrieves the stored study history. When no history row exists
	// yet, an empty history is returned, not an error.
	Get(ctx context.Context) (domain.StudyHistory, error)

	// Save persists the study history, creating the row if needed.
	Save(ctx context.Context, history domain.StudyHistory) error

	// WithTx returns a new HistoryStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) HistoryStore
}
