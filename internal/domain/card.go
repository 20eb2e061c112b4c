package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardOriginalEmpty is returned when a card's original text is empty.
	ErrCardOriginalEmpty = errors.New("card original text cannot be empty")

	// ErrCardTranslationEmpty is returned when a card's translation is empty.
	ErrCardTranslationEmpty = errors.New("card translation cannot be empty")
)

// Default retention state for cards that are missing or carry invalid
// scheduling fields. A repaired card is immediately eligible for review.
const (
	DefaultStability  = 0.0
	DefaultDifficulty = 0.5

	// MinDifficulty and MaxDifficulty bound the difficulty proxy.
	MinDifficulty = 0.3
	MaxDifficulty = 1.0
)

// Card represents a captured vocabulary flashcard. Original holds the
// learning-language text (front face), Translation the known-language
// rendering (back face). The retention fields (Stability, Difficulty, Due)
// are owned by the spaced-repetition scheduler.
//
// Cards are identified by a UUID assigned at creation. Sessions match the
// presented card back to the live collection by this ID, never by the
// original text, since duplicate captures of the same text are legal.
type Card struct {
	ID          uuid.UUID `json:"id"`
	Original    string    `json:"original"`
	Translation string    `json:"translation"`
	SourceLang  string    `json:"source_lang"`
	Example     string    `json:"example,omitempty"`
	Due         time.Time `json:"due"`
	Stability   float64   `json:"stability"`
	Difficulty  float64   `json:"difficulty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCard creates a new Card with the given faces and source language.
// It generates a new UUID for the card ID and initializes the retention
// state so the card is due immediately.
// Returns an error if validation fails.
func NewCard(original, translation, sourceLang, example string) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		ID:          uuid.New(),
		Original:    original,
		Translation: translation,
		SourceLang:  sourceLang,
		Example:     example,
		Due:         now,
		Stability:   DefaultStability,
		Difficulty:  DefaultDifficulty,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if strings.TrimSpace(c.Original) == "" {
		return ErrCardOriginalEmpty
	}

	if strings.TrimSpace(c.Translation) == "" {
		return ErrCardTranslationEmpty
	}

	return nil
}

// IsDue reports whether the card is eligible for review at the given instant.
func (c *Card) IsDue(now time.Time) bool {
	return !c.Due.After(now)
}

// Normalize repairs missing or invalid retention fields in place and reports
// whether anything was changed. Cards from older store versions may lack
// scheduling state entirely; the repair policy makes them due now with fresh
// defaults rather than dropping them.
func (c *Card) Normalize(now time.Time) bool {
	repaired := false

	if c.Due.IsZero() {
		c.Due = now
		repaired = true
	}

	if c.Stability < 0 {
		c.Stability = DefaultStability
		repaired = true
	}

	if c.Difficulty < MinDifficulty || c.Difficulty > MaxDifficulty {
		c.Difficulty = DefaultDifficulty
		repaired = true
	}

	return repaired
}
