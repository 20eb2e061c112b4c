package session

import (
	"math/rand"
	"time"

	"github.com/phrazzld/lingua-api/internal/domain"
)

// BuildDeck selects the cards for one study pass: every card due at or
// before now, uniformly shuffled, truncated to limit. The input slice is not
// reordered; the deck is a fresh slice sharing the card pointers. An empty
// input or no due cards yields an empty deck, not an error.
//
// The random source is injected so tests can assert exact orderings with a
// seeded generator. rand.Shuffle performs an unbiased Fisher-Yates shuffle.
func BuildDeck(cards []*domain.Card, now time.Time, limit int, rng *rand.Rand) []*domain.Card {
	deck := make([]*domain.Card, 0, len(cards))
	for _, card := range cards {
		if card.IsDue(now) {
			deck = append(deck, card)
		}
	}

	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	if limit >= 0 && len(deck) > limit {
		deck = deck[:limit]
	}

	return deck
}
