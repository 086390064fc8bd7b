// Package rules implements the combination legality predicate for the game.
//
// Every card id encodes a fixed number of attributes, each attribute taking
// one of featureSize values (the id's base-featureSize digits). A combination
// of featureSize cards is legal when, for every attribute, the cards are
// either all equal or all distinct.
package rules

import "fmt"

// Rules evaluates card combinations for a fixed deck geometry.
// A Rules value is immutable and safe for concurrent use.
type Rules struct {
	featureSize int
	attributes  int
}

// New creates a Rules for a deck of deckSize cards whose ids are read as
// base-featureSize digit strings. The attribute count is the smallest number
// of digits that can represent every card in the deck.
func New(deckSize, featureSize int) (*Rules, error) {
	if featureSize < 2 {
		return nil, fmt.Errorf("rules: feature size must be at least 2, got %d", featureSize)
	}
	if deckSize < 1 {
		return nil, fmt.Errorf("rules: deck size must be positive, got %d", deckSize)
	}
	attrs := 1
	for span := featureSize; span < deckSize; span *= featureSize {
		attrs++
	}
	return &Rules{featureSize: featureSize, attributes: attrs}, nil
}

// FeatureSize returns the number of cards in a legal combination.
func (r *Rules) FeatureSize() int { return r.featureSize }

// Attributes returns the number of attributes encoded in each card id.
func (r *Rules) Attributes() int { return r.attributes }

// Valid reports whether cards form a legal combination. Exactly featureSize
// cards are required; any other count is illegal by definition.
func (r *Rules) Valid(cards []int) bool {
	if len(cards) != r.featureSize {
		return false
	}
	digits := make([]int, len(cards))
	div := 1
	for a := 0; a < r.attributes; a++ {
		for i, card := range cards {
			digits[i] = (card / div) % r.featureSize
		}
		if !allEqual(digits) && !allDistinct(digits) {
			return false
		}
		div *= r.featureSize
	}
	return true
}

// CountCombinations counts legal combinations among the given cards,
// stopping early once limit is reached. A non-positive limit counts
// exhaustively. Passing limit=1 answers "does any legal combination exist".
func (r *Rules) CountCombinations(cards []int, limit int) int {
	combo := make([]int, 0, r.featureSize)
	count := 0
	var walk func(start int)
	walk = func(start int) {
		if limit > 0 && count >= limit {
			return
		}
		if len(combo) == r.featureSize {
			if r.Valid(combo) {
				count++
			}
			return
		}
		// Not enough cards left to complete the combination.
		need := r.featureSize - len(combo)
		for i := start; i <= len(cards)-need; i++ {
			combo = append(combo, cards[i])
			walk(i + 1)
			combo = combo[:len(combo)-1]
			if limit > 0 && count >= limit {
				return
			}
		}
	}
	walk(0)
	return count
}

// NewDeck returns the ordered card ids 0..size-1.
func NewDeck(size int) []int {
	deck := make([]int, size)
	for i := range deck {
		deck[i] = i
	}
	return deck
}

func allEqual(vals []int) bool {
	for i := 1; i < len(vals); i++ {
		if vals[i] != vals[0] {
			return false
		}
	}
	return true
}

func allDistinct(vals []int) bool {
	for i := 0; i < len(vals); i++ {
		for j := i + 1; j < len(vals); j++ {
			if vals[i] == vals[j] {
				return false
			}
		}
	}
	return true
}
