// Package board maintains the shared game table: the slot-to-card assignment
// and each player's selection tokens. All methods are safe for concurrent use
// by the dealer and every player goroutine.
package board

import (
	"sort"
	"sync"

	"github.com/kestrelworks/trio/internal/rules"
)

// none marks an empty slot or an off-table card.
const none = -1

// Token is one player selection: a slot and the card currently under it.
type Token struct {
	Slot int
	Card int
}

// Cell is a display snapshot of a single slot.
type Cell struct {
	// Card is the card id in the slot, or -1 when the slot is empty.
	Card int
	// Tokens lists the ids of players holding a token on the slot,
	// in ascending order.
	Tokens []int
}

// Table is the shared mutable board. A single RWMutex guards the card
// assignment and the token relation; the per-player token cap is enforced
// here so no player can ever hold more than featureSize tokens.
type Table struct {
	mu          sync.RWMutex
	slotCard    []int    // slot -> card id, none when empty
	cardSlot    []int    // card id -> slot, none when off table
	tokens      [][]bool // player -> slot -> token present
	tokenCounts []int    // player -> number of tokens held
	featureSize int
	rules       *rules.Rules
}

// New creates an empty table with tableSize slots for a deck of deckSize
// cards and the given number of players.
func New(tableSize, deckSize, players, featureSize int, r *rules.Rules) *Table {
	t := &Table{
		slotCard:    make([]int, tableSize),
		cardSlot:    make([]int, deckSize),
		tokens:      make([][]bool, players),
		tokenCounts: make([]int, players),
		featureSize: featureSize,
		rules:       r,
	}
	for i := range t.slotCard {
		t.slotCard[i] = none
	}
	for i := range t.cardSlot {
		t.cardSlot[i] = none
	}
	for p := range t.tokens {
		t.tokens[p] = make([]bool, tableSize)
	}
	return t
}

// Slots returns the number of slots on the table.
func (t *Table) Slots() int { return len(t.slotCard) }

// PlaceCard puts a card in a slot. The slot must be empty and the card must
// not already be on the table; a full deal cycle guarantees both.
func (t *Table) PlaceCard(card, slot int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.slotCard[slot] = card
	t.cardSlot[card] = slot
}

// RemoveCard takes the card out of a slot and clears every player token on
// it. Removing from an already-empty slot is a no-op.
func (t *Table) RemoveCard(slot int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	card := t.slotCard[slot]
	if card == none {
		return
	}
	t.slotCard[slot] = none
	t.cardSlot[card] = none
	for p := range t.tokens {
		if t.tokens[p][slot] {
			t.tokens[p][slot] = false
			t.tokenCounts[p]--
		}
	}
}

// RemoveAllCards clears the whole table, including every token, and returns
// the removed cards in ascending slot order.
func (t *Table) RemoveAllCards() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	var cards []int
	for slot, card := range t.slotCard {
		if card == none {
			continue
		}
		cards = append(cards, card)
		t.slotCard[slot] = none
		t.cardSlot[card] = none
	}
	for p := range t.tokens {
		for slot := range t.tokens[p] {
			t.tokens[p][slot] = false
		}
		t.tokenCounts[p] = 0
	}
	return cards
}

// PlaceToken puts the player's token on a slot. It returns false when the
// slot holds no card, the player already has a token there, or the player
// already holds featureSize tokens.
func (t *Table) PlaceToken(player, slot int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.slotCard[slot] == none {
		return false
	}
	if t.tokens[player][slot] {
		return false
	}
	if t.tokenCounts[player] >= t.featureSize {
		return false
	}
	t.tokens[player][slot] = true
	t.tokenCounts[player]++
	return true
}

// RemoveToken removes the player's token from a slot, reporting whether a
// token was present.
func (t *Table) RemoveToken(player, slot int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.tokens[player][slot] {
		return false
	}
	t.tokens[player][slot] = false
	t.tokenCounts[player]--
	return true
}

// TokensOf returns the player's tokens in ascending slot order.
func (t *Table) TokensOf(player int) []Token {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []Token
	for slot, held := range t.tokens[player] {
		if held {
			out = append(out, Token{Slot: slot, Card: t.slotCard[slot]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}

// TokenCount returns how many tokens the player currently holds.
func (t *Table) TokenCount(player int) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tokenCounts[player]
}

// CountCards returns the number of cards currently on the table.
func (t *Table) CountCards() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, card := range t.slotCard {
		if card != none {
			n++
		}
	}
	return n
}

// HasLegalCombination reports whether any legal combination can be formed
// from the cards currently on the table.
func (t *Table) HasLegalCombination() bool {
	t.mu.RLock()
	var cards []int
	for _, card := range t.slotCard {
		if card != none {
			cards = append(cards, card)
		}
	}
	t.mu.RUnlock()
	return t.rules.CountCombinations(cards, 1) > 0
}

// Snapshot returns a per-slot view of the table for rendering.
func (t *Table) Snapshot() []Cell {
	t.mu.RLock()
	defer t.mu.RUnlock()
	cells := make([]Cell, len(t.slotCard))
	for slot, card := range t.slotCard {
		cell := Cell{Card: card}
		for p := range t.tokens {
			if t.tokens[p][slot] {
				cell.Tokens = append(cell.Tokens, p)
			}
		}
		cells[slot] = cell
	}
	return cells
}
