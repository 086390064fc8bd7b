package board

import (
	"sync"
	"testing"

	"github.com/kestrelworks/trio/internal/rules"
)

func newTable(t *testing.T, players int) *Table {
	t.Helper()
	r, err := rules.New(81, 3)
	if err != nil {
		t.Fatalf("rules.New: %v", err)
	}
	return New(12, 81, players, 3, r)
}

func TestPlaceAndRemoveCard(t *testing.T) {
	tb := newTable(t, 1)
	tb.PlaceCard(7, 3)
	if got := tb.CountCards(); got != 1 {
		t.Fatalf("CountCards = %d, want 1", got)
	}
	tb.RemoveCard(3)
	if got := tb.CountCards(); got != 0 {
		t.Fatalf("CountCards after remove = %d, want 0", got)
	}
	// Removing again is a no-op.
	tb.RemoveCard(3)
}

func TestTokenCap(t *testing.T) {
	tb := newTable(t, 1)
	for slot := 0; slot < 5; slot++ {
		tb.PlaceCard(slot, slot)
	}
	for slot := 0; slot < 3; slot++ {
		if !tb.PlaceToken(0, slot) {
			t.Fatalf("PlaceToken(0, %d) = false, want true", slot)
		}
	}
	if tb.PlaceToken(0, 3) {
		t.Error("fourth token should be rejected")
	}
	if got := tb.TokenCount(0); got != 3 {
		t.Errorf("TokenCount = %d, want 3", got)
	}
}

func TestPlaceTokenOnEmptySlot(t *testing.T) {
	tb := newTable(t, 1)
	if tb.PlaceToken(0, 0) {
		t.Error("token on empty slot should be rejected")
	}
	tb.PlaceCard(1, 0)
	if !tb.PlaceToken(0, 0) {
		t.Error("token on occupied slot should succeed")
	}
	if tb.PlaceToken(0, 0) {
		t.Error("duplicate token on same slot should be rejected")
	}
}

func TestRemoveCardClearsTokens(t *testing.T) {
	tb := newTable(t, 2)
	tb.PlaceCard(10, 4)
	tb.PlaceToken(0, 4)
	tb.PlaceToken(1, 4)
	tb.RemoveCard(4)
	if got := tb.TokenCount(0); got != 0 {
		t.Errorf("player 0 TokenCount = %d, want 0", got)
	}
	if got := tb.TokenCount(1); got != 0 {
		t.Errorf("player 1 TokenCount = %d, want 0", got)
	}
}

func TestTokensOfOrdering(t *testing.T) {
	tb := newTable(t, 1)
	for _, slot := range []int{9, 2, 6} {
		tb.PlaceCard(slot+20, slot)
		tb.PlaceToken(0, slot)
	}
	tokens := tb.TokensOf(0)
	if len(tokens) != 3 {
		t.Fatalf("TokensOf returned %d tokens, want 3", len(tokens))
	}
	wantSlots := []int{2, 6, 9}
	for i, tok := range tokens {
		if tok.Slot != wantSlots[i] {
			t.Errorf("tokens[%d].Slot = %d, want %d", i, tok.Slot, wantSlots[i])
		}
		if tok.Card != tok.Slot+20 {
			t.Errorf("tokens[%d].Card = %d, want %d", i, tok.Card, tok.Slot+20)
		}
	}
}

func TestRemoveAllCardsConservation(t *testing.T) {
	tb := newTable(t, 1)
	placed := []int{3, 14, 27, 55}
	for i, card := range placed {
		tb.PlaceCard(card, i)
	}
	tb.PlaceToken(0, 1)
	cards := tb.RemoveAllCards()
	if len(cards) != len(placed) {
		t.Fatalf("RemoveAllCards returned %d cards, want %d", len(cards), len(placed))
	}
	seen := make(map[int]bool)
	for _, c := range cards {
		if seen[c] {
			t.Errorf("card %d returned twice", c)
		}
		seen[c] = true
	}
	for _, c := range placed {
		if !seen[c] {
			t.Errorf("card %d lost", c)
		}
	}
	if got := tb.TokenCount(0); got != 0 {
		t.Errorf("TokenCount after clear = %d, want 0", got)
	}
	if got := tb.CountCards(); got != 0 {
		t.Errorf("CountCards after clear = %d, want 0", got)
	}
}

func TestHasLegalCombination(t *testing.T) {
	tb := newTable(t, 1)
	if tb.HasLegalCombination() {
		t.Error("empty table should have no legal combination")
	}
	// 0, 1, 2 form a legal combination.
	tb.PlaceCard(0, 0)
	tb.PlaceCard(1, 1)
	if tb.HasLegalCombination() {
		t.Error("two cards cannot form a combination")
	}
	tb.PlaceCard(2, 2)
	if !tb.HasLegalCombination() {
		t.Error("0,1,2 should form a legal combination")
	}
}

func TestSnapshot(t *testing.T) {
	tb := newTable(t, 2)
	tb.PlaceCard(42, 5)
	tb.PlaceToken(0, 5)
	tb.PlaceToken(1, 5)
	cells := tb.Snapshot()
	if len(cells) != 12 {
		t.Fatalf("snapshot has %d cells, want 12", len(cells))
	}
	if cells[5].Card != 42 {
		t.Errorf("cells[5].Card = %d, want 42", cells[5].Card)
	}
	if len(cells[5].Tokens) != 2 || cells[5].Tokens[0] != 0 || cells[5].Tokens[1] != 1 {
		t.Errorf("cells[5].Tokens = %v, want [0 1]", cells[5].Tokens)
	}
	if cells[0].Card != -1 {
		t.Errorf("cells[0].Card = %d, want -1", cells[0].Card)
	}
}

func TestConcurrentToggles(t *testing.T) {
	tb := newTable(t, 4)
	for slot := 0; slot < 12; slot++ {
		tb.PlaceCard(slot, slot)
	}
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				slot := i % 12
				if !tb.RemoveToken(p, slot) {
					tb.PlaceToken(p, slot)
				}
			}
		}(p)
	}
	wg.Wait()
	for p := 0; p < 4; p++ {
		if got := tb.TokenCount(p); got > 3 {
			t.Errorf("player %d TokenCount = %d, exceeds cap", p, got)
		}
	}
}
