package engine

import "slices"

// NewDeck returns the 105-card deck in value order, unshuffled.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for v := MinValue; v <= MaxValue; v++ {
		for i := 0; i < CopiesPerValue; i++ {
			deck = append(deck, v)
		}
	}
	return deck
}

// LegalMoves returns the cards of hand that may be taken to the field.
//   - Empty field: every card opens the trick.
//   - Otherwise every card >= field is legal.
//   - If none beats the field, only the lowest card is legal and it must be
//     discarded (see MustDiscard).
//
// Duplicates in hand are kept. The result is sorted ascending.
func LegalMoves(hand []Card, field Card) []Card {
	if len(hand) == 0 {
		return nil
	}
	sorted := slices.Clone(hand)
	slices.Sort(sorted)
	if field == NoCard {
		return sorted
	}
	i, _ := slices.BinarySearch(sorted, field)
	if i < len(sorted) {
		return sorted[i:]
	}
	return sorted[:1]
}

// MustDiscard reports whether the holder of hand is forced to shed its lowest
// card because nothing in it can beat the field.
func MustDiscard(hand []Card, field Card) bool {
	if field == NoCard || len(hand) == 0 {
		return false
	}
	return slices.Max(hand) < field
}

// DistinctValues returns the distinct values in cards, ascending.
func DistinctValues(cards []Card) []Card {
	out := slices.Clone(cards)
	slices.Sort(out)
	return slices.Compact(out)
}

// removeCard deletes one copy of c from a sorted hand, returning the new hand
// and whether a copy was found. The input slice is not modified.
func removeCard(hand []Card, c Card) ([]Card, bool) {
	i := slices.Index(hand, c)
	if i < 0 {
		return hand, false
	}
	out := make([]Card, 0, len(hand)-1)
	out = append(out, hand[:i]...)
	return append(out, hand[i+1:]...), true
}
