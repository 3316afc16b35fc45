package game

import "strings"

const (
	maxSum = 21
	minSum = 1
)

// Hand is an append-only sequence of cards.
type Hand struct {
	cards []Card
	sum   int
}

func newHand(first Card) Hand {
	return Hand{cards: []Card{first}, sum: int(first)}
}

func (h *Hand) add(c Card) {
	h.cards = append(h.cards, c)
	h.sum += int(c)
}

// Sum returns the arithmetic sum of the hand.
func (h Hand) Sum() int {
	return h.sum
}

// First returns the opening card, or 0 for an empty hand.
func (h Hand) First() Card {
	if len(h.cards) == 0 {
		return 0
	}
	return h.cards[0]
}

// Len returns the number of cards held.
func (h Hand) Len() int {
	return len(h.cards)
}

// Cards returns a copy of the cards in draw order.
func (h Hand) Cards() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// IsBust reports whether the sum has left [1, 21].
func (h Hand) IsBust() bool {
	return IsBust(h.sum)
}

func (h Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// IsBust reports whether a hand sum has left [1, 21].
func IsBust(sum int) bool {
	return sum > maxSum || sum < minSum
}
