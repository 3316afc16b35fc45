package game

import "fmt"

// Source supplies uniformly distributed integers in [0, n).
// *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Color is the colour of a card.
type Color int

const (
	Black Color = iota
	Red
)

// String returns the string representation of a colour
func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case Red:
		return "red"
	default:
		return "?"
	}
}

const (
	minMagnitude = 1
	maxMagnitude = 10
)

// Card is a signed card value. Black cards are positive, red cards negative.
type Card int

// Color returns the colour encoded in the card's sign.
func (c Card) Color() Color {
	if c < 0 {
		return Red
	}
	return Black
}

// Magnitude returns the absolute face value, 1 to 10.
func (c Card) Magnitude() int {
	if c < 0 {
		return int(-c)
	}
	return int(c)
}

// String returns the card as colour initial plus magnitude, e.g. "B7" or "R3".
func (c Card) String() string {
	prefix := "B"
	if c.Color() == Red {
		prefix = "R"
	}
	return fmt.Sprintf("%s%d", prefix, c.Magnitude())
}

// DrawCard draws a card from the infinite deck: a uniform magnitude in 1..10
// and a colour that is red on 1 out of {0, 1, 2}.
func DrawCard(src Source) Card {
	m := drawMagnitude(src)
	if src.IntN(3) == 1 {
		return Card(-m)
	}
	return Card(m)
}

// DrawBlack draws an opening card, which is always black.
func DrawBlack(src Source) Card {
	return Card(drawMagnitude(src))
}

func drawMagnitude(src Source) int {
	return src.IntN(maxMagnitude-minMagnitude+1) + minMagnitude
}
