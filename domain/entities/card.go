package entities

import (
	"strconv"
	"strings"
)

// Ranks in display order. Index 0 is the ace.
var Ranks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// Suits a card may carry
var Suits = []string{"♠️", "♥️", "♦️", "♣️"}

// Card is an immutable rank/suit pair
type Card struct {
	Rank string
	Suit string
}

// String renders the card as rank followed by suit
func (c Card) String() string {
	return c.Rank + c.Suit
}

// IsAce reports whether the card is an ace
func (c Card) IsAce() bool {
	return c.Rank == "A"
}

// points returns the card's hard value with aces counted as 11
func (c Card) points() int {
	switch c.Rank {
	case "A":
		return 11
	case "J", "Q", "K":
		return 10
	}
	n, err := strconv.Atoi(c.Rank)
	if err != nil {
		return 0
	}
	return n
}

// Hand is an ordered sequence of cards
type Hand []Card

// Value sums the hand, counting aces as 1 one at a time while the total is over 21
func (h Hand) Value() int {
	value := 0
	aces := 0
	for _, c := range h {
		value += c.points()
		if c.IsAce() {
			aces++
		}
	}

	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}
	return value
}

// IsBust reports whether the hand is over 21
func (h Hand) IsBust() bool {
	return h.Value() > 21
}

// String renders the hand as space separated cards in order
func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Clone returns a copy that can be appended to without touching h
func (h Hand) Clone() Hand {
	out := make(Hand, len(h))
	copy(out, h)
	return out
}
