package services

import (
	"casinobot/domain/entities"
	"casinobot/domain/interfaces"
)

// DealerStandValue is the total at which the dealer stops drawing
const DealerStandValue = 17

// Dealer draws cards uniformly with replacement; there is no finite shoe
type Dealer struct {
	rng interfaces.Randomizer
}

// NewDealer creates a dealer over the given randomizer
func NewDealer(rng interfaces.Randomizer) *Dealer {
	return &Dealer{rng: rng}
}

// Draw returns one card, rank then suit
func (d *Dealer) Draw() entities.Card {
	rank := entities.Ranks[d.rng.IntN(len(entities.Ranks))]
	suit := entities.Suits[d.rng.IntN(len(entities.Suits))]
	return entities.Card{Rank: rank, Suit: suit}
}

// DrawN returns a new hand of n cards
func (d *Dealer) DrawN(n int) entities.Hand {
	hand := make(entities.Hand, 0, n)
	for i := 0; i < n; i++ {
		hand = append(hand, d.Draw())
	}
	return hand
}

// PlayOut draws into a copy of hand until it reaches DealerStandValue. Stands on all 17s.
func (d *Dealer) PlayOut(hand entities.Hand) entities.Hand {
	out := hand.Clone()
	for out.Value() < DealerStandValue {
		out = append(out, d.Draw())
	}
	return out
}

// Hit deals one card into the session's player hand
func (d *Dealer) Hit(session *entities.BlackjackSession) *entities.BlackjackHitResult {
	session.Player = append(session.Player, d.Draw())
	return &entities.BlackjackHitResult{
		Player:      session.Player.Clone(),
		PlayerValue: session.Player.Value(),
		Bust:        session.Player.IsBust(),
	}
}
