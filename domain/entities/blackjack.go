package entities

import "time"

// BlackjackSession is one player's open game. It lives in memory only.
type BlackjackSession struct {
	Identity  string
	Wager     int64 // Already debited when the session opened
	Player    Hand
	Dealer    Hand
	StartedAt time.Time
}

// DealerUpCard is the only dealer card shown while the game is open
func (s *BlackjackSession) DealerUpCard() Card {
	return s.Dealer[0]
}

// BlackjackOutcome is how a finished game ended
type BlackjackOutcome string

const (
	BlackjackOutcomeWin  BlackjackOutcome = "win"
	BlackjackOutcomePush BlackjackOutcome = "push"
	BlackjackOutcomeLoss BlackjackOutcome = "loss"
	BlackjackOutcomeBust BlackjackOutcome = "bust"
)

// PayoutMultiplier is the multiple of the wager credited back for an outcome
func (o BlackjackOutcome) PayoutMultiplier() int64 {
	switch o {
	case BlackjackOutcomeWin:
		return 2
	case BlackjackOutcomePush:
		return 1
	default:
		return 0
	}
}

// BlackjackView is the visible state of an open game
type BlackjackView struct {
	Wager       int64
	Player      Hand
	PlayerValue int
	DealerShows Card
	Balance     int64
}

// BlackjackHitResult is the state after drawing a card
type BlackjackHitResult struct {
	Player      Hand
	PlayerValue int
	Bust        bool
}

// BlackjackResult is a settled game
type BlackjackResult struct {
	Outcome     BlackjackOutcome
	Wager       int64
	Payout      int64
	Player      Hand
	PlayerValue int
	Dealer      Hand
	DealerValue int
	NewBalance  int64
}

// NetChange is the ledger delta of the whole game, counting the opening debit
func (r *BlackjackResult) NetChange() int64 {
	return r.Payout - r.Wager
}
