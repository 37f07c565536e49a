package blackjack

import (
	"context"
	"errors"
	"fmt"

	"casinobot/bot/common"
	"casinobot/domain/entities"
	"casinobot/domain/interfaces"
)

// DefaultWager is used when no amount is given
const DefaultWager = 100

// MsgStandWithoutGame answers a stand with no open game
const MsgStandWithoutGame = "Standing on nothing."

// Table holds the open blackjack sessions
type Table interface {
	Start(ctx context.Context, player entities.Player, wager int64) (*entities.BlackjackView, error)
	Hit(ctx context.Context, player entities.Player) (*entities.BlackjackHitResult, error)
	Stand(ctx context.Context, player entities.Player) (*entities.BlackjackResult, error)
}

type Feature struct {
	table  Table
	rng    interfaces.Randomizer
	prefix string
}

func New(table Table, rng interfaces.Randomizer, prefix string) *Feature {
	return &Feature{
		table:  table,
		rng:    rng,
		prefix: prefix,
	}
}

// HandleBlackjack opens a hand: blackjack [amount]
func (f *Feature) HandleBlackjack(ctx context.Context, inv *common.Invocation) (string, error) {
	wager, err := inv.AmountArg(0, DefaultWager)
	if err != nil {
		return "", err
	}

	view, err := f.table.Start(ctx, inv.Author, wager)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("🃏 **BLACKJACK**\n%s\n\nYour hand %s\nDealer shows: %s\n\n`%shit` or `%sstand`",
		common.Pick(f.rng, common.BlackjackSass),
		common.FormatHand(view.Player),
		view.DealerShows,
		f.prefix, f.prefix,
	), nil
}

// HandleHit draws a card
func (f *Feature) HandleHit(ctx context.Context, inv *common.Invocation) (string, error) {
	result, err := f.table.Hit(ctx, inv.Author)
	if err != nil {
		return "", err
	}

	if result.Bust {
		return fmt.Sprintf("💥 **BUST (%d)**\n%s", result.PlayerValue, result.Player), nil
	}
	return fmt.Sprintf("🃏 Hand %s", common.FormatHand(result.Player)), nil
}

// HandleStand lets the dealer play and settles the hand
func (f *Feature) HandleStand(ctx context.Context, inv *common.Invocation) (string, error) {
	result, err := f.table.Stand(ctx, inv.Author)
	if errors.Is(err, entities.ErrNoActiveGame) {
		return "", common.NewUserError(MsgStandWithoutGame, "stand without game")
	}
	if err != nil {
		return "", err
	}

	var headline string
	switch result.Outcome {
	case entities.BlackjackOutcomeWin:
		headline = "🎉 YOU WIN"
	case entities.BlackjackOutcomePush:
		headline = "😐 PUSH"
	default:
		headline = "💀 DEALER WINS"
	}

	return fmt.Sprintf("%s\n\nYour hand %s\nDealer %s\n\nBalance: **%s**",
		headline,
		common.FormatHand(result.Player),
		common.FormatHand(result.Dealer),
		common.FormatMoney(result.NewBalance),
	), nil
}
