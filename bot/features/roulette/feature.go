package roulette

import (
	"context"
	"fmt"
	"strings"

	"casinobot/bot/common"
	"casinobot/domain/entities"
)

// DefaultWager is used when no amount is given
const DefaultWager = 100

// Casino spins the wheel
type Casino interface {
	Roulette(ctx context.Context, player entities.Player, color string, wager int64) (*entities.RouletteResult, error)
}

type Feature struct {
	casino Casino
}

func New(casino Casino) *Feature {
	return &Feature{
		casino: casino,
	}
}

// HandleRoulette bets on a color: roulette <color> [amount]
func (f *Feature) HandleRoulette(ctx context.Context, inv *common.Invocation) (string, error) {
	color, ok := inv.PlainArg(0)
	if !ok {
		return "", entities.NewValidationError(entities.ErrInvalidColor, "no color given")
	}
	wager, err := inv.AmountArg(1, DefaultWager)
	if err != nil {
		return "", err
	}

	result, err := f.casino.Roulette(ctx, inv.Author, color, wager)
	if err != nil {
		return "", err
	}

	landed := strings.ToUpper(string(result.Result))
	var msg string
	if result.Won() {
		msg = fmt.Sprintf("🎉 **%s!** You won **%s**", landed, common.FormatMoney(result.Payout))
	} else {
		msg = fmt.Sprintf("💀 **%s**. You lost **%s**", landed, common.FormatMoney(result.Wager))
	}
	return fmt.Sprintf("%s\nBalance: **%s**", msg, common.FormatMoney(result.NewBalance)), nil
}
