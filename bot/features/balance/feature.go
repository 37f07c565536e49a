package balance

import (
	"context"
	"fmt"

	"casinobot/bot/common"
	"casinobot/domain/entities"
)

// Ledger reads a player's account, creating it on first reference
type Ledger interface {
	Balance(ctx context.Context, player entities.Player) (*entities.Account, error)
}

type Feature struct {
	ledger Ledger
}

func New(ledger Ledger) *Feature {
	return &Feature{
		ledger: ledger,
	}
}

// HandleBalance reports the author's balance
func (f *Feature) HandleBalance(ctx context.Context, inv *common.Invocation) (string, error) {
	account, err := f.ledger.Balance(ctx, inv.Author)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("💰 **%s**, balance: **%s**", inv.Author.DisplayName, common.FormatMoney(account.Balance)), nil
}
