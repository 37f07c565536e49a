package economy

import (
	"context"
	"errors"
	"fmt"

	"casinobot/bot/common"
	"casinobot/domain/entities"
)

// Casino is the slice of the command facade the economy commands use
type Casino interface {
	Work(ctx context.Context, player entities.Player) (*entities.WorkResult, error)
	Give(ctx context.Context, from, to entities.Player, amount int64) (*entities.TransferResult, error)
	Pickpocket(ctx context.Context, actor, target entities.Player) (*entities.PickpocketResult, error)
	Mint(ctx context.Context, caller, target entities.Player, amount int64) (*entities.MintResult, error)
}

// User messages specific to economy commands
const (
	MsgGiveUsage        = "Usage: `%sgive @user amount`"
	MsgMintUsage        = "Usage: `%sadminAbuse @user amount`"
	MsgPickpocketUsage  = "Usage: `%spickpocket @user`"
	MsgGiveNegative     = "Giving negative money is called stealing."
	MsgGiveSelf         = "Paying yourself is just moving money between pockets."
	MsgPickpocketSelf   = "Stealing from yourself is a cry for help."
	MsgPickpocketCaught = "You got caught. Everyone judges you."
)

type Feature struct {
	casino Casino
	prefix string
}

func New(casino Casino, prefix string) *Feature {
	return &Feature{
		casino: casino,
		prefix: prefix,
	}
}

// HandleWork pays the author a random wage
func (f *Feature) HandleWork(ctx context.Context, inv *common.Invocation) (string, error) {
	result, err := f.casino.Work(ctx, inv.Author)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🛠 You worked and earned **%s**.", common.FormatMoney(result.Earned)), nil
}

// HandleGive transfers an amount to the mentioned player
func (f *Feature) HandleGive(ctx context.Context, inv *common.Invocation) (string, error) {
	target, ok := inv.Target()
	if _, hasAmount := inv.PlainArg(0); !ok || !hasAmount {
		return "", common.NewUserError(fmt.Sprintf(MsgGiveUsage, f.prefix), "give usage")
	}
	amount, err := inv.AmountArg(0, 0)
	if err != nil {
		return "", err
	}

	result, err := f.casino.Give(ctx, inv.Author, target, amount)
	switch {
	case errors.Is(err, entities.ErrInvalidAmount):
		return "", common.NewUserError(MsgGiveNegative, "non-positive transfer")
	case errors.Is(err, entities.ErrSelfTarget):
		return "", common.NewUserError(MsgGiveSelf, "self transfer")
	case err != nil:
		return "", err
	}

	return fmt.Sprintf("💸 **TRANSFER COMPLETE**\n%s → %s\nAmount: **%s**",
		inv.Author.DisplayName, target.DisplayName, common.FormatMoney(result.Amount)), nil
}

// HandlePickpocket attempts to steal from the mentioned player
func (f *Feature) HandlePickpocket(ctx context.Context, inv *common.Invocation) (string, error) {
	target, ok := inv.Target()
	if !ok {
		return "", common.NewUserError(fmt.Sprintf(MsgPickpocketUsage, f.prefix), "pickpocket usage")
	}

	result, err := f.casino.Pickpocket(ctx, inv.Author, target)
	if errors.Is(err, entities.ErrSelfTarget) {
		return "", common.NewUserError(MsgPickpocketSelf, "self pickpocket")
	}
	if err != nil {
		return "", err
	}

	if !result.Success {
		return MsgPickpocketCaught, nil
	}
	return fmt.Sprintf("You stole **%s** from %s.", common.FormatMoney(result.Stolen), target.DisplayName), nil
}

// HandleMint credits the mentioned player out of thin air. The role check happens before this runs.
func (f *Feature) HandleMint(ctx context.Context, inv *common.Invocation) (string, error) {
	target, ok := inv.Target()
	if _, hasAmount := inv.PlainArg(0); !ok || !hasAmount {
		return "", common.NewUserError(fmt.Sprintf(MsgMintUsage, f.prefix), "mint usage")
	}
	amount, err := inv.AmountArg(0, 0)
	if err != nil {
		return "", err
	}

	result, err := f.casino.Mint(ctx, inv.Author, target, amount)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("💸 **ADMIN ABUSE SUCCESSFUL**\n%s blessed %s\nAmount: **%s**",
		inv.Author.DisplayName, target.DisplayName, common.FormatMoney(result.Amount)), nil
}
