package application

import (
	"context"

	"casinobot/domain/entities"
	"casinobot/domain/interfaces"
	"casinobot/domain/services"
)

// Casino runs each non-blackjack command as one unit of work against the ledger
type Casino struct {
	uowFactory UnitOfWorkFactory
	rng        interfaces.Randomizer
}

// NewCasino creates the command facade
func NewCasino(uowFactory UnitOfWorkFactory, rng interfaces.Randomizer) *Casino {
	return &Casino{
		uowFactory: uowFactory,
		rng:        rng,
	}
}

func accountServiceFor(uow UnitOfWork) interfaces.AccountService {
	return services.NewAccountService(uow.AccountRepository(), uow.EventBus())
}

// Balance returns the player's account, creating it on first reference
func (c *Casino) Balance(ctx context.Context, player entities.Player) (*entities.Account, error) {
	var account *entities.Account
	err := withUnitOfWork(ctx, c.uowFactory, func(uow UnitOfWork) error {
		var err error
		account, err = accountServiceFor(uow).GetOrCreate(ctx, player.Identity, player.DisplayName)
		return err
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Work pays the player a random wage
func (c *Casino) Work(ctx context.Context, player entities.Player) (*entities.WorkResult, error) {
	var result *entities.WorkResult
	err := withUnitOfWork(ctx, c.uowFactory, func(uow UnitOfWork) error {
		var err error
		result, err = services.NewEconomyService(accountServiceFor(uow), c.rng).Work(ctx, player)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Roulette spins the wheel for a wager on a color
func (c *Casino) Roulette(ctx context.Context, player entities.Player, color string, wager int64) (*entities.RouletteResult, error) {
	chosen, err := entities.ParseRouletteColor(color)
	if err != nil {
		return nil, err
	}

	var result *entities.RouletteResult
	err = withUnitOfWork(ctx, c.uowFactory, func(uow UnitOfWork) error {
		var err error
		roulette := services.NewRouletteService(accountServiceFor(uow), uow.EventBus(), c.rng)
		result, err = roulette.Play(ctx, player, chosen, wager)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Give transfers an amount between players
func (c *Casino) Give(ctx context.Context, from, to entities.Player, amount int64) (*entities.TransferResult, error) {
	var result *entities.TransferResult
	err := withUnitOfWork(ctx, c.uowFactory, func(uow UnitOfWork) error {
		var err error
		result, err = services.NewEconomyService(accountServiceFor(uow), c.rng).Give(ctx, from, to, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Pickpocket attempts a theft
func (c *Casino) Pickpocket(ctx context.Context, actor, target entities.Player) (*entities.PickpocketResult, error) {
	var result *entities.PickpocketResult
	err := withUnitOfWork(ctx, c.uowFactory, func(uow UnitOfWork) error {
		var err error
		result, err = services.NewEconomyService(accountServiceFor(uow), c.rng).Pickpocket(ctx, actor, target)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Mint credits a target. The caller's privilege is checked by the bot before this runs.
func (c *Casino) Mint(ctx context.Context, caller, target entities.Player, amount int64) (*entities.MintResult, error) {
	var result *entities.MintResult
	err := withUnitOfWork(ctx, c.uowFactory, func(uow UnitOfWork) error {
		var err error
		result, err = services.NewEconomyService(accountServiceFor(uow), c.rng).Mint(ctx, caller, target, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
