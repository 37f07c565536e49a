package services

import (
	"context"
	"sort"

	"casinobot/domain/entities"
	"casinobot/domain/interfaces"
)

// Economy tuning
const (
	WorkMinWage                = 50
	WorkMaxWage                = 100
	PickpocketSuccessChance    = 0.3
	PickpocketMinTargetBalance = 100
	PickpocketMinSteal         = 100
	PickpocketMaxSteal         = 200
)

type economyService struct {
	accountService interfaces.AccountService
	rng            interfaces.Randomizer
}

// NewEconomyService creates a new economy service
func NewEconomyService(accountService interfaces.AccountService, rng interfaces.Randomizer) interfaces.EconomyService {
	return &economyService{
		accountService: accountService,
		rng:            rng,
	}
}

func (s *economyService) Work(ctx context.Context, player entities.Player) (*entities.WorkResult, error) {
	account, err := s.accountService.GetOrCreate(ctx, player.Identity, player.DisplayName)
	if err != nil {
		return nil, err
	}

	earned := int64(s.rng.IntN(WorkMaxWage-WorkMinWage+1) + WorkMinWage)
	if err := s.accountService.Credit(ctx, account, earned, entities.TransactionTypeWork); err != nil {
		return nil, err
	}

	return &entities.WorkResult{Earned: earned, NewBalance: account.Balance}, nil
}

func (s *economyService) Give(ctx context.Context, from, to entities.Player, amount int64) (*entities.TransferResult, error) {
	if amount <= 0 {
		return nil, entities.NewValidationError(entities.ErrInvalidAmount, "transfer amount must be positive")
	}
	if to.Bot {
		return nil, entities.NewValidationError(entities.ErrBotTarget, to.DisplayName)
	}
	if from.Identity == to.Identity {
		return nil, entities.NewValidationError(entities.ErrSelfTarget, "cannot give to yourself")
	}

	accounts, err := s.getOrCreateInOrder(ctx, from, to)
	if err != nil {
		return nil, err
	}
	sender, recipient := accounts[from.Identity], accounts[to.Identity]

	if !sender.CanAfford(amount) {
		return nil, entities.ErrInsufficientFunds
	}

	if err := s.accountService.Debit(ctx, sender, amount, entities.TransactionTypeTransferOut); err != nil {
		return nil, err
	}
	if err := s.accountService.Credit(ctx, recipient, amount, entities.TransactionTypeTransferIn); err != nil {
		return nil, err
	}

	return &entities.TransferResult{
		Amount:           amount,
		FromBalanceAfter: sender.Balance,
		ToBalanceAfter:   recipient.Balance,
	}, nil
}

func (s *economyService) Pickpocket(ctx context.Context, actor, target entities.Player) (*entities.PickpocketResult, error) {
	if actor.Identity == target.Identity {
		return nil, entities.NewValidationError(entities.ErrSelfTarget, "cannot pickpocket yourself")
	}
	if target.Bot {
		return nil, entities.NewValidationError(entities.ErrBotTarget, target.DisplayName)
	}

	accounts, err := s.getOrCreateInOrder(ctx, actor, target)
	if err != nil {
		return nil, err
	}
	thief, victim := accounts[actor.Identity], accounts[target.Identity]

	if s.rng.Float64() >= PickpocketSuccessChance || victim.Balance < PickpocketMinTargetBalance {
		return &entities.PickpocketResult{Success: false}, nil
	}

	stolen := int64(s.rng.IntN(PickpocketMaxSteal-PickpocketMinSteal+1) + PickpocketMinSteal)
	if stolen > victim.Balance {
		stolen = victim.Balance
	}

	if err := s.accountService.Debit(ctx, victim, stolen, entities.TransactionTypePickpocketLoss); err != nil {
		return nil, err
	}
	if err := s.accountService.Credit(ctx, thief, stolen, entities.TransactionTypePickpocketGain); err != nil {
		return nil, err
	}

	return &entities.PickpocketResult{Success: true, Stolen: stolen}, nil
}

func (s *economyService) Mint(ctx context.Context, caller, target entities.Player, amount int64) (*entities.MintResult, error) {
	if target.Bot {
		return nil, entities.NewValidationError(entities.ErrBotTarget, target.DisplayName)
	}
	if amount <= 0 {
		return nil, entities.NewValidationError(entities.ErrInvalidAmount, "mint amount must be positive")
	}

	accounts, err := s.getOrCreateInOrder(ctx, caller, target)
	if err != nil {
		return nil, err
	}
	recipient := accounts[target.Identity]

	if err := s.accountService.Credit(ctx, recipient, amount, entities.TransactionTypeMint); err != nil {
		return nil, err
	}

	return &entities.MintResult{Amount: amount, TargetBalance: recipient.Balance}, nil
}

// getOrCreateInOrder touches accounts in ascending identity order so row locks
// are always taken in the same order. Duplicate identities are fetched once.
func (s *economyService) getOrCreateInOrder(ctx context.Context, players ...entities.Player) (map[string]*entities.Account, error) {
	ordered := make([]entities.Player, len(players))
	copy(ordered, players)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Identity < ordered[j].Identity
	})

	accounts := make(map[string]*entities.Account, len(ordered))
	for _, p := range ordered {
		if _, ok := accounts[p.Identity]; ok {
			continue
		}
		account, err := s.accountService.GetOrCreate(ctx, p.Identity, p.DisplayName)
		if err != nil {
			return nil, err
		}
		accounts[p.Identity] = account
	}
	return accounts, nil
}
