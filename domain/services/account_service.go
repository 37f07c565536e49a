package services

import (
	"context"
	"fmt"

	"casinobot/config"
	"casinobot/domain/entities"
	"casinobot/domain/interfaces"
	"casinobot/events"
)

type accountService struct {
	accountRepo    interfaces.AccountRepository
	eventPublisher interfaces.EventPublisher
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo interfaces.AccountRepository, eventPublisher interfaces.EventPublisher) interfaces.AccountService {
	return &accountService{
		accountRepo:    accountRepo,
		eventPublisher: eventPublisher,
	}
}

func (s *accountService) GetOrCreate(ctx context.Context, identity, displayName string) (*entities.Account, error) {
	account, err := s.accountRepo.GetByIdentity(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if account == nil {
		startingBalance := config.Get().StartingBalance
		account, err = s.accountRepo.Create(ctx, identity, displayName, startingBalance)
		if err != nil {
			return nil, fmt.Errorf("failed to create account: %w", err)
		}

		if err := s.eventPublisher.Publish(events.AccountCreatedEvent{
			Identity:       identity,
			DisplayName:    displayName,
			InitialBalance: startingBalance,
		}); err != nil {
			return nil, fmt.Errorf("failed to publish account created event: %w", err)
		}
		return account, nil
	}

	// Display names are advisory; keep the last one seen
	if displayName != "" && account.DisplayName != displayName {
		previous := account.DisplayName
		account.DisplayName = displayName
		if err := s.accountRepo.Update(ctx, account); err != nil {
			account.DisplayName = previous
			return nil, fmt.Errorf("failed to refresh display name: %w", err)
		}
	}

	return account, nil
}

func (s *accountService) Credit(ctx context.Context, account *entities.Account, amount int64, transactionType entities.TransactionType) error {
	if amount <= 0 {
		return entities.NewValidationError(entities.ErrInvalidAmount, "credit must be positive")
	}
	return s.applyChange(ctx, account, amount, transactionType)
}

func (s *accountService) Debit(ctx context.Context, account *entities.Account, amount int64, transactionType entities.TransactionType) error {
	if amount <= 0 {
		return entities.NewValidationError(entities.ErrInvalidAmount, "debit must be positive")
	}
	if !account.CanAfford(amount) {
		return entities.ErrInsufficientFunds
	}
	return s.applyChange(ctx, account, -amount, transactionType)
}

// applyChange persists a balance delta and raises a balance change event
func (s *accountService) applyChange(ctx context.Context, account *entities.Account, delta int64, transactionType entities.TransactionType) error {
	oldBalance := account.Balance
	account.Balance = oldBalance + delta

	if err := s.accountRepo.Update(ctx, account); err != nil {
		account.Balance = oldBalance
		return fmt.Errorf("failed to update balance: %w", err)
	}

	if err := s.eventPublisher.Publish(events.BalanceChangeEvent{
		Identity:        account.Identity,
		OldBalance:      oldBalance,
		NewBalance:      account.Balance,
		ChangeAmount:    delta,
		TransactionType: transactionType,
	}); err != nil {
		return fmt.Errorf("failed to publish balance change event: %w", err)
	}

	return nil
}
