package interfaces

import (
	"context"

	"casinobot/domain/entities"
)

// AccountService defines the interface for ledger balance operations
type AccountService interface {
	// GetOrCreate retrieves an account, creating it with the starting balance on first reference.
	// The stored display name is refreshed when it changed.
	GetOrCreate(ctx context.Context, identity, displayName string) (*entities.Account, error)

	// Credit adds a positive amount to the account
	Credit(ctx context.Context, account *entities.Account, amount int64, transactionType entities.TransactionType) error

	// Debit removes a positive amount that the account can afford
	Debit(ctx context.Context, account *entities.Account, amount int64, transactionType entities.TransactionType) error
}

// RouletteService defines the interface for roulette spins
type RouletteService interface {
	// Play validates, debits the wager once, spins and credits any payout
	Play(ctx context.Context, player entities.Player, color entities.RouletteColor, wager int64) (*entities.RouletteResult, error)
}

// BlackjackService defines the interface for blackjack rules against the ledger
type BlackjackService interface {
	// Open debits the wager and deals the opening hands
	Open(ctx context.Context, player entities.Player, wager int64) (*entities.BlackjackSession, *entities.Account, error)

	// Settle plays the dealer out and credits the payout
	Settle(ctx context.Context, session *entities.BlackjackSession, displayName string) (*entities.BlackjackResult, error)
}

// EconomyService defines the interface for non-game balance commands
type EconomyService interface {
	// Work credits a random wage
	Work(ctx context.Context, player entities.Player) (*entities.WorkResult, error)

	// Give moves an amount from one player to another
	Give(ctx context.Context, from, to entities.Player, amount int64) (*entities.TransferResult, error)

	// Pickpocket attempts to steal from a target
	Pickpocket(ctx context.Context, actor, target entities.Player) (*entities.PickpocketResult, error)

	// Mint credits a target out of thin air. Callers check the privilege.
	Mint(ctx context.Context, caller, target entities.Player, amount int64) (*entities.MintResult, error)
}
