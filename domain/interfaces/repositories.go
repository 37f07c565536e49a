package interfaces

import (
	"context"

	"casinobot/domain/entities"
	"casinobot/events"
)

// AccountRepository defines the interface for ledger row access inside a unit of work
type AccountRepository interface {
	// GetByIdentity retrieves an account and locks it for the rest of the unit of work.
	// Returns nil, nil when no row exists.
	GetByIdentity(ctx context.Context, identity string) (*entities.Account, error)

	// Create inserts a new account with the initial balance
	Create(ctx context.Context, identity, displayName string, initialBalance int64) (*entities.Account, error)

	// Update persists balance and display name. Fails with ErrStaleWrite when the
	// stored version no longer matches account.Version, and bumps Version on success.
	Update(ctx context.Context, account *entities.Account) error

	// GetAll returns every account ordered by identity
	GetAll(ctx context.Context) ([]*entities.Account, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}

// Randomizer is the source of chance for cards, the wheel and economy rolls
type Randomizer interface {
	// IntN returns a uniform int in [0, n)
	IntN(n int) int

	// Float64 returns a uniform float in [0.0, 1.0)
	Float64() float64
}
