package application

import (
	"context"

	"casinobot/domain/entities"
	"casinobot/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events.
	// It is a no-op after Commit.
	Rollback() error

	// Repository getters
	AccountRepository() interfaces.AccountRepository
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// LedgerSnapshotter reads a consistent copy of every account, for diagnostics
type LedgerSnapshotter interface {
	Snapshot(ctx context.Context) (entities.Ledger, error)
}

// withUnitOfWork runs fn inside a fresh unit of work and commits when fn succeeds
func withUnitOfWork(ctx context.Context, factory UnitOfWorkFactory, fn func(uow UnitOfWork) error) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := fn(uow); err != nil {
		return err
	}
	return uow.Commit()
}
