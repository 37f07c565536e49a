package repository

import (
	"context"
	"errors"
	"fmt"

	"casinobot/application"
	"casinobot/database"
	"casinobot/domain/entities"
	"casinobot/domain/interfaces"
	"casinobot/events"

	"github.com/jackc/pgx/v5"
)

// PostgresUnitOfWorkFactory creates units of work backed by pgx transactions
type PostgresUnitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

// NewPostgresUnitOfWorkFactory creates a new factory. eventBus may be nil.
func NewPostgresUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) *PostgresUnitOfWorkFactory {
	return &PostgresUnitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

// Create returns a unit of work that has not begun
func (f *PostgresUnitOfWorkFactory) Create() application.UnitOfWork {
	return &unitOfWork{
		db:  f.db,
		bus: events.NewTransactionalBus(f.eventBus),
	}
}

// Snapshot reads every account in one read-only transaction
func (f *PostgresUnitOfWorkFactory) Snapshot(ctx context.Context) (entities.Ledger, error) {
	ledger := entities.Ledger{}
	err := f.db.WithReadOnlyTransaction(ctx, func(tx pgx.Tx) error {
		accounts, err := NewAccountRepositoryScoped(tx).GetAll(ctx)
		if err != nil {
			return err
		}
		for _, account := range accounts {
			ledger[account.Identity] = account
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ledger, nil
}

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db          *database.DB
	tx          pgx.Tx
	ctx         context.Context
	bus         *events.TransactionalBus
	accountRepo *AccountRepository
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx
	u.accountRepo = NewAccountRepositoryScoped(tx)
	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	u.tx = nil
	if err != nil {
		u.bus.Discard()
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	// Flush pending events after successful commit
	return u.bus.Flush(u.ctx)
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	u.tx = nil
	u.bus.Discard()

	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// AccountRepository returns the account repository for this unit of work
func (u *unitOfWork) AccountRepository() interfaces.AccountRepository {
	if u.accountRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.accountRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	return u.bus
}
