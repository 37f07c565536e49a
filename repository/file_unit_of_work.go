package repository

import (
	"context"
	"fmt"

	"casinobot/application"
	"casinobot/domain/entities"
	"casinobot/domain/interfaces"
	"casinobot/events"

	log "github.com/sirupsen/logrus"
)

// FileUnitOfWorkFactory creates units of work over a FileLedger
type FileUnitOfWorkFactory struct {
	ledger   *FileLedger
	eventBus *events.Bus
}

// NewFileUnitOfWorkFactory creates a new factory. eventBus may be nil.
func NewFileUnitOfWorkFactory(ledger *FileLedger, eventBus *events.Bus) *FileUnitOfWorkFactory {
	return &FileUnitOfWorkFactory{
		ledger:   ledger,
		eventBus: eventBus,
	}
}

// Create returns a unit of work that has not begun
func (f *FileUnitOfWorkFactory) Create() application.UnitOfWork {
	return &fileUnitOfWork{
		ledger: f.ledger,
		bus:    events.NewTransactionalBus(f.eventBus),
	}
}

// Snapshot returns a copy of every account
func (f *FileUnitOfWorkFactory) Snapshot(ctx context.Context) (entities.Ledger, error) {
	return f.ledger.Snapshot(ctx)
}

// fileUnitOfWork holds the ledger mutex from Begin until Commit or Rollback
type fileUnitOfWork struct {
	ledger      *FileLedger
	bus         *events.TransactionalBus
	ctx         context.Context
	fingerprint uint64
	accountRepo *fileAccountRepository
	active      bool
}

// Begin takes the ledger lock and loads the file
func (u *fileUnitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return fmt.Errorf("transaction already started")
	}

	u.ledger.mu.Lock()
	ledger, fingerprint, err := u.ledger.read()
	if err != nil {
		u.ledger.mu.Unlock()
		return err
	}

	u.ctx = ctx
	u.fingerprint = fingerprint
	u.accountRepo = newFileAccountRepository(ledger)
	u.active = true
	return nil
}

// Commit saves the ledger if anything changed, then flushes events. It fails
// with ErrStaleWrite when the file changed on disk since Begin.
func (u *fileUnitOfWork) Commit() error {
	if !u.active {
		return fmt.Errorf("no transaction to commit")
	}
	defer u.release()

	if u.accountRepo.dirty {
		current, err := u.ledger.fingerprint()
		if err != nil {
			u.bus.Discard()
			return err
		}
		if current != u.fingerprint {
			u.bus.Discard()
			log.WithField("path", u.ledger.Path()).Warn("Ledger file changed outside this process; discarding write")
			return entities.ErrStaleWrite
		}

		if _, err := u.ledger.write(u.accountRepo.ledger); err != nil {
			u.bus.Discard()
			return fmt.Errorf("failed to commit ledger: %w", err)
		}
	}

	return u.bus.Flush(u.ctx)
}

// Rollback drops in-memory edits and pending events
func (u *fileUnitOfWork) Rollback() error {
	if !u.active {
		return nil // Nothing to rollback
	}
	u.bus.Discard()
	u.release()
	return nil
}

func (u *fileUnitOfWork) release() {
	u.active = false
	u.accountRepo = nil
	u.ledger.mu.Unlock()
}

// AccountRepository returns the account repository for this unit of work
func (u *fileUnitOfWork) AccountRepository() interfaces.AccountRepository {
	if u.accountRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.accountRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *fileUnitOfWork) EventBus() interfaces.EventPublisher {
	return u.bus
}
