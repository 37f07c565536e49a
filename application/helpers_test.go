package application_test

import (
	"errors"
	"path/filepath"
	"testing"

	"casinobot/application"
	"casinobot/config"
	"casinobot/domain/entities"
	"casinobot/events"
	"casinobot/repository"

	"github.com/stretchr/testify/require"
)

var errCommitFailed = errors.New("disk full")

// newTestLedger opens an empty file ledger in a temp dir with the test config
func newTestLedger(t *testing.T, bus *events.Bus) (*repository.FileLedger, *repository.FileUnitOfWorkFactory) {
	t.Helper()
	config.SetTestConfig(config.NewTestConfig())
	t.Cleanup(config.ResetConfig)

	ledger := repository.NewFileLedger(filepath.Join(t.TempDir(), "accounts.json"), 1000)
	return ledger, repository.NewFileUnitOfWorkFactory(ledger, bus)
}

func balanceOf(t *testing.T, ledger *repository.FileLedger, identity string) int64 {
	t.Helper()
	accounts, err := ledger.Load()
	require.NoError(t, err)
	account, ok := accounts[identity]
	if !ok {
		return -1
	}
	return account.Balance
}

func player(identity string) entities.Player {
	return entities.Player{Identity: identity, DisplayName: "user" + identity}
}

// failingCommitFactory wraps a factory so that Commit rolls back and fails while fail is set
type failingCommitFactory struct {
	inner application.UnitOfWorkFactory
	fail  bool
}

func (f *failingCommitFactory) Create() application.UnitOfWork {
	return &failingCommitUnitOfWork{UnitOfWork: f.inner.Create(), factory: f}
}

type failingCommitUnitOfWork struct {
	application.UnitOfWork
	factory *failingCommitFactory
}

func (u *failingCommitUnitOfWork) Commit() error {
	if u.factory.fail {
		_ = u.UnitOfWork.Rollback()
		return errCommitFailed
	}
	return u.UnitOfWork.Commit()
}
