package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"casinobot/events"
	"casinobot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresUnitOfWork_CommitAndRollback(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	factory := NewPostgresUnitOfWorkFactory(testDB.DB, nil)

	t.Run("commit persists", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		account, err := uow.AccountRepository().Create(ctx, "1", "alice", 1000)
		require.NoError(t, err)
		account.Balance = 1100
		require.NoError(t, uow.AccountRepository().Update(ctx, account))
		require.NoError(t, uow.Commit())

		stored, err := NewAccountRepository(testDB.DB).GetByIdentity(ctx, "1")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, int64(1100), stored.Balance)
	})

	t.Run("rollback discards", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))

		_, err := uow.AccountRepository().Create(ctx, "2", "bob", 1000)
		require.NoError(t, err)
		require.NoError(t, uow.Rollback())

		stored, err := NewAccountRepository(testDB.DB).GetByIdentity(ctx, "2")
		require.NoError(t, err)
		assert.Nil(t, stored)
	})

	t.Run("begin twice fails", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		assert.Error(t, uow.Begin(ctx))
	})
}

func TestPostgresUnitOfWork_EventsFlushOnCommit(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	bus := events.NewBus()
	received := make(chan events.Event, 2)
	bus.Subscribe(events.EventTypeAccountCreated, func(ctx context.Context, e events.Event) {
		received <- e
	})
	factory := NewPostgresUnitOfWorkFactory(testDB.DB, bus)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.EventBus().Publish(events.AccountCreatedEvent{Identity: "1"}))

	select {
	case <-received:
		t.Fatal("event delivered before commit")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, uow.Commit())

	select {
	case e := <-received:
		assert.Equal(t, "1", e.(events.AccountCreatedEvent).Identity)
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered after commit")
	}
}

func TestPostgresUnitOfWork_RowLockSerializesWriters(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	factory := NewPostgresUnitOfWorkFactory(testDB.DB, nil)
	_, err := NewAccountRepository(testDB.DB).Create(ctx, "1", "alice", 0)
	require.NoError(t, err)

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uow := factory.Create()
			if err := uow.Begin(ctx); err != nil {
				t.Error(err)
				return
			}
			defer uow.Rollback()

			account, err := uow.AccountRepository().GetByIdentity(ctx, "1")
			if err != nil {
				t.Error(err)
				return
			}
			account.Balance += 10
			if err := uow.AccountRepository().Update(ctx, account); err != nil {
				t.Error(err)
				return
			}
			if err := uow.Commit(); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	stored, err := NewAccountRepository(testDB.DB).GetByIdentity(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(workers*10), stored.Balance)
	assert.Equal(t, int64(workers), stored.Version)
}

func TestPostgresUnitOfWorkFactory_Snapshot(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	repo := NewAccountRepository(testDB.DB)
	_, err := repo.Create(ctx, "1", "alice", 10)
	require.NoError(t, err)
	_, err = repo.Create(ctx, "2", "bob", 20)
	require.NoError(t, err)

	snapshot, err := NewPostgresUnitOfWorkFactory(testDB.DB, nil).Snapshot(ctx)

	require.NoError(t, err)
	require.Len(t, snapshot, 2)
	assert.Equal(t, "alice", snapshot["1"].DisplayName)
	assert.Equal(t, int64(20), snapshot["2"].Balance)
}
