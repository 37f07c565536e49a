package services

import (
	"testing"

	"casinobot/config"
	"casinobot/domain/entities"
	"casinobot/domain/testhelpers"
)

// newTestAccounts wires an account service over an in-memory repository
func newTestAccounts(t *testing.T, seed ...*entities.Account) (*testhelpers.InMemoryAccountRepository, *testhelpers.RecordingPublisher, *accountService) {
	t.Helper()
	config.SetTestConfig(config.NewTestConfig())
	t.Cleanup(config.ResetConfig)

	repo := testhelpers.NewInMemoryAccountRepository(seed...)
	publisher := &testhelpers.RecordingPublisher{}
	return repo, publisher, &accountService{accountRepo: repo, eventPublisher: publisher}
}

func player(identity string) entities.Player {
	return entities.Player{Identity: identity, DisplayName: "user" + identity}
}
