package testutil

import "casinobot/domain/entities"

// CreateTestAccount creates an account with default values
func CreateTestAccount(identity, displayName string) *entities.Account {
	return &entities.Account{
		Identity:    identity,
		DisplayName: displayName,
		Balance:     1000,
	}
}

// CreateTestAccountWithBalance creates an account with a specific balance
func CreateTestAccountWithBalance(identity, displayName string, balance int64) *entities.Account {
	account := CreateTestAccount(identity, displayName)
	account.Balance = balance
	return account
}
