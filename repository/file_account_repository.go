package repository

import (
	"context"
	"sort"

	"casinobot/domain/entities"
)

// fileAccountRepository edits the in-memory ledger owned by a file unit of work.
// Nothing reaches disk until the unit of work commits.
type fileAccountRepository struct {
	ledger entities.Ledger
	dirty  bool
}

func newFileAccountRepository(ledger entities.Ledger) *fileAccountRepository {
	return &fileAccountRepository{ledger: ledger}
}

func (r *fileAccountRepository) GetByIdentity(ctx context.Context, identity string) (*entities.Account, error) {
	stored, ok := r.ledger[identity]
	if !ok {
		return nil, nil
	}
	account := *stored
	return &account, nil
}

func (r *fileAccountRepository) Create(ctx context.Context, identity, displayName string, initialBalance int64) (*entities.Account, error) {
	if stored, ok := r.ledger[identity]; ok {
		account := *stored
		return &account, nil
	}

	r.ledger[identity] = &entities.Account{
		Identity:    identity,
		DisplayName: displayName,
		Balance:     initialBalance,
	}
	r.dirty = true

	account := *r.ledger[identity]
	return &account, nil
}

func (r *fileAccountRepository) Update(ctx context.Context, account *entities.Account) error {
	stored, ok := r.ledger[account.Identity]
	if !ok {
		return entities.ErrAccountNotFound
	}
	if stored.Version != account.Version {
		return entities.ErrStaleWrite
	}

	account.Version++
	updated := *account
	r.ledger[account.Identity] = &updated
	r.dirty = true
	return nil
}

func (r *fileAccountRepository) GetAll(ctx context.Context) ([]*entities.Account, error) {
	accounts := make([]*entities.Account, 0, len(r.ledger))
	for _, stored := range r.ledger {
		account := *stored
		accounts = append(accounts, &account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Identity < accounts[j].Identity
	})
	return accounts, nil
}
