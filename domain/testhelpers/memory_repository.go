package testhelpers

import (
	"context"
	"sort"
	"sync"

	"casinobot/domain/entities"
	"casinobot/events"
)

// InMemoryAccountRepository is a map-backed AccountRepository for service tests
// that touch several accounts. It enforces the same version check as the real backends.
type InMemoryAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]entities.Account
	Updates  int
}

// NewInMemoryAccountRepository seeds the repository with accounts
func NewInMemoryAccountRepository(seed ...*entities.Account) *InMemoryAccountRepository {
	r := &InMemoryAccountRepository{accounts: make(map[string]entities.Account)}
	for _, a := range seed {
		r.accounts[a.Identity] = *a
	}
	return r
}

func (r *InMemoryAccountRepository) GetByIdentity(ctx context.Context, identity string) (*entities.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[identity]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *InMemoryAccountRepository) Create(ctx context.Context, identity, displayName string, initialBalance int64) (*entities.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := entities.Account{Identity: identity, DisplayName: displayName, Balance: initialBalance}
	r.accounts[identity] = a
	return &a, nil
}

func (r *InMemoryAccountRepository) Update(ctx context.Context, account *entities.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.accounts[account.Identity]
	if !ok {
		return entities.ErrAccountNotFound
	}
	if stored.Version != account.Version {
		return entities.ErrStaleWrite
	}
	account.Version++
	r.accounts[account.Identity] = *account
	r.Updates++
	return nil
}

func (r *InMemoryAccountRepository) GetAll(ctx context.Context) ([]*entities.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entities.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		copied := a
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identity < out[j].Identity })
	return out, nil
}

// Balance returns the stored balance, or -1 when the account does not exist
func (r *InMemoryAccountRepository) Balance(identity string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[identity]
	if !ok {
		return -1
	}
	return a.Balance
}

// RecordingPublisher collects published events
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []events.Event
}

func (p *RecordingPublisher) Publish(event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
	return nil
}
