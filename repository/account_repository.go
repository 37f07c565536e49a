package repository

import (
	"context"
	"errors"
	"fmt"

	"casinobot/database"
	"casinobot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// AccountRepository implements the AccountRepository interface on PostgreSQL
type AccountRepository struct {
	q Queryable
}

// NewAccountRepository creates a repository over the pool, outside any transaction
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

// NewAccountRepositoryScoped creates a repository bound to a transaction
func NewAccountRepositoryScoped(tx Queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

// GetByIdentity retrieves an account and locks its row until the transaction ends
func (r *AccountRepository) GetByIdentity(ctx context.Context, identity string) (*entities.Account, error) {
	query := `
		SELECT identity, display_name, balance, version
		FROM accounts
		WHERE identity = $1
		FOR UPDATE
	`

	var account entities.Account
	err := r.q.QueryRow(ctx, query, identity).Scan(
		&account.Identity,
		&account.DisplayName,
		&account.Balance,
		&account.Version,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", identity, err)
	}

	return &account, nil
}

// Create inserts the account if it does not exist yet and returns the locked row.
// A concurrent creator wins the race; its row is returned instead.
func (r *AccountRepository) Create(ctx context.Context, identity, displayName string, initialBalance int64) (*entities.Account, error) {
	query := `
		INSERT INTO accounts (identity, display_name, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (identity) DO NOTHING
	`

	if _, err := r.q.Exec(ctx, query, identity, displayName, initialBalance); err != nil {
		return nil, fmt.Errorf("failed to create account %s: %w", identity, err)
	}

	account, err := r.GetByIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("account %s missing after insert: %w", identity, entities.ErrAccountNotFound)
	}
	return account, nil
}

// Update writes balance and display name when the stored version still matches
func (r *AccountRepository) Update(ctx context.Context, account *entities.Account) error {
	query := `
		UPDATE accounts
		SET display_name = $3, balance = $4, version = version + 1, updated_at = NOW()
		WHERE identity = $1 AND version = $2
	`

	tag, err := r.q.Exec(ctx, query, account.Identity, account.Version, account.DisplayName, account.Balance)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.Identity, err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrStaleWrite
	}

	account.Version++
	return nil
}

// GetAll returns every account ordered by identity
func (r *AccountRepository) GetAll(ctx context.Context) ([]*entities.Account, error) {
	query := `
		SELECT identity, display_name, balance, version
		FROM accounts
		ORDER BY identity
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*entities.Account
	for rows.Next() {
		var account entities.Account
		if err := rows.Scan(&account.Identity, &account.DisplayName, &account.Balance, &account.Version); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}
