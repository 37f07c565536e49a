package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// WithReadOnlyTransaction runs fn inside a read-only transaction that is always
// rolled back. Use it for consistent multi-row reads that never write.
func (db *DB) WithReadOnlyTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := db.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return fmt.Errorf("failed to begin read-only transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	return fn(tx)
}
