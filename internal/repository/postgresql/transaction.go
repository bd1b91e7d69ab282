package postgresql

import (
	"context"
	"fmt"

	"github.com/paietrack/paietrack-backend-go/internal/pkg/database"
)

type txContextKey struct{}

// WithTransaction executes fn inside a database transaction. fn receives a
// context carrying the transaction, so repository calls made with it run on
// the same connection.
func WithTransaction(ctx context.Context, db *database.DB, fn func(txCtx context.Context) error) error {
	// A context already carrying a querier joins it instead of opening a
	// nested transaction.
	if _, ok := ctx.Value(txContextKey{}).(database.Querier); ok {
		return fn(ctx)
	}

	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	txCtx := context.WithValue(ctx, txContextKey{}, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// WithQuerier returns a context whose repository calls run on q instead of
// the pool. WithTransaction joins it rather than starting a transaction.
func WithQuerier(ctx context.Context, q database.Querier) context.Context {
	return context.WithValue(ctx, txContextKey{}, q)
}

// GetQuerier returns either transaction or pool
// Used in repositories to support both transactional and non-transactional operations
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if q, ok := ctx.Value(txContextKey{}).(database.Querier); ok {
		return q
	}
	return db.Pool
}
