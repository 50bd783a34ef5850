package unitofwork

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/juan-009/authguard/integration/database/pg"
)

// beginner is satisfied by *pgxpool.Pool. Narrowing to this one method lets
// UnitOfWork be exercised with a fake in tests without a live database.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// UnitOfWork opens and closes transactional scopes around repository calls.
type UnitOfWork struct {
	pool beginner
}

// New builds a UnitOfWork over pool.
func New(pool beginner) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

// Within runs fn inside a transactional scope bound to the context it
// passes to fn. If ctx already carries a transaction — this call is nested
// inside an outer Within — fn reuses it and Within does not commit or roll
// back; only the outermost call owns the transaction's lifecycle. fn
// returning a non-nil error rolls back every mutation made anywhere in the
// scope, including by nested calls.
func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := pg.TxFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op once Commit has succeeded

	if err := fn(pg.WithTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
