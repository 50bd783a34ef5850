package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juan-009/authguard/integration/database/pg"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, letting every
// repository method run unmodified whether or not it's inside a UnitOfWork.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// store is embedded by every repository implementation.
type store struct {
	pool *pgxpool.Pool
}

// q returns the transaction bound to ctx by internal/unitofwork, or the
// shared pool if the call is running outside a UnitOfWork (a plain read).
func (s store) q(ctx context.Context) querier {
	if tx, ok := pg.TxFromContext(ctx); ok {
		return tx
	}
	return s.pool
}
