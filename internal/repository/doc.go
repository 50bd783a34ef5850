// Package repository declares the storage-agnostic ports for the User,
// Role, Permission, and Session aggregates. internal/postgres provides the
// pgx-backed implementations; every method is expected to run against
// whatever transaction internal/unitofwork has bound to its context via
// pg.WithTx, so callers never pass a *pgxpool.Pool or *pgx.Tx directly.
package repository
