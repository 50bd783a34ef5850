// Package postgres implements internal/repository's ports against
// PostgreSQL via pgx/v5. Every method reads the active transaction off its
// context with integration/database/pg.TxFromContext, falling back to the
// shared pool when none is bound — the same pattern integration/database/pg
// documents for outbox-style writers.
package postgres
