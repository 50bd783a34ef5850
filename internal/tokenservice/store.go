package tokenservice

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Denylist records revoked JTIs with a TTL equal to the token's remaining
// lifetime. It backs the "denylist:<jti>" cache keyspace.
type Denylist interface {
	Add(ctx context.Context, jti string, ttl time.Duration) error
	Contains(ctx context.Context, jti string) (bool, error)
}

// RefreshRegistry tracks outstanding (not-yet-consumed) refresh-token JTIs
// per subject. It backs the "refresh:<jti>" cache keyspace plus a reverse
// per-subject index used for the replay-defense "revoke all" operation.
type RefreshRegistry interface {
	// Register records jti as outstanding for subject, with ttl equal to the
	// refresh token's remaining lifetime.
	Register(ctx context.Context, jti string, subject uuid.UUID, ttl time.Duration) error
	// Lookup returns the owning subject and whether jti is still outstanding.
	Lookup(ctx context.Context, jti string) (uuid.UUID, bool, error)
	// Consume atomically removes jti from the registry, returning whether it
	// was present (a successful rotation consumes exactly once).
	Consume(ctx context.Context, jti string) (bool, error)
	// RevokeAllForSubject removes every outstanding JTI registered for
	// subject, used when a replayed refresh token is detected.
	RevokeAllForSubject(ctx context.Context, subject uuid.UUID) error
}
