package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a principal that can authenticate against the service.
//
// Invariants (enforced by callers, not by this type): Email is globally
// unique once persisted; if MFAEnabled is true, MFASecret must be non-empty;
// FailedAttempts is monotonically non-decreasing until a successful
// authentication resets it to zero.
type User struct {
	ID              uuid.UUID
	Email           string
	PasswordHash    string
	Active          bool
	MFAEnabled      bool
	MFASecret       string   // empty unless MFAEnabled
	RecoveryCodes   []string // hashed, single-use
	FailedAttempts  int
	LastFailureAt   *time.Time
	LockedUntil     *time.Time
	PasswordSetAt   time.Time
	RoleIDs         []uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsLocked reports whether the user is currently within a lockout window.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// RetryAfter returns the remaining lockout duration, or zero if not locked.
func (u *User) RetryAfter(now time.Time) time.Duration {
	if !u.IsLocked(now) {
		return 0
	}
	return u.LockedUntil.Sub(now)
}
