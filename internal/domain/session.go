package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActiveSession tracks a principal's live login: created on successful
// login, refreshed on token refresh, removed on logout or expiry.
type ActiveSession struct {
	ID                uuid.UUID
	PrincipalID       uuid.UUID
	DeviceFingerprint string
	ClientIP          string
	LastActivityAt    time.Time
	ExpiresAt         time.Time
}

// Expired reports whether the session's expiry has passed as of now.
func (s *ActiveSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
