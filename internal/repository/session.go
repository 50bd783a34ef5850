package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/juan-009/authguard/internal/domain"
)

// SessionRepository is the persistence port for domain.ActiveSession.
type SessionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ActiveSession, error)
	ListByPrincipal(ctx context.Context, principalID uuid.UUID) ([]*domain.ActiveSession, error)
	Insert(ctx context.Context, session *domain.ActiveSession) error
	Touch(ctx context.Context, id uuid.UUID, lastActivityAt, expiresAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context) (int, error)
}
