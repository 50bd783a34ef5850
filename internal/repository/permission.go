package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/juan-009/authguard/internal/domain"
)

// PermissionRepository is the persistence port for domain.Permission.
type PermissionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Permission, error)
	FindByName(ctx context.Context, name string) (*domain.Permission, error)
	List(ctx context.Context, page Pagination) (Page[*domain.Permission], error)
	Insert(ctx context.Context, permission *domain.Permission) error
	Update(ctx context.Context, permission *domain.Permission) error
	Delete(ctx context.Context, id uuid.UUID) error
}
