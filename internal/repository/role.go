package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/juan-009/authguard/internal/domain"
)

// RoleRepository is the persistence port for domain.Role. PermissionIDs and
// ParentID are loaded eagerly on every read.
type RoleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context, page Pagination) (Page[*domain.Role], error)
	Insert(ctx context.Context, role *domain.Role) error
	Update(ctx context.Context, role *domain.Role) error
	Delete(ctx context.Context, id uuid.UUID) error

	SetParent(ctx context.Context, roleID uuid.UUID, parentID *uuid.UUID) error
	AttachPermission(ctx context.Context, roleID, permissionID uuid.UUID) error
	DetachPermission(ctx context.Context, roleID, permissionID uuid.UUID) error

	// Descendants returns every role that transitively inherits from
	// roleID, for internal/permcache's reverse invalidation index.
	Descendants(ctx context.Context, roleID uuid.UUID) ([]uuid.UUID, error)

	// UserCount and ChildCount back the RoleInUse deletion guard without
	// loading full rows.
	UserCount(ctx context.Context, roleID uuid.UUID) (int, error)
	ChildCount(ctx context.Context, roleID uuid.UUID) (int, error)
}
