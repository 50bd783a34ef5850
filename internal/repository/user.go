package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/juan-009/authguard/internal/domain"
)

// UserRepository is the persistence port for domain.User. Every method
// surfaces domain.ErrNotFound or domain.ErrDuplicateKey rather than a
// driver-specific error; RoleIDs are loaded eagerly on every read.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, page Pagination) (Page[*domain.User], error)
	Insert(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AssignRole and RevokeRole mutate the user_roles join row directly,
	// avoiding a read-modify-write race on the full User.RoleIDs slice.
	AssignRole(ctx context.Context, userID, roleID uuid.UUID) error
	RevokeRole(ctx context.Context, userID, roleID uuid.UUID) error
}
