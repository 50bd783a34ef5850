package admincoordinator

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/juan-009/authguard/internal/domain"
	"github.com/juan-009/authguard/pkg/apierr"
)

// CreateUser provisions a new user with a hashed password. The caller must
// hold PermUsersWrite.
func (c *Coordinator) CreateUser(ctx context.Context, caller *domain.User, email, password string) (*domain.User, error) {
	if err := c.require(ctx, caller, PermUsersWrite); err != nil {
		return nil, err
	}

	hash, err := c.vault.Hash(password)
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeInfrastructure, "hash password", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:            uuid.New(),
		Email:         email,
		PasswordHash:  hash,
		Active:        true,
		PasswordSetAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = c.uow.Within(ctx, func(ctx context.Context) error {
		return c.users.Insert(ctx, user)
	})
	if errors.Is(err, domain.ErrDuplicateKey) {
		return nil, apierr.New(apierr.CodeDuplicate, "email already in use")
	}
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeInfrastructure, "create user", err)
	}
	return user, nil
}

// UpdateUserEmail changes target's email. The caller must hold
// PermUsersWrite unless caller and target are the same user.
func (c *Coordinator) UpdateUserEmail(ctx context.Context, caller *domain.User, target *domain.User, email string) error {
	if caller.ID != target.ID {
		if err := c.require(ctx, caller, PermUsersWrite); err != nil {
			return err
		}
	}

	err := c.uow.Within(ctx, func(ctx context.Context) error {
		target.Email = email
		target.UpdatedAt = time.Now()
		return c.users.Update(ctx, target)
	})
	if errors.Is(err, domain.ErrDuplicateKey) {
		return apierr.New(apierr.CodeDuplicate, "email already in use")
	}
	if err != nil {
		return apierr.Wrap(apierr.CodeInfrastructure, "update user", err)
	}
	return nil
}

// DeactivateUser flips target.Active to false. The caller must hold
// PermUsersWrite; a user cannot deactivate themselves through this path.
func (c *Coordinator) DeactivateUser(ctx context.Context, caller *domain.User, target *domain.User) error {
	if err := c.require(ctx, caller, PermUsersWrite); err != nil {
		return err
	}

	err := c.uow.Within(ctx, func(ctx context.Context) error {
		target.Active = false
		target.UpdatedAt = time.Now()
		return c.users.Update(ctx, target)
	})
	if err != nil {
		return apierr.Wrap(apierr.CodeInfrastructure, "deactivate user", err)
	}
	return nil
}

// ChangeOwnPassword lets a user change their own password without holding
// PermUsersWrite, per spec.md §4.10's admin-of-self carve-out.
func (c *Coordinator) ChangeOwnPassword(ctx context.Context, caller *domain.User, oldPassword, newPassword string) error {
	matched, err := c.vault.Verify(oldPassword, caller.PasswordHash)
	if err != nil {
		return apierr.Wrap(apierr.CodeInfrastructure, "verify current password", err)
	}
	if !matched {
		return apierr.New(apierr.CodeInvalidCredentials, "current password is incorrect")
	}

	hash, err := c.vault.Hash(newPassword)
	if err != nil {
		return apierr.Wrap(apierr.CodeInfrastructure, "hash new password", err)
	}

	return c.uow.Within(ctx, func(ctx context.Context) error {
		caller.PasswordHash = hash
		caller.PasswordSetAt = time.Now()
		caller.UpdatedAt = caller.PasswordSetAt
		if err := c.users.Update(ctx, caller); err != nil {
			return apierr.Wrap(apierr.CodeInfrastructure, "persist new password", err)
		}
		return nil
	})
}

// AssignRole grants target the role roleID. The caller must hold
// PermUsersWrite.
func (c *Coordinator) AssignRole(ctx context.Context, caller *domain.User, target *domain.User, roleID uuid.UUID) error {
	if err := c.require(ctx, caller, PermUsersWrite); err != nil {
		return err
	}

	role, err := c.roles.FindByID(ctx, roleID)
	if errors.Is(err, domain.ErrNotFound) {
		return apierr.New(apierr.CodeNotFound, "role not found")
	}
	if err != nil {
		return apierr.Wrap(apierr.CodeInfrastructure, "load role", err)
	}

	return c.uow.Within(ctx, func(ctx context.Context) error {
		return c.users.AssignRole(ctx, target.ID, role.ID)
	})
}

// RevokeRole removes roleID from target. The caller must hold
// PermUsersWrite.
func (c *Coordinator) RevokeRole(ctx context.Context, caller *domain.User, target *domain.User, roleID uuid.UUID) error {
	if err := c.require(ctx, caller, PermUsersWrite); err != nil {
		return err
	}
	return c.uow.Within(ctx, func(ctx context.Context) error {
		return c.users.RevokeRole(ctx, target.ID, roleID)
	})
}
