package admincoordinator

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/juan-009/authguard/internal/domain"
	"github.com/juan-009/authguard/pkg/apierr"
)

// CreatePermission defines a new grantable "scope:action" permission. The
// caller must hold PermPermissionsWrite.
func (c *Coordinator) CreatePermission(ctx context.Context, caller *domain.User, name, description string) (*domain.Permission, error) {
	if err := c.require(ctx, caller, PermPermissionsWrite); err != nil {
		return nil, err
	}
	if !domain.ValidPermissionName(name) {
		return nil, apierr.New(apierr.CodeValidation, "permission name must match scope:action")
	}

	perm := &domain.Permission{ID: uuid.New(), Name: name, Description: description}

	err := c.uow.Within(ctx, func(ctx context.Context) error {
		return c.permissions.Insert(ctx, perm)
	})
	if errors.Is(err, domain.ErrDuplicateKey) {
		return nil, apierr.New(apierr.CodeDuplicate, "permission name already in use")
	}
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeInfrastructure, "create permission", err)
	}
	return perm, nil
}

// UpdatePermission changes a permission's description. The name, once
// granted to roles and referenced in cached permission sets by value, is
// immutable — callers that need a rename create a new permission and
// migrate role attachments.
func (c *Coordinator) UpdatePermission(ctx context.Context, caller *domain.User, perm *domain.Permission, description string) error {
	if err := c.require(ctx, caller, PermPermissionsWrite); err != nil {
		return err
	}
	err := c.uow.Within(ctx, func(ctx context.Context) error {
		perm.Description = description
		return c.permissions.Update(ctx, perm)
	})
	if err != nil {
		return apierr.Wrap(apierr.CodeInfrastructure, "update permission", err)
	}
	return nil
}

// DeletePermission removes perm. Any role still holding it loses the grant
// on its next cache refresh; callers that need an immediate cutover should
// detach the permission from its roles first.
func (c *Coordinator) DeletePermission(ctx context.Context, caller *domain.User, perm *domain.Permission) error {
	if err := c.require(ctx, caller, PermPermissionsWrite); err != nil {
		return err
	}
	err := c.uow.Within(ctx, func(ctx context.Context) error {
		return c.permissions.Delete(ctx, perm.ID)
	})
	if err != nil {
		return apierr.Wrap(apierr.CodeInfrastructure, "delete permission", err)
	}
	return c.cache.InvalidateAll(ctx)
}
