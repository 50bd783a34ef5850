package admincoordinator

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/juan-009/authguard/internal/domain"
	"github.com/juan-009/authguard/internal/rbac"
	"github.com/juan-009/authguard/pkg/apierr"
)

// CreateRole creates a new, non-system role. The caller must hold
// PermRolesWrite.
func (c *Coordinator) CreateRole(ctx context.Context, caller *domain.User, name, description string) (*domain.Role, error) {
	if err := c.require(ctx, caller, PermRolesWrite); err != nil {
		return nil, err
	}
	if !domain.ValidRoleName(name) {
		return nil, apierr.New(apierr.CodeValidation, "role name must match "+domain.RoleNamePattern.String())
	}

	role := &domain.Role{ID: uuid.New(), Name: name, Description: description}

	err := c.uow.Within(ctx, func(ctx context.Context) error {
		return c.roles.Insert(ctx, role)
	})
	if errors.Is(err, domain.ErrDuplicateKey) {
		return nil, apierr.New(apierr.CodeDuplicate, "role name already in use")
	}
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeInfrastructure, "create role", err)
	}
	return role, nil
}

// UpdateRoleDetails changes a role's name and/or description. The caller
// must hold PermRolesWrite.
func (c *Coordinator) UpdateRoleDetails(ctx context.Context, caller *domain.User, role *domain.Role, name, description string) error {
	if err := c.require(ctx, caller, PermRolesWrite); err != nil {
		return err
	}
	if role.SystemRole {
		return apierr.New(apierr.CodePermissionDenied, "system role cannot be modified")
	}
	if name != "" && !domain.ValidRoleName(name) {
		return apierr.New(apierr.CodeValidation, "role name must match "+domain.RoleNamePattern.String())
	}

	err := c.uow.Within(ctx, func(ctx context.Context) error {
		if name != "" {
			role.Name = name
		}
		role.Description = description
		return c.roles.Update(ctx, role)
	})
	if errors.Is(err, domain.ErrDuplicateKey) {
		return apierr.New(apierr.CodeDuplicate, "role name already in use")
	}
	if err != nil {
		return apierr.Wrap(apierr.CodeInfrastructure, "update role", err)
	}
	return nil
}

// DeleteRole removes role, refusing if it is a system role or still in use
// (assigned users or child roles). The caller must hold PermRolesWrite.
func (c *Coordinator) DeleteRole(ctx context.Context, caller *domain.User, role *domain.Role) error {
	if err := c.require(ctx, caller, PermRolesWrite); err != nil {
		return err
	}

	userCount, err := c.roles.UserCount(ctx, role.ID)
	if err != nil {
		return apierr.Wrap(apierr.CodeInfrastructure, "count role users", err)
	}
	childCount, err := c.roles.ChildCount(ctx, role.ID)
	if err != nil {
		return apierr.Wrap(apierr.CodeInfrastructure, "count role children", err)
	}

	if guardErr := rbac.EnsureDeletable(role, userCount > 0, childCount > 0); guardErr != nil {
		switch {
		case errors.Is(guardErr, domain.ErrSystemRole):
			return apierr.New(apierr.CodePermissionDenied, "system role cannot be deleted")
		case errors.Is(guardErr, domain.ErrRoleInUse):
			return apierr.New(apierr.CodeRoleInUse, "role still has assigned users or child roles")
		default:
			return apierr.Wrap(apierr.CodeInfrastructure, "check role deletable", guardErr)
		}
	}

	err = c.uow.Within(ctx, func(ctx context.Context) error {
		return c.roles.Delete(ctx, role.ID)
	})
	if err != nil {
		return apierr.Wrap(apierr.CodeInfrastructure, "delete role", err)
	}
	return c.cache.Invalidate(ctx, role.ID)
}

// SetParentRole reassigns role's parent, rejecting any assignment that
// would close a cycle in the role graph. The caller must hold
// PermRolesWrite. The cycle check re-reads the graph inside the same
// UnitOfWork as the write, per spec.md §5's optimistic-concurrency note.
func (c *Coordinator) SetParentRole(ctx context.Context, caller *domain.User, role *domain.Role, parentID *uuid.UUID) error {
	if err := c.require(ctx, caller, PermRolesWrite); err != nil {
		return err
	}

	graph := rbac.NewRepositoryGraph(c.roles, c.permissions)

	err := c.uow.Within(ctx, func(ctx context.Context) error {
		if parentID != nil {
			cyclic, err := rbac.DetectCycle(ctx, graph, role.ID, *parentID)
			if err != nil {
				return apierr.Wrap(apierr.CodeInfrastructure, "check role cycle", err)
			}
			if cyclic {
				return apierr.New(apierr.CodeRoleCycle, "parent assignment would create a cycle")
			}
		}

		if err := c.roles.SetParent(ctx, role.ID, parentID); err != nil {
			return apierr.Wrap(apierr.CodeInfrastructure, "set role parent", err)
		}
		role.ParentID = parentID
		return nil
	})
	if err != nil {
		return err
	}

	return c.invalidateRole(ctx, role.ID)
}

// AttachPermission grants role the permission permissionID. The caller must
// hold PermRolesWrite.
func (c *Coordinator) AttachPermission(ctx context.Context, caller *domain.User, role *domain.Role, permissionID uuid.UUID) error {
	if err := c.require(ctx, caller, PermRolesWrite); err != nil {
		return err
	}
	err := c.uow.Within(ctx, func(ctx context.Context) error {
		return c.roles.AttachPermission(ctx, role.ID, permissionID)
	})
	if err != nil {
		return apierr.Wrap(apierr.CodeInfrastructure, "attach permission", err)
	}
	return c.invalidateRole(ctx, role.ID)
}

// DetachPermission revokes permissionID from role. The caller must hold
// PermRolesWrite.
func (c *Coordinator) DetachPermission(ctx context.Context, caller *domain.User, role *domain.Role, permissionID uuid.UUID) error {
	if err := c.require(ctx, caller, PermRolesWrite); err != nil {
		return err
	}
	err := c.uow.Within(ctx, func(ctx context.Context) error {
		return c.roles.DetachPermission(ctx, role.ID, permissionID)
	})
	if err != nil {
		return apierr.Wrap(apierr.CodeInfrastructure, "detach permission", err)
	}
	return c.invalidateRole(ctx, role.ID)
}

// invalidateRole refreshes the cache's descendant index for roleID and
// evicts roleID plus every descendant, since a change to roleID's own
// permissions or position in the graph affects every role that inherits
// from it.
func (c *Coordinator) invalidateRole(ctx context.Context, roleID uuid.UUID) error {
	descendants, err := c.roles.Descendants(ctx, roleID)
	if err != nil {
		return apierr.Wrap(apierr.CodeInfrastructure, "load role descendants", err)
	}
	c.cache.SetDescendants(roleID, descendants)
	if err := c.cache.Invalidate(ctx, roleID); err != nil {
		return apierr.Wrap(apierr.CodeInfrastructure, "invalidate permission cache", err)
	}
	return nil
}
