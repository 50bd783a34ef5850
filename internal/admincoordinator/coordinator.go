package admincoordinator

import (
	"context"

	"github.com/juan-009/authguard/internal/domain"
	"github.com/juan-009/authguard/internal/passwordvault"
	"github.com/juan-009/authguard/internal/permcache"
	"github.com/juan-009/authguard/internal/rbac"
	"github.com/juan-009/authguard/internal/repository"
	"github.com/juan-009/authguard/internal/unitofwork"
	"github.com/juan-009/authguard/pkg/apierr"
)

// Permission names gating the administrative use cases. Each is a plain
// "scope:action" name, resolved through the same domain.PermissionSatisfies
// wildcard rules as every other permission.
const (
	PermUsersRead        = "users:read"
	PermUsersWrite       = "users:write"
	PermRolesWrite       = "roles:write"
	PermPermissionsWrite = "permissions:write"
)

// Coordinator implements the admin use cases.
type Coordinator struct {
	rbac        *rbac.Evaluator
	users       repository.UserRepository
	roles       repository.RoleRepository
	permissions repository.PermissionRepository
	cache       *permcache.Cache
	vault       *passwordvault.Vault
	uow         *unitofwork.UnitOfWork
}

// New builds a Coordinator.
func New(
	evaluator *rbac.Evaluator,
	users repository.UserRepository,
	roles repository.RoleRepository,
	permissions repository.PermissionRepository,
	cache *permcache.Cache,
	vault *passwordvault.Vault,
	uow *unitofwork.UnitOfWork,
) *Coordinator {
	return &Coordinator{
		rbac: evaluator, users: users, roles: roles, permissions: permissions,
		cache: cache, vault: vault, uow: uow,
	}
}

// require enforces that caller holds required, mapping a denial or
// evaluation failure onto apierr.
func (c *Coordinator) require(ctx context.Context, caller *domain.User, required string) error {
	ok, err := c.rbac.HasPermission(ctx, caller, required)
	if err != nil {
		return apierr.Wrap(apierr.CodeInfrastructure, "evaluate permission", err)
	}
	if !ok {
		return apierr.New(apierr.CodePermissionDenied, "caller lacks required permission: "+required)
	}
	return nil
}
