package rbac

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/juan-009/authguard/internal/domain"
	"github.com/juan-009/authguard/internal/repository"
)

// RepositoryGraph adapts the persistence layer to RoleGraphReader.
type RepositoryGraph struct {
	roles       repository.RoleRepository
	permissions repository.PermissionRepository
}

// NewRepositoryGraph builds a RepositoryGraph.
func NewRepositoryGraph(roles repository.RoleRepository, permissions repository.PermissionRepository) *RepositoryGraph {
	return &RepositoryGraph{roles: roles, permissions: permissions}
}

func (g *RepositoryGraph) RoleByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	return g.roles.FindByID(ctx, id)
}

func (g *RepositoryGraph) PermissionNames(ctx context.Context, ids []uuid.UUID) ([]string, error) {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		perm, err := g.permissions.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load permission %s: %w", id, err)
		}
		names = append(names, perm.Name)
	}
	return names, nil
}

var _ RoleGraphReader = (*RepositoryGraph)(nil)
