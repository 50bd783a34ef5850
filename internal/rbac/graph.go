package rbac

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/juan-009/authguard/internal/domain"
)

// RoleGraphReader is the read-only slice of the role repository that RBAC
// needs: fetching a role by ID (to walk its parent chain) and resolving
// permission IDs to their "scope:action" names.
type RoleGraphReader interface {
	RoleByID(ctx context.Context, id uuid.UUID) (*domain.Role, error)
	PermissionNames(ctx context.Context, ids []uuid.UUID) ([]string, error)
}

// DetectCycle reports whether assigning candidateParentID as roleID's parent
// would close a cycle in the role graph. It walks candidateParentID's own
// ancestor chain; if roleID is reachable, the assignment is rejected.
func DetectCycle(ctx context.Context, graph RoleGraphReader, roleID, candidateParentID uuid.UUID) (bool, error) {
	if roleID == candidateParentID {
		return true, nil
	}

	visited := make(map[uuid.UUID]struct{})
	current := candidateParentID
	for {
		if current == roleID {
			return true, nil
		}
		if _, seen := visited[current]; seen {
			// Existing graph already has a cycle above this point; not this
			// assignment's fault, and continuing would loop forever.
			return false, nil
		}
		visited[current] = struct{}{}

		role, err := graph.RoleByID(ctx, current)
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("load role %s while checking for cycle: %w", current, err)
		}
		if role.ParentID == nil {
			return false, nil
		}
		current = *role.ParentID
	}
}

// EnsureDeletable returns domain.ErrSystemRole if role is a built-in role,
// or domain.ErrRoleInUse if it still has assigned users or child roles.
// Callers determine hasUsers/hasChildren via the repository layer (counts
// are cheaper there than loading full rows).
func EnsureDeletable(role *domain.Role, hasUsers, hasChildren bool) error {
	if role.SystemRole {
		return domain.ErrSystemRole
	}
	if hasUsers || hasChildren {
		return domain.ErrRoleInUse
	}
	return nil
}
