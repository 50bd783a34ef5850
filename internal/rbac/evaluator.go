package rbac

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/juan-009/authguard/internal/domain"
	"github.com/juan-009/authguard/internal/permcache"
)

// AuditSink receives a denial notification. internal/audit implements this;
// a nil sink is a valid no-op for tests and for callers that audit
// elsewhere.
type AuditSink interface {
	EmitPermissionDenied(ctx context.Context, principal uuid.UUID, required string)
}

// Evaluator answers HasPermission for a principal's assigned roles.
type Evaluator struct {
	graph RoleGraphReader
	cache *permcache.Cache
	audit AuditSink
}

// New builds an Evaluator. audit may be nil.
func New(graph RoleGraphReader, cache *permcache.Cache, audit AuditSink) *Evaluator {
	return &Evaluator{graph: graph, cache: cache, audit: audit}
}

// HasPermission reports whether user, through the union of its assigned
// roles' expanded permission sets, holds required ("scope:action"). An
// inactive user always fails. Every denial is reported to the audit sink.
func (e *Evaluator) HasPermission(ctx context.Context, user *domain.User, required string) (bool, error) {
	if !user.Active {
		e.deny(ctx, user.ID, required)
		return false, nil
	}

	union := make(map[string]struct{})
	for _, roleID := range user.RoleIDs {
		set, err := e.expand(ctx, roleID)
		if err != nil {
			return false, fmt.Errorf("expand role %s: %w", roleID, err)
		}
		for name := range set {
			union[name] = struct{}{}
		}
	}

	granted := domain.PermissionSatisfies(union, required)
	if !granted {
		e.deny(ctx, user.ID, required)
	}
	return granted, nil
}

func (e *Evaluator) deny(ctx context.Context, principal uuid.UUID, required string) {
	if e.audit != nil {
		e.audit.EmitPermissionDenied(ctx, principal, required)
	}
}

// expand returns roleID's fully-expanded permission set: its own
// permissions unioned with every ancestor's, consulting the cache first and
// walking the parent chain on a miss.
func (e *Evaluator) expand(ctx context.Context, roleID uuid.UUID) (permcache.PermissionSet, error) {
	if set, ok, err := e.cache.Get(ctx, roleID); err != nil {
		return nil, err
	} else if ok {
		return set, nil
	}

	set := make(permcache.PermissionSet)
	visited := make(map[uuid.UUID]struct{})
	current := roleID

	for {
		if _, seen := visited[current]; seen {
			break // defensively stop on an existing cycle rather than loop forever
		}
		visited[current] = struct{}{}

		role, err := e.graph.RoleByID(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("load role %s: %w", current, err)
		}

		names, err := e.graph.PermissionNames(ctx, role.PermissionIDs)
		if err != nil {
			return nil, fmt.Errorf("resolve permissions for role %s: %w", current, err)
		}
		for _, n := range names {
			set[n] = struct{}{}
		}

		if role.ParentID == nil {
			break
		}
		current = *role.ParentID
	}

	if err := e.cache.Set(ctx, roleID, set); err != nil {
		return nil, fmt.Errorf("populate permission cache for role %s: %w", roleID, err)
	}
	return set, nil
}
