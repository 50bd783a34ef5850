package rbac_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/juan-009/authguard/internal/domain"
	"github.com/juan-009/authguard/internal/permcache"
	"github.com/juan-009/authguard/internal/rbac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGraph struct {
	roles       map[uuid.UUID]*domain.Role
	permissions map[uuid.UUID]string
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{roles: make(map[uuid.UUID]*domain.Role), permissions: make(map[uuid.UUID]string)}
}

func (g *fakeGraph) RoleByID(_ context.Context, id uuid.UUID) (*domain.Role, error) {
	role, ok := g.roles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return role, nil
}

func (g *fakeGraph) PermissionNames(_ context.Context, ids []uuid.UUID) ([]string, error) {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, g.permissions[id])
	}
	return names, nil
}

func (g *fakeGraph) addRole(name string, parent *uuid.UUID, perms ...string) uuid.UUID {
	roleID := uuid.New()
	permIDs := make([]uuid.UUID, 0, len(perms))
	for _, p := range perms {
		permID := uuid.New()
		g.permissions[permID] = p
		permIDs = append(permIDs, permID)
	}
	g.roles[roleID] = &domain.Role{ID: roleID, Name: name, ParentID: parent, PermissionIDs: permIDs}
	return roleID
}

func TestEvaluator_HasPermission_InheritsFromParent(t *testing.T) {
	graph := newFakeGraph()
	parentID := graph.addRole("billing_admin", nil, "billing:*")
	childID := graph.addRole("billing_clerk", &parentID, "invoices:read")

	e := rbac.New(graph, permcache.New(permcache.Config{}, nil), nil)
	user := &domain.User{ID: uuid.New(), Active: true, RoleIDs: []uuid.UUID{childID}}

	ok, err := e.HasPermission(context.Background(), user, "billing:refund")
	require.NoError(t, err)
	assert.True(t, ok, "child role must inherit parent's permissions")

	ok, err = e.HasPermission(context.Background(), user, "invoices:read")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEvaluator_HasPermission_InactiveUserDenied(t *testing.T) {
	graph := newFakeGraph()
	roleID := graph.addRole("superadmin", nil, "*:*")

	e := rbac.New(graph, permcache.New(permcache.Config{}, nil), nil)
	user := &domain.User{ID: uuid.New(), Active: false, RoleIDs: []uuid.UUID{roleID}}

	ok, err := e.HasPermission(context.Background(), user, "users:delete")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluator_HasPermission_NoMatchingPermissionDenied(t *testing.T) {
	graph := newFakeGraph()
	roleID := graph.addRole("viewer", nil, "users:read")

	e := rbac.New(graph, permcache.New(permcache.Config{}, nil), nil)
	user := &domain.User{ID: uuid.New(), Active: true, RoleIDs: []uuid.UUID{roleID}}

	ok, err := e.HasPermission(context.Background(), user, "users:delete")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDetectCycle_RejectsSelfAncestry(t *testing.T) {
	graph := newFakeGraph()
	grandparentID := graph.addRole("a", nil)
	parentID := graph.addRole("b", &grandparentID)
	childID := graph.addRole("c", &parentID)

	cycle, err := rbac.DetectCycle(context.Background(), graph, grandparentID, childID)
	require.NoError(t, err)
	assert.True(t, cycle, "making a descendant the parent of its own ancestor must be rejected")
}

func TestDetectCycle_AllowsValidReparenting(t *testing.T) {
	graph := newFakeGraph()
	roleA := graph.addRole("a", nil)
	roleB := graph.addRole("b", nil)

	cycle, err := rbac.DetectCycle(context.Background(), graph, roleB, roleA)
	require.NoError(t, err)
	assert.False(t, cycle)
}

func TestEnsureDeletable(t *testing.T) {
	systemRole := &domain.Role{SystemRole: true}
	assert.ErrorIs(t, rbac.EnsureDeletable(systemRole, false, false), domain.ErrSystemRole)

	inUseRole := &domain.Role{}
	assert.ErrorIs(t, rbac.EnsureDeletable(inUseRole, true, false), domain.ErrRoleInUse)
	assert.ErrorIs(t, rbac.EnsureDeletable(inUseRole, false, true), domain.ErrRoleInUse)

	deletable := &domain.Role{}
	assert.NoError(t, rbac.EnsureDeletable(deletable, false, false))
}
