package domain

import (
	"regexp"

	"github.com/google/uuid"
)

// RoleNamePattern is the validation pattern for Role.Name: lowercase letters,
// digits, and underscores.
var RoleNamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// Role is a named collection of permissions, optionally inheriting from a
// parent role. The parent relation forms a DAG: cycles are rejected by
// internal/rbac before a mutation is persisted.
type Role struct {
	ID            uuid.UUID
	Name          string
	Description   string
	SystemRole    bool // built-in, undeletable
	ParentID      *uuid.UUID
	PermissionIDs []uuid.UUID
}

// ValidRoleName reports whether name satisfies RoleNamePattern.
func ValidRoleName(name string) bool {
	return RoleNamePattern.MatchString(name)
}
