// Package rbac answers "does principal P hold permission Q?" by expanding a
// role to its transitively-inherited permission set (consulting
// internal/permcache first) and applying scope:action wildcard semantics.
//
// It also guards the two invariants that make the role graph safe to mutate:
// parent assignment must not close a cycle, and a role cannot be deleted
// while still referenced by a user or a child role.
package rbac
