// Package admincoordinator implements the administrative use cases: user,
// role, and permission CRUD, role assignment, and role-graph mutation.
// Every use case enforces RBAC against its caller before touching
// persistent state, except the handful of admin-of-self operations (own
// password change) that spec.md §4.10 carves out explicitly.
package admincoordinator
