// Package domain holds the plain value records shared by every coordinator,
// repository, and cache in authguard: users, roles, permissions, sessions,
// and signing keys. Nothing in this package touches a database driver, a
// cache client, or an HTTP framework — those concerns stay inside the
// repository and integration layers, which translate row/driver types into
// and out of the records defined here.
package domain
