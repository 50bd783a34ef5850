// Package authcoordinator implements the login/MFA/refresh/logout state
// machine: IDLE → CHECK_LOCK → CHECK_CREDS → CHECK_MFA → ISSUE, plus the
// refresh-rotation and logout flows that share its token and session
// dependencies.
//
// The coordinator holds no mutable state of its own; every counter, lock
// deadline, and session row lives in the database behind
// internal/unitofwork, or in the denylist/refresh-registry/MFA-attempt
// caches behind internal/tokenservice and internal/mfa.
package authcoordinator
