package domain

import "errors"

// Sentinel errors returned by repositories and services. Coordinators map
// these to apierr.Error codes at the HTTP boundary; nothing below this layer
// should ever reference an HTTP status.
var (
	// ErrNotFound indicates a lookup by id or natural key found nothing.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateKey indicates a uniqueness constraint would be violated
	// (duplicate email, role name, or permission name).
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrRoleCycle indicates a proposed parent assignment would close a cycle
	// in the role graph.
	ErrRoleCycle = errors.New("role parent assignment would create a cycle")

	// ErrRoleInUse indicates a role cannot be deleted because it still has
	// assigned users or child roles.
	ErrRoleInUse = errors.New("role is in use and cannot be deleted")

	// ErrSystemRole indicates an attempt to delete or mutate protections on a
	// built-in role.
	ErrSystemRole = errors.New("system role cannot be modified or deleted")

	// ErrInvalidCredentials collapses "no such user" and "wrong password"
	// into a single outcome so the two are indistinguishable to a caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountLocked indicates the account is within a lockout window.
	ErrAccountLocked = errors.New("account is locked")

	// ErrMFARequired indicates a valid password was presented but no MFA
	// code was supplied for an MFA-enabled account.
	ErrMFARequired = errors.New("mfa code required")

	// ErrInvalidMFACode indicates a wrong TOTP/recovery code was presented.
	ErrInvalidMFACode = errors.New("invalid mfa code")

	// ErrMFALockedOut indicates the per-principal MFA attempt counter has
	// reached its limit.
	ErrMFALockedOut = errors.New("mfa attempts exhausted")

	// ErrMFANotConfigured indicates MFA verification was attempted for a
	// principal that has not enrolled.
	ErrMFANotConfigured = errors.New("mfa is not configured for this principal")

	// ErrInvalidToken indicates a token failed signature, issuer, audience,
	// not-before, or expiry checks.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is a more specific ErrInvalidToken reason.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenNotYetValid is a more specific ErrInvalidToken reason.
	ErrTokenNotYetValid = errors.New("token not yet valid")

	// ErrTokenWrongAudience is a more specific ErrInvalidToken reason.
	ErrTokenWrongAudience = errors.New("token has the wrong audience")

	// ErrTokenRevoked indicates the token's JTI is denylisted, or (for
	// refresh tokens) missing from the refresh registry.
	ErrTokenRevoked = errors.New("token has been revoked")

	// ErrUnknownSigningKey indicates the token's KID does not match any
	// known signing key.
	ErrUnknownSigningKey = errors.New("unknown signing key")

	// ErrPermissionDenied indicates the principal lacks the required
	// permission.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrSecurityFormat indicates a stored password hash is malformed or
	// uses an unrecognised encoding.
	ErrSecurityFormat = errors.New("stored credential has an unrecognised format")
)
