// Package httpapi wires the core/router HTTP surface to the coordinators:
// request binding and validation at the edge, apierr-aware error rendering,
// and bearer-token authentication for every route but the public ones.
package httpapi

import (
	"context"
	"log/slog"

	"github.com/juan-009/authguard/core/healthcheck"
	"github.com/juan-009/authguard/core/router"
	"github.com/juan-009/authguard/internal/admincoordinator"
	"github.com/juan-009/authguard/internal/authcoordinator"
	"github.com/juan-009/authguard/internal/keyring"
	"github.com/juan-009/authguard/internal/repository"
	"github.com/juan-009/authguard/internal/tokenservice"
	"github.com/juan-009/authguard/middleware"
	"github.com/juan-009/authguard/pkg/ratelimiter"
)

// Deps bundles everything the HTTP edge needs to build its routes.
type Deps struct {
	Logger      *slog.Logger
	Auth        *authcoordinator.Coordinator
	Admin       *admincoordinator.Coordinator
	Tokens      *tokenservice.Service
	Keyring     *keyring.Ring
	MFACipher   *authcoordinator.SecretCipher
	Users       repository.UserRepository
	Roles       repository.RoleRepository
	Permissions repository.PermissionRepository

	// LoginLimiter throttles POST /auth/login per client IP; nil disables
	// rate limiting (e.g. in tests).
	LoginLimiter ratelimiter.RateLimiter

	// Readiness is consulted by GET /health/ready; each func reports a
	// dependency's health (database, cache, ...).
	Readiness []func(context.Context) error

	// CORSOrigins, when non-empty, restricts Access-Control-Allow-Origin to
	// this explicit list instead of the wildcard default.
	CORSOrigins []string
}

// NewRouter builds the complete HTTP router for the service.
func NewRouter(deps Deps) router.Router[*router.Context] {
	r := router.New[*router.Context](
		router.WithErrorHandler[*router.Context](errorHandler),
	)

	r.Use(
		middleware.RequestID[*router.Context](),
		middleware.SecurityHeaders[*router.Context](),
		middleware.CORSWithConfig[*router.Context](middleware.CORSConfig{AllowOrigins: deps.CORSOrigins}),
		middleware.LoggingWithLogger[*router.Context](deps.Logger),
	)

	r.Get("/health/live", healthcheck.Handler[*router.Context](deps.Logger))
	r.Get("/health/ready", healthcheck.Handler[*router.Context](deps.Logger, deps.Readiness...))
	r.Get("/jwks.json", jwksHandler(deps.Keyring))

	r.Group(func(gr router.Router[*router.Context]) {
		if deps.LoginLimiter != nil {
			gr.Use(middleware.RateLimit[*router.Context](deps.LoginLimiter, middleware.RateLimitConfig{}))
		}
		gr.Post("/auth/login", loginHandler(deps.Auth))
	})
	r.Post("/auth/refresh", refreshHandler(deps.Auth))

	r.Group(func(gr router.Router[*router.Context]) {
		gr.Use(Authenticate(deps.Tokens, deps.Users))

		gr.Post("/auth/logout", logoutHandler(deps.Auth))
		gr.Post("/auth/mfa/setup", mfaSetupHandler(deps.Auth, deps.MFACipher))
		gr.Post("/auth/mfa/confirm", mfaConfirmHandler(deps.Auth, deps.MFACipher))
		gr.Post("/auth/mfa/verify", mfaVerifyHandler(deps.Auth, deps.MFACipher))

		gr.Post("/users/me/password", changeOwnPasswordHandler(deps.Admin))

		gr.Get("/users", listUsersHandler(deps.Users))
		gr.Post("/users", createUserHandler(deps.Admin))
		gr.Patch("/users/{id}/email", updateUserEmailHandler(deps.Admin, deps.Users))
		gr.Delete("/users/{id}", deactivateUserHandler(deps.Admin, deps.Users))
		gr.Post("/users/{id}/roles", assignRoleHandler(deps.Admin, deps.Users))
		gr.Delete("/users/{id}/roles/{role_id}", revokeRoleHandler(deps.Admin, deps.Users))

		gr.Get("/roles", listRolesHandler(deps.Roles))
		gr.Post("/roles", createRoleHandler(deps.Admin))
		gr.Patch("/roles/{id}", updateRoleHandler(deps.Admin, deps.Roles))
		gr.Delete("/roles/{id}", deleteRoleHandler(deps.Admin, deps.Roles))
		gr.Patch("/roles/{id}/parent", setParentRoleHandler(deps.Admin, deps.Roles))
		gr.Post("/roles/{id}/permissions", attachPermissionHandler(deps.Admin, deps.Roles))
		gr.Delete("/roles/{id}/permissions/{permission_id}", detachPermissionHandler(deps.Admin, deps.Roles))

		gr.Get("/permissions", listPermissionsHandler(deps.Permissions))
		gr.Post("/permissions", createPermissionHandler(deps.Admin))
		gr.Patch("/permissions/{id}", updatePermissionHandler(deps.Admin, deps.Permissions))
		gr.Delete("/permissions/{id}", deletePermissionHandler(deps.Admin, deps.Permissions))
	})

	return r
}
