package httpapi

import (
	"strings"

	"github.com/google/uuid"
	"github.com/juan-009/authguard/core/handler"
	"github.com/juan-009/authguard/core/router"
	"github.com/juan-009/authguard/internal/domain"
	"github.com/juan-009/authguard/internal/repository"
	"github.com/juan-009/authguard/internal/tokenservice"
	"github.com/juan-009/authguard/pkg/apierr"
)

type callerContextKey struct{}

// Authenticate validates the inbound Bearer access token and attaches the
// caller's domain.User to the request context for downstream handlers and
// admincoordinator calls that require a caller.
func Authenticate(tokens *tokenservice.Service, users repository.UserRepository) handler.Middleware[*router.Context] {
	return func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
		return func(ctx *router.Context) handler.Response {
			raw := bearerToken(ctx.Request().Header.Get("Authorization"))
			if raw == "" {
				return errResponse(apierr.New(apierr.CodeInvalidToken, "missing bearer token"))
			}

			claims, err := tokens.ValidateAccessToken(ctx.Request().Context(), raw)
			if err != nil {
				return errResponse(apierr.Wrap(apierr.CodeInvalidToken, "invalid access token", err))
			}

			subject, err := uuid.Parse(claims.Subject)
			if err != nil {
				return errResponse(apierr.Wrap(apierr.CodeInvalidToken, "invalid token subject", err))
			}

			user, err := users.FindByID(ctx.Request().Context(), subject)
			if err != nil {
				if err == domain.ErrNotFound {
					return errResponse(apierr.New(apierr.CodeInvalidToken, "unknown subject"))
				}
				return errResponse(apierr.Wrap(apierr.CodeInfrastructure, "load caller", err))
			}
			if !user.Active {
				return errResponse(apierr.New(apierr.CodeInvalidToken, "account deactivated"))
			}

			ctx.SetValue(callerContextKey{}, user)
			return next(ctx)
		}
	}
}

// Caller returns the authenticated user attached by Authenticate.
func Caller(ctx *router.Context) *domain.User {
	user, _ := ctx.Value(callerContextKey{}).(*domain.User)
	return user
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
