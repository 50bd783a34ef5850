package middleware

import (
	"github.com/juan-009/authguard/core/handler"
	"github.com/juan-009/authguard/core/response"
	"github.com/juan-009/authguard/pkg/apierr"
	"github.com/juan-009/authguard/pkg/clientip"
	"github.com/juan-009/authguard/pkg/ratelimiter"
)

// RateLimitConfig configures the rate-limit middleware.
type RateLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests.
	Skip func(ctx handler.Context) bool

	// KeyFunc derives the rate-limit bucket key for a request. Defaults to
	// the caller's client IP via pkg/clientip.
	KeyFunc func(ctx handler.Context) string
}

// RateLimit enforces limiter against each request, rendering a 429 with a
// Retry-After header (via apierr.CodeRateLimited) once the caller's bucket
// is exhausted, per spec.md §7.
func RateLimit[C handler.Context](limiter ratelimiter.RateLimiter, cfg RateLimitConfig) handler.Middleware[C] {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(ctx handler.Context) string {
			return clientip.GetIP(ctx.Request())
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			result, err := limiter.Allow(ctx, cfg.KeyFunc(ctx))
			if err != nil {
				// Degrade gracefully: a rate-limiter backend outage should not
				// block logins, per spec.md §7's infrastructure-failure policy.
				return next(ctx)
			}
			if !result.Allowed() {
				apiErr := apierr.New(apierr.CodeRateLimited, "too many requests").WithRetryAfter(result.RetryAfter())
				return response.Error(apiErr)
			}

			return next(ctx)
		}
	}
}
