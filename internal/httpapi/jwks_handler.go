package httpapi

import (
	"github.com/juan-009/authguard/core/handler"
	"github.com/juan-009/authguard/core/response"
	"github.com/juan-009/authguard/core/router"
	"github.com/juan-009/authguard/internal/keyring"
)

// jwksHandler implements GET /.well-known/jwks.json, publishing the
// keyring's current and grace-period verification keys.
func jwksHandler(ring *keyring.Ring) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		return response.JSON(ring.PublishJWKS())
	}
}
