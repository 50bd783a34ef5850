// Package tokenservice mints and validates the two bearer-token shapes the
// service issues: short-lived access tokens and long-lived, single-use
// refresh tokens. Both are RS256-signed compact JWTs (github.com/golang-jwt/jwt/v5)
// bound to a key from internal/keyring via the "kid" header.
package tokenservice
