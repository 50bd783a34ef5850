package tokenservice

import "github.com/golang-jwt/jwt/v5"

// refreshTokenType is the "type" claim value distinguishing a refresh token
// from an access token so one can never be presented where the other is
// expected.
const refreshTokenType = "refresh"

// AccessClaims is the claim set carried by a minted access token.
type AccessClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// RefreshClaims is the claim set carried by a minted refresh token.
type RefreshClaims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}
