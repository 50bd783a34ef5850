package keyring

import (
	"encoding/base64"
	"math/big"
)

// JWK is a single entry in a published key set: the public half of an RSA
// SigningKey, formatted per RFC 7517.
type JWK struct {
	Kty string `json:"kty"`
	Use string `json:"use,omitempty"`
	Alg string `json:"alg,omitempty"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// JWKS is a published JSON Web Key Set.
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// encodeBigInt base64url-encodes a big-endian unsigned integer without
// padding, as required for JWK "n"/"e" members.
func encodeBigInt(n *big.Int) string {
	return base64.RawURLEncoding.EncodeToString(n.Bytes())
}
