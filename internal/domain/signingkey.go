package domain

import (
	"crypto/rsa"
	"time"
)

// KeyState is the lifecycle stage of a SigningKey.
type KeyState int

const (
	// KeyActiveSigning is used to both sign new tokens and verify existing ones.
	// Exactly one key is in this state at any moment.
	KeyActiveSigning KeyState = iota
	// KeyVerifyOnly no longer signs but still verifies tokens issued before it
	// was demoted.
	KeyVerifyOnly
	// KeyRetired is past its expiry and pending prune; it neither signs nor
	// verifies.
	KeyRetired
)

func (s KeyState) String() string {
	switch s {
	case KeyActiveSigning:
		return "active-signing"
	case KeyVerifyOnly:
		return "verify-only"
	case KeyRetired:
		return "retired"
	default:
		return "unknown"
	}
}

// SigningKey is one RSA keypair in the KeyRing, identified by KID. Private
// material is held only by the signing node and is never persisted in
// plaintext outside of the keyring's own storage.
type SigningKey struct {
	KID        string
	Algorithm  string // "RS256"
	State      KeyState
	IssuedAt   time.Time
	ExpiresAt  time.Time
	RetiresAt  time.Time
	PublicKey  *rsa.PublicKey
	PrivateKey *rsa.PrivateKey // nil for keys loaded for verification only
}
