package keyring

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/juan-009/authguard/internal/domain"
)

// ErrNoActiveKey indicates the ring has no active-signing key, which should
// be impossible after a successful Bootstrap.
var ErrNoActiveKey = errors.New("keyring: no active signing key")

// Ring holds the ordered collection of SigningKeys: exactly one
// active-signing at a time, zero or more verify-only, and retired keys
// awaiting prune.
type Ring struct {
	mu      sync.RWMutex
	cfg     Config
	logger  *slog.Logger
	keys    map[string]*domain.SigningKey // by KID
	activeKID string
}

// Bootstrap builds a Ring with a freshly generated active-signing key.
// Missing or unreadable private material on the signing node is fatal at
// startup, per the key-lifecycle failure semantics this package implements
// — here that manifests as Bootstrap returning a non-nil error the caller
// must treat as fatal.
func Bootstrap(cfg Config, logger *slog.Logger) (*Ring, error) {
	r := &Ring{
		cfg:    cfg,
		logger: logger,
		keys:   make(map[string]*domain.SigningKey),
	}
	if err := r.generateAndPromote(time.Now()); err != nil {
		return nil, fmt.Errorf("keyring: bootstrap failed: %w", err)
	}
	return r, nil
}

// CurrentSigner returns the KID and private key of the active-signing key.
func (r *Ring) CurrentSigner() (string, *rsa.PrivateKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key, ok := r.keys[r.activeKID]
	if !ok || key.PrivateKey == nil {
		return "", nil, ErrNoActiveKey
	}
	return key.KID, key.PrivateKey, nil
}

// VerifierFor returns the public key for kid, if known and not yet pruned.
func (r *Ring) VerifierFor(kid string) (*rsa.PublicKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key, ok := r.keys[kid]
	if !ok || key.State == domain.KeyRetired {
		return nil, domain.ErrUnknownSigningKey
	}
	return key.PublicKey, nil
}

// PublishJWKS returns the public material for every active-signing and
// verify-only key, suitable for serving at /jwks.json.
func (r *Ring) PublishJWKS() JWKS {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := JWKS{Keys: make([]JWK, 0, len(r.keys))}
	for _, key := range r.keys {
		if key.State == domain.KeyRetired {
			continue
		}
		out.Keys = append(out.Keys, JWK{
			Kty: "RSA",
			Use: "sig",
			Alg: key.Algorithm,
			Kid: key.KID,
			N:   encodeBigInt(key.PublicKey.N),
			E:   encodeBigInt(big.NewInt(int64(key.PublicKey.E))),
		})
	}
	return out
}

// Rotate generates a new key, promotes it to active-signing, demotes the
// previous active-signing key to verify-only with an expiry equal to the
// grace period, and prunes any key past its retiresAt. The new KID is
// published (inserted into the ring) before the old KID's signing privilege
// is withdrawn, so in-flight tokens are never left unverifiable.
func (r *Ring) Rotate(now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rotateLocked(now)
}

func (r *Ring) rotateLocked(now time.Time) error {
	previousKID := r.activeKID

	if err := r.generateLocked(now); err != nil {
		return err
	}

	if previousKID != "" {
		if prev, ok := r.keys[previousKID]; ok {
			prev.State = domain.KeyVerifyOnly
			prev.RetiresAt = now.Add(r.cfg.gracePeriod())
		}
	}

	r.pruneLocked(now)
	return nil
}

// generateAndPromote is used only at Bootstrap, where there is no previous
// active key to demote.
func (r *Ring) generateAndPromote(now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generateLocked(now)
}

func (r *Ring) generateLocked(now time.Time) error {
	priv, err := rsa.GenerateKey(rand.Reader, r.cfg.keyBits())
	if err != nil {
		return fmt.Errorf("generate rsa key: %w", err)
	}

	kid := uuid.NewString()
	rotation := r.cfg.rotationInterval()

	r.keys[kid] = &domain.SigningKey{
		KID:        kid,
		Algorithm:  "RS256",
		State:      domain.KeyActiveSigning,
		IssuedAt:   now,
		ExpiresAt:  now.Add(rotation),
		RetiresAt:  now.Add(rotation).Add(r.cfg.gracePeriod()),
		PublicKey:  &priv.PublicKey,
		PrivateKey: priv,
	}
	r.activeKID = kid
	return nil
}

// pruneLocked removes verify-only keys whose retiresAt+grace has passed.
// Caller must hold r.mu.
func (r *Ring) pruneLocked(now time.Time) {
	for kid, key := range r.keys {
		if kid == r.activeKID {
			continue
		}
		if key.State == domain.KeyVerifyOnly && now.After(key.RetiresAt) {
			key.State = domain.KeyRetired
			key.PrivateKey = nil
			delete(r.keys, kid)
			if r.logger != nil {
				r.logger.Info("keyring: pruned retired signing key", slog.String("kid", kid))
			}
		}
	}
}

// RotationDue reports whether the active-signing key has passed its
// ExpiresAt and a rotation should be performed.
func (r *Ring) RotationDue(now time.Time) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key, ok := r.keys[r.activeKID]
	if !ok {
		return true
	}
	return now.After(key.ExpiresAt)
}
