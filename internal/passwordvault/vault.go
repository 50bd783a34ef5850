package passwordvault

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/juan-009/authguard/internal/domain"
	"golang.org/x/crypto/argon2"
)

const (
	argon2idVersion = argon2.Version
	hashFormat      = "$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s"
)

// Vault hashes and verifies passwords, concatenating a process-wide pepper
// before hashing so a leaked database never yields a crackable hash alone.
type Vault struct {
	cfg Config
}

// New builds a Vault. cfg.Pepper must be non-empty; callers are expected to
// enforce that as a fatal startup check in production, per spec §4.3.
func New(cfg Config) *Vault {
	return &Vault{cfg: cfg}
}

// params describes the argon2id cost parameters encoded in a stored hash.
type params struct {
	memoryKiB   uint32
	iterations  uint32
	parallelism uint8
	salt        []byte
	key         []byte
}

// Hash derives an argon2id hash of plaintext+pepper using the vault's
// configured cost parameters, encoded as a self-describing string.
func (v *Vault) Hash(plaintext string) (string, error) {
	salt := make([]byte, v.cfg.saltLength())
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := v.derive(plaintext, salt, v.cfg.memoryKiB(), v.cfg.iterations(), v.cfg.parallelism())

	return fmt.Sprintf(hashFormat,
		argon2idVersion,
		v.cfg.memoryKiB(), v.cfg.iterations(), v.cfg.parallelism(),
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether plaintext+pepper, hashed with stored's encoded
// parameters, matches stored. Comparison is constant-time with respect to
// the stored hash length.
func (v *Vault) Verify(plaintext, stored string) (bool, error) {
	p, err := parseHash(stored)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrSecurityFormat, err)
	}

	candidate := v.derive(plaintext, p.salt, p.memoryKiB, p.iterations, p.parallelism)
	return subtle.ConstantTimeCompare(candidate, p.key) == 1, nil
}

// NeedsUpgrade reports whether stored was hashed with cost parameters below
// the vault's current configuration, meaning a caller should rehash on next
// successful login.
func (v *Vault) NeedsUpgrade(stored string) (bool, error) {
	p, err := parseHash(stored)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrSecurityFormat, err)
	}

	return p.memoryKiB < v.cfg.memoryKiB() ||
		p.iterations < v.cfg.iterations() ||
		p.parallelism < v.cfg.parallelism(), nil
}

func (v *Vault) derive(plaintext string, salt []byte, memoryKiB, iterations uint32, parallelism uint8) []byte {
	peppered := plaintext + v.cfg.Pepper
	return argon2.IDKey([]byte(peppered), salt, iterations, memoryKiB, parallelism, v.cfg.keyLength())
}

func parseHash(stored string) (*params, error) {
	parts := strings.Split(stored, "$")
	// "", "argon2id", "v=19", "m=...,t=...,p=...", "<salt>", "<key>"
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, fmt.Errorf("unrecognised hash format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, fmt.Errorf("parse version: %w", err)
	}

	p := &params{}
	var memoryKiB, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memoryKiB, &iterations, &parallelism); err != nil {
		return nil, fmt.Errorf("parse cost parameters: %w", err)
	}
	p.memoryKiB, p.iterations, p.parallelism = memoryKiB, iterations, parallelism

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, fmt.Errorf("decode salt: %w", err)
	}
	p.salt = salt

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, fmt.Errorf("decode key: %w", err)
	}
	p.key = key

	return p, nil
}
