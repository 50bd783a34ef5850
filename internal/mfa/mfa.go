package mfa

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/juan-009/authguard/internal/domain"
	"github.com/juan-009/authguard/internal/passwordvault"
	"github.com/juan-009/authguard/pkg/totp"
)

const recoveryCodeByteLength = 5 // 8 base32 characters per code

// Engine generates and verifies TOTP secrets and recovery codes, enforcing
// the per-principal attempt lockout described in spec §4.4.
type Engine struct {
	cfg      Config
	attempts AttemptStore
	vault    *passwordvault.Vault // hashes recovery codes, same vault as passwords
}

// New builds an Engine.
func New(cfg Config, attempts AttemptStore, vault *passwordvault.Vault) *Engine {
	return &Engine{cfg: cfg, attempts: attempts, vault: vault}
}

// GenerateSecret returns a new base32 TOTP secret of at least 160 bits.
func (e *Engine) GenerateSecret() (string, error) {
	return totp.GenerateSecretKey()
}

// ProvisioningURI returns the otpauth:// URI for enrollment, embedding
// accountName (typically the user's email) as the label.
func (e *Engine) ProvisioningURI(secret, accountName string) (string, error) {
	return totp.GetTOTPURI(totp.TOTPParams{
		Secret:      secret,
		AccountName: accountName,
		Issuer:      e.cfg.Issuer,
	})
}

// Verify checks code against secret within the configured drift window. On
// mismatch it increments principal's attempt counter and returns the
// remaining attempts before lockout. Once the limit is reached, Verify
// returns domain.ErrMFALockedOut without re-checking the code until the
// counter's TTL expires.
func (e *Engine) Verify(ctx context.Context, principal uuid.UUID, secret, code string) (attemptsLeft int, err error) {
	ok, err := withinWindow(secret, code, e.cfg.windowSteps())
	if err != nil {
		return 0, fmt.Errorf("validate totp: %w", err)
	}
	if ok {
		if err := e.attempts.Reset(ctx, principal); err != nil {
			return 0, fmt.Errorf("reset attempt counter: %w", err)
		}
		return e.cfg.attemptLimit(), nil
	}

	count, err := e.attempts.Increment(ctx, principal, e.cfg.lockoutDuration())
	if err != nil {
		return 0, fmt.Errorf("increment attempt counter: %w", err)
	}

	left := e.cfg.attemptLimit() - count
	if left <= 0 {
		return 0, domain.ErrMFALockedOut
	}
	return left, domain.ErrInvalidMFACode
}

// withinWindow checks code against secret across [-steps, +steps] 30-second
// periods centered on now.
func withinWindow(secret, code string, steps int) (bool, error) {
	now := time.Now()
	const period = 30 * time.Second

	for delta := -steps; delta <= steps; delta++ {
		candidate, err := totp.GenerateTOTPWithTime(secret, now.Add(time.Duration(delta)*period))
		if err != nil {
			return false, err
		}
		if candidate == code {
			return true, nil
		}
	}
	return false, nil
}

// GenerateRecoveryCodes returns a fixed-count list of plaintext recovery
// codes (to be shown to the user once) and their hashed form (to be
// persisted). Each code is single-use; RedeemRecoveryCode removes it from
// the stored list atomically.
func (e *Engine) GenerateRecoveryCodes() (plain []string, hashed []string, err error) {
	n := e.cfg.recoveryCodeSize()
	plain = make([]string, n)
	hashed = make([]string, n)

	for i := 0; i < n; i++ {
		code, err := randomRecoveryCode()
		if err != nil {
			return nil, nil, fmt.Errorf("generate recovery code: %w", err)
		}
		h, err := e.vault.Hash(code)
		if err != nil {
			return nil, nil, fmt.Errorf("hash recovery code: %w", err)
		}
		plain[i] = code
		hashed[i] = h
	}
	return plain, hashed, nil
}

// RedeemRecoveryCode checks code against the hashed list stored for a
// principal. On match it returns the list with that entry removed and true;
// the caller persists the updated list inside the same UnitOfWork used for
// the rest of the MFA-verify operation so removal is atomic.
func (e *Engine) RedeemRecoveryCode(stored []string, code string) (remaining []string, ok bool, err error) {
	for i, h := range stored {
		match, verr := e.vault.Verify(code, h)
		if verr != nil {
			return nil, false, fmt.Errorf("verify recovery code: %w", verr)
		}
		if match {
			remaining = make([]string, 0, len(stored)-1)
			remaining = append(remaining, stored[:i]...)
			remaining = append(remaining, stored[i+1:]...)
			return remaining, true, nil
		}
	}
	return stored, false, nil
}

func randomRecoveryCode() (string, error) {
	buf := make([]byte, recoveryCodeByteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf), nil
}
