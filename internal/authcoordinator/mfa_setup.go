package authcoordinator

import (
	"context"
	"crypto/sha256"
	"errors"

	"github.com/google/uuid"

	"github.com/juan-009/authguard/internal/domain"
	"github.com/juan-009/authguard/pkg/apierr"
	"github.com/juan-009/authguard/pkg/qrcode"
	"github.com/juan-009/authguard/pkg/secrets"
)

// SecretCipher encrypts/decrypts a principal's TOTP secret at rest, scoped
// per-principal via secrets.EncryptString's workspace-key argument.
type SecretCipher struct {
	appKey []byte
}

// NewSecretCipher builds a SecretCipher. appKey must be 32 bytes (see
// pkg/secrets.GenerateKey).
func NewSecretCipher(appKey []byte) *SecretCipher {
	return &SecretCipher{appKey: appKey}
}

// workspaceKey derives a deterministic 32-byte tenant key from a principal
// ID, giving each user's stored secret its own encryption context without
// provisioning a key per user out-of-band.
func workspaceKey(principal uuid.UUID) []byte {
	sum := sha256.Sum256(principal[:])
	return sum[:]
}

func (c *SecretCipher) Encrypt(principal uuid.UUID, plaintext string) (string, error) {
	return secrets.EncryptString(c.appKey, workspaceKey(principal), plaintext)
}

func (c *SecretCipher) Decrypt(principal uuid.UUID, ciphertext string) (string, error) {
	return secrets.DecryptString(c.appKey, workspaceKey(principal), ciphertext)
}

// MFASetupResult carries the enrollment material shown to the user exactly
// once: the raw secret (for manual entry), a QR code encoding the
// provisioning URI, and the plaintext recovery codes.
type MFASetupResult struct {
	Secret         string
	ProvisioningURI string
	QRCodePNG      string // data:image/png;base64,... per pkg/qrcode
	RecoveryCodes  []string
}

// BeginMFASetup generates a fresh secret and recovery codes for user,
// encrypting the secret at rest but not yet enabling MFA: EnableMFA
// (called after the user confirms a code) flips User.MFAEnabled.
func (c *Coordinator) BeginMFASetup(ctx context.Context, cipher *SecretCipher, user *domain.User, accountEmail string) (*MFASetupResult, error) {
	secret, err := c.mfa.GenerateSecret()
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeInfrastructure, "generate mfa secret", err)
	}

	uri, err := c.mfa.ProvisioningURI(secret, accountEmail)
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeInfrastructure, "build provisioning uri", err)
	}

	png, err := qrcode.GenerateBase64Image(uri, qrcode.DefaultSize)
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeInfrastructure, "render qr code", err)
	}

	plainCodes, hashedCodes, err := c.mfa.GenerateRecoveryCodes()
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeInfrastructure, "generate recovery codes", err)
	}

	encryptedSecret, err := cipher.Encrypt(user.ID, secret)
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeInfrastructure, "encrypt mfa secret", err)
	}

	err = c.uow.Within(ctx, func(ctx context.Context) error {
		user.MFASecret = encryptedSecret
		user.RecoveryCodes = hashedCodes
		return c.users.Update(ctx, user)
	})
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeInfrastructure, "persist mfa enrollment", err)
	}

	return &MFASetupResult{
		Secret:          secret,
		ProvisioningURI: uri,
		QRCodePNG:       png,
		RecoveryCodes:   plainCodes,
	}, nil
}

// ConfirmMFASetup verifies code against the pending secret and, on success,
// flips MFAEnabled. Intended to be called once, immediately after
// BeginMFASetup, so enrollment can't silently leave a broken secret active.
func (c *Coordinator) ConfirmMFASetup(ctx context.Context, cipher *SecretCipher, user *domain.User, code string) error {
	secret, err := cipher.Decrypt(user.ID, user.MFASecret)
	if err != nil {
		return apierr.Wrap(apierr.CodeInfrastructure, "decrypt mfa secret", err)
	}

	if _, err := c.mfa.Verify(ctx, user.ID, secret, code); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidMFACode), errors.Is(err, domain.ErrMFALockedOut):
			return apierr.New(apierr.CodeMFAInvalid, "mfa code does not match pending secret")
		default:
			return apierr.Wrap(apierr.CodeInfrastructure, "verify mfa setup code", err)
		}
	}

	return c.uow.Within(ctx, func(ctx context.Context) error {
		user.MFAEnabled = true
		return c.users.Update(ctx, user)
	})
}

// VerifyMFA checks code — a live TOTP code or, failing that, an unused
// recovery code — against a principal already past the password check, for
// callers outside the Login flow (e.g. a dedicated /auth/mfa/verify step
// for a pending session).
func (c *Coordinator) VerifyMFA(ctx context.Context, cipher *SecretCipher, user *domain.User, code string) error {
	if !user.MFAEnabled {
		return apierr.New(apierr.CodeMFANotConfigured, "mfa is not configured for this principal")
	}

	secret, err := cipher.Decrypt(user.ID, user.MFASecret)
	if err != nil {
		return apierr.Wrap(apierr.CodeInfrastructure, "decrypt mfa secret", err)
	}

	if _, err := c.mfa.Verify(ctx, user.ID, secret, code); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrInvalidMFACode) && !errors.Is(err, domain.ErrMFALockedOut) {
		return apierr.Wrap(apierr.CodeInfrastructure, "verify mfa code", err)
	}

	remaining, ok, err := c.mfa.RedeemRecoveryCode(user.RecoveryCodes, code)
	if err != nil {
		return apierr.Wrap(apierr.CodeInfrastructure, "redeem recovery code", err)
	}
	if !ok {
		return apierr.New(apierr.CodeMFAInvalid, "invalid mfa code")
	}

	return c.uow.Within(ctx, func(ctx context.Context) error {
		user.RecoveryCodes = remaining
		return c.users.Update(ctx, user)
	})
}
