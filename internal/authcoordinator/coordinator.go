package authcoordinator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/juan-009/authguard/internal/domain"
	"github.com/juan-009/authguard/internal/mfa"
	"github.com/juan-009/authguard/internal/passwordvault"
	"github.com/juan-009/authguard/internal/repository"
	"github.com/juan-009/authguard/internal/tokenservice"
	"github.com/juan-009/authguard/internal/unitofwork"
	"github.com/juan-009/authguard/pkg/apierr"
	"github.com/juan-009/authguard/pkg/async"
)

// Coordinator drives the login, MFA, refresh, and logout flows described in
// the package doc.
type Coordinator struct {
	cfg     Config
	users   repository.UserRepository
	roles   repository.RoleRepository
	sessions repository.SessionRepository
	uow     *unitofwork.UnitOfWork
	tokens  *tokenservice.Service
	vault   *passwordvault.Vault
	mfa     *mfa.Engine
	cipher  *SecretCipher

	// dummyHash is verified against when no user matches the presented
	// email, so a miss costs the same wall-clock time as a real mismatch
	// and an attacker cannot enumerate accounts by timing.
	dummyHash string
}

// New builds a Coordinator. It eagerly hashes a constant placeholder
// password for the unknown-user timing defense; a failure there is fatal
// since it indicates a broken password vault.
func New(
	cfg Config,
	users repository.UserRepository,
	roles repository.RoleRepository,
	sessions repository.SessionRepository,
	uow *unitofwork.UnitOfWork,
	tokens *tokenservice.Service,
	vault *passwordvault.Vault,
	mfaEngine *mfa.Engine,
	cipher *SecretCipher,
) (*Coordinator, error) {
	dummy, err := vault.Hash("authguard-unknown-user-placeholder")
	if err != nil {
		return nil, fmt.Errorf("prepare timing-defense hash: %w", err)
	}
	return &Coordinator{
		cfg: cfg, users: users, roles: roles, sessions: sessions,
		uow: uow, tokens: tokens, vault: vault, mfa: mfaEngine, cipher: cipher,
		dummyHash: dummy,
	}, nil
}

// LoginResult is the ISSUE outcome: a fresh access/refresh token pair.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// Login runs the CHECK_LOCK → CHECK_CREDS → CHECK_MFA → ISSUE state machine
// for a single login attempt. mfaCode is empty when the caller has not yet
// supplied one.
func (c *Coordinator) Login(ctx context.Context, email, password, mfaCode, clientIP, userAgent, deviceFingerprint string) (*LoginResult, error) {
	user, err := c.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		_, _ = c.vault.Verify(password, c.dummyHash) // constant-time cost, result discarded
		return nil, apierr.New(apierr.CodeInvalidCredentials, "invalid credentials")
	}
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeInfrastructure, "load user", err)
	}

	now := time.Now()
	if user.IsLocked(now) {
		return nil, apierr.New(apierr.CodeAccountLocked, "account is locked").
			WithRetryAfter(user.RetryAfter(now))
	}

	matched, err := c.verifyPassword(ctx, password, user.PasswordHash)
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeInfrastructure, "verify password", err)
	}
	if !matched {
		if ferr := c.recordFailure(ctx, user, now); ferr != nil {
			return nil, apierr.Wrap(apierr.CodeInfrastructure, "record login failure", ferr)
		}
		return nil, apierr.New(apierr.CodeInvalidCredentials, "invalid credentials")
	}

	if user.MFAEnabled {
		if mfaCode == "" {
			return nil, apierr.New(apierr.CodeMFARequired, "mfa code required")
		}
		secret, err := c.cipher.Decrypt(user.ID, user.MFASecret)
		if err != nil {
			return nil, apierr.Wrap(apierr.CodeInfrastructure, "decrypt mfa secret", err)
		}
		attemptsLeft, mfaErr := c.mfa.Verify(ctx, user.ID, secret, mfaCode)
		if mfaErr != nil {
			switch {
			case errors.Is(mfaErr, domain.ErrMFALockedOut):
				return nil, apierr.New(apierr.CodeMFAInvalid, "mfa attempts exhausted")
			case errors.Is(mfaErr, domain.ErrInvalidMFACode):
				return nil, apierr.New(apierr.CodeMFAInvalid, fmt.Sprintf("invalid mfa code, %d attempts left", attemptsLeft))
			default:
				return nil, apierr.Wrap(apierr.CodeInfrastructure, "verify mfa code", mfaErr)
			}
		}
	}

	return c.issue(ctx, user, now, clientIP, userAgent, deviceFingerprint)
}

// issue resets the failure counter, mints a fresh token pair, and records
// the active session, all within one UnitOfWork.
func (c *Coordinator) issue(ctx context.Context, user *domain.User, now time.Time, clientIP, userAgent, deviceFingerprint string) (*LoginResult, error) {
	var pair *tokenservice.IssuedPair

	err := c.uow.Within(ctx, func(ctx context.Context) error {
		user.FailedAttempts = 0
		user.LockedUntil = nil
		user.LastFailureAt = nil
		if err := c.users.Update(ctx, user); err != nil {
			return fmt.Errorf("clear failure counter: %w", err)
		}

		roleNames, err := c.roleNames(ctx, user.RoleIDs)
		if err != nil {
			return err
		}

		pair, err = c.tokens.IssuePair(ctx, user.ID, roleNames)
		if err != nil {
			return fmt.Errorf("issue token pair: %w", err)
		}

		session := &domain.ActiveSession{
			ID:                uuid.New(),
			PrincipalID:       user.ID,
			DeviceFingerprint: deviceFingerprint,
			ClientIP:          clientIP,
			LastActivityAt:    now,
			ExpiresAt:         now.Add(c.cfg.sessionTTL()),
		}
		_ = userAgent // carried by the caller for audit logging, not persisted on the session row
		return c.sessions.Insert(ctx, session)
	})
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeInfrastructure, "complete login", err)
	}

	return &LoginResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.AccessExpiresIn,
	}, nil
}

// recordFailure increments the failure counter and, at the configured
// limit, sets a lockout deadline.
func (c *Coordinator) recordFailure(ctx context.Context, user *domain.User, now time.Time) error {
	return c.uow.Within(ctx, func(ctx context.Context) error {
		user.FailedAttempts++
		failureTime := now
		user.LastFailureAt = &failureTime
		if user.FailedAttempts >= c.cfg.attemptLimit() {
			deadline := now.Add(c.cfg.lockoutDuration())
			user.LockedUntil = &deadline
		}
		return c.users.Update(ctx, user)
	})
}

// verifyPassword offloads the argon2id comparison to its own goroutine so
// it never stalls the caller's I/O task.
func (c *Coordinator) verifyPassword(ctx context.Context, plaintext, stored string) (bool, error) {
	var matched bool
	future := async.Exec(ctx, plaintext, func(_ context.Context, plaintext string) error {
		var err error
		matched, err = c.vault.Verify(plaintext, stored)
		return err
	})
	if err := future.Await(); err != nil {
		return false, err
	}
	return matched, nil
}

// roleNames resolves role IDs to their "scope:action"-granting names for
// the access token's roles claim.
func (c *Coordinator) roleNames(ctx context.Context, roleIDs []uuid.UUID) ([]string, error) {
	names := make([]string, 0, len(roleIDs))
	for _, id := range roleIDs {
		role, err := c.roles.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load role %s: %w", id, err)
		}
		names = append(names, role.Name)
	}
	return names, nil
}

// Refresh validates the presented refresh token, reissues both tokens, and
// revokes the consumed refresh JTI. A refresh token presented twice (replay)
// revokes every outstanding refresh token for its subject.
func (c *Coordinator) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	subject, err := c.tokens.ConsumeForRotation(ctx, refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenRevoked), errors.Is(err, domain.ErrInvalidToken):
			return nil, apierr.New(apierr.CodeInvalidToken, "refresh token is invalid or revoked")
		default:
			return nil, apierr.Wrap(apierr.CodeInfrastructure, "consume refresh token", err)
		}
	}

	user, err := c.users.FindByID(ctx, subject)
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeInfrastructure, "load user for refresh", err)
	}

	roleNames, err := c.roleNames(ctx, user.RoleIDs)
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeInfrastructure, "resolve roles for refresh", err)
	}

	pair, err := c.tokens.IssuePair(ctx, user.ID, roleNames)
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeInfrastructure, "issue refreshed token pair", err)
	}

	return &LoginResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.AccessExpiresIn,
	}, nil
}

// Logout revokes the presented access and refresh tokens. Either may be
// empty if the caller only has one of the two.
func (c *Coordinator) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if accessToken != "" {
		claims, err := c.tokens.ValidateAccessToken(ctx, accessToken)
		if err == nil {
			if err := c.tokens.RevokeAccess(ctx, claims); err != nil {
				return apierr.Wrap(apierr.CodeInfrastructure, "revoke access token", err)
			}
		}
	}
	if refreshToken != "" {
		claims, err := c.tokens.ValidateRefreshToken(ctx, refreshToken)
		if err == nil {
			if err := c.tokens.RevokeRefresh(ctx, claims); err != nil {
				return apierr.Wrap(apierr.CodeInfrastructure, "revoke refresh token", err)
			}
		}
	}
	return nil
}
