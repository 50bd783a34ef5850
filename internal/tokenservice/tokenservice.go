package tokenservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/juan-009/authguard/internal/domain"
	"github.com/juan-009/authguard/internal/keyring"
)

// Service mints and validates access/refresh token pairs against a
// keyring.Ring, consulting a Denylist and RefreshRegistry to honor
// revocation.
type Service struct {
	ring      *keyring.Ring
	cfg       Config
	denylist  Denylist
	refreshes RefreshRegistry
}

// New builds a Service. ring provides signing/verification keys; denylist
// and refreshes back the revocation keyspaces described in §6 of the spec.
func New(ring *keyring.Ring, cfg Config, denylist Denylist, refreshes RefreshRegistry) *Service {
	return &Service{ring: ring, cfg: cfg, denylist: denylist, refreshes: refreshes}
}

// IssuedPair is the result of minting a fresh access/refresh token pair.
type IssuedPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresIn  int64 // seconds
	RefreshJTI       string
}

// IssuePair mints a new access token and a new refresh token for subject,
// registering the refresh JTI in the RefreshRegistry.
func (s *Service) IssuePair(ctx context.Context, subject uuid.UUID, roles []string) (*IssuedPair, error) {
	access, _, err := s.mintAccess(subject, roles)
	if err != nil {
		return nil, err
	}

	refresh, refreshClaims, err := s.mintRefresh(subject)
	if err != nil {
		return nil, err
	}

	ttl := time.Until(refreshClaims.ExpiresAt.Time)
	if err := s.refreshes.Register(ctx, refreshClaims.ID, subject, ttl); err != nil {
		return nil, fmt.Errorf("register refresh token: %w", err)
	}

	return &IssuedPair{
		AccessToken:     access,
		RefreshToken:    refresh,
		AccessExpiresIn: int64(s.cfg.accessTTL().Seconds()),
		RefreshJTI:      refreshClaims.ID,
	}, nil
}

func (s *Service) mintAccess(subject uuid.UUID, roles []string) (string, *AccessClaims, error) {
	kid, priv, err := s.ring.CurrentSigner()
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	claims := &AccessClaims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			Subject:   subject.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.accessTTL())),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid

	signed, err := token.SignedString(priv)
	if err != nil {
		return "", nil, fmt.Errorf("sign access token: %w", err)
	}
	return signed, claims, nil
}

func (s *Service) mintRefresh(subject uuid.UUID) (string, *RefreshClaims, error) {
	kid, priv, err := s.ring.CurrentSigner()
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	claims := &RefreshClaims{
		Type: refreshTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   subject.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.refreshTTL())),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid

	signed, err := token.SignedString(priv)
	if err != nil {
		return "", nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return signed, claims, nil
}

// keyFunc resolves the verification key referenced by the token's "kid"
// header via the keyring.
func (s *Service) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
		return nil, domain.ErrInvalidToken
	}
	kid, _ := token.Header["kid"].(string)
	if kid == "" {
		return nil, domain.ErrInvalidToken
	}
	pub, err := s.ring.VerifierFor(kid)
	if err != nil {
		return nil, domain.ErrUnknownSigningKey
	}
	return pub, nil
}

// ValidateAccessToken parses and verifies an access token, checking issuer,
// audience, timing, and denylist membership.
func (s *Service) ValidateAccessToken(ctx context.Context, raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, s.keyFunc,
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience),
	)
	if err != nil {
		return nil, classifyParseError(err)
	}

	revoked, err := s.denylist.Contains(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check denylist: %w", err)
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}

	return claims, nil
}

// ValidateRefreshToken parses and verifies a refresh token, additionally
// requiring it still be present (unconsumed) in the RefreshRegistry.
func (s *Service) ValidateRefreshToken(ctx context.Context, raw string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, s.keyFunc, jwt.WithIssuer(s.cfg.Issuer))
	if err != nil {
		return nil, classifyParseError(err)
	}
	if claims.Type != refreshTokenType {
		return nil, domain.ErrInvalidToken
	}

	subject, found, err := s.refreshes.Lookup(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("lookup refresh registry: %w", err)
	}
	if !found {
		return nil, domain.ErrTokenRevoked
	}
	if subject.String() != claims.Subject {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}

// RevokeAccess writes the access token's JTI to the denylist with a TTL
// equal to its remaining lifetime.
func (s *Service) RevokeAccess(ctx context.Context, claims *AccessClaims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	return s.denylist.Add(ctx, claims.ID, ttl)
}

// RevokeRefresh consumes a refresh token's JTI from the registry so it can
// never be used again.
func (s *Service) RevokeRefresh(ctx context.Context, claims *RefreshClaims) error {
	_, err := s.refreshes.Consume(ctx, claims.ID)
	return err
}

// ConsumeForRotation validates the presented refresh token and, on success,
// removes it from the registry so it can never be presented again,
// returning the subject it was issued for. The caller (AuthCoordinator) is
// responsible for looking up the subject's current roles and minting the
// replacement pair via IssuePair within the same logical operation.
//
// If the token parses and is unexpired but is no longer in the registry, it
// was already consumed by an earlier rotation: this is treated as a replay
// attempt and every outstanding refresh token for the subject is revoked,
// per the defense described in spec §4.2.
func (s *Service) ConsumeForRotation(ctx context.Context, raw string) (uuid.UUID, error) {
	claims := &RefreshClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, s.keyFunc, jwt.WithIssuer(s.cfg.Issuer))
	if err != nil {
		return uuid.Nil, classifyParseError(err)
	}
	if claims.Type != refreshTokenType {
		return uuid.Nil, domain.ErrInvalidToken
	}

	subject, found, err := s.refreshes.Lookup(ctx, claims.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("lookup refresh registry: %w", err)
	}
	if !found {
		if subjectID, parseErr := uuid.Parse(claims.Subject); parseErr == nil {
			_ = s.refreshes.RevokeAllForSubject(ctx, subjectID)
		}
		return uuid.Nil, domain.ErrTokenRevoked
	}

	consumed, err := s.refreshes.Consume(ctx, claims.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("consume refresh token: %w", err)
	}
	if !consumed {
		return uuid.Nil, domain.ErrTokenRevoked
	}

	return subject, nil
}

// RevokeAllForSubject revokes every outstanding refresh token for subject,
// used on logout and as a manual replay-defense escape hatch.
func (s *Service) RevokeAllForSubject(ctx context.Context, subject uuid.UUID) error {
	return s.refreshes.RevokeAllForSubject(ctx, subject)
}

// classifyParseError maps jwt/v5 parse failures onto the spec's reason tags
// (expired / not_yet_valid / wrong_audience), each wrapping domain.ErrInvalidToken
// so callers can still match on it with errors.Is while also checking the more
// specific sentinel.
func classifyParseError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w: %v", domain.ErrTokenExpired, domain.ErrInvalidToken, err)
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return fmt.Errorf("%w: %w: %v", domain.ErrTokenNotYetValid, domain.ErrInvalidToken, err)
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return fmt.Errorf("%w: %w: %v", domain.ErrTokenWrongAudience, domain.ErrInvalidToken, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
}
