package totp_test

import (
	"testing"
	"time"

	"github.com/juan-009/authguard/pkg/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecretKey(t *testing.T) {
	secret, err := totp.GenerateSecretKey()
	require.NoError(t, err)
	assert.NotEmpty(t, secret)

	secret2, err := totp.GenerateSecretKey()
	require.NoError(t, err)
	assert.NotEqual(t, secret, secret2)
}

func TestGenerateTOTPWithTime_KnownVector(t *testing.T) {
	// RFC 4226 / RFC 6238 well-known test secret "Hello world!" in base32.
	const knownSecret = "JBSWY3DPEHPK3PXP"

	code, err := totp.GenerateTOTPWithTime(knownSecret, time.Unix(59, 0))
	require.NoError(t, err)
	assert.Len(t, code, 6)
}

func TestValidateTOTP_RoundTrip(t *testing.T) {
	secret, err := totp.GenerateSecretKey()
	require.NoError(t, err)

	code, err := totp.GenerateTOTP(secret)
	require.NoError(t, err)

	ok, err := totp.ValidateTOTP(secret, code)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateTOTP_WrongCodeRejected(t *testing.T) {
	secret, err := totp.GenerateSecretKey()
	require.NoError(t, err)

	ok, err := totp.ValidateTOTP(secret, "000000")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateTOTP_InvalidFormat(t *testing.T) {
	secret, err := totp.GenerateSecretKey()
	require.NoError(t, err)

	_, err = totp.ValidateTOTP(secret, "abc")
	assert.ErrorIs(t, err, totp.ErrInvalidOTP)
}

func TestGetTOTPURI(t *testing.T) {
	secret, err := totp.GenerateSecretKey()
	require.NoError(t, err)

	uri, err := totp.GetTOTPURI(totp.TOTPParams{
		Secret:      secret,
		AccountName: "user@example.com",
		Issuer:      "AuthGuard",
	})
	require.NoError(t, err)
	assert.Contains(t, uri, "otpauth://totp/")
	assert.Contains(t, uri, "issuer=AuthGuard")
}

func TestGetTOTPURI_MissingFields(t *testing.T) {
	_, err := totp.GetTOTPURI(totp.TOTPParams{})
	assert.ErrorIs(t, err, totp.ErrMissingSecret)
}
