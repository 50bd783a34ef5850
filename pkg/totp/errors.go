package totp

import "errors"

var (
	ErrMissingSecret             = errors.New("totp: secret is required")
	ErrInvalidSecret             = errors.New("totp: secret is not valid base32")
	ErrMissingAccountName        = errors.New("totp: account name is required")
	ErrMissingIssuer             = errors.New("totp: issuer is required")
	ErrInvalidOTP                = errors.New("totp: otp code is not in a valid format")
	ErrFailedToGenerateSecretKey = errors.New("totp: failed to generate secret key")
	ErrFailedToGenerateTOTP      = errors.New("totp: failed to generate code")
	ErrFailedToValidateTOTP      = errors.New("totp: failed to validate code")
)
