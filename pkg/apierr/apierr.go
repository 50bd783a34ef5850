// Package apierr defines the result-sum-type error used at coordinator
// boundaries: a stable Code plus an HTTP status mapping, so internal APIs
// return typed outcomes instead of relying on exception-style control flow.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Code is a stable, client-facing error identifier.
type Code string

const (
	CodeValidation          Code = "VALIDATION"
	CodeInvalidCredentials  Code = "INVALID_CREDENTIALS"
	CodeAccountLocked       Code = "ACCOUNT_LOCKED"
	CodeMFARequired         Code = "MFA_REQUIRED"
	CodeMFAInvalid          Code = "MFA_INVALID"
	CodeMFANotConfigured    Code = "MFA_NOT_CONFIGURED"
	CodeInvalidToken        Code = "INVALID_TOKEN"
	CodeTokenRevoked        Code = "TOKEN_REVOKED"
	CodePermissionDenied    Code = "PERMISSION_DENIED"
	CodeRoleCycle           Code = "ROLE_CYCLE"
	CodeRoleInUse           Code = "ROLE_IN_USE"
	CodeNotFound            Code = "NOT_FOUND"
	CodeDuplicate           Code = "DUPLICATE"
	CodeRateLimited         Code = "RATE_LIMITED"
	CodeInfrastructure      Code = "INFRASTRUCTURE"
	CodeConfiguration       Code = "CONFIGURATION"
)

// statusByCode mirrors spec §7's taxonomy → HTTP status table.
var statusByCode = map[Code]int{
	CodeValidation:         http.StatusUnprocessableEntity,
	CodeInvalidCredentials: http.StatusUnauthorized,
	CodeAccountLocked:      http.StatusLocked,
	CodeMFARequired:        http.StatusAccepted,
	CodeMFAInvalid:         http.StatusUnauthorized,
	CodeMFANotConfigured:   http.StatusUnauthorized,
	CodeInvalidToken:       http.StatusUnauthorized,
	CodeTokenRevoked:       http.StatusUnauthorized,
	CodePermissionDenied:   http.StatusForbidden,
	CodeRoleCycle:          http.StatusConflict,
	CodeRoleInUse:          http.StatusConflict,
	CodeNotFound:           http.StatusNotFound,
	CodeDuplicate:          http.StatusConflict,
	CodeRateLimited:        http.StatusTooManyRequests,
	CodeInfrastructure:     http.StatusServiceUnavailable,
	CodeConfiguration:      http.StatusInternalServerError,
}

// Error is the typed outcome carried through coordinator return values.
type Error struct {
	Code       Code
	Message    string
	RetryAfter time.Duration // set for CodeAccountLocked / CodeRateLimited
	err        error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.err
}

// New builds an Error with no wrapped cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap builds an Error that wraps cause, preserving it for errors.As/Is.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, err: cause}
}

// WithRetryAfter attaches a Retry-After duration, used for locked accounts
// and rate limiting.
func (e *Error) WithRetryAfter(d time.Duration) *Error {
	e.RetryAfter = d
	return e
}

// HTTPStatus returns the status code a Code maps to. Unknown codes map to 500.
func HTTPStatus(code Code) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// As is a small convenience wrapper around errors.As for *Error.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
