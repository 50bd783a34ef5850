// Package mfa wraps pkg/totp with the per-principal attempt counter, lockout,
// and recovery-code semantics spec §4.4 asks for: enrollment, time-windowed
// code verification with a clock-drift allowance, and single-use recovery
// codes stored hashed in the same vault as passwords.
package mfa
