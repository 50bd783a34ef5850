package mfa

import "time"

// Config configures TOTP drift tolerance, attempt lockout, and recovery
// code generation.
type Config struct {
	WindowSteps      int           `env:"MFA_WINDOW_STEPS" envDefault:"1"`
	AttemptLimit     int           `env:"MFA_ATTEMPT_LIMIT" envDefault:"5"`
	LockoutDuration  time.Duration `env:"MFA_LOCKOUT_SECONDS" envDefault:"900s"`
	RecoveryCodeSize int           `env:"MFA_RECOVERY_CODE_COUNT" envDefault:"10"`
	Issuer           string        `env:"ISSUER,required"`
}

func (c Config) windowSteps() int {
	if c.WindowSteps > 0 {
		return c.WindowSteps
	}
	return 1
}

func (c Config) attemptLimit() int {
	if c.AttemptLimit > 0 {
		return c.AttemptLimit
	}
	return 5
}

func (c Config) lockoutDuration() time.Duration {
	if c.LockoutDuration > 0 {
		return c.LockoutDuration
	}
	return 15 * time.Minute
}

func (c Config) recoveryCodeSize() int {
	if c.RecoveryCodeSize > 0 {
		return c.RecoveryCodeSize
	}
	return 10
}
