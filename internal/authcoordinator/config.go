package authcoordinator

import "time"

// Config configures the lockout policy applied by CHECK_LOCK/RECORD_FAIL.
type Config struct {
	LoginAttemptLimit   int           `env:"LOGIN_ATTEMPT_LIMIT" envDefault:"5"`
	LoginLockoutSeconds time.Duration `env:"LOGIN_LOCKOUT_SECONDS" envDefault:"900s"`
	SessionTTL          time.Duration `env:"REFRESH_TOKEN_TTL_SECONDS" envDefault:"604800s"`
}

func (c Config) attemptLimit() int {
	if c.LoginAttemptLimit > 0 {
		return c.LoginAttemptLimit
	}
	return 5
}

func (c Config) lockoutDuration() time.Duration {
	if c.LoginLockoutSeconds > 0 {
		return c.LoginLockoutSeconds
	}
	return 15 * time.Minute
}

func (c Config) sessionTTL() time.Duration {
	if c.SessionTTL > 0 {
		return c.SessionTTL
	}
	return 7 * 24 * time.Hour
}
