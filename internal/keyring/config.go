package keyring

import "time"

// Config configures key generation and rotation schedule.
type Config struct {
	RotationIntervalDays int `env:"KEY_ROTATION_INTERVAL_DAYS" envDefault:"90"`
	GraceDays            int `env:"KEY_GRACE_DAYS" envDefault:"7"`
	KeyBits              int `env:"KEY_RSA_BITS" envDefault:"2048"`
}

func (c Config) rotationInterval() time.Duration {
	days := c.RotationIntervalDays
	if days <= 0 {
		days = 90
	}
	return time.Duration(days) * 24 * time.Hour
}

func (c Config) gracePeriod() time.Duration {
	days := c.GraceDays
	if days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}

func (c Config) keyBits() int {
	if c.KeyBits > 0 {
		return c.KeyBits
	}
	return 2048
}
