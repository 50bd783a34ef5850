package main

import "time"

// appConfig holds the composition-root-only settings: everything else is
// loaded by the package that owns the concern (internal/keyring.Config,
// internal/tokenservice.Config, integration/database/pg.Config, ...).
type appConfig struct {
	HTTPAddr    string   `env:"HTTP_ADDR" envDefault:":8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	// MFASecretKey is a 64-character hex string (32 raw bytes) used to
	// encrypt TOTP secrets at rest. Required in production, like PEPPER.
	MFASecretKey string `env:"MFA_SECRET_KEY,required"`

	LoginRateCapacity int           `env:"LOGIN_RATE_CAPACITY" envDefault:"20"`
	LoginRateRefill   int           `env:"LOGIN_RATE_REFILL" envDefault:"20"`
	LoginRateInterval time.Duration `env:"LOGIN_RATE_REFILL_INTERVAL" envDefault:"1m"`
	AuditBufferSize   int           `env:"AUDIT_BUFFER_SIZE" envDefault:"256"`

	Environment string `env:"ENVIRONMENT" envDefault:"production"`
}
