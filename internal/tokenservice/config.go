package tokenservice

import "time"

// Config configures claim identity and default token lifetimes.
type Config struct {
	Issuer            string        `env:"ISSUER,required"`
	Audience          string        `env:"AUDIENCE,required"`
	AccessTokenTTL    time.Duration `env:"ACCESS_TOKEN_TTL_SECONDS" envDefault:"900s"`
	RefreshTokenTTL   time.Duration `env:"REFRESH_TOKEN_TTL_SECONDS" envDefault:"604800s"`
}

func (c Config) accessTTL() time.Duration {
	if c.AccessTokenTTL > 0 {
		return c.AccessTokenTTL
	}
	return 15 * time.Minute
}

func (c Config) refreshTTL() time.Duration {
	if c.RefreshTokenTTL > 0 {
		return c.RefreshTokenTTL
	}
	return 7 * 24 * time.Hour
}
