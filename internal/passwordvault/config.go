package passwordvault

// Config configures argon2id cost parameters and the process-wide pepper.
// Pepper is required: a missing pepper in a production configuration is
// fatal at startup (enforced by the caller, typically cmd/authd).
type Config struct {
	Pepper      string `env:"PEPPER,required"`
	MemoryKiB   uint32 `env:"PASSWORD_HASH_MEMORY_KIB" envDefault:"65536"` // 64 MiB
	Iterations  uint32 `env:"PASSWORD_HASH_COST" envDefault:"3"`
	Parallelism uint8  `env:"PASSWORD_HASH_PARALLELISM" envDefault:"2"`
	SaltLength  uint32 `env:"PASSWORD_HASH_SALT_LEN" envDefault:"16"`
	KeyLength   uint32 `env:"PASSWORD_HASH_KEY_LEN" envDefault:"32"`
}

func (c Config) memoryKiB() uint32 {
	if c.MemoryKiB > 0 {
		return c.MemoryKiB
	}
	return 64 * 1024
}

func (c Config) iterations() uint32 {
	if c.Iterations > 0 {
		return c.Iterations
	}
	return 3
}

func (c Config) parallelism() uint8 {
	if c.Parallelism > 0 {
		return c.Parallelism
	}
	return 2
}

func (c Config) saltLength() uint32 {
	if c.SaltLength > 0 {
		return c.SaltLength
	}
	return 16
}

func (c Config) keyLength() uint32 {
	if c.KeyLength > 0 {
		return c.KeyLength
	}
	return 32
}
