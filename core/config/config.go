package config

import (
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once

	cacheMu sync.Mutex
	cache   = make(map[reflect.Type]any)
)

// loadDotenv loads a .env file from the working directory once per process.
// A missing file is not an error — environment variables set by the process
// supervisor are just as valid a source.
func loadDotenv() {
	dotenvOnce.Do(func() {
		if _, err := os.Stat(".env"); err == nil {
			_ = godotenv.Load()
		}
	})
}

// Load parses environment variables into a new T using its `env` struct
// tags, caching the result so repeated calls for the same T return the
// value loaded the first time.
func Load[T any]() (*T, error) {
	loadDotenv()

	var zero T
	key := reflect.TypeOf(zero)

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached, ok := cache[key]; ok {
		cfg := cached.(*T)
		return cfg, nil
	}

	cfg := new(T)
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("load config %T: %w", zero, err)
	}
	cache[key] = cfg
	return cfg, nil
}

// MustLoad is Load, panicking on error. Intended for process startup, where
// a misconfigured environment should fail fast.
func MustLoad[T any]() *T {
	cfg, err := Load[T]()
	if err != nil {
		panic(err)
	}
	return cfg
}
