package config_test

import (
	"os"
	"testing"

	"github.com/juan-009/authguard/core/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name string `env:"CONFIG_TEST_NAME" envDefault:"fallback"`
	Port int    `env:"CONFIG_TEST_PORT" envDefault:"8080"`
}

func TestLoad_UsesDefaultsWhenUnset(t *testing.T) {
	cfg, err := config.Load[testConfig]()
	require.NoError(t, err)
	assert.Equal(t, "fallback", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
}

func TestMustLoad_PanicsOnRequiredMissing(t *testing.T) {
	type requiresField struct {
		Value string `env:"CONFIG_TEST_REQUIRES_NEVER_SET,required"`
	}
	assert.Panics(t, func() {
		config.MustLoad[requiresField]()
	})
}

func TestLoad_CachesPerType(t *testing.T) {
	os.Setenv("CONFIG_TEST_CACHE_NAME", "before")
	defer os.Unsetenv("CONFIG_TEST_CACHE_NAME")

	type cacheConfig struct {
		Name string `env:"CONFIG_TEST_CACHE_NAME"`
	}

	first, err := config.Load[cacheConfig]()
	require.NoError(t, err)
	assert.Equal(t, "before", first.Name)

	os.Setenv("CONFIG_TEST_CACHE_NAME", "after")
	second, err := config.Load[cacheConfig]()
	require.NoError(t, err)
	assert.Equal(t, "before", second.Name, "second Load must return the cached value, not re-read the environment")
}
