package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/config"
)

type serviceConfig struct {
	Addr      string        `env:"ADDR" envDefault:":8080"`
	Strict    bool          `env:"STRICT"`
	Languages []string      `env:"LANGUAGES" envDefault:"en,ja" envSeparator:","`
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type requiredConfig struct {
	Value string `env:"REQUIRED_VALUE,required"`
}

func TestLoad_Environment(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		var cfg serviceConfig
		require.NoError(t, config.Load(&cfg, config.WithEnvironment(map[string]string{})))
		assert.Equal(t, ":8080", cfg.Addr)
		assert.False(t, cfg.Strict)
		assert.Equal(t, []string{"en", "ja"}, cfg.Languages)
		assert.Equal(t, 10*time.Second, cfg.Timeout)
	})

	t.Run("prefix", func(t *testing.T) {
		var cfg serviceConfig
		require.NoError(t, config.Load(&cfg,
			config.WithPrefix("FORMKIT_"),
			config.WithEnvironment(map[string]string{
				"FORMKIT_ADDR":      ":9000",
				"FORMKIT_STRICT":    "true",
				"FORMKIT_LANGUAGES": "ja",
				"ADDR":              ":1",
			}),
		))
		assert.Equal(t, ":9000", cfg.Addr)
		assert.True(t, cfg.Strict)
		assert.Equal(t, []string{"ja"}, cfg.Languages)
	})

	t.Run("required", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("invalid value", func(t *testing.T) {
		var cfg serviceConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{"TIMEOUT": "soon"}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[serviceConfig](nil), config.ErrNilPointer)
	})
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("FORMKIT_TEST_FILE_VALUE=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("FORMKIT_TEST_FILE_VALUE") })

	var cfg struct {
		Value string `env:"FORMKIT_TEST_FILE_VALUE"`
	}
	require.NoError(t, config.Load(&cfg, config.WithEnvFiles(path)))
	assert.Equal(t, "from-file", cfg.Value)

	err := config.Load(&cfg, config.WithEnvFiles(filepath.Join(t.TempDir(), "missing.env")))
	assert.ErrorIs(t, err, config.ErrFailedToLoadEnvFile)
}
