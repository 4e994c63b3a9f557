// Package config loads typed configuration from environment variables.
//
// Load reads an optional .env file (or the files named with WithEnvFiles)
// through godotenv, then parses the struct with caarlos0/env tags:
//
//	type Config struct {
//		Addr     string        `env:"ADDR" envDefault:":8080"`
//		Langs    []string      `env:"LANGUAGES" envDefault:"en,ja" envSeparator:","`
//		Shutdown time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg Config
//	err := config.Load(&cfg, config.WithPrefix("FORMKIT_"))
//
// Values already present in the process environment win over env files.
// Errors wrap ErrParsingConfig, ErrFailedToLoadEnvFile or ErrNilPointer.
package config
