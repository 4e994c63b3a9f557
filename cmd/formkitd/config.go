package main

import (
	"github.com/dmitrymomot/formkit/internal/server"
	"github.com/dmitrymomot/formkit/pkg/pg"
)

type Config struct {
	FormsDir     string   `env:"FORMKIT_FORMS_DIR" envDefault:"./forms"`
	MessagesFile string   `env:"FORMKIT_MESSAGES_FILE"`
	Language     string   `env:"FORMKIT_LANG" envDefault:"en"`
	Languages    []string `env:"FORMKIT_LANGUAGES" envDefault:"en,ja" envSeparator:","`
	Strict       bool     `env:"FORMKIT_STRICT"`
	Escape       string   `env:"FORMKIT_ESCAPE" envDefault:"\\"`

	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`

	Server server.Config
	DB     pg.Config
}
