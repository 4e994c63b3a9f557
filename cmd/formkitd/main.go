// Command formkitd serves form validation over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/formkit/internal/server"
	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/pg"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := logger.New(
		logger.WithLevel(level),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithService("formkitd"),
		logger.WithContextExtractors(server.RequestIDExtractor()),
	)

	kit := form.NewKit(
		form.WithLanguage(cfg.Language),
		form.WithStrict(cfg.Strict),
		form.WithEscape(cfg.Escape),
		form.WithLogger(log.With(logger.Component("form"))),
	)

	if cfg.MessagesFile != "" {
		cat, err := i18n.LoadFile(ctx, cfg.MessagesFile)
		if err != nil {
			return err
		}
		kit.Rules().LoadMessages(cat)
	}

	var checks []server.HealthCheck
	if cfg.DB.Enabled() {
		pool, err := pg.Connect(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer pool.Close()
		pg.Register(kit.Rules(), pool)
		checks = append(checks, pg.Healthcheck(pool))
		log.InfoContext(ctx, "unique rule enabled")
	}

	store := server.NewStore(kit)
	n, err := store.LoadDir(cfg.FormsDir)
	if err != nil {
		return err
	}
	if n == 0 {
		log.WarnContext(ctx, "no form definitions found", slog.String("dir", cfg.FormsDir))
	}
	log.InfoContext(ctx, "forms loaded", slog.Int("count", n), slog.Any("forms", store.Names()))

	router := server.NewRouter(store,
		server.WithLogger(log),
		server.WithLanguages(cfg.Language, cfg.Languages...),
		server.WithHealthChecks(checks...),
	)

	srv := server.NewServer(cfg.Server, log)
	if err := srv.Run(ctx, router); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
