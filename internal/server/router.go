package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// HealthCheck reports the readiness of a dependency.
type HealthCheck func(context.Context) error

type handler struct {
	store     *Store
	logger    *slog.Logger
	language  string
	languages []string
	checks    []HealthCheck
}

// RouterOption configures NewRouter.
type RouterOption func(*handler)

func WithLogger(l *slog.Logger) RouterOption {
	return func(h *handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithLanguages sets the fallback language and the languages negotiated
// from Accept-Language or ?lang=.
func WithLanguages(def string, supported ...string) RouterOption {
	return func(h *handler) {
		if def != "" {
			h.language = def
		}
		if len(supported) > 0 {
			h.languages = supported
		}
	}
}

// WithHealthChecks adds readiness probes run by GET /healthz.
func WithHealthChecks(checks ...HealthCheck) RouterOption {
	return func(h *handler) { h.checks = append(h.checks, checks...) }
}

// NewRouter mounts the validation API:
//
//	GET  /healthz
//	GET  /forms
//	GET  /forms/{name}
//	POST /forms/{name}/validate
func NewRouter(store *Store, opts ...RouterOption) chi.Router {
	h := &handler{
		store:     store,
		logger:    logger.Discard(),
		language:  i18n.DefaultLanguage,
		languages: []string{"en", "ja"},
	}
	for _, opt := range opts {
		opt(h)
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)
	r.Use(i18n.Middleware(h.languages, h.language))

	r.Get("/healthz", h.health)
	r.Route("/forms", func(r chi.Router) {
		r.Get("/", h.listForms)
		r.Get("/{name}", h.getForm)
		r.Post("/{name}/validate", h.validate)
	})

	return r
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.InfoContext(r.Context(), "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			logger.Duration(time.Since(start)),
		)
	})
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	for _, check := range h.checks {
		if err := check(r.Context()); err != nil {
			h.logger.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) listForms(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"forms": h.store.Names()})
}

func (h *handler) getForm(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	def, ok := h.store.Get(name)
	if !ok {
		writeError(w, r, http.StatusNotFound, "not_found", "form not found")
		return
	}
	writeJSON(w, http.StatusOK, def)
}

func (h *handler) validate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	f, err := h.store.Build(name)
	if err != nil {
		if errors.Is(err, ErrFormNotFound) {
			writeError(w, r, http.StatusNotFound, "not_found", "form not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to build form", logger.Form(name), logger.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal", "failed to build form")
		return
	}

	if err := binder.Bind(r, f); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	err = f.ValidateContext(ctx)
	if err != nil && !form.IsValidationError(err) {
		h.logger.ErrorContext(ctx, "validation aborted", logger.Form(name), logger.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal", "validation could not complete")
		return
	}

	resp := ValidateResponse{
		Valid:  err == nil,
		Errors: f.Errors().Messages(),
		Values: f.Values(),
	}
	status := http.StatusOK
	if !resp.Valid {
		status = http.StatusUnprocessableEntity
	}
	h.logger.DebugContext(ctx, "form validated",
		logger.Form(name),
		logger.Language(i18n.Locale(ctx)),
		slog.Bool("valid", resp.Valid),
	)
	writeJSON(w, status, resp)
}
