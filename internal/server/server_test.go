package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/internal/server"
	"github.com/dmitrymomot/formkit/pkg/form"
)

func newRouter(t *testing.T, opts ...server.RouterOption) http.Handler {
	t.Helper()
	store := server.NewStore(form.NewKit())
	n, err := store.LoadDir("testdata")
	require.NoError(t, err)
	require.Equal(t, 1, n)
	return server.NewRouter(store, opts...)
}

func do(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func TestRouter_Validate(t *testing.T) {
	t.Parallel()
	h := newRouter(t)

	t.Run("valid json body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/forms/signup/validate",
			strings.NewReader(`{"email":"Ann@Example.com","password":"secret-pass","tags[]":["a","b"]}`))
		req.Header.Set("Content-Type", "application/json")

		rec, body := do(t, h, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["valid"])
		assert.Empty(t, body["errors"])
		assert.Equal(t, map[string]any{
			"email":    "ann@example.com",
			"password": "secret-pass",
			"tags[]":   []any{"a", "b"},
		}, body["values"])
		assert.NotEmpty(t, rec.Header().Get(server.RequestIDHeader))
	})

	t.Run("invalid urlencoded body", func(t *testing.T) {
		data := url.Values{"email": {"nope"}, "password": {"short"}}
		req := httptest.NewRequest(http.MethodPost, "/forms/signup/validate", strings.NewReader(data.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec, body := do(t, h, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, false, body["valid"])
		assert.Equal(t, map[string]any{
			"email":    "Email must be an email address.",
			"password": "Password must be at least 8 characters long.",
		}, body["errors"])
	})

	t.Run("language from query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/forms/signup/validate?lang=ja",
			strings.NewReader(`{"password":"secret-pass"}`))
		req.Header.Set("Content-Type", "application/json")

		_, body := do(t, h, req)
		assert.Equal(t, map[string]any{"email": "Emailを入力してください。"}, body["errors"])
	})

	t.Run("language from header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/forms/signup/validate",
			strings.NewReader(`{"password":"secret-pass"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept-Language", "ja-JP,ja;q=0.9,en;q=0.5")

		_, body := do(t, h, req)
		assert.Equal(t, map[string]any{"email": "Emailを入力してください。"}, body["errors"])
	})

	t.Run("bad body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/forms/signup/validate", strings.NewReader(`{"email":{}}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(server.RequestIDHeader, "req-42")

		rec, body := do(t, h, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		detail := body["error"].(map[string]any)
		assert.Equal(t, "bad_request", detail["code"])
		assert.Equal(t, "req-42", detail["request_id"])
	})

	t.Run("unknown form", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/forms/nope/validate", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		rec, _ := do(t, h, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRouter_Forms(t *testing.T) {
	t.Parallel()
	h := newRouter(t)

	rec, body := do(t, h, httptest.NewRequest(http.MethodGet, "/forms", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"signup"}, body["forms"])

	rec, body = do(t, h, httptest.NewRequest(http.MethodGet, "/forms/signup", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "signup", body["name"])
	assert.Len(t, body["fields"], 3)

	rec, _ = do(t, h, httptest.NewRequest(http.MethodGet, "/forms/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	rec, body := do(t, newRouter(t), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])

	failing := newRouter(t, server.WithHealthChecks(func(context.Context) error { return errors.New("down") }))
	rec, body = do(t, failing, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unavailable", body["status"])
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Parallel()

	var seen string
	h := server.RequestIDMiddleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = server.RequestID(r.Context())
	}))

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "valid id is kept", incoming: "abc-123_X", keep: true},
		{name: "missing id is generated", incoming: ""},
		{name: "invalid characters are replaced", incoming: "bad id\n"},
		{name: "too long is replaced", incoming: strings.Repeat("a", 129)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(server.RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, seen, rec.Header().Get(server.RequestIDHeader))
			if tt.keep {
				assert.Equal(t, tt.incoming, seen)
			} else {
				assert.Len(t, seen, 36)
			}
		})
	}
}

func TestServer_Serve(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	srv := server.NewServer(server.Config{ShutdownTimeout: time.Second}, nil)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln, newRouter(t)) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
