package i18n

import (
	"net/http"
	"strings"
)

// QueryParam is the query parameter that overrides Accept-Language.
const QueryParam = "lang"

// Middleware negotiates the request language against supported and stores it
// with WithLocale. The "lang" query parameter takes precedence over the
// Accept-Language header; def is used when neither matches.
func Middleware(supported []string, def string) func(http.Handler) http.Handler {
	if def == "" {
		def = DefaultLanguage
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), FromRequest(r, supported, def))))
		})
	}
}

// FromRequest resolves the language of r without touching its context.
func FromRequest(r *http.Request, supported []string, def string) string {
	if q := strings.TrimSpace(r.URL.Query().Get(QueryParam)); q != "" {
		if lang := Normalize(q, supported, ""); lang != "" {
			return lang
		}
	}
	return Negotiate(r.Header.Get("Accept-Language"), supported, def)
}
