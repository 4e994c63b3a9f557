package i18n

import "context"

type localeContextKey struct{}

// WithLocale stores the active language in ctx.
func WithLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, lang)
}

// Locale returns the language stored by WithLocale, or "".
func Locale(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	lang, _ := ctx.Value(localeContextKey{}).(string)
	return lang
}
