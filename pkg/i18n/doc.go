// Package i18n holds the message catalogs used to render validation errors in
// several languages and the small amount of request plumbing needed to pick
// a language per request.
//
// # Architecture
//
// A Catalog maps a language code to a flat set of message templates keyed by
// name. Catalogs are parsed from YAML or JSON documents whose top level keys
// are languages; nested keys are flattened with a dot:
//
//	en:
//	  required: "$0 is required."
//	  custom:
//	    zip: "$0 must be a postal code."
//
// yields the keys "required" and "custom.zip" for "en".
//
// The active language travels in the request context. Middleware stores the
// negotiated language with WithLocale and readers fetch it with Locale.
//
// # Usage
//
//	cat, err := i18n.LoadFile(ctx, "messages.yaml")
//	if err != nil {
//		return err
//	}
//	tmpl, ok := cat.Lookup("ja", "required")
//
//	r := chi.NewRouter()
//	r.Use(i18n.Middleware([]string{"en", "ja"}, "en"))
//
// Negotiation relies on golang.org/x/text/language so regional variants such
// as "en-GB" match a supported "en".
//
// # Error Handling
//
// Parsing failures wrap ErrFailedToParseYAML or ErrFailedToParseJSON, a
// cancelled context wraps ErrParsingCancelled, and LoadFile reports
// ErrUnsupportedFormat for unknown file extensions.
package i18n
