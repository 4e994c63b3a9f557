package binder

import (
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/form"
)

const (
	// DefaultMaxMemory is the memory used for parsing multipart forms (10MB).
	DefaultMaxMemory = 10 << 20
	// DefaultMaxJSONSize caps JSON request bodies (1MB).
	DefaultMaxJSONSize = 1 << 20
)

// Bind reads the request values and assigns them to f.
func Bind(r *http.Request, f *form.Form) error {
	values, err := Values(r)
	if err != nil {
		return err
	}
	f.Input(values)
	return nil
}

// Values extracts submitted values from r. Requests without a body use the
// query string. Bodies may be urlencoded, multipart or a JSON object; body
// values win over query values with the same key.
func Values(r *http.Request) (url.Values, error) {
	if !hasBody(r) {
		return cloneValues(r.URL.Query()), nil
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, fmt.Errorf("%w: expected application/x-www-form-urlencoded, multipart/form-data or application/json", ErrMissingContentType)
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed content type: %v", ErrUnsupportedMediaType, err)
	}

	var body url.Values
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		body = r.PostForm

	case "multipart/form-data":
		if !validateBoundary(params["boundary"]) {
			return nil, fmt.Errorf("%w: invalid boundary parameter", ErrFailedToParseForm)
		}
		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		body = multipartValues(r)

	case "application/json":
		body, err = jsonValues(r)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: got %s", ErrUnsupportedMediaType, mediaType)
	}

	values := cloneValues(r.URL.Query())
	for k, v := range body {
		values[k] = v
	}
	return values, nil
}

func hasBody(r *http.Request) bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodOptions:
		return false
	}
	return r.Body != nil && r.Body != http.NoBody && r.ContentLength != 0
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

// multipartValues returns the text values plus the sanitized names of
// uploaded files for keys without a text value.
func multipartValues(r *http.Request) url.Values {
	values := make(url.Values)
	if r.MultipartForm == nil {
		return values
	}
	for k, v := range r.MultipartForm.Value {
		values[k] = v
	}
	for k, headers := range r.MultipartForm.File {
		if _, ok := values[k]; ok {
			continue
		}
		for _, fh := range headers {
			values.Add(k, sanitizeFilename(fh.Filename))
		}
	}
	return values
}

// validateBoundary checks a multipart boundary against RFC 2046: 1 to 70
// characters from the bchars set, not ending in a space.
func validateBoundary(boundary string) bool {
	if boundary == "" || len(boundary) > 70 || strings.HasSuffix(boundary, " ") {
		return false
	}
	for _, c := range boundary {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.ContainsRune("'()+_,-./:=? ", c):
		default:
			return false
		}
	}
	return true
}
