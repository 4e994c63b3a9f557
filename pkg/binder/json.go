package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/formkit/pkg/value"
)

// jsonValues decodes a JSON object body. Scalars become one value, arrays
// of scalars one value per element, null a key without values. Nested
// objects and arrays are rejected.
func jsonValues(r *http.Request) (url.Values, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxJSONSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read request body: %v", ErrFailedToParseJSON, err)
	}
	if len(body) > DefaultMaxJSONSize {
		return nil, fmt.Errorf("%w: request body too large (max %d bytes)", ErrFailedToParseJSON, DefaultMaxJSONSize)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
	}

	values := make(url.Values, len(payload))
	for k, v := range payload {
		vals, err := jsonStrings(v)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", ErrFailedToParseJSON, k, err)
		}
		values[k] = vals
	}
	return values, nil
}

func jsonStrings(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return []string{}, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := jsonScalar(item)
			if !ok {
				return nil, fmt.Errorf("nested value of type %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	s, ok := jsonScalar(v)
	if !ok {
		return nil, fmt.Errorf("unsupported value of type %T", v)
	}
	return []string{s}, nil
}

func jsonScalar(v any) (string, bool) {
	switch v.(type) {
	case map[string]any, []any:
		return "", false
	}
	return value.ToString(v)
}
