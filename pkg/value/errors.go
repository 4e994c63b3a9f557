package value

import "errors"

// ErrUnsupported is returned when a Go value cannot be represented as a field value.
var ErrUnsupported = errors.New("unsupported field value")
