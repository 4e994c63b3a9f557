package spec

import "errors"

var (
	// ErrEmptyName is returned when an entry has no name.
	ErrEmptyName = errors.New("spec entry has empty name")
	// ErrEmptyEscape is returned by NewParser for an empty escape sequence.
	ErrEmptyEscape = errors.New("escape sequence must not be empty")
)
