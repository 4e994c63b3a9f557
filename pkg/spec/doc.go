// Package spec parses and stores the rule and filter specifications attached
// to a form field.
//
// A specification string is a pipe separated list of entries, each entry a
// colon separated name followed by its arguments:
//
//	required|between:1:10|regex:^[a-z]+$
//
// Literal pipes and colons can appear inside arguments when prefixed with the
// parser's escape sequence (a backslash by default):
//
//	list, err := spec.Parse(`in_array:a\|b|regex:^\d{2}\:\d{2}$`)
//	// [in_array("a|b") regex(`^\d{2}:\d{2}$`)]
//
// Names and arguments are trimmed. Escape a leading or trailing space or tab
// to keep it:
//
//	trim:\ |replace:-:\ -\ 
//	// [trim(" ") replace("-", " - ")]
//
// The escape sequence is consumed only in front of a delimiter, a space or a
// tab, so regular expression escapes such as \d pass through untouched.
//
// # Ordering
//
// List keeps entries in attachment order and holds at most one entry per name.
// Setting a name that is already present replaces its arguments in place,
// keeping the original position.
//
// # Error Handling
//
// Parse returns ErrEmptyName (wrapped) when an entry has arguments but no
// name, e.g. ":5".
package spec
