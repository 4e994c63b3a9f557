// Package pattern compiles the regular expressions used by the regex rule
// and the regex filter.
//
// Patterns are either plain Go syntax or delimited with flags:
//
//	\d+          used as is
//	/^abc$/i     becomes (?i)^abc$
//	#([ァ-ヶー]*)#u  becomes ([ァ-ヶー]*)
//
// Compiled expressions are cached by their source text.
package pattern
