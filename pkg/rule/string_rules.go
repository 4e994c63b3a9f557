package rule

import (
	"unicode/utf8"

	"github.com/dmitrymomot/formkit/pkg/value"
)

// Lengths are counted in runes.

func required(in Input) Result {
	return Check(!value.IsBlank(in.Value))
}

func length(in Input) Result {
	n := int64(utf8.RuneCountInString(in.String()))
	return Check(in.IntArg(0) <= n && n <= in.IntArg(1))
}

func minLength(in Input) Result {
	return Check(int64(utf8.RuneCountInString(in.String())) >= in.IntArg(0))
}

func maxLength(in Input) Result {
	return Check(int64(utf8.RuneCountInString(in.String())) <= in.IntArg(0))
}
