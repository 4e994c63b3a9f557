package rule

import (
	"slices"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/value"
)

// match requires the element to equal the filtered value of every named
// sibling. Unknown siblings are skipped.
// Args: comma separated field names, optional delimiter.
func match(in Input) Result {
	names := strings.Split(in.Arg(0, ""), in.Arg(1, ","))
	s := in.String()
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		other, ok := in.sibling(name)
		if !ok {
			continue
		}
		if other.IsSequence() || other.String() != s {
			return Fail()
		}
	}
	return Pass()
}

// inArray checks membership in a delimited list, comparing string forms.
func inArray(in Input) Result {
	allowed := strings.Split(in.Arg(0, ""), in.Arg(1, ","))
	return Check(slices.Contains(allowed, in.String()))
}

// inOptions checks the element against the field's option keys.
func inOptions(in Input) Result {
	if in.Field == nil {
		return Fail()
	}
	keys := in.Field.OptionKeys()
	if len(keys) == 0 {
		return Fail()
	}
	s, ok := value.ToString(in.Value)
	return Check(ok && slices.Contains(keys, s))
}
