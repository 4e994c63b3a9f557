package filter

import (
	"html"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/dmitrymomot/formkit/pkg/pattern"
	"github.com/dmitrymomot/formkit/pkg/value"
)

const defaultCutset = " \t\n\r\x00\x0B"

var kanaPattern = regexp.MustCompile(`([ァ-ヶー　０-９]+)`)

var (
	policyOnce  sync.Once
	stripPolicy *bluemonday.Policy
	ugcPolicy   *bluemonday.Policy
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	policyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
		ugcPolicy = bluemonday.UGCPolicy()
	})
	return stripPolicy, ugcPolicy
}

func registerBuiltins(r *Registry) {
	r.Define("trim", strFilter(func(in Input, s string) string {
		return strings.Trim(s, in.Arg(0, defaultCutset))
	}))
	r.Define("ltrim", strFilter(func(in Input, s string) string {
		return strings.TrimLeft(s, in.Arg(0, defaultCutset))
	}))
	r.Define("rtrim", strFilter(func(in Input, s string) string {
		return strings.TrimRight(s, in.Arg(0, defaultCutset))
	}))
	r.Define("replace", strFilter(func(in Input, s string) string {
		search := in.Arg(0, "")
		if search == "" {
			return s
		}
		return strings.ReplaceAll(s, search, in.Arg(1, ""))
	}))
	r.Define("upper", strFilter(func(in Input, s string) string {
		return cases.Upper(in.language()).String(s)
	}))
	r.Define("lower", strFilter(func(in Input, s string) string {
		return cases.Lower(in.language()).String(s)
	}))
	r.Define("regex", strFilter(func(in Input, s string) string {
		return extract(in, s)
	}))
	r.Define("kana", strFilter(func(in Input, s string) string {
		return firstMatch(kanaPattern, width.Widen.String(s))
	}))
	r.Define("nfkc", strFilter(func(_ Input, s string) string {
		return norm.NFKC.String(s)
	}))
	r.Define("strip_tags", strFilter(func(_ Input, s string) string {
		strict, _ := policies()
		return html.UnescapeString(strict.Sanitize(s))
	}))
	r.Define("sanitize_html", strFilter(func(_ Input, s string) string {
		_, ugc := policies()
		return ugc.Sanitize(s)
	}))

	r.Define("empty_is_null", emptyIsNull)
	r.Define("int", toInt)
	r.Define("float", toFloat)
	r.Define("string", toString)

	r.Define("date", dateFilter(DateLayout))
	r.Define("datehm", dateFilter(DateHMLayout))
	r.Define("datetime", dateFilter(DateTimeLayout))

	r.Define("in_options", inOptions, NeedsField())
}

// strFilter maps fn over the string form of every non-nil element.
func strFilter(fn func(in Input, s string) string) Func {
	return func(in Input) value.Value {
		return in.Value.Map(func(x any) any {
			if x == nil {
				return nil
			}
			s, ok := value.ToString(x)
			if !ok {
				return nil
			}
			return fn(in, s)
		})
	}
}

// extract returns the first capture group, or the whole match when the
// pattern has no group, or "" without a match. Delimited "/pattern/flags"
// patterns are accepted. The grammar splits the pattern on ":", so the
// arguments are joined back.
func extract(in Input, s string) string {
	expr := strings.Join(in.Args, ":")
	compile := pattern.Compile
	if in.reg != nil {
		compile = in.reg.patterns.Compile
	}
	re, err := compile(expr)
	if err != nil {
		if in.reg != nil {
			in.reg.warn("invalid regex pattern", "filter", "regex", "pattern", expr, "error", err.Error())
		}
		return ""
	}
	return firstMatch(re, s)
}

func firstMatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	switch {
	case m == nil:
		return ""
	case len(m) > 1:
		return m[1]
	}
	return m[0]
}

func emptyIsNull(in Input) value.Value {
	return in.Value.Map(func(x any) any {
		if s, ok := x.(string); ok && s == "" {
			return nil
		}
		return x
	})
}

// scalarOrNil unwraps a scalar that is neither nil nor "".
func scalarOrNil(v value.Value) (any, bool) {
	if v.IsSequence() {
		return nil, false
	}
	x := v.Scalar()
	if x == nil {
		return nil, false
	}
	return x, true
}

func toInt(in Input) value.Value {
	x, ok := scalarOrNil(in.Value)
	if !ok || x == "" {
		return value.Null()
	}
	n, ok := value.ToInt(x)
	if !ok {
		return value.Null()
	}
	return value.Scalar(n)
}

func toFloat(in Input) value.Value {
	x, ok := scalarOrNil(in.Value)
	if !ok || x == "" {
		return value.Null()
	}
	f, ok := value.ToFloat(x)
	if !ok {
		return value.Null()
	}
	return value.Scalar(f)
}

func toString(in Input) value.Value {
	x, ok := scalarOrNil(in.Value)
	if !ok {
		return value.Null()
	}
	s, ok := value.ToString(x)
	if !ok {
		return value.Null()
	}
	return value.Scalar(s)
}

// inOptions nulls a scalar that is not an option key and drops such
// elements from a sequence.
func inOptions(in Input) value.Value {
	var keys []string
	if in.Field != nil {
		keys = in.Field.OptionKeys()
	}
	member := func(x any) bool {
		s, ok := value.ToString(x)
		return ok && x != nil && slices.Contains(keys, s)
	}

	if !in.Value.IsSequence() {
		if member(in.Value.Scalar()) {
			return in.Value
		}
		return value.Null()
	}

	kept := slices.DeleteFunc(in.Value.Items(), func(x any) bool { return !member(x) })
	return value.Sequence(kept...)
}
