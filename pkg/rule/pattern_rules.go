package rule

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/pattern"
)

var (
	intPattern       = regexp.MustCompile(`^[-+]?[0-9]+$`)
	naturalPattern   = regexp.MustCompile(`^[0-9]+$`)
	decimalPattern   = regexp.MustCompile(`^[-+]?([0-9]+(\.[0-9]*)?|\.[0-9]+)?$`)
	alphaPattern     = regexp.MustCompile(`(?i)^[a-z]+$`)
	alphaNumPattern  = regexp.MustCompile(`(?i)^[a-z0-9]+$`)
	alphaDashPattern = regexp.MustCompile(`(?i)^[-a-z0-9_]+$`)
	kanaPattern      = regexp.MustCompile(`^[ァ-ヶー　０-９]*$`)
	urlPattern       = regexp.MustCompile(`([\w*%#!()~'-]+\.)+[\w*%#!()~'-]+(/[\w*%#!()~'+,.-]+)*`)
	emailPattern     = regexp.MustCompile(`(?i)^([a-z0-9+_\-]+)(\.[a-z0-9+_\-]+)*@([a-z0-9\-]+\.)+[a-z]{2,6}$`)
)

func matchPattern(re *regexp.Regexp) Func {
	return func(in Input) Result {
		return Check(re.MatchString(in.String()))
	}
}

// regex matches against a Go pattern or a delimited "/pattern/flags" one.
// The grammar splits arguments on ":", so they are joined back first.
func regex(in Input) Result {
	expr := strings.Join(in.Args, ":")
	if expr == "" {
		return Pass()
	}

	compile := pattern.Compile
	if in.reg != nil {
		compile = in.reg.patterns.Compile
	}
	re, err := compile(expr)
	if err != nil {
		if in.reg != nil {
			in.reg.warn("invalid regex pattern",
				slog.String("rule", "regex"),
				slog.String("pattern", expr),
				slog.String("error", err.Error()),
			)
		}
		return Fail()
	}
	return Check(re.MatchString(in.String()))
}
