package filter

import (
	"strings"
	"time"

	"github.com/dmitrymomot/formkit/pkg/value"
)

// Default output layouts of the date filters.
const (
	DateLayout     = "2006/01/02"
	DateHMLayout   = "2006/01/02 15:04"
	DateTimeLayout = "2006/01/02 15:04:05"
)

// lenientLayouts are tried after the requested layout and its separator
// variants, most precise first.
var lenientLayouts = []string{
	"2006/1/2 15:4:5",
	"2006-1-2 15:4:5",
	"2006-01-02T15:04:05",
	"2006/1/2 15:4",
	"2006-1-2 15:4",
	"2006-01-02T15:04",
	"2006/1/2",
	"2006-1-2",
}

// dateFilter reformats dates with the layout given as first argument, or
// def. Integers and digit strings are read as Unix seconds. Values that
// cannot be parsed become nil.
func dateFilter(def string) Func {
	return func(in Input) value.Value {
		layout := in.Arg(0, def)
		loc := in.location()
		return in.Value.Map(func(x any) any {
			return formatDate(x, layout, loc)
		})
	}
}

func formatDate(x any, layout string, loc *time.Location) any {
	if value.IsBlank(x) {
		return nil
	}
	s, ok := value.ToString(x)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)

	if isDigits(s) {
		sec, _ := value.ToInt(s)
		return time.Unix(sec, 0).In(loc).Format(layout)
	}

	candidates := []string{
		layout,
		strings.ReplaceAll(layout, "/", "-"),
		strings.ReplaceAll(layout, "-", "/"),
	}
	for _, l := range append(candidates, lenientLayouts...) {
		if t, err := time.ParseInLocation(l, s, loc); err == nil {
			return t.Format(layout)
		}
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
