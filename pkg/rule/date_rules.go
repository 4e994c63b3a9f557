package rule

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/formkit/pkg/value"
)

// TimeFormat names the granularity of a date-like input.
type TimeFormat string

const (
	Auto      TimeFormat = "auto"
	Timestamp TimeFormat = "timestamp"
	DateTime  TimeFormat = "datetime"
	DateHM    TimeFormat = "datehm"
	Date      TimeFormat = "date"
	Unknown   TimeFormat = "unknown"
)

// Dates use "/" or "-" between parts; the time may follow a space or "T".
var (
	datePattern      = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})$`)
	dateHMPattern    = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})[ T](\d{1,2}):(\d{1,2})$`)
	dateTimePattern  = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})[ T](\d{1,2}):(\d{1,2}):(\d{1,2})$`)
	timestampPattern = regexp.MustCompile(`^[-+]?\d+(\.\d+)?$`)
)

// ParseTime reads s in the given format and checks it is a real calendar
// date. Timestamps are Unix seconds.
func ParseTime(s string, f TimeFormat, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.Local
	}

	var re *regexp.Regexp
	switch f {
	case Timestamp:
		if !timestampPattern.MatchString(s) {
			return time.Time{}, false
		}
		sec, _ := value.ToInt(s)
		return time.Unix(sec, 0).In(loc), true
	case Date:
		re = datePattern
	case DateHM:
		re = dateHMPattern
	case DateTime:
		re = dateTimePattern
	default:
		return time.Time{}, false
	}

	m := re.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	parts := make([]int, 6)
	for i, p := range m[1:] {
		parts[i], _ = strconv.Atoi(p)
	}
	year, month, day, hour, minute, sec := parts[0], parts[1], parts[2], parts[3], parts[4], parts[5]
	if hour > 23 || minute > 59 || sec > 59 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, hour, minute, sec, 0, loc)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// DetectTimeFormat guesses the format of x, preferring the most precise
// one: timestamp, datetime, datehm, date.
func DetectTimeFormat(x any) TimeFormat {
	switch x.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return Timestamp
	}
	s, ok := value.ToString(x)
	if !ok {
		return Unknown
	}
	s = strings.TrimSpace(s)
	if timestampPattern.MatchString(s) {
		return Timestamp
	}
	for _, f := range []TimeFormat{DateTime, DateHM, Date} {
		if _, ok := ParseTime(s, f, time.UTC); ok {
			return f
		}
	}
	return Unknown
}

// CompareTime compares x with now at the granularity of f and returns -1,
// 0 or 1. ok is false when x cannot be read in f.
func CompareTime(x any, f TimeFormat, now time.Time, loc *time.Location) (cmp int, ok bool) {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	if f == Timestamp {
		if !isNumeric(x) {
			return 0, false
		}
		v, _ := value.ToFloat(x)
		ref := float64(now.Unix())
		switch {
		case v < ref:
			return -1, true
		case v > ref:
			return 1, true
		}
		return 0, true
	}

	s, _ := value.ToString(x)
	t, ok := ParseTime(s, f, loc)
	if !ok {
		return 0, false
	}

	y, mo, d := now.Date()
	var ref time.Time
	switch f {
	case DateTime:
		ref = time.Date(y, mo, d, now.Hour(), now.Minute(), now.Second(), 0, loc)
	case DateHM:
		ref = time.Date(y, mo, d, now.Hour(), now.Minute(), 0, 0, loc)
	default:
		ref = time.Date(y, mo, d, 0, 0, 0, 0, loc)
	}
	return t.Compare(ref), true
}

func isNumeric(x any) bool {
	return DetectTimeFormat(x) == Timestamp
}

func dateRule(f TimeFormat) Func {
	return func(in Input) Result {
		_, ok := ParseTime(in.String(), f, in.Location())
		return Check(ok)
	}
}

// past passes for values not after now. Args: format (default auto), now
// as Unix seconds. Values whose format cannot be detected pass.
func past(in Input) Result {
	return compareRule(in, func(cmp int) bool { return cmp <= 0 })
}

// future passes for values not before now. Same arguments as past.
func future(in Input) Result {
	return compareRule(in, func(cmp int) bool { return cmp >= 0 })
}

func compareRule(in Input, accept func(int) bool) Result {
	f := TimeFormat(in.Arg(0, string(Auto)))
	if f == Auto {
		f = DetectTimeFormat(in.Value)
	}
	switch f {
	case Timestamp, DateTime, DateHM, Date:
	default:
		return Pass()
	}

	now := in.Now()
	if in.Arg(1, "") != "" {
		now = time.Unix(in.IntArg(1), 0)
	}

	cmp, ok := CompareTime(in.Value, f, now, in.Location())
	if !ok {
		return Fail()
	}
	return Check(accept(cmp))
}
