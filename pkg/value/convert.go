package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// IsScalar reports whether x can be held by a scalar Value.
func IsScalar(x any) bool {
	switch x.(type) {
	case Value:
		return false
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, fmt.Stringer:
		return true
	}
	return false
}

// IsBlank reports whether an element counts as blank: the empty string,
// nil, or false.
func IsBlank(x any) bool {
	switch t := x.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case Value:
		return t.IsNull() || (!t.IsSequence() && IsBlank(t.Scalar()))
	}
	return false
}

// ToString converts a scalar to its string form. Booleans render as "1" and
// "", nil as "". ok is false for non-scalars.
func ToString(x any) (string, bool) {
	switch t := x.(type) {
	case nil:
		return "", true
	case string:
		return t, true
	case bool:
		if t {
			return "1", true
		}
		return "", true
	case int:
		return strconv.Itoa(t), true
	case int8:
		return strconv.FormatInt(int64(t), 10), true
	case int16:
		return strconv.FormatInt(int64(t), 10), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint:
		return strconv.FormatUint(uint64(t), 10), true
	case uint8:
		return strconv.FormatUint(uint64(t), 10), true
	case uint16:
		return strconv.FormatUint(uint64(t), 10), true
	case uint32:
		return strconv.FormatUint(uint64(t), 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case Value:
		if t.IsSequence() {
			return "", false
		}
		return ToString(t.Scalar())
	case fmt.Stringer:
		return t.String(), true
	}
	return "", false
}

// ToInt converts a scalar to an integer the way loose form input expects:
// strings contribute their leading integer ("12abc" is 12, "7.5" is 7,
// "abc" is 0), floats truncate, true is 1.
func ToInt(x any) (int64, bool) {
	switch t := x.(type) {
	case nil:
		return 0, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return int64(t), true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		if t > math.MaxInt64 {
			return math.MaxInt64, true
		}
		return int64(t), true
	case float32:
		return truncate(float64(t)), true
	case float64:
		return truncate(t), true
	}

	s, ok := ToString(x)
	if !ok {
		return 0, false
	}
	return leadingInt(s), true
}

// ToFloat converts a scalar to a float; strings contribute their leading
// decimal number.
func ToFloat(x any) (float64, bool) {
	switch t := x.(type) {
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case string:
		return leadingFloat(t), true
	}
	if s, ok := x.(fmt.Stringer); ok {
		return leadingFloat(s.String()), true
	}
	n, ok := ToInt(x)
	return float64(n), ok
}

func truncate(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	if f <= math.MinInt64 {
		return math.MinInt64
	}
	return int64(f)
}

// numericPrefix returns the longest prefix of s (after leading whitespace)
// that reads as a decimal number with optional sign, fraction and exponent.
func numericPrefix(s string, allowFraction bool) string {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if !allowFraction {
		if digits == 0 {
			return ""
		}
		return s[:i]
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return ""
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}
	return s[:i]
}

func leadingInt(s string) int64 {
	prefix := numericPrefix(s, false)
	if prefix == "" {
		return 0
	}
	n, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		if strings.HasPrefix(prefix, "-") {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return n
}

func leadingFloat(s string) float64 {
	prefix := numericPrefix(s, true)
	if prefix == "" {
		return 0
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0
	}
	return f
}
