package pattern

import (
	"regexp"
	"strings"
	"sync"
)

// Translate turns "/body/flags" into a Go pattern. Supported delimiters are
// / @ # ~ ! %; flags i m s U map to inline flags, u and x are accepted and
// ignored. Anything else is returned unchanged.
func Translate(p string) string {
	if len(p) < 2 || !strings.ContainsRune("/@#~!%", rune(p[0])) {
		return p
	}
	end := strings.LastIndexByte(p, p[0])
	if end <= 0 {
		return p
	}
	body, flags := p[1:end], p[end+1:]

	var inline strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's', 'U':
			inline.WriteRune(f)
		case 'u', 'x':
		default:
			return p
		}
	}
	if inline.Len() == 0 {
		return body
	}
	return "(?" + inline.String() + ")" + body
}

// Cache compiles translated patterns once. The zero value is ready to use.
type Cache struct {
	compiled sync.Map // source pattern -> *regexp.Regexp
}

// Compile returns the cached expression for p, compiling it on first use.
// Failed compilations are not cached.
func (c *Cache) Compile(p string) (*regexp.Regexp, error) {
	if re, ok := c.compiled.Load(p); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(Translate(p))
	if err != nil {
		return nil, err
	}
	actual, _ := c.compiled.LoadOrStore(p, re)
	return actual.(*regexp.Regexp), nil
}

var defaultCache Cache

// Compile uses a process-wide cache.
func Compile(p string) (*regexp.Regexp, error) {
	return defaultCache.Compile(p)
}
