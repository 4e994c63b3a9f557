package spec

import (
	"fmt"
	"strings"
	"unicode"
)

const defaultEscape = `\`

// Parser splits specification strings on "|" and ":" honouring an escape
// sequence in front of either delimiter.
type Parser struct {
	escape string
}

var defaultParser = &Parser{escape: defaultEscape}

// NewParser returns a parser using escape in front of literal delimiters.
func NewParser(escape string) (*Parser, error) {
	if escape == "" {
		return nil, ErrEmptyEscape
	}
	return &Parser{escape: escape}, nil
}

// Escape returns the parser's escape sequence.
func (p *Parser) Escape() string {
	return p.escape
}

// Parse parses s with the default backslash escape.
func Parse(s string) (List, error) {
	return defaultParser.Parse(s)
}

// MustParse is like Parse but panics on error.
func MustParse(s string) List {
	l, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return l
}

// Parse splits s into specs. Empty segments are skipped, names and arguments
// are trimmed, and a repeated name replaces the earlier arguments. An escaped
// leading or trailing space or tab survives the trim.
func (p *Parser) Parse(s string) (List, error) {
	var list List
	for _, segment := range p.split(s, '|') {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		parts := p.split(segment, ':')
		for i := range parts {
			parts[i] = p.unescape(p.trim(parts[i]))
		}
		if parts[0] == "" {
			return nil, fmt.Errorf("%w: %q", ErrEmptyName, segment)
		}
		list.Set(Spec{Name: parts[0], Args: parts[1:]})
	}
	return list, nil
}

// split cuts s on every delim not preceded by the escape sequence. Escapes
// are left in place for unescape.
func (p *Parser) split(s string, delim byte) []string {
	var (
		out   []string
		start int
	)
	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], p.escape) && i+len(p.escape) < len(s) && isDelim(s[i+len(p.escape)]) {
			i += len(p.escape) + 1
			continue
		}
		if s[i] == delim {
			out = append(out, s[start:i])
			start = i + 1
		}
		i++
	}
	return append(out, s[start:])
}

// trim drops surrounding whitespace but keeps a trailing escaped space or
// tab for unescape.
func (p *Parser) trim(s string) string {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	trimmed := strings.TrimRightFunc(s, unicode.IsSpace)
	if n := len(trimmed); n < len(s) && strings.HasSuffix(trimmed, p.escape) && isBlankByte(s[n]) {
		return s[:n+1]
	}
	return trimmed
}

func (p *Parser) unescape(s string) string {
	if !strings.Contains(s, p.escape) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], p.escape) && i+len(p.escape) < len(s) && isDelim(s[i+len(p.escape)]) {
			b.WriteByte(s[i+len(p.escape)])
			i += len(p.escape) + 1
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// isDelim reports whether the escape sequence applies to c.
func isDelim(c byte) bool {
	return c == '|' || c == ':' || isBlankByte(c)
}

func isBlankByte(c byte) bool {
	return c == ' ' || c == '\t'
}

func escapeArg(s, escape string) string {
	if strings.ContainsAny(s, "|:") {
		s = strings.NewReplacer("|", escape+"|", ":", escape+":").Replace(s)
	}
	if s == "" {
		return s
	}
	if isBlankByte(s[len(s)-1]) {
		s = s[:len(s)-1] + escape + s[len(s)-1:]
	}
	if isBlankByte(s[0]) {
		s = escape + s
	}
	return s
}
