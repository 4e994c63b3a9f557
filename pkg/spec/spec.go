package spec

import (
	"slices"
	"strings"
)

// Spec is a single named rule or filter invocation.
type Spec struct {
	Name string
	Args []string
}

// New builds a Spec.
func New(name string, args ...string) Spec {
	return Spec{Name: name, Args: slices.Clone(args)}
}

// Arg returns the i-th argument or def when it is missing or empty.
func (s Spec) Arg(i int, def string) string {
	if i < 0 || i >= len(s.Args) || s.Args[i] == "" {
		return def
	}
	return s.Args[i]
}

// String renders the spec back to the pipe/colon grammar using the default
// escape sequence.
func (s Spec) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	for _, a := range s.Args {
		b.WriteByte(':')
		b.WriteString(escapeArg(a, defaultEscape))
	}
	return b.String()
}

// List is an ordered collection of specs with unique names.
type List []Spec

// Set adds s, or replaces the arguments of an existing entry with the same
// name without moving it. It reports whether an entry was replaced.
func (l *List) Set(s Spec) bool {
	s.Args = slices.Clone(s.Args)
	for i := range *l {
		if (*l)[i].Name == s.Name {
			(*l)[i].Args = s.Args
			return true
		}
	}
	*l = append(*l, s)
	return false
}

// Get returns the entry with the given name.
func (l List) Get(name string) (Spec, bool) {
	for _, s := range l {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}

// Has reports whether an entry with the given name exists.
func (l List) Has(name string) bool {
	_, ok := l.Get(name)
	return ok
}

// Remove deletes the named entries and returns how many were removed.
func (l *List) Remove(names ...string) int {
	before := len(*l)
	*l = slices.DeleteFunc(*l, func(s Spec) bool {
		return slices.Contains(names, s.Name)
	})
	return before - len(*l)
}

// Names returns the entry names in order.
func (l List) Names() []string {
	names := make([]string, len(l))
	for i, s := range l {
		names[i] = s.Name
	}
	return names
}

// Clone returns a deep copy of l.
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	out := make(List, len(l))
	for i, s := range l {
		out[i] = Spec{Name: s.Name, Args: slices.Clone(s.Args)}
	}
	return out
}

// String renders the list in the pipe/colon grammar.
func (l List) String() string {
	parts := make([]string, len(l))
	for i, s := range l {
		parts[i] = s.String()
	}
	return strings.Join(parts, "|")
}
