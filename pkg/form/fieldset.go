package form

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"
)

// FieldSet is an ordered, name keyed collection of fields.
//
// Fields added with Add belong to the set: sibling lookups made by their
// rules resolve against it. Sets returned by FindIndex, Filter and OfType are
// views and leave ownership unchanged.
type FieldSet struct {
	kit    *Kit
	fields []*Field
	index  map[string]int
	view   bool
}

// NewFieldSet creates an empty set bound to DefaultKit.
func NewFieldSet() *FieldSet {
	return DefaultKit().NewFieldSet()
}

func (k *Kit) NewFieldSet() *FieldSet {
	return &FieldSet{kit: k, index: make(map[string]int)}
}

func (fs *FieldSet) Kit() *Kit { return fs.kit }

// Add appends fields. A field whose name is already present replaces the
// old one in place.
func (fs *FieldSet) Add(fields ...*Field) *FieldSet {
	for _, f := range fields {
		if f == nil {
			continue
		}
		if !fs.view {
			f.owner = fs
		}
		if i, ok := fs.index[f.name]; ok {
			if prev := fs.fields[i]; prev != f && prev.owner == fs {
				prev.owner = nil
			}
			fs.fields[i] = f
			continue
		}
		fs.index[f.name] = len(fs.fields)
		fs.fields = append(fs.fields, f)
	}
	return fs
}

// AddSet appends every field of other.
func (fs *FieldSet) AddSet(other *FieldSet) *FieldSet {
	if other == nil {
		return fs
	}
	return fs.Add(other.fields...)
}

// New creates a field with the set's kit, adds it and returns it.
func (fs *FieldSet) New(name, typ, label string) *Field {
	f := fs.kit.NewField(name, typ, label)
	fs.Add(f)
	return f
}

// Remove deletes the named fields and returns how many were removed.
func (fs *FieldSet) Remove(names ...string) int {
	before := len(fs.fields)
	fs.fields = slices.DeleteFunc(fs.fields, func(f *Field) bool {
		if !slices.Contains(names, f.name) {
			return false
		}
		if f.owner == fs {
			f.owner = nil
		}
		return true
	})
	fs.reindex()
	return before - len(fs.fields)
}

func (fs *FieldSet) RemoveAll() *FieldSet {
	for _, f := range fs.fields {
		if f.owner == fs {
			f.owner = nil
		}
	}
	fs.fields = nil
	fs.index = make(map[string]int)
	return fs
}

func (fs *FieldSet) reindex() {
	fs.index = make(map[string]int, len(fs.fields))
	for i, f := range fs.fields {
		fs.index[f.name] = i
	}
}

// Get returns the named field or nil.
func (fs *FieldSet) Get(name string) *Field {
	if i, ok := fs.index[name]; ok {
		return fs.fields[i]
	}
	return nil
}

// At returns the field at position i or nil.
func (fs *FieldSet) At(i int) *Field {
	if i < 0 || i >= len(fs.fields) {
		return nil
	}
	return fs.fields[i]
}

// GetMany returns a view of the named fields in argument order. Unknown
// names are skipped.
func (fs *FieldSet) GetMany(names ...string) *FieldSet {
	out := fs.newView()
	for _, name := range names {
		out.Add(fs.Get(name))
	}
	return out
}

func (fs *FieldSet) Exists(name string) bool {
	_, ok := fs.index[name]
	return ok
}

func (fs *FieldSet) Len() int { return len(fs.fields) }

// All iterates position and field in insertion order.
func (fs *FieldSet) All() iter.Seq2[int, *Field] {
	return func(yield func(int, *Field) bool) {
		for i, f := range fs.fields {
			if !yield(i, f) {
				return
			}
		}
	}
}

func (fs *FieldSet) Fields() []*Field { return slices.Clone(fs.fields) }

func (fs *FieldSet) Names() []string {
	names := make([]string, len(fs.fields))
	for i, f := range fs.fields {
		names[i] = f.name
	}
	return names
}

// Filter returns a view of the fields for which keep returns true.
func (fs *FieldSet) Filter(keep func(f *Field, i int) bool) *FieldSet {
	out := fs.newView()
	for i, f := range fs.fields {
		if keep(f, i) {
			out.Add(f)
		}
	}
	return out
}

// OfType returns a view of the fields of the given types.
func (fs *FieldSet) OfType(types ...string) *FieldSet {
	return fs.Filter(func(f *Field, _ int) bool {
		return slices.Contains(types, f.typ)
	})
}

var indexOperators = []string{"!=", ">=", "<=", "=", ">", "<"}

// FindIndex selects fields by position. expr is an integer optionally
// prefixed with one of != >= <= = > <, e.g. ">=2".
func (fs *FieldSet) FindIndex(expr string) (*FieldSet, error) {
	expr = strings.TrimSpace(expr)
	op := "="
	for _, prefix := range indexOperators {
		if strings.HasPrefix(expr, prefix) {
			op, expr = prefix, strings.TrimSpace(expr[len(prefix):])
			break
		}
	}
	n, err := strconv.Atoi(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: index expression %q", ErrInvalidArgument, expr)
	}

	return fs.Filter(func(_ *Field, i int) bool {
		switch op {
		case "!=":
			return i != n
		case ">=":
			return i >= n
		case "<=":
			return i <= n
		case ">":
			return i > n
		case "<":
			return i < n
		}
		return i == n
	}), nil
}

func (fs *FieldSet) newView() *FieldSet {
	out := fs.kit.NewFieldSet()
	out.view = true
	return out
}
