package form

import (
	"fmt"
	"maps"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/spec"
)

type attrAccessor struct {
	get func(f *Field) any
	set func(f *Field, v any) error
}

// functionalAttrs route attribute names that map to field properties.
var functionalAttrs = map[string]attrAccessor{
	"name": {
		get: func(f *Field) any { return f.name },
		set: func(f *Field, _ any) error {
			return fmt.Errorf("%w: name of field %q is read-only", ErrInvalidArgument, f.name)
		},
	},
	"type": {
		get: func(f *Field) any { return f.typ },
		set: func(f *Field, v any) error {
			s, err := stringAttr(f, "type", v)
			if err == nil {
				f.typ = s
			}
			return err
		},
	},
	"label": {
		get: func(f *Field) any { return f.Label() },
		set: func(f *Field, v any) error {
			s, err := stringAttr(f, "label", v)
			if err == nil {
				f.label = s
			}
			return err
		},
	},
	"value": {
		get: func(f *Field) any { return f.Value().Interface() },
		set: func(f *Field, v any) error { return f.setValue(v) },
	},
	"default": {
		get: func(f *Field) any { return f.def.Interface() },
		set: func(f *Field, v any) error { return f.setDefault(v) },
	},
	"options": {
		get: func(f *Field) any { return f.Options() },
		set: func(f *Field, v any) error {
			opts, err := toOptions(v)
			if err == nil {
				f.options = opts
			}
			return err
		},
	},
	"rule": {
		get: func(f *Field) any { return f.rules.String() },
		set: func(f *Field, v any) error {
			list, err := specAttr(f, "rule", v)
			if err == nil {
				f.rules = nil
				f.AddRules(list...)
			}
			return err
		},
	},
	"filter": {
		get: func(f *Field) any { return f.filters.String() },
		set: func(f *Field, v any) error {
			list, err := specAttr(f, "filter", v)
			if err == nil {
				f.filters = nil
				f.AddFilters(list...)
			}
			return err
		},
	},
}

func stringAttr(f *Field, name string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s of field %q must be a string, got %T", ErrInvalidArgument, name, f.name, v)
	}
	return s, nil
}

func specAttr(f *Field, name string, v any) (spec.List, error) {
	switch t := v.(type) {
	case spec.List:
		return t.Clone(), nil
	case string:
		list, err := f.kit.parser.Parse(t)
		if err != nil {
			return nil, fmt.Errorf("%w: %s of field %q: %w", ErrInvalidArgument, name, f.name, err)
		}
		return list, nil
	}
	return nil, fmt.Errorf("%w: %s of field %q must be a string or spec.List, got %T", ErrInvalidArgument, name, f.name, v)
}

// Attr returns an attribute. The names name, type, label, value, default,
// options, rule and filter read the matching field property.
func (f *Field) Attr(name string) (any, bool) {
	if acc, ok := functionalAttrs[strings.ToLower(name)]; ok {
		return acc.get(f), true
	}
	v, ok := f.attrs[name]
	return v, ok
}

// SetAttr sets an attribute, routing the functional names to their setters.
// "rule" and "filter" replace the attached lists.
func (f *Field) SetAttr(name string, v any) error {
	if acc, ok := functionalAttrs[strings.ToLower(name)]; ok {
		return acc.set(f, v)
	}
	if f.attrs == nil {
		f.attrs = make(map[string]any)
	}
	f.attrs[name] = v
	return nil
}

// Attrs returns a copy of the plain (non functional) attributes.
func (f *Field) Attrs() map[string]any { return maps.Clone(f.attrs) }

// RemoveAttr deletes plain attributes, or all of them without names.
func (f *Field) RemoveAttr(names ...string) *Field {
	if len(names) == 0 {
		f.attrs = nil
		return f
	}
	for _, name := range names {
		delete(f.attrs, name)
	}
	return f
}
