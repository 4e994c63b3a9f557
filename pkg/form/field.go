package form

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/rule"
	"github.com/dmitrymomot/formkit/pkg/spec"
	"github.com/dmitrymomot/formkit/pkg/value"
)

// Field is a single form input: its value, default, options, and the rules
// and filters attached to it.
type Field struct {
	kit   *Kit
	owner *FieldSet

	name     string
	basename string
	typ      string
	label    string

	raw     value.Value
	set     bool
	def     value.Value
	options Options

	rules   spec.List
	filters spec.List

	attrs map[string]any
	tags  map[string]any
}

// NewField creates a field bound to DefaultKit.
func NewField(name, typ, label string) *Field {
	return DefaultKit().NewField(name, typ, label)
}

// NewField creates a field bound to k.
func (k *Kit) NewField(name, typ, label string) *Field {
	return &Field{
		kit:      k,
		name:     name,
		basename: basename(name),
		typ:      typ,
		label:    label,
	}
}

// basename strips bracket suffixes: "tags[]" and "tags[0]" become "tags".
func basename(name string) string {
	if i := strings.IndexByte(name, '['); i > 0 {
		return name[:i]
	}
	return name
}

func (f *Field) Kit() *Kit { return f.kit }

func (f *Field) Name() string { return f.name }

// Basename is the name without bracket suffixes.
func (f *Field) Basename() string { return f.basename }

func (f *Field) Type() string { return f.typ }

func (f *Field) SetType(typ string) *Field {
	f.typ = typ
	return f
}

// Label returns the display label, or the name when none is set.
func (f *Field) Label() string {
	if f.label == "" {
		return f.name
	}
	return f.label
}

func (f *Field) SetLabel(label string) *Field {
	f.label = label
	return f
}

// Multiple reports whether the field carries a sequence: its name ends in
// "[]" or the "multiple" attribute is truthy.
func (f *Field) Multiple() bool {
	if strings.HasSuffix(f.name, "[]") {
		return true
	}
	if v, ok := f.attrs["multiple"]; ok {
		return !value.IsBlank(v)
	}
	return false
}

// Value returns Raw passed through the attached filters.
func (f *Field) Value() value.Value {
	return f.kit.filters.Apply(f, f.Raw())
}

// Raw returns the assigned value, or the default while none was assigned.
func (f *Field) Raw() value.Value {
	if !f.set {
		return f.def
	}
	return f.raw
}

// SetValue assigns a raw value. It panics with ErrInvalidArgument for values
// that are neither scalars nor slices of scalars.
func (f *Field) SetValue(v any) *Field {
	if err := f.setValue(v); err != nil {
		panic(err)
	}
	return f
}

func (f *Field) setValue(v any) error {
	val, err := value.Of(v)
	if err != nil {
		return fmt.Errorf("%w: field %q: %w", ErrInvalidArgument, f.name, err)
	}
	f.raw, f.set = val, true
	return nil
}

// IsSet reports whether a value was assigned since creation or Reset.
func (f *Field) IsSet() bool { return f.set }

// Reset forgets the assigned value.
func (f *Field) Reset() *Field {
	f.raw, f.set = value.Null(), false
	return f
}

func (f *Field) Default() value.Value { return f.def }

// SetDefault sets the fallback value. It panics like SetValue.
func (f *Field) SetDefault(v any) *Field {
	if err := f.setDefault(v); err != nil {
		panic(err)
	}
	return f
}

func (f *Field) setDefault(v any) error {
	val, err := value.Of(v)
	if err != nil {
		return fmt.Errorf("%w: default of field %q: %w", ErrInvalidArgument, f.name, err)
	}
	f.def = val
	return nil
}

// HasValue reports whether an assigned value is present. Unassigned, null,
// empty sequences and "" (unless countEmpty) count as no value.
func (f *Field) HasValue(countEmpty bool) bool {
	return f.set && !f.raw.IsEmpty(countEmpty)
}

func (f *Field) Options() Options { return slices.Clone(f.options) }

func (f *Field) SetOptions(opts Options) *Field {
	f.options = slices.Clone(opts)
	return f
}

// OptionKeys returns the option keys in order.
func (f *Field) OptionKeys() []string { return f.options.Keys() }

// OptionLabel returns the label of the current filtered value.
func (f *Field) OptionLabel() (string, bool) {
	v := f.Value()
	if v.IsSequence() {
		return "", false
	}
	return f.options.Label(v.Scalar())
}

// Rule parses s with the kit parser and attaches the rules. A name already
// attached keeps its position and takes the new arguments. Malformed specs
// panic with ErrInvalidArgument.
func (f *Field) Rule(s string) *Field {
	list, err := f.kit.parser.Parse(s)
	if err != nil {
		panic(fmt.Errorf("%w: rule %q on field %q: %w", ErrInvalidArgument, s, f.name, err))
	}
	return f.AddRules(list...)
}

// AddRules attaches already parsed rules.
func (f *Field) AddRules(specs ...spec.Spec) *Field {
	for _, s := range specs {
		if f.rules.Set(s) {
			f.kit.warn("duplicate rule attachment", slog.String("rule", s.Name), slog.String("field", f.name))
		}
	}
	return f
}

// Rules returns a copy of the attached rules.
func (f *Field) Rules() spec.List { return f.rules.Clone() }

// ClearRules detaches the named rules, or every rule when no name is given.
func (f *Field) ClearRules(names ...string) *Field {
	if len(names) == 0 {
		f.rules = nil
		return f
	}
	f.rules.Remove(names...)
	return f
}

// Filter parses s and attaches the filters, like Rule.
func (f *Field) Filter(s string) *Field {
	list, err := f.kit.parser.Parse(s)
	if err != nil {
		panic(fmt.Errorf("%w: filter %q on field %q: %w", ErrInvalidArgument, s, f.name, err))
	}
	return f.AddFilters(list...)
}

func (f *Field) AddFilters(specs ...spec.Spec) *Field {
	for _, s := range specs {
		if f.filters.Set(s) {
			f.kit.warn("duplicate filter attachment", slog.String("filter", s.Name), slog.String("field", f.name))
		}
	}
	return f
}

func (f *Field) Filters() spec.List { return f.filters.Clone() }

func (f *Field) ClearFilters(names ...string) *Field {
	if len(names) == 0 {
		f.filters = nil
		return f
	}
	f.filters.Remove(names...)
	return f
}

// Tag returns out-of-band metadata stored with SetTag.
func (f *Field) Tag(name string) (any, bool) {
	v, ok := f.tags[name]
	return v, ok
}

func (f *Field) SetTag(name string, v any) *Field {
	if f.tags == nil {
		f.tags = make(map[string]any)
	}
	f.tags[name] = v
	return f
}

// Tags returns a copy of all tags.
func (f *Field) Tags() map[string]any { return maps.Clone(f.tags) }

// Sibling returns the filtered value of another field of the owning set.
func (f *Field) Sibling(name string) (value.Value, bool) {
	if f.owner == nil {
		return value.Value{}, false
	}
	other := f.owner.Get(name)
	if other == nil {
		return value.Value{}, false
	}
	return other.Value(), true
}

// Validate runs the field rules on their own. Sibling based rules only see
// other fields when the field belongs to a set.
func (f *Field) Validate(ctx context.Context) (*rule.Failure, error) {
	return f.kit.rules.Evaluator().Evaluate(ctx, f)
}
