package form

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/value"
)

// DefaultPlaceholder marks where SetErrorFormat inserts the message.
const DefaultPlaceholder = "{msg}"

// Form is a named field set that runs validation and keeps the resulting
// per-field messages.
type Form struct {
	*FieldSet

	name        string
	errs        ValidationErrors
	errFormat   string
	placeholder string
}

// NewForm creates an empty form bound to DefaultKit.
func NewForm(name string) *Form {
	return DefaultKit().NewForm(name)
}

func (k *Kit) NewForm(name string) *Form {
	return &Form{
		FieldSet:    k.NewFieldSet(),
		name:        name,
		placeholder: DefaultPlaceholder,
	}
}

func (f *Form) Name() string { return f.name }

// Validate runs every field's rules and reports whether no field failed.
// A predicate error also counts as invalid; use ValidateContext to see it.
func (f *Form) Validate() bool {
	return f.ValidateContext(context.Background()) == nil
}

// ValidateContext runs the rule evaluator over every field in insertion
// order, keeping at most one message per field. It returns nil, the
// ValidationErrors, or the first predicate error.
func (f *Form) ValidateContext(ctx context.Context) error {
	f.errs = nil
	eval := f.kit.rules.Evaluator()

	for _, field := range f.fields {
		failure, err := eval.Evaluate(ctx, field)
		if err != nil {
			return err
		}
		if failure != nil {
			f.errs.Add(ValidationError{
				Field:   failure.Field,
				Rule:    failure.Rule,
				Args:    failure.Args,
				Message: failure.Message,
			})
		}
	}

	if f.errs.IsEmpty() {
		return nil
	}
	return f.Errors()
}

// ValidateWith validates the form and, only when it is valid, runs hook.
// The hook may record errors with SetError; they are part of the result.
func (f *Form) ValidateWith(ctx context.Context, hook func(context.Context, *Form) error) error {
	if err := f.ValidateContext(ctx); err != nil {
		return err
	}
	if hook != nil {
		if err := hook(ctx, f); err != nil {
			return err
		}
	}
	if f.errs.IsEmpty() {
		return nil
	}
	return f.Errors()
}

// SetErrorFormat wraps every message returned by ErrorMessage and
// ErrorMessages, replacing placeholder (DefaultPlaceholder when empty) in
// format. An empty format turns wrapping off.
func (f *Form) SetErrorFormat(format, placeholder string) *Form {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	f.errFormat, f.placeholder = format, placeholder
	return f
}

func (f *Form) format(msg string) string {
	if f.errFormat == "" {
		return msg
	}
	return strings.ReplaceAll(f.errFormat, f.placeholder, msg)
}

// ErrorMessage returns the formatted message of name, or "".
func (f *Form) ErrorMessage(name string) string {
	if err, ok := f.errs.Get(name); ok {
		return f.format(err.Message)
	}
	return ""
}

// ErrorMessages returns formatted messages of the named fields that
// failed, or of every failed field when no name is given.
func (f *Form) ErrorMessages(names ...string) map[string]string {
	out := make(map[string]string)
	for _, err := range f.errs {
		if len(names) == 0 || slices.Contains(names, err.Field) {
			out[err.Field] = f.format(err.Message)
		}
	}
	return out
}

// Errors returns a copy of the recorded failures with unformatted messages.
func (f *Form) Errors() ValidationErrors {
	return slices.Clone(f.errs)
}

// HasError reports whether any of the named fields failed, or whether any
// field failed when no name is given.
func (f *Form) HasError(names ...string) bool {
	if len(names) == 0 {
		return !f.errs.IsEmpty()
	}
	return slices.ContainsFunc(names, f.errs.Has)
}

// SetError records a message for name, replacing an existing one.
func (f *Form) SetError(name, msg string) *Form {
	f.errs.Add(ValidationError{Field: name, Message: msg})
	return f
}

// ClearErrors forgets the named messages, or all of them.
func (f *Form) ClearErrors(names ...string) *Form {
	if len(names) == 0 {
		f.errs = nil
		return f
	}
	f.errs = slices.DeleteFunc(f.errs, func(err ValidationError) bool {
		return slices.Contains(names, err.Field)
	})
	return f
}

// SetValues assigns raw values by field name. Unknown names and
// unsupported values are reported together; the other values are assigned.
func (f *Form) SetValues(values map[string]any) error {
	var errs []error
	for _, name := range slices.Sorted(maps.Keys(values)) {
		field := f.Get(name)
		if field == nil {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownField, name))
			continue
		}
		if err := field.setValue(values[name]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Input assigns submitted values. Multiple fields take every value as a
// sequence, others the first one. "tags[]" and "tags" are interchangeable
// keys. Fields without a submitted key keep their state.
func (f *Form) Input(values url.Values) *Form {
	for _, field := range f.fields {
		vals, ok := lookupInput(values, field)
		if !ok {
			continue
		}
		if field.Multiple() {
			field.raw, field.set = value.MustOf(vals), true
			continue
		}
		if len(vals) == 0 {
			field.raw, field.set = value.Null(), true
			continue
		}
		field.raw, field.set = value.Scalar(vals[0]), true
	}
	return f
}

func lookupInput(values url.Values, field *Field) ([]string, bool) {
	for _, key := range []string{field.name, field.basename, field.basename + "[]"} {
		if vals, ok := values[key]; ok {
			return vals, true
		}
	}
	return nil, false
}

// Values returns the filtered values of the named fields, or of every field.
func (f *Form) Values(names ...string) map[string]any {
	out := make(map[string]any)
	for _, field := range f.selected(names) {
		out[field.name] = field.Value().Interface()
	}
	return out
}

// ValidValues is like Values but only includes fields that hold a value.
func (f *Form) ValidValues(names ...string) map[string]any {
	out := make(map[string]any)
	for _, field := range f.selected(names) {
		if field.HasValue(false) {
			out[field.name] = field.Value().Interface()
		}
	}
	return out
}

// HasValue reports whether any (or, with every, each) of the named fields
// holds a value. Without names every field is considered. Unknown names
// count as holding no value.
func (f *Form) HasValue(every bool, names ...string) bool {
	if len(names) == 0 {
		names = f.Names()
	}
	for _, name := range names {
		field := f.Get(name)
		has := field != nil && field.HasValue(false)
		if every && !has {
			return false
		}
		if !every && has {
			return true
		}
	}
	return every
}

// Label returns the label of name, or "" for an unknown field.
func (f *Form) Label(name string) string {
	if field := f.Get(name); field != nil {
		return field.Label()
	}
	return ""
}

func (f *Form) Options(name string) Options {
	if field := f.Get(name); field != nil {
		return field.Options()
	}
	return nil
}

// OptionLabel returns the option label of key for name, or of the field's
// current value when key is omitted.
func (f *Form) OptionLabel(name string, key ...any) (string, bool) {
	field := f.Get(name)
	if field == nil {
		return "", false
	}
	if len(key) == 0 {
		return field.OptionLabel()
	}
	return field.options.Label(key[0])
}

func (f *Form) selected(names []string) []*Field {
	if len(names) == 0 {
		return f.fields
	}
	out := make([]*Field, 0, len(names))
	for _, name := range names {
		if field := f.Get(name); field != nil {
			out = append(out, field)
		}
	}
	return out
}
