package value

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Value is either a scalar or an ordered sequence of scalars.
// The zero Value is the null scalar.
type Value struct {
	scalar any
	items  []any
	seq    bool
}

// Null returns the null scalar.
func Null() Value {
	return Value{}
}

// Scalar wraps a single scalar. Passing a Value returns it unchanged.
func Scalar(v any) Value {
	if vv, ok := v.(Value); ok {
		return vv
	}
	return Value{scalar: v}
}

// Sequence builds a sequence value from the given items.
func Sequence(items ...any) Value {
	cp := make([]any, len(items))
	copy(cp, items)
	return Value{items: cp, seq: true}
}

// Of converts an arbitrary Go value into a Value. Slices and arrays of
// scalars become sequences, []byte becomes a string scalar.
func Of(v any) (Value, error) {
	switch t := v.(type) {
	case Value:
		return t, nil
	case nil:
		return Null(), nil
	case []any:
		for i, item := range t {
			if !IsScalar(item) {
				return Value{}, fmt.Errorf("%w: element %d has type %T", ErrUnsupported, i, item)
			}
		}
		return Sequence(t...), nil
	case []string:
		items := make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
		return Value{items: items, seq: true}, nil
	case []byte:
		return Scalar(string(t)), nil
	}

	if IsScalar(v) {
		return Scalar(v), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		items := make([]any, rv.Len())
		for i := range rv.Len() {
			item := rv.Index(i).Interface()
			if !IsScalar(item) {
				return Value{}, fmt.Errorf("%w: element %d has type %T", ErrUnsupported, i, item)
			}
			items[i] = item
		}
		return Value{items: items, seq: true}, nil
	}

	return Value{}, fmt.Errorf("%w: %T", ErrUnsupported, v)
}

// MustOf is like Of but panics on unsupported input.
func MustOf(v any) Value {
	val, err := Of(v)
	if err != nil {
		panic(err)
	}
	return val
}

// IsSequence reports whether v holds a sequence.
func (v Value) IsSequence() bool {
	return v.seq
}

// IsNull reports whether v is the null scalar.
func (v Value) IsNull() bool {
	return !v.seq && v.scalar == nil
}

// Scalar returns the scalar payload, or nil for sequences.
func (v Value) Scalar() any {
	if v.seq {
		return nil
	}
	return v.scalar
}

// Items returns the sequence elements. A scalar is wrapped into a
// one-element slice, including the null scalar.
func (v Value) Items() []any {
	if !v.seq {
		return []any{v.scalar}
	}
	cp := make([]any, len(v.items))
	copy(cp, v.items)
	return cp
}

// Len returns the number of elements: 1 for a scalar.
func (v Value) Len() int {
	if !v.seq {
		return 1
	}
	return len(v.items)
}

// Interface returns the scalar payload or a copy of the elements as []any.
func (v Value) Interface() any {
	if v.seq {
		return v.Items()
	}
	return v.scalar
}

// String renders a scalar with ToString and joins sequence elements with ",".
func (v Value) String() string {
	if !v.seq {
		s, _ := ToString(v.scalar)
		return s
	}
	parts := make([]string, len(v.items))
	for i, item := range v.items {
		parts[i], _ = ToString(item)
	}
	return strings.Join(parts, ",")
}

// IsEmpty reports whether v counts as "no value": null, an empty sequence,
// or the empty string unless countEmptyString is set.
func (v Value) IsEmpty(countEmptyString bool) bool {
	if v.seq {
		return len(v.items) == 0
	}
	if v.scalar == nil {
		return true
	}
	if s, ok := v.scalar.(string); ok && s == "" {
		return !countEmptyString
	}
	return false
}

// Map applies fn to the scalar, or to every element of a sequence.
func (v Value) Map(fn func(any) any) Value {
	if !v.seq {
		return Scalar(fn(v.scalar))
	}
	items := make([]any, len(v.items))
	for i, item := range v.items {
		items[i] = fn(item)
	}
	return Value{items: items, seq: true}
}

// Equal reports whether both values have the same shape and identical elements.
func (v Value) Equal(o Value) bool {
	if v.seq != o.seq {
		return false
	}
	if !v.seq {
		return v.scalar == o.scalar
	}
	if len(v.items) != len(o.items) {
		return false
	}
	for i := range v.items {
		if v.items[i] != o.items[i] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the scalar or the element list.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.seq && v.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes JSON scalars and arrays of scalars.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := Of(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
