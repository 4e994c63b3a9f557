package form

import (
	"fmt"
	"maps"
	"slices"

	"github.com/dmitrymomot/formkit/pkg/value"
)

// Option is one choice of a select, radio or checkbox field.
type Option struct {
	Key   string `json:"key" yaml:"key" toml:"key"`
	Label string `json:"label" yaml:"label" toml:"label"`
}

// Options is an ordered list of choices. Keys are compared by string form.
type Options []Option

// NewOptions builds options from key, label pairs. A trailing key without
// label uses the key as label.
func NewOptions(pairs ...string) Options {
	opts := make(Options, 0, (len(pairs)+1)/2)
	for i := 0; i < len(pairs); i += 2 {
		label := pairs[i]
		if i+1 < len(pairs) {
			label = pairs[i+1]
		}
		opts = append(opts, Option{Key: pairs[i], Label: label})
	}
	return opts
}

// Keys returns the option keys in order.
func (o Options) Keys() []string {
	keys := make([]string, len(o))
	for i, opt := range o {
		keys[i] = opt.Key
	}
	return keys
}

// Label returns the label of key, compared by string form.
func (o Options) Label(key any) (string, bool) {
	s, ok := value.ToString(key)
	if !ok {
		return "", false
	}
	for _, opt := range o {
		if opt.Key == s {
			return opt.Label, true
		}
	}
	return "", false
}

// Has reports whether key is one of the options.
func (o Options) Has(key any) bool {
	_, ok := o.Label(key)
	return ok
}

// toOptions accepts Options, []Option, string slices (key equals label)
// and string keyed maps (sorted by key).
func toOptions(v any) (Options, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case Options:
		return slices.Clone(t), nil
	case []Option:
		return slices.Clone(Options(t)), nil
	case []string:
		opts := make(Options, len(t))
		for i, s := range t {
			opts[i] = Option{Key: s, Label: s}
		}
		return opts, nil
	case map[string]string:
		opts := make(Options, 0, len(t))
		for _, k := range slices.Sorted(maps.Keys(t)) {
			opts = append(opts, Option{Key: k, Label: t[k]})
		}
		return opts, nil
	case map[string]any:
		opts := make(Options, 0, len(t))
		for _, k := range slices.Sorted(maps.Keys(t)) {
			label, ok := value.ToString(t[k])
			if !ok {
				return nil, fmt.Errorf("%w: option %q has label of type %T", ErrInvalidArgument, k, t[k])
			}
			opts = append(opts, Option{Key: k, Label: label})
		}
		return opts, nil
	}
	return nil, fmt.Errorf("%w: options of type %T", ErrInvalidArgument, v)
}
