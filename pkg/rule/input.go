package rule

import (
	"context"
	"strconv"
	"time"

	"github.com/dmitrymomot/formkit/pkg/spec"
	"github.com/dmitrymomot/formkit/pkg/value"
)

// Target is what the evaluator needs from a form field.
type Target interface {
	Name() string
	Label() string
	Type() string
	// Raw returns the unfiltered value with the default substituted.
	Raw() value.Value
	Rules() spec.List
	// OptionKeys returns the string form of every option key.
	OptionKeys() []string
	// Sibling returns the filtered value of another field in the same set.
	Sibling(name string) (value.Value, bool)
}

// Input is passed to a predicate once per checked element.
type Input struct {
	// Value is a single element, or the whole value.Value for rules that do
	// not separate sequences.
	Value any
	Args  []string
	// Index is the element position within the field value.
	Index int
	Field Target
	// Lookup resolves sibling field values. It is nil for standalone fields.
	Lookup func(name string) (value.Value, bool)

	ctx context.Context
	reg *Registry
}

// NewInput builds an Input outside of an evaluation, mostly for calling
// predicates directly.
func NewInput(ctx context.Context, v any, args ...string) Input {
	return Input{ctx: ctx, Value: v, Args: args}
}

// Context returns the context passed to Evaluate.
func (in Input) Context() context.Context {
	if in.ctx == nil {
		return context.Background()
	}
	return in.ctx
}

// Arg returns the i-th rule argument or def when missing or empty.
func (in Input) Arg(i int, def string) string {
	if i < 0 || i >= len(in.Args) || in.Args[i] == "" {
		return def
	}
	return in.Args[i]
}

// IntArg returns the i-th argument coerced like a form value.
func (in Input) IntArg(i int) int64 {
	n, _ := value.ToInt(in.Arg(i, ""))
	return n
}

// String returns the element's string form.
func (in Input) String() string {
	s, _ := value.ToString(in.Value)
	return s
}

// Int returns the element coerced to an integer.
func (in Input) Int() int64 {
	n, _ := value.ToInt(in.Value)
	return n
}

// Now returns the registry clock, or time.Now outside an evaluation.
func (in Input) Now() time.Time {
	if in.reg == nil {
		return time.Now()
	}
	return in.reg.now()
}

// Location is the zone used to read dates without an explicit offset.
func (in Input) Location() *time.Location {
	if in.reg == nil {
		return time.Local
	}
	return in.reg.loc
}

func (in Input) sibling(name string) (value.Value, bool) {
	if in.Lookup == nil {
		return value.Value{}, false
	}
	return in.Lookup(name)
}

func itoa(i int) string { return strconv.Itoa(i) }
