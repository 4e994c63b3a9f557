package filter

import (
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/formkit/pkg/pattern"
	"github.com/dmitrymomot/formkit/pkg/spec"
	"github.com/dmitrymomot/formkit/pkg/value"
)

// Target is what the pipeline needs from a form field.
type Target interface {
	Name() string
	Filters() spec.List
	OptionKeys() []string
}

// Input is passed to a filter function.
type Input struct {
	Value value.Value
	Args  []string
	// Field is set only for filters registered with NeedsField.
	Field Target

	reg *Registry
}

// Arg returns the i-th argument or def when missing or empty.
func (in Input) Arg(i int, def string) string {
	if i < 0 || i >= len(in.Args) || in.Args[i] == "" {
		return def
	}
	return in.Args[i]
}

func (in Input) location() *time.Location {
	if in.reg == nil {
		return time.Local
	}
	return in.reg.loc
}

func (in Input) language() language.Tag {
	if in.reg == nil {
		return language.Und
	}
	return in.reg.tag
}

// Func transforms a value.
type Func func(in Input) value.Value

// Definition is a registry entry.
type Definition struct {
	Name       string
	Func       Func
	NeedsField bool
}

// DefineOption adjusts a Definition created by Define.
type DefineOption func(*Definition)

// NeedsField passes the owning field to the filter.
func NeedsField() DefineOption {
	return func(d *Definition) { d.NeedsField = true }
}

// Registry maps filter names to definitions.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition

	tag      language.Tag
	strict   bool
	builtins bool
	logger   *slog.Logger
	loc      *time.Location

	patterns pattern.Cache
}

// Option configures a Registry.
type Option func(*Registry)

// WithLanguage sets the language for upper and lower.
func WithLanguage(lang string) Option {
	return func(r *Registry) {
		if tag, err := language.Parse(lang); err == nil {
			r.tag = tag
		}
	}
}

// WithStrict enables configuration warnings.
func WithStrict(strict bool) Option {
	return func(r *Registry) { r.strict = strict }
}

// WithLogger sets the logger for strict mode warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithLocation sets the zone used by the date filters.
func WithLocation(loc *time.Location) Option {
	return func(r *Registry) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithoutBuiltins starts from an empty registry.
func WithoutBuiltins() Option {
	return func(r *Registry) { r.builtins = false }
}

// NewRegistry returns a registry preloaded with the built-in filters.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		defs:     make(map[string]Definition),
		tag:      language.Und,
		builtins: true,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		loc:      time.Local,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.builtins {
		registerBuiltins(r)
	}
	return r
}

// Define registers fn under name. A nil fn is ignored.
func (r *Registry) Define(name string, fn Func, opts ...DefineOption) {
	d := Definition{Name: name, Func: fn}
	for _, opt := range opts {
		opt(&d)
	}
	r.Register(d)
}

// DefineAll registers several filters that do not need the field.
func (r *Registry) DefineAll(fns map[string]Func) {
	for _, name := range slices.Sorted(maps.Keys(fns)) {
		r.Define(name, fns[name])
	}
}

// Register stores d, replacing an existing definition.
func (r *Registry) Register(d Definition) {
	if d.Name == "" || d.Func == nil {
		r.warn("filter definition ignored: empty name or nil func", slog.String("filter", d.Name))
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[d.Name]; exists {
		r.warn("filter already defined", slog.String("filter", d.Name))
	}
	r.defs[d.Name] = d
}

func (r *Registry) Lookup(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.defs[name]
	return d, ok
}

func (r *Registry) Remove(names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range names {
		delete(r.defs, name)
	}
}

// Names returns the registered filter names sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.defs))
}

// Apply passes raw through the target's filters in order. Without filters
// raw is returned unchanged.
func (r *Registry) Apply(t Target, raw value.Value) value.Value {
	v := raw
	for _, s := range t.Filters() {
		d, ok := r.Lookup(s.Name)
		if !ok {
			r.warn("unknown filter", slog.String("filter", s.Name), slog.String("field", t.Name()))
			continue
		}
		in := Input{Value: v, Args: s.Args, reg: r}
		if d.NeedsField {
			in.Field = t
		}
		v = d.Func(in)
	}
	return v
}

func (r *Registry) warn(msg string, attrs ...any) {
	if r.strict {
		r.logger.Warn(msg, attrs...)
	}
}
