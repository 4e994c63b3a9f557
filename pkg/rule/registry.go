package rule

import (
	"context"
	_ "embed"
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/pattern"
)

// Rule names with special evaluator treatment.
const (
	Required       = "required"
	RequiredSelect = "required_select"
	InOptions      = "in_options"
)

// DefaultMessageKey holds the per-language template used when a rule has no
// template of its own.
const DefaultMessageKey = "_default"

// FallbackMessage is used when no catalog template matches at all.
const FallbackMessage = "$0 has wrong value."

//go:embed messages.yaml
var defaultMessages string

// Func is a rule predicate.
type Func func(in Input) Result

// Definition is a registry entry.
type Definition struct {
	Name string
	Func Func
	// CheckBlank makes the predicate run for blank elements too.
	CheckBlank bool
	// ArraySeparate checks sequence values element by element.
	ArraySeparate bool
	// Messages maps language to template.
	Messages map[string]string
}

// DefineOption adjusts a Definition created by Define.
type DefineOption func(*Definition)

// CheckBlank runs the predicate on blank elements.
func CheckBlank() DefineOption {
	return func(d *Definition) { d.CheckBlank = true }
}

// NoArraySeparate passes sequence values to the predicate as a whole.
func NoArraySeparate() DefineOption {
	return func(d *Definition) { d.ArraySeparate = false }
}

// WithMessage sets the template for lang.
func WithMessage(lang, tmpl string) DefineOption {
	return func(d *Definition) {
		if d.Messages == nil {
			d.Messages = make(map[string]string)
		}
		d.Messages[lang] = tmpl
	}
}

// Registry maps rule names to definitions and holds the message catalog.
// It is safe for concurrent use; definitions are expected to be registered
// before validation starts.
type Registry struct {
	mu       sync.RWMutex
	defs     map[string]Definition
	messages i18n.Catalog

	lang     string
	strict   bool
	builtins bool
	logger   *slog.Logger
	clock    func() time.Time
	loc      *time.Location

	patterns pattern.Cache
}

// Option configures a Registry.
type Option func(*Registry)

// WithLanguage sets the language used when the context carries none.
func WithLanguage(lang string) Option {
	return func(r *Registry) {
		if lang != "" {
			r.lang = lang
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

// WithClock replaces time.Now for the past and future rules.
func WithClock(clock func() time.Time) Option {
	return func(r *Registry) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithLocation sets the zone used to read dates without an offset.
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

// NewRegistry returns a registry preloaded with the built-in rules and their
// English and Japanese messages.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		defs:     make(map[string]Definition),
		messages: make(i18n.Catalog),
		lang:     i18n.DefaultLanguage,
		builtins: true,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:    time.Now,
		loc:      time.Local,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.builtins {
		cat, err := i18n.Parse(context.Background(), i18n.NewYAMLParser(), defaultMessages)
		if err != nil {
			panic("rule: embedded messages: " + err.Error())
		}
		r.messages.Merge(cat)
		registerBuiltins(r)
	}
	return r
}

// Define registers fn under name. A nil fn is ignored.
func (r *Registry) Define(name string, fn Func, opts ...DefineOption) {
	d := Definition{Name: name, Func: fn, ArraySeparate: true}
	for _, opt := range opts {
		opt(&d)
	}
	r.Register(d)
}

// DefineAll registers several rules with default flags.
func (r *Registry) DefineAll(fns map[string]Func) {
	for _, name := range slices.Sorted(maps.Keys(fns)) {
		r.Define(name, fns[name])
	}
}

// Register stores a fully built definition, replacing an existing one.
func (r *Registry) Register(d Definition) {
	if d.Name == "" || d.Func == nil {
		r.warn("rule definition ignored: empty name or nil func", slog.String("rule", d.Name))
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[d.Name]; exists {
		r.warn("rule already defined", slog.String("rule", d.Name))
	}
	for lang, tmpl := range d.Messages {
		r.messages.Set(lang, d.Name, tmpl)
	}
	d.Messages = nil
	r.defs[d.Name] = d
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.defs[name]
	return d, ok
}

// Remove unregisters rules. Their messages stay in the catalog.
func (r *Registry) Remove(names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range names {
		delete(r.defs, name)
	}
}

// Names returns the registered rule names sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.defs))
}

// SetMessage sets the template for key in lang. The key is usually a rule
// name, RequiredSelect or DefaultMessageKey. An empty lang means the
// registry language.
func (r *Registry) SetMessage(key, lang, tmpl string) {
	if lang == "" {
		lang = r.lang
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages.Set(lang, key, tmpl)
}

// LoadMessages merges a catalog into the registry messages.
func (r *Registry) LoadMessages(cat i18n.Catalog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages.Merge(cat)
}

// Message returns the template stored for key in lang.
func (r *Registry) Message(lang, key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.messages.Lookup(lang, key)
}

// Languages lists the languages that have at least one template.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.messages.Languages()
}

func (r *Registry) Language() string { return r.lang }

func (r *Registry) Strict() bool { return r.strict }

func (r *Registry) Logger() *slog.Logger { return r.logger }

// Evaluator returns an evaluator bound to r.
func (r *Registry) Evaluator() *Evaluator {
	return NewEvaluator(r)
}

func (r *Registry) now() time.Time {
	return r.clock().In(r.loc)
}

func (r *Registry) warn(msg string, attrs ...any) {
	if r.strict {
		r.logger.Warn(msg, attrs...)
	}
}

// template picks the message template for key. Candidates are tried in the
// context language, then the registry language; within each, the specific
// key comes before DefaultMessageKey.
func (r *Registry) template(ctx context.Context, keys ...string) string {
	langs := []string{r.lang}
	if lang := i18n.Locale(ctx); lang != "" && lang != r.lang {
		langs = []string{lang, r.lang}
	}

	candidates := append(slices.Clone(keys), DefaultMessageKey)

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, lang := range langs {
		for _, key := range candidates {
			if tmpl, ok := r.messages.Lookup(lang, key); ok {
				return tmpl
			}
		}
	}
	return FallbackMessage
}
