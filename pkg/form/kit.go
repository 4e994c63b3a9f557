package form

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/formkit/pkg/filter"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/rule"
	"github.com/dmitrymomot/formkit/pkg/spec"
)

// Kit bundles the rule and filter registries with the settings shared by
// every field and form created from it.
type Kit struct {
	rules   *rule.Registry
	filters *filter.Registry
	parser  *spec.Parser
	logger  *slog.Logger
	strict  bool
}

type kitConfig struct {
	rules    *rule.Registry
	filters  *filter.Registry
	lang     string
	strict   bool
	logger   *slog.Logger
	escape   string
	clock    func() time.Time
	location *time.Location
}

// KitOption configures NewKit.
type KitOption func(*kitConfig)

// WithRules uses an existing rule registry. Language, strictness, clock and
// logger options then only apply to registries the kit creates itself.
func WithRules(r *rule.Registry) KitOption {
	return func(c *kitConfig) { c.rules = r }
}

// WithFilters uses an existing filter registry.
func WithFilters(r *filter.Registry) KitOption {
	return func(c *kitConfig) { c.filters = r }
}

// WithLanguage sets the message and case-folding language.
func WithLanguage(lang string) KitOption {
	return func(c *kitConfig) {
		if lang != "" {
			c.lang = lang
		}
	}
}

// WithStrict enables configuration warnings.
func WithStrict(strict bool) KitOption {
	return func(c *kitConfig) { c.strict = strict }
}

func WithLogger(logger *slog.Logger) KitOption {
	return func(c *kitConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEscape sets the escape sequence used when parsing rule and filter
// strings. An empty sequence is ignored.
func WithEscape(escape string) KitOption {
	return func(c *kitConfig) {
		if escape != "" {
			c.escape = escape
		}
	}
}

// WithClock replaces time.Now for date rules.
func WithClock(clock func() time.Time) KitOption {
	return func(c *kitConfig) { c.clock = clock }
}

// WithLocation sets the zone for date rules and filters.
func WithLocation(loc *time.Location) KitOption {
	return func(c *kitConfig) { c.location = loc }
}

// NewKit builds a kit. Registries not passed in are created with the
// built-in rules and filters.
func NewKit(opts ...KitOption) *Kit {
	cfg := &kitConfig{
		lang:   i18n.DefaultLanguage,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		escape: `\`,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.rules == nil {
		cfg.rules = rule.NewRegistry(
			rule.WithLanguage(cfg.lang),
			rule.WithStrict(cfg.strict),
			rule.WithLogger(cfg.logger),
			rule.WithClock(cfg.clock),
			rule.WithLocation(cfg.location),
		)
	}
	if cfg.filters == nil {
		cfg.filters = filter.NewRegistry(
			filter.WithLanguage(cfg.lang),
			filter.WithStrict(cfg.strict),
			filter.WithLogger(cfg.logger),
			filter.WithLocation(cfg.location),
		)
	}

	parser, err := spec.NewParser(cfg.escape)
	if err != nil {
		panic(err)
	}

	return &Kit{
		rules:   cfg.rules,
		filters: cfg.filters,
		parser:  parser,
		logger:  cfg.logger,
		strict:  cfg.strict,
	}
}

var defaultKit = sync.OnceValue(func() *Kit { return NewKit() })

// DefaultKit returns the process-wide kit used by NewField, NewFieldSet and
// NewForm.
func DefaultKit() *Kit {
	return defaultKit()
}

func (k *Kit) Rules() *rule.Registry { return k.rules }

func (k *Kit) Filters() *filter.Registry { return k.filters }

func (k *Kit) Parser() *spec.Parser { return k.parser }

func (k *Kit) Logger() *slog.Logger { return k.logger }

func (k *Kit) Strict() bool { return k.strict }

func (k *Kit) warn(msg string, attrs ...any) {
	if k.strict {
		k.logger.Warn(msg, attrs...)
	}
}
