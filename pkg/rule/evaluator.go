package rule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/spec"
	"github.com/dmitrymomot/formkit/pkg/value"
)

// selectTypes use the required_select template for a failed required rule.
var selectTypes = []string{"select", "checkbox", "radio"}

// Failure describes the first rule a field failed.
type Failure struct {
	Field   string
	Rule    string
	Args    []string
	Message string
}

func (f *Failure) Error() string {
	return f.Field + ": " + f.Message
}

// Evaluator runs the rules attached to a target against a registry.
type Evaluator struct {
	reg *Registry
}

func NewEvaluator(reg *Registry) *Evaluator {
	return &Evaluator{reg: reg}
}

// Evaluate checks the target's rules in attachment order and returns the
// first failure, or nil when every rule passes. The error is non-nil only
// when a predicate aborts.
func (e *Evaluator) Evaluate(ctx context.Context, t Target) (*Failure, error) {
	rules := t.Rules()
	if len(rules) == 0 {
		return nil, nil
	}
	raw := t.Raw()

	for _, s := range rules {
		def, ok := e.reg.Lookup(s.Name)
		if !ok {
			e.reg.warn("unknown rule", slog.String("rule", s.Name), slog.String("field", t.Name()))
			continue
		}

		res := e.check(ctx, def, s, t, raw)
		if err := res.Err(); err != nil {
			return nil, errors.Join(ErrRuleAborted, fmt.Errorf("rule %q on field %q: %w", s.Name, t.Name(), err))
		}
		if res.OK() {
			continue
		}

		msg, explicit := res.Message()
		if !explicit {
			msg = e.message(ctx, s, t)
		}
		return &Failure{
			Field:   t.Name(),
			Rule:    s.Name,
			Args:    slices.Clone(s.Args),
			Message: msg,
		}, nil
	}
	return nil, nil
}

func (e *Evaluator) check(ctx context.Context, def Definition, s spec.Spec, t Target, raw value.Value) Result {
	if def.Name == Required && raw.IsSequence() {
		return Check(slices.ContainsFunc(raw.Items(), func(x any) bool {
			return !value.IsBlank(x)
		}))
	}

	items := raw.Items()
	if !def.ArraySeparate && raw.IsSequence() {
		items = []any{raw}
	}

	for i, item := range items {
		in := Input{
			Value:  item,
			Args:   s.Args,
			Index:  i,
			Field:  t,
			Lookup: t.Sibling,
			ctx:    ctx,
			reg:    e.reg,
		}
		blank := value.IsBlank(item)

		// required and in_options keep their meaning whatever is registered
		// under those names.
		var res Result
		switch {
		case def.Name == Required && blank:
			return Fail()
		case def.Name == InOptions && !blank:
			res = inOptions(in)
		case blank && !def.CheckBlank:
			continue
		default:
			res = def.Func(in)
		}
		if !res.OK() {
			return res
		}
	}
	return Pass()
}

func (e *Evaluator) message(ctx context.Context, s spec.Spec, t Target) string {
	keys := []string{s.Name}
	if s.Name == Required && slices.Contains(selectTypes, t.Type()) {
		keys = []string{RequiredSelect, Required}
	}
	return Render(e.reg.template(ctx, keys...), t.Label(), s.Args)
}

// Render substitutes $0 with label and $1..$n with args. Longer
// placeholders win, so $10 is never read as $1 followed by "0".
func Render(tmpl, label string, args []string) string {
	pairs := make([]string, 0, 2*(len(args)+1))
	for i := len(args); i > 0; i-- {
		pairs = append(pairs, "$"+itoa(i), args[i-1])
	}
	pairs = append(pairs, "$0", label)
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
