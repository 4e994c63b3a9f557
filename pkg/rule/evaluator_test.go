package rule_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/rule"
)

func evaluate(t *testing.T, reg *rule.Registry, f *stubField) *rule.Failure {
	t.Helper()
	failure, err := reg.Evaluator().Evaluate(context.Background(), f)
	require.NoError(t, err)
	return failure
}

func TestEvaluate(t *testing.T) {
	t.Parallel()
	reg := rule.NewRegistry()

	t.Run("no rules", func(t *testing.T) {
		assert.Nil(t, evaluate(t, reg, newStub("", "anything")))
	})

	t.Run("first failure only", func(t *testing.T) {
		f := newStub("int|email", "abc")
		failure := evaluate(t, reg, f)
		require.NotNil(t, failure)
		assert.Equal(t, "int", failure.Rule)
		assert.Equal(t, "Field must be an integer.", failure.Message)
		assert.Equal(t, "field", failure.Field)
	})

	t.Run("required on sequence", func(t *testing.T) {
		assert.Nil(t, evaluate(t, reg, newStub("required", []string{"", "x"})))

		failure := evaluate(t, reg, newStub("required", []string{"", ""}))
		require.NotNil(t, failure)
		assert.Equal(t, "required", failure.Rule)

		assert.NotNil(t, evaluate(t, reg, newStub("required", []string{})))
	})

	t.Run("required on scalar", func(t *testing.T) {
		assert.NotNil(t, evaluate(t, reg, newStub("required", "")))
		assert.NotNil(t, evaluate(t, reg, newStub("required", nil)))
		assert.NotNil(t, evaluate(t, reg, newStub("required", false)))
		assert.Nil(t, evaluate(t, reg, newStub("required", "0")))
	})

	t.Run("blank skips rules without CheckBlank", func(t *testing.T) {
		assert.Nil(t, evaluate(t, reg, newStub("email", "")))
		assert.Nil(t, evaluate(t, reg, newStub("email", nil)))
		assert.Nil(t, evaluate(t, reg, newStub("email", []string{"", "a@b.com"})))
	})

	t.Run("any failing element fails the rule", func(t *testing.T) {
		failure := evaluate(t, reg, newStub("int", []string{"1", "x", "3"}))
		require.NotNil(t, failure)
		assert.Equal(t, "int", failure.Rule)
	})

	t.Run("unknown rule is skipped", func(t *testing.T) {
		assert.Nil(t, evaluate(t, reg, newStub("no_such_rule|int", "5")))
	})

	t.Run("required_select for choice fields", func(t *testing.T) {
		f := newStub("required", "")
		f.typ = "select"
		failure := evaluate(t, reg, f)
		require.NotNil(t, failure)
		assert.Equal(t, "Please select Field.", failure.Message)
	})

	t.Run("arguments are substituted", func(t *testing.T) {
		failure := evaluate(t, reg, newStub("maxlength:3", "abcd"))
		require.NotNil(t, failure)
		assert.Equal(t, "Field must be at most 3 characters long.", failure.Message)
		assert.Equal(t, []string{"3"}, failure.Args)
	})
}

func TestEvaluate_CheckBlank(t *testing.T) {
	t.Parallel()

	var calls int
	reg := rule.NewRegistry(rule.WithoutBuiltins())
	reg.Define("counted", func(in rule.Input) rule.Result {
		calls++
		return rule.Pass()
	}, rule.CheckBlank())
	reg.Define("skipped", func(in rule.Input) rule.Result {
		calls += 100
		return rule.Pass()
	})

	evaluate(t, reg, newStub("counted|skipped", []any{"", nil, false}))
	assert.Equal(t, 3, calls)
}

func TestEvaluate_ArraySeparate(t *testing.T) {
	t.Parallel()

	reg := rule.NewRegistry(rule.WithoutBuiltins())
	var seen []any
	reg.Define("whole", func(in rule.Input) rule.Result {
		seen = append(seen, in.Value)
		return rule.Pass()
	}, rule.NoArraySeparate())
	reg.Define("each", func(in rule.Input) rule.Result {
		seen = append(seen, in.Index)
		return rule.Pass()
	})

	evaluate(t, reg, newStub("whole|each", []string{"a", "b"}))
	require.Len(t, seen, 3)
	assert.Equal(t, 0, seen[1])
	assert.Equal(t, 1, seen[2])
}

func TestEvaluate_RedefinedBuiltins(t *testing.T) {
	t.Parallel()

	pass := func(rule.Input) rule.Result { return rule.Pass() }

	t.Run("required fails blank values without CheckBlank", func(t *testing.T) {
		reg := rule.NewRegistry()
		reg.Define(rule.Required, pass)

		failure := evaluate(t, reg, newStub("required", ""))
		require.NotNil(t, failure)
		assert.Equal(t, "Field is required.", failure.Message)
		assert.NotNil(t, evaluate(t, reg, newStub("required", nil)))
		assert.NotNil(t, evaluate(t, reg, newStub("required", []string{"", ""})))
		assert.Nil(t, evaluate(t, reg, newStub("required", "x")))
	})

	t.Run("required defined in bulk", func(t *testing.T) {
		reg := rule.NewRegistry()
		reg.DefineAll(map[string]rule.Func{rule.Required: pass})

		assert.NotNil(t, evaluate(t, reg, newStub("required", "")))
	})

	t.Run("required still runs the predicate on values", func(t *testing.T) {
		reg := rule.NewRegistry()
		reg.Define(rule.Required, func(rule.Input) rule.Result { return rule.FailWith("nope") })

		failure := evaluate(t, reg, newStub("required", "x"))
		require.NotNil(t, failure)
		assert.Equal(t, "nope", failure.Message)
	})

	t.Run("in_options checks option keys", func(t *testing.T) {
		reg := rule.NewRegistry()
		reg.Define(rule.InOptions, pass)

		f := newStub("in_options", "3")
		f.options = []string{"1", "2"}
		assert.NotNil(t, evaluate(t, reg, f))

		f = newStub("in_options", 1)
		f.options = []string{"1", "2"}
		assert.Nil(t, evaluate(t, reg, f))

		assert.Nil(t, evaluate(t, reg, newStub("in_options", "")))
	})
}

func TestEvaluate_Messages(t *testing.T) {
	t.Parallel()

	t.Run("explicit message", func(t *testing.T) {
		reg := rule.NewRegistry()
		reg.Define("even", func(in rule.Input) rule.Result {
			if in.Int()%2 != 0 {
				return rule.FailWith("odd numbers are not welcome")
			}
			return rule.Pass()
		}, rule.WithMessage("en", "unused"))

		failure := evaluate(t, reg, newStub("even", "3"))
		require.NotNil(t, failure)
		assert.Equal(t, "odd numbers are not welcome", failure.Message)
	})

	t.Run("context language", func(t *testing.T) {
		reg := rule.NewRegistry()
		ctx := i18n.WithLocale(context.Background(), "ja")
		f := newStub("required", "")
		f.label = "氏名"

		failure, err := reg.Evaluator().Evaluate(ctx, f)
		require.NoError(t, err)
		require.NotNil(t, failure)
		assert.Equal(t, "氏名を入力してください。", failure.Message)
	})

	t.Run("registry language", func(t *testing.T) {
		reg := rule.NewRegistry(rule.WithLanguage("ja"))
		f := newStub("required", "")
		f.typ = "radio"
		f.label = "性別"

		failure := evaluate(t, reg, f)
		require.NotNil(t, failure)
		assert.Equal(t, "性別を選択してください。", failure.Message)
	})

	t.Run("unknown context language falls back", func(t *testing.T) {
		reg := rule.NewRegistry()
		ctx := i18n.WithLocale(context.Background(), "fr")
		failure, err := reg.Evaluator().Evaluate(ctx, newStub("required", ""))
		require.NoError(t, err)
		require.NotNil(t, failure)
		assert.Equal(t, "Field is required.", failure.Message)
	})

	t.Run("generic template", func(t *testing.T) {
		reg := rule.NewRegistry()
		reg.Define("never", func(in rule.Input) rule.Result { return rule.Fail() })

		failure := evaluate(t, reg, newStub("never", "x"))
		require.NotNil(t, failure)
		assert.Equal(t, "Field has wrong value.", failure.Message)
	})

	t.Run("fallback without catalog", func(t *testing.T) {
		reg := rule.NewRegistry(rule.WithoutBuiltins())
		reg.Define("never", func(in rule.Input) rule.Result { return rule.Fail() })

		failure := evaluate(t, reg, newStub("never", "x"))
		require.NotNil(t, failure)
		assert.Equal(t, "Field has wrong value.", failure.Message)
	})

	t.Run("set message", func(t *testing.T) {
		reg := rule.NewRegistry()
		reg.SetMessage("email", "en", "$0: bad address")
		failure := evaluate(t, reg, newStub("email", "nope"))
		require.NotNil(t, failure)
		assert.Equal(t, "Field: bad address", failure.Message)
	})
}

func TestEvaluate_Abort(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	reg := rule.NewRegistry()
	reg.Define("remote", func(in rule.Input) rule.Result { return rule.Abort(boom) })

	failure, err := reg.Evaluator().Evaluate(context.Background(), newStub("remote", "x"))
	assert.Nil(t, failure)
	assert.ErrorIs(t, err, rule.ErrRuleAborted)
	assert.ErrorIs(t, err, boom)
}

func TestEvaluate_StrictWarnings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	t.Run("strict logs unknown rules", func(t *testing.T) {
		buf.Reset()
		reg := rule.NewRegistry(rule.WithStrict(true), rule.WithLogger(logger))
		assert.Nil(t, evaluate(t, reg, newStub("missing", "x")))
		assert.Contains(t, buf.String(), "unknown rule")
		assert.Contains(t, buf.String(), "rule=missing")
	})

	t.Run("non strict stays quiet", func(t *testing.T) {
		buf.Reset()
		reg := rule.NewRegistry(rule.WithLogger(logger))
		assert.Nil(t, evaluate(t, reg, newStub("missing", "x")))
		assert.Empty(t, buf.String())
	})
}

func TestRender(t *testing.T) {
	t.Parallel()

	args := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	assert.Equal(t, "L j a", rule.Render("$0 $10 $1", "L", args))
	assert.Equal(t, "L $2", rule.Render("$0 $2", "L", []string{"x"}))
	assert.Equal(t, "$1 label", rule.Render("$0 label", "$1", []string{"x"}))
}
