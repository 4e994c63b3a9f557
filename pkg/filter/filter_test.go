package filter_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/filter"
	"github.com/dmitrymomot/formkit/pkg/spec"
	"github.com/dmitrymomot/formkit/pkg/value"
)

type stubField struct {
	filters spec.List
	options []string
}

func (s *stubField) Name() string         { return "field" }
func (s *stubField) Filters() spec.List   { return s.filters }
func (s *stubField) OptionKeys() []string { return s.options }

func apply(reg *filter.Registry, filters string, raw any) value.Value {
	return reg.Apply(&stubField{filters: spec.MustParse(filters)}, value.MustOf(raw))
}

func TestApply(t *testing.T) {
	t.Parallel()
	reg := filter.NewRegistry()

	t.Run("no filters is identity", func(t *testing.T) {
		raw := value.Sequence("a", 1)
		assert.True(t, raw.Equal(reg.Apply(&stubField{}, raw)))
	})

	t.Run("order matters", func(t *testing.T) {
		intThenString := apply(reg, "int|string", "7.5")
		stringThenInt := apply(reg, "string|int", "7.5")
		assert.Equal(t, "7", intThenString.Scalar())
		assert.Equal(t, int64(7), stringThenInt.Scalar())
		assert.False(t, intThenString.Equal(stringThenInt))
	})

	t.Run("trim then upper", func(t *testing.T) {
		assert.Equal(t, "AB", apply(reg, "trim|upper", " ab ").Scalar())
		assert.Equal(t, "AB", apply(reg, "upper|trim", " ab ").Scalar())
	})

	t.Run("unknown filter skipped", func(t *testing.T) {
		assert.Equal(t, "x", apply(reg, "nope|trim", " x ").Scalar())
	})

	t.Run("string filters map sequences", func(t *testing.T) {
		out := apply(reg, "trim", []any{" a ", nil, "b "})
		assert.Equal(t, []any{"a", nil, "b"}, out.Items())
	})

	t.Run("null passes through string filters", func(t *testing.T) {
		assert.True(t, apply(reg, "trim|upper", nil).IsNull())
	})
}

func TestBuiltinFilters(t *testing.T) {
	t.Parallel()
	reg := filter.NewRegistry(filter.WithLocation(time.UTC))

	tests := []struct {
		name     string
		filters  string
		in       any
		expected any
	}{
		{name: "trim charlist", filters: "trim:-", in: "--a--", expected: "a"},
		{name: "ltrim", filters: "ltrim", in: "  a ", expected: "a "},
		{name: "ltrim escaped space charlist", filters: `ltrim:\ `, in: "  \ta", expected: "\ta"},
		{name: "rtrim", filters: "rtrim", in: "  a ", expected: "  a"},
		{name: "replace", filters: "replace:-:/", in: "2024-01-02", expected: "2024/01/02"},
		{name: "lower", filters: "lower", in: "ÀB", expected: "àb"},
		{name: "empty_is_null", filters: "empty_is_null", in: "", expected: nil},
		{name: "empty_is_null keeps values", filters: "empty_is_null", in: "x", expected: "x"},
		{name: "int leading digits", filters: "int", in: "12abc", expected: int64(12)},
		{name: "int empty", filters: "int", in: "", expected: nil},
		{name: "int bool", filters: "int", in: true, expected: int64(1)},
		{name: "float", filters: "float", in: "1.25kg", expected: 1.25},
		{name: "string bool", filters: "string", in: false, expected: ""},
		{name: "string number", filters: "string", in: 42, expected: "42"},
		{name: "regex capture", filters: `regex:(\d+)`, in: "order 66 done", expected: "66"},
		{name: "regex whole match", filters: `regex:\d+`, in: "a12b", expected: "12"},
		{name: "regex no match", filters: `regex:(\d+)`, in: "none", expected: ""},
		{name: "regex delimited", filters: `regex:/(\d+)/`, in: "order 66", expected: "66"},
		{name: "regex delimited flags", filters: `regex:/([a-z]+)/i`, in: "ABC", expected: "ABC"},
		{name: "regex delimited unicode", filters: `regex:#([ァ-ヶー]+)#u`, in: "abcカナ", expected: "カナ"},
		{name: "kana widens half width", filters: "kana", in: "ｶﾀｶﾅabc", expected: "カタカナ"},
		{name: "nfkc", filters: "nfkc", in: "ＡＢＣ１", expected: "ABC1"},
		{name: "strip_tags", filters: "strip_tags", in: "<b>bold</b> & <script>x</script>", expected: "bold & "},
		{name: "sanitize_html", filters: "sanitize_html", in: `<a href="http://x.io" onclick="evil()">x</a>`, expected: `<a href="http://x.io" rel="nofollow">x</a>`},
		{name: "date slashes", filters: "date", in: "2024-1-2", expected: "2024/01/02"},
		{name: "date custom layout", filters: "date:2006-01-02", in: "2024/01/02", expected: "2024-01-02"},
		{name: "date epoch", filters: "date", in: 0, expected: "1970/01/01"},
		{name: "date epoch string", filters: "date", in: "86400", expected: "1970/01/02"},
		{name: "date invalid", filters: "date", in: "tomorrow", expected: nil},
		{name: "date empty", filters: "date", in: "", expected: nil},
		{name: "datehm", filters: "datehm", in: "2024-01-02 3:04", expected: "2024/01/02 03:04"},
		{name: "datetime", filters: "datetime", in: "2024-01-02T03:04:05", expected: "2024/01/02 03:04:05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := apply(reg, tt.filters, tt.in)
			require.False(t, out.IsSequence())
			assert.Equal(t, tt.expected, out.Scalar())
		})
	}
}

func TestConversionsNullSequences(t *testing.T) {
	t.Parallel()
	reg := filter.NewRegistry()

	for _, name := range []string{"int", "float", "string"} {
		assert.True(t, apply(reg, name, []string{"1", "2"}).IsNull(), name)
	}
}

func TestLanguageAwareCase(t *testing.T) {
	t.Parallel()

	tr := filter.NewRegistry(filter.WithLanguage("tr"))
	assert.Equal(t, "İ", apply(tr, "upper", "i").Scalar())

	en := filter.NewRegistry(filter.WithLanguage("en"))
	assert.Equal(t, "I", apply(en, "upper", "i").Scalar())
}

func TestInOptionsFilter(t *testing.T) {
	t.Parallel()
	reg := filter.NewRegistry()
	field := &stubField{filters: spec.MustParse("in_options"), options: []string{"1", "2"}}

	assert.Equal(t, 1, reg.Apply(field, value.Scalar(1)).Scalar())
	assert.True(t, reg.Apply(field, value.Scalar("3")).IsNull())
	assert.Equal(t, []any{"1", 2}, reg.Apply(field, value.Sequence("1", "9", 2)).Items())

	noOptions := &stubField{filters: spec.MustParse("in_options")}
	assert.True(t, reg.Apply(noOptions, value.Scalar("1")).IsNull())
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("needs field", func(t *testing.T) {
		reg := filter.NewRegistry(filter.WithoutBuiltins())
		var got []filter.Target
		reg.Define("with", func(in filter.Input) value.Value {
			got = append(got, in.Field)
			return in.Value
		}, filter.NeedsField())
		reg.Define("without", func(in filter.Input) value.Value {
			got = append(got, in.Field)
			return in.Value
		})

		field := &stubField{filters: spec.MustParse("with|without")}
		reg.Apply(field, value.Scalar("x"))
		require.Len(t, got, 2)
		assert.Same(t, field, got[0])
		assert.Nil(t, got[1])
	})

	t.Run("arguments", func(t *testing.T) {
		reg := filter.NewRegistry(filter.WithoutBuiltins())
		reg.Define("suffix", func(in filter.Input) value.Value {
			return value.Scalar(in.Value.String() + in.Arg(0, "!"))
		})
		assert.Equal(t, "a!", apply(reg, "suffix", "a").Scalar())
		assert.Equal(t, "a?", apply(reg, "suffix:?", "a").Scalar())
	})

	t.Run("define all and names", func(t *testing.T) {
		reg := filter.NewRegistry(filter.WithoutBuiltins())
		id := func(in filter.Input) value.Value { return in.Value }
		reg.DefineAll(map[string]filter.Func{"b": id, "a": id})
		assert.Equal(t, []string{"a", "b"}, reg.Names())

		reg.Remove("b")
		_, ok := reg.Lookup("b")
		assert.False(t, ok)
	})

	t.Run("strict warnings", func(t *testing.T) {
		var buf bytes.Buffer
		reg := filter.NewRegistry(filter.WithStrict(true), filter.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

		reg.Define("trim", func(in filter.Input) value.Value { return in.Value })
		assert.Contains(t, buf.String(), "filter already defined")

		buf.Reset()
		apply(reg, "missing", "x")
		assert.Contains(t, buf.String(), "unknown filter")
		assert.Contains(t, buf.String(), "filter=missing")
	})
}
