package form_test

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
)

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected form.Format
	}{
		{path: "a.yaml", expected: form.FormatYAML},
		{path: "a.YML", expected: form.FormatYAML},
		{path: "dir/a.json", expected: form.FormatJSON},
		{path: "a.toml", expected: form.FormatTOML},
	}
	for _, tt := range tests {
		got, err := form.FormatFromPath(tt.path)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got)
	}

	_, err := form.FormatFromPath("a.txt")
	assert.ErrorIs(t, err, form.ErrUnsupportedFormat)
}

func TestLoadDir(t *testing.T) {
	t.Parallel()

	defs, err := form.LoadDir("testdata")
	require.NoError(t, err)
	require.Len(t, defs, 3)

	assert.Len(t, defs["signup"].Fields, 5)
	assert.Len(t, defs["contact"].Fields, 2)

	search := defs["search"]
	require.NotNil(t, search)
	assert.Equal(t, "search", search.Name)
	assert.Equal(t, "natural", search.Fields[1].Rules)
}

func TestLoadDir_Duplicate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("name: same\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte(`{"name":"same"}`), 0o600))

	_, err := form.LoadDir(dir)
	assert.ErrorIs(t, err, form.ErrDuplicateForm)
}

func TestLoadDefinition_Errors(t *testing.T) {
	t.Parallel()

	_, err := form.LoadDefinition(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, form.ErrFailedToReadFile)

	_, err = form.ParseDefinition([]byte("fields: [oops"), form.FormatYAML)
	assert.ErrorIs(t, err, form.ErrInvalidDefinition)

	_, err = form.ParseDefinition([]byte(`{"name":"x","unknown":1}`), form.FormatJSON)
	assert.ErrorIs(t, err, form.ErrInvalidDefinition)

	_, err = form.ParseDefinition(nil, form.Format("xml"))
	assert.ErrorIs(t, err, form.ErrUnsupportedFormat)
}

func TestKit_Build(t *testing.T) {
	t.Parallel()
	kit := form.NewKit()

	def, err := form.LoadDefinition("testdata/signup.yaml")
	require.NoError(t, err)

	t.Run("builds fields in order", func(t *testing.T) {
		f, err := kit.Build(def)
		require.NoError(t, err)
		assert.Equal(t, "signup", f.Name())
		assert.Equal(t, []string{"email", "password", "password_confirm", "plan", "tags[]"}, f.Names())
		assert.Equal(t, "free", f.Get("plan").Raw().Scalar())
		assert.Equal(t, []string{"free", "pro"}, f.Get("plan").OptionKeys())
		assert.True(t, f.Get("tags[]").Multiple())
	})

	t.Run("validates input", func(t *testing.T) {
		f, err := kit.Build(def)
		require.NoError(t, err)

		f.Input(url.Values{
			"email":            {"Ann@Example.com"},
			"password":         {"secret-pass"},
			"password_confirm": {"secret-pass"},
			"plan":             {"gold"},
		})
		assert.False(t, f.Validate())
		assert.Equal(t, []string{"plan"}, f.Errors().Fields())
		assert.Equal(t, `<p class="error">Please choose a valid Plan.</p>`, f.ErrorMessage("plan"))
		assert.Equal(t, "ann@example.com", f.Get("email").Value().Scalar())
	})

	t.Run("forms are independent", func(t *testing.T) {
		a, err := kit.Build(def)
		require.NoError(t, err)
		b, err := kit.Build(def)
		require.NoError(t, err)

		a.Get("email").SetValue("a@b.com")
		assert.False(t, b.Get("email").IsSet())
	})

	t.Run("rejects malformed definitions", func(t *testing.T) {
		_, err := kit.Build(&form.Definition{Fields: []form.FieldDefinition{{Name: "a"}, {Name: "a"}}})
		assert.ErrorIs(t, err, form.ErrInvalidDefinition)

		_, err = kit.Build(&form.Definition{Fields: []form.FieldDefinition{{Rules: "required"}}})
		assert.ErrorIs(t, err, form.ErrInvalidDefinition)

		_, err = kit.Build(&form.Definition{Fields: []form.FieldDefinition{{Name: "a", Rules: ":1"}}})
		assert.ErrorIs(t, err, form.ErrInvalidDefinition)

		_, err = kit.Build(&form.Definition{Fields: []form.FieldDefinition{{Name: "a", Attrs: map[string]any{"name": "b"}}}})
		assert.ErrorIs(t, err, form.ErrInvalidArgument)

		_, err = kit.Build(nil)
		assert.ErrorIs(t, err, form.ErrInvalidDefinition)
	})
}

func TestDefinition_Check(t *testing.T) {
	t.Parallel()
	kit := form.NewKit()

	def := &form.Definition{
		Name: "x",
		Fields: []form.FieldDefinition{
			{Name: "a", Rules: "required|nope", Filters: "trim|shout"},
			{Name: "a"},
			{Rules: "required"},
		},
	}
	assert.Equal(t, []string{
		`field "a": unknown rule "nope"`,
		`field "a": unknown filter "shout"`,
		`duplicate field "a"`,
		"field 2 has no name",
	}, def.Check(kit))

	signup, err := form.LoadDefinition("testdata/signup.yaml")
	require.NoError(t, err)
	assert.Empty(t, signup.Check(kit))
}
