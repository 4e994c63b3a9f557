package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"
)

// Catalog maps language to message key to template.
type Catalog map[string]map[string]string

// NewCatalog flattens parser output into a Catalog. Nested keys are joined
// with "." and non-string leaves are formatted with %v.
func NewCatalog(trees map[string]map[string]any) Catalog {
	c := make(Catalog, len(trees))
	for lang, tree := range trees {
		msgs := make(map[string]string)
		flatten(msgs, "", tree)
		c[lang] = msgs
	}
	return c
}

func flatten(dst map[string]string, prefix string, tree map[string]any) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch t := v.(type) {
		case map[string]any:
			flatten(dst, key, t)
		case string:
			dst[key] = t
		case nil:
			dst[key] = ""
		default:
			dst[key] = fmt.Sprintf("%v", t)
		}
	}
}

// Parse decodes content with p into a Catalog.
func Parse(ctx context.Context, p Parser, content string) (Catalog, error) {
	trees, err := p.Parse(ctx, content)
	if err != nil {
		return nil, err
	}
	return NewCatalog(trees), nil
}

// LoadFile reads a YAML or JSON catalog from disk.
func LoadFile(ctx context.Context, path string) (Catalog, error) {
	p := NewParserForFile(path)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	return Parse(ctx, p, string(data))
}

// LoadFS reads a catalog from fsys, which lets callers ship catalogs with
// embed.FS.
func LoadFS(ctx context.Context, fsys fs.FS, path string) (Catalog, error) {
	p := NewParserForFile(path)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	return Parse(ctx, p, string(data))
}

// Lookup returns the template stored under lang and key.
func (c Catalog) Lookup(lang, key string) (string, bool) {
	msgs, ok := c[lang]
	if !ok {
		return "", false
	}
	tmpl, ok := msgs[key]
	return tmpl, ok
}

// Set stores a template, creating the language when needed.
func (c Catalog) Set(lang, key, tmpl string) {
	if c[lang] == nil {
		c[lang] = make(map[string]string)
	}
	c[lang][key] = tmpl
}

// Merge copies every template of other into c, overwriting existing keys.
func (c Catalog) Merge(other Catalog) {
	for lang, msgs := range other {
		if c[lang] == nil {
			c[lang] = make(map[string]string, len(msgs))
		}
		maps.Copy(c[lang], msgs)
	}
}

// Languages returns the catalog languages sorted.
func (c Catalog) Languages() []string {
	return slices.Sorted(maps.Keys(c))
}
