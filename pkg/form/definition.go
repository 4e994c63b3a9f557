package form

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a definition file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath derives the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Definition is the declarative form of a Form.
type Definition struct {
	Name             string            `json:"name" yaml:"name" toml:"name"`
	ErrorFormat      string            `json:"error_format,omitempty" yaml:"error_format,omitempty" toml:"error_format"`
	ErrorPlaceholder string            `json:"error_placeholder,omitempty" yaml:"error_placeholder,omitempty" toml:"error_placeholder"`
	Fields           []FieldDefinition `json:"fields" yaml:"fields" toml:"fields"`
}

// FieldDefinition describes one field. Rules and Filters use the
// "name:arg|name" grammar.
type FieldDefinition struct {
	Name    string         `json:"name" yaml:"name" toml:"name"`
	Type    string         `json:"type,omitempty" yaml:"type,omitempty" toml:"type"`
	Label   string         `json:"label,omitempty" yaml:"label,omitempty" toml:"label"`
	Default any            `json:"default,omitempty" yaml:"default,omitempty" toml:"default"`
	Rules   string         `json:"rules,omitempty" yaml:"rules,omitempty" toml:"rules"`
	Filters string         `json:"filters,omitempty" yaml:"filters,omitempty" toml:"filters"`
	Options Options        `json:"options,omitempty" yaml:"options,omitempty" toml:"options"`
	Attrs   map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty" toml:"attrs"`
	Tags    map[string]any `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags"`
}

// ParseDefinition decodes a definition.
func ParseDefinition(data []byte, format Format) (*Definition, error) {
	var def Definition
	var err error

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &def)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&def)
	case FormatTOML:
		_, err = toml.Decode(string(data), &def)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, errors.Join(ErrInvalidDefinition, err)
	}
	return &def, nil
}

// LoadDefinition reads a definition file. A definition without a name
// takes the file name without extension.
func LoadDefinition(path string) (*Definition, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	def, err := ParseDefinition(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return def, nil
}

// LoadDir reads every definition file directly inside dir, keyed by form
// name. Files with other extensions are ignored.
func LoadDir(dir string) (map[string]*Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}

	defs := make(map[string]*Definition)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, err := FormatFromPath(path); err != nil {
			continue
		}
		def, err := LoadDefinition(path)
		if err != nil {
			return nil, err
		}
		if _, ok := defs[def.Name]; ok {
			return nil, fmt.Errorf("%w: %q in %s", ErrDuplicateForm, def.Name, path)
		}
		defs[def.Name] = def
	}
	return defs, nil
}

// Build creates a form from def.
func (k *Kit) Build(def *Definition) (*Form, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: nil definition", ErrInvalidDefinition)
	}

	form := k.NewForm(def.Name)
	if def.ErrorFormat != "" {
		form.SetErrorFormat(def.ErrorFormat, def.ErrorPlaceholder)
	}

	for i, fd := range def.Fields {
		if fd.Name == "" {
			return nil, fmt.Errorf("%w: field %d has no name", ErrInvalidDefinition, i)
		}
		if form.Exists(fd.Name) {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidDefinition, fd.Name)
		}
		field, err := k.buildField(fd)
		if err != nil {
			return nil, errors.Join(ErrInvalidDefinition, err)
		}
		form.Add(field)
	}
	return form, nil
}

func (k *Kit) buildField(fd FieldDefinition) (*Field, error) {
	field := k.NewField(fd.Name, fd.Type, fd.Label)
	if fd.Default != nil {
		if err := field.setDefault(fd.Default); err != nil {
			return nil, err
		}
	}
	field.options = slices.Clone(fd.Options)

	rules, err := k.parser.Parse(fd.Rules)
	if err != nil {
		return nil, fmt.Errorf("rules of field %q: %w", fd.Name, err)
	}
	field.AddRules(rules...)

	filters, err := k.parser.Parse(fd.Filters)
	if err != nil {
		return nil, fmt.Errorf("filters of field %q: %w", fd.Name, err)
	}
	field.AddFilters(filters...)

	for _, name := range sortedKeys(fd.Attrs) {
		if err := field.SetAttr(name, fd.Attrs[name]); err != nil {
			return nil, err
		}
	}
	for _, name := range sortedKeys(fd.Tags) {
		field.SetTag(name, fd.Tags[name])
	}
	return field, nil
}

// Check lists problems Build would not reject: rules and filters the kit
// does not know, and malformed entries.
func (d *Definition) Check(k *Kit) []string {
	var problems []string
	if d.Name == "" {
		problems = append(problems, "form has no name")
	}

	seen := make(map[string]bool, len(d.Fields))
	for i, fd := range d.Fields {
		if fd.Name == "" {
			problems = append(problems, fmt.Sprintf("field %d has no name", i))
			continue
		}
		if seen[fd.Name] {
			problems = append(problems, fmt.Sprintf("duplicate field %q", fd.Name))
		}
		seen[fd.Name] = true

		rules, err := k.parser.Parse(fd.Rules)
		if err != nil {
			problems = append(problems, fmt.Sprintf("field %q: rules: %v", fd.Name, err))
		}
		for _, name := range rules.Names() {
			if _, ok := k.rules.Lookup(name); !ok {
				problems = append(problems, fmt.Sprintf("field %q: unknown rule %q", fd.Name, name))
			}
		}

		filters, err := k.parser.Parse(fd.Filters)
		if err != nil {
			problems = append(problems, fmt.Sprintf("field %q: filters: %v", fd.Name, err))
		}
		for _, name := range filters.Names() {
			if _, ok := k.filters.Lookup(name); !ok {
				problems = append(problems, fmt.Sprintf("field %q: unknown filter %q", fd.Name, name))
			}
		}
	}
	return problems
}
