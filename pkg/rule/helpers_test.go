package rule_test

import (
	"github.com/dmitrymomot/formkit/pkg/spec"
	"github.com/dmitrymomot/formkit/pkg/value"
)

type stubField struct {
	name     string
	label    string
	typ      string
	raw      value.Value
	rules    spec.List
	options  []string
	siblings map[string]value.Value
}

func newStub(rules string, raw any) *stubField {
	return &stubField{
		name:  "field",
		label: "Field",
		typ:   "text",
		raw:   value.MustOf(raw),
		rules: spec.MustParse(rules),
	}
}

func (s *stubField) Name() string         { return s.name }
func (s *stubField) Label() string        { return s.label }
func (s *stubField) Type() string         { return s.typ }
func (s *stubField) Raw() value.Value     { return s.raw }
func (s *stubField) Rules() spec.List     { return s.rules }
func (s *stubField) OptionKeys() []string { return s.options }

func (s *stubField) Sibling(name string) (value.Value, bool) {
	v, ok := s.siblings[name]
	return v, ok
}
