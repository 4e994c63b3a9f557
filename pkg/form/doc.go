// Package form assembles fields into forms and runs validation over them.
//
// # Architecture
//
// A Kit holds the rule and filter registries, the spec parser and the
// strict/logger settings. Fields, field sets and forms are created from a
// kit; NewField, NewFieldSet and NewForm use DefaultKit.
//
// A Field stores a raw value that starts unspecified. While unspecified, Raw
// returns the default. Value returns Raw passed through the attached filters,
// while rules always see the raw value. Rules and filters are attached with
// the "name:arg:arg|name" grammar; attaching a name twice replaces its
// arguments in place.
//
// Field attributes are plain values except for name, type, label, value,
// default, options, rule and filter, which route to the field properties.
// The name is read-only.
//
// A FieldSet keeps fields in insertion order. A Form adds validation state:
// at most one message per field, the first failing rule in attachment order.
//
// # Usage
//
//	kit := form.NewKit(form.WithLanguage("en"))
//	f := kit.NewForm("signup")
//	f.New("email", "email", "Email").Rule("required|email").Filter("trim|lower")
//	f.New("password", "password", "Password").Rule("required|minlength:8")
//	f.New("password_confirm", "password", "Confirmation").Rule("match:password")
//
//	f.Input(r.PostForm)
//	if !f.Validate() {
//		msgs := f.ErrorMessages()
//	}
//
// Forms can also be declared in YAML, JSON or TOML and built with Kit.Build:
//
//	def, err := form.LoadDefinition("forms/signup.yaml")
//	f, err := kit.Build(def)
//
// # Error Handling
//
// Validation failures are not Go errors inside the package. ValidateContext
// returns them as ValidationErrors for callers that prefer an error, and
// passes through predicate errors (see rule.Abort) untouched.
//
// Setters that return an error wrap ErrInvalidArgument or ErrUnknownField.
// The chainable SetValue, SetDefault, Rule and Filter panic with the wrapped
// error instead.
package form
