// Package rule implements named validation rules and the evaluator that runs
// them against form fields.
//
// # Architecture
//
// A Registry maps rule names to a Definition: the predicate plus two flags.
// CheckBlank makes the predicate run for blank elements ("", nil, false),
// which are otherwise accepted without a call. ArraySeparate (on by default)
// checks sequence values element by element instead of as a whole.
//
// The Evaluator walks the rules attached to a Target in order and stops at
// the first failure. Two rules get special treatment:
//
//   - required on a sequence passes when at least one element is non-blank.
//   - required on select, checkbox and radio fields reports the
//     required_select template when one exists.
//
// Messages live in a per-language catalog. $0 is replaced with the field
// label and $1..$n with the rule arguments. The language comes from the
// context (see i18n.WithLocale) and falls back to the registry language,
// then to the "_default" template of either, then to FallbackMessage.
//
// # Usage
//
//	reg := rule.NewRegistry(rule.WithLanguage("ja"), rule.WithStrict(true))
//	reg.Define("zip", func(in rule.Input) rule.Result {
//		return rule.Check(zipPattern.MatchString(in.String()))
//	}, rule.WithMessage("en", "$0 must be a postal code."))
//
//	failure, err := reg.Evaluator().Evaluate(ctx, field)
//	if err != nil {
//		return err // a predicate aborted
//	}
//	if failure != nil {
//		fmt.Println(failure.Message)
//	}
//
// Predicates return Pass, Fail, FailWith (a message used verbatim) or Abort
// for operational errors such as a lost database connection.
//
// # Built-in rules
//
// required, between, min, max, length, minlength, maxlength, regex, int,
// natural, decimal, alpha, alpha_num, alpha_dash, kana, url, email, date,
// datehm, datetime, past, future, match, in_array and in_options.
//
// past and future detect the value format when the first argument is "auto"
// (the default) and compare at the detected granularity. A value whose
// format cannot be detected passes.
//
// # Error Handling
//
// Unknown rules are skipped. In strict mode configuration problems (unknown
// rule, redefinition, nil predicate, bad regex) are logged as warnings
// through the registry logger. Evaluate returns an error only when a
// predicate aborts; it wraps ErrRuleAborted.
package rule
