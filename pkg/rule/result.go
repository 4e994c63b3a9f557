package rule

// Result is the outcome of a predicate call for one element.
type Result struct {
	failed   bool
	explicit bool
	message  string
	err      error
}

// Pass reports success.
func Pass() Result { return Result{} }

// Fail reports failure; the message comes from the registry templates.
func Fail() Result { return Result{failed: true} }

// FailWith reports failure with a message used verbatim.
func FailWith(msg string) Result {
	return Result{failed: true, explicit: true, message: msg}
}

// Check converts a boolean predicate outcome.
func Check(ok bool) Result {
	if ok {
		return Pass()
	}
	return Fail()
}

// Abort stops validation with an operational error, e.g. a failed database
// lookup. The error is returned from Evaluate wrapped in ErrRuleAborted.
func Abort(err error) Result {
	return Result{failed: true, err: err}
}

func (r Result) OK() bool { return !r.failed }

// Message returns the explicit failure message, if any.
func (r Result) Message() (string, bool) {
	return r.message, r.explicit
}

func (r Result) Err() error { return r.err }
