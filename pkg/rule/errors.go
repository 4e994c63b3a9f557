package rule

import "errors"

// ErrRuleAborted wraps the operational error reported by a predicate via
// Abort. Validation failures are never reported as errors.
var ErrRuleAborted = errors.New("rule evaluation aborted")
