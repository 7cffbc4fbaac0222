package yarpgen

import (
	"fmt"

	"github.com/pkg/errors"
)

// preconditionError marks an internal invariant violation (e.g. a binary
// operator applied to mismatched types after a failed propagateType pass).
// These are programmer bugs in the generator itself, not generation-time
// failures. Some are raised via panic and recovered at the top of Generate;
// others (built by errPreconditionf) are returned as ordinary errors. Either
// way they abort generation with a diagnostic (§7) rather than corrupting
// output silently.
type preconditionError struct {
	msg string
}

func (e preconditionError) Error() string { return "precondition violation: " + e.msg }

// rebuildDivergenceError reports that rebuild's bounded retry (§4.3) could
// not eliminate undefined behavior from an expression after the single
// permitted re-evaluation.
type rebuildDivergenceError struct {
	ubKind UBKind
	expr   string
}

func (e *rebuildDivergenceError) Error() string {
	return fmt.Sprintf("rebuild did not converge: %s still has %s after retry", e.expr, e.ubKind)
}

func newRebuildDivergenceError(kind UBKind, exprDesc string) error {
	return errors.WithStack(&rebuildDivergenceError{ubKind: kind, expr: exprDesc})
}

// recoverPrecondition turns a preconditionError panic into an error, letting
// Generate report a diagnostic instead of crashing the process. Any other
// panic value is re-raised: only the class of error we explicitly produce
// here is a "known" invariant violation.
func recoverPrecondition(target *error) {
	if r := recover(); r != nil {
		if pe, ok := r.(preconditionError); ok {
			*target = errors.Wrap(pe, "generation aborted")
			return
		}
		panic(r)
	}
}
