package match

import (
	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/utils"
)

// Result of matching a rule at an anchor
type Result struct {
	Matched bool
	Anchor  int
	Check   int   // Index of the failed check, -1 if none failed
	Passed  int   // Number of checks that passed before the failure
	Reason  error // Why the rule did not match. Wraps ErrPatternNotFound or ErrOperandTypeMismatch
}

// Match evaluates the rule against the stream anchored at the given index. It has no side effects.
// Out of bounds positions and failing predicates are reported as a non-matched result, never as an
// error
func Match(s il.Stream, anchor int, rule Rule) Result {
	result := Result{Anchor: anchor, Check: -1}

	for i, check := range rule.Checks {
		position := anchor + check.Offset

		if !s.InBounds(position) && check.Optional {
			result.Passed++
			continue
		}

		if !s.InBounds(position) {
			result.Check = i
			result.Reason = utils.MakeError(ErrPatternNotFound, "check %v at %d is out of bounds (stream has %d instructions)", check, position, s.Len())
			return result
		}

		if err := check.Predicate.Test(s.At(position)); err != nil {
			result.Check = i
			result.Reason = utils.MakeError(err, "check %v at %d", check, position)
			return result
		}

		result.Passed++
	}

	for _, shape := range rule.Shapes {
		actual, ok := ShapeOf(s, anchor, shape.From, shape.Count)
		if !ok {
			result.Reason = utils.MakeError(ErrPatternNotFound, "%v is out of bounds", shape)
			return result
		}
		if actual.Digest != shape.Digest {
			result.Reason = utils.MakeError(ErrPatternNotFound, "shape changed: expected %v, found %v", shape, actual)
			return result
		}
	}

	result.Matched = true
	return result
}

// Closer returns true if r got further than other before failing
func (r Result) Closer(other Result) bool {
	return r.Passed > other.Passed
}
