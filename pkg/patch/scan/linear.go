package scan

import (
	"fmt"

	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/patch/match"
	"github.com/Manu343726/bodypatch/pkg/utils"
)

// Linear tries the rule at every index of the stream, in order, and returns the first match (or the
// Occurrence-th one, counting from 0)
type Linear struct {
	Occurrence int
}

// First returns a linear strategy that stops at the first match
func First() Linear {
	return Linear{}
}

// Nth returns a linear strategy that skips the first n matches
func Nth(n int) Linear {
	return Linear{Occurrence: n}
}

func (l Linear) String() string {
	if l.Occurrence == 0 {
		return "linear"
	}
	return fmt.Sprintf("linear #%d", l.Occurrence)
}

func (l Linear) Find(s il.Stream, rule match.Rule) Outcome {
	closest := match.Result{Anchor: -1, Check: -1, Passed: -1}
	seen := 0

	// Anchors whose checks would start before the stream can never match, same for the end
	from, to := rule.Span()
	start := max(0, -from)
	end := s.Len() - to

	for anchor := start; anchor < end; anchor++ {
		result := match.Match(s, anchor, rule)

		if result.Matched {
			if seen == l.Occurrence {
				return found(anchor)
			}
			seen++
			continue
		}

		if result.Closer(closest) {
			closest = result
		}
	}

	outcome := Outcome{Anchor: -1, Closest: closest}

	switch {
	case seen > 0:
		outcome.Reason = utils.MakeError(match.ErrPatternNotFound, "rule matched %d time(s), occurrence #%d requested", seen, l.Occurrence)
	case closest.Reason != nil:
		outcome.Reason = fmt.Errorf("closest candidate at %d: %w", closest.Anchor, closest.Reason)
	default:
		outcome.Reason = utils.MakeError(match.ErrPatternNotFound, "stream of %d instructions is too short for rule spanning offsets %+d..%+d", s.Len(), from, to)
	}

	return outcome
}
