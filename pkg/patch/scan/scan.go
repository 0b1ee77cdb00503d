// Package scan finds anchor indices for pattern rules.
//
// Two strategies are available: Linear tries every index of the stream until the rule matches, and
// LabelIndexed resolves one target of a known multi-way branch and only tries that index.
package scan

import (
	"errors"

	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/patch/match"
)

// Outcome of an anchor search
type Outcome struct {
	Found  bool
	Anchor int
	// Best candidate found when the search failed: the attempt that passed the most checks.
	// Its Reason explains why the rule did not match there
	Closest match.Result
	Reason  error // Wraps match.ErrPatternNotFound or match.ErrOperandTypeMismatch if not found
}

// Strategy finds the anchor of a rule in a stream
type Strategy interface {
	Find(s il.Stream, rule match.Rule) Outcome
	String() string
}

// IsTypeMismatch returns true if the search failed because of an unexpected operand kind
func (o Outcome) IsTypeMismatch() bool {
	return !o.Found && errors.Is(o.Reason, match.ErrOperandTypeMismatch)
}

func found(anchor int) Outcome {
	return Outcome{Found: true, Anchor: anchor, Closest: match.Result{Matched: true, Anchor: anchor, Check: -1}}
}
