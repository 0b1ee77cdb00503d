package scan

import (
	"fmt"

	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/il/instructions"
	"github.com/Manu343726/bodypatch/pkg/patch/match"
	"github.com/Manu343726/bodypatch/pkg/utils"
)

// LabelIndexed resolves the Case-th target of a multi-way branch and only tries the rule there.
//
// The branch is the Occurrence-th switch instruction of the stream (counting from 0). If Switch has
// checks, the branch must also satisfy it, anchored at the switch instruction.
type LabelIndexed struct {
	Switch     match.Rule
	Occurrence int
	Case       int
}

// SwitchCase returns a label-indexed strategy for the given case of the first switch of the stream
func SwitchCase(caseIndex int) LabelIndexed {
	return LabelIndexed{Case: caseIndex}
}

func (l LabelIndexed) String() string {
	return fmt.Sprintf("switch #%d case %d", l.Occurrence, l.Case)
}

func (l LabelIndexed) Find(s il.Stream, rule match.Rule) Outcome {
	notFound := func(reason error) Outcome {
		return Outcome{Anchor: -1, Closest: match.Result{Anchor: -1, Check: -1}, Reason: reason}
	}

	switchIndex := -1
	seen := 0

	for i := 0; i < s.Len(); i++ {
		if s.At(i).Op != instructions.OpKind_Switch {
			continue
		}

		if seen == l.Occurrence {
			switchIndex = i
			break
		}
		seen++
	}

	if switchIndex < 0 {
		return notFound(utils.MakeError(match.ErrPatternNotFound, "stream has %d switch instruction(s), switch #%d requested", seen, l.Occurrence))
	}

	if len(l.Switch.Checks) > 0 {
		if result := match.Match(s, switchIndex, l.Switch); !result.Matched {
			return notFound(fmt.Errorf("switch at %d: %w", switchIndex, result.Reason))
		}
	}

	branch := s.At(switchIndex)
	if branch.Operand.Kind() != instructions.OperandKind_Labels {
		return notFound(utils.MakeError(match.ErrOperandTypeMismatch, "switch at %d has a %v operand", switchIndex, branch.Operand.Kind()))
	}

	targets := branch.Operand.Labels()
	if l.Case < 0 || l.Case >= len(targets) {
		return notFound(utils.MakeError(match.ErrPatternNotFound, "switch at %d has %d cases, case %d requested", switchIndex, len(targets), l.Case))
	}

	labels, err := il.ResolveLabels(s)
	if err != nil {
		return notFound(utils.MakeError(match.ErrPatternNotFound, "cannot resolve switch targets: %v", err))
	}

	anchor, ok := labels.Resolve(targets[l.Case])
	if !ok {
		return notFound(utils.MakeError(match.ErrPatternNotFound, "case %d label %v is not attached to any instruction", l.Case, targets[l.Case]))
	}

	result := match.Match(s, anchor, rule)
	if !result.Matched {
		return Outcome{Anchor: -1, Closest: result, Reason: fmt.Errorf("case %d target at %d: %w", l.Case, anchor, result.Reason)}
	}

	return found(anchor)
}
