package il

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Manu343726/bodypatch/pkg/il/instructions"
	"golang.org/x/exp/slices"
)

var (
	// ErrUnresolvedLabel indicates a branch references a label not attached to any instruction
	ErrUnresolvedLabel = errors.New("unresolved label")
	// ErrDuplicateLabel indicates a label is attached to more than one instruction
	ErrDuplicateLabel = errors.New("duplicate label")
)

// LabelIndex maps each label of a stream to the index of the instruction it is attached to
type LabelIndex map[instructions.LabelID]int

// Resolve returns the instruction index of the label
func (l LabelIndex) Resolve(label instructions.LabelID) (int, bool) {
	index, ok := l[label]
	return index, ok
}

// ResolveLabels builds the label index of a stream, checking that every label is attached to exactly
// one instruction and that every label referenced by a branch instruction is attached to some
// instruction of the stream.
func ResolveLabels(s Stream) (LabelIndex, error) {
	index := make(LabelIndex)
	var duplicated []string

	for i, instr := range s.instructions {
		for _, label := range instr.Labels {
			if previous, ok := index[label]; ok {
				duplicated = append(duplicated, fmt.Sprintf("%s (instructions %d and %d)", label, previous, i))
				continue
			}
			index[label] = i
		}
	}

	if len(duplicated) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateLabel, strings.Join(duplicated, ", "))
	}

	var unresolved []string

	for i, instr := range s.instructions {
		for _, target := range instr.Targets() {
			if _, ok := index[target]; !ok {
				unresolved = append(unresolved, fmt.Sprintf("%s (instruction %d, %v)", target, i, instr.Op))
			}
		}
	}

	if len(unresolved) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnresolvedLabel, strings.Join(unresolved, ", "))
	}

	return index, nil
}

// Branch describes a branch instruction of a stream and the resolved indices of its targets
type Branch struct {
	Index   int
	Op      instructions.OpKind
	Targets []int
}

// Branches returns all branch instructions of a stream with their resolved targets
func Branches(s Stream) ([]Branch, error) {
	index, err := ResolveLabels(s)
	if err != nil {
		return nil, err
	}

	var branches []Branch

	for i, instr := range s.instructions {
		targets := instr.Targets()
		if len(targets) == 0 {
			continue
		}

		branch := Branch{Index: i, Op: instr.Op, Targets: make([]int, len(targets))}
		for j, target := range targets {
			branch.Targets[j] = index[target]
		}
		branches = append(branches, branch)
	}

	return branches, nil
}

// Labels returns all labels attached to instructions of the stream, sorted by name
func Labels(s Stream) []instructions.LabelID {
	var labels []instructions.LabelID
	for _, instr := range s.instructions {
		labels = append(labels, instr.Labels...)
	}
	slices.Sort(labels)
	return labels
}
