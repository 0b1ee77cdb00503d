package instructions

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Manu343726/bodypatch/pkg/utils"
	"golang.org/x/exp/slices"
)

var ErrInvalidInstruction = errors.New("invalid instruction")

// Stores a single instruction of a method body. Its index is its position in the owning stream.
// Instructions are values: edits produce new instructions instead of mutating existing ones.
type Instruction struct {
	Op      OpKind
	Operand Operand
	Labels  []LabelID // Labels attached to (pointing at) this instruction
}

func (i Instruction) String() string {
	var builder strings.Builder

	if len(i.Labels) > 0 {
		builder.WriteString(JoinLabels(i.Labels, ", "))
		builder.WriteString(": ")
	}

	builder.WriteString(i.Op.String())

	if i.Operand.Kind() != OperandKind_None {
		builder.WriteString(" ")
		builder.WriteString(i.Operand.String())
	}

	return builder.String()
}

// Returns a deep copy of the instruction
func (i Instruction) Clone() Instruction {
	return Instruction{
		Op:      i.Op,
		Operand: i.Operand,
		Labels:  slices.Clone(i.Labels),
	}
}

// Returns true if both instructions have the same operation, operand and attached labels
func (i Instruction) Equal(other Instruction) bool {
	return i.Op == other.Op && i.Operand.Equal(other.Operand) && slices.Equal(i.Labels, other.Labels)
}

// Returns true if both instructions perform the same operation with the same operand, ignoring labels
func (i Instruction) SameCode(other Instruction) bool {
	return i.Op == other.Op && i.Operand.Equal(other.Operand)
}

// Returns the labels this instruction may transfer control to. Empty for non-branch instructions
func (i Instruction) Targets() []LabelID {
	if i.Op.IsBranch() && i.Operand.Kind() == OperandKind_Labels {
		return i.Operand.Labels()
	}

	return nil
}

// Returns a copy of the instruction with a different operand. The operand must be valid for the operation
func (i Instruction) WithOperand(operand Operand) (Instruction, error) {
	if err := validateOperand(i.Op, operand); err != nil {
		return Instruction{}, err
	}

	result := i.Clone()
	result.Operand = operand
	return result, nil
}

// Returns a copy of the instruction with the given set of attached labels
func (i Instruction) WithLabels(labels ...LabelID) Instruction {
	result := i.Clone()
	result.Labels = slices.Clone(labels)
	return result
}

func validateOperand(op OpKind, operand Operand) error {
	if op >= TOTAL_OPKINDS {
		return utils.MakeError(ErrInvalidOpKind, "%d", op)
	}

	expected := OpKinds.Descriptor(op).Operand
	if operand.Kind() != expected {
		return utils.MakeError(ErrInvalidInstruction, "%v expects a %v operand, got %v", op, expected, operand.Kind())
	}

	if expected == OperandKind_Labels {
		targets := operand.Labels()
		if len(targets) == 0 {
			return utils.MakeError(ErrInvalidInstruction, "%v expects at least one target label", op)
		}
		if op.Flow() != Flow_Switch && len(targets) != 1 {
			return utils.MakeError(ErrInvalidInstruction, "%v expects exactly one target label, got %v", op, len(targets))
		}
	}

	return nil
}

// Creates an instruction, validating the operand against the operation kind
func NewInstruction(op OpKind, operand Operand, labels ...LabelID) (Instruction, error) {
	if err := validateOperand(op, operand); err != nil {
		return Instruction{}, err
	}

	return Instruction{
		Op:      op,
		Operand: operand,
		Labels:  slices.Clone(labels),
	}, nil
}

// Same as NewInstruction() but panics on error
func MustInstruction(op OpKind, operand Operand, labels ...LabelID) Instruction {
	instr, err := NewInstruction(op, operand, labels...)
	if err != nil {
		panic(err)
	}
	return instr
}

var labelPrefixPattern = regexp.MustCompile(`^((?:[A-Za-z_][\w.$]*\s*,\s*)*[A-Za-z_][\w.$]*)\s*:\s+(.*)$`)

// Parses an instruction from its textual representation, as returned by Instruction.String():
//
//	[label1, label2: ]mnemonic [operand]
func ParseInstruction(text string) (Instruction, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Instruction{}, utils.MakeError(ErrInvalidInstruction, "empty instruction text")
	}

	var labels []LabelID
	if match := labelPrefixPattern.FindStringSubmatch(text); match != nil {
		for _, name := range strings.Split(match[1], ",") {
			labels = append(labels, LabelID(strings.TrimSpace(name)))
		}
		text = match[2]
	}

	mnemonic, operandText, _ := strings.Cut(text, " ")

	op, err := OpKinds.ParseOpKind(mnemonic)
	if err != nil {
		return Instruction{}, fmt.Errorf("%w: %v", ErrInvalidInstruction, err)
	}

	operand, err := ParseOperand(operandText, OpKinds.Descriptor(op).Operand)
	if err != nil {
		return Instruction{}, err
	}

	return NewInstruction(op, operand, labels...)
}
