// Package edit applies declarative edit plans to instruction streams.
//
// An edit plan is a list of edits expressed relative to a rule anchor. Apply() runs the whole plan
// in one deterministic pass over a copy of the stream: operand replacements first, then instruction
// replacements, then insertions and removals from the highest position to the lowest so pending
// offsets stay valid. Label integrity is checked after every single edit, and any failure discards
// the copy, leaving the input stream untouched.
package edit

import (
	"fmt"

	"github.com/Manu343726/bodypatch/pkg/il/instructions"
	"github.com/Manu343726/bodypatch/pkg/utils"
)

// Kind of edit
type Kind uint

const (
	// Replaces the operand of an instruction, keeping its operation and labels
	Kind_ReplaceOperand Kind = iota
	// Replaces a whole instruction. The replacement inherits the labels of the replaced instruction
	Kind_ReplaceInstruction
	// Inserts instructions before the instruction at an offset
	Kind_InsertBefore
	// Removes a contiguous range of instructions. Their labels move to the instruction following the range
	Kind_RemoveRange
)

func (k Kind) String() string {
	switch k {
	case Kind_ReplaceOperand:
		return "ReplaceOperand"
	case Kind_ReplaceInstruction:
		return "ReplaceInstruction"
	case Kind_InsertBefore:
		return "InsertBefore"
	case Kind_RemoveRange:
		return "RemoveRange"
	}

	panic("unreachable")
}

// Edit is a single declarative edit relative to an anchor
type Edit struct {
	Kind         Kind
	Offset       int
	Count        int // Number of removed instructions (RemoveRange only)
	Operand      instructions.Operand
	Instructions []instructions.Instruction
	// InsertBefore only: move the labels of the instruction at Offset to the first inserted
	// instruction, so branches to it execute the inserted code
	TakeLabels bool
}

func (e Edit) String() string {
	switch e.Kind {
	case Kind_ReplaceOperand:
		return fmt.Sprintf("%v(%+d, %v)", e.Kind, e.Offset, e.Operand)
	case Kind_ReplaceInstruction:
		return fmt.Sprintf("%v(%+d, %v)", e.Kind, e.Offset, utils.FormatSlice(e.Instructions, "; "))
	case Kind_InsertBefore:
		if e.TakeLabels {
			return fmt.Sprintf("%v(%+d, %v, take labels)", e.Kind, e.Offset, utils.FormatSlice(e.Instructions, "; "))
		}
		return fmt.Sprintf("%v(%+d, %v)", e.Kind, e.Offset, utils.FormatSlice(e.Instructions, "; "))
	case Kind_RemoveRange:
		return fmt.Sprintf("%v(%+d, %d)", e.Kind, e.Offset, e.Count)
	}

	return fmt.Sprintf("<edit kind %d>", e.Kind)
}

// ReplaceOperand replaces the operand of the instruction at anchor+offset
func ReplaceOperand(offset int, value instructions.Operand) Edit {
	return Edit{Kind: Kind_ReplaceOperand, Offset: offset, Operand: value}
}

// ReplaceInstruction replaces the instruction at anchor+offset
func ReplaceInstruction(offset int, instr instructions.Instruction) Edit {
	return Edit{Kind: Kind_ReplaceInstruction, Offset: offset, Instructions: []instructions.Instruction{instr.Clone()}}
}

// InsertBefore inserts instructions before the instruction at anchor+offset. Labels stay on the
// existing instruction
func InsertBefore(offset int, instrs ...instructions.Instruction) Edit {
	return Edit{Kind: Kind_InsertBefore, Offset: offset, Instructions: cloneAll(instrs)}
}

// InsertBeforeTakingLabels inserts instructions before the instruction at anchor+offset, moving its
// labels to the first inserted instruction
func InsertBeforeTakingLabels(offset int, instrs ...instructions.Instruction) Edit {
	e := InsertBefore(offset, instrs...)
	e.TakeLabels = true
	return e
}

// RemoveRange removes count instructions starting at anchor+start
func RemoveRange(start, count int) Edit {
	return Edit{Kind: Kind_RemoveRange, Offset: start, Count: count}
}

func cloneAll(instrs []instructions.Instruction) []instructions.Instruction {
	return utils.Map(instrs, instructions.Instruction.Clone)
}
