package il

import (
	"fmt"

	"github.com/Manu343726/bodypatch/pkg/il/instructions"
)

// Builder provides a fluent interface for building instruction streams. The first error found
// is kept and returned by Build()
type Builder struct {
	instructions  []instructions.Instruction
	pendingLabels []instructions.LabelID
	err           error
}

// NewBuilder creates an empty stream builder
func NewBuilder() *Builder {
	return &Builder{
		instructions: make([]instructions.Instruction, 0),
	}
}

// Label attaches the given labels to the next instruction added
func (b *Builder) Label(labels ...instructions.LabelID) *Builder {
	b.pendingLabels = append(b.pendingLabels, labels...)
	return b
}

// Op appends an instruction with the given operation and operand
func (b *Builder) Op(op instructions.OpKind, operand instructions.Operand) *Builder {
	if b.err != nil {
		return b
	}

	instr, err := instructions.NewInstruction(op, operand, b.pendingLabels...)
	if err != nil {
		b.err = fmt.Errorf("instruction %d: %w", len(b.instructions), err)
		return b
	}

	b.pendingLabels = nil
	b.instructions = append(b.instructions, instr)
	return b
}

// Instr appends a copy of an existing instruction. Pending labels are added to its own labels
func (b *Builder) Instr(instr instructions.Instruction) *Builder {
	return b.Label(instr.Labels...).Op(instr.Op, instr.Operand)
}

// Build returns the built stream, validating label integrity
func (b *Builder) Build() (Stream, error) {
	if b.err != nil {
		return Stream{}, b.err
	}

	if len(b.pendingLabels) > 0 {
		return Stream{}, fmt.Errorf("%w: labels %v are not attached to any instruction", ErrUnresolvedLabel, instructions.JoinLabels(b.pendingLabels, ", "))
	}

	s := NewStream(b.instructions...)
	if err := s.Validate(); err != nil {
		return Stream{}, err
	}

	return s, nil
}

// MustBuild returns the built stream, panicking on error
func (b *Builder) MustBuild() Stream {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Convenience functions for common instructions

func (b *Builder) Nop() *Builder {
	return b.Op(instructions.OpKind_Nop, instructions.NoOperand())
}

func (b *Builder) LdcI(value int64) *Builder {
	return b.Op(instructions.OpKind_LdcI, instructions.IntOperand(value))
}

func (b *Builder) LdcR(value float64) *Builder {
	return b.Op(instructions.OpKind_LdcR, instructions.FloatOperand(value))
}

func (b *Builder) Ldstr(value string) *Builder {
	return b.Op(instructions.OpKind_Ldstr, instructions.StringOperand(value))
}

func (b *Builder) Ldnull() *Builder {
	return b.Op(instructions.OpKind_Ldnull, instructions.NoOperand())
}

func (b *Builder) Ldarg(index int64) *Builder {
	return b.Op(instructions.OpKind_Ldarg, instructions.IntOperand(index))
}

func (b *Builder) Ldloc(index int64) *Builder {
	return b.Op(instructions.OpKind_Ldloc, instructions.IntOperand(index))
}

func (b *Builder) Stloc(index int64) *Builder {
	return b.Op(instructions.OpKind_Stloc, instructions.IntOperand(index))
}

func (b *Builder) Ldfld(field instructions.SymbolRef) *Builder {
	return b.Op(instructions.OpKind_Ldfld, instructions.SymbolOperand(field))
}

func (b *Builder) Stfld(field instructions.SymbolRef) *Builder {
	return b.Op(instructions.OpKind_Stfld, instructions.SymbolOperand(field))
}

func (b *Builder) Ldsfld(field instructions.SymbolRef) *Builder {
	return b.Op(instructions.OpKind_Ldsfld, instructions.SymbolOperand(field))
}

func (b *Builder) Newobj(constructor instructions.SymbolRef) *Builder {
	return b.Op(instructions.OpKind_Newobj, instructions.SymbolOperand(constructor))
}

func (b *Builder) Call(method instructions.SymbolRef) *Builder {
	return b.Op(instructions.OpKind_Call, instructions.SymbolOperand(method))
}

func (b *Builder) Callvirt(method instructions.SymbolRef) *Builder {
	return b.Op(instructions.OpKind_Callvirt, instructions.SymbolOperand(method))
}

func (b *Builder) Br(target instructions.LabelID) *Builder {
	return b.Op(instructions.OpKind_Br, instructions.LabelsOperand(target))
}

func (b *Builder) Brtrue(target instructions.LabelID) *Builder {
	return b.Op(instructions.OpKind_Brtrue, instructions.LabelsOperand(target))
}

func (b *Builder) Brfalse(target instructions.LabelID) *Builder {
	return b.Op(instructions.OpKind_Brfalse, instructions.LabelsOperand(target))
}

func (b *Builder) Bge(target instructions.LabelID) *Builder {
	return b.Op(instructions.OpKind_Bge, instructions.LabelsOperand(target))
}

func (b *Builder) Blt(target instructions.LabelID) *Builder {
	return b.Op(instructions.OpKind_Blt, instructions.LabelsOperand(target))
}

func (b *Builder) Switch(targets ...instructions.LabelID) *Builder {
	return b.Op(instructions.OpKind_Switch, instructions.LabelsOperand(targets...))
}

func (b *Builder) Add() *Builder {
	return b.Op(instructions.OpKind_Add, instructions.NoOperand())
}

func (b *Builder) Mul() *Builder {
	return b.Op(instructions.OpKind_Mul, instructions.NoOperand())
}

func (b *Builder) Pop() *Builder {
	return b.Op(instructions.OpKind_Pop, instructions.NoOperand())
}

func (b *Builder) Ret() *Builder {
	return b.Op(instructions.OpKind_Ret, instructions.NoOperand())
}
