// Package match evaluates structural patterns against instruction streams.
//
// A Rule is an ordered list of (relative offset, predicate) checks evaluated against the
// instructions around an anchor index. Matching is pure: it never modifies the stream and reports
// mismatches as data, classifying them as ErrPatternNotFound (the expected shape is absent) or
// ErrOperandTypeMismatch (the shape is there but an operand has an unexpected kind).
package match

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Manu343726/bodypatch/pkg/il/instructions"
	"github.com/Manu343726/bodypatch/pkg/utils"
)

var (
	// ErrPatternNotFound indicates the expected instruction shape is absent
	ErrPatternNotFound = errors.New("pattern not found")
	// ErrOperandTypeMismatch indicates an instruction has the expected operation but an operand of an unexpected kind
	ErrOperandTypeMismatch = errors.New("operand type mismatch")
)

// Predicate tests a single instruction. Test returns nil if the instruction satisfies the predicate
type Predicate struct {
	Description string
	test        func(instructions.Instruction) error
}

// NewPredicate creates a predicate from a description and a test function
func NewPredicate(description string, test func(instructions.Instruction) error) Predicate {
	return Predicate{Description: description, test: test}
}

// Test returns nil if the instruction satisfies the predicate, or an error wrapping
// ErrPatternNotFound or ErrOperandTypeMismatch
func (p Predicate) Test(instr instructions.Instruction) error {
	if p.test == nil {
		return nil
	}
	return p.test(instr)
}

func (p Predicate) String() string {
	return p.Description
}

// Any matches any instruction
func Any() Predicate {
	return NewPredicate("any", func(instructions.Instruction) error { return nil })
}

// Op matches instructions performing any of the given operations
func Op(kinds ...instructions.OpKind) Predicate {
	description := strings.Join(utils.Map(kinds, instructions.OpKind.String), "|")

	return NewPredicate(description, func(instr instructions.Instruction) error {
		for _, kind := range kinds {
			if instr.Op == kind {
				return nil
			}
		}
		return utils.MakeError(ErrPatternNotFound, "expected %v, found %v", description, instr.Op)
	})
}

// OperandIn matches instructions whose operand equals any of the given values. An operand of a kind
// none of the values has is reported as ErrOperandTypeMismatch
func OperandIn(values ...instructions.Operand) Predicate {
	description := "operand in {" + utils.FormatSlice(values, ", ") + "}"

	return NewPredicate(description, func(instr instructions.Instruction) error {
		kindFound := false

		for _, value := range values {
			if value.Kind() != instr.Operand.Kind() {
				continue
			}
			kindFound = true

			if value.Equal(instr.Operand) {
				return nil
			}
		}

		if !kindFound {
			return utils.MakeError(ErrOperandTypeMismatch, "expected %v, found %v operand %v", description, instr.Operand.Kind(), instr.Operand)
		}

		return utils.MakeError(ErrPatternNotFound, "expected %v, found %v", description, instr.Operand)
	})
}

// OperandIs matches instructions whose operand equals the given value
func OperandIs(value instructions.Operand) Predicate {
	return OperandIn(value)
}

// Ldc matches integer constant loads with any of the given values (any value if none is given).
// A floating point constant load at the same position is reported as ErrOperandTypeMismatch
func Ldc(values ...int64) Predicate {
	return constant(instructions.OpKind_LdcI, instructions.OperandKind_Int, utils.Map(values, instructions.IntOperand))
}

// LdcR matches floating point constant loads with any of the given values (any value if none is given).
// An integer constant load at the same position is reported as ErrOperandTypeMismatch
func LdcR(values ...float64) Predicate {
	return constant(instructions.OpKind_LdcR, instructions.OperandKind_Float, utils.Map(values, instructions.FloatOperand))
}

func constant(op instructions.OpKind, kind instructions.OperandKind, values []instructions.Operand) Predicate {
	description := op.String()
	if len(values) > 0 {
		description = fmt.Sprintf("%v {%v}", op, utils.FormatSlice(values, ", "))
	}

	return NewPredicate(description, func(instr instructions.Instruction) error {
		if instr.Op != instructions.OpKind_LdcI && instr.Op != instructions.OpKind_LdcR {
			return utils.MakeError(ErrPatternNotFound, "expected %v, found %v", description, instr)
		}

		if instr.Operand.Kind() != kind {
			return utils.MakeError(ErrOperandTypeMismatch, "expected %v, found %v", description, instr)
		}

		if len(values) == 0 {
			return nil
		}

		return OperandIn(values...).Test(instr)
	})
}

// Ldstr matches string literal loads with any of the given values (any string if none is given)
func Ldstr(values ...string) Predicate {
	if len(values) == 0 {
		return Op(instructions.OpKind_Ldstr)
	}

	operands := utils.Map(values, instructions.StringOperand)
	return And(Op(instructions.OpKind_Ldstr), OperandIn(operands...))
}

// CallTo matches call and callvirt instructions to the given method, regardless of its signature
func CallTo(owner, name string) Predicate {
	return symbolUse(fmt.Sprintf("call %s::%s", owner, name), instructions.SymbolKind_Method, owner, name,
		instructions.OpKind_Call, instructions.OpKind_Callvirt)
}

// CallExact matches call and callvirt instructions to exactly the given method symbol
func CallExact(method instructions.SymbolRef) Predicate {
	return And(Op(instructions.OpKind_Call, instructions.OpKind_Callvirt), OperandIs(instructions.SymbolOperand(method)))
}

// FieldRef matches instructions loading or storing the given (instance or static) field
func FieldRef(owner, name string) Predicate {
	return symbolUse(fmt.Sprintf("field %s::%s", owner, name), instructions.SymbolKind_Field, owner, name,
		instructions.OpKind_Ldfld, instructions.OpKind_Stfld, instructions.OpKind_Ldsfld, instructions.OpKind_Stsfld)
}

// NewObj matches object constructions of the given type
func NewObj(owner string) Predicate {
	return symbolUse("newobj "+owner, instructions.SymbolKind_Method, owner, "",
		instructions.OpKind_Newobj)
}

func symbolUse(description string, kind instructions.SymbolKind, owner, name string, ops ...instructions.OpKind) Predicate {
	opPredicate := Op(ops...)

	return NewPredicate(description, func(instr instructions.Instruction) error {
		if err := opPredicate.Test(instr); err != nil {
			return err
		}

		if instr.Operand.Kind() != instructions.OperandKind_Symbol {
			return utils.MakeError(ErrOperandTypeMismatch, "expected %v, found %v", description, instr)
		}

		symbol := instr.Operand.Symbol()
		if symbol.Kind != kind || symbol.Owner != owner || (name != "" && symbol.Name != name) {
			return utils.MakeError(ErrPatternNotFound, "expected %v, found %v", description, instr)
		}

		return nil
	})
}

// Branch matches any branch instruction (conditional, unconditional or multi-way)
func Branch() Predicate {
	return NewPredicate("branch", func(instr instructions.Instruction) error {
		if !instr.Op.IsBranch() {
			return utils.MakeError(ErrPatternNotFound, "expected branch, found %v", instr)
		}
		return nil
	})
}

// And matches instructions satisfying all the predicates. Reports the first failure
func And(predicates ...Predicate) Predicate {
	description := strings.Join(utils.Map(predicates, Predicate.String), " && ")

	return NewPredicate(description, func(instr instructions.Instruction) error {
		for _, predicate := range predicates {
			if err := predicate.Test(instr); err != nil {
				return err
			}
		}
		return nil
	})
}

// Or matches instructions satisfying any of the predicates. If all of them fail with
// ErrOperandTypeMismatch the failure is reported as a type mismatch, else as ErrPatternNotFound
func Or(predicates ...Predicate) Predicate {
	description := "(" + strings.Join(utils.Map(predicates, Predicate.String), " || ") + ")"

	return NewPredicate(description, func(instr instructions.Instruction) error {
		allMismatches := len(predicates) > 0

		for _, predicate := range predicates {
			err := predicate.Test(instr)
			if err == nil {
				return nil
			}
			if !errors.Is(err, ErrOperandTypeMismatch) {
				allMismatches = false
			}
		}

		if allMismatches {
			return utils.MakeError(ErrOperandTypeMismatch, "expected %v, found %v", description, instr)
		}
		return utils.MakeError(ErrPatternNotFound, "expected %v, found %v", description, instr)
	})
}

// Not matches instructions not satisfying the predicate
func Not(predicate Predicate) Predicate {
	description := "!" + predicate.Description

	return NewPredicate(description, func(instr instructions.Instruction) error {
		if predicate.Test(instr) == nil {
			return utils.MakeError(ErrPatternNotFound, "expected %v, found %v", description, instr)
		}
		return nil
	})
}
