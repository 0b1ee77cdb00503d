package match

import (
	"encoding/hex"
	"testing"

	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/il/instructions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instr(text string) instructions.Instruction {
	i, err := instructions.ParseInstruction(text)
	if err != nil {
		panic(err)
	}
	return i
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name      string
		predicate Predicate
		instr     string
		err       error
	}{
		{name: "any", predicate: Any(), instr: "ret"},
		{name: "op", predicate: Op(instructions.OpKind_Add, instructions.OpKind_Mul), instr: "mul"},
		{name: "op mismatch", predicate: Op(instructions.OpKind_Add), instr: "mul", err: ErrPatternNotFound},
		{name: "ldc", predicate: Ldc(10, 12), instr: "ldc.i 12"},
		{name: "ldc any value", predicate: Ldc(), instr: "ldc.i 7"},
		{name: "ldc value mismatch", predicate: Ldc(10), instr: "ldc.i 11", err: ErrPatternNotFound},
		{name: "ldc on float", predicate: Ldc(10), instr: "ldc.r 10", err: ErrOperandTypeMismatch},
		{name: "ldc on string", predicate: Ldc(10), instr: `ldstr "10"`, err: ErrPatternNotFound},
		{name: "ldc.r", predicate: LdcR(100, 120), instr: "ldc.r 120"},
		{name: "ldc.r on integer", predicate: LdcR(100), instr: "ldc.i 100", err: ErrOperandTypeMismatch},
		{name: "ldstr", predicate: Ldstr("Target"), instr: `ldstr "Target"`},
		{name: "ldstr mismatch", predicate: Ldstr("Target"), instr: `ldstr "target"`, err: ErrPatternNotFound},
		{name: "call", predicate: CallTo("WorldGen", "GetTileRow"), instr: "call WorldGen::GetTileRow(int32)"},
		{name: "callvirt", predicate: CallTo("CaveIn", "Trigger"), instr: "callvirt CaveIn::Trigger(int32)"},
		{name: "call other method", predicate: CallTo("WorldGen", "GetTileRow"), instr: "call WorldGen::GetTileColumn(int32)", err: ErrPatternNotFound},
		{name: "call exact", predicate: CallExact(instructions.Method("Hud", "DrawMarkers")), instr: "call Hud::DrawMarkers()"},
		{name: "call exact other signature", predicate: CallExact(instructions.Method("Hud", "DrawMarkers", "int32")), instr: "call Hud::DrawMarkers()", err: ErrPatternNotFound},
		{name: "field", predicate: FieldRef("Player", "hasDiveSuit"), instr: "ldfld field Player::hasDiveSuit"},
		{name: "static field", predicate: FieldRef("Hud", "showTerrain"), instr: "ldsfld field Hud::showTerrain"},
		{name: "field on call", predicate: FieldRef("Hud", "showTerrain"), instr: "call Hud::showTerrain()", err: ErrPatternNotFound},
		{name: "newobj", predicate: NewObj("Light"), instr: "newobj Light::.ctor(float32)"},
		{name: "branch", predicate: Branch(), instr: "switch A, B"},
		{name: "not branch", predicate: Branch(), instr: "ldc.i 3", err: ErrPatternNotFound},
		{name: "and", predicate: And(Op(instructions.OpKind_LdcI), OperandIs(instructions.IntOperand(3))), instr: "ldc.i 3"},
		{name: "or", predicate: Or(Ldc(1), Ldstr("one")), instr: `ldstr "one"`},
		{name: "or mismatching types", predicate: Or(Ldc(1), LdcR(2)), instr: `ldc.r 1`, err: ErrPatternNotFound},
		{name: "or all types mismatched", predicate: Or(Ldc(1), Ldc(2)), instr: `ldc.r 1`, err: ErrOperandTypeMismatch},
		{name: "not", predicate: Not(Op(instructions.OpKind_Ret)), instr: "nop"},
		{name: "not matching", predicate: Not(Op(instructions.OpKind_Ret)), instr: "ret", err: ErrPatternNotFound},
		{name: "operand in other kind", predicate: OperandIn(instructions.StringOperand("x")), instr: "ldc.i 3", err: ErrOperandTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.predicate.Test(instr(tt.instr))
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	s := il.NewBuilder().
		Ldstr("Target").
		Nop().
		LdcI(5).
		Ret().
		MustBuild()

	rule := NewRule(At(0, Ldstr("Target")), At(2, Ldc(5)))

	result := Match(s, 0, rule)
	assert.True(t, result.Matched)
	assert.Equal(t, 2, result.Passed)

	result = Match(s, 1, rule)
	assert.False(t, result.Matched)
	assert.Equal(t, 0, result.Check)
	assert.ErrorIs(t, result.Reason, ErrPatternNotFound)

	result = Match(s, 2, rule)
	assert.False(t, result.Matched)
	assert.ErrorIs(t, result.Reason, ErrPatternNotFound)

	outOfBounds := NewRule(At(0, Ldstr("Target")), At(5, Any()))
	result = Match(s, 0, outOfBounds)
	assert.False(t, result.Matched)
	assert.Equal(t, 1, result.Check)
	assert.Equal(t, 1, result.Passed)
	assert.Contains(t, result.Reason.Error(), "out of bounds")
}

func TestRuleOffsets(t *testing.T) {
	rule := NewRule(At(0, Any()), At(3, Any())).WithShape(ShapeOfOps(-2, instructions.OpKind_Nop, instructions.OpKind_Nop))

	assert.Equal(t, -2, rule.MinOffset())
	assert.Equal(t, 3, rule.MaxOffset())
	assert.Len(t, rule.Checks, 2)
	assert.Len(t, rule.Shapes, 1)

	onlyAfter := NewRule(At(2, Any()))
	assert.Equal(t, 0, onlyAfter.MinOffset())
	assert.Equal(t, 2, onlyAfter.MaxOffset())
}

func TestOptionalChecks(t *testing.T) {
	rule := NewRule(At(0, Ldstr("Target")), IfPresent(-1, Not(Op(instructions.OpKind_Call))))

	first := il.NewBuilder().Ldstr("Target").Ret().MustBuild()
	result := Match(first, 0, rule)
	assert.True(t, result.Matched)
	assert.Equal(t, 2, result.Passed)

	afterNop := il.NewBuilder().Nop().Ldstr("Target").Ret().MustBuild()
	assert.True(t, Match(afterNop, 1, rule).Matched)

	afterCall := il.NewBuilder().Call(instructions.Method("Hud", "Draw")).Ldstr("Target").Ret().MustBuild()
	result = Match(afterCall, 1, rule)
	assert.False(t, result.Matched)
	assert.Equal(t, 1, result.Check)
	assert.ErrorIs(t, result.Reason, ErrPatternNotFound)

	assert.Equal(t, -1, rule.MinOffset())
	from, to := rule.Span()
	assert.Equal(t, 0, from)
	assert.Equal(t, 0, to)
	assert.Contains(t, rule.Checks[1].String(), "[-1]?")
}

func TestShapes(t *testing.T) {
	s := il.NewBuilder().
		Ldarg(0).
		Ldfld(instructions.Field("Lantern", "baseIntensity")).
		LdcR(0.85).
		Ret().
		MustBuild()

	shape, ok := ShapeOf(s, 2, -2, 2)
	require.True(t, ok)
	assert.Equal(t, ShapeOfOps(-2, instructions.OpKind_Ldarg, instructions.OpKind_Ldfld), shape)

	_, ok = ShapeOf(s, 2, -3, 2)
	assert.False(t, ok)

	parsed, err := ShapeFromHex(-2, 2, hex.EncodeToString(shape.Digest[:]))
	require.NoError(t, err)
	assert.Equal(t, shape, parsed)

	_, err = ShapeFromHex(0, 1, "abc")
	assert.ErrorIs(t, err, ErrInvalidShape)
	_, err = ShapeFromHex(0, 1, "abcd")
	assert.ErrorIs(t, err, ErrInvalidShape)

	guarded := NewRule(At(0, LdcR())).WithShape(shape)
	assert.True(t, Match(s, 2, guarded).Matched)

	changed := NewRule(At(0, LdcR())).WithShape(ShapeOfOps(-2, instructions.OpKind_Ldarg, instructions.OpKind_Ldsfld))
	result := Match(s, 2, changed)
	assert.False(t, result.Matched)
	assert.ErrorIs(t, result.Reason, ErrPatternNotFound)
	assert.Contains(t, result.Reason.Error(), "shape changed")
}
