package il

import (
	"testing"

	"github.com/Manu343726/bodypatch/pkg/il/instructions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	s, err := NewBuilder().
		Label("L_loop").Ldloc(0).
		LdcI(10).
		Blt("L_loop").
		Ret().
		Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"L_loop: ldloc 0", "ldc.i 10", "blt L_loop", "ret"}, s.Lines())
}

func TestBuilderErrors(t *testing.T) {
	_, err := NewBuilder().Br("nowhere").Build()
	assert.ErrorIs(t, err, ErrUnresolvedLabel)

	_, err = NewBuilder().Ret().Label("dangling").Build()
	assert.ErrorIs(t, err, ErrUnresolvedLabel)

	_, err = NewBuilder().Label("A").Nop().Label("A").Ret().Build()
	assert.ErrorIs(t, err, ErrDuplicateLabel)

	_, err = NewBuilder().Op(instructions.OpKind_LdcI, instructions.StringOperand("ten")).Build()
	assert.ErrorIs(t, err, instructions.ErrInvalidInstruction)

	assert.Panics(t, func() { NewBuilder().Br("nowhere").MustBuild() })
}

func TestStreamIsImmutable(t *testing.T) {
	instrs := []instructions.Instruction{
		instructions.MustInstruction(instructions.OpKind_LdcI, instructions.IntOperand(1), "A"),
		instructions.MustInstruction(instructions.OpKind_Ret, instructions.NoOperand()),
	}
	s := NewStream(instrs...)

	instrs[0].Labels[0] = "B"
	assert.Equal(t, []instructions.LabelID{"A"}, s.At(0).Labels)

	copied := s.Instructions()
	copied[0].Labels[0] = "C"
	assert.Equal(t, []instructions.LabelID{"A"}, s.At(0).Labels)

	at := s.At(0)
	at.Labels[0] = "D"
	assert.Equal(t, []instructions.LabelID{"A"}, s.At(0).Labels)
}

func TestStreamEqualAndDigest(t *testing.T) {
	a := NewBuilder().Label("A").LdcI(1).Br("A").MustBuild()
	b := NewBuilder().Label("A").LdcI(1).Br("A").MustBuild()
	c := NewBuilder().Label("B").LdcI(1).Br("B").MustBuild()

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Digest(), b.Digest())
	assert.False(t, a.Equal(c))
	assert.NotEqual(t, a.Digest(), c.Digest())
	assert.False(t, a.Equal(NewStream()))
}

func TestParseStream(t *testing.T) {
	lines := []string{
		"ldarg 1",
		"switch L_a, L_b",
		"L_a, L_b: ret",
	}

	s, err := ParseStream(lines)
	require.NoError(t, err)
	assert.Equal(t, lines, s.Lines())
	assert.Equal(t, "   0: ldarg 1\n   1: switch L_a, L_b\n   2: L_a, L_b: ret", s.String())

	_, err = ParseStream([]string{"ret", "frobnicate 3"})
	assert.ErrorIs(t, err, instructions.ErrInvalidInstruction)
	assert.Contains(t, err.Error(), "instruction 1")

	_, err = ParseStream([]string{"br L_x", "ret"})
	assert.ErrorIs(t, err, ErrUnresolvedLabel)
}

func TestLabels(t *testing.T) {
	s := NewBuilder().
		Ldarg(1).
		Switch("L_c", "L_a").
		Label("L_b").Br("L_c").
		Label("L_a").Nop().
		Label("L_c").Ret().
		MustBuild()

	index, err := ResolveLabels(s)
	require.NoError(t, err)
	assert.Equal(t, LabelIndex{"L_a": 3, "L_b": 2, "L_c": 4}, index)

	branches, err := Branches(s)
	require.NoError(t, err)
	assert.Equal(t, []Branch{
		{Index: 1, Op: instructions.OpKind_Switch, Targets: []int{4, 3}},
		{Index: 2, Op: instructions.OpKind_Br, Targets: []int{4}},
	}, branches)

	assert.Equal(t, []instructions.LabelID{"L_a", "L_b", "L_c"}, Labels(s))
}

func TestMethodID(t *testing.T) {
	tests := []struct {
		text     string
		expected MethodID
		wantErr  bool
	}{
		{text: "Player::get_MaxOxygen()", expected: Method("Player", "get_MaxOxygen")},
		{text: "Inventory::AddItem(Item, int32)", expected: Method("Inventory", "AddItem", "Item", "int32")},
		{text: " Lantern::Update(float32) ", expected: Method("Lantern", "Update", "float32")},
		{text: "Player.Jump()", wantErr: true},
		{text: "Player::Jump", wantErr: true},
		{text: "::Jump()", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			id, err := ParseMethodID(tt.text)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMethodID)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(id))
			assert.Equal(t, tt.expected.String(), id.String())
		})
	}

	assert.Equal(t, "Inventory::AddItem(Item,int32)", Method("Inventory", "AddItem", "Item", "int32").String())
}
