package host

import (
	"testing"

	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/il/instructions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryHost(t *testing.T) {
	method := il.Method("Player", "get_MaxOxygen")
	original := il.NewBuilder().LdcR(100).Ret().MustBuild()

	h := NewMemoryHost().Define(method, original)
	assert.Equal(t, []il.MethodID{method}, h.Methods())

	body, err := h.Body(method)
	require.NoError(t, err)
	assert.True(t, body.Equal(original))

	_, installed := h.Installed(method)
	assert.False(t, installed)

	patched := il.NewBuilder().LdcR(250).Ret().MustBuild()
	require.NoError(t, h.Install(method, patched))

	current, err := h.Current(method)
	require.NoError(t, err)
	assert.True(t, current.Equal(patched))

	body, err = h.Body(method)
	require.NoError(t, err)
	assert.True(t, body.Equal(original), "installing must not change the original body")
}

func TestMemoryHostUnknownMethod(t *testing.T) {
	h := NewMemoryHost()
	method := il.Method("Ghost", "Boo")

	_, err := h.Body(method)
	assert.ErrorIs(t, err, ErrUnknownMethod)
	assert.ErrorIs(t, h.Install(method, il.NewBuilder().Ret().MustBuild()), ErrUnknownMethod)
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		body    il.Stream
		wantErr bool
	}{
		{
			name: "returns",
			body: il.NewBuilder().LdcI(1).Ret().MustBuild(),
		},
		{
			name: "throws",
			body: il.NewBuilder().Newobj(instructions.Method("InvalidOperationException", ".ctor")).Op(instructions.OpKind_Throw, instructions.NoOperand()).MustBuild(),
		},
		{
			name: "loops back",
			body: il.NewBuilder().Label("L0").Nop().Br("L0").MustBuild(),
		},
		{
			name:    "empty",
			body:    il.NewStream(),
			wantErr: true,
		},
		{
			name:    "falls off the end",
			body:    il.NewBuilder().LdcI(1).Pop().MustBuild(),
			wantErr: true,
		},
		{
			name:    "ends with a conditional branch",
			body:    il.NewBuilder().Label("L0").Ldarg(0).Brtrue("L0").MustBuild(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(tt.body)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrHostInstallation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInstallRejectsUnresolvedLabels(t *testing.T) {
	method := il.Method("Door", "Open")
	h := NewMemoryHost().Define(method, il.NewBuilder().Ret().MustBuild())

	broken := il.NewStream(
		instructions.MustInstruction(instructions.OpKind_Br, instructions.LabelsOperand("L9")),
	)

	err := h.Install(method, broken)
	assert.ErrorIs(t, err, ErrHostInstallation)
	assert.ErrorIs(t, err, il.ErrUnresolvedLabel)
}
