package instructions

// Represents the operation performed by an instruction
type OpKind uint

const (
	// No-Operation
	OpKind_Nop OpKind = iota
	// Push an integer constant
	OpKind_LdcI
	// Push a floating point constant
	OpKind_LdcR
	// Push a string literal
	OpKind_Ldstr
	// Push a null reference
	OpKind_Ldnull
	// Push a method argument
	OpKind_Ldarg
	// Store into a method argument
	OpKind_Starg
	// Push a local variable
	OpKind_Ldloc
	// Store into a local variable
	OpKind_Stloc
	// Push an instance field
	OpKind_Ldfld
	// Store into an instance field
	OpKind_Stfld
	// Push a static field
	OpKind_Ldsfld
	// Store into a static field
	OpKind_Stsfld
	// Push an array element
	OpKind_Ldelem
	// Store into an array element
	OpKind_Stelem
	// Construct an object calling its constructor
	OpKind_Newobj
	// Allocate an array
	OpKind_Newarr
	// Call a method
	OpKind_Call
	// Call a virtual method
	OpKind_Callvirt
	// Unconditional branch
	OpKind_Br
	// Branch if value is true, not null or non-zero
	OpKind_Brtrue
	// Branch if value is false, null or zero
	OpKind_Brfalse
	// Branch if equal
	OpKind_Beq
	// Branch if not equal
	OpKind_Bne
	// Branch if greater or equal
	OpKind_Bge
	// Branch if greater
	OpKind_Bgt
	// Branch if less or equal
	OpKind_Ble
	// Branch if less
	OpKind_Blt
	// Multi-way branch through a jump table
	OpKind_Switch
	// Add two values
	OpKind_Add
	// Substract two values
	OpKind_Sub
	// Multiply two values
	OpKind_Mul
	// Divide two values
	OpKind_Div
	// Remainder of the division of two values
	OpKind_Rem
	// Duplicate the top of the stack
	OpKind_Dup
	// Discard the top of the stack
	OpKind_Pop
	// Return from the method
	OpKind_Ret
	// Throw the exception on top of the stack
	OpKind_Throw

	// Total operation kinds implemented
	TOTAL_OPKINDS
)

// Returns the mnemonic of the operation kind
func (op OpKind) String() string {
	return OpKinds.Mnemonic(op)
}

// Returns the control flow class of the operation kind
func (op OpKind) Flow() FlowControl {
	return OpKinds.Descriptor(op).Flow
}

// Returns true if the operation transfers control to one or more labels
func (op OpKind) IsBranch() bool {
	switch op.Flow() {
	case Flow_Branch, Flow_CondBranch, Flow_Switch:
		return true
	}

	return false
}
