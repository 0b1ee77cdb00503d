package instructions

var OpKinds OpKindsDescriptor = NewOpKindsDescriptor([]*OpKindDescriptor{
	{Kind: OpKind_Nop, Mnemonic: "nop", Flow: Flow_Next, Operand: OperandKind_None, Description: "Does nothing"},
	{Kind: OpKind_LdcI, Mnemonic: "ldc.i", Flow: Flow_Next, Operand: OperandKind_Int, Description: "Pushes an integer constant"},
	{Kind: OpKind_LdcR, Mnemonic: "ldc.r", Flow: Flow_Next, Operand: OperandKind_Float, Description: "Pushes a floating point constant"},
	{Kind: OpKind_Ldstr, Mnemonic: "ldstr", Flow: Flow_Next, Operand: OperandKind_String, Description: "Pushes a string literal"},
	{Kind: OpKind_Ldnull, Mnemonic: "ldnull", Flow: Flow_Next, Operand: OperandKind_None, Description: "Pushes a null reference"},
	{Kind: OpKind_Ldarg, Mnemonic: "ldarg", Flow: Flow_Next, Operand: OperandKind_Int, Description: "Pushes the argument with the given index"},
	{Kind: OpKind_Starg, Mnemonic: "starg", Flow: Flow_Next, Operand: OperandKind_Int, Description: "Pops a value into the argument with the given index"},
	{Kind: OpKind_Ldloc, Mnemonic: "ldloc", Flow: Flow_Next, Operand: OperandKind_Int, Description: "Pushes the local variable with the given index"},
	{Kind: OpKind_Stloc, Mnemonic: "stloc", Flow: Flow_Next, Operand: OperandKind_Int, Description: "Pops a value into the local variable with the given index"},
	{Kind: OpKind_Ldfld, Mnemonic: "ldfld", Flow: Flow_Next, Operand: OperandKind_Symbol, Description: "Pushes an instance field of the object on top of the stack"},
	{Kind: OpKind_Stfld, Mnemonic: "stfld", Flow: Flow_Next, Operand: OperandKind_Symbol, Description: "Stores a value into an instance field"},
	{Kind: OpKind_Ldsfld, Mnemonic: "ldsfld", Flow: Flow_Next, Operand: OperandKind_Symbol, Description: "Pushes a static field"},
	{Kind: OpKind_Stsfld, Mnemonic: "stsfld", Flow: Flow_Next, Operand: OperandKind_Symbol, Description: "Stores a value into a static field"},
	{Kind: OpKind_Ldelem, Mnemonic: "ldelem", Flow: Flow_Next, Operand: OperandKind_Symbol, Description: "Pushes an array element of the given element type"},
	{Kind: OpKind_Stelem, Mnemonic: "stelem", Flow: Flow_Next, Operand: OperandKind_Symbol, Description: "Stores an array element of the given element type"},
	{Kind: OpKind_Newobj, Mnemonic: "newobj", Flow: Flow_Call, Operand: OperandKind_Symbol, Description: "Allocates an object and calls the given constructor"},
	{Kind: OpKind_Newarr, Mnemonic: "newarr", Flow: Flow_Next, Operand: OperandKind_Symbol, Description: "Allocates an array of the given element type"},
	{Kind: OpKind_Call, Mnemonic: "call", Flow: Flow_Call, Operand: OperandKind_Symbol, Description: "Calls the given method"},
	{Kind: OpKind_Callvirt, Mnemonic: "callvirt", Flow: Flow_Call, Operand: OperandKind_Symbol, Description: "Calls the given method through virtual dispatch"},
	{Kind: OpKind_Br, Mnemonic: "br", Flow: Flow_Branch, Operand: OperandKind_Labels, Description: "Jumps to the target label"},
	{Kind: OpKind_Brtrue, Mnemonic: "brtrue", Flow: Flow_CondBranch, Operand: OperandKind_Labels, Description: "Jumps to the target label if the value is true"},
	{Kind: OpKind_Brfalse, Mnemonic: "brfalse", Flow: Flow_CondBranch, Operand: OperandKind_Labels, Description: "Jumps to the target label if the value is false"},
	{Kind: OpKind_Beq, Mnemonic: "beq", Flow: Flow_CondBranch, Operand: OperandKind_Labels, Description: "Jumps to the target label if both values are equal"},
	{Kind: OpKind_Bne, Mnemonic: "bne", Flow: Flow_CondBranch, Operand: OperandKind_Labels, Description: "Jumps to the target label if both values are not equal"},
	{Kind: OpKind_Bge, Mnemonic: "bge", Flow: Flow_CondBranch, Operand: OperandKind_Labels, Description: "Jumps to the target label if the first value is greater or equal"},
	{Kind: OpKind_Bgt, Mnemonic: "bgt", Flow: Flow_CondBranch, Operand: OperandKind_Labels, Description: "Jumps to the target label if the first value is greater"},
	{Kind: OpKind_Ble, Mnemonic: "ble", Flow: Flow_CondBranch, Operand: OperandKind_Labels, Description: "Jumps to the target label if the first value is less or equal"},
	{Kind: OpKind_Blt, Mnemonic: "blt", Flow: Flow_CondBranch, Operand: OperandKind_Labels, Description: "Jumps to the target label if the first value is less"},
	{Kind: OpKind_Switch, Mnemonic: "switch", Flow: Flow_Switch, Operand: OperandKind_Labels, Description: "Jumps to the n-th target label, or falls through if n is out of range"},
	{Kind: OpKind_Add, Mnemonic: "add", Flow: Flow_Next, Operand: OperandKind_None, Description: "Adds two values"},
	{Kind: OpKind_Sub, Mnemonic: "sub", Flow: Flow_Next, Operand: OperandKind_None, Description: "Substracts two values"},
	{Kind: OpKind_Mul, Mnemonic: "mul", Flow: Flow_Next, Operand: OperandKind_None, Description: "Multiplies two values"},
	{Kind: OpKind_Div, Mnemonic: "div", Flow: Flow_Next, Operand: OperandKind_None, Description: "Divides two values"},
	{Kind: OpKind_Rem, Mnemonic: "rem", Flow: Flow_Next, Operand: OperandKind_None, Description: "Computes the remainder of the division of two values"},
	{Kind: OpKind_Dup, Mnemonic: "dup", Flow: Flow_Next, Operand: OperandKind_None, Description: "Duplicates the value on top of the stack"},
	{Kind: OpKind_Pop, Mnemonic: "pop", Flow: Flow_Next, Operand: OperandKind_None, Description: "Discards the value on top of the stack"},
	{Kind: OpKind_Ret, Mnemonic: "ret", Flow: Flow_Return, Operand: OperandKind_None, Description: "Returns from the method"},
	{Kind: OpKind_Throw, Mnemonic: "throw", Flow: Flow_Throw, Operand: OperandKind_None, Description: "Throws the exception on top of the stack"},
})
