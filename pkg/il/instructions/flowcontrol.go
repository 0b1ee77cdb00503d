package instructions

// Describes how an operation affects the control flow of a method
type FlowControl uint

const (
	// Execution continues with the next instruction
	Flow_Next FlowControl = iota
	// Calls another method and continues with the next instruction
	Flow_Call
	// Unconditionally transfers control to a label
	Flow_Branch
	// Transfers control to a label or continues with the next instruction
	Flow_CondBranch
	// Transfers control to one of several labels or continues with the next instruction
	Flow_Switch
	// Leaves the method
	Flow_Return
	// Leaves the method raising an exception
	Flow_Throw
)

func (f FlowControl) String() string {
	switch f {
	case Flow_Next:
		return "Next"
	case Flow_Call:
		return "Call"
	case Flow_Branch:
		return "Branch"
	case Flow_CondBranch:
		return "CondBranch"
	case Flow_Switch:
		return "Switch"
	case Flow_Return:
		return "Return"
	case Flow_Throw:
		return "Throw"
	}

	panic("unreachable")
}
