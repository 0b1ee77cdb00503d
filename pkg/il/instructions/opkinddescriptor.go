package instructions

import (
	"fmt"
)

// Contains implementation information of an operation kind
type OpKindDescriptor struct {
	Kind        OpKind
	Mnemonic    string
	Flow        FlowControl
	Operand     OperandKind
	Description string
}

func (d *OpKindDescriptor) String() string {
	return fmt.Sprintf("%v (flow: %v, operand: %v)", d.Mnemonic, d.Flow, d.Operand)
}
