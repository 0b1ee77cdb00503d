package instructions

// Represents the kind of operand (integer, string, symbol, etc)
type OperandKind uint

const (
	OperandKind_None OperandKind = iota
	OperandKind_Int
	OperandKind_Float
	OperandKind_String
	OperandKind_Symbol
	OperandKind_Labels
)

func (o OperandKind) String() string {
	switch o {
	case OperandKind_None:
		return "None"
	case OperandKind_Int:
		return "Int"
	case OperandKind_Float:
		return "Float"
	case OperandKind_String:
		return "String"
	case OperandKind_Symbol:
		return "Symbol"
	case OperandKind_Labels:
		return "Labels"
	}

	panic("unreachable")
}
