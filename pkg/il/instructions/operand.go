package instructions

import (
	"strconv"
	"strings"

	"github.com/Manu343726/bodypatch/pkg/utils"
	"golang.org/x/exp/slices"
)

// Stores the value of an instruction operand
type Operand struct {
	kind   OperandKind
	i      int64
	f      float64
	s      string
	symbol SymbolRef
	labels []LabelID
}

// Returns the kind of operand this value refers to
func (o Operand) Kind() OperandKind {
	return o.kind
}

// Returns true if both operands have the same kind and value
func (o Operand) Equal(other Operand) bool {
	if o.kind != other.kind {
		return false
	}

	switch o.kind {
	case OperandKind_None:
		return true
	case OperandKind_Int:
		return o.i == other.i
	case OperandKind_Float:
		return o.f == other.f
	case OperandKind_String:
		return o.s == other.s
	case OperandKind_Symbol:
		return o.symbol == other.symbol
	case OperandKind_Labels:
		return slices.Equal(o.labels, other.labels)
	}

	panic("unreachable")
}

// Returns the string representation of the operand value, as accepted by ParseOperand()
func (o Operand) String() string {
	switch o.kind {
	case OperandKind_None:
		return ""
	case OperandKind_Int:
		return strconv.FormatInt(o.i, 10)
	case OperandKind_Float:
		return strconv.FormatFloat(o.f, 'g', -1, 64)
	case OperandKind_String:
		return strconv.Quote(o.s)
	case OperandKind_Symbol:
		return o.symbol.String()
	case OperandKind_Labels:
		return JoinLabels(o.labels, ", ")
	}

	panic("unreachable")
}

func (o Operand) Int() int64 {
	if o.kind == OperandKind_Int {
		return o.i
	}

	panic("operand value is not an integer")
}

func (o Operand) Float() float64 {
	if o.kind == OperandKind_Float {
		return o.f
	}

	panic("operand value is not a floating point number")
}

func (o Operand) Str() string {
	if o.kind == OperandKind_String {
		return o.s
	}

	panic("operand value is not a string")
}

func (o Operand) Symbol() SymbolRef {
	if o.kind == OperandKind_Symbol {
		return o.symbol
	}

	panic("operand value is not a symbol reference")
}

// Returns a copy of the label set
func (o Operand) Labels() []LabelID {
	if o.kind == OperandKind_Labels {
		return slices.Clone(o.labels)
	}

	panic("operand value is not a label set")
}

// Returns an empty operand
func NoOperand() Operand {
	return Operand{kind: OperandKind_None}
}

// Returns an integer operand value
func IntOperand(value int64) Operand {
	return Operand{kind: OperandKind_Int, i: value}
}

// Returns a floating point operand value
func FloatOperand(value float64) Operand {
	return Operand{kind: OperandKind_Float, f: value}
}

// Returns a string operand value
func StringOperand(value string) Operand {
	return Operand{kind: OperandKind_String, s: value}
}

// Returns a symbol reference operand value
func SymbolOperand(symbol SymbolRef) Operand {
	return Operand{kind: OperandKind_Symbol, symbol: symbol}
}

// Returns a label set operand value
func LabelsOperand(labels ...LabelID) Operand {
	return Operand{kind: OperandKind_Labels, labels: slices.Clone(labels)}
}

// Parses an string as an operand value of the given kind
func ParseOperand(text string, kind OperandKind) (Operand, error) {
	text = strings.TrimSpace(text)

	switch kind {
	case OperandKind_None:
		if text != "" {
			return Operand{}, utils.MakeError(ErrInvalidInstruction, "unexpected operand '%v'", text)
		}
		return NoOperand(), nil
	case OperandKind_Int:
		value, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			return Operand{}, utils.MakeError(ErrInvalidInstruction, "invalid integer operand '%v': %v", text, err)
		}
		return IntOperand(value), nil
	case OperandKind_Float:
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Operand{}, utils.MakeError(ErrInvalidInstruction, "invalid floating point operand '%v': %v", text, err)
		}
		return FloatOperand(value), nil
	case OperandKind_String:
		value, err := strconv.Unquote(text)
		if err != nil {
			return Operand{}, utils.MakeError(ErrInvalidInstruction, "invalid string operand %v: %v", text, err)
		}
		return StringOperand(value), nil
	case OperandKind_Symbol:
		symbol, err := ParseSymbol(text)
		if err != nil {
			return Operand{}, err
		}
		return SymbolOperand(symbol), nil
	case OperandKind_Labels:
		var labels []LabelID
		for _, name := range strings.Split(text, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				return Operand{}, utils.MakeError(ErrInvalidInstruction, "empty label in label set '%v'", text)
			}
			labels = append(labels, LabelID(name))
		}
		return LabelsOperand(labels...), nil
	}

	return Operand{}, utils.MakeError(ErrInvalidInstruction, "unsupported operand kind %v for operand '%v'", kind, text)
}
