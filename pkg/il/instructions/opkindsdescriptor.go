package instructions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Manu343726/bodypatch/pkg/utils"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Returns information about the implemented operation kinds
type OpKindsDescriptor struct {
	descriptors       map[OpKind]*OpKindDescriptor
	mnemonicsToOpKind map[string]OpKind
}

var ErrInvalidOpKind error = errors.New("invalid operation kind")

// Returns the descriptor of the given operation kind
func (d *OpKindsDescriptor) Descriptor(op OpKind) *OpKindDescriptor {
	if descriptor, ok := d.descriptors[op]; ok {
		return descriptor
	}

	panic(fmt.Sprintf("operation kind %d has no descriptor", op))
}

// Returns the descriptors of all implemented operation kinds, sorted by kind
func (d *OpKindsDescriptor) AllOpKinds() []*OpKindDescriptor {
	kinds := maps.Keys(d.descriptors)
	slices.Sort(kinds)
	return utils.Map(kinds, d.Descriptor)
}

// Number of operation kinds implemented
func (d *OpKindsDescriptor) TotalOpKinds() int {
	return len(d.descriptors)
}

// Returns the mnemonic string representation of the operation kind
func (d *OpKindsDescriptor) Mnemonic(op OpKind) string {
	if descriptor, ok := d.descriptors[op]; ok {
		return descriptor.Mnemonic
	}

	return fmt.Sprintf("<opkind %d>", op)
}

// Returns the operation kind corresponding to the given mnemonic
func (d *OpKindsDescriptor) ParseOpKind(mnemonic string) (OpKind, error) {
	if op, hasOpKind := d.mnemonicsToOpKind[strings.ToLower(mnemonic)]; hasOpKind {
		return op, nil
	} else {
		return 0, utils.MakeError(ErrInvalidOpKind, "'%v'", mnemonic)
	}
}

// Returns a human readable reference of all operation kinds
func (d *OpKindsDescriptor) DocString() string {
	var builder strings.Builder

	builder.WriteString("Operation kinds\n")
	builder.WriteString("===============\n\n")

	for _, descriptor := range d.AllOpKinds() {
		fmt.Fprintf(&builder, "%-9s flow: %-10v operand: %-8v %v\n", descriptor.Mnemonic, descriptor.Flow, descriptor.Operand, descriptor.Description)
	}

	return builder.String()
}

// Initializes an operation kinds descriptor with the given descriptors. Panics if any kind is missing
func NewOpKindsDescriptor(descriptors []*OpKindDescriptor) OpKindsDescriptor {
	d := OpKindsDescriptor{
		descriptors:       utils.GenMap(descriptors, func(descriptor *OpKindDescriptor) OpKind { return descriptor.Kind }),
		mnemonicsToOpKind: make(map[string]OpKind, len(descriptors)),
	}

	for _, op := range utils.Iota(int(TOTAL_OPKINDS), func(i int) OpKind { return OpKind(i) }) {
		descriptor, hasOpKind := d.descriptors[op]
		if !hasOpKind {
			panic(fmt.Sprintf("missing descriptor for operation kind %d. Make sure you've added all kinds in the NewOpKindsDescriptor() call", op))
		}

		d.mnemonicsToOpKind[descriptor.Mnemonic] = op
	}

	return d
}
