package edit

import (
	"fmt"

	"github.com/Manu343726/bodypatch/pkg/utils"
)

// Plan is an ordered list of edits sharing the same anchor
type Plan []Edit

// NewPlan creates a plan from the given edits
func NewPlan(edits ...Edit) Plan {
	return Plan(edits)
}

func (p Plan) String() string {
	return utils.FormatSlice(p, ", ")
}

// Region is the range of offsets, relative to the anchor and both inclusive, a plan may edit
type Region struct {
	From int
	To   int
}

// NewRegion creates a region spanning offsets [from, to]
func NewRegion(from, to int) Region {
	return Region{From: from, To: to}
}

func (r Region) String() string {
	return fmt.Sprintf("[%+d, %+d]", r.From, r.To)
}

func (r Region) contains(offset int) bool {
	return offset >= r.From && offset <= r.To
}

// Footprint returns the absolute positions of the input stream the plan modifies or removes when
// anchored at the given index
func (p Plan) Footprint(anchor int) []int {
	var positions []int

	for _, e := range p {
		switch e.Kind {
		case Kind_ReplaceOperand, Kind_ReplaceInstruction:
			positions = append(positions, anchor+e.Offset)
		case Kind_RemoveRange:
			for i := 0; i < e.Count; i++ {
				positions = append(positions, anchor+e.Offset+i)
			}
		}
	}

	return positions
}

// Validate checks the plan is well formed and stays within the region: replacements must target
// offsets inside the region, insertions must go before an offset inside the region or right after
// it, and removals declare their own range. Edits must not overlap each other.
func (p Plan) Validate(region Region) error {
	replaced := make(map[int]Edit)
	var removals []Edit

	for _, e := range p {
		switch e.Kind {
		case Kind_ReplaceOperand:
			if !region.contains(e.Offset) {
				return utils.MakeError(ErrOutsideRegion, "%v outside region %v", e, region)
			}
		case Kind_ReplaceInstruction:
			if len(e.Instructions) != 1 {
				return utils.MakeError(ErrInvalidEdit, "%v must carry exactly one instruction", e)
			}
			if !region.contains(e.Offset) {
				return utils.MakeError(ErrOutsideRegion, "%v outside region %v", e, region)
			}
		case Kind_InsertBefore:
			if len(e.Instructions) == 0 {
				return utils.MakeError(ErrInvalidEdit, "%v inserts nothing", e)
			}
			if e.Offset < region.From || e.Offset > region.To+1 {
				return utils.MakeError(ErrOutsideRegion, "%v outside region %v", e, region)
			}
		case Kind_RemoveRange:
			if e.Count <= 0 {
				return utils.MakeError(ErrInvalidEdit, "%v removes nothing", e)
			}
			removals = append(removals, e)
		default:
			return utils.MakeError(ErrInvalidEdit, "%v", e)
		}

		if e.Kind == Kind_ReplaceOperand || e.Kind == Kind_ReplaceInstruction {
			if previous, ok := replaced[e.Offset]; ok {
				return utils.MakeError(ErrOverlappingEdits, "%v and %v replace the same instruction", previous, e)
			}
			replaced[e.Offset] = e
		}
	}

	for i, a := range removals {
		for _, b := range removals[i+1:] {
			if a.Offset < b.Offset+b.Count && b.Offset < a.Offset+a.Count {
				return utils.MakeError(ErrOverlappingEdits, "%v and %v overlap", a, b)
			}
		}

		for _, e := range p {
			if e.Kind == Kind_InsertBefore && e.Offset > a.Offset && e.Offset < a.Offset+a.Count {
				return utils.MakeError(ErrOverlappingEdits, "%v inserts inside %v", e, a)
			}
		}

		for offset, e := range replaced {
			if offset >= a.Offset && offset < a.Offset+a.Count {
				return utils.MakeError(ErrOverlappingEdits, "%v replaces an instruction removed by %v", e, a)
			}
		}
	}

	return nil
}
