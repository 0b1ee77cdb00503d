package edit

import (
	"errors"
	"fmt"

	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/il/instructions"
	"github.com/Manu343726/bodypatch/pkg/utils"
	"golang.org/x/exp/slices"
)

var (
	// ErrApplyConflict indicates an edit targets a position that is not valid in the current stream,
	// typically because an earlier route already changed the stream there
	ErrApplyConflict = errors.New("apply conflict")
	// ErrOutsideRegion indicates an edit targets an offset the rule did not inspect
	ErrOutsideRegion = errors.New("edit outside of the matched region")
	// ErrOverlappingEdits indicates two edits of the same plan touch the same instructions
	ErrOverlappingEdits = errors.New("overlapping edits")
	// ErrDanglingLabel indicates a removal would leave a label with no instruction to attach to
	ErrDanglingLabel = errors.New("dangling label")
	// ErrInvalidEdit indicates a malformed edit or an edit producing an invalid instruction
	ErrInvalidEdit = errors.New("invalid edit")
)

// Applied is the result of applying a plan
type Applied struct {
	Stream il.Stream
	// Positions of the new stream holding replaced or inserted instructions, sorted
	Written []int
	// Mapping[i] is the position in the new stream of the instruction at position i of the input
	// stream, or -1 if it was removed
	Mapping []int
}

// working copy of a stream being edited
type workspace struct {
	instrs  []instructions.Instruction
	origin  []int  // position in the input stream, -1 for inserted instructions
	written []bool // replaced or inserted
}

func (w *workspace) check(e Edit) error {
	if err := il.NewStream(w.instrs...).Validate(); err != nil {
		return fmt.Errorf("after %v: %w", e, err)
	}
	return nil
}

// Apply applies the plan to the stream anchored at the given index. All edits must lie within the
// region (see Plan.Validate). On error the input stream is left as is and no edit is applied.
func Apply(s il.Stream, anchor int, region Region, plan Plan) (Applied, error) {
	if err := plan.Validate(region); err != nil {
		return Applied{}, err
	}

	for _, e := range plan {
		if err := checkBounds(s, anchor, e); err != nil {
			return Applied{}, err
		}
	}

	w := &workspace{
		instrs:  s.Instructions(),
		origin:  utils.Indices(s.Len()),
		written: make([]bool, s.Len()),
	}

	for _, e := range plan {
		if e.Kind != Kind_ReplaceOperand {
			continue
		}

		position := anchor + e.Offset
		replaced, err := w.instrs[position].WithOperand(e.Operand)
		if err != nil {
			return Applied{}, fmt.Errorf("%w: %v: %v", ErrInvalidEdit, e, err)
		}

		w.instrs[position] = replaced
		w.written[position] = true

		if err := w.check(e); err != nil {
			return Applied{}, err
		}
	}

	for _, e := range plan {
		if e.Kind != Kind_ReplaceInstruction {
			continue
		}

		position := anchor + e.Offset
		replacement, err := instructions.NewInstruction(e.Instructions[0].Op, e.Instructions[0].Operand,
			append(w.instrs[position].Labels, e.Instructions[0].Labels...)...)
		if err != nil {
			return Applied{}, fmt.Errorf("%w: %v: %v", ErrInvalidEdit, e, err)
		}

		w.instrs[position] = replacement
		w.written[position] = true

		if err := w.check(e); err != nil {
			return Applied{}, err
		}
	}

	for _, e := range structuralOrder(plan) {
		var err error

		switch e.Kind {
		case Kind_RemoveRange:
			err = w.remove(anchor+e.Offset, e)
		case Kind_InsertBefore:
			err = w.insert(anchor+e.Offset, e)
		}

		if err != nil {
			return Applied{}, err
		}

		if err := w.check(e); err != nil {
			return Applied{}, err
		}
	}

	result := Applied{
		Stream:  il.NewStream(w.instrs...),
		Mapping: make([]int, s.Len()),
	}

	for i := range result.Mapping {
		result.Mapping[i] = -1
	}

	for i, origin := range w.origin {
		if origin >= 0 {
			result.Mapping[origin] = i
		}
		if w.written[i] {
			result.Written = append(result.Written, i)
		}
	}

	return result, nil
}

func checkBounds(s il.Stream, anchor int, e Edit) error {
	position := anchor + e.Offset

	switch e.Kind {
	case Kind_ReplaceOperand, Kind_ReplaceInstruction:
		if !s.InBounds(position) {
			return utils.MakeError(ErrApplyConflict, "%v targets position %d, stream has %d instructions", e, position, s.Len())
		}
	case Kind_InsertBefore:
		if position < 0 || position > s.Len() {
			return utils.MakeError(ErrApplyConflict, "%v inserts at position %d, stream has %d instructions", e, position, s.Len())
		}
	case Kind_RemoveRange:
		if !s.InBounds(position) || !s.InBounds(position+e.Count-1) {
			return utils.MakeError(ErrApplyConflict, "%v removes positions %d..%d, stream has %d instructions", e, position, position+e.Count-1, s.Len())
		}
	}

	return nil
}

// Returns insertions and removals sorted from the highest position to the lowest. At the same
// position removals go first, and insertions go in reverse plan order so they end up in plan order
func structuralOrder(plan Plan) []Edit {
	type entry struct {
		edit  Edit
		index int
	}

	var entries []entry
	for i, e := range plan {
		if e.Kind == Kind_InsertBefore || e.Kind == Kind_RemoveRange {
			entries = append(entries, entry{edit: e, index: i})
		}
	}

	slices.SortFunc(entries, func(a, b entry) int {
		switch {
		case a.edit.Offset != b.edit.Offset:
			return b.edit.Offset - a.edit.Offset
		case a.edit.Kind != b.edit.Kind && a.edit.Kind == Kind_RemoveRange:
			return -1
		case a.edit.Kind != b.edit.Kind:
			return 1
		}
		return b.index - a.index
	})

	return utils.Map(entries, func(e entry) Edit { return e.edit })
}

func (w *workspace) remove(position int, e Edit) error {
	end := position + e.Count

	var labels []instructions.LabelID
	for _, instr := range w.instrs[position:end] {
		labels = append(labels, instr.Labels...)
	}

	if len(labels) > 0 {
		if end >= len(w.instrs) {
			return utils.MakeError(ErrDanglingLabel, "%v removes labels %v with no instruction after the range", e, instructions.JoinLabels(labels, ", "))
		}

		w.instrs[end] = w.instrs[end].WithLabels(append(labels, w.instrs[end].Labels...)...)
	}

	w.instrs = slices.Delete(w.instrs, position, end)
	w.origin = slices.Delete(w.origin, position, end)
	w.written = slices.Delete(w.written, position, end)
	return nil
}

func (w *workspace) insert(position int, e Edit) error {
	inserted := cloneAll(e.Instructions)

	for i, instr := range inserted {
		validated, err := instructions.NewInstruction(instr.Op, instr.Operand, instr.Labels...)
		if err != nil {
			return fmt.Errorf("%w: %v: %v", ErrInvalidEdit, e, err)
		}
		inserted[i] = validated
	}

	if e.TakeLabels && position < len(w.instrs) {
		inserted[0].Labels = append(inserted[0].Labels, w.instrs[position].Labels...)
		w.instrs[position] = w.instrs[position].WithLabels()
	}

	origins := make([]int, len(inserted))
	written := make([]bool, len(inserted))
	for i := range inserted {
		origins[i] = -1
		written[i] = true
	}

	w.instrs = slices.Insert(w.instrs, position, inserted...)
	w.origin = slices.Insert(w.origin, position, origins...)
	w.written = slices.Insert(w.written, position, written...)
	return nil
}
