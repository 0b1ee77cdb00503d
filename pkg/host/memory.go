package host

import (
	"fmt"

	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/il/instructions"
	"github.com/Manu343726/bodypatch/pkg/utils"
)

type method struct {
	id        il.MethodID
	original  il.Stream
	installed *il.Stream
}

// MemoryHost is a host keeping method bodies in memory. It validates installed bodies the way a
// runtime verifier would: labels must resolve and the body must not fall off its end.
type MemoryHost struct {
	methods map[string]*method
	order   []string
}

// NewMemoryHost creates a host with no methods
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{
		methods: make(map[string]*method),
	}
}

// Define adds a method with the given original body, replacing any previous definition
func (h *MemoryHost) Define(id il.MethodID, body il.Stream) *MemoryHost {
	if _, exists := h.methods[id.Key()]; !exists {
		h.order = append(h.order, id.Key())
	}

	h.methods[id.Key()] = &method{id: id, original: body}
	return h
}

// Methods returns the identity of all methods, in definition order
func (h *MemoryHost) Methods() []il.MethodID {
	return utils.Map(h.order, func(key string) il.MethodID { return h.methods[key].id })
}

// Body returns the original body of a method
func (h *MemoryHost) Body(id il.MethodID) (il.Stream, error) {
	m, ok := h.methods[id.Key()]
	if !ok {
		return il.Stream{}, utils.MakeError(ErrUnknownMethod, "%v", id)
	}

	return m.original, nil
}

// Install replaces the body of a method after checking it is well formed
func (h *MemoryHost) Install(id il.MethodID, body il.Stream) error {
	m, ok := h.methods[id.Key()]
	if !ok {
		return utils.MakeError(ErrUnknownMethod, "%v", id)
	}

	if err := Verify(body); err != nil {
		return fmt.Errorf("%v: %w", id, err)
	}

	m.installed = &body
	return nil
}

// Installed returns the installed body of a method, if any
func (h *MemoryHost) Installed(id il.MethodID) (il.Stream, bool) {
	if m, ok := h.methods[id.Key()]; ok && m.installed != nil {
		return *m.installed, true
	}

	return il.Stream{}, false
}

// Current returns the body the host would execute: the installed one or else the original one
func (h *MemoryHost) Current(id il.MethodID) (il.Stream, error) {
	if installed, ok := h.Installed(id); ok {
		return installed, nil
	}

	return h.Body(id)
}

// Verify checks a body is executable: it is not empty, its labels resolve and its last instruction
// leaves the method or jumps unconditionally
func Verify(body il.Stream) error {
	if body.Len() == 0 {
		return utils.MakeError(ErrHostInstallation, "empty method body")
	}

	if err := body.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrHostInstallation, err)
	}

	switch last := body.At(body.Len() - 1); last.Op.Flow() {
	case instructions.Flow_Return, instructions.Flow_Throw, instructions.Flow_Branch:
		return nil
	default:
		return utils.MakeError(ErrHostInstallation, "execution falls off the end of the body after '%v'", last)
	}
}
