// Package il models method bodies as immutable instruction streams.
//
// A Stream is a read-only snapshot of the ordered instructions of one method, together with the
// labels attached to them. Branch instructions reference labels instead of positions, so a stream
// stays well formed under insertions and removals as long as every referenced label keeps being
// attached to exactly one instruction (see ResolveLabels).
package il

import (
	"fmt"
	"strings"

	"github.com/Manu343726/bodypatch/pkg/il/instructions"
	"golang.org/x/crypto/blake2b"
)

// Stream is an immutable ordered sequence of instructions
type Stream struct {
	instructions []instructions.Instruction
}

// NewStream creates a stream from a copy of the given instructions
func NewStream(instrs ...instructions.Instruction) Stream {
	s := Stream{
		instructions: make([]instructions.Instruction, len(instrs)),
	}

	for i, instr := range instrs {
		s.instructions[i] = instr.Clone()
	}

	return s
}

// Len returns the number of instructions in the stream
func (s Stream) Len() int {
	return len(s.instructions)
}

// InBounds returns true if index is a valid instruction index
func (s Stream) InBounds(index int) bool {
	return index >= 0 && index < len(s.instructions)
}

// At returns a copy of the instruction at the given index
func (s Stream) At(index int) instructions.Instruction {
	return s.instructions[index].Clone()
}

// Instructions returns a copy of all the instructions of the stream
func (s Stream) Instructions() []instructions.Instruction {
	result := make([]instructions.Instruction, len(s.instructions))

	for i, instr := range s.instructions {
		result[i] = instr.Clone()
	}

	return result
}

// Equal returns true if both streams have the same instructions with the same labels
func (s Stream) Equal(other Stream) bool {
	if len(s.instructions) != len(other.instructions) {
		return false
	}

	for i := range s.instructions {
		if !s.instructions[i].Equal(other.instructions[i]) {
			return false
		}
	}

	return true
}

// Validate checks label integrity (see ResolveLabels)
func (s Stream) Validate() error {
	_, err := ResolveLabels(s)
	return err
}

// Digest returns a blake2b-256 digest of the stream listing. Equal streams have equal digests
func (s Stream) Digest() [blake2b.Size256]byte {
	return blake2b.Sum256([]byte(s.String()))
}

// String returns a human-readable listing of the stream
func (s Stream) String() string {
	var builder strings.Builder
	for i, instr := range s.instructions {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(fmt.Sprintf("%4d: %s", i, instr.String()))
	}
	return builder.String()
}

// Lines returns the textual representation of each instruction, as accepted by ParseStream()
func (s Stream) Lines() []string {
	lines := make([]string, len(s.instructions))
	for i, instr := range s.instructions {
		lines[i] = instr.String()
	}
	return lines
}

// ParseStream parses one instruction per line and validates label integrity of the result
func ParseStream(lines []string) (Stream, error) {
	instrs := make([]instructions.Instruction, 0, len(lines))

	for i, line := range lines {
		instr, err := instructions.ParseInstruction(line)
		if err != nil {
			return Stream{}, fmt.Errorf("instruction %d: %w", i, err)
		}
		instrs = append(instrs, instr)
	}

	s := Stream{instructions: instrs}
	if err := s.Validate(); err != nil {
		return Stream{}, err
	}

	return s, nil
}
