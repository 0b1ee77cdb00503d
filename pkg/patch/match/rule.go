package match

import (
	"fmt"
	"strings"

	"github.com/Manu343726/bodypatch/pkg/utils"
	"golang.org/x/exp/slices"
)

// Check is a predicate evaluated against the instruction at a position relative to the anchor
type Check struct {
	Offset    int
	Predicate Predicate
	// Optional checks pass when anchor+Offset is outside of the stream
	Optional bool
}

// At creates a check for the instruction at anchor+offset
func At(offset int, predicate Predicate) Check {
	return Check{Offset: offset, Predicate: predicate}
}

// IfPresent creates a check for the instruction at anchor+offset that also passes if the stream has
// no instruction there
func IfPresent(offset int, predicate Predicate) Check {
	return Check{Offset: offset, Predicate: predicate, Optional: true}
}

func (c Check) String() string {
	if c.Optional {
		return fmt.Sprintf("[%+d]? %v", c.Offset, c.Predicate)
	}
	return fmt.Sprintf("[%+d] %v", c.Offset, c.Predicate)
}

// Rule is an ordered list of checks, optionally guarded by shape fingerprints of the instructions
// between them
type Rule struct {
	Checks []Check
	Shapes []Shape
}

// NewRule creates a rule from the given checks
func NewRule(checks ...Check) Rule {
	return Rule{Checks: checks}
}

// WithShape returns a copy of the rule also requiring the given shape fingerprint
func (r Rule) WithShape(shape Shape) Rule {
	result := Rule{
		Checks: append([]Check(nil), r.Checks...),
		Shapes: append(append([]Shape(nil), r.Shapes...), shape),
	}
	return result
}

// Offsets returns the offsets of all checks and the bounds of all shapes of the rule, including 0
// (the anchor itself)
func (r Rule) Offsets() []int {
	offsets := []int{0}
	offsets = append(offsets, utils.Map(r.Checks, func(c Check) int { return c.Offset })...)

	for _, shape := range r.Shapes {
		if shape.Count > 0 {
			offsets = append(offsets, shape.From, shape.From+shape.Count-1)
		}
	}

	return offsets
}

// Span returns the smallest and biggest offsets that must be inside the stream for the rule to
// match: those of the anchor, the required checks and the shapes
func (r Rule) Span() (int, int) {
	offsets := []int{0}
	for _, check := range r.Checks {
		if !check.Optional {
			offsets = append(offsets, check.Offset)
		}
	}
	for _, shape := range r.Shapes {
		if shape.Count > 0 {
			offsets = append(offsets, shape.From, shape.From+shape.Count-1)
		}
	}

	return slices.Min(offsets), slices.Max(offsets)
}

// MinOffset returns the smallest offset (<= 0) the rule inspects
func (r Rule) MinOffset() int {
	return slices.Min(r.Offsets())
}

// MaxOffset returns the biggest offset (>= 0) the rule inspects
func (r Rule) MaxOffset() int {
	return slices.Max(r.Offsets())
}

func (r Rule) String() string {
	parts := utils.Map(r.Checks, Check.String)
	parts = append(parts, utils.Map(r.Shapes, Shape.String)...)
	return strings.Join(parts, "; ")
}
