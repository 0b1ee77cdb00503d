package routes

import (
	"github.com/Manu343726/bodypatch/pkg/il/instructions"
	"github.com/Manu343726/bodypatch/pkg/patch"
	"github.com/Manu343726/bodypatch/pkg/patch/edit"
	"github.com/Manu343726/bodypatch/pkg/patch/match"
)

// LanternFlicker makes lanterns shine at their base intensity. The random factor
//
//	ldarg 0
//	ldfld Lantern::baseIntensity
//	ldc.r 0.85
//	ldc.r 1.15
//	call Random::Range
//	mul
//
// becomes a constant 1: the range bounds are removed and the call replaced.
func LanternFlicker() patch.Route {
	return patch.Route{
		Name:    "lantern-flicker",
		Feature: "steady lanterns",
		Rule: match.NewRule(
			match.At(0, match.CallTo("Random", "Range")),
			match.At(-2, match.Op(instructions.OpKind_LdcR)),
			match.At(-1, match.Op(instructions.OpKind_LdcR)),
			match.At(1, match.Op(instructions.OpKind_Mul)),
		).WithShape(match.ShapeOfOps(-4,
			instructions.OpKind_Ldarg,
			instructions.OpKind_Ldfld,
		)),
		Plan: edit.NewPlan(
			edit.RemoveRange(-2, 2),
			edit.ReplaceInstruction(0, instructions.MustInstruction(instructions.OpKind_LdcR, instructions.FloatOperand(1))),
		),
	}
}
